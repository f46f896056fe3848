package repository

import (
	"context"

	"github.com/Astemirdum/book-exchange/exchange/internal/errs"
	"github.com/Astemirdum/book-exchange/exchange/internal/model"
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

var ledgerColumns = []string{
	"id", "user_id", "delta", "balance_after", "kind", "exchange_id", "report_id", "payment_id", "created_at",
}

func (r *repository) ListLedgerEntries(ctx context.Context, userID uuid.UUID, p model.Paging) ([]model.LedgerEntry, int, error) {
	where := sq.Eq{"user_id": userID}
	total, err := count(ctx, r.db, qb.Select("count(*)").From(ledgerTableName).Where(where))
	if err != nil {
		return nil, 0, errors.Wrap(err, "count ledger entries")
	}
	q := pagingSuffix(qb.Select(ledgerColumns...).From(ledgerTableName).Where(where).OrderBy("id desc"), p)
	entries, err := collectMany[model.LedgerEntry](ctx, r.db, "ledger entries", q)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (t *txRepo) SetUserPoints(ctx context.Context, userID uuid.UUID, points int) error {
	q := qb.Update(usersTableName).Set("points", points).Where(sq.Eq{"id": userID})
	tag, err := exec(ctx, t.q, "user", q)
	if err != nil {
		return errors.Wrap(err, "update user points")
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("user")
	}
	return nil
}

func (t *txRepo) SetUserStanding(ctx context.Context, userID uuid.UUID, warn, suspend bool) error {
	q := `
update users
    set warning_count = warning_count + case when @warn then 1 else 0 end,
        suspended = suspended or @suspend
where id = @id`
	tag, err := t.q.Exec(ctx, q, pgx.NamedArgs{
		"id":      userID,
		"warn":    warn,
		"suspend": suspend,
	})
	if err != nil {
		return errors.Wrap(err, "update user standing")
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("user")
	}
	return nil
}

func (t *txRepo) InsertLedgerEntry(ctx context.Context, e model.LedgerEntry) error {
	q := qb.Insert(ledgerTableName).SetMap(map[string]any{
		"user_id":       e.UserID,
		"delta":         e.Delta,
		"balance_after": e.BalanceAfter,
		"kind":          string(e.Kind),
		"exchange_id":   e.ExchangeID,
		"report_id":     e.ReportID,
		"payment_id":    e.PaymentID,
		"created_at":    e.CreatedAt,
	})
	if _, err := exec(ctx, t.q, "ledger entry", q); err != nil {
		if isUniqueViolation(err, paymentIndex) {
			return errs.Duplicate("payment already settled")
		}
		return errors.Wrap(err, "insert ledger entry")
	}
	return nil
}

func (t *txRepo) PaymentApplied(ctx context.Context, paymentID string) (bool, error) {
	q := `select exists(select 1 from ledger_entries where payment_id = @payment_id)`
	return exists(ctx, t.q, q, pgx.NamedArgs{"payment_id": paymentID})
}
