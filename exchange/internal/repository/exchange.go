package repository

import (
	"context"
	"time"

	"github.com/Astemirdum/book-exchange/exchange/internal/errs"
	"github.com/Astemirdum/book-exchange/exchange/internal/model"
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

var (
	userColumns = []string{"id", "name", "points", "role", "warning_count", "suspended", "created_at"}
	bookColumns = []string{"id", "owner_id", "title", "author", "condition", "base_points", "is_available", "created_at"}

	exchangeColumns = []string{
		"id", "book_id", "requester_id", "owner_id", "points_offered", "points_locked", "status",
		"message", "meeting_address", "meeting_lat", "meeting_lng", "scheduled_at",
		"accepted_at", "confirmation_deadline", "completed_at", "declined_reason",
		"cancelled_at", "cancel_reason", "book_condition_rating", "created_at", "updated_at",
	}
)

var activeStatuses = []string{string(model.StatusPending), string(model.StatusAccepted)}

func selectUser(id uuid.UUID) sq.SelectBuilder {
	return qb.Select(userColumns...).From(usersTableName).Where(sq.Eq{"id": id})
}

func selectBook(id uuid.UUID) sq.SelectBuilder {
	return qb.Select(bookColumns...).From(booksTableName).Where(sq.Eq{"id": id})
}

func selectExchanges() sq.SelectBuilder {
	return qb.Select(exchangeColumns...).From(exchangesTableName)
}

func (r *repository) GetUser(ctx context.Context, id uuid.UUID) (model.User, error) {
	return collectOne[model.User](ctx, r.db, "user", selectUser(id))
}

func (r *repository) GetBook(ctx context.Context, id uuid.UUID) (model.Book, error) {
	return collectOne[model.Book](ctx, r.db, "book", selectBook(id))
}

func (r *repository) GetExchange(ctx context.Context, id uuid.UUID) (model.Exchange, error) {
	return collectOne[model.Exchange](ctx, r.db, "exchange", selectExchanges().Where(sq.Eq{"id": id}))
}

func (r *repository) ListExchanges(ctx context.Context, userID uuid.UUID, f model.ExchangeFilter, p model.Paging) ([]model.Exchange, int, error) {
	ctx, span := r.tracer.Start(ctx, "repo.ListExchanges")
	defer span.End()

	where := sq.And{}
	switch f.Role {
	case model.UserRoleRequester:
		where = append(where, sq.Eq{"requester_id": userID})
	case model.UserRoleOwner:
		where = append(where, sq.Eq{"owner_id": userID})
	default:
		where = append(where, sq.Or{sq.Eq{"requester_id": userID}, sq.Eq{"owner_id": userID}})
	}
	if f.Status != "" {
		where = append(where, sq.Eq{"status": string(f.Status)})
	}

	total, err := count(ctx, r.db, qb.Select("count(*)").From(exchangesTableName).Where(where))
	if err != nil {
		return nil, 0, errors.Wrap(err, "count exchanges")
	}
	q := pagingSuffix(selectExchanges().Where(where).OrderBy("created_at desc", "id"), p)
	r.log.Debug("ListExchanges", zapQuery(q))

	items, err := collectMany[model.Exchange](ctx, r.db, "exchanges", q)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repository) StaleExchanges(ctx context.Context, now time.Time, limit int) ([]model.Exchange, error) {
	q := selectExchanges().
		Where(sq.Eq{"status": string(model.StatusAccepted)}).
		Where(sq.Lt{"confirmation_deadline": now}).
		OrderBy("confirmation_deadline").
		Limit(uint64(limit))
	return collectMany[model.Exchange](ctx, r.db, "exchanges", q)
}

func (t *txRepo) GetUser(ctx context.Context, id uuid.UUID) (model.User, error) {
	return collectOne[model.User](ctx, t.q, "user", selectUser(id))
}

func (t *txRepo) GetBook(ctx context.Context, id uuid.UUID) (model.Book, error) {
	return collectOne[model.Book](ctx, t.q, "book", selectBook(id))
}

func (t *txRepo) GetExchange(ctx context.Context, id uuid.UUID) (model.Exchange, error) {
	return collectOne[model.Exchange](ctx, t.q, "exchange", selectExchanges().Where(sq.Eq{"id": id}))
}

func (t *txRepo) LockBook(ctx context.Context, id uuid.UUID) (model.Book, error) {
	return collectOne[model.Book](ctx, t.q, "book", selectBook(id).Suffix("for update"))
}

func (t *txRepo) LockUser(ctx context.Context, id uuid.UUID) (model.User, error) {
	return collectOne[model.User](ctx, t.q, "user", selectUser(id).Suffix("for update"))
}

func (t *txRepo) LockExchange(ctx context.Context, id uuid.UUID) (model.Exchange, error) {
	return collectOne[model.Exchange](ctx, t.q, "exchange",
		selectExchanges().Where(sq.Eq{"id": id}).Suffix("for update"))
}

func (t *txRepo) LockActiveExchanges(ctx context.Context, bookID uuid.UUID) ([]model.Exchange, error) {
	q := selectExchanges().
		Where(sq.Eq{"book_id": bookID, "status": activeStatuses}).
		OrderBy("id").
		Suffix("for update")
	return collectMany[model.Exchange](ctx, t.q, "exchanges", q)
}

func (t *txRepo) HasActiveExchange(ctx context.Context, bookID, requesterID uuid.UUID) (bool, error) {
	q := `
select exists(
    select 1 from exchanges
    where book_id = @book_id and requester_id = @requester_id and status in ('pending', 'accepted')
)`
	return exists(ctx, t.q, q, pgx.NamedArgs{
		"book_id":      bookID,
		"requester_id": requesterID,
	})
}

func (t *txRepo) CreateExchange(ctx context.Context, e model.Exchange) error {
	q := qb.Insert(exchangesTableName).SetMap(map[string]any{
		"id":              e.ID,
		"book_id":         e.BookID,
		"requester_id":    e.RequesterID,
		"owner_id":        e.OwnerID,
		"points_offered":  e.PointsOffered,
		"points_locked":   e.PointsLocked,
		"status":          string(e.Status),
		"message":         e.Message,
		"meeting_address": e.MeetingAddress,
		"meeting_lat":     e.MeetingLat,
		"meeting_lng":     e.MeetingLng,
		"scheduled_at":    e.ScheduledAt,
		"created_at":      e.CreatedAt,
		"updated_at":      e.UpdatedAt,
	})
	if _, err := exec(ctx, t.q, "exchange", q); err != nil {
		if isUniqueViolation(err, activePairIndex) {
			return errs.Duplicate("an open exchange request for this book already exists")
		}
		return errors.Wrap(err, "insert exchange")
	}
	return nil
}

func (t *txRepo) UpdateExchange(ctx context.Context, e model.Exchange) error {
	q := qb.Update(exchangesTableName).SetMap(map[string]any{
		"points_locked":         e.PointsLocked,
		"status":                string(e.Status),
		"accepted_at":           e.AcceptedAt,
		"confirmation_deadline": e.ConfirmationDeadline,
		"completed_at":          e.CompletedAt,
		"declined_reason":       e.DeclinedReason,
		"cancelled_at":          e.CancelledAt,
		"cancel_reason":         e.CancelReason,
		"book_condition_rating": e.BookConditionRating,
		"updated_at":            e.UpdatedAt,
	}).Where(sq.Eq{"id": e.ID})
	tag, err := exec(ctx, t.q, "exchange", q)
	if err != nil {
		return errors.Wrap(err, "update exchange")
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("exchange")
	}
	return nil
}

func (t *txRepo) SetBookOwner(ctx context.Context, bookID, ownerID uuid.UUID, available bool) error {
	q := qb.Update(booksTableName).
		Set("owner_id", ownerID).
		Set("is_available", available).
		Where(sq.Eq{"id": bookID})
	tag, err := exec(ctx, t.q, "book", q)
	if err != nil {
		return errors.Wrap(err, "update book owner")
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("book")
	}
	return nil
}
