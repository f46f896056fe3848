package repository

import (
	"context"
	"time"

	"github.com/Astemirdum/book-exchange/exchange/internal/errs"
	"github.com/Astemirdum/book-exchange/exchange/internal/model"
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Repository interface {
	// WithTx runs fn in one read-committed transaction. Serialization failures
	// and deadlocks restart fn from scratch, up to maxTxAttempts times.
	WithTx(ctx context.Context, name string, fn func(ctx context.Context, tx Tx) error) error
	Reader
	Analytics
}

type Reader interface {
	GetUser(ctx context.Context, id uuid.UUID) (model.User, error)
	GetBook(ctx context.Context, id uuid.UUID) (model.Book, error)
	GetExchange(ctx context.Context, id uuid.UUID) (model.Exchange, error)
	ListExchanges(ctx context.Context, userID uuid.UUID, f model.ExchangeFilter, p model.Paging) ([]model.Exchange, int, error)
	StaleExchanges(ctx context.Context, now time.Time, limit int) ([]model.Exchange, error)
	GetReport(ctx context.Context, id uuid.UUID) (model.Report, error)
	ListReports(ctx context.Context, f model.ReportFilter, p model.Paging) ([]model.Report, int, error)
	ListLedgerEntries(ctx context.Context, userID uuid.UUID, p model.Paging) ([]model.LedgerEntry, int, error)
}

// Analytics are the read-only aggregates behind the anti-abuse heuristics.
type Analytics interface {
	CountCompletedBetween(ctx context.Context, a, b uuid.UUID, since time.Time) (int, error)
	CountCompletedForBook(ctx context.Context, bookID uuid.UUID, since time.Time) (int, error)
	UserActivity(ctx context.Context, userID uuid.UUID, since time.Time) (model.Activity, error)
	TrustInputs(ctx context.Context, userID uuid.UUID) (model.TrustInputs, error)
}

// Tx is the unit of work handed to WithTx callbacks. Lock* methods take row
// locks; callers acquire them in the order report, book, exchanges, users.
type Tx interface {
	GetUser(ctx context.Context, id uuid.UUID) (model.User, error)
	GetBook(ctx context.Context, id uuid.UUID) (model.Book, error)
	GetExchange(ctx context.Context, id uuid.UUID) (model.Exchange, error)

	LockReport(ctx context.Context, id uuid.UUID) (model.Report, error)
	LockBook(ctx context.Context, id uuid.UUID) (model.Book, error)
	LockExchange(ctx context.Context, id uuid.UUID) (model.Exchange, error)
	LockActiveExchanges(ctx context.Context, bookID uuid.UUID) ([]model.Exchange, error)
	LockUser(ctx context.Context, id uuid.UUID) (model.User, error)

	HasActiveExchange(ctx context.Context, bookID, requesterID uuid.UUID) (bool, error)
	CreateExchange(ctx context.Context, e model.Exchange) error
	UpdateExchange(ctx context.Context, e model.Exchange) error
	SetBookOwner(ctx context.Context, bookID, ownerID uuid.UUID, available bool) error

	SetUserPoints(ctx context.Context, userID uuid.UUID, points int) error
	SetUserStanding(ctx context.Context, userID uuid.UUID, warn, suspend bool) error
	InsertLedgerEntry(ctx context.Context, e model.LedgerEntry) error
	PaymentApplied(ctx context.Context, paymentID string) (bool, error)

	HasOpenReport(ctx context.Context, r model.Report) (bool, error)
	CreateReport(ctx context.Context, r model.Report) error
	UpdateReport(ctx context.Context, r model.Report) error
}

type repository struct {
	db     *pgxpool.Pool
	tracer trace.Tracer
	log    *zap.Logger
}

func NewRepository(db *pgxpool.Pool, log *zap.Logger) (*repository, error) {
	return &repository{
		db:     db,
		tracer: otel.Tracer("book-exchange/repository"),
		log:    log.Named("repo"),
	}, nil
}

const (
	usersTableName     = `users`
	booksTableName     = `books`
	exchangesTableName = `exchanges`
	reportsTableName   = `reports`
	ledgerTableName    = `ledger_entries`

	activePairIndex = `exchanges_active_pair_uidx`
	paymentIndex    = `ledger_entries_payment_id_uidx`
	openReportIndex = `reports_open_target_uidx`
)

const maxTxAttempts = 3

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *repository) WithTx(ctx context.Context, name string, fn func(ctx context.Context, tx Tx) error) error {
	ctx, span := r.tracer.Start(ctx, "repo.tx."+name)
	defer span.End()

	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = pgx.BeginTxFunc(ctx, r.db, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(tx pgx.Tx) error {
			return fn(ctx, &txRepo{q: tx})
		})
		if !isRetryable(err) {
			break
		}
		span.AddEvent("tx.retry", trace.WithAttributes(attribute.Int("attempt", attempt)))
		r.log.Warn("tx retry", zap.String("tx", name), zap.Int("attempt", attempt), zap.Error(err))
	}
	if isRetryable(err) {
		err = errors.Wrap(errs.ErrConflict, err.Error())
	}
	if err != nil {
		if _, ok := errs.As(err); !ok {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return err
	}
	return nil
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgerrcode.SerializationFailure || pgErr.Code == pgerrcode.DeadlockDetected
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgerrcode.UniqueViolation && (constraint == "" || pgErr.ConstraintName == constraint)
}

type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func collectOne[T any](ctx context.Context, q querier, entity string, b sq.Sqlizer) (T, error) {
	var zero T
	query, args, err := b.ToSql()
	if err != nil {
		return zero, errors.Wrapf(err, "build %s query", entity)
	}
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return zero, errors.Wrapf(err, "query %s", entity)
	}
	defer rows.Close()

	v, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, errs.NotFound(entity)
		}
		return zero, errors.Wrapf(err, "collect %s", entity)
	}
	return v, nil
}

func collectMany[T any](ctx context.Context, q querier, entity string, b sq.Sqlizer) ([]T, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, errors.Wrapf(err, "build %s query", entity)
	}
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "query %s", entity)
	}
	defer rows.Close()

	vs, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, errors.Wrapf(err, "collect %s", entity)
	}
	return vs, nil
}

func count(ctx context.Context, q querier, b sq.SelectBuilder) (int, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	n, err := pgx.CollectOneRow(rows, pgx.RowTo[int])
	if err != nil {
		return 0, errors.Wrap(err, "count")
	}
	return n, nil
}

func exists(ctx context.Context, q querier, query string, args pgx.NamedArgs) (bool, error) {
	rows, err := q.Query(ctx, query, args)
	if err != nil {
		return false, err
	}
	ok, err := pgx.CollectOneRow(rows, pgx.RowTo[bool])
	if err != nil {
		return false, errors.Wrap(err, "exists")
	}
	return ok, nil
}

func exec(ctx context.Context, q querier, entity string, b sq.Sqlizer) (pgconn.CommandTag, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return pgconn.CommandTag{}, errors.Wrapf(err, "build %s statement", entity)
	}
	return q.Exec(ctx, query, args...)
}

func pagingSuffix(b sq.SelectBuilder, p model.Paging) sq.SelectBuilder {
	return b.Limit(uint64(p.PageSize)).Offset(uint64(p.Offset()))
}

func zapQuery(b sq.Sqlizer) zap.Field {
	query, _, _ := b.ToSql() //nolint:errcheck
	return zap.String("query", query)
}
