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

var reportColumns = []string{
	"id", "type", "status", "priority", "reporter_id", "reported_user_id", "exchange_id", "book_id",
	"reason", "description", "evidence", "expected_condition", "actual_condition", "condition_photos",
	"auto_flags", "resolution", "resolution_notes", "resolved_by", "resolved_at", "points_adjusted",
	"exchange_reversed", "user_warned", "user_suspended", "created_at", "updated_at",
}

func selectReports() sq.SelectBuilder {
	return qb.Select(reportColumns...).From(reportsTableName)
}

func (r *repository) GetReport(ctx context.Context, id uuid.UUID) (model.Report, error) {
	return collectOne[model.Report](ctx, r.db, "report", selectReports().Where(sq.Eq{"id": id}))
}

func (r *repository) ListReports(ctx context.Context, f model.ReportFilter, p model.Paging) ([]model.Report, int, error) {
	ctx, span := r.tracer.Start(ctx, "repo.ListReports")
	defer span.End()

	where := sq.And{}
	if f.Status != "" {
		where = append(where, sq.Eq{"status": string(f.Status)})
	}
	if f.Priority != "" {
		where = append(where, sq.Eq{"priority": string(f.Priority)})
	}
	if f.ReporterID != nil {
		where = append(where, sq.Eq{"reporter_id": *f.ReporterID})
	}

	total, err := count(ctx, r.db, qb.Select("count(*)").From(reportsTableName).Where(where))
	if err != nil {
		return nil, 0, errors.Wrap(err, "count reports")
	}
	order := `case priority when 'critical' then 0 when 'high' then 1 when 'medium' then 2 else 3 end`
	q := pagingSuffix(selectReports().Where(where).OrderBy(order, "created_at desc"), p)
	r.log.Debug("ListReports", zapQuery(q))

	items, err := collectMany[model.Report](ctx, r.db, "reports", q)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (t *txRepo) LockReport(ctx context.Context, id uuid.UUID) (model.Report, error) {
	return collectOne[model.Report](ctx, t.q, "report", selectReports().Where(sq.Eq{"id": id}).Suffix("for update"))
}

func (t *txRepo) HasOpenReport(ctx context.Context, r model.Report) (bool, error) {
	q := `
select exists(
    select 1 from reports
    where reporter_id = @reporter_id
      and status <> 'resolved'
      and exchange_id is not distinct from @exchange_id
      and book_id is not distinct from @book_id
      and reported_user_id is not distinct from @reported_user_id
)`
	return exists(ctx, t.q, q, pgx.NamedArgs{
		"reporter_id":      r.ReporterID,
		"exchange_id":      r.ExchangeID,
		"book_id":          r.BookID,
		"reported_user_id": r.ReportedUserID,
	})
}

func (t *txRepo) CreateReport(ctx context.Context, r model.Report) error {
	q := qb.Insert(reportsTableName).SetMap(map[string]any{
		"id":                 r.ID,
		"type":               string(r.Type),
		"status":             string(r.Status),
		"priority":           string(r.Priority),
		"reporter_id":        r.ReporterID,
		"reported_user_id":   r.ReportedUserID,
		"exchange_id":        r.ExchangeID,
		"book_id":            r.BookID,
		"reason":             r.Reason,
		"description":        r.Description,
		"evidence":           nonNil(r.Evidence),
		"expected_condition": r.ExpectedCondition,
		"actual_condition":   r.ActualCondition,
		"condition_photos":   nonNil(r.ConditionPhotos),
		"auto_flags":         nonNil(r.AutoFlags),
		"created_at":         r.CreatedAt,
		"updated_at":         r.UpdatedAt,
	})
	if _, err := exec(ctx, t.q, "report", q); err != nil {
		if isUniqueViolation(err, openReportIndex) {
			return errs.Duplicate("you already have an open report about this")
		}
		return errors.Wrap(err, "insert report")
	}
	return nil
}

func (t *txRepo) UpdateReport(ctx context.Context, r model.Report) error {
	q := qb.Update(reportsTableName).SetMap(map[string]any{
		"status":            string(r.Status),
		"resolution":        r.Resolution,
		"resolution_notes":  r.ResolutionNotes,
		"resolved_by":       r.ResolvedBy,
		"resolved_at":       r.ResolvedAt,
		"points_adjusted":   r.PointsAdjusted,
		"exchange_reversed": r.ExchangeReversed,
		"user_warned":       r.UserWarned,
		"user_suspended":    r.UserSuspended,
		"updated_at":        r.UpdatedAt,
	}).Where(sq.Eq{"id": r.ID})
	tag, err := exec(ctx, t.q, "report", q)
	if err != nil {
		return errors.Wrap(err, "update report")
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("report")
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
