package repository

import (
	"context"
	"time"

	"github.com/Astemirdum/book-exchange/exchange/internal/errs"
	"github.com/Astemirdum/book-exchange/exchange/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

func (r *repository) CountCompletedBetween(ctx context.Context, a, b uuid.UUID, since time.Time) (int, error) {
	q := `
select count(*) from exchanges
where status = 'completed'
  and completed_at >= @since
  and ((requester_id = @a and owner_id = @b) or (requester_id = @b and owner_id = @a))`
	return r.countNamed(ctx, q, pgx.NamedArgs{"a": a, "b": b, "since": since})
}

func (r *repository) CountCompletedForBook(ctx context.Context, bookID uuid.UUID, since time.Time) (int, error) {
	q := `
select count(*) from exchanges
where status = 'completed' and book_id = @book_id and completed_at >= @since`
	return r.countNamed(ctx, q, pgx.NamedArgs{"book_id": bookID, "since": since})
}

func (r *repository) UserActivity(ctx context.Context, userID uuid.UUID, since time.Time) (model.Activity, error) {
	ctx, span := r.tracer.Start(ctx, "repo.UserActivity")
	defer span.End()

	q := `
with recent as (
    select owner_id, points_offered, status,
           case when requester_id = @user_id then owner_id else requester_id end as partner
    from exchanges
    where (requester_id = @user_id or owner_id = @user_id)
      and coalesce(completed_at, created_at) >= @since
)
select
    (select count(*) from recent) as volume,
    (select count(*) from (
        select partner from recent where status = 'completed' group by partner having count(*) >= 2
    ) p) as repeated_partners,
    (select coalesce(sum(points_offered), 0) from recent
     where status = 'completed' and owner_id = @user_id) as points_earned`
	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID, "since": since})
	if err != nil {
		return model.Activity{}, errors.Wrap(err, "query user activity")
	}
	a, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Activity])
	if err != nil {
		return model.Activity{}, errors.Wrap(err, "collect user activity")
	}
	return a, nil
}

func (r *repository) TrustInputs(ctx context.Context, userID uuid.UUID) (model.TrustInputs, error) {
	ctx, span := r.tracer.Start(ctx, "repo.TrustInputs")
	defer span.End()

	q := `
select u.created_at,
       (select count(*) from exchanges e
        where e.status = 'completed' and (e.requester_id = u.id or e.owner_id = u.id)) as completed_exchanges,
       (select avg(e.book_condition_rating)::float8 from exchanges e
        where e.status = 'completed' and e.owner_id = u.id
          and e.book_condition_rating is not null) as avg_rating,
       (select count(*) from reports r
        where r.reported_user_id = u.id and r.status in ('investigating', 'resolved')) as reports_against,
       (select count(*) from books b where b.owner_id = u.id) as books_listed
from users u
where u.id = @user_id`
	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return model.TrustInputs{}, errors.Wrap(err, "query trust inputs")
	}
	in, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.TrustInputs])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.TrustInputs{}, errs.NotFound("user")
		}
		return model.TrustInputs{}, errors.Wrap(err, "collect trust inputs")
	}
	return in, nil
}

func (r *repository) countNamed(ctx context.Context, q string, args pgx.NamedArgs) (int, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return 0, errors.Wrap(err, "query count")
	}
	n, err := pgx.CollectOneRow(rows, pgx.RowTo[int])
	if err != nil {
		return 0, errors.Wrap(err, "collect count")
	}
	return n, nil
}
