package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/Astemirdum/book-exchange/exchange/internal/errs"
	"github.com/Astemirdum/book-exchange/exchange/internal/model"
	"github.com/Astemirdum/book-exchange/pkg/auth"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// completedExchange runs A requesting B's book through to completion.
func completedExchange(t *testing.T, f *fixture, cost int) (a, b, book uuid.UUID, ex model.Exchange) {
	t.Helper()
	a, b = f.store.addUser(100, model.RoleUser), f.store.addUser(0, model.RoleUser)
	book = f.store.addBook(b, cost)
	ex = f.request(t, a, book)
	f.accept(t, b, ex.ID)
	f.confirm(t, a, ex.ID, intPtr(2))
	return a, b, book, f.store.exchange(ex.ID)
}

func (f *fixture) report(t *testing.T, reporter uuid.UUID, req model.CreateReportRequest) model.Report {
	t.Helper()
	r, err := f.svc.CreateReport(context.Background(), reporter, req)
	require.NoError(t, err)
	return r
}

func TestResolveReport_ReversesCompletedExchange(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	a, b, book, ex := completedExchange(t, f, 30)
	require.Equal(t, 70, f.store.balance(a))
	require.Equal(t, 30, f.store.balance(b))

	r := f.report(t, a, model.CreateReportRequest{
		Type:       model.ReportConditionMismatch,
		ExchangeID: &ex.ID,
		Reason:     "pages missing",
	})
	require.Equal(t, b, *r.ReportedUserID, "reported user is inferred from the exchange")
	require.Equal(t, book, *r.BookID)

	mod := moderator(f)
	resp, err := f.svc.ResolveReport(context.Background(), mod, r.ID, model.ResolveReportRequest{
		Resolution:       model.ResolutionExchangeReversed,
		ExchangeReversed: true,
	})
	require.NoError(t, err)
	require.Equal(t, model.ReportResolved, resp.Report.Status)
	require.Equal(t, mod.UserID, *resp.Report.ResolvedBy)
	require.True(t, resp.Report.ExchangeReversed)
	require.Len(t, resp.Actions, 4)

	require.Equal(t, b, f.store.book(book).OwnerID)
	require.Equal(t, 100, f.store.balance(a))
	require.Equal(t, 0, f.store.balance(b))
	got := f.store.exchange(ex.ID)
	require.Equal(t, model.StatusCancelled, got.Status)
	require.Equal(t, model.CancelReasonReversed, *got.CancelReason)
	require.Contains(t, f.events.types(), model.EventReversed)
}

func TestResolveReport_CancelsRequestsMadeToReversedRequester(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	a, b, book, e1 := completedExchange(t, f, 30)
	c := f.store.addUser(100, model.RoleUser)
	e2 := f.request(t, c, book)
	require.Equal(t, a, e2.OwnerID)
	require.Equal(t, 70, f.store.balance(c))

	r := f.report(t, b, model.CreateReportRequest{Type: model.ReportFraud, ExchangeID: &e1.ID, Reason: "counterfeit"})
	resp, err := f.svc.ResolveReport(ctx, moderator(f), r.ID, model.ResolveReportRequest{
		Resolution:       model.ResolutionExchangeReversed,
		ExchangeReversed: true,
	})
	require.NoError(t, err)
	require.Len(t, resp.Actions, 6)

	require.Equal(t, b, f.store.book(book).OwnerID)
	got := f.store.exchange(e2.ID)
	require.Equal(t, model.StatusCancelled, got.Status)
	require.Equal(t, model.CancelReasonOwnerChanged, *got.CancelReason)
	require.Equal(t, 100, f.store.balance(a))
	require.Equal(t, 0, f.store.balance(b))
	require.Equal(t, 100, f.store.balance(c))

	_, err = f.svc.AcceptExchange(ctx, b, e2.ID)
	require.ErrorIs(t, err, errs.ErrAuthorization, "the request was never made to the restored owner")
	_, err = f.svc.AcceptExchange(ctx, a, e2.ID)
	require.ErrorIs(t, err, errs.ErrInvalidState)

	var refunds int
	for _, e := range f.store.entries {
		if e.Kind != model.EntryRelease || e.ReportID == nil {
			continue
		}
		require.Equal(t, r.ID, *e.ReportID)
		require.Contains(t, []uuid.UUID{e1.ID, e2.ID}, *e.ExchangeID)
		refunds++
	}
	require.Equal(t, 2, refunds, "both refunds name the report")
	require.Contains(t, f.events.types(), model.EventCancelled)
}

func TestResolveReport_SecondCallRejected(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	a, b, _, ex := completedExchange(t, f, 30)
	r := f.report(t, a, model.CreateReportRequest{Type: model.ReportFraud, ExchangeID: &ex.ID, Reason: "fake book"})
	mod := moderator(f)
	req := model.ResolveReportRequest{
		Resolution:     model.ResolutionPointsAdjusted,
		PointsAdjusted: 40,
		UserWarned:     true,
	}

	_, err := f.svc.ResolveReport(ctx, mod, r.ID, req)
	require.NoError(t, err)
	require.Equal(t, 110, f.store.balance(a))
	require.Equal(t, -10, f.store.balance(b), "penalties have no floor")
	require.Equal(t, 1, f.store.user(b).WarningCount)

	_, err = f.svc.ResolveReport(ctx, mod, r.ID, req)
	require.ErrorIs(t, err, errs.ErrAlreadyResolved)
	require.Equal(t, 110, f.store.balance(a))
	require.Equal(t, -10, f.store.balance(b))
	require.Equal(t, 1, f.store.user(b).WarningCount)
}

func TestResolveReport_Rejections(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("not a moderator", func(t *testing.T) {
		f := newFixture(t)
		a, _, _, ex := completedExchange(t, f, 10)
		r := f.report(t, a, model.CreateReportRequest{Type: model.ReportOther, ExchangeID: &ex.ID, Reason: "meh"})
		_, err := f.svc.ResolveReport(ctx, auth.Identity{UserID: a, Role: auth.RoleUser}, r.ID, model.ResolveReportRequest{
			Resolution: model.ResolutionDismissed,
		})
		require.ErrorIs(t, err, errs.ErrAuthorization)
	})

	t.Run("invalid resolution", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.ResolveReport(ctx, moderator(f), uuid.New(), model.ResolveReportRequest{Resolution: "banish"})
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("report not found", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.ResolveReport(ctx, moderator(f), uuid.New(), model.ResolveReportRequest{Resolution: model.ResolutionDismissed})
		require.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("book resold before reversal", func(t *testing.T) {
		f := newFixture(t)
		a, b, book, ex := completedExchange(t, f, 30)
		r := f.report(t, b, model.CreateReportRequest{Type: model.ReportNoShow, ExchangeID: &ex.ID, Reason: "never paid"})

		c := f.store.addUser(100, model.RoleUser)
		ex2 := f.request(t, c, book)
		f.accept(t, a, ex2.ID)
		f.confirm(t, c, ex2.ID, nil)
		before := f.store.points()

		_, err := f.svc.ResolveReport(ctx, moderator(f), r.ID, model.ResolveReportRequest{
			Resolution:       model.ResolutionExchangeReversed,
			ExchangeReversed: true,
			PointsAdjusted:   5,
		})
		require.ErrorIs(t, err, errs.ErrInvalidState)
		require.Equal(t, before, f.store.points(), "failed resolution leaves no partial effects")
		require.Equal(t, c, f.store.book(book).OwnerID)
		require.Equal(t, model.ReportPending, f.store.reports[r.ID].Status)
	})

	t.Run("reversing a declined exchange", func(t *testing.T) {
		f := newFixture(t)
		a, b := f.store.addUser(100, model.RoleUser), f.store.addUser(0, model.RoleUser)
		ex := f.request(t, a, f.store.addBook(b, 10))
		_, err := f.svc.DeclineExchange(ctx, b, ex.ID, model.DeclineRequest{})
		require.NoError(t, err)
		r := f.report(t, a, model.CreateReportRequest{Type: model.ReportHarassment, ExchangeID: &ex.ID, Reason: "rude reply"})

		_, err = f.svc.ResolveReport(ctx, moderator(f), r.ID, model.ResolveReportRequest{
			Resolution:       model.ResolutionExchangeReversed,
			ExchangeReversed: true,
		})
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestResolveReport_ReversesOpenExchange(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	a, b := f.store.addUser(100, model.RoleUser), f.store.addUser(0, model.RoleUser)
	ex := f.request(t, a, f.store.addBook(b, 30))
	f.accept(t, b, ex.ID)
	r := f.report(t, b, model.CreateReportRequest{Type: model.ReportSpam, ExchangeID: &ex.ID, Reason: "spam messages"})

	_, err := f.svc.ResolveReport(context.Background(), moderator(f), r.ID, model.ResolveReportRequest{
		Resolution:       model.ResolutionUserSuspended,
		ExchangeReversed: true,
		UserSuspended:    true,
	})
	require.NoError(t, err)
	require.Equal(t, 100, f.store.balance(a))
	require.Equal(t, 0, f.store.balance(b))
	require.True(t, f.store.user(a).Suspended)

	_, err = f.svc.CreateExchange(context.Background(), a, model.CreateExchangeRequest{BookID: f.store.addBook(b, 5)})
	require.ErrorIs(t, err, errs.ErrAuthorization, "suspended users cannot request exchanges")
}

func TestCreateReport(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("outsider cannot report an exchange", func(t *testing.T) {
		f := newFixture(t)
		_, _, _, ex := completedExchange(t, f, 10)
		_, err := f.svc.CreateReport(ctx, f.store.addUser(0, model.RoleUser), model.CreateReportRequest{
			Type: model.ReportFraud, ExchangeID: &ex.ID, Reason: "looks off",
		})
		require.ErrorIs(t, err, errs.ErrAuthorization)
	})

	t.Run("missing exchange", func(t *testing.T) {
		f := newFixture(t)
		id := uuid.New()
		_, err := f.svc.CreateReport(ctx, f.store.addUser(0, model.RoleUser), model.CreateReportRequest{
			Type: model.ReportFraud, ExchangeID: &id, Reason: "looks off",
		})
		require.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("no target", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.CreateReport(ctx, f.store.addUser(0, model.RoleUser), model.CreateReportRequest{
			Type: model.ReportSpam, Reason: "spam",
		})
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("self report", func(t *testing.T) {
		f := newFixture(t)
		a := f.store.addUser(0, model.RoleUser)
		_, err := f.svc.CreateReport(ctx, a, model.CreateReportRequest{
			Type: model.ReportSpam, ReportedUserID: &a, Reason: "spam",
		})
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("duplicate open report", func(t *testing.T) {
		f := newFixture(t)
		a, _, _, ex := completedExchange(t, f, 10)
		req := model.CreateReportRequest{Type: model.ReportFraud, ExchangeID: &ex.ID, Reason: "fake"}
		f.report(t, a, req)
		_, err := f.svc.CreateReport(ctx, a, req)
		require.ErrorIs(t, err, errs.ErrDuplicateRequest)
	})

	t.Run("book report targets the owner", func(t *testing.T) {
		f := newFixture(t)
		owner := f.store.addUser(0, model.RoleUser)
		book := f.store.addBook(owner, 10)
		r := f.report(t, f.store.addUser(0, model.RoleUser), model.CreateReportRequest{
			Type: model.ReportInappropriateContent, BookID: &book, Reason: "offensive cover",
		})
		require.Equal(t, owner, *r.ReportedUserID)
		require.Equal(t, model.SeverityMedium, r.Priority)
		require.Empty(t, r.AutoFlags)
	})

	t.Run("priority escalates on low trust", func(t *testing.T) {
		f := newFixture(t)
		reported := f.store.addUser(0, model.RoleUser)
		mod := moderator(f)
		for i := 0; i < 2; i++ {
			r := f.report(t, f.store.addUser(0, model.RoleUser), model.CreateReportRequest{
				Type: model.ReportSpam, ReportedUserID: &reported, Reason: "spam again",
			})
			_, err := f.svc.UpdateReportStatus(ctx, mod, r.ID, model.ReportInvestigating)
			require.NoError(t, err)
		}
		r := f.report(t, f.store.addUser(0, model.RoleUser), model.CreateReportRequest{
			Type: model.ReportSpam, ReportedUserID: &reported, Reason: "spam again",
		})
		require.Equal(t, model.SeverityHigh, r.Priority)
		require.Equal(t, []string{model.FlagLowTrust}, r.AutoFlags)
	})
}

func TestReportVisibilityAndStatus(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	a, b, _, ex := completedExchange(t, f, 10)
	r := f.report(t, a, model.CreateReportRequest{Type: model.ReportFraud, ExchangeID: &ex.ID, Reason: "fake"})
	mod := moderator(f)
	userB := auth.Identity{UserID: b, Role: auth.RoleUser}

	_, err := f.svc.GetReport(ctx, userB, r.ID)
	require.ErrorIs(t, err, errs.ErrAuthorization)
	got, err := f.svc.GetReport(ctx, auth.Identity{UserID: a, Role: auth.RoleUser}, r.ID)
	require.NoError(t, err)
	require.Equal(t, r.ID, got.ID)

	list, err := f.svc.ListReports(ctx, userB, model.ReportFilter{})
	require.NoError(t, err)
	require.Empty(t, list.Items)
	list, err = f.svc.ListReports(ctx, mod, model.ReportFilter{Status: model.ReportPending})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)

	_, err = f.svc.UpdateReportStatus(ctx, userB, r.ID, model.ReportInvestigating)
	require.ErrorIs(t, err, errs.ErrAuthorization)
	updated, err := f.svc.UpdateReportStatus(ctx, mod, r.ID, model.ReportInvestigating)
	require.NoError(t, err)
	require.Equal(t, model.ReportInvestigating, updated.Status)
	_, err = f.svc.UpdateReportStatus(ctx, mod, r.ID, model.ReportInvestigating)
	require.ErrorIs(t, err, errs.ErrInvalidState)
}

func TestCreateReport_ConcurrentDuplicates(t *testing.T) {
	t.Parallel()
	const attempts = 8
	f := newFixture(t)
	a, _, _, ex := completedExchange(t, f, 10)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.CreateReport(context.Background(), a, model.CreateReportRequest{
				Type:       model.ReportNoShow,
				ExchangeID: &ex.ID,
				Reason:     "did not show up",
			})
			if err == nil {
				mu.Lock()
				created++
				mu.Unlock()
				return
			}
			if !errors.Is(err, errs.ErrDuplicateRequest) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, created)
	require.Len(t, f.store.reports, 1)
}
