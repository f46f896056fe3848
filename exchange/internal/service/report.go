package service

import (
	"context"

	"github.com/Astemirdum/book-exchange/exchange/internal/antiabuse"
	"github.com/Astemirdum/book-exchange/exchange/internal/errs"
	"github.com/Astemirdum/book-exchange/exchange/internal/model"
	"github.com/Astemirdum/book-exchange/exchange/internal/repository"
	"github.com/Astemirdum/book-exchange/pkg/auth"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var basePriority = map[model.ReportType]model.Severity{
	model.ReportFraud:                model.SeverityHigh,
	model.ReportHarassment:           model.SeverityHigh,
	model.ReportConditionMismatch:    model.SeverityMedium,
	model.ReportNoShow:               model.SeverityMedium,
	model.ReportInappropriateContent: model.SeverityMedium,
	model.ReportSpam:                 model.SeverityLow,
	model.ReportOther:                model.SeverityLow,
}

var resolutions = map[model.Resolution]struct{}{
	model.ResolutionDismissed:        {},
	model.ResolutionWarning:          {},
	model.ResolutionPointsAdjusted:   {},
	model.ResolutionExchangeReversed: {},
	model.ResolutionUserSuspended:    {},
	model.ResolutionOther:            {},
}

func (s *Service) CreateReport(ctx context.Context, reporterID uuid.UUID, req model.CreateReportRequest) (model.Report, error) {
	base, ok := basePriority[req.Type]
	if !ok {
		return model.Report{}, errs.Validation("unknown report type %q", req.Type)
	}
	if req.ExchangeID == nil && req.BookID == nil && req.ReportedUserID == nil {
		return model.Report{}, errs.Validation("a report must reference an exchange, a book or a user")
	}
	reporter, err := s.repo.GetUser(ctx, reporterID)
	if err != nil {
		return model.Report{}, err
	}
	if reporter.Suspended {
		return model.Report{}, errs.Forbidden("account is suspended")
	}

	bookID, reportedID := req.BookID, req.ReportedUserID
	switch {
	case req.ExchangeID != nil:
		ex, err := s.repo.GetExchange(ctx, *req.ExchangeID)
		if err != nil {
			return model.Report{}, err
		}
		var other uuid.UUID
		switch ex.RoleOf(reporterID) {
		case model.UserRoleRequester:
			other = ex.OwnerID
		case model.UserRoleOwner:
			other = ex.RequesterID
		default:
			return model.Report{}, errs.Forbidden("not a participant of this exchange")
		}
		if reportedID != nil && *reportedID != other {
			return model.Report{}, errs.Validation("reported user is not the other party of the exchange")
		}
		if bookID != nil && *bookID != ex.BookID {
			return model.Report{}, errs.Validation("book does not belong to the exchange")
		}
		reportedID, bookID = &other, &ex.BookID
	case bookID != nil:
		book, err := s.repo.GetBook(ctx, *bookID)
		if err != nil {
			return model.Report{}, err
		}
		if reportedID == nil && book.OwnerID != reporterID {
			reportedID = &book.OwnerID
		}
	}
	if reportedID != nil {
		if *reportedID == reporterID {
			return model.Report{}, errs.Validation("cannot report yourself")
		}
		if req.ExchangeID == nil {
			if _, err := s.repo.GetUser(ctx, *reportedID); err != nil {
				return model.Report{}, err
			}
		}
	}

	flags, severity := s.assessReport(ctx, reporterID, reportedID, bookID)

	now := s.now()
	r := model.Report{
		ID:                uuid.New(),
		Type:              req.Type,
		Status:            model.ReportPending,
		Priority:          model.MaxSeverity(base, severity),
		ReporterID:        reporterID,
		ReportedUserID:    reportedID,
		ExchangeID:        req.ExchangeID,
		BookID:            bookID,
		Reason:            req.Reason,
		Description:       req.Description,
		Evidence:          req.Evidence,
		ExpectedCondition: req.ExpectedCondition,
		ActualCondition:   req.ActualCondition,
		ConditionPhotos:   req.ConditionPhotos,
		AutoFlags:         flags,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	err = s.repo.WithTx(ctx, "create_report", func(ctx context.Context, tx repository.Tx) error {
		// the reporter's row serializes their concurrent reports
		if _, err := tx.LockUser(ctx, reporterID); err != nil {
			return err
		}
		dup, err := tx.HasOpenReport(ctx, r)
		if err != nil {
			return errors.Wrap(err, "open report")
		}
		if dup {
			return errs.Duplicate("you already have an open report about this")
		}
		return tx.CreateReport(ctx, r)
	})
	if err != nil {
		return model.Report{}, err
	}
	s.log.Info("report created",
		zap.Stringer("report_id", r.ID),
		zap.String("type", string(r.Type)),
		zap.String("priority", string(r.Priority)),
		zap.Strings("flags", r.AutoFlags))
	return r, nil
}

// assessReport runs the detectors relevant to a report. Failures only cost
// the escalation, never the report.
func (s *Service) assessReport(ctx context.Context, reporterID uuid.UUID, reportedID, bookID *uuid.UUID) ([]string, model.Severity) {
	if reportedID == nil {
		if bookID == nil {
			return []string{}, ""
		}
		det, err := s.abuse.DetectRapidTransfers(ctx, *bookID)
		if err != nil {
			s.log.Warn("anti-abuse assessment failed", zap.Error(err))
			return []string{}, ""
		}
		if !det.IsSuspicious {
			return []string{}, ""
		}
		return []string{det.Flag}, det.Severity
	}
	a, err := s.abuse.Assess(ctx, antiabuse.Subject{
		UserID:  *reportedID,
		Partner: &reporterID,
		BookID:  bookID,
	})
	if err != nil {
		s.log.Warn("anti-abuse assessment failed", zap.Error(err))
		return []string{}, ""
	}
	if a.Flags == nil {
		a.Flags = []string{}
	}
	return a.Flags, a.Severity
}

func (s *Service) GetReport(ctx context.Context, actor auth.Identity, reportID uuid.UUID) (model.Report, error) {
	r, err := s.repo.GetReport(ctx, reportID)
	if err != nil {
		return model.Report{}, err
	}
	if !actor.IsModerator() && r.ReporterID != actor.UserID {
		return model.Report{}, errs.Forbidden("not allowed to view this report")
	}
	return r, nil
}

func (s *Service) ListReports(ctx context.Context, actor auth.Identity, f model.ReportFilter) (model.ListReports, error) {
	if !actor.IsModerator() {
		f.ReporterID = &actor.UserID
	}
	p := model.Paging{Page: f.Page, PageSize: f.Limit}.Normalize()
	items, total, err := s.repo.ListReports(ctx, f, p)
	if err != nil {
		return model.ListReports{}, errors.Wrap(err, "list reports")
	}
	if items == nil {
		items = []model.Report{}
	}
	p.TotalElements = total
	return model.ListReports{Paging: p, Items: items}, nil
}

func (s *Service) UpdateReportStatus(ctx context.Context, actor auth.Identity, reportID uuid.UUID, status model.ReportStatus) (model.Report, error) {
	if !actor.IsModerator() {
		return model.Report{}, errs.Forbidden("only moderators can change report status")
	}
	if status != model.ReportInvestigating {
		return model.Report{}, errs.Validation("status can only be set to %s", model.ReportInvestigating)
	}
	var r model.Report
	err := s.repo.WithTx(ctx, "update_report_status", func(ctx context.Context, tx repository.Tx) (err error) {
		r, err = tx.LockReport(ctx, reportID)
		if err != nil {
			return err
		}
		if r.Status == model.ReportResolved {
			return errs.AlreadyResolved()
		}
		if r.Status != model.ReportPending {
			return errs.InvalidState("report is already %s", r.Status)
		}
		r.Status = status
		r.UpdatedAt = s.now()
		return tx.UpdateReport(ctx, r)
	})
	if err != nil {
		return model.Report{}, err
	}
	return r, nil
}

// ResolveReport applies a moderator's decision in one transaction. It runs at
// most once per report since ledger effects are not idempotent.
func (s *Service) ResolveReport(ctx context.Context, actor auth.Identity, reportID uuid.UUID, req model.ResolveReportRequest) (model.ResolveResponse, error) {
	if !actor.IsModerator() {
		return model.ResolveResponse{}, errs.Forbidden("only moderators can resolve reports")
	}
	if _, ok := resolutions[req.Resolution]; !ok {
		return model.ResolveResponse{}, errs.Validation("invalid resolution %q", req.Resolution)
	}
	if req.PointsAdjusted < 0 {
		return model.ResolveResponse{}, errs.Validation("pointsAdjusted must not be negative")
	}

	var (
		r        model.Report
		actions  []model.ResolveAction
		reversed *reversal
	)
	err := s.repo.WithTx(ctx, "resolve_report", func(ctx context.Context, tx repository.Tx) (err error) {
		actions, reversed = nil, nil

		r, err = tx.LockReport(ctx, reportID)
		if err != nil {
			return err
		}
		if r.Status == model.ReportResolved {
			return errs.AlreadyResolved()
		}
		l := s.ledger(tx)
		now := s.now()

		if req.ExchangeReversed {
			if r.ExchangeID == nil {
				return errs.Validation("report does not reference an exchange to reverse")
			}
			rev, err := s.reverse(ctx, tx, *r.ExchangeID, r.ID)
			if err != nil {
				return err
			}
			reversed = &rev
			actions = append(actions, rev.actions...)
		}

		if req.PointsAdjusted > 0 {
			if _, err := l.Adjust(ctx, r.ReporterID, req.PointsAdjusted, r.ID); err != nil {
				return err
			}
			actions = append(actions, userAction("points_credited", r.ReporterID, req.PointsAdjusted))
			if r.ReportedUserID != nil {
				if _, err := l.Penalize(ctx, *r.ReportedUserID, req.PointsAdjusted, r.ID); err != nil {
					return err
				}
				actions = append(actions, userAction("points_penalized", *r.ReportedUserID, req.PointsAdjusted))
			}
		}

		if req.UserWarned || req.UserSuspended {
			if r.ReportedUserID == nil {
				return errs.Validation("report has no reported user to warn or suspend")
			}
			if err := tx.SetUserStanding(ctx, *r.ReportedUserID, req.UserWarned, req.UserSuspended); err != nil {
				return err
			}
			if req.UserWarned {
				actions = append(actions, userAction("user_warned", *r.ReportedUserID, 0))
			}
			if req.UserSuspended {
				actions = append(actions, userAction("user_suspended", *r.ReportedUserID, 0))
			}
		}

		resolution := req.Resolution
		r.Status = model.ReportResolved
		r.Resolution = &resolution
		r.ResolutionNotes = req.ResolutionNotes
		r.ResolvedBy = &actor.UserID
		r.ResolvedAt = &now
		r.PointsAdjusted = req.PointsAdjusted
		r.ExchangeReversed = req.ExchangeReversed
		r.UserWarned = req.UserWarned
		r.UserSuspended = req.UserSuspended
		r.UpdatedAt = now
		return tx.UpdateReport(ctx, r)
	})
	if err != nil {
		return model.ResolveResponse{}, err
	}

	if reversed != nil {
		evs := []model.ExchangeEvent{model.NewExchangeEvent(model.EventReversed, reversed.exchange, reversed.exchange.UpdatedAt)}
		for _, c := range reversed.cancelled {
			evs = append(evs, model.NewExchangeEvent(model.EventCancelled, c, c.UpdatedAt))
		}
		s.publish(ctx, evs...)
	}
	if actions == nil {
		actions = []model.ResolveAction{}
	}
	s.log.Info("report resolved",
		zap.Stringer("report_id", r.ID),
		zap.String("resolution", string(req.Resolution)),
		zap.Int("actions", len(actions)))
	return model.ResolveResponse{Report: r, Actions: actions}, nil
}

type reversal struct {
	exchange  model.Exchange
	cancelled []model.Exchange
	actions   []model.ResolveAction
}

// reverse undoes an exchange using the points recorded on it. A completed
// exchange gives the book back to the recorded owner, refunds the requester
// and claws the payment back from the owner. Open requests made to the
// requester while they held the book are cancelled and refunded. An open
// exchange just releases its escrow.
func (s *Service) reverse(ctx context.Context, tx repository.Tx, exchangeID, reportID uuid.UUID) (reversal, error) {
	book, ex, err := lockExchange(ctx, tx, exchangeID)
	if err != nil {
		return reversal{}, err
	}
	l := s.ledger(tx)
	now := s.now()

	switch ex.Status {
	case model.StatusCompleted:
		if book.OwnerID != ex.RequesterID {
			return reversal{}, errs.InvalidState("book has changed hands since the exchange")
		}
		open, err := tx.LockActiveExchanges(ctx, book.ID)
		if err != nil {
			return reversal{}, errors.Wrap(err, "lock active exchanges")
		}
		original := ex.OwnerID
		if err := tx.SetBookOwner(ctx, book.ID, original, true); err != nil {
			return reversal{}, err
		}
		if _, err := l.Refund(ctx, ex.RequesterID, ex.PointsOffered, ex.ID, reportID); err != nil {
			return reversal{}, err
		}
		if _, err := l.Penalize(ctx, original, ex.PointsOffered, reportID); err != nil {
			return reversal{}, err
		}
		reason := model.CancelReasonReversed
		ex.Status = model.StatusCancelled
		ex.CancelledAt = &now
		ex.CancelReason = &reason
		ex.UpdatedAt = now
		if err := tx.UpdateExchange(ctx, ex); err != nil {
			return reversal{}, err
		}
		rev := reversal{exchange: ex}
		rev.actions = []model.ResolveAction{
			userAction("book_returned", original, 0),
			userAction("points_refunded", ex.RequesterID, ex.PointsOffered),
			userAction("points_clawed_back", original, ex.PointsOffered),
			exchangeAction("exchange_cancelled", ex.ID),
		}
		for i := range open {
			o := open[i]
			refunded := 0
			if o.PointsLocked {
				refunded = o.PointsOffered
			}
			if err := cancel(ctx, tx, l, &o, model.CancelReasonOwnerChanged, now, &reportID); err != nil {
				return reversal{}, err
			}
			if refunded > 0 {
				rev.actions = append(rev.actions, userAction("points_refunded", o.RequesterID, refunded))
			}
			rev.actions = append(rev.actions, exchangeAction("exchange_cancelled", o.ID))
			rev.cancelled = append(rev.cancelled, o)
		}
		return rev, nil
	case model.StatusPending, model.StatusAccepted:
		refunded := 0
		if ex.PointsLocked {
			refunded = ex.PointsOffered
		}
		if err := cancel(ctx, tx, l, &ex, model.CancelReasonReversed, now, &reportID); err != nil {
			return reversal{}, err
		}
		var acts []model.ResolveAction
		if refunded > 0 {
			acts = append(acts, userAction("points_refunded", ex.RequesterID, refunded))
		}
		acts = append(acts, exchangeAction("exchange_cancelled", ex.ID))
		return reversal{exchange: ex, actions: acts}, nil
	default:
		return reversal{}, errs.InvalidState("cannot reverse a %s exchange", ex.Status)
	}
}

func userAction(action string, userID uuid.UUID, points int) model.ResolveAction {
	return model.ResolveAction{Action: action, UserID: &userID, Points: points}
}

func exchangeAction(action string, exchangeID uuid.UUID) model.ResolveAction {
	return model.ResolveAction{Action: action, ExchangeID: &exchangeID}
}
