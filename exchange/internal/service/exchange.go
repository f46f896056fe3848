package service

import (
	"context"
	"time"

	"github.com/Astemirdum/book-exchange/exchange/internal/antiabuse"
	"github.com/Astemirdum/book-exchange/exchange/internal/errs"
	"github.com/Astemirdum/book-exchange/exchange/internal/ledger"
	"github.com/Astemirdum/book-exchange/exchange/internal/model"
	"github.com/Astemirdum/book-exchange/exchange/internal/repository"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func (s *Service) CreateExchange(ctx context.Context, requesterID uuid.UUID, req model.CreateExchangeRequest) (model.CreateExchangeResponse, error) {
	requester, err := s.repo.GetUser(ctx, requesterID)
	if err != nil {
		return model.CreateExchangeResponse{}, err
	}
	if requester.Suspended {
		return model.CreateExchangeResponse{}, errs.Forbidden("account is suspended")
	}
	book, err := s.repo.GetBook(ctx, req.BookID)
	if err != nil {
		return model.CreateExchangeResponse{}, err
	}
	if err := checkRequestable(book, requesterID); err != nil {
		return model.CreateExchangeResponse{}, err
	}

	// the price is fixed here and never recomputed
	points, err := s.valuer.Value(ctx, book)
	if err != nil {
		return model.CreateExchangeResponse{}, errors.Wrap(err, "value book")
	}

	assessment, err := s.abuse.Assess(ctx, antiabuse.Subject{
		UserID:  requesterID,
		Partner: &book.OwnerID,
		BookID:  &book.ID,
	})
	if err != nil {
		s.log.Warn("anti-abuse assessment failed", zap.Error(err))
	}
	if assessment.ShouldRestrict {
		s.log.Warn("exchange requested by restricted user",
			zap.Stringer("requester_id", requesterID), zap.Strings("flags", assessment.Flags))
	}

	now := s.now()
	ex := model.Exchange{
		ID:             uuid.New(),
		BookID:         book.ID,
		RequesterID:    requesterID,
		PointsOffered:  points,
		PointsLocked:   true,
		Status:         model.StatusPending,
		Message:        req.Message,
		MeetingAddress: req.MeetingAddress,
		MeetingLat:     req.MeetingLat,
		MeetingLng:     req.MeetingLng,
		ScheduledAt:    req.ScheduledAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	var balance int
	err = s.repo.WithTx(ctx, "create_exchange", func(ctx context.Context, tx repository.Tx) error {
		book, err := tx.LockBook(ctx, ex.BookID)
		if err != nil {
			return err
		}
		if err := checkRequestable(book, requesterID); err != nil {
			return err
		}
		dup, err := tx.HasActiveExchange(ctx, book.ID, requesterID)
		if err != nil {
			return errors.Wrap(err, "active exchange")
		}
		if dup {
			return errs.Duplicate("an open exchange request for this book already exists")
		}
		ex.OwnerID = book.OwnerID
		if err := tx.CreateExchange(ctx, ex); err != nil {
			return err
		}
		balance, err = s.ledger(tx).Lock(ctx, requesterID, ex.PointsOffered, ex.ID)
		return err
	})
	if err != nil {
		return model.CreateExchangeResponse{}, err
	}

	s.log.Info("exchange created",
		zap.Stringer("exchange_id", ex.ID),
		zap.Stringer("book_id", ex.BookID),
		zap.Int("points", ex.PointsOffered))
	s.publish(ctx, model.NewExchangeEvent(model.EventCreated, ex, now))

	ex.UserRole = model.UserRoleRequester
	return model.CreateExchangeResponse{
		Exchange:     ex,
		PointsLocked: ex.PointsOffered,
		Balance:      balance,
		Flags:        assessment.Flags,
	}, nil
}

func checkRequestable(book model.Book, requesterID uuid.UUID) error {
	if book.OwnerID == requesterID {
		return errs.SelfExchange()
	}
	if !book.IsAvailable {
		return errs.Validation("book is not available for exchange")
	}
	return nil
}

// lockForOwner locks the exchange's book, then the exchange, and checks that
// userID is the owner the request was made to and still owns the book.
func lockForOwner(ctx context.Context, tx repository.Tx, userID, exchangeID uuid.UUID) (model.Book, model.Exchange, error) {
	book, ex, err := lockExchange(ctx, tx, exchangeID)
	if err != nil {
		return book, ex, err
	}
	if ex.OwnerID != userID {
		return book, ex, errs.Forbidden("only the book owner can do this")
	}
	if book.OwnerID != ex.OwnerID {
		return book, ex, errs.InvalidState("book has changed hands since the request")
	}
	return book, ex, nil
}

func lockExchange(ctx context.Context, tx repository.Tx, exchangeID uuid.UUID) (model.Book, model.Exchange, error) {
	ex, err := tx.GetExchange(ctx, exchangeID)
	if err != nil {
		return model.Book{}, model.Exchange{}, err
	}
	book, err := tx.LockBook(ctx, ex.BookID)
	if err != nil {
		return model.Book{}, model.Exchange{}, err
	}
	ex, err = tx.LockExchange(ctx, exchangeID)
	if err != nil {
		return model.Book{}, model.Exchange{}, err
	}
	return book, ex, nil
}

func (s *Service) AcceptExchange(ctx context.Context, userID, exchangeID uuid.UUID) (model.Exchange, error) {
	var ex model.Exchange
	err := s.repo.WithTx(ctx, "accept_exchange", func(ctx context.Context, tx repository.Tx) (err error) {
		_, ex, err = lockForOwner(ctx, tx, userID, exchangeID)
		if err != nil {
			return err
		}
		if ex.Status != model.StatusPending {
			return errs.InvalidState("cannot accept a %s exchange", ex.Status)
		}
		now := s.now()
		deadline := now.Add(model.ConfirmationWindow)
		ex.Status = model.StatusAccepted
		ex.AcceptedAt = &now
		ex.ConfirmationDeadline = &deadline
		ex.UpdatedAt = now
		return tx.UpdateExchange(ctx, ex)
	})
	if err != nil {
		return model.Exchange{}, err
	}
	s.publish(ctx, model.NewExchangeEvent(model.EventAccepted, ex, ex.UpdatedAt))
	ex.UserRole = ex.RoleOf(userID)
	return ex, nil
}

func (s *Service) DeclineExchange(ctx context.Context, userID, exchangeID uuid.UUID, req model.DeclineRequest) (model.DeclineResponse, error) {
	var (
		ex       model.Exchange
		returned int
	)
	err := s.repo.WithTx(ctx, "decline_exchange", func(ctx context.Context, tx repository.Tx) (err error) {
		_, ex, err = lockForOwner(ctx, tx, userID, exchangeID)
		if err != nil {
			return err
		}
		if ex.Status != model.StatusPending {
			return errs.InvalidState("cannot decline a %s exchange", ex.Status)
		}
		if ex.PointsLocked {
			if _, err := s.ledger(tx).Release(ctx, ex.RequesterID, ex.PointsOffered, ex.ID); err != nil {
				return err
			}
			returned = ex.PointsOffered
		}
		ex.Status = model.StatusDeclined
		ex.PointsLocked = false
		ex.DeclinedReason = req.Reason
		ex.UpdatedAt = s.now()
		return tx.UpdateExchange(ctx, ex)
	})
	if err != nil {
		return model.DeclineResponse{}, err
	}
	s.publish(ctx, model.NewExchangeEvent(model.EventDeclined, ex, ex.UpdatedAt))
	ex.UserRole = ex.RoleOf(userID)
	return model.DeclineResponse{Exchange: ex, PointsReturned: returned}, nil
}

// ConfirmExchange completes an accepted exchange: the owner is paid from escrow,
// the book changes hands, and every other open request for the book is
// cancelled with its points released. A confirmation after the deadline
// cancels the exchange instead and reports DeadlineExpiredError.
func (s *Service) ConfirmExchange(ctx context.Context, userID, exchangeID uuid.UUID, req model.ConfirmRequest) (model.ConfirmResponse, error) {
	if r := req.BookConditionRating; r != nil && (*r < 1 || *r > 5) {
		return model.ConfirmResponse{}, errs.InvalidRating(*r)
	}

	var (
		ex        model.Exchange
		cancelled []model.Exchange
		expired   bool
		stale     bool
	)
	err := s.repo.WithTx(ctx, "confirm_exchange", func(ctx context.Context, tx repository.Tx) error {
		expired, stale, cancelled = false, false, nil

		first, err := tx.GetExchange(ctx, exchangeID)
		if err != nil {
			return err
		}
		book, err := tx.LockBook(ctx, first.BookID)
		if err != nil {
			return err
		}
		siblings, err := tx.LockActiveExchanges(ctx, book.ID)
		if err != nil {
			return errors.Wrap(err, "lock active exchanges")
		}
		ex, err = tx.LockExchange(ctx, exchangeID)
		if err != nil {
			return err
		}
		if ex.RequesterID != userID {
			return errs.Forbidden("only the requester can confirm")
		}
		if ex.Status != model.StatusAccepted {
			return errs.InvalidState("cannot confirm a %s exchange", ex.Status)
		}

		l := s.ledger(tx)
		now := s.now()
		if ex.ConfirmationDeadline != nil && now.After(*ex.ConfirmationDeadline) {
			expired = true
			return cancel(ctx, tx, l, &ex, model.CancelReasonDeadlineExpired, now, nil)
		}
		if book.OwnerID != ex.OwnerID {
			stale = true
			return cancel(ctx, tx, l, &ex, model.CancelReasonOwnerChanged, now, nil)
		}

		if _, err := l.Transfer(ctx, ex.OwnerID, ex.PointsOffered, ex.ID); err != nil {
			return err
		}
		if err := tx.SetBookOwner(ctx, book.ID, ex.RequesterID, true); err != nil {
			return err
		}
		ex.Status = model.StatusCompleted
		ex.PointsLocked = false
		ex.CompletedAt = &now
		ex.BookConditionRating = req.BookConditionRating
		ex.UpdatedAt = now
		if err := tx.UpdateExchange(ctx, ex); err != nil {
			return err
		}

		for i := range siblings {
			sib := siblings[i]
			if sib.ID == ex.ID {
				continue
			}
			if err := cancel(ctx, tx, l, &sib, model.CancelReasonBookExchanged, now, nil); err != nil {
				return err
			}
			cancelled = append(cancelled, sib)
		}
		return nil
	})
	if err != nil {
		return model.ConfirmResponse{}, err
	}

	if expired {
		s.log.Info("confirmation after deadline, exchange cancelled", zap.Stringer("exchange_id", ex.ID))
		s.publish(ctx, model.NewExchangeEvent(model.EventCancelled, ex, ex.UpdatedAt))
		return model.ConfirmResponse{}, errs.DeadlineExpired(*ex.ConfirmationDeadline)
	}
	if stale {
		s.log.Info("book changed hands before confirmation, exchange cancelled", zap.Stringer("exchange_id", ex.ID))
		s.publish(ctx, model.NewExchangeEvent(model.EventCancelled, ex, ex.UpdatedAt))
		return model.ConfirmResponse{}, errs.InvalidState("book has changed hands since the request, points were released")
	}

	s.log.Info("exchange completed",
		zap.Stringer("exchange_id", ex.ID),
		zap.Int("points", ex.PointsOffered),
		zap.Int("cancelled_siblings", len(cancelled)))
	evs := []model.ExchangeEvent{model.NewExchangeEvent(model.EventCompleted, ex, ex.UpdatedAt)}
	ids := make([]uuid.UUID, 0, len(cancelled))
	for _, c := range cancelled {
		evs = append(evs, model.NewExchangeEvent(model.EventCancelled, c, c.UpdatedAt))
		ids = append(ids, c.ID)
	}
	s.publish(ctx, evs...)

	ex.UserRole = model.UserRoleRequester
	return model.ConfirmResponse{Exchange: ex, Cancelled: ids}, nil
}

// CancelExchange lets the requester withdraw an open request.
func (s *Service) CancelExchange(ctx context.Context, userID, exchangeID uuid.UUID, req model.CancelRequest) (model.Exchange, error) {
	var ex model.Exchange
	err := s.repo.WithTx(ctx, "cancel_exchange", func(ctx context.Context, tx repository.Tx) (err error) {
		_, ex, err = lockExchange(ctx, tx, exchangeID)
		if err != nil {
			return err
		}
		if ex.RequesterID != userID {
			return errs.Forbidden("only the requester can cancel")
		}
		if !ex.Status.Active() {
			return errs.InvalidState("cannot cancel a %s exchange", ex.Status)
		}
		reason := model.CancelReasonWithdrawn
		if req.Reason != nil && *req.Reason != "" {
			reason = *req.Reason
		}
		return cancel(ctx, tx, s.ledger(tx), &ex, reason, s.now(), nil)
	})
	if err != nil {
		return model.Exchange{}, err
	}
	s.publish(ctx, model.NewExchangeEvent(model.EventCancelled, ex, ex.UpdatedAt))
	ex.UserRole = model.UserRoleRequester
	return ex, nil
}

// cancel moves an open exchange to cancelled and releases its escrow. A
// non-nil reportID records the release as a refund ordered by that report.
func cancel(ctx context.Context, tx repository.Tx, l *ledger.Ledger, ex *model.Exchange, reason string, now time.Time, reportID *uuid.UUID) error {
	if ex.PointsLocked {
		var err error
		if reportID != nil {
			_, err = l.Refund(ctx, ex.RequesterID, ex.PointsOffered, ex.ID, *reportID)
		} else {
			_, err = l.Release(ctx, ex.RequesterID, ex.PointsOffered, ex.ID)
		}
		if err != nil {
			return err
		}
	}
	ex.Status = model.StatusCancelled
	ex.PointsLocked = false
	ex.CancelledAt = &now
	ex.CancelReason = &reason
	ex.UpdatedAt = now
	return tx.UpdateExchange(ctx, *ex)
}

func (s *Service) GetExchange(ctx context.Context, userID, exchangeID uuid.UUID) (model.Exchange, error) {
	ex, err := s.repo.GetExchange(ctx, exchangeID)
	if err != nil {
		return model.Exchange{}, err
	}
	ex.UserRole = ex.RoleOf(userID)
	if ex.UserRole == "" {
		return model.Exchange{}, errs.Forbidden("not a participant of this exchange")
	}
	return ex, nil
}

func (s *Service) ListExchanges(ctx context.Context, userID uuid.UUID, f model.ExchangeFilter) (model.ListExchanges, error) {
	p := model.Paging{Page: f.Page, PageSize: f.Limit}.Normalize()
	items, total, err := s.repo.ListExchanges(ctx, userID, f, p)
	if err != nil {
		return model.ListExchanges{}, errors.Wrap(err, "list exchanges")
	}
	for i := range items {
		items[i].UserRole = items[i].RoleOf(userID)
	}
	if items == nil {
		items = []model.Exchange{}
	}
	p.TotalElements = total
	return model.ListExchanges{Paging: p, Items: items}, nil
}

// ExpireStale cancels accepted exchanges whose confirmation deadline passed
// before now, each in its own transaction.
func (s *Service) ExpireStale(ctx context.Context, now time.Time) (int, error) {
	const batch = 500
	stale, err := s.repo.StaleExchanges(ctx, now, batch)
	if err != nil {
		return 0, errors.Wrap(err, "stale exchanges")
	}
	expired := 0
	for _, st := range stale {
		if ctx.Err() != nil {
			return expired, ctx.Err()
		}
		var (
			ex   model.Exchange
			done bool
		)
		err := s.repo.WithTx(ctx, "expire_exchange", func(ctx context.Context, tx repository.Tx) (err error) {
			done = false
			_, ex, err = lockExchange(ctx, tx, st.ID)
			if err != nil {
				return err
			}
			if ex.Status != model.StatusAccepted || ex.ConfirmationDeadline == nil || !now.After(*ex.ConfirmationDeadline) {
				return nil
			}
			done = true
			return cancel(ctx, tx, s.ledger(tx), &ex, model.CancelReasonDeadlineExpired, now, nil)
		})
		if err != nil {
			s.log.Error("expire exchange", zap.Stringer("exchange_id", st.ID), zap.Error(err))
			continue
		}
		if done {
			expired++
			s.publish(ctx, model.NewExchangeEvent(model.EventCancelled, ex, now))
		}
	}
	if expired > 0 {
		s.log.Info("expired stale exchanges", zap.Int("count", expired))
	}
	return expired, nil
}
