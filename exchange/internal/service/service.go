package service

import (
	"context"
	"time"

	"github.com/Astemirdum/book-exchange/exchange/internal/antiabuse"
	"github.com/Astemirdum/book-exchange/exchange/internal/errs"
	"github.com/Astemirdum/book-exchange/exchange/internal/ledger"
	"github.com/Astemirdum/book-exchange/exchange/internal/model"
	"github.com/Astemirdum/book-exchange/exchange/internal/repository"
	"github.com/Astemirdum/book-exchange/exchange/internal/valuation"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type EventPublisher interface {
	Publish(ctx context.Context, e model.ExchangeEvent)
}

type Service struct {
	log    *zap.Logger
	repo   repository.Repository
	valuer valuation.Valuer
	abuse  *antiabuse.Detector
	events EventPublisher
	now    func() time.Time
}

type Option func(s *Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func WithEvents(p EventPublisher) Option {
	return func(s *Service) {
		s.events = p
	}
}

func NewService(repo repository.Repository, valuer valuation.Valuer, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		log:    log.Named("service"),
		repo:   repo,
		valuer: valuer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.abuse = antiabuse.New(repo, s.now, log)
	return s
}

func (s *Service) ledger(tx repository.Tx) *ledger.Ledger {
	return ledger.New(tx, s.now)
}

func (s *Service) publish(ctx context.Context, evs ...model.ExchangeEvent) {
	if s.events == nil {
		return
	}
	for _, e := range evs {
		s.events.Publish(ctx, e)
	}
}

// Points returns the caller's balance with a page of their ledger history.
func (s *Service) Points(ctx context.Context, userID uuid.UUID, p model.Paging) (model.PointsSummary, error) {
	p = p.Normalize()
	u, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return model.PointsSummary{}, err
	}
	entries, total, err := s.repo.ListLedgerEntries(ctx, userID, p)
	if err != nil {
		return model.PointsSummary{}, errors.Wrap(err, "list ledger entries")
	}
	p.TotalElements = total
	return model.PointsSummary{
		UserID:  u.ID,
		Points:  u.Points,
		Paging:  p,
		Entries: entries,
	}, nil
}

func (s *Service) TrustScore(ctx context.Context, userID uuid.UUID) (model.TrustScore, error) {
	score, err := s.abuse.TrustScore(ctx, userID)
	if err != nil {
		return model.TrustScore{}, err
	}
	return model.TrustScore{UserID: userID, Score: score}, nil
}

// AssessUser runs the user-level detectors.
func (s *Service) AssessUser(ctx context.Context, userID uuid.UUID) (model.Assessment, error) {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return model.Assessment{}, err
	}
	return s.abuse.Assess(ctx, antiabuse.Subject{UserID: userID})
}

// SettlePayment credits purchased points once per payment id. Replays are no-ops.
func (s *Service) SettlePayment(ctx context.Context, p model.PaymentSettled) error {
	if p.PaymentID == "" || p.Points <= 0 {
		return errs.Validation("payment must have an id and a positive amount")
	}
	var replay bool
	err := s.repo.WithTx(ctx, "settle_payment", func(ctx context.Context, tx repository.Tx) error {
		applied, err := tx.PaymentApplied(ctx, p.PaymentID)
		if err != nil {
			return errors.Wrap(err, "payment applied")
		}
		if applied {
			replay = true
			return nil
		}
		_, err = s.ledger(tx).Credit(ctx, p.UserID, p.Points, p.PaymentID)
		return err
	})
	if errors.Is(err, errs.ErrDuplicateRequest) {
		replay, err = true, nil
	}
	if err != nil {
		return err
	}
	if replay {
		s.log.Info("payment already settled", zap.String("payment_id", p.PaymentID))
		return nil
	}
	s.log.Info("payment settled",
		zap.String("payment_id", p.PaymentID),
		zap.Stringer("user_id", p.UserID),
		zap.Int("points", p.Points))
	return nil
}
