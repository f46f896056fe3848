package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Astemirdum/book-exchange/exchange/internal/model"
	"github.com/Astemirdum/book-exchange/exchange/internal/service"
	"github.com/Astemirdum/book-exchange/exchange/internal/valuation"
	"github.com/Astemirdum/book-exchange/pkg/auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type recorder struct {
	mu     sync.Mutex
	events []model.ExchangeEvent
}

func (r *recorder) Publish(_ context.Context, e model.ExchangeEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) types() []model.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	store  *memStore
	svc    *service.Service
	clock  *clock
	events *recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:  newMemStore(),
		clock:  &clock{t: testNow},
		events: &recorder{},
	}
	f.svc = service.NewService(f.store, valuation.ConditionValuer{}, zap.NewNop(),
		service.WithClock(f.clock.Now),
		service.WithEvents(f.events),
	)
	return f
}

func moderator(f *fixture) auth.Identity {
	return auth.Identity{UserID: f.store.addUser(0, model.RoleModerator), Role: auth.RoleModerator}
}

// request creates a pending exchange and fails the test on error.
func (f *fixture) request(t *testing.T, requester, book uuid.UUID) model.Exchange {
	t.Helper()
	resp, err := f.svc.CreateExchange(context.Background(), requester, model.CreateExchangeRequest{BookID: book})
	require.NoError(t, err)
	return resp.Exchange
}

func (f *fixture) accept(t *testing.T, owner, exchangeID uuid.UUID) model.Exchange {
	t.Helper()
	ex, err := f.svc.AcceptExchange(context.Background(), owner, exchangeID)
	require.NoError(t, err)
	return ex
}

func (f *fixture) confirm(t *testing.T, requester, exchangeID uuid.UUID, rating *int) model.ConfirmResponse {
	t.Helper()
	resp, err := f.svc.ConfirmExchange(context.Background(), requester, exchangeID, model.ConfirmRequest{BookConditionRating: rating})
	require.NoError(t, err)
	return resp
}

func intPtr(v int) *int { return &v }
