package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/Astemirdum/book-exchange/exchange/internal/errs"
	"github.com/Astemirdum/book-exchange/exchange/internal/ledger"
	"github.com/Astemirdum/book-exchange/exchange/internal/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type memStore struct {
	users   map[uuid.UUID]model.User
	entries []model.LedgerEntry
}

func newMemStore(balances ...int) (*memStore, []uuid.UUID) {
	s := &memStore{users: make(map[uuid.UUID]model.User)}
	ids := make([]uuid.UUID, 0, len(balances))
	for _, b := range balances {
		id := uuid.New()
		s.users[id] = model.User{ID: id, Points: b}
		ids = append(ids, id)
	}
	return s, ids
}

func (s *memStore) LockUser(_ context.Context, id uuid.UUID) (model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return model.User{}, errs.NotFound("user")
	}
	return u, nil
}

func (s *memStore) SetUserPoints(_ context.Context, id uuid.UUID, points int) error {
	u := s.users[id]
	u.Points = points
	s.users[id] = u
	return nil
}

func (s *memStore) InsertLedgerEntry(_ context.Context, e model.LedgerEntry) error {
	s.entries = append(s.entries, e)
	return nil
}

func (s *memStore) total() int {
	sum := 0
	for _, u := range s.users {
		sum += u.Points
	}
	return sum
}

var fixedNow = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

func TestLedger_Lock(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	exchangeID := uuid.New()

	tests := []struct {
		name      string
		balance   int
		amount    int
		want      int
		wantErr   *errs.Error
		shortfall int
	}{
		{name: "ok", balance: 100, amount: 30, want: 70},
		{name: "exact balance", balance: 30, amount: 30, want: 0},
		{name: "insufficient", balance: 10, amount: 30, wantErr: errs.ErrInsufficientPoints, shortfall: 20},
		{name: "zero amount", balance: 10, amount: 0, wantErr: errs.ErrValidation},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store, ids := newMemStore(tt.balance)
			l := ledger.New(store, fixedNow)

			got, err := l.Lock(ctx, ids[0], tt.amount, exchangeID)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Equal(t, tt.balance, store.users[ids[0]].Points)
				require.Empty(t, store.entries)
				if tt.shortfall != 0 {
					e, ok := errs.As(err)
					require.True(t, ok)
					require.Equal(t, tt.shortfall, e.Details["shortfall"])
				}
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.want, store.users[ids[0]].Points)
			require.Len(t, store.entries, 1)
			require.Equal(t, model.EntryLock, store.entries[0].Kind)
			require.Equal(t, -tt.amount, store.entries[0].Delta)
			require.Equal(t, exchangeID, *store.entries[0].ExchangeID)
		})
	}
}

func TestLedger_PenalizeMayGoNegative(t *testing.T) {
	store, ids := newMemStore(10)
	l := ledger.New(store, fixedNow)
	reportID := uuid.New()

	_, err := l.Adjust(context.Background(), ids[0], -30, reportID)
	require.ErrorIs(t, err, errs.ErrInsufficientPoints)

	got, err := l.Penalize(context.Background(), ids[0], 30, reportID)
	require.NoError(t, err)
	require.Equal(t, -20, got)
	require.Equal(t, model.EntryPenalty, store.entries[0].Kind)
	require.Equal(t, reportID, *store.entries[0].ReportID)
}

func TestLedger_Credit(t *testing.T) {
	store, ids := newMemStore(5)
	l := ledger.New(store, fixedNow)

	got, err := l.Credit(context.Background(), ids[0], 50, "pi_123")
	require.NoError(t, err)
	require.Equal(t, 55, got)
	require.Equal(t, "pi_123", *store.entries[0].PaymentID)

	_, err = l.Credit(context.Background(), ids[0], 50, "")
	require.ErrorIs(t, err, errs.ErrValidation)
}

// Lock, release and transfer never create or destroy points: balances plus
// escrow stay constant.
func TestLedger_Conservation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := context.Background()
		n := rapid.IntRange(2, 5).Draw(t, "users")
		balances := make([]int, n)
		for i := range balances {
			balances[i] = rapid.IntRange(0, 500).Draw(t, "balance")
		}
		store, ids := newMemStore(balances...)
		l := ledger.New(store, fixedNow)
		initial := store.total()

		type escrow struct {
			from   uuid.UUID
			amount int
			id     uuid.UUID
		}
		var held []escrow
		escrowed := func() int {
			sum := 0
			for _, e := range held {
				sum += e.amount
			}
			return sum
		}

		steps := rapid.IntRange(1, 50).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			switch op := rapid.IntRange(0, 2).Draw(t, "op"); {
			case op == 0 || len(held) == 0:
				from := ids[rapid.IntRange(0, n-1).Draw(t, "from")]
				amount := rapid.IntRange(1, 200).Draw(t, "amount")
				e := escrow{from: from, amount: amount, id: uuid.New()}
				if _, err := l.Lock(ctx, from, amount, e.id); err != nil {
					if !errors.Is(err, errs.ErrInsufficientPoints) {
						t.Fatalf("unexpected lock error: %v", err)
					}
					continue
				}
				held = append(held, e)
			case op == 1:
				k := rapid.IntRange(0, len(held)-1).Draw(t, "release")
				e := held[k]
				if _, err := l.Release(ctx, e.from, e.amount, e.id); err != nil {
					t.Fatalf("release: %v", err)
				}
				held = append(held[:k], held[k+1:]...)
			default:
				k := rapid.IntRange(0, len(held)-1).Draw(t, "transfer")
				to := ids[rapid.IntRange(0, n-1).Draw(t, "to")]
				e := held[k]
				if _, err := l.Transfer(ctx, to, e.amount, e.id); err != nil {
					t.Fatalf("transfer: %v", err)
				}
				held = append(held[:k], held[k+1:]...)
			}

			if got := store.total() + escrowed(); got != initial {
				t.Fatalf("points not conserved: got %d, want %d", got, initial)
			}
			for _, u := range store.users {
				if u.Points < 0 {
					t.Fatalf("negative balance %d", u.Points)
				}
			}
		}
	})
}
