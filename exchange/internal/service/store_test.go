package service_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Astemirdum/book-exchange/exchange/internal/errs"
	"github.com/Astemirdum/book-exchange/exchange/internal/model"
	"github.com/Astemirdum/book-exchange/exchange/internal/repository"
	"github.com/google/uuid"
)

// memStore is a transactional in-memory repository. Transactions are
// serialized by one mutex and rolled back by restoring a snapshot.
type memStore struct {
	mu        sync.Mutex
	users     map[uuid.UUID]model.User
	books     map[uuid.UUID]model.Book
	exchanges map[uuid.UUID]model.Exchange
	reports   map[uuid.UUID]model.Report
	entries   []model.LedgerEntry
}

var _ repository.Repository = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		users:     make(map[uuid.UUID]model.User),
		books:     make(map[uuid.UUID]model.Book),
		exchanges: make(map[uuid.UUID]model.Exchange),
		reports:   make(map[uuid.UUID]model.Report),
	}
}

type snapshot struct {
	users     map[uuid.UUID]model.User
	books     map[uuid.UUID]model.Book
	exchanges map[uuid.UUID]model.Exchange
	reports   map[uuid.UUID]model.Report
	entries   int
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	c := make(map[K]V, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

func (s *memStore) WithTx(ctx context.Context, _ string, fn func(ctx context.Context, tx repository.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := snapshot{
		users:     cloneMap(s.users),
		books:     cloneMap(s.books),
		exchanges: cloneMap(s.exchanges),
		reports:   cloneMap(s.reports),
		entries:   len(s.entries),
	}
	if err := fn(ctx, &memTx{s: s}); err != nil {
		s.users, s.books, s.exchanges, s.reports = snap.users, snap.books, snap.exchanges, snap.reports
		s.entries = s.entries[:snap.entries]
		return err
	}
	return nil
}

// seeding and inspection helpers

func (s *memStore) addUser(points int, role string) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.users[id] = model.User{ID: id, Points: points, Role: role, CreatedAt: testNow.AddDate(0, -1, 0)}
	return id
}

func (s *memStore) addBook(owner uuid.UUID, basePoints int) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.books[id] = model.Book{
		ID: id, OwnerID: owner, Title: "book", Condition: model.ConditionGood,
		BasePoints: basePoints, IsAvailable: true, CreatedAt: testNow,
	}
	return id
}

func (s *memStore) balance(id uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id].Points
}

func (s *memStore) user(id uuid.UUID) model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id]
}

func (s *memStore) book(id uuid.UUID) model.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.books[id]
}

func (s *memStore) exchange(id uuid.UUID) model.Exchange {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exchanges[id]
}

func (s *memStore) exchangeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.exchanges)
}

// points sums every balance plus every amount held in escrow.
func (s *memStore) points() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := 0
	for _, u := range s.users {
		sum += u.Points
	}
	for _, e := range s.exchanges {
		if e.PointsLocked {
			sum += e.PointsOffered
		}
	}
	return sum
}

// Reader

func (s *memStore) GetUser(_ context.Context, id uuid.UUID) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return getUser(s, id)
}

func (s *memStore) GetBook(_ context.Context, id uuid.UUID) (model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return getBook(s, id)
}

func (s *memStore) GetExchange(_ context.Context, id uuid.UUID) (model.Exchange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return getExchange(s, id)
}

func (s *memStore) ListExchanges(_ context.Context, userID uuid.UUID, f model.ExchangeFilter, p model.Paging) ([]model.Exchange, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []model.Exchange
	for _, e := range s.exchanges {
		switch f.Role {
		case model.UserRoleRequester:
			if e.RequesterID != userID {
				continue
			}
		case model.UserRoleOwner:
			if e.OwnerID != userID {
				continue
			}
		default:
			if e.RequesterID != userID && e.OwnerID != userID {
				continue
			}
		}
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return page(all, p), len(all), nil
}

func (s *memStore) StaleExchanges(_ context.Context, now time.Time, limit int) ([]model.Exchange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Exchange
	for _, e := range s.exchanges {
		if e.Status == model.StatusAccepted && e.ConfirmationDeadline != nil && e.ConfirmationDeadline.Before(now) {
			out = append(out, e)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memStore) GetReport(_ context.Context, id uuid.UUID) (model.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[id]
	if !ok {
		return model.Report{}, errs.NotFound("report")
	}
	return r, nil
}

func (s *memStore) ListReports(_ context.Context, f model.ReportFilter, p model.Paging) ([]model.Report, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []model.Report
	for _, r := range s.reports {
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if f.Priority != "" && r.Priority != f.Priority {
			continue
		}
		if f.ReporterID != nil && r.ReporterID != *f.ReporterID {
			continue
		}
		all = append(all, r)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return page(all, p), len(all), nil
}

func (s *memStore) ListLedgerEntries(_ context.Context, userID uuid.UUID, p model.Paging) ([]model.LedgerEntry, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []model.LedgerEntry
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].UserID == userID {
			all = append(all, s.entries[i])
		}
	}
	return page(all, p), len(all), nil
}

func page[T any](all []T, p model.Paging) []T {
	from := p.Offset()
	if from >= len(all) {
		return nil
	}
	to := from + p.PageSize
	if to > len(all) {
		to = len(all)
	}
	return all[from:to]
}

// Analytics

func (s *memStore) CountCompletedBetween(_ context.Context, a, b uuid.UUID, since time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.exchanges {
		pair := (e.RequesterID == a && e.OwnerID == b) || (e.RequesterID == b && e.OwnerID == a)
		if pair && e.Status == model.StatusCompleted && !e.CompletedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (s *memStore) CountCompletedForBook(_ context.Context, bookID uuid.UUID, since time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.exchanges {
		if e.BookID == bookID && e.Status == model.StatusCompleted && !e.CompletedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (s *memStore) UserActivity(_ context.Context, userID uuid.UUID, since time.Time) (model.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var a model.Activity
	partners := make(map[uuid.UUID]int)
	for _, e := range s.exchanges {
		if e.RequesterID != userID && e.OwnerID != userID {
			continue
		}
		at := e.CreatedAt
		if e.CompletedAt != nil {
			at = *e.CompletedAt
		}
		if at.Before(since) {
			continue
		}
		a.Volume++
		if e.Status != model.StatusCompleted {
			continue
		}
		partner := e.RequesterID
		if partner == userID {
			partner = e.OwnerID
		} else {
			a.PointsEarned += e.PointsOffered
		}
		partners[partner]++
	}
	for _, n := range partners {
		if n >= 2 {
			a.RepeatedPartners++
		}
	}
	return a, nil
}

func (s *memStore) TrustInputs(_ context.Context, userID uuid.UUID) (model.TrustInputs, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return model.TrustInputs{}, errs.NotFound("user")
	}
	in := model.TrustInputs{CreatedAt: u.CreatedAt}
	var ratings, rated int
	for _, e := range s.exchanges {
		if e.Status != model.StatusCompleted || (e.RequesterID != userID && e.OwnerID != userID) {
			continue
		}
		in.CompletedExchanges++
		if e.OwnerID == userID && e.BookConditionRating != nil {
			ratings += *e.BookConditionRating
			rated++
		}
	}
	if rated > 0 {
		avg := float64(ratings) / float64(rated)
		in.AvgRating = &avg
	}
	for _, r := range s.reports {
		if r.ReportedUserID != nil && *r.ReportedUserID == userID && r.Status != model.ReportPending {
			in.ReportsAgainst++
		}
	}
	for _, b := range s.books {
		if b.OwnerID == userID {
			in.BooksListed++
		}
	}
	return in, nil
}

func getUser(s *memStore, id uuid.UUID) (model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return model.User{}, errs.NotFound("user")
	}
	return u, nil
}

func getBook(s *memStore, id uuid.UUID) (model.Book, error) {
	b, ok := s.books[id]
	if !ok {
		return model.Book{}, errs.NotFound("book")
	}
	return b, nil
}

func getExchange(s *memStore, id uuid.UUID) (model.Exchange, error) {
	e, ok := s.exchanges[id]
	if !ok {
		return model.Exchange{}, errs.NotFound("exchange")
	}
	return e, nil
}

// memTx runs with memStore.mu held.
type memTx struct {
	s *memStore
}

var _ repository.Tx = (*memTx)(nil)

func (t *memTx) GetUser(_ context.Context, id uuid.UUID) (model.User, error) {
	return getUser(t.s, id)
}

func (t *memTx) GetBook(_ context.Context, id uuid.UUID) (model.Book, error) {
	return getBook(t.s, id)
}

func (t *memTx) GetExchange(_ context.Context, id uuid.UUID) (model.Exchange, error) {
	return getExchange(t.s, id)
}

func (t *memTx) LockUser(_ context.Context, id uuid.UUID) (model.User, error) {
	return getUser(t.s, id)
}

func (t *memTx) LockBook(_ context.Context, id uuid.UUID) (model.Book, error) {
	return getBook(t.s, id)
}

func (t *memTx) LockExchange(_ context.Context, id uuid.UUID) (model.Exchange, error) {
	return getExchange(t.s, id)
}

func (t *memTx) LockReport(_ context.Context, id uuid.UUID) (model.Report, error) {
	r, ok := t.s.reports[id]
	if !ok {
		return model.Report{}, errs.NotFound("report")
	}
	return r, nil
}

func (t *memTx) LockActiveExchanges(_ context.Context, bookID uuid.UUID) ([]model.Exchange, error) {
	var out []model.Exchange
	for _, e := range t.s.exchanges {
		if e.BookID == bookID && e.Status.Active() {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (t *memTx) HasActiveExchange(_ context.Context, bookID, requesterID uuid.UUID) (bool, error) {
	for _, e := range t.s.exchanges {
		if e.BookID == bookID && e.RequesterID == requesterID && e.Status.Active() {
			return true, nil
		}
	}
	return false, nil
}

func (t *memTx) CreateExchange(ctx context.Context, e model.Exchange) error {
	if dup, _ := t.HasActiveExchange(ctx, e.BookID, e.RequesterID); dup {
		return errs.Duplicate("an open exchange request for this book already exists")
	}
	t.s.exchanges[e.ID] = e
	return nil
}

func (t *memTx) UpdateExchange(_ context.Context, e model.Exchange) error {
	if _, ok := t.s.exchanges[e.ID]; !ok {
		return errs.NotFound("exchange")
	}
	t.s.exchanges[e.ID] = e
	return nil
}

func (t *memTx) SetBookOwner(_ context.Context, bookID, ownerID uuid.UUID, available bool) error {
	b, ok := t.s.books[bookID]
	if !ok {
		return errs.NotFound("book")
	}
	b.OwnerID, b.IsAvailable = ownerID, available
	t.s.books[bookID] = b
	return nil
}

func (t *memTx) SetUserPoints(_ context.Context, userID uuid.UUID, points int) error {
	u, ok := t.s.users[userID]
	if !ok {
		return errs.NotFound("user")
	}
	u.Points = points
	t.s.users[userID] = u
	return nil
}

func (t *memTx) SetUserStanding(_ context.Context, userID uuid.UUID, warn, suspend bool) error {
	u, ok := t.s.users[userID]
	if !ok {
		return errs.NotFound("user")
	}
	if warn {
		u.WarningCount++
	}
	u.Suspended = u.Suspended || suspend
	t.s.users[userID] = u
	return nil
}

func (t *memTx) InsertLedgerEntry(ctx context.Context, e model.LedgerEntry) error {
	if e.PaymentID != nil {
		if applied, _ := t.PaymentApplied(ctx, *e.PaymentID); applied {
			return errs.Duplicate("payment already settled")
		}
	}
	e.ID = int64(len(t.s.entries) + 1)
	t.s.entries = append(t.s.entries, e)
	return nil
}

func (t *memTx) PaymentApplied(_ context.Context, paymentID string) (bool, error) {
	for _, e := range t.s.entries {
		if e.PaymentID != nil && *e.PaymentID == paymentID {
			return true, nil
		}
	}
	return false, nil
}

func (t *memTx) HasOpenReport(_ context.Context, r model.Report) (bool, error) {
	for _, o := range t.s.reports {
		if o.ReporterID == r.ReporterID && o.Open() &&
			eqID(o.ExchangeID, r.ExchangeID) && eqID(o.BookID, r.BookID) && eqID(o.ReportedUserID, r.ReportedUserID) {
			return true, nil
		}
	}
	return false, nil
}

func eqID(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (t *memTx) CreateReport(_ context.Context, r model.Report) error {
	t.s.reports[r.ID] = r
	return nil
}

func (t *memTx) UpdateReport(_ context.Context, r model.Report) error {
	if _, ok := t.s.reports[r.ID]; !ok {
		return errs.NotFound("report")
	}
	t.s.reports[r.ID] = r
	return nil
}
