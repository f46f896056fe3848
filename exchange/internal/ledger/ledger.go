// Package ledger holds the only operations allowed to change a user's point
// balance. Every call runs inside the caller's transaction and writes an audit
// entry naming its cause.
package ledger

import (
	"context"
	"time"

	"github.com/Astemirdum/book-exchange/exchange/internal/errs"
	"github.com/Astemirdum/book-exchange/exchange/internal/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Store is the slice of a transaction the ledger needs.
type Store interface {
	LockUser(ctx context.Context, id uuid.UUID) (model.User, error)
	SetUserPoints(ctx context.Context, userID uuid.UUID, points int) error
	InsertLedgerEntry(ctx context.Context, e model.LedgerEntry) error
}

type Ledger struct {
	store Store
	now   func() time.Time
}

func New(store Store, now func() time.Time) *Ledger {
	if now == nil {
		now = time.Now
	}
	return &Ledger{store: store, now: now}
}

// Lock moves amount from the user's balance into the escrow of exchangeID.
func (l *Ledger) Lock(ctx context.Context, userID uuid.UUID, amount int, exchangeID uuid.UUID) (int, error) {
	if amount <= 0 {
		return 0, errs.Validation("amount to lock must be positive, got %d", amount)
	}
	u, err := l.store.LockUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	if u.Points < amount {
		return 0, errs.InsufficientPoints(amount, u.Points)
	}
	return l.apply(ctx, u, -amount, model.LedgerEntry{Kind: model.EntryLock, ExchangeID: &exchangeID})
}

// Release returns escrowed points of exchangeID to the user.
func (l *Ledger) Release(ctx context.Context, userID uuid.UUID, amount int, exchangeID uuid.UUID) (int, error) {
	if amount <= 0 {
		return 0, errs.Validation("amount to release must be positive, got %d", amount)
	}
	return l.credit(ctx, userID, amount, model.LedgerEntry{Kind: model.EntryRelease, ExchangeID: &exchangeID})
}

// Refund releases the escrow of exchangeID back to the user as part of
// resolving reportID, so the entry names both causes.
func (l *Ledger) Refund(ctx context.Context, userID uuid.UUID, amount int, exchangeID, reportID uuid.UUID) (int, error) {
	if amount <= 0 {
		return 0, errs.Validation("amount to refund must be positive, got %d", amount)
	}
	return l.credit(ctx, userID, amount, model.LedgerEntry{Kind: model.EntryRelease, ExchangeID: &exchangeID, ReportID: &reportID})
}

// Transfer pays the escrow of exchangeID out to the receiver. The matching
// decrement happened at Lock, so this only increments.
func (l *Ledger) Transfer(ctx context.Context, toUserID uuid.UUID, amount int, exchangeID uuid.UUID) (int, error) {
	if amount <= 0 {
		return 0, errs.Validation("amount to transfer must be positive, got %d", amount)
	}
	return l.credit(ctx, toUserID, amount, model.LedgerEntry{Kind: model.EntryTransfer, ExchangeID: &exchangeID})
}

// Adjust applies a signed correction justified by a report. A negative delta
// may not overdraw the balance; use Penalize for that.
func (l *Ledger) Adjust(ctx context.Context, userID uuid.UUID, delta int, reportID uuid.UUID) (int, error) {
	if delta == 0 {
		return 0, errs.Validation("adjustment must be non-zero")
	}
	u, err := l.store.LockUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	if u.Points+delta < 0 {
		return 0, errs.InsufficientPoints(-delta, u.Points)
	}
	return l.apply(ctx, u, delta, model.LedgerEntry{Kind: model.EntryAdjust, ReportID: &reportID})
}

// Penalize deducts amount on behalf of a report with no lower bound, so the
// balance may go negative.
func (l *Ledger) Penalize(ctx context.Context, userID uuid.UUID, amount int, reportID uuid.UUID) (int, error) {
	if amount <= 0 {
		return 0, errs.Validation("penalty must be positive, got %d", amount)
	}
	u, err := l.store.LockUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return l.apply(ctx, u, -amount, model.LedgerEntry{Kind: model.EntryPenalty, ReportID: &reportID})
}

// Credit adds purchased points from a settled payment.
func (l *Ledger) Credit(ctx context.Context, userID uuid.UUID, amount int, paymentID string) (int, error) {
	if amount <= 0 {
		return 0, errs.Validation("purchased points must be positive, got %d", amount)
	}
	if paymentID == "" {
		return 0, errs.Validation("payment id is required")
	}
	return l.credit(ctx, userID, amount, model.LedgerEntry{Kind: model.EntryPurchase, PaymentID: &paymentID})
}

func (l *Ledger) credit(ctx context.Context, userID uuid.UUID, amount int, entry model.LedgerEntry) (int, error) {
	u, err := l.store.LockUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return l.apply(ctx, u, amount, entry)
}

func (l *Ledger) apply(ctx context.Context, u model.User, delta int, entry model.LedgerEntry) (int, error) {
	balance := u.Points + delta
	if err := l.store.SetUserPoints(ctx, u.ID, balance); err != nil {
		return 0, errors.Wrap(err, "set user points")
	}
	entry.UserID = u.ID
	entry.Delta = delta
	entry.BalanceAfter = balance
	entry.CreatedAt = l.now()
	if err := l.store.InsertLedgerEntry(ctx, entry); err != nil {
		return 0, err
	}
	return balance, nil
}
