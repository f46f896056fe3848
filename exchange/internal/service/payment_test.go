package service_test

import (
	"context"
	"testing"

	"github.com/Astemirdum/book-exchange/exchange/internal/errs"
	"github.com/Astemirdum/book-exchange/exchange/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestSettlePayment(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	u := f.store.addUser(10, model.RoleUser)
	p := model.PaymentSettled{PaymentID: "pi_3Nx", UserID: u, Points: 250}

	require.NoError(t, f.svc.SettlePayment(ctx, p))
	require.Equal(t, 260, f.store.balance(u))

	require.NoError(t, f.svc.SettlePayment(ctx, p), "replay is a no-op")
	require.Equal(t, 260, f.store.balance(u))

	summary, err := f.svc.Points(ctx, u, model.Paging{})
	require.NoError(t, err)
	require.Equal(t, 260, summary.Points)
	require.Len(t, summary.Entries, 1)
	require.Equal(t, model.EntryPurchase, summary.Entries[0].Kind)
	require.Equal(t, "pi_3Nx", *summary.Entries[0].PaymentID)
}

func TestSettlePayment_Rejections(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	u := f.store.addUser(0, model.RoleUser)

	err := f.svc.SettlePayment(ctx, model.PaymentSettled{UserID: u, Points: 5})
	require.ErrorIs(t, err, errs.ErrValidation)
	err = f.svc.SettlePayment(ctx, model.PaymentSettled{PaymentID: "pi_1", UserID: u})
	require.ErrorIs(t, err, errs.ErrValidation)
	err = f.svc.SettlePayment(ctx, model.PaymentSettled{PaymentID: "pi_2", UserID: uuid.New(), Points: 5})
	require.ErrorIs(t, err, errs.ErrNotFound)
	require.Equal(t, 0, f.store.balance(u))
}
