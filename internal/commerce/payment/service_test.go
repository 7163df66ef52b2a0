// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package payment_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ffshop/internal/commerce/order"
	"github.com/taibuivan/ffshop/internal/commerce/payment"
	"github.com/taibuivan/ffshop/internal/platform/apperr"
	"github.com/taibuivan/ffshop/internal/platform/constants"
	"github.com/taibuivan/ffshop/internal/platform/guard"
	"github.com/taibuivan/ffshop/internal/platform/sec"
)

const (
	buyer  int64 = 21
	seller int64 = 7
)

type noTokens struct{}

func (noTokens) ExtractIdentity(string) (*sec.Identity, error) { return nil, sec.ErrUnauthorized }

func discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type fixture struct {
	service *payment.Service
	store   *memoryPayments
	events  *recordingPublisher
	guard   *guard.Guard
}

func newFixture() *fixture {
	orders := stubOrders{
		1: {ID: 1, UserID: buyer, AdminID: seller},
		2: {ID: 2, UserID: buyer + 1, AdminID: seller},
	}

	f := &fixture{
		store:  newMemoryPayments(),
		events: &recordingPublisher{},
		guard:  guard.New(noTokens{}, true, discard()),
	}
	f.service = payment.NewService(f.store, orders, f.guard, f.events, discard())
	return f
}

func pay(orderID int64, amount string) payment.CreateInput {
	return payment.CreateInput{OrderID: orderID, Method: "paypal", Amount: decimal.RequireFromString(amount)}
}

/*
TestService_Create inherits the seller from the order and starts PENDING.
*/
func TestService_Create(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	p, err := f.service.Create(ctx, buyer, pay(1, "49.99"))
	require.NoError(t, err)
	assert.Equal(t, seller, p.AdminID)
	assert.Equal(t, buyer, p.UserID)
	assert.Equal(t, payment.MethodPayPal, p.Method)
	assert.Equal(t, payment.StatusPending, p.Status)
	assert.Nil(t, p.PaymentDate)

	_, err = f.service.Create(ctx, buyer, pay(2, "10"))
	assertStatus(t, err, http.StatusForbidden)

	_, err = f.service.Create(ctx, buyer, pay(3, "10"))
	assertStatus(t, err, http.StatusNotFound)
}

/*
TestService_CreateValidation rejects bad amounts, methods and order ids.
*/
func TestService_CreateValidation(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name  string
		input payment.CreateInput
		field string
	}{
		{"zero_amount", pay(1, "0"), payment.FieldAmount},
		{"negative_amount", pay(1, "-5"), payment.FieldAmount},
		{"unknown_method", payment.CreateInput{OrderID: 1, Method: "CASH", Amount: decimal.NewFromInt(5)}, payment.FieldMethod},
		{"missing_order", pay(0, "5"), payment.FieldOrderID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Create(context.Background(), buyer, tt.input)
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
			require.Len(t, appErr.Details, 1)
			assert.Equal(t, tt.field, appErr.Details[0].Field)
		})
	}
}

/*
TestService_Access separates the buyer and seller views of a payment.
*/
func TestService_Access(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	p, err := f.service.Create(ctx, buyer, pay(1, "20"))
	require.NoError(t, err)
	other, err := f.service.Create(ctx, buyer+1, pay(2, "30"))
	require.NoError(t, err)

	_, err = f.service.GetMine(ctx, buyer, p.ID)
	require.NoError(t, err)

	_, err = f.service.GetMine(ctx, buyer, other.ID)
	assertStatus(t, err, http.StatusForbidden)
	assert.ErrorIs(t, err, guard.ErrForbidden)

	_, err = f.service.GetForAdmin(ctx, seller+1, p.ID)
	assertStatus(t, err, http.StatusForbidden)

	_, err = f.service.GetForAdmin(ctx, seller, 99)
	assertStatus(t, err, http.StatusNotFound)

	mine, err := f.service.ListMine(ctx, buyer)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	forOrder, err := f.service.ListMineForOrder(ctx, buyer, 1)
	require.NoError(t, err)
	assert.Len(t, forOrder, 1)

	_, err = f.service.ListMineForOrder(ctx, buyer, 2)
	assertStatus(t, err, http.StatusForbidden)

	all, err := f.service.ListForAdmin(ctx, seller)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byUser, err := f.service.ListForUser(ctx, seller, buyer+1)
	require.NoError(t, err)
	require.Len(t, byUser, 1)
	assert.Equal(t, other.ID, byUser[0].ID)

	none, err := f.service.ListForAdmin(ctx, seller+1)
	require.NoError(t, err)
	assert.Empty(t, none)
}

/*
TestService_UpdateStatus stamps the payment date and publishes the change.
*/
func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	p, err := f.service.Create(ctx, buyer, pay(1, "20"))
	require.NoError(t, err)

	_, err = f.service.UpdateStatus(ctx, seller+1, p.ID, payment.StatusCompleted)
	assertStatus(t, err, http.StatusForbidden)
	assert.Empty(t, f.events.keys)

	updated, err := f.service.UpdateStatus(ctx, seller, p.ID, payment.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, payment.StatusCompleted, updated.Status)
	require.NotNil(t, updated.PaymentDate)

	stored, err := f.service.GetMine(ctx, buyer, p.ID)
	require.NoError(t, err)
	assert.Equal(t, payment.StatusCompleted, stored.Status)

	require.Equal(t, []string{constants.RoutingPaymentStatusChanged}, f.events.keys)
	event, ok := f.events.events[0].(payment.StatusChanged)
	require.True(t, ok)
	assert.Equal(t, payment.StatusPending, event.From)
	assert.Equal(t, payment.StatusCompleted, event.To)
	assert.Equal(t, int64(1), event.OrderID)
}

func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, status, appErr.HTTPStatus)
}

var _ payment.Orders = (*order.Service)(nil)
