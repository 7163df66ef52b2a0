// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package order_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ffshop/internal/commerce/order"
	"github.com/taibuivan/ffshop/internal/platform/apperr"
	"github.com/taibuivan/ffshop/internal/platform/constants"
	"github.com/taibuivan/ffshop/internal/platform/guard"
	"github.com/taibuivan/ffshop/internal/platform/sec"
)

const (
	buyer  int64 = 21
	seller int64 = 7
	chair  int64 = 100
)

type noTokens struct{}

func (noTokens) ExtractIdentity(string) (*sec.Identity, error) { return nil, sec.ErrUnauthorized }

func discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type fixture struct {
	service *order.Service
	store   *memoryOrders
	catalog *stubCatalog
	events  *recordingPublisher
	guard   *guard.Guard
}

func newFixture() *fixture {
	f := &fixture{
		store:   newMemoryOrders(),
		catalog: newStubCatalog(),
		events:  &recordingPublisher{},
		guard:   guard.New(noTokens{}, true, discard()),
	}
	f.catalog.add(chair, seller, "249.90", 5)
	f.service = order.NewService(f.store, f.catalog, f.guard, f.events, discard())
	return f
}

/*
TestService_Create prices the order from the catalogue and assigns the seller.
*/
func TestService_Create(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	o, err := f.service.Create(ctx, buyer, order.CreateInput{ProductID: chair, Quantity: 2})
	require.NoError(t, err)

	assert.Equal(t, buyer, o.UserID)
	assert.Equal(t, seller, o.AdminID)
	assert.Equal(t, "499.8", o.TotalAmount.String())
	assert.Equal(t, order.StatusPending, o.Status)
	assert.False(t, o.OrderDate.IsZero())
	assert.Equal(t, 3, f.catalog.stock[chair])

	_, err = f.service.Create(ctx, buyer, order.CreateInput{ProductID: chair, Quantity: 4})
	assertStatus(t, err, http.StatusConflict)
	assert.Equal(t, 3, f.catalog.stock[chair])

	_, err = f.service.Create(ctx, buyer, order.CreateInput{ProductID: 999, Quantity: 1})
	assertStatus(t, err, http.StatusNotFound)
}

/*
TestService_CreateValidation rejects non-positive product ids and quantities.
*/
func TestService_CreateValidation(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name  string
		input order.CreateInput
		field string
	}{
		{"zero_quantity", order.CreateInput{ProductID: chair}, order.FieldQuantity},
		{"negative_quantity", order.CreateInput{ProductID: chair, Quantity: -1}, order.FieldQuantity},
		{"missing_product", order.CreateInput{Quantity: 1}, order.FieldProductID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Create(context.Background(), buyer, tt.input)
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
			require.NotEmpty(t, appErr.Details)
			assert.Equal(t, tt.field, appErr.Details[0].Field)
		})
	}
}

/*
TestService_Ownership keeps buyers and sellers on their own orders.
*/
func TestService_Ownership(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	o, err := f.service.Create(ctx, buyer, order.CreateInput{ProductID: chair, Quantity: 1})
	require.NoError(t, err)

	_, err = f.service.GetMine(ctx, buyer, o.ID)
	require.NoError(t, err)

	_, err = f.service.GetMine(ctx, buyer+1, o.ID)
	assertStatus(t, err, http.StatusForbidden)
	assert.ErrorIs(t, err, guard.ErrForbidden)

	_, err = f.service.Cancel(ctx, buyer+1, o.ID)
	assertStatus(t, err, http.StatusForbidden)

	_, err = f.service.GetForAdmin(ctx, seller, o.ID)
	require.NoError(t, err)

	_, err = f.service.UpdateStatus(ctx, seller+1, o.ID, order.StatusShipped)
	assertStatus(t, err, http.StatusForbidden)

	_, err = f.service.GetMine(ctx, buyer, 999)
	assertStatus(t, err, http.StatusNotFound)
}

/*
TestService_TerminalStatus freezes an order once it is cancelled or returned.
*/
func TestService_TerminalStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("cancelled", func(t *testing.T) {
		f := newFixture()
		o, err := f.service.Create(ctx, buyer, order.CreateInput{ProductID: chair, Quantity: 2})
		require.NoError(t, err)

		cancelled, err := f.service.Cancel(ctx, buyer, o.ID)
		require.NoError(t, err)
		assert.Equal(t, order.StatusCancelled, cancelled.Status)
		require.NotNil(t, cancelled.CancelledDate)
		assert.Equal(t, 2, f.catalog.released[chair])
		assert.Equal(t, 5, f.catalog.stock[chair])

		_, err = f.service.UpdateStatus(ctx, seller, o.ID, order.StatusShipped)
		assert.ErrorIs(t, err, order.ErrInvalidStateTransition)

		_, err = f.service.Return(ctx, buyer, o.ID)
		assert.ErrorIs(t, err, order.ErrInvalidStateTransition)

		stored, err := f.service.GetMine(ctx, buyer, o.ID)
		require.NoError(t, err)
		assert.Equal(t, order.StatusCancelled, stored.Status)
		assert.Equal(t, 2, f.catalog.released[chair])
	})

	t.Run("returned_by_admin", func(t *testing.T) {
		f := newFixture()
		o, err := f.service.Create(ctx, buyer, order.CreateInput{ProductID: chair, Quantity: 1})
		require.NoError(t, err)

		delivered, err := f.service.UpdateStatus(ctx, seller, o.ID, order.StatusDelivered)
		require.NoError(t, err)
		require.NotNil(t, delivered.DeliveredDate)
		assert.Zero(t, f.catalog.released[chair])

		returned, err := f.service.UpdateStatus(ctx, seller, o.ID, order.StatusReturned)
		require.NoError(t, err)
		require.NotNil(t, returned.ReturnedDate)
		assert.Equal(t, 1, f.catalog.released[chair])

		_, err = f.service.UpdateStatus(ctx, seller, o.ID, order.StatusRefunded)
		assert.ErrorIs(t, err, order.ErrInvalidStateTransition)
	})
}

/*
TestService_Events publishes one event per accepted status change.
*/
func TestService_Events(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	o, err := f.service.Create(ctx, buyer, order.CreateInput{ProductID: chair, Quantity: 1})
	require.NoError(t, err)
	assert.Empty(t, f.events.keys)

	_, err = f.service.UpdateStatus(ctx, seller, o.ID, order.StatusShipped)
	require.NoError(t, err)
	_, err = f.service.Cancel(ctx, buyer, o.ID)
	require.NoError(t, err)
	_, err = f.service.Cancel(ctx, buyer, o.ID)
	require.Error(t, err)

	require.Len(t, f.events.keys, 2)
	assert.Equal(t, constants.RoutingOrderStatusChanged, f.events.keys[0])

	last, ok := f.events.events[1].(order.StatusChanged)
	require.True(t, ok)
	assert.Equal(t, order.StatusShipped, last.From)
	assert.Equal(t, order.StatusCancelled, last.To)
	assert.Equal(t, buyer, last.UserID)
	assert.Equal(t, seller, last.AdminID)
}

/*
TestService_Counts summarises only the seller's own orders.
*/
func TestService_Counts(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.catalog.add(200, seller+1, "10", 10)

	var ids []int64
	for range 4 {
		o, err := f.service.Create(ctx, buyer, order.CreateInput{ProductID: chair, Quantity: 1})
		require.NoError(t, err)
		ids = append(ids, o.ID)
	}
	_, err := f.service.Create(ctx, buyer, order.CreateInput{ProductID: 200, Quantity: 1})
	require.NoError(t, err)

	_, err = f.service.UpdateStatus(ctx, seller, ids[0], order.StatusDelivered)
	require.NoError(t, err)
	_, err = f.service.Cancel(ctx, buyer, ids[1])
	require.NoError(t, err)

	counts, err := f.service.Counts(ctx, seller)
	require.NoError(t, err)
	assert.Equal(t, order.Counts{TotalOrders: 4, PendingOrders: 2, CompletedOrders: 1, CancelledOrders: 1}, *counts)

	shipped, err := f.service.CountByStatus(ctx, seller, order.StatusShipped)
	require.NoError(t, err)
	assert.Zero(t, shipped)

	pending, err := f.service.CountByStatus(ctx, seller+1, order.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, 1, pending)

	mine, err := f.service.ListMine(ctx, buyer, nil)
	require.NoError(t, err)
	assert.Len(t, mine, 5)

	status := order.StatusCancelled
	cancelled, err := f.service.ListMine(ctx, buyer, &status)
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, ids[1], cancelled[0].ID)
}

/*
TestParseStatus accepts any case and rejects unknown names.
*/
func TestParseStatus(t *testing.T) {
	status, err := order.ParseStatus(" shipped ")
	require.NoError(t, err)
	assert.Equal(t, order.StatusShipped, status)

	_, err = order.ParseStatus("LOST")
	assertStatus(t, err, http.StatusBadRequest)
}

func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, status, appErr.HTTPStatus)
}
