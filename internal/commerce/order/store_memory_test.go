// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package order_test

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/taibuivan/ffshop/internal/commerce/order"
	"github.com/taibuivan/ffshop/internal/platform/apperr"
	"github.com/taibuivan/ffshop/internal/platform/dberr"
)

// memoryOrders is an in-memory [order.Repository].
type memoryOrders struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*order.Order
}

func newMemoryOrders() *memoryOrders {
	return &memoryOrders{rows: map[int64]*order.Order{}}
}

func copyOrder(o *order.Order) *order.Order {
	copied := *o
	return &copied
}

func (store *memoryOrders) Create(_ context.Context, o *order.Order) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.nextID++
	o.ID = store.nextID
	store.rows[o.ID] = copyOrder(o)
	return nil
}

func (store *memoryOrders) Get(_ context.Context, id int64) (*order.Order, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	o, ok := store.rows[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return copyOrder(o), nil
}

func (store *memoryOrders) ListByUser(_ context.Context, userID int64, status *order.Status) ([]*order.Order, error) {
	return store.filter(func(o *order.Order) bool {
		return o.UserID == userID && (status == nil || o.Status == *status)
	}), nil
}

func (store *memoryOrders) ListByAdmin(_ context.Context, adminID int64) ([]*order.Order, error) {
	return store.filter(func(o *order.Order) bool { return o.AdminID == adminID }), nil
}

func (store *memoryOrders) filter(keep func(*order.Order) bool) []*order.Order {
	store.mu.Lock()
	defer store.mu.Unlock()

	out := []*order.Order{}
	for id := int64(1); id <= store.nextID; id++ {
		if o, ok := store.rows[id]; ok && keep(o) {
			out = append(out, copyOrder(o))
		}
	}
	return out
}

func (store *memoryOrders) SaveStatus(_ context.Context, o *order.Order, previous order.Status) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	stored, ok := store.rows[o.ID]
	if !ok {
		return dberr.ErrNotFound
	}
	if stored.Status != previous {
		return apperr.Conflict("Order was modified concurrently")
	}
	store.rows[o.ID] = copyOrder(o)
	return nil
}

func (store *memoryOrders) CountByStatus(_ context.Context, adminID int64) (map[order.Status]int, error) {
	counts := map[order.Status]int{}
	for _, o := range store.filter(func(o *order.Order) bool { return o.AdminID == adminID }) {
		counts[o.Status]++
	}
	return counts, nil
}

// stubCatalog keeps stock per product and records releases.
type stubCatalog struct {
	mu       sync.Mutex
	sellers  map[int64]int64
	prices   map[int64]decimal.Decimal
	stock    map[int64]int
	released map[int64]int
}

func newStubCatalog() *stubCatalog {
	return &stubCatalog{
		sellers:  map[int64]int64{},
		prices:   map[int64]decimal.Decimal{},
		stock:    map[int64]int{},
		released: map[int64]int{},
	}
}

func (catalog *stubCatalog) add(productID, adminID int64, price string, stock int) {
	catalog.sellers[productID] = adminID
	catalog.prices[productID] = decimal.RequireFromString(price)
	catalog.stock[productID] = stock
}

func (catalog *stubCatalog) Reserve(_ context.Context, productID int64, quantity int) (int64, decimal.Decimal, error) {
	catalog.mu.Lock()
	defer catalog.mu.Unlock()

	adminID, ok := catalog.sellers[productID]
	if !ok {
		return 0, decimal.Zero, apperr.NotFound("Product")
	}
	if catalog.stock[productID] < quantity {
		return 0, decimal.Zero, apperr.Conflict("Insufficient stock")
	}
	catalog.stock[productID] -= quantity
	return adminID, catalog.prices[productID], nil
}

func (catalog *stubCatalog) Release(_ context.Context, productID int64, quantity int) error {
	catalog.mu.Lock()
	defer catalog.mu.Unlock()

	catalog.stock[productID] += quantity
	catalog.released[productID] += quantity
	return nil
}

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	keys   []string
	events []any
}

func (publisher *recordingPublisher) Publish(_ context.Context, routingKey string, payload any) error {
	publisher.mu.Lock()
	defer publisher.mu.Unlock()

	publisher.keys = append(publisher.keys, routingKey)
	publisher.events = append(publisher.events, payload)
	return nil
}
