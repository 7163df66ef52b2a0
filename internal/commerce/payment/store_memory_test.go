// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package payment_test

import (
	"context"
	"sync"

	"github.com/taibuivan/ffshop/internal/commerce/order"
	"github.com/taibuivan/ffshop/internal/commerce/payment"
	"github.com/taibuivan/ffshop/internal/platform/apperr"
	"github.com/taibuivan/ffshop/internal/platform/dberr"
)

// memoryPayments is an in-memory [payment.Repository].
type memoryPayments struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*payment.Payment
}

func newMemoryPayments() *memoryPayments {
	return &memoryPayments{rows: map[int64]*payment.Payment{}}
}

func copyPayment(p *payment.Payment) *payment.Payment {
	copied := *p
	return &copied
}

func (store *memoryPayments) Create(_ context.Context, p *payment.Payment) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.nextID++
	p.ID = store.nextID
	store.rows[p.ID] = copyPayment(p)
	return nil
}

func (store *memoryPayments) Get(_ context.Context, id int64) (*payment.Payment, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	p, ok := store.rows[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return copyPayment(p), nil
}

func (store *memoryPayments) List(_ context.Context, filter payment.Filter) ([]*payment.Payment, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	out := []*payment.Payment{}
	for id := store.nextID; id > 0; id-- {
		p, ok := store.rows[id]
		if !ok {
			continue
		}
		if (filter.UserID != 0 && p.UserID != filter.UserID) ||
			(filter.AdminID != 0 && p.AdminID != filter.AdminID) ||
			(filter.OrderID != 0 && p.OrderID != filter.OrderID) {
			continue
		}
		out = append(out, copyPayment(p))
	}
	return out, nil
}

func (store *memoryPayments) UpdateStatus(_ context.Context, p *payment.Payment) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.rows[p.ID]; !ok {
		return dberr.ErrNotFound
	}
	store.rows[p.ID] = copyPayment(p)
	return nil
}

// stubOrders answers GetMine from a fixed set of orders.
type stubOrders map[int64]*order.Order

func (orders stubOrders) GetMine(_ context.Context, userID, orderID int64) (*order.Order, error) {
	o, ok := orders[orderID]
	if !ok {
		return nil, apperr.NotFound("Order")
	}
	if o.UserID != userID {
		return nil, apperr.Forbidden("Order does not belong to principal")
	}
	return o, nil
}

// recordingPublisher keeps every routing key it was asked to publish.
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
