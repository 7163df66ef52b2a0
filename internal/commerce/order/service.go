// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package order

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/taibuivan/ffshop/internal/platform/broker"
	"github.com/taibuivan/ffshop/internal/platform/constants"
	"github.com/taibuivan/ffshop/internal/platform/dberr"
	"github.com/taibuivan/ffshop/internal/platform/guard"
	"github.com/taibuivan/ffshop/internal/platform/validate"
)

// # Contracts

// Catalog reserves stock for new orders. [product.Service] satisfies it.
type Catalog interface {
	// Reserve takes quantity units and returns the seller and the unit price.
	Reserve(ctx context.Context, productID int64, quantity int) (adminID int64, unitPrice decimal.Decimal, err error)
	Release(ctx context.Context, productID int64, quantity int) error
}

// Authorizer checks resource ownership. [guard.Guard] satisfies it.
type Authorizer interface {
	AssertOwnsOrAdmin(ownership guard.Ownership, principalID int64) error
}

// Service implements the order use cases for buyers and sellers.
type Service struct {
	repo    Repository
	catalog Catalog
	authz   Authorizer
	events  broker.Publisher
	logger  *slog.Logger
	now     func() time.Time
}

func NewService(repo Repository, catalog Catalog, authz Authorizer, events broker.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		authz:   authz,
		events:  events,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// # Buyer Side

// CreateInput is a buyer's order request.
type CreateInput struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

/*
Create places an order for userID. Stock is reserved up front and the
total is computed from the product's current price. The order belongs to the
seller of the product.
*/
func (service *Service) Create(ctx context.Context, userID int64, input CreateInput) (*Order, error) {
	validator := &validate.Validator{}
	validator.PositiveInt(FieldProductID, input.ProductID).
		PositiveInt(FieldQuantity, int64(input.Quantity))
	if err := validator.Err(); err != nil {
		return nil, err
	}

	adminID, unitPrice, err := service.catalog.Reserve(ctx, input.ProductID, input.Quantity)
	if err != nil {
		return nil, err
	}

	now := service.now()
	o := &Order{
		UserID:      userID,
		AdminID:     adminID,
		ProductID:   input.ProductID,
		Quantity:    input.Quantity,
		TotalAmount: unitPrice.Mul(decimal.NewFromInt(int64(input.Quantity))),
		Status:      StatusPending,
		OrderDate:   now,
		UpdatedAt:   now,
	}

	if err := service.repo.Create(ctx, o); err != nil {
		service.release(ctx, o)
		return nil, err
	}

	service.logger.InfoContext(ctx, "order_created",
		slog.Int64("order_id", o.ID),
		slog.Int64("user_id", userID),
		slog.Int64("admin_id", adminID),
	)
	return o, nil
}

// ListMine returns the buyer's orders, optionally filtered by status.
func (service *Service) ListMine(ctx context.Context, userID int64, status *Status) ([]*Order, error) {
	return service.repo.ListByUser(ctx, userID, status)
}

// GetMine returns an order placed by userID.
func (service *Service) GetMine(ctx context.Context, userID, id int64) (*Order, error) {
	o, err := service.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := service.authz.AssertOwnsOrAdmin(guard.Owned("Order", o.UserID), userID); err != nil {
		return nil, err
	}
	return o, nil
}

// Cancel moves the buyer's order to CANCELLED.
func (service *Service) Cancel(ctx context.Context, userID, id int64) (*Order, error) {
	return service.buyerTransition(ctx, userID, id, StatusCancelled)
}

// Return moves the buyer's order to RETURNED.
func (service *Service) Return(ctx context.Context, userID, id int64) (*Order, error) {
	return service.buyerTransition(ctx, userID, id, StatusReturned)
}

func (service *Service) buyerTransition(ctx context.Context, userID, id int64, next Status) (*Order, error) {
	o, err := service.GetMine(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return service.transition(ctx, o, next)
}

// # Seller Side

// ListForAdmin returns the orders placed on the seller's products.
func (service *Service) ListForAdmin(ctx context.Context, adminID int64) ([]*Order, error) {
	return service.repo.ListByAdmin(ctx, adminID)
}

// GetForAdmin returns an order only if it belongs to adminID.
func (service *Service) GetForAdmin(ctx context.Context, adminID, id int64) (*Order, error) {
	o, err := service.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := service.authz.AssertOwnsOrAdmin(guard.AdminOwned("Order", o.AdminID), adminID); err != nil {
		return nil, err
	}
	return o, nil
}

// UpdateStatus sets any status on an order of adminID.
func (service *Service) UpdateStatus(ctx context.Context, adminID, id int64, next Status) (*Order, error) {
	o, err := service.GetForAdmin(ctx, adminID, id)
	if err != nil {
		return nil, err
	}
	return service.transition(ctx, o, next)
}

// Counts summarises the seller's orders. Completed means DELIVERED.
func (service *Service) Counts(ctx context.Context, adminID int64) (*Counts, error) {
	byStatus, err := service.repo.CountByStatus(ctx, adminID)
	if err != nil {
		return nil, err
	}

	counts := &Counts{
		PendingOrders:   byStatus[StatusPending],
		CompletedOrders: byStatus[StatusDelivered],
		CancelledOrders: byStatus[StatusCancelled],
	}
	for _, count := range byStatus {
		counts.TotalOrders += count
	}
	return counts, nil
}

// CountByStatus returns how many of the seller's orders are in status.
func (service *Service) CountByStatus(ctx context.Context, adminID int64, status Status) (int, error) {
	byStatus, err := service.repo.CountByStatus(ctx, adminID)
	if err != nil {
		return 0, err
	}
	return byStatus[status], nil
}

// # Internals

func (service *Service) get(ctx context.Context, id int64) (*Order, error) {
	o, err := service.repo.Get(ctx, id)
	if err != nil {
		return nil, dberr.NotFound(err, "Order")
	}
	return o, nil
}

// transition applies next, persists it and fires the side effects.
func (service *Service) transition(ctx context.Context, o *Order, next Status) (*Order, error) {
	previous := o.Status
	if err := o.Transition(next, service.now()); err != nil {
		service.logger.InfoContext(ctx, "order_transition_rejected",
			slog.Int64("order_id", o.ID),
			slog.String("from", string(previous)),
			slog.String("to", string(next)),
		)
		return nil, err
	}

	if err := service.repo.SaveStatus(ctx, o, previous); err != nil {
		return nil, err
	}

	if next.ReleasesStock() {
		service.release(ctx, o)
	}

	event := StatusChanged{
		OrderID:   o.ID,
		UserID:    o.UserID,
		AdminID:   o.AdminID,
		From:      previous,
		To:        next,
		ChangedAt: o.UpdatedAt,
	}
	if err := service.events.Publish(ctx, constants.RoutingOrderStatusChanged, event); err != nil {
		service.logger.WarnContext(ctx, "order_event_publish_failed",
			slog.Int64("order_id", o.ID),
			slog.String("error", err.Error()),
		)
	}

	return o, nil
}

func (service *Service) release(ctx context.Context, o *Order) {
	if err := service.catalog.Release(ctx, o.ProductID, o.Quantity); err != nil {
		service.logger.WarnContext(ctx, "order_stock_release_failed",
			slog.Int64("order_id", o.ID),
			slog.Int64("product_id", o.ProductID),
			slog.String("error", err.Error()),
		)
	}
}
