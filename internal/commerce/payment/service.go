// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package payment

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/taibuivan/ffshop/internal/commerce/order"
	"github.com/taibuivan/ffshop/internal/platform/broker"
	"github.com/taibuivan/ffshop/internal/platform/constants"
	"github.com/taibuivan/ffshop/internal/platform/dberr"
	"github.com/taibuivan/ffshop/internal/platform/guard"
	"github.com/taibuivan/ffshop/internal/platform/validate"
	"github.com/taibuivan/ffshop/pkg/pointer"
)

// Orders resolves a buyer's order. [order.Service] satisfies it.
type Orders interface {
	GetMine(ctx context.Context, userID, orderID int64) (*order.Order, error)
}

// Authorizer checks resource ownership. [guard.Guard] satisfies it.
type Authorizer interface {
	AssertOwnsOrAdmin(ownership guard.Ownership, principalID int64) error
}

type Service struct {
	repo   Repository
	orders Orders
	authz  Authorizer
	events broker.Publisher
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, orders Orders, authz Authorizer, events broker.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		orders: orders,
		authz:  authz,
		events: events,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// CreateInput is a buyer's payment request.
type CreateInput struct {
	OrderID int64           `json:"orderId"`
	Method  string          `json:"paymentMethod"`
	Amount  decimal.Decimal `json:"amount"`
}

// # Buyer Side

/*
Create records a PENDING payment of userID for one of their orders.

Returns:
  - *Payment: the stored payment, owned by the seller of the order
  - error: 400 on invalid input, 404/403 if the order is missing or foreign
*/
func (service *Service) Create(ctx context.Context, userID int64, input CreateInput) (*Payment, error) {
	input.Method = strings.ToUpper(strings.TrimSpace(input.Method))

	validator := &validate.Validator{}
	validator.PositiveInt(FieldOrderID, input.OrderID).
		OneOf(FieldMethod, input.Method, Methods...).
		Positive(FieldAmount, input.Amount)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	o, err := service.orders.GetMine(ctx, userID, input.OrderID)
	if err != nil {
		return nil, err
	}

	p := &Payment{
		UserID:    userID,
		AdminID:   o.AdminID,
		OrderID:   o.ID,
		Method:    Method(input.Method),
		Amount:    input.Amount,
		Status:    StatusPending,
		CreatedAt: service.now(),
	}
	if err := service.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "payment_created",
		slog.Int64("payment_id", p.ID),
		slog.Int64("order_id", p.OrderID),
		slog.Int64("user_id", userID),
	)
	return p, nil
}

// GetMine returns a payment made by userID.
func (service *Service) GetMine(ctx context.Context, userID, id int64) (*Payment, error) {
	p, err := service.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := service.authz.AssertOwnsOrAdmin(guard.Owned("Payment", p.UserID), userID); err != nil {
		return nil, err
	}
	return p, nil
}

func (service *Service) ListMine(ctx context.Context, userID int64) ([]*Payment, error) {
	return service.repo.List(ctx, Filter{UserID: userID})
}

// ListMineForOrder returns the payments of one of the buyer's orders.
func (service *Service) ListMineForOrder(ctx context.Context, userID, orderID int64) ([]*Payment, error) {
	if _, err := service.orders.GetMine(ctx, userID, orderID); err != nil {
		return nil, err
	}
	return service.repo.List(ctx, Filter{UserID: userID, OrderID: orderID})
}

// # Seller Side

func (service *Service) ListForAdmin(ctx context.Context, adminID int64) ([]*Payment, error) {
	return service.repo.List(ctx, Filter{AdminID: adminID})
}

// ListForUser returns what userID paid on the seller's orders.
func (service *Service) ListForUser(ctx context.Context, adminID, userID int64) ([]*Payment, error) {
	return service.repo.List(ctx, Filter{AdminID: adminID, UserID: userID})
}

// GetForAdmin returns a payment only if it belongs to adminID.
func (service *Service) GetForAdmin(ctx context.Context, adminID, id int64) (*Payment, error) {
	p, err := service.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := service.authz.AssertOwnsOrAdmin(guard.AdminOwned("Payment", p.AdminID), adminID); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateStatus settles a payment of adminID and stamps the payment date.
func (service *Service) UpdateStatus(ctx context.Context, adminID, id int64, next Status) (*Payment, error) {
	p, err := service.GetForAdmin(ctx, adminID, id)
	if err != nil {
		return nil, err
	}

	previous := p.Status
	now := service.now()
	p.Status = next
	p.PaymentDate = pointer.To(now)

	if err := service.repo.UpdateStatus(ctx, p); err != nil {
		return nil, dberr.NotFound(err, "Payment")
	}

	event := StatusChanged{
		PaymentID: p.ID,
		OrderID:   p.OrderID,
		UserID:    p.UserID,
		AdminID:   p.AdminID,
		From:      previous,
		To:        next,
		ChangedAt: now,
	}
	if err := service.events.Publish(ctx, constants.RoutingPaymentStatusChanged, event); err != nil {
		service.logger.WarnContext(ctx, "payment_event_publish_failed",
			slog.Int64("payment_id", p.ID),
			slog.String("error", err.Error()),
		)
	}

	return p, nil
}

func (service *Service) get(ctx context.Context, id int64) (*Payment, error) {
	p, err := service.repo.Get(ctx, id)
	if err != nil {
		return nil, dberr.NotFound(err, "Payment")
	}
	return p, nil
}
