// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package order implements the orders service.

Buyers (USER) place orders and may cancel or return their own. Sellers
(ADMIN) see the orders placed on their products and drive the status. Once an
order is CANCELLED or RETURNED it never changes again.
*/
package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/taibuivan/ffshop/internal/platform/apperr"
	"github.com/taibuivan/ffshop/pkg/pointer"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusValidated Status = "VALIDATED"
	StatusCancelled Status = "CANCELLED"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusReturned  Status = "RETURNED"
	StatusRefunded  Status = "REFUNDED"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{
	StatusPending, StatusValidated, StatusCancelled, StatusShipped,
	StatusDelivered, StatusReturned, StatusRefunded,
}

// ParseStatus accepts any letter case.
func ParseStatus(value string) (Status, error) {
	candidate := Status(strings.ToUpper(strings.TrimSpace(value)))
	for _, status := range Statuses {
		if status == candidate {
			return status, nil
		}
	}
	return "", apperr.BadRequest("INVALID_STATUS", fmt.Sprintf("Unknown order status %q", value))
}

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusReturned
}

// ReleasesStock reports whether entering s puts the ordered units back.
func (s Status) ReleasesStock() bool {
	return s.IsTerminal()
}

// ErrInvalidStateTransition is returned for any change of a terminal order.
var ErrInvalidStateTransition = apperr.BadRequest("INVALID_STATE_TRANSITION", "Order can no longer change status")

// Order is one purchase of a single product.
type Order struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"userId"`
	AdminID       int64           `json:"adminId"`
	ProductID     int64           `json:"productId"`
	Quantity      int             `json:"quantity"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Status        Status          `json:"orderStatus"`
	OrderDate     time.Time       `json:"orderDate"`
	CancelledDate *time.Time      `json:"cancelledDate,omitempty"`
	ReturnedDate  *time.Time      `json:"returnedDate,omitempty"`
	RefundedDate  *time.Time      `json:"refundedDate,omitempty"`
	ShippedDate   *time.Time      `json:"shippedDate,omitempty"`
	DeliveredDate *time.Time      `json:"deliveredDate,omitempty"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

/*
Transition moves the order to next and stamps the matching date.

Returns:
  - error: ErrInvalidStateTransition when the order is CANCELLED or RETURNED
*/
func (o *Order) Transition(next Status, now time.Time) error {
	if o.Status.IsTerminal() {
		return ErrInvalidStateTransition
	}

	o.Status = next
	o.UpdatedAt = now

	switch next {
	case StatusCancelled:
		o.CancelledDate = pointer.To(now)
	case StatusReturned:
		o.ReturnedDate = pointer.To(now)
	case StatusRefunded:
		o.RefundedDate = pointer.To(now)
	case StatusShipped:
		o.ShippedDate = pointer.To(now)
	case StatusDelivered:
		o.DeliveredDate = pointer.To(now)
	}
	return nil
}

// Counts is the seller dashboard summary.
type Counts struct {
	TotalOrders     int `json:"totalOrders"`
	PendingOrders   int `json:"pendingOrders"`
	CompletedOrders int `json:"completedOrders"`
	CancelledOrders int `json:"cancelledOrders"`
}

// StatusChanged is the payload of the order.status_changed event.
type StatusChanged struct {
	OrderID   int64     `json:"orderId"`
	UserID    int64     `json:"userId"`
	AdminID   int64     `json:"adminId"`
	From      Status    `json:"from"`
	To        Status    `json:"to"`
	ChangedAt time.Time `json:"changedAt"`
}

const (
	FieldProductID = "productId"
	FieldQuantity  = "quantity"
	FieldStatus    = "status"
)
