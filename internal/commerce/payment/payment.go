// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package payment implements the payments service.

A buyer pays for one of their own orders; the payment inherits the seller of
that order. The seller then settles it by moving the status.
*/
package payment

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/taibuivan/ffshop/internal/platform/apperr"
)

// Status is the settlement state of a payment.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
	StatusRefunded  Status = "REFUNDED"
)

var Statuses = []Status{StatusPending, StatusCompleted, StatusFailed, StatusRefunded}

// ParseStatus accepts any letter case.
func ParseStatus(value string) (Status, error) {
	candidate := Status(strings.ToUpper(strings.TrimSpace(value)))
	for _, status := range Statuses {
		if status == candidate {
			return status, nil
		}
	}
	return "", apperr.BadRequest("INVALID_STATUS", fmt.Sprintf("Unknown payment status %q", value))
}

// Method is how the buyer pays.
type Method string

const (
	MethodBankCard Method = "BANK_CARD"
	MethodPayPal   Method = "PAYPAL"
)

var Methods = []string{string(MethodBankCard), string(MethodPayPal)}

// Payment is one settlement attempt for an order.
type Payment struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"userId"`
	AdminID     int64           `json:"adminId"`
	OrderID     int64           `json:"orderId"`
	Method      Method          `json:"paymentMethod"`
	Amount      decimal.Decimal `json:"amount"`
	Status      Status          `json:"paymentStatus"`
	CreatedAt   time.Time       `json:"createdAt"`
	PaymentDate *time.Time      `json:"paymentDate,omitempty"`
}

// StatusChanged is the payload of the payment.status_changed event.
type StatusChanged struct {
	PaymentID int64     `json:"paymentId"`
	OrderID   int64     `json:"orderId"`
	UserID    int64     `json:"userId"`
	AdminID   int64     `json:"adminId"`
	From      Status    `json:"from"`
	To        Status    `json:"to"`
	ChangedAt time.Time `json:"changedAt"`
}

// Filter narrows [Repository.List]. Zero fields are ignored.
type Filter struct {
	UserID  int64
	AdminID int64
	OrderID int64
}

const (
	FieldOrderID = "orderId"
	FieldMethod  = "paymentMethod"
	FieldAmount  = "amount"
	FieldStatus  = "paymentStatus"
)
