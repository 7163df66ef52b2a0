// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// PaymentTable represents the 'payments.payment' table
type PaymentTable struct {
	Table       string
	ID          string
	UserID      string
	AdminID     string
	OrderID     string
	Method      string
	Amount      string
	Status      string
	CreatedAt   string
	PaymentDate string
}

// Payment is the schema definition for payments.payment
var Payment = PaymentTable{
	Table:       "payments.payment",
	ID:          "id",
	UserID:      "userid",
	AdminID:     "adminid",
	OrderID:     "orderid",
	Method:      "method",
	Amount:      "amount",
	Status:      "status",
	CreatedAt:   "createdat",
	PaymentDate: "paymentdate",
}
