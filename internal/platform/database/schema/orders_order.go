// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// OrderTable represents the 'orders.order' table
type OrderTable struct {
	Table         string
	ID            string
	UserID        string
	AdminID       string
	ProductID     string
	Quantity      string
	TotalAmount   string
	Status        string
	OrderDate     string
	CancelledDate string
	ReturnedDate  string
	RefundedDate  string
	ShippedDate   string
	DeliveredDate string
	UpdatedAt     string
}

// Order is the schema definition for orders.order
var Order = OrderTable{
	Table:         `orders."order"`,
	ID:            "id",
	UserID:        "userid",
	AdminID:       "adminid",
	ProductID:     "productid",
	Quantity:      "quantity",
	TotalAmount:   "totalamount",
	Status:        "status",
	OrderDate:     "orderdate",
	CancelledDate: "cancelleddate",
	ReturnedDate:  "returneddate",
	RefundedDate:  "refundeddate",
	ShippedDate:   "shippeddate",
	DeliveredDate: "delivereddate",
	UpdatedAt:     "updatedat",
}
