// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ProductTable represents the 'products.product' table
type ProductTable struct {
	Table       string
	ID          string
	AdminID     string
	Name        string
	Slug        string
	Description string
	Price       string
	Stock       string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
}

// Product is the schema definition for products.product
var Product = ProductTable{
	Table:       "products.product",
	ID:          "id",
	AdminID:     "adminid",
	Name:        "name",
	Slug:        "slug",
	Description: "description",
	Price:       "price",
	Stock:       "stock",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
	DeletedAt:   "deletedat",
}

// ProductImageTable represents the 'products.image' table
type ProductImageTable struct {
	Table     string
	ID        string
	ProductID string
	URL       string
	Title     string
	IsMain    string
	Position  string
}

// ProductImage is the schema definition for products.image
var ProductImage = ProductImageTable{
	Table:     "products.image",
	ID:        "id",
	ProductID: "productid",
	URL:       "url",
	Title:     "title",
	IsMain:    "ismain",
	Position:  "position",
}
