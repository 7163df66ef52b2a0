// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names every table and column the stores query, so SQL in
// the store_postgres.go files is built from one source of truth.
//
// Each service owns one Postgres schema: clients, orders, payments, products.
package schema
