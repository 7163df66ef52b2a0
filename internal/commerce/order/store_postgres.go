// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package order

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/taibuivan/ffshop/internal/platform/apperr"
	"github.com/taibuivan/ffshop/internal/platform/database/schema"
	"github.com/taibuivan/ffshop/internal/platform/dberr"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var orderColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s::text, %s, %s, %s, %s, %s, %s, %s, %s",
	schema.Order.ID, schema.Order.UserID, schema.Order.AdminID, schema.Order.ProductID,
	schema.Order.Quantity, schema.Order.TotalAmount, schema.Order.Status, schema.Order.OrderDate,
	schema.Order.CancelledDate, schema.Order.ReturnedDate, schema.Order.RefundedDate,
	schema.Order.ShippedDate, schema.Order.DeliveredDate, schema.Order.UpdatedAt,
)

func scanOrder(row pgx.Row) (*Order, error) {
	o := &Order{}
	var total string
	err := row.Scan(
		&o.ID, &o.UserID, &o.AdminID, &o.ProductID, &o.Quantity, &total, &o.Status, &o.OrderDate,
		&o.CancelledDate, &o.ReturnedDate, &o.RefundedDate, &o.ShippedDate, &o.DeliveredDate, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if o.TotalAmount, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("parse total of order %d: %w", o.ID, err)
	}
	return o, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, o *Order) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5::numeric, $6, $7, $7)
		RETURNING %s
	`,
		schema.Order.Table, schema.Order.UserID, schema.Order.AdminID, schema.Order.ProductID,
		schema.Order.Quantity, schema.Order.TotalAmount, schema.Order.Status,
		schema.Order.OrderDate, schema.Order.UpdatedAt,
		schema.Order.ID,
	)

	err := repository.pool.QueryRow(ctx, query,
		o.UserID, o.AdminID, o.ProductID, o.Quantity, o.TotalAmount.String(), o.Status, o.OrderDate,
	).Scan(&o.ID)
	return dberr.Wrap(err, "create_order")
}

func (repository *PostgresRepository) Get(ctx context.Context, id int64) (*Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, orderColumns, schema.Order.Table, schema.Order.ID)

	o, err := scanOrder(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_order")
	}
	return o, nil
}

func (repository *PostgresRepository) ListByUser(ctx context.Context, userID int64, status *Status) ([]*Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, orderColumns, schema.Order.Table, schema.Order.UserID)
	args := []any{userID}

	if status != nil {
		query += fmt.Sprintf(` AND %s = $2`, schema.Order.Status)
		args = append(args, *status)
	}
	query += fmt.Sprintf(` ORDER BY %s DESC`, schema.Order.OrderDate)

	return repository.list(ctx, "list_user_orders", query, args...)
}

func (repository *PostgresRepository) ListByAdmin(ctx context.Context, adminID int64) ([]*Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC`,
		orderColumns, schema.Order.Table, schema.Order.AdminID, schema.Order.OrderDate,
	)
	return repository.list(ctx, "list_admin_orders", query, adminID)
}

func (repository *PostgresRepository) list(ctx context.Context, action, query string, args ...any) ([]*Order, error) {
	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	orders := []*Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, dberr.Wrap(err, action)
		}
		orders = append(orders, o)
	}
	return orders, dberr.Wrap(rows.Err(), action)
}

func (repository *PostgresRepository) SaveStatus(ctx context.Context, o *Order, previous Status) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9
		WHERE %s = $1 AND %s = $2
	`,
		schema.Order.Table, schema.Order.Status, schema.Order.CancelledDate, schema.Order.ReturnedDate,
		schema.Order.RefundedDate, schema.Order.ShippedDate, schema.Order.DeliveredDate, schema.Order.UpdatedAt,
		schema.Order.ID, schema.Order.Status,
	)

	cmd, err := repository.pool.Exec(ctx, query,
		o.ID, previous, o.Status, o.CancelledDate, o.ReturnedDate, o.RefundedDate,
		o.ShippedDate, o.DeliveredDate, o.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "save_order_status")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.Conflict("Order was modified concurrently")
	}
	return nil
}

func (repository *PostgresRepository) CountByStatus(ctx context.Context, adminID int64) (map[Status]int, error) {
	query := fmt.Sprintf(`SELECT %s, count(*) FROM %s WHERE %s = $1 GROUP BY %s`,
		schema.Order.Status, schema.Order.Table, schema.Order.AdminID, schema.Order.Status,
	)

	rows, err := repository.pool.Query(ctx, query, adminID)
	if err != nil {
		return nil, dberr.Wrap(err, "count_orders")
	}
	defer rows.Close()

	counts := map[Status]int{}
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, dberr.Wrap(err, "count_orders")
		}
		counts[status] = count
	}
	return counts, dberr.Wrap(rows.Err(), "count_orders")
}
