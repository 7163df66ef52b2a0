// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/taibuivan/ffshop/internal/platform/database/schema"
	"github.com/taibuivan/ffshop/internal/platform/dberr"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var paymentColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s::text, %s, %s, %s",
	schema.Payment.ID, schema.Payment.UserID, schema.Payment.AdminID, schema.Payment.OrderID,
	schema.Payment.Method, schema.Payment.Amount, schema.Payment.Status,
	schema.Payment.CreatedAt, schema.Payment.PaymentDate,
)

func scanPayment(row pgx.Row) (*Payment, error) {
	p := &Payment{}
	var amount string
	err := row.Scan(
		&p.ID, &p.UserID, &p.AdminID, &p.OrderID, &p.Method, &amount, &p.Status,
		&p.CreatedAt, &p.PaymentDate,
	)
	if err != nil {
		return nil, err
	}

	if p.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("parse amount of payment %d: %w", p.ID, err)
	}
	return p, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, p *Payment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5::numeric, $6, $7)
		RETURNING %s
	`,
		schema.Payment.Table, schema.Payment.UserID, schema.Payment.AdminID, schema.Payment.OrderID,
		schema.Payment.Method, schema.Payment.Amount, schema.Payment.Status, schema.Payment.CreatedAt,
		schema.Payment.ID,
	)

	err := repository.pool.QueryRow(ctx, query,
		p.UserID, p.AdminID, p.OrderID, p.Method, p.Amount.String(), p.Status, p.CreatedAt,
	).Scan(&p.ID)
	return dberr.Wrap(err, "create_payment")
}

func (repository *PostgresRepository) Get(ctx context.Context, id int64) (*Payment, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, paymentColumns, schema.Payment.Table, schema.Payment.ID)

	p, err := scanPayment(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_payment")
	}
	return p, nil
}

func (repository *PostgresRepository) List(ctx context.Context, filter Filter) ([]*Payment, error) {
	var conditions []string
	var args []any

	add := func(column string, value int64) {
		if value == 0 {
			return
		}
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	add(schema.Payment.UserID, filter.UserID)
	add(schema.Payment.AdminID, filter.AdminID)
	add(schema.Payment.OrderID, filter.OrderID)

	query := fmt.Sprintf(`SELECT %s FROM %s`, paymentColumns, schema.Payment.Table)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += fmt.Sprintf(` ORDER BY %s DESC, %s DESC`, schema.Payment.CreatedAt, schema.Payment.ID)

	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_payments")
	}
	defer rows.Close()

	payments := []*Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "list_payments")
		}
		payments = append(payments, p)
	}
	return payments, dberr.Wrap(rows.Err(), "list_payments")
}

func (repository *PostgresRepository) UpdateStatus(ctx context.Context, p *Payment) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		schema.Payment.Table, schema.Payment.Status, schema.Payment.PaymentDate, schema.Payment.ID,
	)

	cmd, err := repository.pool.Exec(ctx, query, p.ID, p.Status, p.PaymentDate)
	if err != nil {
		return dberr.Wrap(err, "update_payment_status")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
