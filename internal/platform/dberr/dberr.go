// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr classifies pgx errors for the shop stores so that no SQL
// detail reaches a client.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/ffshop/internal/platform/apperr"
)

// ErrNotFound is what Wrap returns for pgx.ErrNoRows. Services rename it with
// NotFound before it leaves them.
var ErrNotFound = apperr.NotFound("Resource")

// Wrap maps err for the store operation named by action:
//
//   - no rows: ErrNotFound
//   - unique violation: 409
//   - foreign key, check or not-null violation: 400
//   - anything else: 500 carrying action and err for the log
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict("Resource already exists").WithCause(err)
		case pgerrcode.ForeignKeyViolation:
			return apperr.ValidationError("Referenced resource does not exist").WithCause(err)
		case pgerrcode.CheckViolation, pgerrcode.NotNullViolation:
			return apperr.ValidationError("Value rejected by the database").WithCause(err)
		}
	}

	return apperr.Internal(fmt.Errorf("postgres_%s_failed: %w", action, err))
}

// NotFound turns ErrNotFound into "<resource> not found"; other errors pass through.
func NotFound(err error, resource string) error {
	if !errors.Is(err, ErrNotFound) {
		return err
	}
	return apperr.NotFound(resource)
}
