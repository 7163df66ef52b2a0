// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ffshop/internal/platform/database/schema"
	"github.com/taibuivan/ffshop/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements [UserRepository] on clients.account.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of [UserRepository].
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

var userColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s",
	schema.ClientAccount.ID, schema.ClientAccount.Email, schema.ClientAccount.PasswordHash,
	schema.ClientAccount.Role, schema.ClientAccount.RefreshToken,
	schema.ClientAccount.CreatedAt, schema.ClientAccount.UpdatedAt,
)

func scanUser(row interface{ Scan(dest ...any) error }) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.RefreshToken,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FindByID implements [UserRepository].
func (repository *PostgresUserRepository) FindByID(context context.Context, id int64) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		userColumns, schema.ClientAccount.Table, schema.ClientAccount.ID,
	)

	user, err := scanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find_user_by_id")
	}
	return user, nil
}

// FindByEmail implements [UserRepository]. Emails are compared case-insensitively.
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE lower(%s) = lower($1)`,
		userColumns, schema.ClientAccount.Table, schema.ClientAccount.Email,
	)

	user, err := scanUser(repository.pool.QueryRow(context, query, email))
	if err != nil {
		return nil, dberr.Wrap(err, "find_user_by_email")
	}
	return user, nil
}

// Create implements [UserRepository].
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.ClientAccount.Table, schema.ClientAccount.Email, schema.ClientAccount.PasswordHash,
		schema.ClientAccount.Role, schema.ClientAccount.RefreshToken,
		schema.ClientAccount.CreatedAt, schema.ClientAccount.UpdatedAt,
		schema.ClientAccount.ID, schema.ClientAccount.CreatedAt, schema.ClientAccount.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.RefreshToken,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	return dberr.Wrap(err, "create_user")
}

// UpdateRefreshToken implements [UserRepository].
func (repository *PostgresUserRepository) UpdateRefreshToken(context context.Context, id int64, token *string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.ClientAccount.Table, schema.ClientAccount.RefreshToken,
		schema.ClientAccount.UpdatedAt, schema.ClientAccount.ID,
	)

	cmd, err := repository.pool.Exec(context, query, id, token)
	if err != nil {
		return dberr.Wrap(err, "update_refresh_token")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
