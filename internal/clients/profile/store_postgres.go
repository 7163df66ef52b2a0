// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ffshop/internal/platform/database/schema"
	"github.com/taibuivan/ffshop/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on clients.profile joined with
// clients.account for the email and role.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Get(ctx context.Context, accountID int64) (*Profile, error) {
	query := fmt.Sprintf(`
		SELECT p.%s, p.%s, p.%s, p.%s, a.%s, a.%s, p.%s, p.%s
		FROM %s p
		JOIN %s a ON a.%s = p.%s
		WHERE p.%s = $1
	`,
		schema.ClientProfile.AccountID, schema.ClientProfile.FirstName, schema.ClientProfile.LastName,
		schema.ClientProfile.Username, schema.ClientAccount.Email, schema.ClientAccount.Role,
		schema.ClientProfile.CreatedAt, schema.ClientProfile.UpdatedAt,
		schema.ClientProfile.Table, schema.ClientAccount.Table,
		schema.ClientAccount.ID, schema.ClientProfile.AccountID,
		schema.ClientProfile.AccountID,
	)

	p := &Profile{}
	err := repository.db.QueryRow(ctx, query, accountID).Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.Username, &p.Email, &p.Role, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_profile")
	}
	return p, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, accountID int64, input Input) (*Profile, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`,
		schema.ClientProfile.Table, schema.ClientProfile.AccountID, schema.ClientProfile.FirstName,
		schema.ClientProfile.LastName, schema.ClientProfile.Username,
		schema.ClientProfile.CreatedAt, schema.ClientProfile.UpdatedAt,
	)

	if _, err := repository.db.Exec(ctx, query, accountID, input.FirstName, input.LastName, input.Username); err != nil {
		return nil, dberr.Wrap(err, "create_profile")
	}
	return repository.Get(ctx, accountID)
}

func (repository *PostgresRepository) Update(ctx context.Context, accountID int64, input Input) (*Profile, error) {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1
	`,
		schema.ClientProfile.Table, schema.ClientProfile.FirstName, schema.ClientProfile.LastName,
		schema.ClientProfile.Username, schema.ClientProfile.UpdatedAt, schema.ClientProfile.AccountID,
	)

	cmd, err := repository.db.Exec(ctx, query, accountID, input.FirstName, input.LastName, input.Username)
	if err != nil {
		return nil, dberr.Wrap(err, "update_profile")
	}
	if cmd.RowsAffected() == 0 {
		return nil, dberr.ErrNotFound
	}
	return repository.Get(ctx, accountID)
}
