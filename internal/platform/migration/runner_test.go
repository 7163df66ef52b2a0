// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/ffshop/internal/platform/migration"
)

/*
TestDatabaseURL maps both postgres schemes onto pgx5 and leaves the rest alone.
*/
func TestDatabaseURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://shop:pw@db:5432/ffshop?sslmode=disable", "pgx5://shop:pw@db:5432/ffshop?sslmode=disable"},
		{"postgresql://shop@db/ffshop", "pgx5://shop@db/ffshop"},
		{"pgx5://shop@db/ffshop", "pgx5://shop@db/ffshop"},
		{"host=db user=shop dbname=ffshop", "host=db user=shop dbname=ffshop"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, migration.DatabaseURL(tt.in))
		})
	}
}
