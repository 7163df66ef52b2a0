// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import "context"

// Repository persists profiles. Lookups return [dberr.ErrNotFound] when the
// account has no profile yet.
type Repository interface {
	Get(ctx context.Context, accountID int64) (*Profile, error)
	Create(ctx context.Context, accountID int64, input Input) (*Profile, error)
	Update(ctx context.Context, accountID int64, input Input) (*Profile, error)
}
