// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package payment

import "context"

// Repository persists payments. Get returns [dberr.ErrNotFound] on a miss.
type Repository interface {
	Create(ctx context.Context, p *Payment) error
	Get(ctx context.Context, id int64) (*Payment, error)

	// List returns the payments matching every non-zero field of filter, newest first.
	List(ctx context.Context, filter Filter) ([]*Payment, error)

	// UpdateStatus writes the status and payment date of p.
	UpdateStatus(ctx context.Context, p *Payment) error
}
