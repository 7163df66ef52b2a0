// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package order

import "context"

// Repository persists orders. Get returns [dberr.ErrNotFound] on a miss.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	Get(ctx context.Context, id int64) (*Order, error)

	// ListByUser returns the buyer's orders, optionally only those in status.
	ListByUser(ctx context.Context, userID int64, status *Status) ([]*Order, error)
	ListByAdmin(ctx context.Context, adminID int64) ([]*Order, error)

	/*
		SaveStatus writes the status and dates of o, but only while the stored
		status still equals previous.

		Returns:
		  - error: apperr.Conflict if another request changed the order first
	*/
	SaveStatus(ctx context.Context, o *Order, previous Status) error

	// CountByStatus returns the number of the seller's orders per status.
	CountByStatus(ctx context.Context, adminID int64) (map[Status]int, error)
}
