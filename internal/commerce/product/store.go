// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package product

import "context"

// Repository persists products with their images. Soft-deleted products are
// invisible to every method. Lookups return [dberr.ErrNotFound] on a miss.
type Repository interface {
	// List returns one page of the catalogue, newest first, with the total count.
	List(ctx context.Context, limit, offset int) ([]*Product, int, error)

	// ListByAdmin returns every product of one seller.
	ListByAdmin(ctx context.Context, adminID int64) ([]*Product, error)

	Get(ctx context.Context, id int64) (*Product, error)

	// Create inserts p and the non-deleted entries of images in one transaction.
	Create(ctx context.Context, p *Product, images []ImageChange) error

	// Update writes the product fields of p and applies the image changes in
	// one transaction. Image IDs must belong to p.
	Update(ctx context.Context, p *Product, images []ImageChange) error

	Delete(ctx context.Context, id int64) error

	/*
		AdjustStock adds delta (negative to take stock) and returns the product
		after the change.

		Returns:
		  - error: ErrInsufficientStock if the stock would drop below zero
	*/
	AdjustStock(ctx context.Context, id int64, delta int) (*Product, error)
}
