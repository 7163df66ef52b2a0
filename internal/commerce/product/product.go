// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package product implements the products service: the public catalogue and
the seller-side (ADMIN) management of a seller's own products.

A product belongs to the admin who created it. Images travel with the
product and exactly one of them is the main image.
*/
package product

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/taibuivan/ffshop/internal/platform/apperr"
)

// # Domain Entities

// Product is a sellable item.
type Product struct {
	ID          int64           `json:"id"`
	AdminID     int64           `json:"adminId"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Images      []Image         `json:"images"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Image is one picture of a product.
type Image struct {
	ID    int64  `json:"id"`
	URL   string `json:"url"`
	Title string `json:"title"`
	Main  bool   `json:"main"`
}

// ImageChange is one entry of an image list in a create or update request.
//
// On update an entry without ID adds an image, an entry with ID edits that
// image and ToDelete removes it.
type ImageChange struct {
	ID       *int64 `json:"id,omitempty"`
	URL      string `json:"url"`
	Title    string `json:"title"`
	Main     bool   `json:"main"`
	ToDelete bool   `json:"toDelete"`
}

// Input carries the editable fields of a product.
type Input struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Images      []ImageChange   `json:"images"`
}

// # Field Identifiers

const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldStock       = "stock"
	FieldImages      = "images"
	FieldQuantity    = "quantity"

	NameMaxLength  = 200
	TitleMaxLength = 200
)

// # Errors

var (
	// ErrInsufficientStock rejects a reservation larger than the stock.
	ErrInsufficientStock = apperr.Conflict("Insufficient stock")

	ErrNoMainImage       = apperr.BadRequest("INVALID_IMAGES", "There must be one main image")
	ErrSeveralMainImages = apperr.BadRequest("INVALID_IMAGES", "Only one image can be marked as main")
	ErrMainImageDeleted  = apperr.BadRequest("INVALID_IMAGES", "The main image cannot be deleted; mark another image as main first")
)

/*
ValidateImages enforces the image rules of a create or update request.

Entries flagged ToDelete are ignored when counting main images, and an entry
cannot be both main and deleted.
*/
func ValidateImages(images []ImageChange) error {
	mains := 0
	for _, image := range images {
		if image.ToDelete {
			if image.Main {
				return ErrMainImageDeleted
			}
			continue
		}
		if image.Main {
			mains++
		}
	}

	switch {
	case mains == 0:
		return ErrNoMainImage
	case mains > 1:
		return ErrSeveralMainImages
	}
	return nil
}

// MainImage returns the main image, if any.
func (p *Product) MainImage() (Image, bool) {
	for _, image := range p.Images {
		if image.Main {
			return image, true
		}
	}
	return Image{}, false
}
