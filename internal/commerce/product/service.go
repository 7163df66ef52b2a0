// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package product

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/taibuivan/ffshop/internal/platform/apperr"
	"github.com/taibuivan/ffshop/internal/platform/dberr"
	"github.com/taibuivan/ffshop/internal/platform/guard"
	"github.com/taibuivan/ffshop/internal/platform/validate"
	"github.com/taibuivan/ffshop/pkg/slug"
)

// Authorizer checks resource ownership. [guard.Guard] satisfies it.
type Authorizer interface {
	AssertOwnsOrAdmin(ownership guard.Ownership, principalID int64) error
}

// Service implements the catalogue use cases.
type Service struct {
	repo   Repository
	authz  Authorizer
	logger *slog.Logger
}

func NewService(repo Repository, authz Authorizer, logger *slog.Logger) *Service {
	return &Service{repo: repo, authz: authz, logger: logger}
}

// # Public Catalogue

// List returns one page of the catalogue.
func (service *Service) List(ctx context.Context, limit, offset int) ([]*Product, int, error) {
	return service.repo.List(ctx, limit, offset)
}

// Get returns one product by ID.
func (service *Service) Get(ctx context.Context, id int64) (*Product, error) {
	p, err := service.repo.Get(ctx, id)
	if err != nil {
		return nil, dberr.NotFound(err, "Product")
	}
	return p, nil
}

// Stock returns the quantity left of one product.
func (service *Service) Stock(ctx context.Context, id int64) (int, error) {
	p, err := service.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	return p.Stock, nil
}

// # Seller Management

// ListMine returns the products of adminID.
func (service *Service) ListMine(ctx context.Context, adminID int64) ([]*Product, error) {
	return service.repo.ListByAdmin(ctx, adminID)
}

// GetMine returns a product only if adminID owns it.
func (service *Service) GetMine(ctx context.Context, adminID, id int64) (*Product, error) {
	p, err := service.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := service.authz.AssertOwnsOrAdmin(guard.AdminOwned("Product", p.AdminID), adminID); err != nil {
		return nil, err
	}
	return p, nil
}

// Create adds a product owned by adminID.
func (service *Service) Create(ctx context.Context, adminID int64, input Input) (*Product, error) {
	if err := check(input, false); err != nil {
		return nil, err
	}

	p := &Product{
		AdminID:     adminID,
		Name:        strings.TrimSpace(input.Name),
		Slug:        slug.From(input.Name),
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		Stock:       input.Stock,
	}

	if err := service.repo.Create(ctx, p, input.Images); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "product_created",
		slog.Int64("product_id", p.ID),
		slog.Int64("admin_id", adminID),
	)
	return p, nil
}

// Update rewrites a product of adminID and applies its image changes.
func (service *Service) Update(ctx context.Context, adminID, id int64, input Input) (*Product, error) {
	p, err := service.GetMine(ctx, adminID, id)
	if err != nil {
		return nil, err
	}

	if err := check(input, true); err != nil {
		return nil, err
	}

	p.Name = strings.TrimSpace(input.Name)
	p.Slug = slug.From(input.Name)
	p.Description = strings.TrimSpace(input.Description)
	p.Price = input.Price
	p.Stock = input.Stock

	if err := service.repo.Update(ctx, p, input.Images); err != nil {
		return nil, dberr.NotFound(err, "Product")
	}

	return service.Get(ctx, id)
}

// Delete removes a product of adminID from the catalogue.
func (service *Service) Delete(ctx context.Context, adminID, id int64) error {
	if _, err := service.GetMine(ctx, adminID, id); err != nil {
		return err
	}

	if err := service.repo.Delete(ctx, id); err != nil {
		return dberr.NotFound(err, "Product")
	}

	service.logger.InfoContext(ctx, "product_deleted", slog.Int64("product_id", id), slog.Int64("admin_id", adminID))
	return nil
}

// # Stock Reservation

// Reserve takes quantity units of a product for an order. It returns the
// seller and the unit price at the time of the reservation.
func (service *Service) Reserve(ctx context.Context, productID int64, quantity int) (int64, decimal.Decimal, error) {
	if quantity <= 0 {
		return 0, decimal.Zero, validate.Invalid(FieldQuantity, validate.MessagePositiveInteger)
	}

	p, err := service.repo.AdjustStock(ctx, productID, -quantity)
	if err != nil {
		return 0, decimal.Zero, dberr.NotFound(err, "Product")
	}
	return p.AdminID, p.Price, nil
}

// Release puts quantity units back, e.g. after a cancellation.
func (service *Service) Release(ctx context.Context, productID int64, quantity int) error {
	if quantity <= 0 {
		return nil
	}

	_, err := service.repo.AdjustStock(ctx, productID, quantity)
	return dberr.NotFound(err, "Product")
}

// check validates a create (update=false) or update request.
func check(input Input, update bool) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, NameMaxLength).
		Required(FieldDescription, input.Description).
		Positive(FieldPrice, input.Price).
		Custom(FieldStock, input.Stock < 0, "Must not be negative").
		Custom(FieldImages, len(input.Images) == 0, "At least one image is required")

	for _, image := range input.Images {
		if image.ToDelete {
			continue
		}
		validator.Required(FieldImages+".url", image.URL).
			URL(FieldImages+".url", image.URL).
			Required(FieldImages+".title", image.Title).
			MaxLen(FieldImages+".title", image.Title, TitleMaxLength)
		if !update && image.ID != nil {
			validator.Custom(FieldImages+".id", true, "Must be empty for a new product")
		}
	}

	if err := validator.Err(); err != nil {
		return err
	}

	if err := ValidateImages(input.Images); err != nil {
		return err
	}

	if slug.From(input.Name) == "" {
		return apperr.ValidationError("Validation failed", apperr.FieldError{Field: FieldName, Message: "Must contain letters or digits"})
	}
	return nil
}
