// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/taibuivan/ffshop/internal/platform/apperr"
	"github.com/taibuivan/ffshop/internal/platform/database/schema"
	"github.com/taibuivan/ffshop/internal/platform/dberr"
	"github.com/taibuivan/ffshop/internal/platform/postgres"
	"github.com/taibuivan/ffshop/pkg/slice"
)

// PostgresRepository implements [Repository] on products.product and
// products.image.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Prices are read as text and parsed with decimal to keep every digit.
var productColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s::text, %s, %s, %s",
	schema.Product.ID, schema.Product.AdminID, schema.Product.Name, schema.Product.Slug,
	schema.Product.Description, schema.Product.Price, schema.Product.Stock,
	schema.Product.CreatedAt, schema.Product.UpdatedAt,
)

func scanProduct(row pgx.Row) (*Product, error) {
	p := &Product{Images: []Image{}}
	var price string
	err := row.Scan(&p.ID, &p.AdminID, &p.Name, &p.Slug, &p.Description, &price, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if p.Price, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("parse price of product %d: %w", p.ID, err)
	}
	return p, nil
}

func (repository *PostgresRepository) List(ctx context.Context, limit, offset int) ([]*Product, int, error) {
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s IS NULL`, schema.Product.Table, schema.Product.DeletedAt)

	var total int
	if err := repository.pool.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_products")
	}

	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s IS NULL
		ORDER BY %s DESC
		LIMIT $1 OFFSET $2
	`, productColumns, schema.Product.Table, schema.Product.DeletedAt, schema.Product.ID)

	products, err := repository.queryProducts(ctx, "list_products", query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (repository *PostgresRepository) ListByAdmin(ctx context.Context, adminID int64) ([]*Product, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1 AND %s IS NULL
		ORDER BY %s DESC
	`, productColumns, schema.Product.Table, schema.Product.AdminID, schema.Product.DeletedAt, schema.Product.ID)

	return repository.queryProducts(ctx, "list_admin_products", query, adminID)
}

func (repository *PostgresRepository) Get(ctx context.Context, id int64) (*Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		productColumns, schema.Product.Table, schema.Product.ID, schema.Product.DeletedAt,
	)

	p, err := scanProduct(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_product")
	}

	if err := repository.attachImages(ctx, []*Product{p}); err != nil {
		return nil, err
	}
	return p, nil
}

// queryProducts runs a product query and loads the images of every row.
func (repository *PostgresRepository) queryProducts(ctx context.Context, action, query string, args ...any) ([]*Product, error) {
	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	products := []*Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, dberr.Wrap(err, action)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, action)
	}

	if err := repository.attachImages(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

// attachImages loads the images of all products with a single query.
func (repository *PostgresRepository) attachImages(ctx context.Context, products []*Product) error {
	if len(products) == 0 {
		return nil
	}

	byID := make(map[int64]*Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	ids := slice.Map(products, func(p *Product) int64 { return p.ID })

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s FROM %s
		WHERE %s = ANY($1)
		ORDER BY %s, %s
	`,
		schema.ProductImage.ProductID, schema.ProductImage.ID, schema.ProductImage.URL,
		schema.ProductImage.Title, schema.ProductImage.IsMain, schema.ProductImage.Table,
		schema.ProductImage.ProductID, schema.ProductImage.Position, schema.ProductImage.ID,
	)

	rows, err := repository.pool.Query(ctx, query, ids)
	if err != nil {
		return dberr.Wrap(err, "list_product_images")
	}
	defer rows.Close()

	for rows.Next() {
		var productID int64
		var image Image
		if err := rows.Scan(&productID, &image.ID, &image.URL, &image.Title, &image.Main); err != nil {
			return dberr.Wrap(err, "scan_product_image")
		}
		if p, ok := byID[productID]; ok {
			p.Images = append(p.Images, image)
		}
	}
	return dberr.Wrap(rows.Err(), "list_product_images")
}

func (repository *PostgresRepository) Create(ctx context.Context, p *Product, images []ImageChange) error {
	return postgres.InTx(ctx, repository.pool, func(transaction pgx.Tx) error {
		return createProduct(ctx, transaction, p, images)
	})
}

func createProduct(ctx context.Context, transaction pgx.Tx, p *Product, images []ImageChange) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5::numeric, $6, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.Product.Table, schema.Product.AdminID, schema.Product.Name, schema.Product.Slug,
		schema.Product.Description, schema.Product.Price, schema.Product.Stock,
		schema.Product.CreatedAt, schema.Product.UpdatedAt,
		schema.Product.ID, schema.Product.CreatedAt, schema.Product.UpdatedAt,
	)

	err := transaction.QueryRow(ctx, query,
		p.AdminID, p.Name, p.Slug, p.Description, p.Price.String(), p.Stock,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_product")
	}

	p.Images = []Image{}
	for position, change := range images {
		if change.ToDelete {
			continue
		}
		image, err := insertImage(ctx, transaction, p.ID, position, change)
		if err != nil {
			return err
		}
		p.Images = append(p.Images, image)
	}
	return nil
}

func (repository *PostgresRepository) Update(ctx context.Context, p *Product, images []ImageChange) error {
	return postgres.InTx(ctx, repository.pool, func(transaction pgx.Tx) error {
		return updateProduct(ctx, transaction, p, images)
	})
}

func updateProduct(ctx context.Context, transaction pgx.Tx, p *Product, images []ImageChange) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5::numeric, %s = $6, %s = NOW()
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s
	`,
		schema.Product.Table, schema.Product.Name, schema.Product.Slug, schema.Product.Description,
		schema.Product.Price, schema.Product.Stock, schema.Product.UpdatedAt,
		schema.Product.ID, schema.Product.DeletedAt, schema.Product.UpdatedAt,
	)

	err := transaction.QueryRow(ctx, query,
		p.ID, p.Name, p.Slug, p.Description, p.Price.String(), p.Stock,
	).Scan(&p.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_product")
	}

	// Clear the main flag first so the one-main-image index holds at every step.
	clearMain := fmt.Sprintf(`UPDATE %s SET %s = FALSE WHERE %s = $1`,
		schema.ProductImage.Table, schema.ProductImage.IsMain, schema.ProductImage.ProductID,
	)
	if _, err := transaction.Exec(ctx, clearMain, p.ID); err != nil {
		return dberr.Wrap(err, "clear_main_image")
	}

	for position, change := range images {
		switch {
		case change.ToDelete && change.ID == nil:
			continue
		case change.ToDelete:
			err = deleteImage(ctx, transaction, p.ID, *change.ID)
		case change.ID == nil:
			_, err = insertImage(ctx, transaction, p.ID, position, change)
		default:
			err = updateImage(ctx, transaction, p.ID, position, change)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func insertImage(ctx context.Context, transaction pgx.Tx, productID int64, position int, change ImageChange) (Image, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s
	`,
		schema.ProductImage.Table, schema.ProductImage.ProductID, schema.ProductImage.URL,
		schema.ProductImage.Title, schema.ProductImage.IsMain, schema.ProductImage.Position,
		schema.ProductImage.ID,
	)

	image := Image{URL: change.URL, Title: change.Title, Main: change.Main}
	err := transaction.QueryRow(ctx, query, productID, change.URL, change.Title, change.Main, position).Scan(&image.ID)
	return image, dberr.Wrap(err, "insert_product_image")
}

func updateImage(ctx context.Context, transaction pgx.Tx, productID int64, position int, change ImageChange) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $3, %s = $4, %s = $5, %s = $6
		WHERE %s = $1 AND %s = $2
	`,
		schema.ProductImage.Table, schema.ProductImage.URL, schema.ProductImage.Title,
		schema.ProductImage.IsMain, schema.ProductImage.Position,
		schema.ProductImage.ID, schema.ProductImage.ProductID,
	)

	cmd, err := transaction.Exec(ctx, query, *change.ID, productID, change.URL, change.Title, change.Main, position)
	if err != nil {
		return dberr.Wrap(err, "update_product_image")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound(fmt.Sprintf("Image %d", *change.ID))
	}
	return nil
}

func deleteImage(ctx context.Context, transaction pgx.Tx, productID, imageID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.ProductImage.Table, schema.ProductImage.ID, schema.ProductImage.ProductID,
	)

	cmd, err := transaction.Exec(ctx, query, imageID, productID)
	if err != nil {
		return dberr.Wrap(err, "delete_product_image")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound(fmt.Sprintf("Image %d", imageID))
	}
	return nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		schema.Product.Table, schema.Product.DeletedAt, schema.Product.ID, schema.Product.DeletedAt,
	)

	cmd, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_product")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) AdjustStock(ctx context.Context, id int64, delta int) (*Product, error) {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = %s + $2, %s = NOW()
		WHERE %s = $1 AND %s IS NULL AND %s + $2 >= 0
		RETURNING %s
	`,
		schema.Product.Table, schema.Product.Stock, schema.Product.Stock, schema.Product.UpdatedAt,
		schema.Product.ID, schema.Product.DeletedAt, schema.Product.Stock,
		productColumns,
	)

	p, err := scanProduct(repository.pool.QueryRow(ctx, query, id, delta))
	if errors.Is(err, pgx.ErrNoRows) {
		// Either the product is gone or the guard on stock failed.
		if _, getErr := repository.Get(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, ErrInsufficientStock
	}
	if err != nil {
		return nil, dberr.Wrap(err, "adjust_stock")
	}
	return p, nil
}
