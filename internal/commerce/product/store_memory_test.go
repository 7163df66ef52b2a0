// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package product_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/ffshop/internal/commerce/product"
	"github.com/taibuivan/ffshop/internal/platform/apperr"
	"github.com/taibuivan/ffshop/internal/platform/dberr"
)

// memoryProducts is an in-memory [product.Repository].
type memoryProducts struct {
	mu          sync.Mutex
	nextID      int64
	nextImageID int64
	rows        map[int64]*product.Product
	gets        int
}

func newMemoryProducts() *memoryProducts {
	return &memoryProducts{rows: map[int64]*product.Product{}}
}

func copyProduct(p *product.Product) *product.Product {
	copied := *p
	copied.Images = append([]product.Image{}, p.Images...)
	return &copied
}

func (store *memoryProducts) List(_ context.Context, limit, offset int) ([]*product.Product, int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	all := []*product.Product{}
	for _, p := range store.rows {
		all = append(all, copyProduct(p))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	if offset > len(all) {
		offset = len(all)
	}
	end := min(offset+limit, len(all))
	return all[offset:end], len(all), nil
}

func (store *memoryProducts) ListByAdmin(_ context.Context, adminID int64) ([]*product.Product, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	mine := []*product.Product{}
	for _, p := range store.rows {
		if p.AdminID == adminID {
			mine = append(mine, copyProduct(p))
		}
	}
	return mine, nil
}

func (store *memoryProducts) Get(_ context.Context, id int64) (*product.Product, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.gets++
	p, ok := store.rows[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return copyProduct(p), nil
}

func (store *memoryProducts) Create(_ context.Context, p *product.Product, images []product.ImageChange) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.nextID++
	p.ID = store.nextID
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	p.Images = []product.Image{}
	for _, change := range images {
		if change.ToDelete {
			continue
		}
		store.nextImageID++
		p.Images = append(p.Images, product.Image{ID: store.nextImageID, URL: change.URL, Title: change.Title, Main: change.Main})
	}
	store.rows[p.ID] = copyProduct(p)
	return nil
}

func (store *memoryProducts) Update(_ context.Context, p *product.Product, images []product.ImageChange) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	current, ok := store.rows[p.ID]
	if !ok {
		return dberr.ErrNotFound
	}

	kept := map[int64]product.Image{}
	order := []int64{}
	for _, image := range current.Images {
		image.Main = false
		kept[image.ID] = image
		order = append(order, image.ID)
	}

	for _, change := range images {
		switch {
		case change.ToDelete && change.ID == nil:
		case change.ToDelete:
			if _, ok := kept[*change.ID]; !ok {
				return apperr.NotFound("Image")
			}
			delete(kept, *change.ID)
		case change.ID == nil:
			store.nextImageID++
			kept[store.nextImageID] = product.Image{ID: store.nextImageID, URL: change.URL, Title: change.Title, Main: change.Main}
			order = append(order, store.nextImageID)
		default:
			if _, ok := kept[*change.ID]; !ok {
				return apperr.NotFound("Image")
			}
			kept[*change.ID] = product.Image{ID: *change.ID, URL: change.URL, Title: change.Title, Main: change.Main}
		}
	}

	updated := copyProduct(p)
	updated.Images = []product.Image{}
	for _, imageID := range order {
		if image, ok := kept[imageID]; ok {
			updated.Images = append(updated.Images, image)
		}
	}
	updated.UpdatedAt = time.Now()
	store.rows[p.ID] = updated
	return nil
}

func (store *memoryProducts) Delete(_ context.Context, id int64) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.rows[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(store.rows, id)
	return nil
}

func (store *memoryProducts) AdjustStock(_ context.Context, id int64, delta int) (*product.Product, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	p, ok := store.rows[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	if p.Stock+delta < 0 {
		return nil, product.ErrInsufficientStock
	}
	p.Stock += delta
	return copyProduct(p), nil
}
