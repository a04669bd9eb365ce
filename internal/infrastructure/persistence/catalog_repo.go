package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nabha-hub/nabha-learning-hub/internal/domain/catalog"
)

// CatalogRepository implements catalog.Repository over a blob Store.
// The catalog blob carries the course list plus the monotonic id counter, so
// id generation survives restarts and stays independent of catalog length.
type CatalogRepository struct {
	store Store
}

// NewCatalogRepository creates a new CatalogRepository.
func NewCatalogRepository(store Store) *CatalogRepository {
	return &CatalogRepository{store: store}
}

// Get returns the stored catalog.
func (r *CatalogRepository) Get(ctx context.Context) (*catalog.Catalog, error) {
	c := catalog.NewCatalog()
	if err := r.store.Load(ctx, KeyCourses, c); err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return catalog.NewCatalog(), nil
		}
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return c, nil
}

// Update applies fn to the stored catalog atomically.
func (r *CatalogRepository) Update(ctx context.Context, fn func(c *catalog.Catalog) error) error {
	return r.store.Update(ctx, KeyCourses, func(raw []byte) ([]byte, error) {
		c := catalog.NewCatalog()
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, c); err != nil {
				return nil, fmt.Errorf("decode catalog: %w", err)
			}
		}
		if err := fn(c); err != nil {
			return nil, err
		}
		return json.Marshal(c)
	})
}
