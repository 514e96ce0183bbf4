package repositories

import (
	"context"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/persist"
)

// Keys names the three persisted records.
type Keys struct {
	Menu   string
	Cart   string
	Orders string
}

// DefaultKeys returns the record names under prefix.
func DefaultKeys(prefix string) Keys {
	return Keys{
		Menu:   prefix + "menu_v1",
		Cart:   prefix + "cart_v1",
		Orders: prefix + "orders_v1",
	}
}

// Repository loads and saves one record holding an ordered list of T.
type Repository[T any] struct {
	db  *persist.Adapter
	key string
}

type (
	CatalogRepository = Repository[models.MenuItem]
	CartRepository    = Repository[models.CartEntry]
	OrderRepository   = Repository[models.Order]
)

func NewCatalogRepository(db *persist.Adapter, key string) *CatalogRepository {
	return &CatalogRepository{db: db, key: key}
}

func NewCartRepository(db *persist.Adapter, key string) *CartRepository {
	return &CartRepository{db: db, key: key}
}

func NewOrderRepository(db *persist.Adapter, key string) *OrderRepository {
	return &OrderRepository{db: db, key: key}
}

// Key returns the record name.
func (r *Repository[T]) Key() string { return r.key }

// Load returns the stored list. found is false when the record is missing
// or unreadable; err tells the two apart.
func (r *Repository[T]) Load(ctx context.Context) (items []T, found bool, err error) {
	found, err = r.db.Load(ctx, r.key, &items)
	if !found {
		return nil, false, err
	}
	if items == nil {
		items = []T{}
	}
	return items, true, nil
}

// Save replaces the stored list. A nil list is stored as an empty one.
func (r *Repository[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	return r.db.Save(ctx, r.key, items)
}
