package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/collection"
	"github.com/shashiranjanraj/storefront/pkg/event"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/persist"
)

// AllCategories is the category value that disables category filtering.
const AllCategories = "all"

// SortMode orders query results. Any value other than the two price modes
// keeps insertion order.
type SortMode string

const (
	SortNone      SortMode = ""
	SortPriceAsc  SortMode = "price-asc"
	SortPriceDesc SortMode = "price-desc"
)

// Filter narrows a catalog query.
type Filter struct {
	Search   string
	Category string
	Sort     SortMode
}

// NewItemInput is the admin form for adding a dish.
type NewItemInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Icon        string  `json:"icon"`
}

// CatalogService owns the list of purchasable items.
type CatalogService struct {
	mu    sync.RWMutex
	repo  *repositories.CatalogRepository
	items  []models.MenuItem
	loaded bool
	ids    *IDGenerator
	opts   options
}

func NewCatalogService(repo *repositories.CatalogRepository, opts ...Option) *CatalogService {
	o := buildOptions(opts)
	return &CatalogService{
		repo:  repo,
		items: []models.MenuItem{},
		ids:   NewIDGenerator("m", o.now),
		opts:  o,
	}
}

// Initialize loads the persisted catalog, installs the default menu when
// none is stored or the record is corrupt, and writes the result back.
//
// Any other read error is returned. The default menu is then served from
// memory only and AddItem retries the read before writing, so a transient
// failure never replaces the stored catalog.
func (s *CatalogService) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		s.items = DefaultMenu()
		return err
	}
	return nil
}

func (s *CatalogService) load(ctx context.Context) error {
	items, found, err := s.repo.Load(ctx)
	if err != nil && !errors.Is(err, persist.ErrCorrupt) {
		return fmt.Errorf("load catalog: %w", err)
	}
	if err != nil {
		logger.WithCtx(ctx).Warn("catalog: stored menu unreadable, using defaults", "key", s.repo.Key(), "error", err)
	}
	if !found {
		items = DefaultMenu()
	}
	s.items = items
	s.loaded = true
	s.save(ctx)
	return nil
}

// AddItem validates and appends a new dish with a fresh id.
func (s *CatalogService) AddItem(ctx context.Context, in NewItemInput) (models.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		if err := s.load(ctx); err != nil {
			return models.MenuItem{}, err
		}
	}

	id := s.ids.Next()
	for s.indexOf(id) >= 0 {
		id = s.ids.Next()
	}

	item, err := models.NewMenuItem(id, in.Name, in.Description, in.Price, in.Category, in.Icon)
	if err != nil {
		return models.MenuItem{}, err
	}

	s.items = append(s.items, item)
	s.save(ctx)
	s.opts.events.Fire(event.CatalogItemAdded, item)
	return item, nil
}

// ResetToDefaults replaces the whole catalog with the default menu. Cart
// entries pointing at removed items are left dangling.
func (s *CatalogService) ResetToDefaults(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = DefaultMenu()
	s.loaded = true
	s.save(ctx)
	s.opts.events.Fire(event.CatalogReset, len(s.items))
}

// Categories returns "all" followed by the distinct categories in
// first-seen order.
func (s *CatalogService) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	unique := collection.UniqueBy(s.items, func(i models.MenuItem) string { return i.Category })
	return append([]string{AllCategories}, collection.Map(unique, func(i models.MenuItem) string { return i.Category })...)
}

// Query returns the items matching f. The catalog itself is not modified.
func (s *CatalogService) Query(f Filter) []models.MenuItem {
	items := s.Items()

	if f.Category != "" && f.Category != AllCategories {
		items = collection.Filter(items, func(i models.MenuItem) bool { return i.Category == f.Category })
	}

	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		items = collection.Filter(items, func(i models.MenuItem) bool {
			return strings.Contains(strings.ToLower(i.Name+" "+i.Description), q)
		})
	}

	switch f.Sort {
	case SortPriceAsc:
		collection.SortStableBy(items, func(a, b models.MenuItem) bool { return a.Price < b.Price })
	case SortPriceDesc:
		collection.SortStableBy(items, func(a, b models.MenuItem) bool { return a.Price > b.Price })
	}
	return items
}

// Items returns a copy of the catalog in insertion order.
func (s *CatalogService) Items() []models.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.MenuItem, len(s.items))
	copy(out, s.items)
	return out
}

// Find looks an item up by id.
func (s *CatalogService) Find(id string) (models.MenuItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return collection.First(s.items, func(i models.MenuItem) bool { return i.ID == id })
}

func (s *CatalogService) indexOf(id string) int {
	return collection.IndexOf(s.items, func(i models.MenuItem) bool { return i.ID == id })
}

func (s *CatalogService) save(ctx context.Context) {
	if err := s.repo.Save(ctx, s.items); err != nil {
		s.opts.keepInMemory(ctx, s.repo.Key(), err)
	}
}
