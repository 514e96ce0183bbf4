package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/collection"
	"github.com/shashiranjanraj/storefront/pkg/event"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/persist"
)

// CartService owns the pending selection. It holds at most one entry per
// item id, every entry has a quantity of at least 1 and the quantities sum
// to at most math.MaxInt.
type CartService struct {
	mu      sync.Mutex
	repo    *repositories.CartRepository
	entries []models.CartEntry
	loaded  bool
	opts    options
}

func NewCartService(repo *repositories.CartRepository, opts ...Option) *CartService {
	return &CartService{
		repo:    repo,
		entries: []models.CartEntry{},
		opts:    buildOptions(opts),
	}
}

// Load restores the persisted cart. A missing or corrupt record leaves the
// cart empty. Any other read error is returned and the cart stays unloaded:
// mutations retry the read first and refuse to write until it succeeds, so
// the stored cart is never replaced by one that was never read.
func (s *CartService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *CartService) load(ctx context.Context) error {
	entries, found, err := s.repo.Load(ctx)
	if err != nil && !errors.Is(err, persist.ErrCorrupt) {
		return fmt.Errorf("load cart: %w", err)
	}
	if err != nil {
		logger.WithCtx(ctx).Warn("cart: stored cart unreadable, starting empty", "key", s.repo.Key(), "error", err)
	}
	if !found {
		entries = nil
	}
	s.entries = mergeEntries(entries)
	s.loaded = true
	return nil
}

// ensureLoaded retries a failed Load. Callers hold s.mu.
func (s *CartService) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	return s.load(ctx)
}

// mergeEntries drops invalid entries and folds duplicates into the first
// entry for the item, capping the running total at math.MaxInt.
func mergeEntries(entries []models.CartEntry) []models.CartEntry {
	out := []models.CartEntry{}
	total := 0
	for _, e := range entries {
		if e.ItemID == "" || e.Quantity < 1 {
			continue
		}
		qty := min(e.Quantity, math.MaxInt-total)
		if qty == 0 {
			continue
		}
		total += qty
		if i := collection.IndexOf(out, func(o models.CartEntry) bool { return o.ItemID == e.ItemID }); i >= 0 {
			out[i].Quantity += qty
			continue
		}
		out = append(out, models.CartEntry{ItemID: e.ItemID, Quantity: qty})
	}
	return out
}

func quantityTooLarge() error {
	return &models.ValidationError{Reason: models.ErrInvalidQuantity, Fields: map[string]string{"quantity": "The quantity is too large."}}
}

// Add increments the entry for itemID by qty, creating it if needed.
func (s *CartService) Add(ctx context.Context, itemID string, qty int) error {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return &models.ValidationError{Reason: models.ErrItemNotFound, Fields: map[string]string{"itemId": "The itemId field is required."}}
	}
	if qty < 1 {
		return &models.ValidationError{Reason: models.ErrInvalidQuantity, Fields: map[string]string{"quantity": "The quantity must be at least 1."}}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	if qty > math.MaxInt-s.totalQuantity() {
		return quantityTooLarge()
	}

	if i := s.indexOf(itemID); i >= 0 {
		s.entries[i].Quantity += qty
	} else {
		s.entries = append(s.entries, models.CartEntry{ItemID: itemID, Quantity: qty})
	}
	s.changed(ctx, "add")
	return nil
}

// SetQuantity overwrites the quantity of itemID; qty <= 0 removes the entry.
// An unknown itemID is a no-op.
func (s *CartService) SetQuantity(ctx context.Context, itemID string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	i := s.indexOf(itemID)
	if i < 0 {
		return nil
	}
	if qty <= 0 {
		s.entries = append(s.entries[:i], s.entries[i+1:]...)
	} else {
		if qty > math.MaxInt-(s.totalQuantity()-s.entries[i].Quantity) {
			return quantityTooLarge()
		}
		s.entries[i].Quantity = qty
	}
	s.changed(ctx, "set")
	return nil
}

// Remove deletes the entry for itemID if present.
func (s *CartService) Remove(ctx context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	s.entries = collection.Reject(s.entries, func(e models.CartEntry) bool { return e.ItemID == itemID })
	s.changed(ctx, "remove")
	return nil
}

// Clear empties the cart. It needs nothing from the stored cart, so it also
// settles a cart whose Load failed.
func (s *CartService) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = []models.CartEntry{}
	s.loaded = true
	s.changed(ctx, "clear")
}

// Checkout hands a snapshot of the entries to fn while holding the cart, and
// empties the cart only if fn succeeds. fn's error is returned unchanged.
func (s *CartService) Checkout(ctx context.Context, fn func(entries []models.CartEntry) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	if err := fn(models.CloneEntries(s.entries)); err != nil {
		return err
	}
	s.entries = []models.CartEntry{}
	s.changed(ctx, "checkout")
	return nil
}

// Entries returns a copy of the cart entries.
func (s *CartService) Entries() []models.CartEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneEntries(s.entries)
}

// Quantity returns the quantity held for itemID.
func (s *CartService) Quantity(itemID string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(itemID); i >= 0 {
		return s.entries[i].Quantity, true
	}
	return 0, false
}

// IsEmpty reports whether the cart has no entries.
func (s *CartService) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries) == 0
}

// TotalQuantity is the sum of all entry quantities.
func (s *CartService) TotalQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalQuantity()
}

// Subtotal prices the cart against catalog. Entries whose item is not in
// catalog are skipped.
func (s *CartService) Subtotal(catalog []models.MenuItem) float64 {
	return price(s.Entries(), catalog)
}

// Lines joins the cart with catalog for display, skipping dangling entries.
func (s *CartService) Lines(catalog []models.MenuItem) []models.CartLine {
	byID := collection.KeyBy(catalog, func(i models.MenuItem) string { return i.ID })

	lines := []models.CartLine{}
	for _, e := range s.Entries() {
		item, ok := byID[e.ItemID]
		if !ok {
			continue
		}
		lines = append(lines, models.CartLine{
			Item:      item,
			Quantity:  e.Quantity,
			LineTotal: models.RoundCents(item.Price * float64(e.Quantity)),
		})
	}
	return lines
}

func (s *CartService) indexOf(itemID string) int {
	return collection.IndexOf(s.entries, func(e models.CartEntry) bool { return e.ItemID == itemID })
}

func (s *CartService) totalQuantity() int {
	n := 0
	for _, e := range s.entries {
		n += e.Quantity
	}
	return n
}

// changed persists the cart and announces the mutation. Callers hold s.mu.
func (s *CartService) changed(ctx context.Context, op string) {
	if err := s.repo.Save(ctx, s.entries); err != nil {
		s.opts.keepInMemory(ctx, s.repo.Key(), err)
	}
	s.opts.events.Fire(event.CartUpdated, event.CartChange{Op: op, TotalQuantity: s.totalQuantity()})
}

// CartSummary is the cart as shown to the customer.
type CartSummary struct {
	Lines         []models.CartLine `json:"lines"`
	TotalQuantity int               `json:"totalQuantity"`
	Subtotal      float64           `json:"subtotal"`
}

// Summary joins the cart with catalog. TotalQuantity counts dangling
// entries too; Lines and Subtotal skip them.
func (s *CartService) Summary(catalog []models.MenuItem) CartSummary {
	return CartSummary{
		Lines:         s.Lines(catalog),
		TotalQuantity: s.TotalQuantity(),
		Subtotal:      s.Subtotal(catalog),
	}
}
