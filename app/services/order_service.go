package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/event"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/persist"
)

// CheckoutInput is the customer contact form.
type CheckoutInput struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// OrderService appends finalized orders to the persisted order log.
type OrderService struct {
	mu      sync.Mutex
	repo    *repositories.OrderRepository
	cart    *CartService
	catalog *CatalogService
	orders  []models.Order
	loaded  bool
	ids     *IDGenerator
	opts    options
}

func NewOrderService(repo *repositories.OrderRepository, cart *CartService, catalog *CatalogService, opts ...Option) *OrderService {
	o := buildOptions(opts)
	return &OrderService{
		repo:    repo,
		cart:    cart,
		catalog: catalog,
		orders:  []models.Order{},
		ids:     NewIDGenerator("o", o.now),
		opts:    o,
	}
}

// Load reads the order log. An undecodable log is replaced on the next
// placement; a read failure is returned and retried by PlaceOrder, so an
// unreachable store never causes the log to be overwritten.
func (s *OrderService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *OrderService) load(ctx context.Context) error {
	orders, found, err := s.repo.Load(ctx)
	if err != nil && !errors.Is(err, persist.ErrCorrupt) {
		return fmt.Errorf("load orders: %w", err)
	}
	if err != nil {
		logger.WithCtx(ctx).Warn("orders: stored log unreadable, starting a new one", "key", s.repo.Key(), "error", err)
	}
	if !found {
		orders = []models.Order{}
	}
	s.orders = orders
	s.loaded = true
	return nil
}

// PlaceOrder turns the cart into an order. It fails with ErrEmptyCart or
// ErrIncompleteCustomerInfo (as *models.ValidationError) before touching any
// state, and with a *persist.Error when the order log cannot be written, in
// which case the cart is kept. On success the cart is empty.
func (s *OrderService) PlaceOrder(ctx context.Context, in CheckoutInput) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var placed models.Order
	err := s.cart.Checkout(ctx, func(entries []models.CartEntry) error {
		if len(entries) == 0 {
			return &models.ValidationError{Reason: models.ErrEmptyCart}
		}
		customer, err := models.NewCustomer(in.Name, in.Phone, in.Address)
		if err != nil {
			return err
		}

		if !s.loaded {
			if err := s.load(ctx); err != nil {
				return err
			}
		}

		order := models.Order{
			ID:        s.nextID(),
			CreatedAt: s.opts.now().UTC(),
			Customer:  customer,
			Items:     entries,
			Total:     price(entries, s.catalog.Items()),
		}

		log := make([]models.Order, len(s.orders), len(s.orders)+1)
		copy(log, s.orders)
		log = append(log, order)

		if err := s.repo.Save(ctx, log); err != nil {
			s.opts.keepInMemory(ctx, s.repo.Key(), err)
			return fmt.Errorf("place order: %w", err)
		}
		s.orders = log
		placed = order
		return nil
	})
	if err != nil {
		s.reject(ctx, err)
		return models.Order{}, err
	}

	logger.WithCtx(ctx).Info("order placed", "id", placed.ID, "total", placed.Total, "lines", len(placed.Items))
	s.opts.events.Fire(event.OrderPlaced, event.OrderSummary{ID: placed.ID, Total: placed.Total, Lines: len(placed.Items)})
	return placed, nil
}

// Count returns the number of orders in the log.
func (s *OrderService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

func (s *OrderService) nextID() string {
	id := s.ids.Next()
	for s.exists(id) {
		id = s.ids.Next()
	}
	return id
}

func (s *OrderService) exists(id string) bool {
	for _, o := range s.orders {
		if o.ID == id {
			return true
		}
	}
	return false
}

func (s *OrderService) reject(ctx context.Context, err error) {
	reason := "store"
	switch {
	case errors.Is(err, models.ErrEmptyCart):
		reason = "empty_cart"
	case errors.Is(err, models.ErrIncompleteCustomerInfo):
		reason = "incomplete_customer_info"
	}
	logger.WithCtx(ctx).Info("checkout rejected", "reason", reason, "error", err)
	s.opts.events.Fire(event.CheckoutRejected, event.Rejection{Reason: reason})
}
