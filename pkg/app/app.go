// Package app composes the storefront: key-value store, record adapter,
// repositories, services, event bus and metrics.
//
//	a, err := app.Open(ctx)
//	if err != nil { ... }
//	defer a.Close()
//
//	api, err := routes.API(a)
//	if err != nil { ... }
//	a.Routes(api)
//	err = a.Serve(ctx)
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/event"
	"github.com/shashiranjanraj/storefront/pkg/kv"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
	"github.com/shashiranjanraj/storefront/pkg/persist"
	"github.com/shashiranjanraj/storefront/pkg/router"
)

// Application is the wired storefront. All fields are ready to use once New
// returns.
type Application struct {
	Store   kv.Store
	Keys    repositories.Keys
	Events  *event.Bus
	Metrics *metrics.Metrics

	Catalog *services.CatalogService
	Cart    *services.CartService
	Orders  *services.OrderService

	routesFns []func(*router.Router)
}

// Option tweaks New.
type Option func(*settings)

type settings struct {
	keyPrefix string
	services  []services.Option
}

// WithKeyPrefix overrides STORE_KEY_PREFIX.
func WithKeyPrefix(prefix string) Option {
	return func(s *settings) { s.keyPrefix = prefix }
}

// WithServiceOptions passes extra options (a fixed clock, say) to every
// service.
func WithServiceOptions(opts ...services.Option) Option {
	return func(s *settings) { s.services = append(s.services, opts...) }
}

// Open loads configuration, connects the configured store and builds the
// application on it.
func Open(ctx context.Context, opts ...Option) (*Application, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}
	store, err := kv.Open(ctx)
	if err != nil {
		return nil, err
	}
	a, err := New(ctx, store, opts...)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return a, nil
}

// New wires the services on store, installs the catalog and restores the
// cart and order log. A failing order log read is logged and retried on
// the first checkout.
func New(ctx context.Context, store kv.Store, opts ...Option) (*Application, error) {
	if store == nil {
		return nil, fmt.Errorf("app: nil store")
	}
	s := settings{keyPrefix: config.StoreKeyPrefix()}
	for _, fn := range opts {
		fn(&s)
	}

	a := &Application{
		Keys:    repositories.DefaultKeys(s.keyPrefix),
		Events:  event.NewBus(),
		Metrics: metrics.New(),
	}
	a.Metrics.Observe(a.Events)
	a.Store = a.Metrics.InstrumentStore(store)

	db := persist.New(a.Store)
	svcOpts := append([]services.Option{services.WithEvents(a.Events)}, s.services...)

	a.Catalog = services.NewCatalogService(repositories.NewCatalogRepository(db, a.Keys.Menu), svcOpts...)
	a.Cart = services.NewCartService(repositories.NewCartRepository(db, a.Keys.Cart), svcOpts...)
	a.Orders = services.NewOrderService(repositories.NewOrderRepository(db, a.Keys.Orders), a.Cart, a.Catalog, svcOpts...)

	if err := a.Catalog.Initialize(ctx); err != nil {
		logger.WithCtx(ctx).Warn("catalog: menu not loaded, serving defaults until it can be read", "error", err)
	}
	if err := a.Cart.Load(ctx); err != nil {
		logger.WithCtx(ctx).Warn("cart: not loaded, will retry on next change", "error", err)
	}
	if err := a.Orders.Load(ctx); err != nil {
		logger.WithCtx(ctx).Warn("orders: log not loaded, will retry at checkout", "error", err)
	}
	return a, nil
}

// Routes registers a route callback used by Handler. Callbacks run in
// order.
func (a *Application) Routes(fn func(*router.Router)) *Application {
	a.routesFns = append(a.routesFns, fn)
	return a
}

// Router builds a router with the global middleware stack and every
// registered route callback applied.
func (a *Application) Router() *router.Router {
	return buildRouter(a)
}

// Handler is Router().Handler().
func (a *Application) Handler() http.Handler {
	return a.Router().Handler()
}

// Close releases the store.
func (a *Application) Close() error {
	a.Events.Flush()
	return a.Store.Close()
}
