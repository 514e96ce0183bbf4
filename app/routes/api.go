package routes

import (
	"fmt"

	"github.com/shashiranjanraj/storefront/app/controllers"
	"github.com/shashiranjanraj/storefront/app/graph"
	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/app"
	"github.com/shashiranjanraj/storefront/pkg/graphql"
	"github.com/shashiranjanraj/storefront/pkg/router"
)

// API returns the route callback for the REST and GraphQL endpoints of a.
func API(a *app.Application) (func(*router.Router), error) {
	symbol := config.CurrencySymbol()

	menu := controllers.NewMenuController(a.Catalog, symbol)
	cart := controllers.NewCartController(a.Cart, a.Catalog, symbol)
	checkout := controllers.NewCheckoutController(a.Orders, symbol)

	schema, err := graph.NewSchema(graph.Resolvers{Catalog: a.Catalog, Cart: a.Cart, Orders: a.Orders})
	if err != nil {
		return nil, fmt.Errorf("graphql schema: %w", err)
	}

	return func(r *router.Router) {
		api := r.Group("/api")

		api.Get("/menu", "menu.index", menu.Index)
		api.Get("/menu/categories", "menu.categories", menu.Categories)
		api.Post("/menu", "menu.store", menu.Store)
		api.Post("/menu/reset", "menu.reset", menu.Reset)

		api.Get("/cart", "cart.show", cart.Show)
		api.Post("/cart/items", "cart.items.store", cart.AddItem)
		api.Put("/cart/items/{id}", "cart.items.update", cart.UpdateItem)
		api.Delete("/cart/items/{id}", "cart.items.destroy", cart.RemoveItem)
		api.Delete("/cart", "cart.clear", cart.Clear)

		api.Post("/checkout", "checkout.store", checkout.Store)

		r.Post("/graphql", "graphql", graphql.Handler(schema))
	}, nil
}
