// Package graph exposes the storefront as a GraphQL schema.
package graph

import (
	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/services"
	gql "github.com/shashiranjanraj/storefront/pkg/graphql"
)

// Resolvers are the services the schema reads and mutates.
type Resolvers struct {
	Catalog *services.CatalogService
	Cart    *services.CartService
	Orders  *services.OrderService
}

var menuItemType = graphql.NewObject(graphql.ObjectConfig{
	Name: "MenuItem",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"description": &graphql.Field{Type: graphql.String},
		"price":       &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"category":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"icon":        &graphql.Field{Type: graphql.String},
	},
})

var cartLineType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CartLine",
	Fields: graphql.Fields{
		"item":      &graphql.Field{Type: graphql.NewNonNull(menuItemType)},
		"quantity":  &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"lineTotal": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
	},
})

var cartType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Cart",
	Fields: graphql.Fields{
		"lines":         &graphql.Field{Type: graphql.NewList(cartLineType)},
		"totalQuantity": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"subtotal":      &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
	},
})

var cartEntryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CartEntry",
	Fields: graphql.Fields{
		"itemId":   &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"quantity": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
	},
})

var customerType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Customer",
	Fields: graphql.Fields{
		"name":    &graphql.Field{Type: graphql.String},
		"phone":   &graphql.Field{Type: graphql.String},
		"address": &graphql.Field{Type: graphql.String},
	},
})

var orderType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Order",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"createdAt": &graphql.Field{Type: graphql.DateTime},
		"customer":  &graphql.Field{Type: customerType},
		"items":     &graphql.Field{Type: graphql.NewList(cartEntryType)},
		"total":     &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
	},
})

// NewSchema builds the query and mutation roots on r.
func NewSchema(r Resolvers) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"menu": &graphql.Field{
				Type: graphql.NewList(menuItemType),
				Args: graphql.FieldConfigArgument{
					"search":   &graphql.ArgumentConfig{Type: graphql.String},
					"category": &graphql.ArgumentConfig{Type: graphql.String},
					"sort":     &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					search, _ := p.Args["search"].(string)
					category, _ := p.Args["category"].(string)
					sort, _ := p.Args["sort"].(string)
					return r.Catalog.Query(services.Filter{Search: search, Category: category, Sort: services.SortMode(sort)}), nil
				},
			},
			"categories": &graphql.Field{
				Type: graphql.NewList(graphql.String),
				Resolve: func(graphql.ResolveParams) (interface{}, error) {
					return r.Catalog.Categories(), nil
				},
			},
			"cart": &graphql.Field{
				Type:    cartType,
				Resolve: r.cart,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"addToCart": &graphql.Field{
				Type: cartType,
				Args: graphql.FieldConfigArgument{
					"itemId":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"quantity": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["itemId"].(string)
					qty, _ := p.Args["quantity"].(int)
					if _, ok := r.Catalog.Find(id); !ok {
						return nil, models.ErrItemNotFound
					}
					if err := r.Cart.Add(p.Context, id, qty); err != nil {
						return nil, err
					}
					return r.cart(p)
				},
			},
			"setCartQuantity": &graphql.Field{
				Type: cartType,
				Args: graphql.FieldConfigArgument{
					"itemId":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"quantity": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["itemId"].(string)
					qty, _ := p.Args["quantity"].(int)
					if err := r.Cart.SetQuantity(p.Context, id, qty); err != nil {
						return nil, err
					}
					return r.cart(p)
				},
			},
			"removeFromCart": &graphql.Field{
				Type: cartType,
				Args: graphql.FieldConfigArgument{
					"itemId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["itemId"].(string)
					if err := r.Cart.Remove(p.Context, id); err != nil {
						return nil, err
					}
					return r.cart(p)
				},
			},
			"clearCart": &graphql.Field{
				Type: cartType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					r.Cart.Clear(p.Context)
					return r.cart(p)
				},
			},
			"placeOrder": &graphql.Field{
				Type: orderType,
				Args: graphql.FieldConfigArgument{
					"name":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"phone":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"address": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					name, _ := p.Args["name"].(string)
					phone, _ := p.Args["phone"].(string)
					address, _ := p.Args["address"].(string)
					return r.Orders.PlaceOrder(p.Context, services.CheckoutInput{Name: name, Phone: phone, Address: address})
				},
			},
		},
	})

	return gql.NewSchema(query, mutation)
}

func (r Resolvers) cart(graphql.ResolveParams) (interface{}, error) {
	return r.Cart.Summary(r.Catalog.Items()), nil
}
