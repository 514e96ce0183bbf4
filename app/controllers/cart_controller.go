package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/bind"
	"github.com/shashiranjanraj/storefront/pkg/response"
)

type CartController struct {
	cart    *services.CartService
	catalog *services.CatalogService
	symbol  string
}

func NewCartController(cart *services.CartService, catalog *services.CatalogService, currencySymbol string) *CartController {
	return &CartController{cart: cart, catalog: catalog, symbol: currencySymbol}
}

type cartView struct {
	services.CartSummary
	FormattedSubtotal string `json:"formattedSubtotal"`
}

type addItemRequest struct {
	ItemID   string `json:"itemId"   validate:"required"`
	Quantity int    `json:"quantity" validate:"omitempty,min=1"`
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

func (c *CartController) summary() cartView {
	s := c.cart.Summary(c.catalog.Items())
	return cartView{CartSummary: s, FormattedSubtotal: models.FormatPrice(c.symbol, s.Subtotal)}
}

func (c *CartController) Show(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, c.summary())
}

// AddItem adds quantity (default 1) of a catalog item.
func (c *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	var in addItemRequest
	errs, err := bind.JSON(w, r, &in)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, "", errs)
		return
	}
	if _, ok := c.catalog.Find(in.ItemID); !ok {
		response.NotFound(w, models.ErrItemNotFound.Error())
		return
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}

	if err := c.cart.Add(r.Context(), in.ItemID, in.Quantity); err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, c.summary())
}

// UpdateItem overwrites the quantity of a cart entry; 0 or less removes it.
func (c *CartController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var in setQuantityRequest
	errs, err := bind.JSON(w, r, &in)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, "", errs)
		return
	}

	id := chi.URLParam(r, "id")
	if _, ok := c.cart.Quantity(id); !ok {
		response.NotFound(w, "item is not in the cart")
		return
	}
	if err := c.cart.SetQuantity(r.Context(), id, *in.Quantity); err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, c.summary())
}

func (c *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if err := c.cart.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, c.summary())
}

func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	c.cart.Clear(r.Context())
	response.Success(w, c.summary())
}
