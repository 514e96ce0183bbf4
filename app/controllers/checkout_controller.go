package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/bind"
	"github.com/shashiranjanraj/storefront/pkg/response"
)

type CheckoutController struct {
	orders *services.OrderService
	symbol string
}

func NewCheckoutController(orders *services.OrderService, currencySymbol string) *CheckoutController {
	return &CheckoutController{orders: orders, symbol: currencySymbol}
}

type orderView struct {
	models.Order
	FormattedTotal string `json:"formattedTotal"`
}

// Store places an order from the current cart.
func (c *CheckoutController) Store(w http.ResponseWriter, r *http.Request) {
	var in services.CheckoutInput
	if _, err := bind.JSON(w, r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	order, err := c.orders.PlaceOrder(r.Context(), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, orderView{Order: order, FormattedTotal: models.FormatPrice(c.symbol, order.Total)})
}
