package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/bind"
	"github.com/shashiranjanraj/storefront/pkg/response"
)

type MenuController struct {
	catalog *services.CatalogService
	symbol  string
}

func NewMenuController(catalog *services.CatalogService, currencySymbol string) *MenuController {
	return &MenuController{catalog: catalog, symbol: currencySymbol}
}

type menuItemView struct {
	models.MenuItem
	FormattedPrice string `json:"formattedPrice"`
}

func (c *MenuController) view(items []models.MenuItem) []menuItemView {
	out := make([]menuItemView, len(items))
	for i, it := range items {
		out[i] = menuItemView{MenuItem: it, FormattedPrice: models.FormatPrice(c.symbol, it.Price)}
	}
	return out
}

// Index lists the menu, narrowed by ?category=, ?search= and ordered by
// ?sort=price-asc|price-desc.
func (c *MenuController) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items := c.catalog.Query(services.Filter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Sort:     services.SortMode(q.Get("sort")),
	})
	response.Success(w, c.view(items))
}

func (c *MenuController) Categories(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, c.catalog.Categories())
}

func (c *MenuController) Store(w http.ResponseWriter, r *http.Request) {
	var in services.NewItemInput
	if _, err := bind.JSON(w, r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	item, err := c.catalog.AddItem(r.Context(), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, c.view([]models.MenuItem{item})[0])
}

// Reset restores the default menu. It requires ?confirm=true.
func (c *MenuController) Reset(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		response.ValidationError(w, "reset must be confirmed", map[string]string{
			"confirm": "The confirm field is required.",
		})
		return
	}
	c.catalog.ResetToDefaults(r.Context())
	response.Success(w, c.view(c.catalog.Items()))
}
