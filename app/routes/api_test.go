package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/app/routes"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/app"
	"github.com/shashiranjanraj/storefront/pkg/kv"
	"github.com/shashiranjanraj/storefront/pkg/logger"
)

type envelope struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

type failingPuts struct {
	kv.Store
	key string
}

func (f failingPuts) Put(ctx context.Context, key string, value []byte) error {
	if key == f.key {
		return errors.New("disk full")
	}
	return f.Store.Put(ctx, key, value)
}

func newServer(t *testing.T, store kv.Store) (*app.Application, http.Handler) {
	t.Helper()
	logger.SetOutput(io.Discard)
	t.Cleanup(func() { logger.SetOutput(nil) })

	if store == nil {
		store = kv.NewMemory()
	}
	a, err := app.New(context.Background(), store,
		app.WithKeyPrefix("test_"),
		app.WithServiceOptions(services.WithClock(func() time.Time { return time.UnixMilli(1700000000000) })),
	)
	require.NoError(t, err)

	api, err := routes.API(a)
	require.NoError(t, err)
	a.Routes(api)
	return a, a.Handler()
}

func call(t *testing.T, h http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, rd))

	var env envelope
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestMenuEndpoints(t *testing.T) {
	_, h := newServer(t, nil)

	rec, env := call(t, h, http.MethodGet, "/api/menu?category=Mains&sort=price-desc", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var items []struct {
		ID             string  `json:"id"`
		Price          float64 `json:"price"`
		FormattedPrice string  `json:"formattedPrice"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 2)
	assert.Equal(t, "m2", items[0].ID)
	assert.Equal(t, "$8.90", items[0].FormattedPrice)

	_, env = call(t, h, http.MethodGet, "/api/menu/categories", nil)
	var cats []string
	require.NoError(t, json.Unmarshal(env.Data, &cats))
	assert.Equal(t, []string{"all", "Mains", "Salads", "Sides", "Starters", "Desserts"}, cats)

	rec, env = call(t, h, http.MethodPost, "/api/menu", map[string]interface{}{"name": "Lemonade", "price": 2.5, "category": "Drinks"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, string(env.Data), `"id":"m1700000000000"`)

	rec, env = call(t, h, http.MethodPost, "/api/menu", map[string]interface{}{"name": "", "price": 2.5})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, env.Errors, "name")

	rec, _ = call(t, h, http.MethodPost, "/api/menu/reset", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, env = call(t, h, http.MethodPost, "/api/menu/reset?confirm=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, string(env.Data), "Lemonade")
}

func TestCartAndCheckoutFlow(t *testing.T) {
	a, h := newServer(t, nil)

	rec, _ := call(t, h, http.MethodPost, "/api/cart/items", map[string]interface{}{"itemId": "m1"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec, env := call(t, h, http.MethodPost, "/api/cart/items", map[string]interface{}{"itemId": "m1"})
	require.Equal(t, http.StatusOK, rec.Code)

	var cart struct {
		TotalQuantity     int     `json:"totalQuantity"`
		Subtotal          float64 `json:"subtotal"`
		FormattedSubtotal string  `json:"formattedSubtotal"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	assert.Equal(t, 2, cart.TotalQuantity)
	assert.Equal(t, 15.00, cart.Subtotal)
	assert.Equal(t, "$15.00", cart.FormattedSubtotal)

	rec, _ = call(t, h, http.MethodPost, "/api/cart/items", map[string]interface{}{"itemId": "nope"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec, _ = call(t, h, http.MethodPost, "/api/cart/items", map[string]interface{}{"itemId": "m1", "quantity": -2})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	rec, _ = call(t, h, http.MethodPut, "/api/cart/items/m4", map[string]interface{}{"quantity": 3})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = call(t, h, http.MethodPost, "/api/checkout", map[string]string{"name": "Ana", "phone": "", "address": "1 Main St"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, env.Errors, "phone")
	assert.Equal(t, 2, a.Cart.TotalQuantity())

	rec, env = call(t, h, http.MethodPost, "/api/checkout", map[string]string{"name": "Ana", "phone": "555", "address": "1 Main St"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var order struct {
		ID             string  `json:"id"`
		Total          float64 `json:"total"`
		FormattedTotal string  `json:"formattedTotal"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &order))
	assert.Equal(t, "o1700000000000", order.ID)
	assert.Equal(t, 15.00, order.Total)
	assert.True(t, a.Cart.IsEmpty())

	rec, env = call(t, h, http.MethodPost, "/api/checkout", map[string]string{"name": "Ana", "phone": "555", "address": "1 Main St"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "cart is empty", env.Message)
}

func TestCartUpdateRemoveClear(t *testing.T) {
	a, h := newServer(t, nil)

	call(t, h, http.MethodPost, "/api/cart/items", map[string]interface{}{"itemId": "m1", "quantity": 2})
	call(t, h, http.MethodPost, "/api/cart/items", map[string]interface{}{"itemId": "m3"})

	rec, _ := call(t, h, http.MethodPut, "/api/cart/items/m1", map[string]interface{}{"quantity": 5})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 37.50+6.20, a.Cart.Subtotal(a.Catalog.Items()))

	rec, _ = call(t, h, http.MethodPut, "/api/cart/items/m1", map[string]interface{}{})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, _ = call(t, h, http.MethodPut, "/api/cart/items/m1", map[string]interface{}{"quantity": 0})
	require.Equal(t, http.StatusOK, rec.Code)
	_, ok := a.Cart.Quantity("m1")
	assert.False(t, ok)

	rec, _ = call(t, h, http.MethodDelete, "/api/cart/items/m3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, a.Cart.IsEmpty())

	call(t, h, http.MethodPost, "/api/cart/items", map[string]interface{}{"itemId": "m2"})
	rec, _ = call(t, h, http.MethodDelete, "/api/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, a.Cart.IsEmpty())
}

func TestCartRejectsQuantityOverflow(t *testing.T) {
	a, h := newServer(t, nil)

	call(t, h, http.MethodPost, "/api/cart/items", map[string]interface{}{"itemId": "m1", "quantity": 2})
	rec, env := call(t, h, http.MethodPost, "/api/cart/items", map[string]interface{}{"itemId": "m1", "quantity": math.MaxInt})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, env.Errors, "quantity")

	rec, _ = call(t, h, http.MethodPut, "/api/cart/items/m1", map[string]interface{}{"quantity": math.MaxInt})
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = call(t, h, http.MethodPost, "/api/cart/items", map[string]interface{}{"itemId": "m2"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, math.MaxInt, a.Cart.TotalQuantity())
}

func TestCheckoutReportsStoreFailure(t *testing.T) {
	a, h := newServer(t, failingPuts{Store: kv.NewMemory(), key: "test_orders_v1"})

	call(t, h, http.MethodPost, "/api/cart/items", map[string]interface{}{"itemId": "m2"})
	rec, _ := call(t, h, http.MethodPost, "/api/checkout", map[string]string{"name": "Ana", "phone": "555", "address": "1 Main St"})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, 1, a.Cart.TotalQuantity())
}

func TestMalformedBody(t *testing.T) {
	_, h := newServer(t, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/checkout", bytes.NewBufferString("{")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGraphQL(t *testing.T) {
	a, h := newServer(t, nil)

	post := func(query string) map[string]interface{} {
		b, _ := json.Marshal(map[string]string{"query": query})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(b)))
		require.Equal(t, http.StatusOK, rec.Code)

		var out map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		return out
	}

	out := post(`{ menu(search: "pizza") { id price } categories }`)
	require.Nil(t, out["errors"])
	data := out["data"].(map[string]interface{})
	menu := data["menu"].([]interface{})
	require.Len(t, menu, 1)
	assert.Equal(t, "m2", menu[0].(map[string]interface{})["id"])
	assert.Len(t, data["categories"], 6)

	out = post(`mutation { addToCart(itemId: "m1", quantity: 2) { totalQuantity subtotal lines { item { name } lineTotal } } }`)
	require.Nil(t, out["errors"])
	cart := out["data"].(map[string]interface{})["addToCart"].(map[string]interface{})
	assert.Equal(t, 15.0, cart["subtotal"])

	out = post(`mutation { placeOrder(name: "Ana", phone: "555", address: "1 Main St") { id total items { itemId quantity } } }`)
	require.Nil(t, out["errors"])
	order := out["data"].(map[string]interface{})["placeOrder"].(map[string]interface{})
	assert.Equal(t, 15.0, order["total"])
	assert.True(t, a.Cart.IsEmpty())

	out = post(`mutation { placeOrder(name: "Ana", phone: "555", address: "1 Main St") { id } }`)
	assert.NotNil(t, out["errors"])
}

func TestMetricsEndpoint(t *testing.T) {
	_, h := newServer(t, nil)

	call(t, h, http.MethodPost, "/api/cart/items", map[string]interface{}{"itemId": "m1"})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `storefront_cart_mutations_total{op="add"} 1`)
}
