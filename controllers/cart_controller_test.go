package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"storefront-service/controllers"
	"storefront-service/database"
	"storefront-service/middleware"
	"storefront-service/models"
	"storefront-service/services"
)

// ---- fakes ----

type fakeStore struct {
	carts     map[string][]models.CartLineItem
	customers map[string]models.CustomerProfile
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		carts:     make(map[string][]models.CartLineItem),
		customers: make(map[string]models.CustomerProfile),
	}
}

func (f *fakeStore) Load(_ context.Context, session string) ([]models.CartLineItem, models.CustomerProfile, error) {
	return append([]models.CartLineItem(nil), f.carts[session]...), f.customers[session], nil
}

func (f *fakeStore) SaveCart(_ context.Context, session string, items []models.CartLineItem) error {
	f.carts[session] = items
	return nil
}

func (f *fakeStore) SaveCustomer(_ context.Context, session string, customer models.CustomerProfile) error {
	f.customers[session] = customer
	return nil
}

func (f *fakeStore) Clear(_ context.Context, session string) error {
	delete(f.carts, session)
	delete(f.customers, session)
	return nil
}

func (f *fakeStore) Subscribe(func(database.ChangeEvent)) func() {
	return func() {}
}

type fakeCatalog struct {
	products map[string]*models.Product
}

func (f *fakeCatalog) ProductBySlug(_ context.Context, slug string) (*models.Product, error) {
	return f.products[slug], nil
}

type fakeSender struct {
	messages []string
}

func (f *fakeSender) SendMessage(_ context.Context, text string) error {
	f.messages = append(f.messages, text)
	return nil
}

func testProduct() *models.Product {
	return &models.Product{
		ID:    7,
		Title: "Jersey A",
		Slug:  "jersey-a",
		Price: 25.00,
	}
}

func newRouter(store *fakeStore, sender *fakeSender) *gin.Engine {
	gin.SetMode(gin.TestMode)
	models.RegisterValidations()

	catalog := &fakeCatalog{products: map[string]*models.Product{"jersey-a": testProduct()}}
	cartService := services.NewCartService(store, catalog, zap.NewNop())
	customerService := services.NewCustomerService(store, zap.NewNop())
	checkoutService := services.NewCheckoutService(store, sender, zap.NewNop())
	badge := services.NewCartBadge(store, zap.NewNop())

	r := gin.New()

	cart := controllers.NewCartController(cartService, badge)
	cartRoutes := r.Group("/cart")
	cartRoutes.Use(middleware.Session())
	cartRoutes.GET("", cart.GetCart)
	cartRoutes.GET("/count", cart.Count)
	cartRoutes.POST("/items", cart.AddItem)
	cartRoutes.PATCH("/items/:index", cart.UpdateQuantity)
	cartRoutes.DELETE("/items/:index", cart.RemoveItem)
	cartRoutes.DELETE("", cart.ClearCart)

	checkout := controllers.NewCheckoutController(customerService, checkoutService)
	checkoutRoutes := r.Group("/checkout")
	checkoutRoutes.Use(middleware.Session())
	checkoutRoutes.PUT("/customer", checkout.SaveCustomer)
	checkoutRoutes.POST("", checkout.PlaceOrder)
	checkoutRoutes.GET("/confirmation", checkout.Confirmation)

	return r
}

func do(r *gin.Engine, method, path, body string, withSession bool) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if withSession {
		req.Header.Set(middleware.SessionHeader, "sess-1")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMissingSessionHeader(t *testing.T) {
	r := newRouter(newFakeStore(), &fakeSender{})

	w := do(r, http.MethodGet, "/cart", "", false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddItemEndpoint(t *testing.T) {
	store := newFakeStore()
	r := newRouter(store, &fakeSender{})

	w := do(r, http.MethodPost, "/cart/items", `{"slug":"jersey-a","quantity":2}`, true)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, store.carts["sess-1"], 1)
	assert.Equal(t, 2, store.carts["sess-1"][0].Quantity)
}

func TestAddItemInvalidPayload(t *testing.T) {
	r := newRouter(newFakeStore(), &fakeSender{})

	w := do(r, http.MethodPost, "/cart/items", `{"quantity":2}`, true) // slug missing
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateQuantityEndpointRemovesAtZero(t *testing.T) {
	store := newFakeStore()
	store.carts["sess-1"] = []models.CartLineItem{{Title: "A", UnitPrice: 10, Quantity: 2}}
	r := newRouter(store, &fakeSender{})

	w := do(r, http.MethodPatch, "/cart/items/0", `{"quantity":0}`, true)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.carts["sess-1"])
}

func TestRemoveItemEndpointOutOfRange(t *testing.T) {
	r := newRouter(newFakeStore(), &fakeSender{})

	w := do(r, http.MethodDelete, "/cart/items/3", "", true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartCountEndpoint(t *testing.T) {
	store := newFakeStore()
	store.carts["sess-1"] = []models.CartLineItem{
		{Title: "A", Quantity: 2},
		{Title: "B", Quantity: 3},
	}
	r := newRouter(store, &fakeSender{})

	w := do(r, http.MethodGet, "/cart/count", "", true)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]int
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 5, body["count"])
}

func TestSaveCustomerNormalizesPhone(t *testing.T) {
	store := newFakeStore()
	r := newRouter(store, &fakeSender{})

	w := do(r, http.MethodPut, "/checkout/customer", `{"name":"Sok Dara","phone":"855712345678"}`, true)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0712345678", store.customers["sess-1"].Phone)
}

func TestPlaceOrderEndToEnd(t *testing.T) {
	store := newFakeStore()
	store.carts["sess-1"] = []models.CartLineItem{{Title: "Jersey A", UnitPrice: 25.00, Quantity: 2}}
	store.customers["sess-1"] = models.CustomerProfile{Name: "Sok Dara", Phone: "0713949557"}
	sender := &fakeSender{}
	r := newRouter(store, sender)

	w := do(r, http.MethodPost, "/checkout", "", true)

	assert.Equal(t, http.StatusOK, w.Code)
	var result models.CheckoutResult
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.NotEmpty(t, result.OrderToken)
	assert.Len(t, sender.messages, 1)
	assert.Empty(t, store.carts["sess-1"])
}

func TestPlaceOrderValidationFailure(t *testing.T) {
	store := newFakeStore()
	store.carts["sess-1"] = []models.CartLineItem{{Title: "Jersey A", UnitPrice: 25.00, Quantity: 2}}
	store.customers["sess-1"] = models.CustomerProfile{Name: "", Phone: "071"}
	sender := &fakeSender{}
	r := newRouter(store, sender)

	w := do(r, http.MethodPost, "/checkout", "", true)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body struct {
		Fields map[string]string `json:"fields"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Fields, "name")
	assert.Contains(t, body.Fields, "phone")
	assert.Empty(t, sender.messages)
}

func TestConfirmationEchoesToken(t *testing.T) {
	r := newRouter(newFakeStore(), &fakeSender{})

	w := do(r, http.MethodGet, "/checkout/confirmation?order=abc-123", "", true)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "abc-123", body["order_number"])
}
