package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/controllers"
	"storefront/database"
	"storefront/logger"
	"storefront/models"
	"storefront/routes"
	"storefront/services"
)

type stubFetcher struct {
	products []models.Product
}

func (s *stubFetcher) FetchProducts(ctx context.Context) ([]models.Product, error) {
	return s.products, nil
}

var stubCatalog = []models.Product{
	{ID: 1, Title: "Red Shirt", Description: "A bright red cotton shirt", Category: "men's clothing", Image: "https://img/1.jpg", Price: 19.5},
	{ID: 2, Title: "Gold Ring", Description: "A shiny ring", Category: "jewelery", Image: "https://img/2.jpg", Price: 120},
}

func newRouter(t *testing.T) (*gin.Engine, *database.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.Initialize("test")

	store := database.NewMemoryStore()
	cartService, err := services.NewCartService(context.Background(), database.NewCartRepository(store))
	require.NoError(t, err)

	orderRepo := database.NewOrderRepository(store)
	sessionRepo := database.NewSessionRepository(store)
	catalogService := services.NewCatalogService(&stubFetcher{products: stubCatalog})
	checkoutService := services.NewCheckoutService(cartService, orderRepo, sessionRepo, 0)
	authService := services.NewAuthService(database.NewUserRepository(store), sessionRepo)

	router := gin.New()
	routes.RegisterRoutes(router,
		controllers.NewCatalogController(catalogService, services.NewSearchService(catalogService)),
		controllers.NewCartController(cartService, catalogService),
		controllers.NewCheckoutController(checkoutService, cartService),
		controllers.NewAuthController(authService, orderRepo),
	)
	return router, store
}

func do(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestProductRoutes(t *testing.T) {
	router, _ := newRouter(t)

	w := do(router, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var products []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	assert.Len(t, products, 2)

	w = do(router, http.MethodGet, "/products/2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(router, http.MethodGet, "/products/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchRoute(t *testing.T) {
	router, _ := newRouter(t)

	w := do(router, http.MethodGet, "/search?q=red+shirt", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		SearchTerm        string           `json:"search_term"`
		Count             int              `json:"count"`
		Products          []models.Product `json:"products"`
		HighlightedTitles []string         `json:"highlighted_titles"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "red shirt", resp.SearchTerm)
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, 1, resp.Products[0].ID)
}

func TestCartRoutes(t *testing.T) {
	router, _ := newRouter(t)

	w := do(router, http.MethodPost, "/cart/add", gin.H{"product_id": 1})
	require.Equal(t, http.StatusOK, w.Code)
	w = do(router, http.MethodPost, "/cart/add", gin.H{"product_id": 1})
	require.Equal(t, http.StatusOK, w.Code)
	w = do(router, http.MethodPost, "/cart/add", gin.H{"product_id": 99})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp struct {
		Items  []models.CartItem       `json:"items"`
		Totals services.PriceBreakdown `json:"totals"`
	}
	w = do(router, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.Items[0].Quantity)
	// ceil(19.5)=20, qty 2 -> subtotal 40, tax 4, shipping 50.
	assert.Equal(t, services.PriceBreakdown{Subtotal: 40, Tax: 4, Shipping: 50, Total: 94}, resp.Totals)

	w = do(router, http.MethodPost, "/cart/decrement/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(router, http.MethodPost, "/cart/decrement/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Items, "decrement to zero drops the line")
}

func TestCheckoutRoute(t *testing.T) {
	router, _ := newRouter(t)

	// Unauthenticated entry is gated.
	w := do(router, http.MethodGet, "/checkout", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Sign up, fill the cart, place the order.
	w = do(router, http.MethodPost, "/auth/signup", services.SignupRequest{
		Name: "Jordan Shopper", Email: "jordan@gmail.com",
		Password: "secret12", ConfirmPassword: "secret12",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(router, http.MethodPost, "/cart/add", gin.H{"product_id": 2})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(router, http.MethodPost, "/checkout", models.ShippingDetails{
		FullName: "Jordan Shopper", Email: "jordan@gmail.com", PhoneNumber: "9876543210",
		Address: "42 Market Street", City: "Pune", State: "MH", ZipCode: "411001",
		PaymentMethod: models.PaymentCashOnDelivery,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var result services.CheckoutResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, services.CheckoutPlaced, result.State)
	assert.Equal(t, models.NavigateToHome, result.Redirect)
	require.NotNil(t, result.Order)
	assert.Equal(t, models.PaymentCashOnDelivery, result.Order.PaymentMethod)

	// The receipt is visible and the cart is empty.
	w = do(router, http.MethodGet, "/auth/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var orders []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	assert.Len(t, orders, 1)

	var cart struct {
		Items []models.CartItem `json:"items"`
	}
	w = do(router, http.MethodGet, "/cart", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Empty(t, cart.Items)
}

func TestCheckoutValidationResponse(t *testing.T) {
	router, _ := newRouter(t)

	w := do(router, http.MethodPost, "/auth/signup", services.SignupRequest{
		Name: "Jordan Shopper", Email: "jordan@gmail.com",
		Password: "secret12", ConfirmPassword: "secret12",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	w = do(router, http.MethodPost, "/cart/add", gin.H{"product_id": 1})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(router, http.MethodPost, "/checkout", models.ShippingDetails{FullName: "Jordan"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var result services.CheckoutResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, services.ReasonValidationFailed, result.Reason)
	assert.Contains(t, result.FieldErrors, "email")
	assert.NotContains(t, result.FieldErrors, "fullName")
}

func TestAuthRoutes(t *testing.T) {
	router, _ := newRouter(t)

	w := do(router, http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(router, http.MethodPost, "/auth/signup", services.SignupRequest{
		Name: "Jordan Shopper", Email: "jordan@gmail.com",
		Password: "secret12", ConfirmPassword: "secret12",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(router, http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Duplicate signup collides on the email.
	w = do(router, http.MethodPost, "/auth/signup", services.SignupRequest{
		Name: "Other Jordan", Email: "jordan@gmail.com",
		Password: "pw123456", ConfirmPassword: "pw123456",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(router, http.MethodPost, "/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(router, http.MethodPost, "/auth/login", gin.H{"email": "jordan@gmail.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(router, http.MethodPost, "/auth/login", gin.H{"email": "jordan@gmail.com", "password": "secret12"})
	assert.Equal(t, http.StatusOK, w.Code)
}
