package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	config "github.com/fadyamr909/EcommApp/configs"
	"github.com/fadyamr909/EcommApp/internal/auth"
	"github.com/fadyamr909/EcommApp/internal/handlers"
	"github.com/fadyamr909/EcommApp/internal/models"
)

func setupOrderTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	testDB := setupTestDB(t)

	auth.Init(config.JWTConfig{
		Secret:     "test-secret-that-is-long-enough-0000",
		Issuer:     "EcommApp",
		Audience:   "EcommApp",
		TTLMinutes: 30,
	})

	r := newTestRouter()

	r.POST("/auth/register", handlers.Register)
	r.POST("/api/auth/register", handlers.RegisterAPI)
	r.POST("/api/auth/login", handlers.LoginAPI)

	api := r.Group("/api")
	api.Use(auth.Required())
	{
		api.GET("/cart", handlers.GetCart)
		api.POST("/cart/add", handlers.AddToCart)
		api.POST("/orders/place", handlers.PlaceOrder)
		api.GET("/orders", handlers.ListOrders)
		api.GET("/orders/:id", handlers.GetOrder)
	}

	return r, testDB
}

func registerSessionUser(t *testing.T, client *testClient, username string) {
	t.Helper()

	recorder := client.do(http.MethodPost, "/auth/register", handlers.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
}

func TestPlaceOrderEndToEnd(t *testing.T) {
	router, testDB := setupOrderTestRouter(t)
	client := newTestClient(router)

	registerSessionUser(t, client, "buyer")

	p1 := seedProduct(t, testDB, "Widget", "Misc", "10.00")
	p2 := seedProduct(t, testDB, "Gadget", "Misc", "5.00")

	client.do(http.MethodPost, "/api/cart/add", handlers.AddToCartRequest{ProductID: p1.ID, Quantity: 2})
	client.do(http.MethodPost, "/api/cart/add", handlers.AddToCartRequest{ProductID: p2.ID, Quantity: 1})

	recorder := client.do(http.MethodPost, "/api/orders/place", nil)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var response struct {
		OrderID uint   `json:"order_id"`
		Message string `json:"message"`
	}
	decodeJSON(t, recorder, &response)
	assert.Greater(t, response.OrderID, uint(0))
	assert.Equal(t, "order placed successfully", response.Message)

	// subtotal 25.00 + 10% tax = 27.50
	var stored models.Order
	require.NoError(t, testDB.Preload("Items").First(&stored, response.OrderID).Error)
	assert.True(t, stored.TotalAmount.Equal(decimal.RequireFromString("27.50")), "got %s", stored.TotalAmount)
	require.Len(t, stored.Items, 2)
	assert.True(t, stored.Items[0].PriceAtPurchase.Equal(decimal.RequireFromString("10.00")))
	assert.Equal(t, 2, stored.Items[0].Quantity)
	assert.True(t, stored.Items[1].PriceAtPurchase.Equal(decimal.RequireFromString("5.00")))
	assert.Equal(t, 1, stored.Items[1].Quantity)

	// The cart is cleared only after the order committed.
	cartRec := client.do(http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, cartRec.Code)
	var cartResp cartResponse
	decodeJSON(t, cartRec, &cartResp)
	assert.Empty(t, cartResp.Items)
	assert.Equal(t, 0, cartResp.Count)
}

func TestPlaceOrderPersistsListedPriceNotLivePrice(t *testing.T) {
	router, testDB := setupOrderTestRouter(t)
	client := newTestClient(router)

	registerSessionUser(t, client, "bargainhunter")

	product := seedProduct(t, testDB, "Monitor", "Electronics", "120.00")
	client.do(http.MethodPost, "/api/cart/add", handlers.AddToCartRequest{ProductID: product.ID, Quantity: 1})

	// The price the checkout resolves is whatever the catalog says at
	// listing time, so an edit before checkout is picked up...
	require.NoError(t, testDB.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Update("price", decimal.RequireFromString("100.00")).Error)

	recorder := client.do(http.MethodPost, "/api/orders/place", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		OrderID uint `json:"order_id"`
	}
	decodeJSON(t, recorder, &response)

	var stored models.Order
	require.NoError(t, testDB.Preload("Items").First(&stored, response.OrderID).Error)
	require.Len(t, stored.Items, 1)
	assert.True(t, stored.Items[0].PriceAtPurchase.Equal(decimal.RequireFromString("100.00")))

	// ...but an edit after checkout no longer changes the order.
	require.NoError(t, testDB.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Update("price", decimal.RequireFromString("500.00")).Error)

	var after models.Order
	require.NoError(t, testDB.Preload("Items").First(&after, response.OrderID).Error)
	assert.True(t, after.Items[0].PriceAtPurchase.Equal(decimal.RequireFromString("100.00")))
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	router, _ := setupOrderTestRouter(t)
	client := newTestClient(router)

	registerSessionUser(t, client, "emptyhanded")

	recorder := client.do(http.MethodPost, "/api/orders/place", nil)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	var response map[string]string
	decodeJSON(t, recorder, &response)
	assert.Equal(t, "cart is empty", response["error"])
}

func TestOrdersRequireIdentity(t *testing.T) {
	router, _ := setupOrderTestRouter(t)
	client := newTestClient(router)

	recorder := client.do(http.MethodGet, "/api/orders", nil)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	var response map[string]string
	decodeJSON(t, recorder, &response)
	assert.Equal(t, "unauthorized", response["error"])
}

func TestBearerTokenGrantsAccess(t *testing.T) {
	router, _ := setupOrderTestRouter(t)
	client := newTestClient(router)

	recorder := client.do(http.MethodPost, "/api/auth/register", handlers.RegisterRequest{
		Username: "apiclient",
		Email:    "apiclient@example.com",
		Password: "password123",
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var registered struct {
		Token    string `json:"token"`
		Username string `json:"username"`
	}
	decodeJSON(t, recorder, &registered)
	require.NotEmpty(t, registered.Token)
	assert.Equal(t, "apiclient", registered.Username)

	// A fresh client with only the bearer token, no session cookie.
	apiClient := newTestClient(router)
	apiClient.bearer = registered.Token

	recorder = apiClient.do(http.MethodGet, "/api/orders", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = apiClient.do(http.MethodGet, "/api/orders/9999", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestGetOrderEagerLoadsProducts(t *testing.T) {
	router, testDB := setupOrderTestRouter(t)
	client := newTestClient(router)

	registerSessionUser(t, client, "collector")

	product := seedProduct(t, testDB, "Monitor", "Electronics", "120.00")
	client.do(http.MethodPost, "/api/cart/add", handlers.AddToCartRequest{ProductID: product.ID, Quantity: 1})

	recorder := client.do(http.MethodPost, "/api/orders/place", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var placed struct {
		OrderID uint `json:"order_id"`
	}
	decodeJSON(t, recorder, &placed)

	recorder = client.do(http.MethodGet, fmt.Sprintf("/api/orders/%d", placed.OrderID), nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var order models.Order
	decodeJSON(t, recorder, &order)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Monitor", order.Items[0].Product.Name)
}
