package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fadyamr909/EcommApp/internal/db"
	"github.com/fadyamr909/EcommApp/internal/models"
)

// setupTestDB opens a named in-memory SQLite database for one test
// function and points the global handle at it.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "failed to connect test database")

	err = testDB.AutoMigrate(&models.Product{}, &models.Order{}, &models.OrderItem{}, &models.User{})
	require.NoError(t, err, "failed to auto-migrate models")

	originalDB := db.DB
	db.SetTestDB(testDB)
	t.Cleanup(func() {
		db.SetTestDB(originalDB)
	})

	return testDB
}

func newTestRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte("test-secret-key"))
	r.Use(sessions.Sessions("storesess", store))

	return r
}

// testClient carries session cookies (and optionally a bearer token)
// across requests, so the session cart behaves as it would for a real
// browser.
type testClient struct {
	router  *gin.Engine
	cookies map[string]*http.Cookie
	bearer  string
}

func newTestClient(router *gin.Engine) *testClient {
	return &testClient{router: router, cookies: map[string]*http.Cookie{}}
}

func (cl *testClient) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if cl.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+cl.bearer)
	}
	for _, c := range cl.cookies {
		req.AddCookie(c)
	}

	recorder := httptest.NewRecorder()
	cl.router.ServeHTTP(recorder, req)

	for _, c := range recorder.Result().Cookies() {
		cl.cookies[c.Name] = c
	}

	return recorder
}

func seedProduct(t *testing.T, testDB *gorm.DB, name, category, price string) models.Product {
	t.Helper()

	product := models.Product{
		Name:        name,
		Description: name + " description",
		Price:       decimal.RequireFromString(price),
		Category:    category,
	}
	require.NoError(t, testDB.Create(&product).Error)
	return product
}

func decodeJSON(t *testing.T, recorder *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), out))
}
