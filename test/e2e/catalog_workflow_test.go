//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/easycatalog/easycatalog-be/internal/adapters/db"
	redis_a "github.com/easycatalog/easycatalog-be/internal/adapters/redis_adapter"
	"github.com/easycatalog/easycatalog-be/internal/core/services"
	"github.com/easycatalog/easycatalog-be/internal/handlers"
	"github.com/easycatalog/easycatalog-be/test/helpers"
)

type CatalogE2ESuite struct {
	suite.Suite
	server    *httptest.Server
	client    *http.Client
	baseURL   string
	testDB    *helpers.TestDB
	testRedis *helpers.TestRedis
}

func (s *CatalogE2ESuite) SetupSuite() {
	s.testDB = helpers.SetupTestDB(s.T())
	s.testRedis = helpers.SetupTestRedis(s.T())

	s.server = s.startTestServer()
	s.client = &http.Client{Timeout: 10 * time.Second}
	s.baseURL = s.server.URL + "/api/v1"
}

func (s *CatalogE2ESuite) TearDownSuite() {
	s.server.Close()
}

func (s *CatalogE2ESuite) SetupTest() {
	helpers.TruncateAllTables(s.T(), s.testDB.PgxPool)
	s.NoError(s.testRedis.Client.FlushDB(context.Background()).Err())
}

// startTestServer wires the real handlers over the test database and
// cache, mirroring the API binary's routing.
func (s *CatalogE2ESuite) startTestServer() *httptest.Server {
	logger := helpers.TestLogger().Logger
	database := s.testDB.Database
	cache := redis_a.NewCache(s.testRedis.Client, time.Hour, logger)

	storeRepo := db.NewStoreRepository(database, logger)
	categoryRepo := db.NewCategoryRepository(database, logger)
	productRepo := db.NewProductRepository(database, logger)
	stockRepo := db.NewStockRepository(database, logger)
	tiktokRepo := db.NewTikTokRepository(database, logger)

	storeHandler := handlers.NewStoreHandler(services.NewStoreService(storeRepo, tiktokRepo, logger), logger)
	categoryHandler := handlers.NewCategoryHandler(services.NewCategoryService(categoryRepo, logger), logger)
	productHandler := handlers.NewProductHandler(services.NewProductService(productRepo, cache, logger), logger)
	stockHandler := handlers.NewStockHandler(services.NewStockService(stockRepo, cache, logger), logger)

	mux := http.NewServeMux()
	const apiV1 = "/api/v1"

	mux.HandleFunc("POST "+apiV1+"/stores", storeHandler.CreateStore)
	mux.HandleFunc("GET "+apiV1+"/stores/{storeId}", storeHandler.GetStore)
	mux.HandleFunc("DELETE "+apiV1+"/stores/{storeId}", storeHandler.DeleteStore)

	mux.HandleFunc("POST "+apiV1+"/stores/{storeId}/categories", categoryHandler.CreateCategory)
	mux.HandleFunc("GET "+apiV1+"/stores/{storeId}/categories", categoryHandler.ListCategories)

	mux.HandleFunc("POST "+apiV1+"/stores/{storeId}/products", productHandler.CreateProduct)
	mux.HandleFunc("GET "+apiV1+"/stores/{storeId}/products", productHandler.ListProducts)
	mux.HandleFunc("GET "+apiV1+"/stores/{storeId}/products/{id}", productHandler.GetProduct)
	mux.HandleFunc("DELETE "+apiV1+"/stores/{storeId}/products/{id}", productHandler.DeleteProduct)

	mux.HandleFunc("POST "+apiV1+"/stores/{storeId}/stock/movements", stockHandler.RecordMovement)
	mux.HandleFunc("GET "+apiV1+"/stores/{storeId}/stock/movements", stockHandler.ListStoreMovements)
	mux.HandleFunc("POST "+apiV1+"/stores/{storeId}/stock/adjustments", stockHandler.AdjustStock)
	mux.HandleFunc("GET "+apiV1+"/stores/{storeId}/stock/summary", stockHandler.GetStockSummary)
	mux.HandleFunc("GET "+apiV1+"/stores/{storeId}/stock/low", stockHandler.ListLowStock)
	mux.HandleFunc("GET "+apiV1+"/variants/{variantId}/stock", stockHandler.GetVariantStock)
	mux.HandleFunc("GET "+apiV1+"/variants/{variantId}/movements", stockHandler.ListVariantMovements)

	return httptest.NewServer(mux)
}

func (s *CatalogE2ESuite) TestCompleteCatalogWorkflow() {
	// 1. Create a store
	resp := s.makeRequest("POST", "/stores", map[string]interface{}{
		"name":        "E2E Store",
		"description": "Store created in workflow test",
	})
	s.Equal(http.StatusCreated, resp.StatusCode)

	var store map[string]interface{}
	s.decodeResponse(resp, &store)
	storeID := store["id"].(string)
	s.NotEmpty(storeID)

	// 2. Create a category
	resp = s.makeRequest("POST", fmt.Sprintf("/stores/%s/categories", storeID), map[string]interface{}{
		"name": "Apparel",
		"slug": "apparel",
	})
	s.Equal(http.StatusCreated, resp.StatusCode)

	var category map[string]interface{}
	s.decodeResponse(resp, &category)
	categoryID := category["id"].(string)

	// 3. Create a product with two variants
	resp = s.makeRequest("POST", fmt.Sprintf("/stores/%s/products", storeID), map[string]interface{}{
		"name":        "Classic Cotton Tee",
		"slug":        "classic-cotton-tee",
		"status":      "ACTIVE",
		"category_id": categoryID,
		"variants": []map[string]interface{}{
			{"name": "White / M", "sku": "TEE-WHT-M", "price": "24.99"},
			{"name": "Black / M", "sku": "TEE-BLK-M", "price": "24.99"},
		},
	})
	s.Equal(http.StatusCreated, resp.StatusCode)

	var product map[string]interface{}
	s.decodeResponse(resp, &product)
	productID := product["id"].(string)
	variants := product["variants"].([]interface{})
	s.Len(variants, 2)
	variantID := variants[0].(map[string]interface{})["id"].(string)

	// 4. Restock the first variant
	resp = s.makeRequest("POST", fmt.Sprintf("/stores/%s/stock/movements", storeID), map[string]interface{}{
		"variant_id": variantID,
		"quantity":   20,
		"type":       "RESTOCK",
		"reference":  "po-e2e-1",
	})
	s.Equal(http.StatusCreated, resp.StatusCode)

	var movement map[string]interface{}
	s.decodeResponse(resp, &movement)
	s.Equal(float64(0), movement["previous_stock"])
	s.Equal(float64(20), movement["new_stock"])

	// 5. Sell some units
	resp = s.makeRequest("POST", fmt.Sprintf("/stores/%s/stock/movements", storeID), map[string]interface{}{
		"variant_id": variantID,
		"quantity":   -6,
		"type":       "SALE",
		"reference":  "order-e2e-1",
	})
	s.Equal(http.StatusCreated, resp.StatusCode)

	// 6. Overselling is rejected with a conflict
	resp = s.makeRequest("POST", fmt.Sprintf("/stores/%s/stock/movements", storeID), map[string]interface{}{
		"variant_id": variantID,
		"quantity":   -100,
		"type":       "SALE",
	})
	s.Equal(http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// 7. Current stock reflects the accepted movements only
	resp = s.makeRequest("GET", fmt.Sprintf("/variants/%s/stock", variantID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var stock map[string]interface{}
	s.decodeResponse(resp, &stock)
	s.Equal(float64(14), stock["stock"])

	// 8. Absolute adjustment after a cycle count
	resp = s.makeRequest("POST", fmt.Sprintf("/stores/%s/stock/adjustments", storeID), map[string]interface{}{
		"variant_id": variantID,
		"new_stock":  12,
		"notes":      "cycle count",
	})
	s.Equal(http.StatusCreated, resp.StatusCode)

	var adjustment map[string]interface{}
	s.decodeResponse(resp, &adjustment)
	s.Equal("ADJUSTMENT", adjustment["type"])
	s.Equal(float64(-2), adjustment["quantity"])

	// 9. The variant's ledger lists newest first
	resp = s.makeRequest("GET", fmt.Sprintf("/variants/%s/movements", variantID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var ledger map[string]interface{}
	s.decodeResponse(resp, &ledger)
	s.Equal(float64(3), ledger["total_count"])
	movements := ledger["movements"].([]interface{})
	s.Equal("ADJUSTMENT", movements[0].(map[string]interface{})["type"])
	s.Equal("RESTOCK", movements[2].(map[string]interface{})["type"])

	// 10. Store-wide summary
	resp = s.makeRequest("GET", fmt.Sprintf("/stores/%s/stock/summary", storeID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var summary map[string]interface{}
	s.decodeResponse(resp, &summary)
	s.Equal(float64(12), summary["total_stock"])
	s.Equal(float64(2), summary["variant_count"])
	s.Equal(float64(1), summary["out_of_stock_count"])

	// 11. The untouched variant shows up in the low stock list
	resp = s.makeRequest("GET", fmt.Sprintf("/stores/%s/stock/low", storeID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var low map[string]interface{}
	s.decodeResponse(resp, &low)
	s.Equal(float64(1), low["count"])

	// 12. Delete the product; its ledger goes with it
	resp = s.makeRequest("DELETE", fmt.Sprintf("/stores/%s/products/%s", storeID, productID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = s.makeRequest("GET", fmt.Sprintf("/variants/%s/stock", variantID), nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func (s *CatalogE2ESuite) TestStoreIsolation() {
	// Two stores with the same product slug must not collide
	var storeIDs []string
	for _, name := range []string{"Store A", "Store B"} {
		resp := s.makeRequest("POST", "/stores", map[string]interface{}{"name": name})
		s.Equal(http.StatusCreated, resp.StatusCode)

		var store map[string]interface{}
		s.decodeResponse(resp, &store)
		storeIDs = append(storeIDs, store["id"].(string))
	}

	for _, storeID := range storeIDs {
		resp := s.makeRequest("POST", fmt.Sprintf("/stores/%s/products", storeID), map[string]interface{}{
			"name": "Canvas Tote Bag",
			"slug": "canvas-tote-bag",
			"variants": []map[string]interface{}{
				{"name": "Default", "sku": "TOTE-NAT", "price": "18.00"},
			},
		})
		s.Equal(http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	// Each store sees exactly its own product
	for _, storeID := range storeIDs {
		resp := s.makeRequest("GET", fmt.Sprintf("/stores/%s/products", storeID), nil)
		s.Equal(http.StatusOK, resp.StatusCode)

		var list map[string]interface{}
		s.decodeResponse(resp, &list)
		s.Equal(float64(1), list["total_count"])
	}

	// But a duplicate slug within one store is rejected
	resp := s.makeRequest("POST", fmt.Sprintf("/stores/%s/products", storeIDs[0]), map[string]interface{}{
		"name": "Canvas Tote Bag II",
		"slug": "canvas-tote-bag",
	})
	s.Equal(http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func (s *CatalogE2ESuite) TestSoftDeletedStoreDisappears() {
	resp := s.makeRequest("POST", "/stores", map[string]interface{}{"name": "Doomed Store"})
	s.Equal(http.StatusCreated, resp.StatusCode)

	var store map[string]interface{}
	s.decodeResponse(resp, &store)
	storeID := store["id"].(string)

	resp = s.makeRequest("DELETE", fmt.Sprintf("/stores/%s", storeID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = s.makeRequest("GET", fmt.Sprintf("/stores/%s", storeID), nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

// Helper methods

func (s *CatalogE2ESuite) makeRequest(method, path string, body interface{}) *http.Response {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		s.NoError(err)
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, s.baseURL+path, reqBody)
	s.NoError(err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	s.NoError(err)

	return resp
}

func (s *CatalogE2ESuite) decodeResponse(resp *http.Response, v interface{}) {
	defer resp.Body.Close()
	err := json.NewDecoder(resp.Body).Decode(v)
	s.NoError(err)
}

func TestCatalogE2ESuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E tests in short mode")
	}
	suite.Run(t, new(CatalogE2ESuite))
}
