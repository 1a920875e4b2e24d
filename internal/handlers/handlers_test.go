package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"inventory-management/internal/config"
	"inventory-management/internal/database"
	"inventory-management/internal/events"
	"inventory-management/internal/repository"
	"inventory-management/internal/service"
	"inventory-management/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	router   *gin.Engine
	eventBus *events.InMemoryEventPublisher
}

func setupTestRouter(t *testing.T) *testServer {
	t.Helper()
	logger := zap.NewNop()

	db, err := database.Open(&config.Config{
		DBDriver:          config.DriverSQLite,
		SQLitePath:        filepath.Join(t.TempDir(), "handlers_test.db"),
		DBMaxOpenConns:    4,
		DBMaxIdleConns:    2,
		DBConnMaxLifetime: time.Hour,
		DBAutoMigrate:     true,
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	supplierStore := repository.NewSupplierStore(db, logger, nil)
	productStore := repository.NewProductStore(db, logger, nil)
	eventBus := events.NewEventPublisher(logger)

	supplierService := service.NewSupplierService(supplierStore, eventBus, logger)
	productService := service.NewProductService(productStore, supplierStore, eventBus, logger)
	reportService := service.NewReportService(productStore, supplierStore, logger)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RecoveryHandler(logger), middleware.RequestIDMiddleware(logger), middleware.ErrorHandler(logger))

	v1 := router.Group("/api/v1")
	v1.GET("/health", NewHealthHandler("inventory-api", db).Health)
	NewSupplierHandler(logger, supplierService, productService).Register(v1)
	NewProductHandler(logger, productService).Register(v1)
	NewReportHandler(logger, reportService).Register(v1)

	return &testServer{router: router, eventBus: eventBus}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(context.Background(), method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (s *testServer) createSupplier(t *testing.T, body map[string]interface{}) SupplierResponse {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/suppliers", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp SupplierResponse
	decode(t, w, &resp)
	return resp
}

func (s *testServer) createProduct(t *testing.T, body map[string]interface{}) ProductResponse {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/products", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp ProductResponse
	decode(t, w, &resp)
	return resp
}

func productBody(supplierID int64, name, code, category string, stock, reorder int) map[string]interface{} {
	return map[string]interface{}{
		"name":           name,
		"code":           code,
		"category":       category,
		"unit_price":     "10.50",
		"stock_quantity": stock,
		"reorder_level":  reorder,
		"supplier_id":    supplierID,
	}
}

func TestHealth(t *testing.T) {
	s := setupTestRouter(t)

	w := s.do(t, http.MethodGet, "/api/v1/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp HealthResponse
	decode(t, w, &resp)
	assert.Equal(t, "up", resp.Database)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestCreateSupplier_Success(t *testing.T) {
	s := setupTestRouter(t)

	resp := s.createSupplier(t, map[string]interface{}{
		"company_name":   "Acme Corp",
		"contact_person": "Jane Roe",
		"email":          "sales@acme.test",
		"rating":         4.5,
	})

	assert.Positive(t, resp.ID)
	assert.Equal(t, "Acme Corp (Jane Roe)", resp.DisplayName)
	require.NotNil(t, resp.Rating)
	assert.Equal(t, "4.5", resp.Rating.String())
	assert.Nil(t, resp.Phone)
	require.Len(t, s.eventBus.Events(), 1)
	assert.IsType(t, events.SupplierCreatedEvent{}, s.eventBus.Events()[0])
}

func TestCreateSupplier_ValidationError(t *testing.T) {
	s := setupTestRouter(t)

	w := s.do(t, http.MethodPost, "/api/v1/suppliers", map[string]interface{}{"company_name": "Acme", "rating": 7})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp ErrorResponse
	decode(t, w, &resp)
	assert.Equal(t, "ValidationError", resp.Error)
	assert.Equal(t, "Rating must be between 1.0 and 5.0", resp.Message)
}

func TestCreateSupplier_DuplicateEmailIsPersistenceError(t *testing.T) {
	s := setupTestRouter(t)
	s.createSupplier(t, map[string]interface{}{"company_name": "A", "email": "dup@x.test"})

	w := s.do(t, http.MethodPost, "/api/v1/suppliers", map[string]interface{}{"company_name": "B", "email": "dup@x.test"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp ErrorResponse
	decode(t, w, &resp)
	assert.Equal(t, "PersistenceError", resp.Error)
}

func TestGetSupplier_NotFoundAndInvalidID(t *testing.T) {
	s := setupTestRouter(t)

	w := s.do(t, http.MethodGet, "/api/v1/suppliers/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/suppliers/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp ErrorResponse
	decode(t, w, &resp)
	assert.Equal(t, "InvalidRequest", resp.Error)
}

func TestSupplierSearchAndTop(t *testing.T) {
	s := setupTestRouter(t)
	s.createSupplier(t, map[string]interface{}{"company_name": "Alpha Tools", "rating": 3})
	s.createSupplier(t, map[string]interface{}{"company_name": "Beta Foods", "rating": 5})
	s.createSupplier(t, map[string]interface{}{"company_name": "Gamma Tools"})

	var byName []SupplierResponse
	decode(t, s.do(t, http.MethodGet, "/api/v1/suppliers?name=tools", nil), &byName)
	assert.Len(t, byName, 2)

	var byRating []SupplierResponse
	decode(t, s.do(t, http.MethodGet, "/api/v1/suppliers?min_rating=4&max_rating=5", nil), &byRating)
	require.Len(t, byRating, 1)
	assert.Equal(t, "Beta Foods", byRating[0].CompanyName)

	w := s.do(t, http.MethodGet, "/api/v1/suppliers?min_rating=5&max_rating=4", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var top []SupplierResponse
	decode(t, s.do(t, http.MethodGet, "/api/v1/suppliers/top?limit=2", nil), &top)
	require.Len(t, top, 2)
	assert.Equal(t, "Beta Foods", top[0].CompanyName)
	assert.Equal(t, "Alpha Tools", top[1].CompanyName)

	w = s.do(t, http.MethodGet, "/api/v1/suppliers/top?limit=0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteSupplier_WithProducts(t *testing.T) {
	s := setupTestRouter(t)
	sup := s.createSupplier(t, map[string]interface{}{"company_name": "Acme"})
	s.createProduct(t, productBody(sup.ID, "Hammer", "H-1", "Tools", 5, 2))

	w := s.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/suppliers/%d", sup.ID), nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp DeleteSupplierResponse
	decode(t, w, &resp)
	assert.True(t, resp.Deleted)
	assert.True(t, resp.HadProducts)

	w = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/suppliers/%d", sup.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/suppliers/%d", sup.ID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateProduct_Success(t *testing.T) {
	s := setupTestRouter(t)
	sup := s.createSupplier(t, map[string]interface{}{"company_name": "Acme", "rating": 4})

	created := s.createProduct(t, productBody(sup.ID, "Laptop", "LP-1", "Electronics", 4, 10))

	assert.Equal(t, "LOW_STOCK", created.StockStatus)
	assert.Equal(t, "42", created.StockValue.String())

	var got ProductResponse
	w := s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/products/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &got)
	require.NotNil(t, got.SupplierName)
	assert.Equal(t, "Acme", *got.SupplierName)

	w = s.do(t, http.MethodGet, "/api/v1/products/code/LP-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateProduct_ValidationMessages(t *testing.T) {
	s := setupTestRouter(t)
	sup := s.createSupplier(t, map[string]interface{}{"company_name": "Acme"})

	tests := []struct {
		name    string
		mutate  func(body map[string]interface{})
		message string
	}{
		{"missing name", func(b map[string]interface{}) { delete(b, "name") }, "Product name is required"},
		{"missing price", func(b map[string]interface{}) { delete(b, "unit_price") }, "Unit price is required"},
		{"negative stock", func(b map[string]interface{}) { b["stock_quantity"] = -1 }, "Stock quantity cannot be negative"},
		{"missing supplier", func(b map[string]interface{}) { delete(b, "supplier_id") }, "Supplier ID is required"},
		{"unknown supplier", func(b map[string]interface{}) { b["supplier_id"] = 999 }, "Supplier not found with ID: 999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := productBody(sup.ID, "Laptop", "", "Electronics", 1, 1)
			tt.mutate(body)

			w := s.do(t, http.MethodPost, "/api/v1/products", body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp ErrorResponse
			decode(t, w, &resp)
			assert.Equal(t, tt.message, resp.Message)
		})
	}
}

func TestCreateProduct_DuplicateCode(t *testing.T) {
	s := setupTestRouter(t)
	sup := s.createSupplier(t, map[string]interface{}{"company_name": "Acme"})
	s.createProduct(t, productBody(sup.ID, "One", "DUP", "Tools", 1, 1))

	w := s.do(t, http.MethodPost, "/api/v1/products", productBody(sup.ID, "Two", "DUP", "Tools", 1, 1))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp ErrorResponse
	decode(t, w, &resp)
	assert.Equal(t, "Product code already exists: DUP", resp.Message)
}

func TestUpdateStock(t *testing.T) {
	s := setupTestRouter(t)
	sup := s.createSupplier(t, map[string]interface{}{"company_name": "Acme"})
	p := s.createProduct(t, productBody(sup.ID, "Hammer", "", "Tools", 5, 2))

	w := s.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/products/%d/stock", p.ID), map[string]interface{}{"quantity": 0})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out []ProductResponse
	decode(t, s.do(t, http.MethodGet, "/api/v1/products/out-of-stock", nil), &out)
	require.Len(t, out, 1)
	assert.Equal(t, p.ID, out[0].ID)

	w = s.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/products/%d/stock", p.ID), map[string]interface{}{"quantity": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPatch, "/api/v1/products/999/stock", map[string]interface{}{"quantity": 3})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/products/%d/stock", p.ID), map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	s := setupTestRouter(t)
	sup := s.createSupplier(t, map[string]interface{}{"company_name": "Acme"})
	p := s.createProduct(t, productBody(sup.ID, "Hammer", "H-1", "Tools", 5, 2))

	body := productBody(sup.ID, "Sledgehammer", "H-1", "Tools", 7, 2)
	w := s.do(t, http.MethodPut, fmt.Sprintf("/api/v1/products/%d", p.ID), body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated ProductResponse
	decode(t, w, &updated)
	assert.Equal(t, "Sledgehammer", updated.Name)
	assert.Equal(t, 7, updated.StockQuantity)

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/products/%d", p.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/products/%d", p.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/products/%d", p.ID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductFiltersAndCategories(t *testing.T) {
	s := setupTestRouter(t)
	a := s.createSupplier(t, map[string]interface{}{"company_name": "A"})
	b := s.createSupplier(t, map[string]interface{}{"company_name": "B"})
	s.createProduct(t, productBody(a.ID, "Claw Hammer", "", "Tools", 5, 2))
	s.createProduct(t, productBody(a.ID, "Apple", "", "Food", 5, 2))
	s.createProduct(t, productBody(b.ID, "Mallet", "", "Tools", 5, 2))

	var list []ProductResponse
	decode(t, s.do(t, http.MethodGet, "/api/v1/products?category=Tools", nil), &list)
	assert.Len(t, list, 2)

	decode(t, s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/products?supplier_id=%d", a.ID), nil), &list)
	assert.Len(t, list, 2)

	decode(t, s.do(t, http.MethodGet, "/api/v1/products?name=HAMMER", nil), &list)
	assert.Len(t, list, 1)

	decode(t, s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/suppliers/%d/products", b.ID), nil), &list)
	assert.Len(t, list, 1)

	var categories []string
	decode(t, s.do(t, http.MethodGet, "/api/v1/products/categories", nil), &categories)
	assert.Equal(t, []string{"Food", "Tools"}, categories)
}

func TestReports(t *testing.T) {
	s := setupTestRouter(t)
	sup := s.createSupplier(t, map[string]interface{}{"company_name": "Acme", "rating": 4})
	s.createProduct(t, productBody(sup.ID, "Hammer", "", "Tools", 2, 10))
	s.createProduct(t, productBody(sup.ID, "Apple", "", "Food", 20, 5))

	var summary StockSummaryResponse
	decode(t, s.do(t, http.MethodGet, "/api/v1/reports/stock-summary", nil), &summary)
	assert.Equal(t, 2, summary.TotalProducts)
	assert.Equal(t, 22, summary.TotalUnits)
	assert.Equal(t, "231", summary.TotalValue.String())
	assert.Equal(t, 1, summary.LowStockCount)

	var reorder []ReorderLineResponse
	decode(t, s.do(t, http.MethodGet, "/api/v1/reports/reorder", nil), &reorder)
	require.Len(t, reorder, 1)
	assert.Equal(t, 8, reorder[0].SuggestedOrder)

	var categories []CategorySummaryResponse
	decode(t, s.do(t, http.MethodGet, "/api/v1/reports/categories", nil), &categories)
	require.Len(t, categories, 2)
	assert.Equal(t, "Food", categories[0].Category)

	var perf SupplierPerformanceResponse
	decode(t, s.do(t, http.MethodGet, "/api/v1/reports/suppliers", nil), &perf)
	assert.Equal(t, 1, perf.RatedCount)

	var valuation ValuationResponse
	decode(t, s.do(t, http.MethodGet, "/api/v1/reports/valuation", nil), &valuation)
	assert.Equal(t, "231", valuation.TotalValue.String())
}
