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
	"go.uber.org/zap"

	"github.com/ayababa270/ecommerce-Baba-Charaf/common/logger"
	"github.com/ayababa270/ecommerce-Baba-Charaf/services/inventory/controllers"
	"github.com/ayababa270/ecommerce-Baba-Charaf/services/inventory/models"
	"github.com/ayababa270/ecommerce-Baba-Charaf/services/inventory/repository"
)

// ---- concrete mock implementing repository.GoodRepository ----

type concreteMockRepo struct {
	good         *models.Good
	goods        []models.Good
	createErr    error
	findErr      error
	updateErr    error
	deleteErr    error
	decrementRes int
	decrementErr error
}

func (m *concreteMockRepo) Create(ctx context.Context, good *models.Good) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.good = good
	return nil
}

func (m *concreteMockRepo) FindByName(ctx context.Context, name string) (*models.Good, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.good, nil
}

func (m *concreteMockRepo) FindAll(ctx context.Context) ([]models.Good, error) {
	return m.goods, nil
}

func (m *concreteMockRepo) Update(ctx context.Context, good *models.Good) error {
	return m.updateErr
}

func (m *concreteMockRepo) DeleteByName(ctx context.Context, name string) error {
	return m.deleteErr
}

func (m *concreteMockRepo) DecrementStock(ctx context.Context, name string) (int, error) {
	return m.decrementRes, m.decrementErr
}

// ---- helpers ----

func setupRouter(repo repository.GoodRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()
	r := gin.New()
	c := controllers.NewInventoryController(repo)

	r.POST("/goods", c.AddGood)
	r.PUT("/goods/:name", c.UpdateGood)
	r.DELETE("/goods/:name", c.DeleteGood)
	r.GET("/goods", c.GetGoods)
	r.GET("/goods/:name", c.GetGoodByName)
	r.POST("/decrease_stock/:name", c.DecreaseStock)
	return r
}

func doJSON(r *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ---- tests ----

func TestAddGood_Success(t *testing.T) {
	repo := &concreteMockRepo{}
	r := setupRouter(repo)

	w := doJSON(r, http.MethodPost, "/goods", map[string]interface{}{
		"name": "Apple", "category": "food",
		"price_per_item": 1.0, "description": "crunchy", "count_in_stock": 10,
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotNil(t, repo.good)
	assert.Equal(t, "Apple", repo.good.Name)
	assert.Equal(t, 10, repo.good.CountInStock)
}

func TestAddGood_InvalidCategory(t *testing.T) {
	repo := &concreteMockRepo{}
	r := setupRouter(repo)

	w := doJSON(r, http.MethodPost, "/goods", map[string]interface{}{
		"name": "Widget", "category": "gadgets",
		"price_per_item": 1.0, "count_in_stock": 10,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "Invalid category", resp["error"])
}

func TestAddGood_ZeroStockAllowed(t *testing.T) {
	repo := &concreteMockRepo{}
	r := setupRouter(repo)

	w := doJSON(r, http.MethodPost, "/goods", map[string]interface{}{
		"name": "Laptop", "category": "electronics",
		"price_per_item": 1000.0, "count_in_stock": 0,
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 0, repo.good.CountInStock)
}

func TestAddGood_NegativePrice(t *testing.T) {
	repo := &concreteMockRepo{}
	r := setupRouter(repo)

	w := doJSON(r, http.MethodPost, "/goods", map[string]interface{}{
		"name": "Apple", "category": "food",
		"price_per_item": -1.0, "count_in_stock": 10,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateGood_EmptyPayload(t *testing.T) {
	repo := &concreteMockRepo{good: &models.Good{Name: "Apple"}}
	r := setupRouter(repo)

	w := doJSON(r, http.MethodPut, "/goods/Apple", map[string]interface{}{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateGood_NotFound(t *testing.T) {
	repo := &concreteMockRepo{findErr: repository.ErrGoodNotFound}
	r := setupRouter(repo)

	w := doJSON(r, http.MethodPut, "/goods/Missing", map[string]interface{}{
		"price_per_item": 2.0,
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateGood_PartialUpdate(t *testing.T) {
	repo := &concreteMockRepo{good: &models.Good{
		Name: "Apple", Category: "food", PricePerItem: 1.0, CountInStock: 10,
	}}
	r := setupRouter(repo)

	w := doJSON(r, http.MethodPut, "/goods/Apple", map[string]interface{}{
		"price_per_item": 2.5,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2.5, repo.good.PricePerItem)
	assert.Equal(t, 10, repo.good.CountInStock)
}

func TestDeleteGood_NotFound(t *testing.T) {
	repo := &concreteMockRepo{deleteErr: repository.ErrGoodNotFound}
	r := setupRouter(repo)

	w := doJSON(r, http.MethodDelete, "/goods/Missing", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetGoodByName_Success(t *testing.T) {
	repo := &concreteMockRepo{good: &models.Good{
		Name: "Apple", Category: "food", PricePerItem: 1.0, CountInStock: 10,
	}}
	r := setupRouter(repo)

	w := doJSON(r, http.MethodGet, "/goods/Apple", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var good models.Good
	_ = json.Unmarshal(w.Body.Bytes(), &good)
	assert.Equal(t, "Apple", good.Name)
	assert.Equal(t, 10, good.CountInStock)
}

func TestDecreaseStock_Success(t *testing.T) {
	repo := &concreteMockRepo{decrementRes: 9}
	r := setupRouter(repo)

	w := doJSON(r, http.MethodPost, "/decrease_stock/Apple", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "Apple", resp["name"])
	assert.Equal(t, 9.0, resp["count_in_stock"])
}

func TestDecreaseStock_NoStock(t *testing.T) {
	repo := &concreteMockRepo{decrementErr: repository.ErrNoStockAvailable}
	r := setupRouter(repo)

	w := doJSON(r, http.MethodPost, "/decrease_stock/Apple", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "No stock available", resp["error"])
}

func TestDecreaseStock_NotFound(t *testing.T) {
	repo := &concreteMockRepo{decrementErr: repository.ErrGoodNotFound}
	r := setupRouter(repo)

	w := doJSON(r, http.MethodPost, "/decrease_stock/Missing", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
