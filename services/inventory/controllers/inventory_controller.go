package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ayababa270/ecommerce-Baba-Charaf/common/logger"
	"github.com/ayababa270/ecommerce-Baba-Charaf/services/inventory/models"
	"github.com/ayababa270/ecommerce-Baba-Charaf/services/inventory/repository"
)

type InventoryController struct {
	repo repository.GoodRepository
}

func NewInventoryController(repo repository.GoodRepository) *InventoryController {
	return &InventoryController{repo: repo}
}

type addGoodRequest struct {
	Name         string   `json:"name" binding:"required"`
	Category     string   `json:"category" binding:"required"`
	PricePerItem *float64 `json:"price_per_item" binding:"required"`
	Description  string   `json:"description"`
	CountInStock *int     `json:"count_in_stock" binding:"required"`
}

// AddGood creates a catalog entry
func (ic *InventoryController) AddGood(c *gin.Context) {
	var req addGoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	if !models.CategoryValid(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}
	if *req.PricePerItem <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be positive"})
		return
	}
	if *req.CountInStock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stock count cannot be negative"})
		return
	}

	good := &models.Good{
		Name:         req.Name,
		Category:     req.Category,
		PricePerItem: *req.PricePerItem,
		Description:  req.Description,
		CountInStock: *req.CountInStock,
	}

	if err := ic.repo.Create(c.Request.Context(), good); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create good"})
		return
	}

	c.JSON(http.StatusCreated, good)
}

type updateGoodRequest struct {
	Name         *string  `json:"name"`
	Category     *string  `json:"category"`
	PricePerItem *float64 `json:"price_per_item"`
	Description  *string  `json:"description"`
	CountInStock *int     `json:"count_in_stock"`
}

func (req *updateGoodRequest) empty() bool {
	return req.Name == nil && req.Category == nil && req.PricePerItem == nil &&
		req.Description == nil && req.CountInStock == nil
}

// UpdateGood partially updates a catalog entry
func (ic *InventoryController) UpdateGood(c *gin.Context) {
	name := c.Param("name")

	var req updateGoodRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.empty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No updatable fields provided"})
		return
	}
	if req.Category != nil && !models.CategoryValid(*req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}
	if req.PricePerItem != nil && *req.PricePerItem <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be positive"})
		return
	}
	if req.CountInStock != nil && *req.CountInStock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stock count cannot be negative"})
		return
	}

	good, err := ic.repo.FindByName(c.Request.Context(), name)
	if errors.Is(err, repository.ErrGoodNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if req.Name != nil {
		good.Name = *req.Name
	}
	if req.Category != nil {
		good.Category = *req.Category
	}
	if req.PricePerItem != nil {
		good.PricePerItem = *req.PricePerItem
	}
	if req.Description != nil {
		good.Description = *req.Description
	}
	if req.CountInStock != nil {
		good.CountInStock = *req.CountInStock
	}

	if err := ic.repo.Update(c.Request.Context(), good); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update good"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully", "product": good})
}

// DeleteGood removes a catalog entry
func (ic *InventoryController) DeleteGood(c *gin.Context) {
	name := c.Param("name")

	err := ic.repo.DeleteByName(c.Request.Context(), name)
	if errors.Is(err, repository.ErrGoodNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete good"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// GetGoods returns the full catalog
func (ic *InventoryController) GetGoods(c *gin.Context) {
	goods, err := ic.repo.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, goods)
}

// GetGoodByName returns one catalog entry
func (ic *InventoryController) GetGoodByName(c *gin.Context) {
	name := c.Param("name")

	good, err := ic.repo.FindByName(c.Request.Context(), name)
	if errors.Is(err, repository.ErrGoodNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Good not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, good)
}

// DecreaseStock atomically decrements a good's stock by one. The repository
// re-validates the stock count inside the UPDATE; callers holding a stale
// read get a clean rejection instead of a negative counter.
func (ic *InventoryController) DecreaseStock(c *gin.Context) {
	name := c.Param("name")

	count, err := ic.repo.DecrementStock(c.Request.Context(), name)
	if errors.Is(err, repository.ErrGoodNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Good not found"})
		return
	}
	if errors.Is(err, repository.ErrNoStockAvailable) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No stock available"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stock"})
		return
	}

	logger.Info(c, "Stock decremented",
		zap.String("good", name),
		zap.Int("count_in_stock", count),
	)
	c.JSON(http.StatusOK, gin.H{"name": name, "count_in_stock": count})
}
