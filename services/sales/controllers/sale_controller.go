package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ayababa270/ecommerce-Baba-Charaf/common/breaker"
	"github.com/ayababa270/ecommerce-Baba-Charaf/common/logger"
	"github.com/ayababa270/ecommerce-Baba-Charaf/common/middleware"
	"github.com/ayababa270/ecommerce-Baba-Charaf/services/sales/cache"
	"github.com/ayababa270/ecommerce-Baba-Charaf/services/sales/clients"
	"github.com/ayababa270/ecommerce-Baba-Charaf/services/sales/repository"
	"github.com/ayababa270/ecommerce-Baba-Charaf/services/sales/services"
)

type SaleController struct {
	saleService *services.SaleService
	inventory   *clients.InventoryClient
	purchases   repository.PurchaseRepository
	goodsCache  *cache.GoodsCache
}

func NewSaleController(
	saleService *services.SaleService,
	inventory *clients.InventoryClient,
	purchases repository.PurchaseRepository,
	goodsCache *cache.GoodsCache,
) *SaleController {
	return &SaleController{
		saleService: saleService,
		inventory:   inventory,
		purchases:   purchases,
		goodsCache:  goodsCache,
	}
}

type saleRequest struct {
	Name string `json:"name"`
}

// PostSale runs the purchase flow for the authenticated buyer.
func (sc *SaleController) PostSale(c *gin.Context) {
	buyer, err := middleware.Principal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req saleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	_, saleErr := sc.saleService.AttemptPurchase(
		c.Request.Context(), buyer, req.Name, middleware.Credential(c))
	if saleErr != nil {
		logger.Warn(c, "Sale failed",
			zap.String("buyer", buyer),
			zap.String("good", req.Name),
			zap.String("kind", saleErr.Kind.String()),
		)
		c.JSON(saleErr.StatusCode(), gin.H{
			"error": saleErr.Message,
			"code":  saleErr.Kind.String(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Purchase successful"})
}

// GetPurchaseHistory returns the caller's purchases, newest first.
func (sc *SaleController) GetPurchaseHistory(c *gin.Context) {
	buyer, err := middleware.Principal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	purchases, err := sc.purchases.FindByCustomer(c.Request.Context(), buyer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchase history"})
		return
	}

	c.JSON(http.StatusOK, purchases)
}

// GetGoods returns the in-stock goods as {name, price_per_item} pairs,
// served from the cache when warm.
func (sc *SaleController) GetGoods(c *gin.Context) {
	ctx := c.Request.Context()

	if goods, hit := sc.goodsCache.GetGoodsList(ctx); hit {
		c.JSON(http.StatusOK, goods)
		return
	}

	all, err := sc.inventory.ListGoods(ctx, middleware.Credential(c))
	if err != nil {
		if errors.Is(err, breaker.ErrOpen) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "The inventory service is temporarily unavailable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch goods"})
		return
	}

	goods := make([]cache.GoodSummary, 0, len(all))
	for _, good := range all {
		if good.CountInStock < 1 {
			continue
		}
		goods = append(goods, cache.GoodSummary{
			Name:         good.Name,
			PricePerItem: good.PricePerItem,
		})
	}

	sc.goodsCache.SetGoodsListAsync(goods)
	c.JSON(http.StatusOK, goods)
}

// GetGoodDetails proxies a single good lookup to the inventory service.
func (sc *SaleController) GetGoodDetails(c *gin.Context) {
	name := c.Param("name")

	good, err := sc.inventory.GetGood(c.Request.Context(), name, middleware.Credential(c))
	if err != nil {
		if errors.Is(err, breaker.ErrOpen) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "The inventory service is temporarily unavailable"})
			return
		}
		if errors.Is(err, clients.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Good not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch good"})
		return
	}

	c.JSON(http.StatusOK, good)
}
