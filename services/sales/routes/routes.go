package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ayababa270/ecommerce-Baba-Charaf/common/middleware"
	"github.com/ayababa270/ecommerce-Baba-Charaf/services/sales/controllers"
)

func RegisterSaleRoutes(r *gin.Engine, sc *controllers.SaleController) {
	r.GET("/goods", sc.GetGoods)
	r.GET("/goods/:name", sc.GetGoodDetails)

	authed := r.Group("/")
	authed.Use(middleware.RequireAuth())
	authed.POST("/sale", sc.PostSale)
	authed.GET("/purchase_history", sc.GetPurchaseHistory)
}
