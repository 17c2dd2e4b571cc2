package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ayababa270/ecommerce-Baba-Charaf/common/auth"
	"github.com/ayababa270/ecommerce-Baba-Charaf/common/middleware"
	"github.com/ayababa270/ecommerce-Baba-Charaf/services/inventory/controllers"
)

// Catalog mutations are restricted by the injected policy; stock decrement
// stays open to authenticated callers since the sales service performs it on
// behalf of customers.
func RegisterInventoryRoutes(r *gin.Engine, ic *controllers.InventoryController, policy auth.Policy) {
	r.GET("/goods", ic.GetGoods)
	r.GET("/goods/:name", ic.GetGoodByName)

	authed := r.Group("/")
	authed.Use(middleware.RequireAuth())
	authed.POST("/decrease_stock/:name", ic.DecreaseStock)

	admin := r.Group("/")
	admin.Use(middleware.RequireAuth())
	admin.POST("/add_good", middleware.RequirePolicy(policy, "catalog:write"), ic.AddGood)
	admin.PUT("/update_good/:name", middleware.RequirePolicy(policy, "catalog:write"), ic.UpdateGood)
	admin.DELETE("/delete_good/:name", middleware.RequirePolicy(policy, "catalog:write"), ic.DeleteGood)
}
