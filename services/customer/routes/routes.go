package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ayababa270/ecommerce-Baba-Charaf/common/middleware"
	"github.com/ayababa270/ecommerce-Baba-Charaf/services/customer/controllers"
)

func RegisterCustomerRoutes(r *gin.Engine, cc *controllers.CustomerController) {
	r.POST("/create_customer", middleware.RateLimitMiddleware(), cc.CreateCustomer)
	r.POST("/login", middleware.RateLimitMiddleware(), cc.Login)
	r.GET("/get_customer_by_username/:username", cc.GetCustomerByUsername)
	r.GET("/get_all_customers", cc.GetAllCustomers)

	authed := r.Group("/")
	authed.Use(middleware.RequireAuth())
	authed.PUT("/update_customer_information", cc.UpdateCustomerInformation)
	authed.DELETE("/delete_customer", cc.DeleteCustomer)
	authed.POST("/deduct_wallet", cc.DeductWallet)
	authed.POST("/credit_wallet", cc.CreditWallet)
}
