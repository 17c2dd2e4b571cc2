package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ayababa270/ecommerce-Baba-Charaf/common/auth"
	"github.com/ayababa270/ecommerce-Baba-Charaf/common/middleware"
	"github.com/ayababa270/ecommerce-Baba-Charaf/services/reviews/controllers"
)

func RegisterReviewRoutes(r *gin.Engine, rc *controllers.ReviewController, policy auth.Policy) {
	r.GET("/product_reviews/:name", rc.GetProductReviews)
	r.GET("/customer_reviews/:username", rc.GetCustomerReviews)
	r.GET("/review/:id", rc.GetReviewDetails)

	authed := r.Group("/")
	authed.Use(middleware.RequireAuth())
	authed.POST("/submit_review", rc.SubmitReview)
	authed.PUT("/update_review/:id", rc.UpdateReview)
	authed.DELETE("/delete_review/:id", rc.DeleteReview)
	authed.POST("/moderate_review/:id", middleware.RequirePolicy(policy, "reviews:moderate"), rc.ModerateReview)
}
