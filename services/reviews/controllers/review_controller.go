package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ayababa270/ecommerce-Baba-Charaf/common/auth"
	"github.com/ayababa270/ecommerce-Baba-Charaf/common/middleware"
	"github.com/ayababa270/ecommerce-Baba-Charaf/services/reviews/clients"
	"github.com/ayababa270/ecommerce-Baba-Charaf/services/reviews/models"
	"github.com/ayababa270/ecommerce-Baba-Charaf/services/reviews/repository"
)

type ReviewController struct {
	repo      repository.ReviewRepository
	inventory *clients.InventoryClient
	policy    auth.Policy
}

func NewReviewController(repo repository.ReviewRepository, inventory *clients.InventoryClient, policy auth.Policy) *ReviewController {
	return &ReviewController{repo: repo, inventory: inventory, policy: policy}
}

type submitReviewRequest struct {
	GoodName string `json:"good_name" binding:"required"`
	Rating   *int   `json:"rating" binding:"required"`
	Comment  string `json:"comment"`
}

// SubmitReview creates a pending review after verifying the good exists.
func (rc *ReviewController) SubmitReview(c *gin.Context) {
	principal, err := middleware.Principal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req submitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	if *req.Rating < 1 || *req.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5"})
		return
	}

	if err := rc.inventory.GoodExists(c.Request.Context(), req.GoodName); err != nil {
		if errors.Is(err, clients.ErrGoodNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Good not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify good"})
		return
	}

	review := &models.Review{
		CustomerUsername: principal,
		GoodName:         req.GoodName,
		Rating:           *req.Rating,
		Comment:          req.Comment,
		Status:           models.ReviewStatusPending,
	}
	if err := rc.repo.Create(c.Request.Context(), review); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}

	c.JSON(http.StatusCreated, review)
}

type updateReviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

// UpdateReview lets the owner edit a review; the edit returns it to pending.
func (rc *ReviewController) UpdateReview(c *gin.Context) {
	principal, err := middleware.Principal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	review, ok := rc.findReview(c)
	if !ok {
		return
	}
	if review.CustomerUsername != principal {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var req updateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil || (req.Rating == nil && req.Comment == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No updatable fields provided"})
		return
	}
	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5"})
			return
		}
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = *req.Comment
	}
	review.Status = models.ReviewStatusPending

	if err := rc.repo.Update(c.Request.Context(), review); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
		return
	}

	c.JSON(http.StatusOK, review)
}

// DeleteReview removes a review; allowed for the owner or a moderator.
func (rc *ReviewController) DeleteReview(c *gin.Context) {
	principal, err := middleware.Principal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	review, ok := rc.findReview(c)
	if !ok {
		return
	}

	isModerator := rc.policy.Allow(principal, middleware.Claims(c), "reviews:moderate")
	if review.CustomerUsername != principal && !isModerator {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	if err := rc.repo.Delete(c.Request.Context(), review.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}

// GetProductReviews lists reviews for one good
func (rc *ReviewController) GetProductReviews(c *gin.Context) {
	reviews, err := rc.repo.FindByGood(c.Request.Context(), c.Param("name"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// GetCustomerReviews lists reviews by one customer
func (rc *ReviewController) GetCustomerReviews(c *gin.Context) {
	reviews, err := rc.repo.FindByCustomer(c.Request.Context(), c.Param("username"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}
	c.JSON(http.StatusOK, reviews)
}

type moderateReviewRequest struct {
	Action string `json:"action" binding:"required"`
}

// ModerateReview approves or flags a review
func (rc *ReviewController) ModerateReview(c *gin.Context) {
	review, ok := rc.findReview(c)
	if !ok {
		return
	}

	var req moderateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	switch req.Action {
	case "approve":
		review.Status = models.ReviewStatusApproved
	case "flag":
		review.Status = models.ReviewStatusFlagged
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Action must be approve or flag"})
		return
	}

	if err := rc.repo.Update(c.Request.Context(), review); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
		return
	}

	c.JSON(http.StatusOK, review)
}

// GetReviewDetails returns one review
func (rc *ReviewController) GetReviewDetails(c *gin.Context) {
	review, ok := rc.findReview(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, review)
}

func (rc *ReviewController) findReview(c *gin.Context) (*models.Review, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID format"})
		return nil, false
	}

	review, err := rc.repo.FindByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrReviewNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return nil, false
	}
	return review, true
}
