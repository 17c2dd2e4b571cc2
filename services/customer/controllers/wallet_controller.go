package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ayababa270/ecommerce-Baba-Charaf/common/logger"
	"github.com/ayababa270/ecommerce-Baba-Charaf/common/middleware"
	"github.com/ayababa270/ecommerce-Baba-Charaf/services/customer/repository"
)

type walletRequest struct {
	Amount float64 `json:"amount"`
}

// DeductWallet atomically debits the authenticated customer's wallet.
// The debit is rejected, not clamped, when it would take the wallet below
// zero.
func (cc *CustomerController) DeductWallet(c *gin.Context) {
	principal, err := middleware.Principal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req walletRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be positive"})
		return
	}

	balance, err := cc.repo.Debit(c.Request.Context(), principal, req.Amount)
	if errors.Is(err, repository.ErrCustomerNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}
	if errors.Is(err, repository.ErrInsufficientFunds) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient funds"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deduct from wallet"})
		return
	}

	logger.Info(c, "Wallet debited",
		zap.String("username", principal),
		zap.Float64("amount", req.Amount),
		zap.Float64("new_balance", balance),
	)
	c.JSON(http.StatusOK, gin.H{"new_balance": balance})
}

// CreditWallet atomically credits the authenticated customer's wallet. It is
// the inverse of DeductWallet and is what the sales service calls when it
// needs to compensate a debit.
func (cc *CustomerController) CreditWallet(c *gin.Context) {
	principal, err := middleware.Principal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req walletRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be positive"})
		return
	}

	balance, err := cc.repo.Credit(c.Request.Context(), principal, req.Amount)
	if errors.Is(err, repository.ErrCustomerNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to credit wallet"})
		return
	}

	logger.Info(c, "Wallet credited",
		zap.String("username", principal),
		zap.Float64("amount", req.Amount),
		zap.Float64("new_balance", balance),
	)
	c.JSON(http.StatusOK, gin.H{"new_balance": balance})
}
