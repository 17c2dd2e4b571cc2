package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/ayababa270/ecommerce-Baba-Charaf/common/auth"
	"github.com/ayababa270/ecommerce-Baba-Charaf/common/middleware"
	"github.com/ayababa270/ecommerce-Baba-Charaf/services/customer/models"
	"github.com/ayababa270/ecommerce-Baba-Charaf/services/customer/repository"
)

const tokenLifetime = 48 * time.Hour

type CustomerController struct {
	repo repository.CustomerRepository
}

func NewCustomerController(repo repository.CustomerRepository) *CustomerController {
	return &CustomerController{repo: repo}
}

type createCustomerRequest struct {
	FirstName     string `json:"first_name" binding:"required"`
	LastName      string `json:"last_name" binding:"required"`
	Username      string `json:"username" binding:"required"`
	Password      string `json:"password" binding:"required"`
	Age           *int   `json:"age" binding:"required"`
	Address       string `json:"address" binding:"required"`
	Gender        string `json:"gender" binding:"required"`
	MaritalStatus string `json:"marital_status" binding:"required"`
}

// CreateCustomer registers a new customer. Wallets start at zero.
func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	if *req.Age <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad age"})
		return
	}

	if _, err := cc.repo.FindByUsername(c.Request.Context(), req.Username); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username already taken"})
		return
	} else if !errors.Is(err, repository.ErrCustomerNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	customer := &models.Customer{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Username:      req.Username,
		Password:      string(hashedPassword),
		Age:           *req.Age,
		Address:       req.Address,
		Gender:        req.Gender,
		MaritalStatus: req.MaritalStatus,
		Role:          "customer",
	}

	if err := cc.repo.Create(c.Request.Context(), customer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
		return
	}

	c.JSON(http.StatusCreated, customer)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies the password and issues the identity credential used by
// every other service.
func (cc *CustomerController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	customer, err := cc.repo.FindByUsername(c.Request.Context(), req.Username)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid username or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(customer.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid username or password"})
		return
	}

	token, err := auth.GenerateToken(customer.Username, customer.Role, tokenLifetime)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.SetCookie(auth.TokenCookieName, token, int(tokenLifetime.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// GetCustomerByUsername returns one customer record
func (cc *CustomerController) GetCustomerByUsername(c *gin.Context) {
	username := c.Param("username")

	customer, err := cc.repo.FindByUsername(c.Request.Context(), username)
	if errors.Is(err, repository.ErrCustomerNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, customer)
}

// GetAllCustomers returns every customer record
func (cc *CustomerController) GetAllCustomers(c *gin.Context) {
	customers, err := cc.repo.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, customers)
}

type updateCustomerRequest struct {
	FirstName     *string `json:"first_name"`
	LastName      *string `json:"last_name"`
	Age           *int    `json:"age"`
	Address       *string `json:"address"`
	Gender        *string `json:"gender"`
	MaritalStatus *string `json:"marital_status"`
}

// UpdateCustomerInformation updates profile fields for the authenticated
// customer. The wallet is deliberately not settable here.
func (cc *CustomerController) UpdateCustomerInformation(c *gin.Context) {
	principal, err := middleware.Principal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req updateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload", "details": err.Error()})
		return
	}

	customer, err := cc.repo.FindByUsername(c.Request.Context(), principal)
	if errors.Is(err, repository.ErrCustomerNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if req.FirstName != nil {
		customer.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		customer.LastName = *req.LastName
	}
	if req.Age != nil {
		customer.Age = *req.Age
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.Gender != nil {
		customer.Gender = *req.Gender
	}
	if req.MaritalStatus != nil {
		customer.MaritalStatus = *req.MaritalStatus
	}

	if err := cc.repo.Update(c.Request.Context(), customer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer removes the authenticated customer's record
func (cc *CustomerController) DeleteCustomer(c *gin.Context) {
	principal, err := middleware.Principal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err = cc.repo.DeleteByUsername(c.Request.Context(), principal)
	if errors.Is(err, repository.ErrCustomerNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete customer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted"})
}
