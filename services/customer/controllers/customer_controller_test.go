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
	"golang.org/x/crypto/bcrypt"

	"github.com/ayababa270/ecommerce-Baba-Charaf/common/auth"
	"github.com/ayababa270/ecommerce-Baba-Charaf/common/logger"
	"github.com/ayababa270/ecommerce-Baba-Charaf/common/middleware"
	"github.com/ayababa270/ecommerce-Baba-Charaf/services/customer/controllers"
	"github.com/ayababa270/ecommerce-Baba-Charaf/services/customer/models"
	"github.com/ayababa270/ecommerce-Baba-Charaf/services/customer/repository"
)

// ---- concrete mock implementing repository.CustomerRepository ----

type concreteMockRepo struct {
	customer   *models.Customer
	customers  []models.Customer
	createErr  error
	findErr    error
	updateErr  error
	deleteErr  error
	debitRes   float64
	debitErr   error
	creditRes  float64
	creditErr  error
	lastDebit  float64
	lastCredit float64
}

func (m *concreteMockRepo) Create(ctx context.Context, customer *models.Customer) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.customer = customer
	return nil
}

func (m *concreteMockRepo) FindByUsername(ctx context.Context, username string) (*models.Customer, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.customer, nil
}

func (m *concreteMockRepo) FindAll(ctx context.Context) ([]models.Customer, error) {
	return m.customers, nil
}

func (m *concreteMockRepo) Update(ctx context.Context, customer *models.Customer) error {
	return m.updateErr
}

func (m *concreteMockRepo) DeleteByUsername(ctx context.Context, username string) error {
	return m.deleteErr
}

func (m *concreteMockRepo) Debit(ctx context.Context, username string, amount float64) (float64, error) {
	m.lastDebit = amount
	return m.debitRes, m.debitErr
}

func (m *concreteMockRepo) Credit(ctx context.Context, username string, amount float64) (float64, error) {
	m.lastCredit = amount
	return m.creditRes, m.creditErr
}

// ---- helpers ----

// asUser injects an authenticated principal the way RequireAuth would.
func asUser(username string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.PrincipalKey, username)
		c.Next()
	}
}

func setupRouter(repo repository.CustomerRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()
	r := gin.New()
	c := controllers.NewCustomerController(repo)

	r.POST("/create_customer", c.CreateCustomer)
	r.POST("/login", c.Login)
	r.GET("/get_customer_by_username/:username", c.GetCustomerByUsername)
	r.GET("/get_all_customers", c.GetAllCustomers)
	r.PUT("/update_information", asUser("walter"), c.UpdateCustomerInformation)
	r.DELETE("/delete_customer", asUser("walter"), c.DeleteCustomer)
	r.POST("/deduct_wallet", asUser("walter"), c.DeductWallet)
	r.POST("/credit_wallet", asUser("walter"), c.CreditWallet)
	return r
}

func postJSON(r *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	b, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ---- tests ----

func TestCreateCustomer_Success(t *testing.T) {
	repo := &concreteMockRepo{findErr: repository.ErrCustomerNotFound}
	r := setupRouter(repo)

	age := 50
	w := postJSON(r, "/create_customer", map[string]interface{}{
		"first_name": "Walter", "last_name": "White",
		"username": "walter", "password": "secret",
		"age": age, "address": "308 Negra Arroyo Lane",
		"gender": "male", "marital_status": "married",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotNil(t, repo.customer)
	assert.Equal(t, "walter", repo.customer.Username)
	assert.Equal(t, "customer", repo.customer.Role)
	// Stored password is a hash, never the plaintext.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.customer.Password), []byte("secret")))
}

func TestCreateCustomer_MissingFields(t *testing.T) {
	repo := &concreteMockRepo{findErr: repository.ErrCustomerNotFound}
	r := setupRouter(repo)

	w := postJSON(r, "/create_customer", map[string]interface{}{
		"username": "walter", "password": "secret",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, repo.customer)
}

func TestCreateCustomer_UsernameTaken(t *testing.T) {
	repo := &concreteMockRepo{customer: &models.Customer{Username: "walter"}}
	r := setupRouter(repo)

	age := 50
	w := postJSON(r, "/create_customer", map[string]interface{}{
		"first_name": "Walter", "last_name": "White",
		"username": "walter", "password": "secret",
		"age": age, "address": "308 Negra Arroyo Lane",
		"gender": "male", "marital_status": "married",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "Username already taken", resp["error"])
}

func TestLogin_Success(t *testing.T) {
	auth.SetSecret("test-secret")
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	repo := &concreteMockRepo{customer: &models.Customer{
		Username: "walter", Password: string(hash), Role: "customer",
	}}
	r := setupRouter(repo)

	w := postJSON(r, "/login", map[string]string{"username": "walter", "password": "secret"})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NotEmpty(t, resp["token"])

	claims, err := auth.ParseAndValidateToken(resp["token"])
	assert.NoError(t, err)
	subject, err := auth.Subject(claims)
	assert.NoError(t, err)
	assert.Equal(t, "walter", subject)
	assert.Contains(t, w.Header().Get("Set-Cookie"), auth.TokenCookieName)
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	repo := &concreteMockRepo{customer: &models.Customer{
		Username: "walter", Password: string(hash),
	}}
	r := setupRouter(repo)

	w := postJSON(r, "/login", map[string]string{"username": "walter", "password": "wrong"})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLogin_UnknownUser(t *testing.T) {
	repo := &concreteMockRepo{findErr: repository.ErrCustomerNotFound}
	r := setupRouter(repo)

	w := postJSON(r, "/login", map[string]string{"username": "ghost", "password": "secret"})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetCustomerByUsername_NotFound(t *testing.T) {
	repo := &concreteMockRepo{findErr: repository.ErrCustomerNotFound}
	r := setupRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/get_customer_by_username/ghost", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCustomerByUsername_PasswordNotSerialized(t *testing.T) {
	repo := &concreteMockRepo{customer: &models.Customer{
		Username: "walter", Password: "hashed", Wallet: 42.5,
	}}
	r := setupRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/get_customer_by_username/walter", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "hashed")
	assert.NotContains(t, w.Body.String(), "password")
}

func TestUpdateCustomerInformation_WalletNotSettable(t *testing.T) {
	repo := &concreteMockRepo{customer: &models.Customer{
		Username: "walter", Wallet: 42.5, Address: "old address",
	}}
	r := setupRouter(repo)

	b, _ := json.Marshal(map[string]interface{}{"address": "new address", "wallet": 9999.0})
	req := httptest.NewRequest(http.MethodPut, "/update_information", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "new address", repo.customer.Address)
	assert.Equal(t, 42.5, repo.customer.Wallet)
}

func TestDeductWallet_Success(t *testing.T) {
	repo := &concreteMockRepo{debitRes: 90.0}
	r := setupRouter(repo)

	w := postJSON(r, "/deduct_wallet", map[string]float64{"amount": 10.0})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10.0, repo.lastDebit)
	var resp map[string]float64
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, 90.0, resp["new_balance"])
}

func TestDeductWallet_InsufficientFunds(t *testing.T) {
	repo := &concreteMockRepo{debitErr: repository.ErrInsufficientFunds}
	r := setupRouter(repo)

	w := postJSON(r, "/deduct_wallet", map[string]float64{"amount": 500.0})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "Insufficient funds", resp["error"])
}

func TestDeductWallet_NonPositiveAmount(t *testing.T) {
	repo := &concreteMockRepo{}
	r := setupRouter(repo)

	for _, amount := range []float64{0, -5} {
		w := postJSON(r, "/deduct_wallet", map[string]float64{"amount": amount})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
	assert.Equal(t, 0.0, repo.lastDebit)
}

func TestCreditWallet_Success(t *testing.T) {
	repo := &concreteMockRepo{creditRes: 125.0}
	r := setupRouter(repo)

	w := postJSON(r, "/credit_wallet", map[string]float64{"amount": 25.0})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 25.0, repo.lastCredit)
	var resp map[string]float64
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, 125.0, resp["new_balance"])
}

func TestCreditWallet_CustomerNotFound(t *testing.T) {
	repo := &concreteMockRepo{creditErr: repository.ErrCustomerNotFound}
	r := setupRouter(repo)

	w := postJSON(r, "/credit_wallet", map[string]float64{"amount": 25.0})

	assert.Equal(t, http.StatusNotFound, w.Code)
}
