package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ayababa270/ecommerce-Baba-Charaf/services/customer/models"
)

var (
	// ErrCustomerNotFound is returned when no customer matches the username.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrInsufficientFunds is returned when a debit would take the wallet
	// below zero. The check happens inside the UPDATE itself, so a stale
	// balance read can never produce a negative wallet.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// CustomerRepository defines the interface for customer data access
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	FindByUsername(ctx context.Context, username string) (*models.Customer, error)
	FindAll(ctx context.Context) ([]models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	DeleteByUsername(ctx context.Context, username string) error
	Debit(ctx context.Context, username string, amount float64) (float64, error)
	Credit(ctx context.Context, username string, amount float64) (float64, error)
}

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new instance of GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) CustomerRepository {
	return &GormCustomerRepository{db: db}
}

func (r *GormCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *GormCustomerRepository) FindByUsername(ctx context.Context, username string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *GormCustomerRepository) FindAll(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *GormCustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

func (r *GormCustomerRepository) DeleteByUsername(ctx context.Context, username string) error {
	result := r.db.WithContext(ctx).Where("username = ?", username).Delete(&models.Customer{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

// Debit atomically subtracts amount from the wallet. The balance condition
// is part of the UPDATE, which makes concurrent debits safe: the row is
// re-validated under the row lock, not against the caller's earlier read.
func (r *GormCustomerRepository) Debit(ctx context.Context, username string, amount float64) (float64, error) {
	var balance float64
	result := r.db.WithContext(ctx).Raw(
		`UPDATE customers SET wallet = wallet - ? WHERE username = ? AND wallet >= ? RETURNING wallet`,
		amount, username, amount,
	).Scan(&balance)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.FindByUsername(ctx, username); err != nil {
			return 0, err
		}
		return 0, ErrInsufficientFunds
	}
	return balance, nil
}

// Credit atomically adds amount to the wallet. It is the unconditional
// inverse of Debit, used for compensation.
func (r *GormCustomerRepository) Credit(ctx context.Context, username string, amount float64) (float64, error) {
	var balance float64
	result := r.db.WithContext(ctx).Raw(
		`UPDATE customers SET wallet = wallet + ? WHERE username = ? RETURNING wallet`,
		amount, username,
	).Scan(&balance)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, ErrCustomerNotFound
	}
	return balance, nil
}
