package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ayababa270/ecommerce-Baba-Charaf/services/sales/models"
)

// PurchaseRepository defines the interface for purchase data access.
// Purchases are insert-only: there is no update or delete path.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *models.Purchase) error
	FindByCustomer(ctx context.Context, username string) ([]models.Purchase, error)
}

// GormPurchaseRepository implements PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new instance of GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

func (r *GormPurchaseRepository) Create(ctx context.Context, purchase *models.Purchase) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

func (r *GormPurchaseRepository) FindByCustomer(ctx context.Context, username string) ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := r.db.WithContext(ctx).
		Where("customer_username = ?", username).
		Order("purchase_date DESC").
		Find(&purchases).Error
	if err != nil {
		return nil, err
	}
	return purchases, nil
}
