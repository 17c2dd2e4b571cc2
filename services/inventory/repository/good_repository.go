package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ayababa270/ecommerce-Baba-Charaf/services/inventory/models"
)

var (
	// ErrGoodNotFound is returned when no good matches the name.
	ErrGoodNotFound = errors.New("good not found")
	// ErrNoStockAvailable is returned when a decrement would take the stock
	// counter below zero.
	ErrNoStockAvailable = errors.New("no stock available")
)

// GoodRepository defines the interface for catalog data access
type GoodRepository interface {
	Create(ctx context.Context, good *models.Good) error
	FindByName(ctx context.Context, name string) (*models.Good, error)
	FindAll(ctx context.Context) ([]models.Good, error)
	Update(ctx context.Context, good *models.Good) error
	DeleteByName(ctx context.Context, name string) error
	DecrementStock(ctx context.Context, name string) (int, error)
}

// GormGoodRepository implements GoodRepository using GORM
type GormGoodRepository struct {
	db *gorm.DB
}

// NewGormGoodRepository creates a new instance of GormGoodRepository
func NewGormGoodRepository(db *gorm.DB) GoodRepository {
	return &GormGoodRepository{db: db}
}

func (r *GormGoodRepository) Create(ctx context.Context, good *models.Good) error {
	return r.db.WithContext(ctx).Create(good).Error
}

func (r *GormGoodRepository) FindByName(ctx context.Context, name string) (*models.Good, error) {
	var good models.Good
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&good).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGoodNotFound
	}
	if err != nil {
		return nil, err
	}
	return &good, nil
}

func (r *GormGoodRepository) FindAll(ctx context.Context) ([]models.Good, error) {
	var goods []models.Good
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&goods).Error; err != nil {
		return nil, err
	}
	return goods, nil
}

func (r *GormGoodRepository) Update(ctx context.Context, good *models.Good) error {
	return r.db.WithContext(ctx).Save(good).Error
}

func (r *GormGoodRepository) DeleteByName(ctx context.Context, name string) error {
	result := r.db.WithContext(ctx).Where("name = ?", name).Delete(&models.Good{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGoodNotFound
	}
	return nil
}

// DecrementStock atomically decrements the stock counter by exactly one and
// returns the new count. The stock condition lives inside the UPDATE, so
// concurrent decrements for the same good cannot lose updates or drive the
// counter negative.
func (r *GormGoodRepository) DecrementStock(ctx context.Context, name string) (int, error) {
	var count int
	result := r.db.WithContext(ctx).Raw(
		`UPDATE goods SET count_in_stock = count_in_stock - 1 WHERE name = ? AND count_in_stock > 0 RETURNING count_in_stock`,
		name,
	).Scan(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.FindByName(ctx, name); err != nil {
			return 0, err
		}
		return 0, ErrNoStockAvailable
	}
	return count, nil
}
