package repository

import (
	"errors"
	"fmt"

	"SqueezeFM/model"

	"gorm.io/gorm"
)

// PricingRepository defines the interface for the license pricing catalog.
type PricingRepository interface {
	// GetAll returns every active pricing row keyed by product type.
	GetAll() (map[string]model.Pricing, error)
	// GetByProductType resolves one product type, falling back to the
	// built-in literals when no row matches.
	GetByProductType(productType string) (model.Pricing, error)
}

// gormPricingRepository implements PricingRepository with GORM.
type gormPricingRepository struct {
	db *gorm.DB
}

// NewGormPricingRepository creates a new gormPricingRepository.
func NewGormPricingRepository(db *gorm.DB) PricingRepository {
	return &gormPricingRepository{db: db}
}

func (r *gormPricingRepository) GetAll() (map[string]model.Pricing, error) {
	var rows []model.Pricing
	if err := r.db.Where("active = ?", true).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load pricing catalog: %w", err)
	}

	out := make(map[string]model.Pricing, len(rows))
	for _, row := range rows {
		out[row.ProductType] = row
	}
	return out, nil
}

func (r *gormPricingRepository) GetByProductType(productType string) (model.Pricing, error) {
	var row model.Pricing
	err := r.db.Where("product_type = ? AND active = ?", productType, true).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.FallbackPricing(productType), nil
	}
	if err != nil {
		return model.Pricing{}, fmt.Errorf("failed to load pricing for %s: %w", productType, err)
	}
	return row, nil
}
