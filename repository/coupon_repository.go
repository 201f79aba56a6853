package repository

import (
	"errors"
	"fmt"

	"SqueezeFM/model"

	"gorm.io/gorm"
)

// CouponRepository defines the interface for promotional code reads.
type CouponRepository interface {
	// GetActiveByCode returns the coupon with the given code when it is
	// active, (nil, nil) otherwise.
	GetActiveByCode(code string) (*model.Coupon, error)
}

// gormCouponRepository implements CouponRepository with GORM.
type gormCouponRepository struct {
	db *gorm.DB
}

// NewGormCouponRepository creates a new gormCouponRepository.
func NewGormCouponRepository(db *gorm.DB) CouponRepository {
	return &gormCouponRepository{db: db}
}

func (r *gormCouponRepository) GetActiveByCode(code string) (*model.Coupon, error) {
	var coupon model.Coupon
	err := r.db.Where("code = ? AND active = ?", code, true).First(&coupon).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load coupon %s: %w", code, err)
	}
	return &coupon, nil
}
