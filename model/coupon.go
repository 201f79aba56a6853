package model

import "time"

// Coupon is a promotional code row. The storefront reads specific codes by
// fixed identifier and only surfaces active ones.
type Coupon struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	Code       string    `json:"code" gorm:"column:code;uniqueIndex"`
	PercentOff int       `json:"percentOff" gorm:"column:percent_off"`
	Active     bool      `json:"active" gorm:"column:active"`
	ExpiresAt  time.Time `json:"expiresAt" gorm:"column:expires_at"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TableName maps Coupon onto its table.
func (Coupon) TableName() string {
	return "coupons"
}
