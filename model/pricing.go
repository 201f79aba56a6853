package model

import "time"

// License tier product types as stored in the pricing catalog.
const (
	ProductTypeStandard     = "standard"
	ProductTypeExtended     = "extended"
	ProductTypeSubscription = "subscription"
)

// Pricing is one row of the license pricing catalog, keyed by product type.
type Pricing struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	ProductType string    `json:"productType" gorm:"column:product_type;uniqueIndex"`
	Label       string    `json:"label" gorm:"column:label"`
	AmountCents int64     `json:"amountCents" gorm:"column:amount_cents"`
	Currency    string    `json:"currency" gorm:"column:currency"`
	Active      bool      `json:"active" gorm:"column:active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName maps Pricing onto its table.
func (Pricing) TableName() string {
	return "pricing"
}

// FallbackPricing resolves a displayed price when the pricing catalog has no
// matching row for a product type.
func FallbackPricing(productType string) Pricing {
	switch productType {
	case ProductTypeExtended:
		return Pricing{ProductType: productType, Label: "Extended License", AmountCents: 19900, Currency: "USD", Active: true}
	case ProductTypeSubscription:
		return Pricing{ProductType: productType, Label: "Subscription", AmountCents: 1999, Currency: "USD", Active: true}
	default:
		return Pricing{ProductType: ProductTypeStandard, Label: "Standard License", AmountCents: 4900, Currency: "USD", Active: true}
	}
}
