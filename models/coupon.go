package models

import "time"

const (
	DiscountTypePercent = "percent"
	DiscountTypeFlat    = "flat"
)

// Coupon as stored. Validity is evaluated at reconciliation time, not
// cached on the cart: a coupon valid at apply-time can go inactive.
type Coupon struct {
	Code           string     `json:"code"`
	DiscountType   string     `json:"discount_type"`
	DiscountValue  float64    `json:"discount_value"`
	MinOrderAmount float64    `json:"min_order_amount"`
	MaxDiscount    float64    `json:"max_discount"` // cap for percent coupons, 0 = uncapped
	Status         string     `json:"status"`       // active | disabled
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
