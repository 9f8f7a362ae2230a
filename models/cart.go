package models

import "time"

// Cart is the persistent shopping cart, one active cart per user.
type Cart struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	CouponCode *string   `json:"coupon_code,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CartItem struct {
	ID        string    `json:"id"`
	CartID    string    `json:"cart_id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CartItemView is a cart item joined against the live product row.
// Product fields are nil when the product row no longer exists.
type CartItemView struct {
	ItemID        string   `json:"item_id"`
	ProductID     string   `json:"product_id"`
	Quantity      int      `json:"quantity"`
	ProductName   *string  `json:"product_name,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	ProductStatus *string  `json:"product_status,omitempty"`
	Stock         *int     `json:"stock,omitempty"`
}

// SnapshotItem is one line of a reconciled cart.
type SnapshotItem struct {
	ItemID      string  `json:"item_id"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name,omitempty"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
}

type CartTotals struct {
	Subtotal  float64 `json:"subtotal"`
	Discount  float64 `json:"discount"`
	ItemCount int     `json:"item_count"`
}

// CouponInfo is the storefront view of an applied coupon.
type CouponInfo struct {
	Code          string  `json:"code"`
	DiscountType  string  `json:"discount_type"`
	DiscountValue float64 `json:"discount_value"`
	Reason        string  `json:"reason,omitempty"` // why it is inactive, if it is
}

// ResolutionNotice is the blocking-issue prompt. Each of the four
// item/coupon issue combinations maps to exactly one variant.
type ResolutionNotice struct {
	Variant string `json:"variant"` // none | items_only | coupon_only | items_and_coupon
	Title   string `json:"title"`
	Message string `json:"message"`
	Action  string `json:"action"`
}

// CartSnapshot is the reconciled cart: every line item lands in exactly
// one of Items / InactiveItems / InvalidItems.
type CartSnapshot struct {
	CartID         string            `json:"cart_id"`
	Items          []SnapshotItem    `json:"items"`
	InactiveItems  []SnapshotItem    `json:"inactive_items"`
	InvalidItems   []SnapshotItem    `json:"invalid_items"`
	AppliedCoupon  *CouponInfo       `json:"applied_coupon,omitempty"`
	InactiveCoupon *CouponInfo       `json:"inactive_coupon,omitempty"`
	Totals         CartTotals        `json:"totals"`
	Blocking       bool              `json:"blocking"`
	Resolution     *ResolutionNotice `json:"resolution,omitempty"`
}

type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,min=1,max=20"`
}

type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required,min=3,max=32"`
}

// ResolveResult reports which removals succeeded. Partial failures are
// surfaced as-is; the caller re-invokes resolution, we never auto-retry.
type ResolveResult struct {
	RemovedItems  []string `json:"removed_items"`
	FailedItems   []string `json:"failed_items"`
	CouponRemoved bool     `json:"coupon_removed"`
	CouponFailed  bool     `json:"coupon_failed"`
	Complete      bool     `json:"complete"`
}
