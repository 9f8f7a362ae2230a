package checkout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
)

// Resolution notice variants. Every item/coupon issue combination maps
// to exactly one; there is no generic fallback.
const (
	VariantNone           = "none"
	VariantItemsOnly      = "items_only"
	VariantCouponOnly     = "coupon_only"
	VariantItemsAndCoupon = "items_and_coupon"
)

// PartitionCart is the pure reconciliation core. Every line item lands
// in exactly one of active / inactive / invalid:
//   - invalid: the product row no longer exists
//   - inactive: the product exists but is not purchasable (non-active
//     status or zero stock)
//   - active: everything else
//
// The coupon is evaluated against the active-item subtotal. Blocking is
// true iff inactive items exist or the coupon went inactive.
func PartitionCart(cartID string, items []models.CartItemView, coupon *models.Coupon, now time.Time) models.CartSnapshot {
	snap := models.CartSnapshot{
		CartID:        cartID,
		Items:         []models.SnapshotItem{},
		InactiveItems: []models.SnapshotItem{},
		InvalidItems:  []models.SnapshotItem{},
	}

	for _, it := range items {
		line := models.SnapshotItem{
			ItemID:    it.ItemID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		}
		if it.ProductName != nil {
			line.ProductName = *it.ProductName
		}
		if it.Price != nil {
			line.Price = *it.Price
			line.Subtotal = *it.Price * float64(it.Quantity)
		}

		switch {
		case it.ProductName == nil || it.Price == nil:
			snap.InvalidItems = append(snap.InvalidItems, line)
		case it.ProductStatus == nil || *it.ProductStatus != models.ProductStatusActive,
			it.Stock == nil || *it.Stock <= 0:
			snap.InactiveItems = append(snap.InactiveItems, line)
		default:
			snap.Items = append(snap.Items, line)
			snap.Totals.Subtotal += line.Subtotal
			snap.Totals.ItemCount += line.Quantity
		}
	}
	snap.Totals.Subtotal = math.Round(snap.Totals.Subtotal*100) / 100

	if coupon != nil {
		info := models.CouponInfo{
			Code:          coupon.Code,
			DiscountType:  coupon.DiscountType,
			DiscountValue: coupon.DiscountValue,
		}
		if reason := couponIssue(coupon, snap.Totals.Subtotal, now); reason != "" {
			info.Reason = reason
			snap.InactiveCoupon = &info
		} else {
			snap.AppliedCoupon = &info
			snap.Totals.Discount = CouponDiscount(coupon, snap.Totals.Subtotal)
		}
	}

	snap.Blocking = len(snap.InactiveItems) > 0 || snap.InactiveCoupon != nil
	snap.Resolution = resolutionNotice(len(snap.InactiveItems) > 0, snap.InactiveCoupon != nil)

	return snap
}

// couponIssue returns why the coupon cannot apply right now, or "".
func couponIssue(c *models.Coupon, subtotal float64, now time.Time) string {
	if !strings.EqualFold(c.Status, "active") {
		return "coupon has been disabled"
	}
	if c.ExpiresAt != nil && now.After(*c.ExpiresAt) {
		return "coupon has expired"
	}
	if subtotal < c.MinOrderAmount {
		return fmt.Sprintf("order total below coupon minimum of %.2f", c.MinOrderAmount)
	}
	return ""
}

// CouponDiscount computes the discount a valid coupon grants on the
// given subtotal. Percent coupons honor MaxDiscount; flat coupons never
// exceed the subtotal.
func CouponDiscount(c *models.Coupon, subtotal float64) float64 {
	var d float64
	switch c.DiscountType {
	case models.DiscountTypePercent:
		d = subtotal * c.DiscountValue / 100
		if c.MaxDiscount > 0 && d > c.MaxDiscount {
			d = c.MaxDiscount
		}
	case models.DiscountTypeFlat:
		d = c.DiscountValue
		if d > subtotal {
			d = subtotal
		}
	}
	return math.Round(d*100) / 100
}

// resolutionNotice maps the four issue combinations to their fully
// specified prompts.
func resolutionNotice(itemsIssue, couponIssue bool) *models.ResolutionNotice {
	switch {
	case itemsIssue && couponIssue:
		return &models.ResolutionNotice{
			Variant: VariantItemsAndCoupon,
			Title:   "Your cart needs attention",
			Message: "Some items in your cart are no longer available and your coupon is no longer valid. Remove them to continue to payment.",
			Action:  "Remove unavailable items and coupon",
		}
	case itemsIssue:
		return &models.ResolutionNotice{
			Variant: VariantItemsOnly,
			Title:   "Some items are unavailable",
			Message: "One or more items in your cart are no longer available. Remove them to continue to payment.",
			Action:  "Remove unavailable items",
		}
	case couponIssue:
		return &models.ResolutionNotice{
			Variant: VariantCouponOnly,
			Title:   "Coupon no longer valid",
			Message: "The coupon applied to your cart is no longer valid. Remove it to continue to payment.",
			Action:  "Remove coupon",
		}
	default:
		return &models.ResolutionNotice{
			Variant: VariantNone,
			Title:   "",
			Message: "",
			Action:  "",
		}
	}
}

// ReconcileCart loads the user's cart, joins line items against live
// product rows, evaluates the applied coupon and partitions everything.
func (s *Service) ReconcileCart(ctx context.Context, userID string) (models.CartSnapshot, error) {
	cart, err := s.getOrCreateCart(ctx, userID)
	if err != nil {
		return models.CartSnapshot{}, err
	}

	items, err := s.fetchCartItems(ctx, cart.ID)
	if err != nil {
		return models.CartSnapshot{}, err
	}

	var coupon *models.Coupon
	if cart.CouponCode != nil && *cart.CouponCode != "" {
		coupon, err = s.fetchCoupon(ctx, *cart.CouponCode)
		if err != nil {
			return models.CartSnapshot{}, err
		}
		if coupon == nil {
			// Coupon row vanished since apply-time; surface as inactive.
			coupon = &models.Coupon{Code: *cart.CouponCode, Status: "disabled"}
		}
	}

	return PartitionCart(cart.ID, items, coupon, s.now()), nil
}

func (s *Service) getOrCreateCart(ctx context.Context, userID string) (models.Cart, error) {
	var cart models.Cart
	err := s.db.WithContext(ctx).Raw(
		`SELECT id::text, user_id::text, coupon_code, created_at, updated_at
		 FROM carts WHERE user_id = ? LIMIT 1`, userID,
	).Row().Scan(&cart.ID, &cart.UserID, &cart.CouponCode, &cart.CreatedAt, &cart.UpdatedAt)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return cart, fmt.Errorf("fetch cart: %w", err)
	}

	// No cart yet: create one.
	row := s.db.WithContext(ctx).Raw(
		`INSERT INTO carts (id, user_id, created_at, updated_at)
		 VALUES (gen_random_uuid(), ?, NOW(), NOW())
		 RETURNING id::text, user_id::text, coupon_code, created_at, updated_at`, userID,
	).Row()
	if err := row.Scan(&cart.ID, &cart.UserID, &cart.CouponCode, &cart.CreatedAt, &cart.UpdatedAt); err != nil {
		return cart, fmt.Errorf("create cart: %w", err)
	}
	return cart, nil
}

func (s *Service) fetchCartItems(ctx context.Context, cartID string) ([]models.CartItemView, error) {
	rows, err := s.db.WithContext(ctx).Raw(
		`SELECT ci.id::text, ci.product_id::text, ci.quantity,
		        p.name, p.price, p.status, p.stock
		 FROM cart_items ci
		 LEFT JOIN products p ON p.id = ci.product_id
		 WHERE ci.cart_id = ?
		 ORDER BY ci.created_at`, cartID,
	).Rows()
	if err != nil {
		return nil, fmt.Errorf("fetch cart items: %w", err)
	}
	defer rows.Close()

	var items []models.CartItemView
	for rows.Next() {
		var it models.CartItemView
		if err := rows.Scan(&it.ItemID, &it.ProductID, &it.Quantity,
			&it.ProductName, &it.Price, &it.ProductStatus, &it.Stock); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *Service) fetchCoupon(ctx context.Context, code string) (*models.Coupon, error) {
	var c models.Coupon
	err := s.db.WithContext(ctx).Raw(
		`SELECT code, discount_type, discount_value, min_order_amount,
		        max_discount, status, expires_at, created_at
		 FROM coupons WHERE code = ? LIMIT 1`, code,
	).Row().Scan(&c.Code, &c.DiscountType, &c.DiscountValue, &c.MinOrderAmount,
		&c.MaxDiscount, &c.Status, &c.ExpiresAt, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch coupon: %w", err)
	}
	return &c, nil
}
