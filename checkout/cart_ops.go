package checkout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
)

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrProductUnavailable  = errors.New("product is not available")
	ErrInsufficientStock   = errors.New("requested quantity exceeds stock")
	ErrCartItemNotFound    = errors.New("cart item not found")
	ErrCouponNotFound      = errors.New("coupon not found")
	ErrCouponNotApplicable = errors.New("coupon cannot be applied")
)

// AddItem adds a product to the user's cart, or bumps the quantity if
// it is already there. The product must be purchasable right now.
func (s *Service) AddItem(ctx context.Context, userID, productID string, quantity int) error {
	cart, err := s.getOrCreateCart(ctx, userID)
	if err != nil {
		return err
	}

	var p models.Product
	err = s.db.WithContext(ctx).Raw(
		`SELECT id::text, name, price, status, stock FROM products WHERE id = ? LIMIT 1`, productID,
	).Row().Scan(&p.ID, &p.Name, &p.Price, &p.Status, &p.Stock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProductNotFound
		}
		return fmt.Errorf("fetch product: %w", err)
	}
	if p.Status != models.ProductStatusActive {
		return ErrProductUnavailable
	}

	// Existing quantity counts against stock too
	var existing int
	err = s.db.WithContext(ctx).Raw(
		`SELECT quantity FROM cart_items WHERE cart_id = ? AND product_id = ? LIMIT 1`,
		cart.ID, productID,
	).Row().Scan(&existing)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("fetch cart item: %w", err)
	}

	if existing+quantity > p.Stock {
		return ErrInsufficientStock
	}

	if err := s.db.WithContext(ctx).Exec(`
		INSERT INTO cart_items (id, cart_id, product_id, quantity, created_at, updated_at)
		VALUES (gen_random_uuid(), ?, ?, ?, NOW(), NOW())
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = NOW()`,
		cart.ID, productID, quantity,
	).Error; err != nil {
		return fmt.Errorf("add cart item: %w", err)
	}
	return nil
}

// UpdateItemQuantity sets an item's quantity. Zero removes the line.
func (s *Service) UpdateItemQuantity(ctx context.Context, userID, itemID string, quantity int) error {
	cart, err := s.getOrCreateCart(ctx, userID)
	if err != nil {
		return err
	}

	if quantity <= 0 {
		return s.RemoveItem(ctx, userID, itemID)
	}

	res := s.db.WithContext(ctx).Exec(
		`UPDATE cart_items SET quantity = ?, updated_at = NOW()
		 WHERE id = ? AND cart_id = ?`, quantity, itemID, cart.ID,
	)
	if res.Error != nil {
		return fmt.Errorf("update cart item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// RemoveItem deletes one line from the user's cart.
func (s *Service) RemoveItem(ctx context.Context, userID, itemID string) error {
	cart, err := s.getOrCreateCart(ctx, userID)
	if err != nil {
		return err
	}

	res := s.db.WithContext(ctx).Exec(
		`DELETE FROM cart_items WHERE id = ? AND cart_id = ?`, itemID, cart.ID,
	)
	if res.Error != nil {
		return fmt.Errorf("remove cart item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// ApplyCoupon validates the coupon against the current active subtotal
// and pins it to the cart. The coupon is re-evaluated on every later
// reconciliation, so a coupon valid now can still go inactive.
func (s *Service) ApplyCoupon(ctx context.Context, userID, code string) (*models.CouponInfo, error) {
	snap, err := s.ReconcileCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	coupon, err := s.fetchCoupon(ctx, code)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}

	if reason := couponIssue(coupon, snap.Totals.Subtotal, s.now()); reason != "" {
		return &models.CouponInfo{
			Code:          coupon.Code,
			DiscountType:  coupon.DiscountType,
			DiscountValue: coupon.DiscountValue,
			Reason:        reason,
		}, ErrCouponNotApplicable
	}

	if err := s.db.WithContext(ctx).Exec(
		`UPDATE carts SET coupon_code = ?, updated_at = NOW() WHERE id = ?`,
		coupon.Code, snap.CartID,
	).Error; err != nil {
		return nil, fmt.Errorf("apply coupon: %w", err)
	}

	return &models.CouponInfo{
		Code:          coupon.Code,
		DiscountType:  coupon.DiscountType,
		DiscountValue: coupon.DiscountValue,
	}, nil
}

// RemoveCoupon detaches whatever coupon the cart carries.
func (s *Service) RemoveCoupon(ctx context.Context, userID string) error {
	cart, err := s.getOrCreateCart(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Exec(
		`UPDATE carts SET coupon_code = NULL, updated_at = NOW() WHERE id = ?`, cart.ID,
	).Error; err != nil {
		return fmt.Errorf("remove coupon: %w", err)
	}
	return nil
}
