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

// ComputeBill is the pure bill-breakdown core. Input items must be the
// purchasable (active) lines; quantities are clamped to current stock
// and every clamp is reported — a shrunk order is never silent.
//
// Tax applies to the discounted subtotal: CGST+SGST half-and-half when
// the delivery state matches the store state, IGST otherwise. Shipping
// is free at or above the threshold. COD adds a flat fee. The grand
// total is rounded to the nearest rupee with the rounding delta kept.
func ComputeBill(items []models.CartItemView, coupon *models.Coupon, deliveryState, storeState, paymentMethod string, now time.Time) models.BillBreakdown {
	bill := models.BillBreakdown{Items: []models.SnapshotItem{}}

	for _, it := range items {
		if it.Price == nil || it.ProductName == nil {
			continue
		}
		qty := it.Quantity
		if it.Stock != nil && qty > *it.Stock {
			bill.Adjustments = append(bill.Adjustments, models.QuantityAdjustment{
				ProductID:   it.ProductID,
				ProductName: *it.ProductName,
				Requested:   qty,
				Adjusted:    *it.Stock,
			})
			qty = *it.Stock
		}
		if qty <= 0 {
			continue
		}
		line := models.SnapshotItem{
			ItemID:      it.ItemID,
			ProductID:   it.ProductID,
			ProductName: *it.ProductName,
			Price:       *it.Price,
			Quantity:    qty,
			Subtotal:    round2(*it.Price * float64(qty)),
		}
		bill.Items = append(bill.Items, line)
		bill.Subtotal += line.Subtotal
	}
	bill.Subtotal = round2(bill.Subtotal)
	bill.OrderChanged = len(bill.Adjustments) > 0

	if coupon != nil && couponIssue(coupon, bill.Subtotal, now) == "" {
		bill.Discount = CouponDiscount(coupon, bill.Subtotal)
		code := coupon.Code
		bill.CouponCode = &code
	}

	taxable := bill.Subtotal - bill.Discount
	if taxable < 0 {
		taxable = 0
	}

	if strings.EqualFold(deliveryState, storeState) {
		bill.CGST = round2(taxable * GSTRate / 2)
		bill.SGST = round2(taxable * GSTRate / 2)
	} else {
		bill.IGST = round2(taxable * GSTRate)
	}

	if taxable >= FreeShippingThreshold {
		bill.FreeShipping = true
	} else if len(bill.Items) > 0 {
		bill.ShippingCost = StandardShippingCost
	}

	if paymentMethod == models.PaymentMethodCOD {
		bill.CODFee = CODFeeAmount
	}

	raw := taxable + bill.CGST + bill.SGST + bill.IGST + bill.ShippingCost + bill.CODFee
	total := math.Round(raw)
	bill.RoundOff = round2(total - raw)
	bill.TotalAmount = total

	return bill
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// PrepareCheckout computes the bill for the user's cart against a
// selected delivery address. The address must belong to the user and be
// active; blocking cart issues must already be resolved.
func (s *Service) PrepareCheckout(ctx context.Context, userID, addressID, paymentMethod string) (models.BillBreakdown, error) {
	addr, err := s.fetchAddress(ctx, addressID)
	if err != nil {
		return models.BillBreakdown{}, err
	}
	if addr.UserID != userID {
		return models.BillBreakdown{}, ErrAddressNotOwned
	}

	snap, err := s.ReconcileCart(ctx, userID)
	if err != nil {
		return models.BillBreakdown{}, err
	}
	if snap.Blocking {
		return models.BillBreakdown{}, ErrBlockingIssues
	}
	if len(snap.Items) == 0 {
		return models.BillBreakdown{}, ErrCartEmpty
	}

	cart, err := s.getOrCreateCart(ctx, userID)
	if err != nil {
		return models.BillBreakdown{}, err
	}
	items, err := s.fetchCartItems(ctx, cart.ID)
	if err != nil {
		return models.BillBreakdown{}, err
	}

	var coupon *models.Coupon
	if cart.CouponCode != nil && *cart.CouponCode != "" {
		if coupon, err = s.fetchCoupon(ctx, *cart.CouponCode); err != nil {
			return models.BillBreakdown{}, err
		}
	}

	active := purchasable(items)
	return ComputeBill(active, coupon, addr.State, s.storeState, paymentMethod, s.now()), nil
}

// purchasable filters joined cart rows down to the active partition.
func purchasable(items []models.CartItemView) []models.CartItemView {
	var out []models.CartItemView
	for _, it := range items {
		if it.ProductName == nil || it.Price == nil {
			continue
		}
		if it.ProductStatus == nil || *it.ProductStatus != models.ProductStatusActive {
			continue
		}
		if it.Stock == nil || *it.Stock <= 0 {
			continue
		}
		out = append(out, it)
	}
	return out
}

func (s *Service) fetchAddress(ctx context.Context, addressID string) (models.Address, error) {
	var a models.Address
	err := s.db.WithContext(ctx).Raw(
		`SELECT id::text, user_id::text, label, first_name, last_name, street,
		        city, state, pincode, country, phone, is_default, status,
		        created_at, updated_at
		 FROM addresses WHERE id = ? AND status = 'active' LIMIT 1`, addressID,
	).Row().Scan(&a.ID, &a.UserID, &a.Label, &a.FirstName, &a.LastName, &a.Street,
		&a.City, &a.State, &a.Pincode, &a.Country, &a.Phone, &a.IsDefault, &a.Status,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return a, ErrAddressNotFound
		}
		return a, fmt.Errorf("fetch address: %w", err)
	}
	return a, nil
}
