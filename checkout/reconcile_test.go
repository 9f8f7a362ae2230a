package checkout

import (
	"testing"
	"time"

	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string        { return &s }
func f64Ptr(f float64) *float64      { return &f }
func intPtr(i int) *int              { return &i }
func timePtr(t time.Time) *time.Time { return &t }

func activeItem(id string, price float64, qty, stock int) models.CartItemView {
	return models.CartItemView{
		ItemID:        id,
		ProductID:     "prod-" + id,
		Quantity:      qty,
		ProductName:   strPtr("Item " + id),
		Price:         f64Ptr(price),
		ProductStatus: strPtr(models.ProductStatusActive),
		Stock:         intPtr(stock),
	}
}

func TestPartitionCart_EveryItemLandsInExactlyOnePartition(t *testing.T) {
	items := []models.CartItemView{
		activeItem("a", 500, 2, 10),
		{ // product row gone
			ItemID:    "b",
			ProductID: "prod-b",
			Quantity:  1,
		},
		{ // archived product
			ItemID:        "c",
			ProductID:     "prod-c",
			Quantity:      1,
			ProductName:   strPtr("Item c"),
			Price:         f64Ptr(200),
			ProductStatus: strPtr(models.ProductStatusArchived),
			Stock:         intPtr(5),
		},
		{ // active but out of stock
			ItemID:        "d",
			ProductID:     "prod-d",
			Quantity:      3,
			ProductName:   strPtr("Item d"),
			Price:         f64Ptr(150),
			ProductStatus: strPtr(models.ProductStatusActive),
			Stock:         intPtr(0),
		},
	}

	snap := PartitionCart("cart-1", items, nil, testNow)

	require.Len(t, snap.Items, 1)
	assert.Equal(t, "a", snap.Items[0].ItemID)
	require.Len(t, snap.InvalidItems, 1)
	assert.Equal(t, "b", snap.InvalidItems[0].ItemID)
	require.Len(t, snap.InactiveItems, 2)
	assert.Equal(t, "c", snap.InactiveItems[0].ItemID)
	assert.Equal(t, "d", snap.InactiveItems[1].ItemID)

	// Totals cover the active partition only.
	assert.InDelta(t, 1000.0, snap.Totals.Subtotal, 0.001)
	assert.Equal(t, 2, snap.Totals.ItemCount)
}

func TestPartitionCart_EmptyCartIsNotBlocking(t *testing.T) {
	snap := PartitionCart("cart-1", nil, nil, testNow)

	assert.False(t, snap.Blocking)
	assert.Empty(t, snap.Items)
	require.NotNil(t, snap.Resolution)
	assert.Equal(t, VariantNone, snap.Resolution.Variant)
}

func TestPartitionCart_InvalidItemsAloneDoNotBlock(t *testing.T) {
	items := []models.CartItemView{
		activeItem("a", 300, 1, 5),
		{ItemID: "b", ProductID: "prod-b", Quantity: 1}, // vanished product
	}

	snap := PartitionCart("cart-1", items, nil, testNow)

	assert.False(t, snap.Blocking, "invalid items are dropped silently, only inactive items block")
	assert.Equal(t, VariantNone, snap.Resolution.Variant)
}

func TestPartitionCart_ValidCouponApplies(t *testing.T) {
	coupon := &models.Coupon{
		Code:          "WELCOME10",
		DiscountType:  models.DiscountTypePercent,
		DiscountValue: 10,
		MaxDiscount:   300,
		Status:        "active",
	}
	snap := PartitionCart("cart-1", []models.CartItemView{activeItem("a", 500, 2, 10)}, coupon, testNow)

	require.NotNil(t, snap.AppliedCoupon)
	assert.Nil(t, snap.InactiveCoupon)
	assert.InDelta(t, 100.0, snap.Totals.Discount, 0.001)
	assert.False(t, snap.Blocking)
}

func TestPartitionCart_CouponIssues(t *testing.T) {
	base := []models.CartItemView{activeItem("a", 500, 1, 10)}

	t.Run("disabled", func(t *testing.T) {
		snap := PartitionCart("c", base, &models.Coupon{Code: "X", Status: "disabled"}, testNow)
		require.NotNil(t, snap.InactiveCoupon)
		assert.Equal(t, "coupon has been disabled", snap.InactiveCoupon.Reason)
		assert.True(t, snap.Blocking)
	})

	t.Run("expired", func(t *testing.T) {
		snap := PartitionCart("c", base, &models.Coupon{
			Code:      "X",
			Status:    "active",
			ExpiresAt: timePtr(testNow.Add(-time.Hour)),
		}, testNow)
		require.NotNil(t, snap.InactiveCoupon)
		assert.Equal(t, "coupon has expired", snap.InactiveCoupon.Reason)
	})

	t.Run("below minimum", func(t *testing.T) {
		snap := PartitionCart("c", base, &models.Coupon{
			Code:           "X",
			Status:         "active",
			MinOrderAmount: 1000,
		}, testNow)
		require.NotNil(t, snap.InactiveCoupon)
		assert.Contains(t, snap.InactiveCoupon.Reason, "below coupon minimum")
		assert.Zero(t, snap.Totals.Discount)
	})
}

func TestPartitionCart_ResolutionNoticeVariants(t *testing.T) {
	active := activeItem("a", 500, 1, 10)
	inactive := models.CartItemView{
		ItemID:        "b",
		ProductID:     "prod-b",
		Quantity:      1,
		ProductName:   strPtr("Item b"),
		Price:         f64Ptr(100),
		ProductStatus: strPtr(models.ProductStatusInactive),
		Stock:         intPtr(5),
	}
	deadCoupon := &models.Coupon{Code: "X", Status: "disabled"}

	t.Run("none", func(t *testing.T) {
		snap := PartitionCart("c", []models.CartItemView{active}, nil, testNow)
		assert.Equal(t, VariantNone, snap.Resolution.Variant)
		assert.False(t, snap.Blocking)
	})

	t.Run("items_only", func(t *testing.T) {
		snap := PartitionCart("c", []models.CartItemView{active, inactive}, nil, testNow)
		assert.Equal(t, VariantItemsOnly, snap.Resolution.Variant)
		assert.Equal(t, "Remove unavailable items", snap.Resolution.Action)
		assert.True(t, snap.Blocking)
	})

	t.Run("coupon_only", func(t *testing.T) {
		snap := PartitionCart("c", []models.CartItemView{active}, deadCoupon, testNow)
		assert.Equal(t, VariantCouponOnly, snap.Resolution.Variant)
		assert.Equal(t, "Remove coupon", snap.Resolution.Action)
		assert.True(t, snap.Blocking)
	})

	t.Run("items_and_coupon", func(t *testing.T) {
		snap := PartitionCart("c", []models.CartItemView{active, inactive}, deadCoupon, testNow)
		assert.Equal(t, VariantItemsAndCoupon, snap.Resolution.Variant)
		assert.Equal(t, "Remove unavailable items and coupon", snap.Resolution.Action)
		assert.True(t, snap.Blocking)
	})
}

func TestCouponDiscount_PercentHonorsCap(t *testing.T) {
	c := &models.Coupon{
		DiscountType:  models.DiscountTypePercent,
		DiscountValue: 20,
		MaxDiscount:   150,
	}
	assert.InDelta(t, 100.0, CouponDiscount(c, 500), 0.001)
	assert.InDelta(t, 150.0, CouponDiscount(c, 2000), 0.001, "percent discount capped at max_discount")

	uncapped := &models.Coupon{DiscountType: models.DiscountTypePercent, DiscountValue: 20}
	assert.InDelta(t, 400.0, CouponDiscount(uncapped, 2000), 0.001, "zero max_discount means no cap")
}

func TestCouponDiscount_FlatNeverExceedsSubtotal(t *testing.T) {
	c := &models.Coupon{DiscountType: models.DiscountTypeFlat, DiscountValue: 200}
	assert.InDelta(t, 200.0, CouponDiscount(c, 500), 0.001)
	assert.InDelta(t, 120.0, CouponDiscount(c, 120), 0.001)
}
