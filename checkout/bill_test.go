package checkout

import (
	"testing"

	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const storeState = "Maharashtra"

func TestComputeBill_IntraStateSplitsGST(t *testing.T) {
	items := []models.CartItemView{activeItem("a", 500, 1, 10)}

	bill := ComputeBill(items, nil, "Maharashtra", storeState, models.PaymentMethodUPI, testNow)

	assert.InDelta(t, 500.0, bill.Subtotal, 0.001)
	assert.InDelta(t, 45.0, bill.CGST, 0.001)
	assert.InDelta(t, 45.0, bill.SGST, 0.001)
	assert.Zero(t, bill.IGST)
	assert.InDelta(t, 79.0, bill.ShippingCost, 0.001)
	assert.Zero(t, bill.CODFee)
	// 500 + 45 + 45 + 79 = 669, already whole rupees.
	assert.InDelta(t, 669.0, bill.TotalAmount, 0.001)
	assert.Zero(t, bill.RoundOff)
}

func TestComputeBill_InterStateUsesIGST(t *testing.T) {
	items := []models.CartItemView{activeItem("a", 500, 1, 10)}

	bill := ComputeBill(items, nil, "Karnataka", storeState, models.PaymentMethodUPI, testNow)

	assert.Zero(t, bill.CGST)
	assert.Zero(t, bill.SGST)
	assert.InDelta(t, 90.0, bill.IGST, 0.001)
}

func TestComputeBill_StateComparisonIsCaseInsensitive(t *testing.T) {
	items := []models.CartItemView{activeItem("a", 500, 1, 10)}

	bill := ComputeBill(items, nil, "maharashtra", storeState, models.PaymentMethodUPI, testNow)

	assert.InDelta(t, 45.0, bill.CGST, 0.001)
	assert.Zero(t, bill.IGST)
}

func TestComputeBill_FreeShippingBoundary(t *testing.T) {
	at := ComputeBill([]models.CartItemView{activeItem("a", 999, 1, 5)}, nil, "Karnataka", storeState, models.PaymentMethodUPI, testNow)
	assert.True(t, at.FreeShipping, "threshold is inclusive")
	assert.Zero(t, at.ShippingCost)

	below := ComputeBill([]models.CartItemView{activeItem("a", 998.99, 1, 5)}, nil, "Karnataka", storeState, models.PaymentMethodUPI, testNow)
	assert.False(t, below.FreeShipping)
	assert.InDelta(t, 79.0, below.ShippingCost, 0.001)
}

func TestComputeBill_DiscountCanPushBelowFreeShipping(t *testing.T) {
	coupon := &models.Coupon{
		Code:          "FLAT200",
		DiscountType:  models.DiscountTypeFlat,
		DiscountValue: 200,
		Status:        "active",
	}
	bill := ComputeBill([]models.CartItemView{activeItem("a", 1100, 1, 5)}, coupon, "Karnataka", storeState, models.PaymentMethodUPI, testNow)

	require.NotNil(t, bill.CouponCode)
	assert.InDelta(t, 200.0, bill.Discount, 0.001)
	// Threshold is evaluated on the discounted amount: 900 < 999.
	assert.False(t, bill.FreeShipping)
	assert.InDelta(t, 79.0, bill.ShippingCost, 0.001)
}

func TestComputeBill_CODAddsFee(t *testing.T) {
	items := []models.CartItemView{activeItem("a", 500, 1, 10)}

	cod := ComputeBill(items, nil, "Maharashtra", storeState, models.PaymentMethodCOD, testNow)
	assert.InDelta(t, 49.0, cod.CODFee, 0.001)

	online := ComputeBill(items, nil, "Maharashtra", storeState, models.PaymentMethodCard, testNow)
	assert.Zero(t, online.CODFee)
	assert.InDelta(t, cod.TotalAmount-online.TotalAmount, 49.0, 0.001)
}

func TestComputeBill_RoundsToWholeRupee(t *testing.T) {
	bill := ComputeBill([]models.CartItemView{activeItem("a", 333.33, 1, 5)}, nil, "Karnataka", storeState, models.PaymentMethodUPI, testNow)

	// 333.33 + 60.00 IGST + 79 shipping = 472.33 → rounds down to 472.
	assert.InDelta(t, 472.0, bill.TotalAmount, 0.001)
	assert.InDelta(t, -0.33, bill.RoundOff, 0.001)
}

func TestComputeBill_ClampsQuantityToStock(t *testing.T) {
	items := []models.CartItemView{
		activeItem("a", 100, 5, 3), // only 3 left
		activeItem("b", 200, 1, 10),
	}

	bill := ComputeBill(items, nil, "Karnataka", storeState, models.PaymentMethodUPI, testNow)

	require.Len(t, bill.Items, 2)
	assert.Equal(t, 3, bill.Items[0].Quantity)
	assert.InDelta(t, 300.0, bill.Items[0].Subtotal, 0.001)
	assert.True(t, bill.OrderChanged)

	require.Len(t, bill.Adjustments, 1)
	assert.Equal(t, "prod-a", bill.Adjustments[0].ProductID)
	assert.Equal(t, 5, bill.Adjustments[0].Requested)
	assert.Equal(t, 3, bill.Adjustments[0].Adjusted)
}

func TestComputeBill_DropsLinesClampedToZero(t *testing.T) {
	items := []models.CartItemView{
		activeItem("a", 100, 2, 0), // stock gone entirely
		activeItem("b", 200, 1, 10),
	}

	bill := ComputeBill(items, nil, "Karnataka", storeState, models.PaymentMethodUPI, testNow)

	require.Len(t, bill.Items, 1)
	assert.Equal(t, "b", bill.Items[0].ItemID)
	require.Len(t, bill.Adjustments, 1)
	assert.Equal(t, 0, bill.Adjustments[0].Adjusted)
	assert.True(t, bill.OrderChanged)
}

func TestComputeBill_InvalidCouponIsIgnored(t *testing.T) {
	coupon := &models.Coupon{
		Code:           "BIGSPEND",
		DiscountType:   models.DiscountTypeFlat,
		DiscountValue:  100,
		MinOrderAmount: 5000,
		Status:         "active",
	}
	bill := ComputeBill([]models.CartItemView{activeItem("a", 500, 1, 10)}, coupon, "Karnataka", storeState, models.PaymentMethodUPI, testNow)

	assert.Nil(t, bill.CouponCode)
	assert.Zero(t, bill.Discount)
}

func TestComputeBill_EmptyCart(t *testing.T) {
	bill := ComputeBill(nil, nil, "Karnataka", storeState, models.PaymentMethodUPI, testNow)

	assert.Empty(t, bill.Items)
	assert.Zero(t, bill.Subtotal)
	assert.Zero(t, bill.ShippingCost, "no shipping charge on an empty bill")
	assert.Zero(t, bill.TotalAmount)
	assert.False(t, bill.OrderChanged)
}
