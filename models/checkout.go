package models

import "time"

// Checkout steps. Forward-only via explicit action; going back clears
// whatever the abandoned step computed.
const (
	StepAddress = "address"
	StepSummary = "summary"
	StepPayment = "payment"
	StepPlaced  = "placed"
)

// QuantityAdjustment records a line whose quantity was reduced because
// stock shrank between cart population and checkout.
type QuantityAdjustment struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Requested   int    `json:"requested"`
	Adjusted    int    `json:"adjusted"`
}

// BillBreakdown is the server-computed bill for a selected address.
// Tax splits CGST+SGST for intra-state delivery, IGST otherwise.
type BillBreakdown struct {
	Items        []SnapshotItem       `json:"items"`
	Subtotal     float64              `json:"subtotal"`
	Discount     float64              `json:"discount"`
	CouponCode   *string              `json:"coupon_code,omitempty"`
	CGST         float64              `json:"cgst"`
	SGST         float64              `json:"sgst"`
	IGST         float64              `json:"igst"`
	ShippingCost float64              `json:"shipping_cost"`
	FreeShipping bool                 `json:"free_shipping"`
	CODFee       float64              `json:"cod_fee"`
	RoundOff     float64              `json:"round_off"`
	TotalAmount  float64              `json:"total_amount"`
	Adjustments  []QuantityAdjustment `json:"adjustments,omitempty"`
	OrderChanged bool                 `json:"order_changed"`
}

type PrepareCheckoutRequest struct {
	AddressID     string `json:"address_id" binding:"required,uuid"`
	PaymentMethod string `json:"payment_method,omitempty"` // optional at summary; COD fee preview
}

type PlaceOrderRequest struct {
	AddressID     string  `json:"address_id" binding:"required,uuid"`
	PaymentMethod string  `json:"payment_method" binding:"required,oneof=cod card upi netbanking"`
	CustomerNotes *string `json:"customer_notes,omitempty"`
}

// PlaceOrderResponse: for COD the order fields are set immediately; for
// online methods only the payment handoff fields are set and the order
// is created when the gateway reports completion.
type PlaceOrderResponse struct {
	OrderID     string  `json:"order_id,omitempty"`
	OrderNumber string  `json:"order_number,omitempty"`
	TotalAmount float64 `json:"total_amount"`
	AccessToken string  `json:"access_token,omitempty"` // 30-minute order-detail token
	PaymentURL  string  `json:"payment_url,omitempty"`
	PaymentRef  string  `json:"payment_ref,omitempty"`
	Pending     bool    `json:"pending"` // true while waiting on the gateway
}

// PaymentCallbackRequest is posted by the payment page when an online
// payment finishes.
type PaymentCallbackRequest struct {
	PaymentRef string `json:"payment_ref" binding:"required"`
	Outcome    string `json:"outcome" binding:"required,oneof=completed failed"`
}

// PendingPayment is the server-side record of an online-payment handoff.
type PendingPayment struct {
	Ref           string    `json:"ref"`
	UserID        string    `json:"user_id"`
	AddressID     string    `json:"address_id"`
	PaymentMethod string    `json:"payment_method"`
	CustomerNotes *string   `json:"customer_notes,omitempty"`
	Amount        float64   `json:"amount"`
	CreatedAt     time.Time `json:"created_at"`
}
