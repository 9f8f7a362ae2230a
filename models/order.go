package models

import "time"

// Order statuses. Transitions are enforced in the order controller;
// returned/cancelled are the two terminal states besides delivered.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
	OrderStatusReturned   = "returned"
)

// Payment method codes. COD is the only synchronous method; everything
// else goes through the payment handoff.
const (
	PaymentMethodCOD        = "cod"
	PaymentMethodCard       = "card"
	PaymentMethodUPI        = "upi"
	PaymentMethodNetBanking = "netbanking"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
	PaymentStatusFailed   = "failed"
)

// Order represents a complete customer order. State/city/pincode are
// denormalized from the delivery address at creation time so geography
// filters never need the address table.
type Order struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	OrderNumber     string     `json:"order_number"`
	Status          string     `json:"status"`
	PaymentMethod   string     `json:"payment_method"`
	PaymentStatus   string     `json:"payment_status"`
	AddressID       *string    `json:"address_id,omitempty"`
	AddressSnapshot *string    `json:"address_snapshot,omitempty"` // JSONB as string
	State           string     `json:"state"`
	City            string     `json:"city"`
	Pincode         string     `json:"pincode"`
	Subtotal        float64    `json:"subtotal"`
	CGST            float64    `json:"cgst"`
	SGST            float64    `json:"sgst"`
	IGST            float64    `json:"igst"`
	ShippingCost    float64    `json:"shipping_cost"`
	CODFee          float64    `json:"cod_fee"`
	Discount        float64    `json:"discount"`
	CouponCode      *string    `json:"coupon_code,omitempty"`
	RoundOff        float64    `json:"round_off"`
	TotalAmount     float64    `json:"total_amount"`
	RefundAmount    float64    `json:"refund_amount"`
	ReturnReason    *string    `json:"return_reason,omitempty"`
	CustomerNotes   *string    `json:"customer_notes,omitempty"`
	AdminNotes      *string    `json:"admin_notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	ShippedAt       *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time `json:"delivered_at,omitempty"`
	ReturnedAt      *time.Time `json:"returned_at,omitempty"`
	PaymentAt       *time.Time `json:"payment_at,omitempty"`
}

// OrderItem represents an individual product in an order
type OrderItem struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"order_id"`
	UserID      string    `json:"user_id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	Subtotal    float64   `json:"subtotal"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OrderWithItems combines order and its items
type OrderWithItems struct {
	Order
	Items []OrderItem `json:"items"`
}

// OrderHistoryResponse for the user's order list view
type OrderHistoryResponse struct {
	ID          string    `json:"id"`
	OrderNumber string    `json:"order_number"`
	Status      string    `json:"status"`
	TotalAmount float64   `json:"total_amount"`
	ItemCount   int       `json:"item_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// AdminOrderListRow is one row of the admin order list
type AdminOrderListRow struct {
	ID            string    `json:"id"`
	OrderNumber   string    `json:"order_number"`
	CustomerID    string    `json:"customer_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CreatedAt     time.Time `json:"created_at"`
	ItemCount     int       `json:"item_count"`
	TotalAmount   float64   `json:"total_amount"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"payment_method"`
	PaymentStatus string    `json:"payment_status"`
}

type UpdateOrderStatusRequest struct {
	Status     string  `json:"status" binding:"required,oneof=pending processing shipped delivered cancelled"`
	AdminNotes *string `json:"admin_notes,omitempty"` // required if status=cancelled
}

type UpdateOrderStatusResponse struct {
	ID          string  `json:"id"`
	OrderNumber string  `json:"order_number"`
	Status      string  `json:"status"`
	AdminNotes  *string `json:"admin_notes,omitempty"`
}

// MarkOrderReturnedRequest marks a delivered order as returned
type MarkOrderReturnedRequest struct {
	Reason       string   `json:"reason" binding:"required,min=3"`
	RefundAmount *float64 `json:"refund_amount,omitempty"` // defaults to order total
	AdminNotes   *string  `json:"admin_notes,omitempty"`
}

// MarkPaymentReceivedRequest confirms payment for a COD / pending order
type MarkPaymentReceivedRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Notes  *string `json:"notes,omitempty"`
}
