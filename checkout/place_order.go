package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlaceOrder runs exactly one order-creation attempt for one explicit
// user action. COD orders are created synchronously; online methods
// return a PendingPayment for the controller to park and hand off —
// the order only exists once the payment page reports completion.
// Failures surface to the user with no automatic retry.
func (s *Service) PlaceOrder(ctx context.Context, userID string, req models.PlaceOrderRequest) (models.PlaceOrderResponse, *models.PendingPayment, error) {
	addr, err := s.fetchAddress(ctx, req.AddressID)
	if err != nil {
		return models.PlaceOrderResponse{}, nil, err
	}
	if addr.UserID != userID {
		return models.PlaceOrderResponse{}, nil, ErrAddressNotOwned
	}

	snap, err := s.ReconcileCart(ctx, userID)
	if err != nil {
		return models.PlaceOrderResponse{}, nil, err
	}
	if snap.Blocking {
		return models.PlaceOrderResponse{}, nil, ErrBlockingIssues
	}
	if len(snap.Items) == 0 {
		return models.PlaceOrderResponse{}, nil, ErrCartEmpty
	}

	bill, err := s.billForCart(ctx, userID, addr, req.PaymentMethod)
	if err != nil {
		return models.PlaceOrderResponse{}, nil, err
	}

	if req.PaymentMethod != models.PaymentMethodCOD {
		pp := &models.PendingPayment{
			Ref:           uuid.NewString(),
			UserID:        userID,
			AddressID:     req.AddressID,
			PaymentMethod: req.PaymentMethod,
			CustomerNotes: req.CustomerNotes,
			Amount:        bill.TotalAmount,
			CreatedAt:     s.now(),
		}
		resp := models.PlaceOrderResponse{
			TotalAmount: bill.TotalAmount,
			PaymentRef:  pp.Ref,
			Pending:     true,
		}
		return resp, pp, nil
	}

	orderID, orderNumber, err := s.createOrder(ctx, userID, addr, req, bill, models.PaymentStatusPending)
	if err != nil {
		return models.PlaceOrderResponse{}, nil, err
	}

	log.Printf("[checkout.place-order] order created: %s (%s) user=%s total=%.2f method=%s",
		orderNumber, orderID, userID, bill.TotalAmount, req.PaymentMethod)

	return models.PlaceOrderResponse{
		OrderID:     orderID,
		OrderNumber: orderNumber,
		TotalAmount: bill.TotalAmount,
	}, nil, nil
}

// CompletePayment finishes an online-payment handoff. A failed outcome
// never creates an order; a completed one creates it with payment
// already recorded as paid.
func (s *Service) CompletePayment(ctx context.Context, pp models.PendingPayment, outcome string) (models.PlaceOrderResponse, error) {
	if outcome != "completed" {
		return models.PlaceOrderResponse{}, ErrPaymentFailed
	}

	addr, err := s.fetchAddress(ctx, pp.AddressID)
	if err != nil {
		return models.PlaceOrderResponse{}, err
	}

	bill, err := s.billForCart(ctx, pp.UserID, addr, pp.PaymentMethod)
	if err != nil {
		return models.PlaceOrderResponse{}, err
	}

	req := models.PlaceOrderRequest{
		AddressID:     pp.AddressID,
		PaymentMethod: pp.PaymentMethod,
		CustomerNotes: pp.CustomerNotes,
	}
	orderID, orderNumber, err := s.createOrder(ctx, pp.UserID, addr, req, bill, models.PaymentStatusPaid)
	if err != nil {
		return models.PlaceOrderResponse{}, err
	}

	log.Printf("[checkout.payment-callback] order created: %s (%s) user=%s total=%.2f method=%s",
		orderNumber, orderID, pp.UserID, bill.TotalAmount, pp.PaymentMethod)

	return models.PlaceOrderResponse{
		OrderID:     orderID,
		OrderNumber: orderNumber,
		TotalAmount: bill.TotalAmount,
	}, nil
}

// billForCart recomputes the authoritative bill from the live cart.
func (s *Service) billForCart(ctx context.Context, userID string, addr models.Address, paymentMethod string) (models.BillBreakdown, error) {
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

	bill := ComputeBill(purchasable(items), coupon, addr.State, s.storeState, paymentMethod, s.now())
	if len(bill.Items) == 0 {
		return bill, ErrCartEmpty
	}
	return bill, nil
}

// createOrder writes the order, its items and the stock decrements in
// one transaction, then empties the cart. The order number comes from
// the insert trigger.
func (s *Service) createOrder(ctx context.Context, userID string, addr models.Address, req models.PlaceOrderRequest, bill models.BillBreakdown, paymentStatus string) (string, string, error) {
	orderID := uuid.Must(uuid.NewV7())
	var orderNumber string

	addressSnapshot := map[string]any{
		"label":      addr.Label,
		"first_name": addr.FirstName,
		"last_name":  addr.LastName,
		"street":     addr.Street,
		"city":       addr.City,
		"state":      addr.State,
		"pincode":    addr.Pincode,
		"country":    addr.Country,
		"phone":      addr.Phone,
	}
	addressJSON, _ := json.Marshal(addressSnapshot)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`
			INSERT INTO orders
			(id, user_id, order_number, status, payment_method, payment_status,
			 address_id, address_snapshot, state, city, pincode,
			 subtotal, cgst, sgst, igst, shipping_cost, cod_fee, discount,
			 coupon_code, round_off, total_amount, customer_notes,
			 created_at, updated_at)
			VALUES (?, ?, '', ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`,
			orderID,
			userID,
			models.OrderStatusPending,
			req.PaymentMethod,
			paymentStatus,
			req.AddressID,
			addressJSON,
			addr.State,
			addr.City,
			addr.Pincode,
			bill.Subtotal,
			bill.CGST,
			bill.SGST,
			bill.IGST,
			bill.ShippingCost,
			bill.CODFee,
			bill.Discount,
			bill.CouponCode,
			bill.RoundOff,
			bill.TotalAmount,
			req.CustomerNotes,
		).Error; err != nil {
			log.Printf("[checkout.create-order] ERROR insert order err=%v", err)
			return fmt.Errorf("failed to create order")
		}

		for _, line := range bill.Items {
			res := tx.Exec(
				`UPDATE products SET stock = stock - ?, updated_at = NOW()
				 WHERE id = ? AND stock >= ?`,
				line.Quantity, line.ProductID, line.Quantity,
			)
			if res.Error != nil {
				log.Printf("[checkout.create-order] ERROR stock update err=%v", res.Error)
				return fmt.Errorf("failed to reserve stock")
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("product %s is out of stock", line.ProductName)
			}

			if err := tx.Exec(`
				INSERT INTO order_items
				(id, order_id, user_id, product_id, product_name, price, quantity, subtotal, status, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`,
				uuid.Must(uuid.NewV7()),
				orderID,
				userID,
				line.ProductID,
				line.ProductName,
				line.Price,
				line.Quantity,
				line.Subtotal,
				models.OrderStatusPending,
			).Error; err != nil {
				log.Printf("[checkout.create-order] ERROR insert item err=%v", err)
				return fmt.Errorf("failed to create order items")
			}
		}

		// Empty the cart inside the same transaction.
		if err := tx.Exec(
			`DELETE FROM cart_items WHERE cart_id = (SELECT id FROM carts WHERE user_id = ?)`, userID,
		).Error; err != nil {
			return fmt.Errorf("failed to clear cart")
		}
		if err := tx.Exec(
			`UPDATE carts SET coupon_code = NULL, updated_at = NOW() WHERE user_id = ?`, userID,
		).Error; err != nil {
			return fmt.Errorf("failed to clear cart coupon")
		}

		if err := tx.Raw(`SELECT order_number FROM orders WHERE id = ?`, orderID).Scan(&orderNumber).Error; err != nil {
			log.Printf("[checkout.create-order] ERROR fetch order number err=%v", err)
			return fmt.Errorf("failed to create order")
		}
		return nil
	})
	if err != nil {
		return "", "", err
	}

	return orderID.String(), orderNumber, nil
}
