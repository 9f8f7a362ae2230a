package checkout_controller

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/Vastrika-Ecommerce/vastrika-backend/checkout"
	"github.com/Vastrika-Ecommerce/vastrika-backend/config"
	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
	"github.com/Vastrika-Ecommerce/vastrika-backend/services"
)

func newCheckoutService() *checkout.Service {
	return checkout.NewService(config.Gorm)
}

func newSessionStore() *checkout.SessionStore {
	return checkout.NewSessionStore(config.RedisClient)
}

func newTokenStore() *checkout.TokenStore {
	return checkout.NewTokenStore(config.RedisClient)
}

// sendOrderConfirmation emails the customer about a freshly created
// order. Fire-and-forget: a mail failure never fails the order.
func sendOrderConfirmation(orderID string) {
	go func() {
		ctx, cancel := config.WithTimeout()
		defer cancel()

		var order models.Order
		if err := config.Gorm.WithContext(ctx).First(&order, "id = ?", orderID).Error; err != nil {
			log.Printf("[checkout.email] failed to fetch order %s: %v", orderID, err)
			return
		}

		var items []models.OrderItem
		if err := config.Gorm.WithContext(ctx).
			Where("order_id = ?", orderID).
			Find(&items).Error; err != nil {
			log.Printf("[checkout.email] failed to fetch items for order %s: %v", orderID, err)
			return
		}

		var customer struct {
			Email string
			Name  string
		}
		if err := config.Gorm.WithContext(ctx).
			Table("users").
			Select("email, name").
			Where("id = ?", order.UserID).
			Scan(&customer).Error; err != nil || customer.Email == "" {
			log.Printf("[checkout.email] no customer email for order %s: %v", orderID, err)
			return
		}

		emailItems := make([]services.OrderEmailItem, len(items))
		for i, it := range items {
			emailItems[i] = services.OrderEmailItem{
				ProductName: it.ProductName,
				Quantity:    it.Quantity,
				Price:       it.Price,
				Subtotal:    it.Subtotal,
			}
		}

		data := services.OrderConfirmationEmailData{
			CustomerName:  customer.Name,
			CustomerEmail: customer.Email,
			OrderNumber:   order.OrderNumber,
			OrderDate:     order.CreatedAt.Format("Jan 02, 2006"),
			PaymentMethod: order.PaymentMethod,
			AddressLine:   addressLineFromSnapshot(order.AddressSnapshot),
			Items:         emailItems,
			Subtotal:      order.Subtotal,
			Discount:      order.Discount,
			CGST:          order.CGST,
			SGST:          order.SGST,
			IGST:          order.IGST,
			ShippingCost:  order.ShippingCost,
			CODFee:        order.CODFee,
			TotalAmount:   order.TotalAmount,
		}

		if err := services.NewResendClient().SendOrderConfirmationEmail(data); err != nil {
			log.Printf("[checkout.email] failed to send confirmation for order %s: %v", orderID, err)
		}
	}()
}

func addressLineFromSnapshot(snapshot *string) string {
	if snapshot == nil || *snapshot == "" {
		return ""
	}
	var a map[string]string
	if err := json.Unmarshal([]byte(*snapshot), &a); err != nil {
		return ""
	}
	return fmt.Sprintf("%s, %s, %s %s", a["street"], a["city"], a["state"], a["pincode"])
}
