package services

import (
	"fmt"
	"log"
	"strings"
)

// OrderConfirmationEmailData holds data for the order confirmation email
type OrderConfirmationEmailData struct {
	CustomerName  string
	CustomerEmail string
	OrderNumber   string
	OrderDate     string
	PaymentMethod string
	AddressLine   string
	Items         []OrderEmailItem
	Subtotal      float64
	Discount      float64
	CGST          float64
	SGST          float64
	IGST          float64
	ShippingCost  float64
	CODFee        float64
	TotalAmount   float64
}

// OrderEmailItem represents a line item in the confirmation email
type OrderEmailItem struct {
	ProductName string
	Quantity    int
	Price       float64
	Subtotal    float64
}

// SendOrderConfirmationEmail sends the order confirmation via Resend
func (r *ResendClient) SendOrderConfirmationEmail(data OrderConfirmationEmailData) error {
	// Build item rows
	var itemsRows strings.Builder
	for _, item := range data.Items {
		itemsRows.WriteString(fmt.Sprintf(`
      <tr>
        <td style="padding: 8px 0; font-size: 14px; color: #262622;">%s</td>
        <td style="padding: 8px 0; font-size: 14px; text-align: right; color: #262622;">%d</td>
        <td style="padding: 8px 0; font-size: 14px; text-align: right; color: #262622;">₹%.2f</td>
        <td style="padding: 8px 0; font-size: 14px; text-align: right; font-weight: 600; color: #262622;">₹%.2f</td>
      </tr>
    `, item.ProductName, item.Quantity, item.Price, item.Subtotal))
	}

	// Optional charge rows
	var chargeRows strings.Builder
	if data.Discount > 0 {
		chargeRows.WriteString(fmt.Sprintf(summaryRow, "Discount", fmt.Sprintf("-₹%.2f", data.Discount)))
	}
	if data.CGST > 0 {
		chargeRows.WriteString(fmt.Sprintf(summaryRow, "CGST (9%)", fmt.Sprintf("₹%.2f", data.CGST)))
		chargeRows.WriteString(fmt.Sprintf(summaryRow, "SGST (9%)", fmt.Sprintf("₹%.2f", data.SGST)))
	}
	if data.IGST > 0 {
		chargeRows.WriteString(fmt.Sprintf(summaryRow, "IGST (18%)", fmt.Sprintf("₹%.2f", data.IGST)))
	}
	if data.ShippingCost > 0 {
		chargeRows.WriteString(fmt.Sprintf(summaryRow, "Shipping", fmt.Sprintf("₹%.2f", data.ShippingCost)))
	} else {
		chargeRows.WriteString(fmt.Sprintf(summaryRow, "Shipping", "FREE"))
	}
	if data.CODFee > 0 {
		chargeRows.WriteString(fmt.Sprintf(summaryRow, "COD Fee", fmt.Sprintf("₹%.2f", data.CODFee)))
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Order Confirmed - %s</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', 'Roboto', sans-serif; background-color: #fafaf7; line-height: 1.5; padding: 16px;">
  <table width="100%%" cellpadding="0" cellspacing="0" border="0" style="max-width: 900px; margin: auto; background: #ffffff; padding: 24px;">
    <tr>
      <td style="border-bottom: 1px solid #e5e5e0; padding-bottom: 16px;">
        <h1 style="margin: 0; font-size: 30px; font-weight: bold; color: #262622;">ORDER CONFIRMED</h1>
      </td>
    </tr>

    <tr>
      <td style="padding: 16px 0;">
        <h2 style="margin: 0; font-size: 24px; font-weight: bold; color: #262622;">VASTRIKA</h2>
        <p style="margin: 4px 0; font-size: 14px; color: #79776d;">support@vastrika.in</p>
      </td>
    </tr>

    <tr>
      <td style="padding: 16px 0;">
        <table width="100%%" cellpadding="0" cellspacing="0" border="0">
          <tr>
            <td style="vertical-align: top;">
              <p style="margin: 0; font-size: 14px; font-weight: bold; color: #262622;">Deliver To</p>
              <p style="margin: 4px 0; font-size: 14px; color: #262622;">%s</p>
              <p style="margin: 4px 0; font-size: 14px; color: #79776d;">%s</p>
            </td>
            <td style="text-align: right; vertical-align: top;">
              <p style="margin: 0; font-size: 14px; color: #79776d;">Order Number</p>
              <p style="margin: 4px 0; font-size: 14px; font-weight: bold; color: #262622;">%s</p>
              <p style="margin: 8px 0 0 0; font-size: 14px; color: #79776d;">Order Date</p>
              <p style="margin: 4px 0; font-size: 14px; font-weight: bold; color: #262622;">%s</p>
              <p style="margin: 8px 0 0 0; font-size: 14px; color: #79776d;">Payment</p>
              <p style="margin: 4px 0; font-size: 14px; font-weight: bold; color: #262622;">%s</p>
            </td>
          </tr>
        </table>
      </td>
    </tr>

    <tr>
      <td style="padding: 16px 0; border-top: 1px solid #e5e5e0; border-bottom: 1px solid #e5e5e0;">
        <table width="100%%" cellpadding="0" cellspacing="0" border="0">
          <thead>
            <tr>
              <th style="text-align: left; font-size: 12px; text-transform: uppercase; color: #262622; padding-bottom: 8px;">Item</th>
              <th style="text-align: right; font-size: 12px; text-transform: uppercase; color: #262622; padding-bottom: 8px;">Qty</th>
              <th style="text-align: right; font-size: 12px; text-transform: uppercase; color: #262622; padding-bottom: 8px;">Price</th>
              <th style="text-align: right; font-size: 12px; text-transform: uppercase; color: #262622; padding-bottom: 8px;">Total</th>
            </tr>
          </thead>
          <tbody>
            %s
          </tbody>
        </table>
      </td>
    </tr>

    <tr>
      <td style="padding: 16px 0;">
        <table align="right" width="300" cellpadding="0" cellspacing="0" border="0">
          <tr>
            <td style="font-size: 14px; color: #79776d;">Subtotal</td>
            <td style="text-align: right; font-size: 14px; color: #262622;">₹%.2f</td>
          </tr>
          %s
          <tr>
            <td style="font-size: 14px; font-weight: bold; border-top: 1px solid #e5e5e0; padding-top: 8px;">Total</td>
            <td style="text-align: right; font-size: 16px; font-weight: bold; color: #262622; border-top: 1px solid #e5e5e0; padding-top: 8px;">₹%.2f</td>
          </tr>
        </table>
      </td>
    </tr>

    <tr>
      <td style="padding: 16px 0; border-top: 1px solid #e5e5e0;">
        <p style="font-size: 14px; font-weight: bold; color: #262622;">Thank you for shopping with us!</p>
        <p style="font-size: 14px; color: #79776d;">© 2026 Vastrika. All rights reserved.</p>
      </td>
    </tr>

  </table>
</body>
</html>
`, data.OrderNumber,
		data.CustomerName, data.AddressLine,
		data.OrderNumber, data.OrderDate, strings.ToUpper(data.PaymentMethod),
		itemsRows.String(),
		data.Subtotal,
		chargeRows.String(),
		data.TotalAmount,
	)

	payload := map[string]interface{}{
		"from":    r.from,
		"to":      data.CustomerEmail,
		"subject": fmt.Sprintf("Order %s confirmed", data.OrderNumber),
		"html":    htmlBody,
	}

	if err := r.send(payload); err != nil {
		return err
	}

	log.Printf("[resend] order confirmation sent to %s for order %s", data.CustomerEmail, data.OrderNumber)
	return nil
}

const summaryRow = `
    <tr>
      <td style="padding: 6px 0; font-size: 14px; color: #79776d;">%s</td>
      <td style="padding: 6px 0; font-size: 14px; text-align: right; color: #262622;">%s</td>
    </tr>
    `
