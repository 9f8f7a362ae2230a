package order_controller

import (
	"log"
	"net/http"
	"strings"

	report_cache "github.com/Vastrika-Ecommerce/vastrika-backend/cache"
	"github.com/Vastrika-Ecommerce/vastrika-backend/config"
	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MarkPaymentReceived godoc
// @Summary Mark payment received (CMS)
// @Description Confirm payment collection for an order with pending payment (typically COD on delivery). Records the collected amount against the order.
// @Tags Admin - Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID (UUID)"
// @Param payload body models.MarkPaymentReceivedRequest true "Payment payload"
// @Success 200 {object} models.ApiResponse{data=models.UpdateOrderStatusResponse}
// @Failure 400 {object} models.ApiResponse "Bad request"
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Failure 404 {object} models.ApiResponse "Order not found or payment not pending"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /admin/orders/{id}/payment-received [post]
func MarkPaymentReceived(c *gin.Context) {
	orderIDStr := strings.TrimSpace(c.Param("id"))
	orderID, err := uuid.Parse(orderIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid order ID"))
		return
	}

	var req models.MarkPaymentReceivedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[admin.order.payment] bad request: bind json err=%v", err)
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body: amount must be > 0"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	// The collected amount must match the order total; short or excess
	// collections need manual reconciliation, not a silent overwrite.
	q := `
		UPDATE orders
		SET
			payment_status = 'paid',
			payment_at = NOW(),
			admin_notes = COALESCE(?::text, admin_notes),
			updated_at = NOW()
		WHERE id = ? AND payment_status = 'pending' AND total_amount = ?::numeric
		RETURNING id::text AS id, order_number, status, admin_notes
	`

	log.Printf("[admin.order.payment] orderID=%s amount=%.2f", orderID, req.Amount)

	var out models.UpdateOrderStatusResponse
	err = config.Gorm.WithContext(ctx).Raw(
		q,
		req.Notes,
		orderID,
		req.Amount,
	).Scan(&out).Error
	if err != nil {
		log.Printf("[admin.order.payment] ERROR update failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to mark payment received"))
		return
	}

	if out.OrderNumber == "" {
		log.Printf("[admin.order.payment] not found, not pending, or amount mismatch id=%s amount=%.2f", orderID, req.Amount)
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Order not found, payment not pending, or amount does not match order total"))
		return
	}

	report_cache.Invalidate()

	log.Printf("[admin.order.payment] success order_number=%s", out.OrderNumber)

	c.JSON(http.StatusOK, models.SuccessResponse(
		c,
		"Payment marked as received",
		out,
	))
}
