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

// MarkOrderReturned godoc
// @Summary Mark order as returned (CMS)
// @Description Mark a delivered order as returned with a reason. The refund amount defaults to the order total; payment status moves to refunded. Returned orders feed the refund statistics.
// @Tags Admin - Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID (UUID)"
// @Param payload body models.MarkOrderReturnedRequest true "Return payload"
// @Success 200 {object} models.ApiResponse{data=models.UpdateOrderStatusResponse}
// @Failure 400 {object} models.ApiResponse "Bad request"
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Failure 404 {object} models.ApiResponse "Order not found or not delivered"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /admin/orders/{id}/return [post]
func MarkOrderReturned(c *gin.Context) {
	orderIDStr := strings.TrimSpace(c.Param("id"))
	orderID, err := uuid.Parse(orderIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid order ID"))
		return
	}

	var req models.MarkOrderReturnedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[admin.order.return] bad request: bind json err=%v", err)
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body: reason is required"))
		return
	}

	if req.RefundAmount != nil && *req.RefundAmount < 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "refund_amount cannot be negative"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	// Only delivered orders can be returned. Refund defaults to the
	// order total when no explicit amount is given.
	q := `
		UPDATE orders
		SET
			status = 'returned',
			return_reason = ?::text,
			refund_amount = COALESCE(?::numeric, total_amount),
			payment_status = 'refunded',
			admin_notes = COALESCE(?::text, admin_notes),
			returned_at = NOW(),
			updated_at = NOW()
		WHERE id = ? AND status = 'delivered'
		RETURNING id::text AS id, order_number, status, admin_notes
	`

	log.Printf("[admin.order.return] orderID=%s reason=%q refundOverride=%v", orderID, req.Reason, req.RefundAmount != nil)

	var out models.UpdateOrderStatusResponse
	err = config.Gorm.WithContext(ctx).Raw(
		q,
		strings.TrimSpace(req.Reason),
		req.RefundAmount,
		req.AdminNotes,
		orderID,
	).Scan(&out).Error
	if err != nil {
		log.Printf("[admin.order.return] ERROR update failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to mark order as returned"))
		return
	}

	if out.OrderNumber == "" {
		log.Printf("[admin.order.return] not found or not delivered id=%s", orderID)
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Order not found or not in delivered state"))
		return
	}

	report_cache.Invalidate()

	log.Printf("[admin.order.return] success order_number=%s", out.OrderNumber)

	c.JSON(http.StatusOK, models.SuccessResponse(
		c,
		"Order marked as returned",
		out,
	))
}
