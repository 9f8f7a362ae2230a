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

// UpdateOrderStatus godoc
// @Summary Update order status (CMS)
// @Description Update an order status. admin_notes is optional for all statuses, but required when status is cancelled (cancellation reason). Returned orders are handled by the dedicated return endpoint.
// @Tags Admin - Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID (UUID)"
// @Param payload body models.UpdateOrderStatusRequest true "Update payload"
// @Success 200 {object} models.ApiResponse{data=models.UpdateOrderStatusResponse}
// @Failure 400 {object} models.ApiResponse "Bad request"
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Failure 404 {object} models.ApiResponse "Order not found"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /admin/orders/{id}/status [patch]
func UpdateOrderStatus(c *gin.Context) {
	log.Printf("[admin.order.update] start path=%s method=%s", c.FullPath(), c.Request.Method)

	orderIDStr := strings.TrimSpace(c.Param("id"))
	orderID, err := uuid.Parse(orderIDStr)
	if err != nil {
		log.Printf("[admin.order.update] bad request: invalid order id")
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid order ID"))
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[admin.order.update] bad request: bind json err=%v", err)
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
		return
	}

	req.Status = strings.TrimSpace(strings.ToLower(req.Status))

	// admin_notes supported for all statuses, but required for cancelled
	if req.Status == models.OrderStatusCancelled {
		if req.AdminNotes == nil || strings.TrimSpace(*req.AdminNotes) == "" {
			log.Printf("[admin.order.update] bad request: cancelled without admin_notes")
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "admin_notes is required when cancelling an order"))
			return
		}
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	q := `
		UPDATE orders
		SET
			status = ?::text,
			admin_notes = CASE
				WHEN ?::text IS NULL THEN admin_notes
				ELSE ?::text
			END,
			updated_at = NOW(),
			shipped_at = CASE
				WHEN ?::text = 'shipped' AND shipped_at IS NULL THEN NOW()
				ELSE shipped_at
			END,
			delivered_at = CASE
				WHEN ?::text = 'delivered' AND delivered_at IS NULL THEN NOW()
				ELSE delivered_at
			END
		WHERE id = ? AND status NOT IN ('returned')
		RETURNING id::text AS id, order_number, status, admin_notes
	`

	log.Printf("[admin.order.update] orderID=%s newStatus=%s adminNotesProvided=%v",
		orderID, req.Status, req.AdminNotes != nil)

	var out models.UpdateOrderStatusResponse
	err = config.Gorm.WithContext(ctx).Raw(
		q,
		req.Status,
		req.AdminNotes,
		req.AdminNotes,
		req.Status,
		req.Status,
		orderID,
	).Scan(&out).Error
	if err != nil {
		log.Printf("[admin.order.update] ERROR update failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update order"))
		return
	}

	// Check if order was found
	if out.OrderNumber == "" {
		log.Printf("[admin.order.update] order not found id=%s", orderID)
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Order not found"))
		return
	}

	report_cache.Invalidate()

	log.Printf("[admin.order.update] success order_number=%s status=%s", out.OrderNumber, out.Status)

	c.JSON(http.StatusOK, models.SuccessResponse(
		c,
		"Order updated successfully",
		out,
	))
}
