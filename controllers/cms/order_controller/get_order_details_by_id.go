package order_controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/Vastrika-Ecommerce/vastrika-backend/config"
	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderDetailsByID godoc
// @Summary Get order details (CMS)
// @Description Retrieve one order with its line items and customer info.
// @Tags Admin - Orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID (UUID)"
// @Success 200 {object} models.ApiResponse{data=models.OrderWithItems}
// @Failure 400 {object} models.ApiResponse "Invalid order ID"
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Failure 404 {object} models.ApiResponse "Order not found"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /admin/orders/{id} [get]
func GetOrderDetailsByID(c *gin.Context) {
	orderID := c.Param("id")
	log.Printf("[admin.order.details] start id=%s", orderID)

	if _, err := uuid.Parse(orderID); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid order ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var order models.Order
	if err := config.Gorm.WithContext(ctx).
		Where("id = ?", orderID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[admin.order.details] order not found id=%s", orderID)
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Order not found"))
			return
		}
		log.Printf("[admin.order.details] ERROR fetch failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch order"))
		return
	}

	var items []models.OrderItem
	if err := config.Gorm.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		log.Printf("[admin.order.details] ERROR fetch items failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch order items"))
		return
	}

	log.Printf("[admin.order.details] done id=%s items=%d", orderID, len(items))

	c.JSON(http.StatusOK, models.SuccessResponse(
		c,
		"Order retrieved successfully",
		models.OrderWithItems{Order: order, Items: items},
	))
}
