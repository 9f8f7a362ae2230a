package order_controller

import (
	"log"
	"net/http"

	"github.com/Vastrika-Ecommerce/vastrika-backend/checkout"
	"github.com/Vastrika-Ecommerce/vastrika-backend/config"
	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetOrderDetails godoc
// @Summary Get order details
// @Description Retrieve complete order details including all items. A post-purchase access token (?token=) grants access for 30 minutes; otherwise the order must belong to the authenticated user.
// @Tags User - Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param token query string false "Post-purchase access token"
// @Success 200 {object} models.ApiResponse{data=models.OrderWithItems}
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Failure 403 {object} models.ApiResponse "Permission denied"
// @Failure 404 {object} models.ApiResponse "Order not found"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /user/orders/{id} [get]
func GetOrderDetails(c *gin.Context) {
	userIDStr, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid user ID"))
		return
	}

	orderIDStr := c.Param("id")
	orderID, err := uuid.Parse(orderIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid order ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	// An unexpired access token for this order overrides the ownership
	// check; it expires 30 minutes after purchase.
	tokenGranted := false
	if token := c.Query("token"); token != "" {
		store := checkout.NewTokenStore(config.RedisClient)
		tokenOrderID, _, err := store.ResolveOrderAccess(ctx, token)
		if err == nil && tokenOrderID == orderID.String() {
			tokenGranted = true
		} else {
			log.Printf("[user.order.details] access token rejected for order %s", orderID)
		}
	}

	// Get order details using raw SQL (to handle all nullable fields properly)
	var order models.Order
	err = config.Gorm.WithContext(ctx).Raw(`
		SELECT
			id::text AS id,
			user_id::text AS user_id,
			order_number,
			status,
			payment_method,
			payment_status,
			address_id::text AS address_id,
			address_snapshot,
			state,
			city,
			pincode,
			subtotal,
			cgst,
			sgst,
			igst,
			shipping_cost,
			cod_fee,
			discount,
			coupon_code,
			round_off,
			total_amount,
			refund_amount,
			return_reason,
			customer_notes,
			created_at,
			updated_at,
			shipped_at,
			delivered_at,
			returned_at,
			payment_at
		FROM orders
		WHERE id = ?
	`, orderID).Scan(&order).Error
	if err != nil {
		log.Printf("❌ Failed to fetch order: %v", err)
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Order not found"))
		return
	}

	if order.OrderNumber == "" {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Order not found"))
		return
	}

	// Verify ownership unless a valid token was presented
	if !tokenGranted && order.UserID != userID.String() {
		c.JSON(http.StatusForbidden, models.ErrorResponse(c, "Permission denied"))
		return
	}

	// Get order items
	var items []models.OrderItem
	err = config.Gorm.WithContext(ctx).Raw(`
		SELECT
			id::text AS id,
			order_id::text AS order_id,
			user_id::text AS user_id,
			product_id::text AS product_id,
			product_name,
			price,
			quantity,
			subtotal,
			status,
			created_at,
			updated_at
		FROM order_items
		WHERE order_id = ?
		ORDER BY created_at ASC
	`, orderID).Scan(&items).Error
	if err != nil {
		log.Printf("❌ Failed to fetch order items: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch order items"))
		return
	}

	orderWithItems := models.OrderWithItems{
		Order: order,
		Items: items,
	}

	log.Printf("✅ Fetched order %s with %d items", order.OrderNumber, len(items))

	c.JSON(http.StatusOK, models.SuccessResponse(
		c,
		"Order details retrieved successfully",
		orderWithItems,
	))
}
