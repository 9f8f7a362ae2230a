package cart_controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/Vastrika-Ecommerce/vastrika-backend/checkout"
	"github.com/Vastrika-Ecommerce/vastrika-backend/config"
	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type updateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"min=0,max=20"`
}

// UpdateCartItem godoc
// @Summary Update cart item quantity
// @Description Set the quantity of one cart line. Quantity 0 removes the line.
// @Tags User - Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cart item ID (UUID)"
// @Param payload body updateCartItemRequest true "Quantity payload"
// @Success 200 {object} models.ApiResponse{data=models.CartSnapshot}
// @Failure 400 {object} models.ApiResponse "Bad request"
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Failure 404 {object} models.ApiResponse "Cart item not found"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /user/cart/items/{id} [patch]
func UpdateCartItem(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	itemID := c.Param("id")
	if _, err := uuid.Parse(itemID); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid cart item ID"))
		return
	}

	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	svc := checkout.NewService(config.Gorm)
	if err := svc.UpdateItemQuantity(ctx, userID.(string), itemID, req.Quantity); err != nil {
		if errors.Is(err, checkout.ErrCartItemNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Cart item not found"))
			return
		}
		log.Printf("[user.cart.update] ERROR err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update cart item"))
		return
	}

	snap, err := svc.ReconcileCart(ctx, userID.(string))
	if err != nil {
		log.Printf("[user.cart.update] ERROR reconcile failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch cart"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Cart item updated", snap))
}
