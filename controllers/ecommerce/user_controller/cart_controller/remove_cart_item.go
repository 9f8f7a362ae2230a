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

// RemoveCartItem godoc
// @Summary Remove cart item
// @Description Delete one line from the cart.
// @Tags User - Cart
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cart item ID (UUID)"
// @Success 200 {object} models.ApiResponse{data=models.CartSnapshot}
// @Failure 400 {object} models.ApiResponse "Bad request"
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Failure 404 {object} models.ApiResponse "Cart item not found"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /user/cart/items/{id} [delete]
func RemoveCartItem(c *gin.Context) {
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

	ctx, cancel := config.WithTimeout()
	defer cancel()

	svc := checkout.NewService(config.Gorm)
	if err := svc.RemoveItem(ctx, userID.(string), itemID); err != nil {
		if errors.Is(err, checkout.ErrCartItemNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Cart item not found"))
			return
		}
		log.Printf("[user.cart.remove] ERROR err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to remove cart item"))
		return
	}

	snap, err := svc.ReconcileCart(ctx, userID.(string))
	if err != nil {
		log.Printf("[user.cart.remove] ERROR reconcile failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch cart"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Item removed from cart", snap))
}
