package cart_controller

import (
	"log"
	"net/http"

	"github.com/Vastrika-Ecommerce/vastrika-backend/checkout"
	"github.com/Vastrika-Ecommerce/vastrika-backend/config"
	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
	"github.com/gin-gonic/gin"
)

// GetCart godoc
// @Summary Get cart
// @Description Retrieve the user's reconciled cart. Every line item is classified as active, inactive (product no longer purchasable) or invalid (product gone); the applied coupon is re-validated on every call. When anything blocks checkout, the response carries a resolution prompt.
// @Tags User - Cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=models.CartSnapshot}
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /user/cart [get]
func GetCart(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	snap, err := checkout.NewService(config.Gorm).ReconcileCart(ctx, userID.(string))
	if err != nil {
		log.Printf("[user.cart.get] ERROR reconcile failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch cart"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Cart retrieved successfully", snap))
}
