package cart_controller

import (
	"log"
	"net/http"

	"github.com/Vastrika-Ecommerce/vastrika-backend/checkout"
	"github.com/Vastrika-Ecommerce/vastrika-backend/config"
	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
	"github.com/gin-gonic/gin"
)

// RemoveCoupon godoc
// @Summary Remove coupon
// @Description Detach the applied coupon from the cart.
// @Tags User - Cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=models.CartSnapshot}
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /user/cart/coupon [delete]
func RemoveCoupon(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	svc := checkout.NewService(config.Gorm)
	if err := svc.RemoveCoupon(ctx, userID.(string)); err != nil {
		log.Printf("[user.cart.coupon.remove] ERROR err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to remove coupon"))
		return
	}

	snap, err := svc.ReconcileCart(ctx, userID.(string))
	if err != nil {
		log.Printf("[user.cart.coupon.remove] ERROR reconcile failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch cart"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Coupon removed", snap))
}
