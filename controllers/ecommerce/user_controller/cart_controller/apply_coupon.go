package cart_controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/Vastrika-Ecommerce/vastrika-backend/checkout"
	"github.com/Vastrika-Ecommerce/vastrika-backend/config"
	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
	"github.com/gin-gonic/gin"
)

// ApplyCoupon godoc
// @Summary Apply coupon
// @Description Validate a coupon against the current cart and pin it. The coupon is re-validated on every later cart read, so applying it now does not guarantee it at checkout.
// @Tags User - Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.ApplyCouponRequest true "Coupon payload"
// @Success 200 {object} models.ApiResponse{data=models.CartSnapshot}
// @Failure 400 {object} models.ApiResponse "Bad request"
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Failure 404 {object} models.ApiResponse "Coupon not found"
// @Failure 409 {object} models.ApiResponse "Coupon cannot be applied"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /user/cart/coupon [post]
func ApplyCoupon(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	var req models.ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	svc := checkout.NewService(config.Gorm)
	info, err := svc.ApplyCoupon(ctx, userID.(string), req.Code)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrCouponNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Coupon not found"))
		case errors.Is(err, checkout.ErrCouponNotApplicable):
			msg := "Coupon cannot be applied"
			if info != nil && info.Reason != "" {
				msg = "Coupon cannot be applied: " + info.Reason
			}
			c.JSON(http.StatusConflict, models.ErrorResponse(c, msg))
		default:
			log.Printf("[user.cart.coupon] ERROR err=%v", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to apply coupon"))
		}
		return
	}

	snap, err := svc.ReconcileCart(ctx, userID.(string))
	if err != nil {
		log.Printf("[user.cart.coupon] ERROR reconcile failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch cart"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Coupon applied", snap))
}
