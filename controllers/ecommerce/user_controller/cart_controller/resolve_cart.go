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

type resolveCartResponse struct {
	Result models.ResolveResult `json:"result"`
	Cart   models.CartSnapshot  `json:"cart"`
}

// ResolveCart godoc
// @Summary Resolve cart issues
// @Description Remove everything blocking checkout in one action: all inactive items and the inactive coupon, issued concurrently. On partial failure the response reports exactly what failed; nothing is retried automatically — re-invoke to finish.
// @Tags User - Cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=resolveCartResponse}
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Failure 502 {object} models.ApiResponse "Partial resolution"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /user/cart/resolve [post]
func ResolveCart(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	svc := checkout.NewService(config.Gorm)
	result, err := svc.ResolveIssues(ctx, userID.(string))
	if err != nil && !errors.Is(err, checkout.ErrPartialResolution) {
		log.Printf("[user.cart.resolve] ERROR err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to resolve cart issues"))
		return
	}

	snap, snapErr := svc.ReconcileCart(ctx, userID.(string))
	if snapErr != nil {
		log.Printf("[user.cart.resolve] ERROR reconcile failed err=%v", snapErr)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch cart"))
		return
	}

	payload := resolveCartResponse{Result: result, Cart: snap}

	if errors.Is(err, checkout.ErrPartialResolution) {
		log.Printf("[user.cart.resolve] partial: removed=%d failed=%d couponRemoved=%v couponFailed=%v",
			len(result.RemovedItems), len(result.FailedItems), result.CouponRemoved, result.CouponFailed)
		c.JSON(http.StatusBadGateway, models.ApiResponse{
			Message:         "Some cart issues could not be resolved, please retry",
			Error:           true,
			Data:            payload,
			RequestedEntity: c.Request.Method + " " + c.FullPath(),
		})
		return
	}

	log.Printf("[user.cart.resolve] complete: removed=%d couponRemoved=%v",
		len(result.RemovedItems), result.CouponRemoved)

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Cart issues resolved", payload))
}
