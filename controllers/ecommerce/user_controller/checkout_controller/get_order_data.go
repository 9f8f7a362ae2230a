package checkout_controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/Vastrika-Ecommerce/vastrika-backend/config"
	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// GetOrderData godoc
// @Summary Get post-placement order data
// @Description Return the order payload cached for the confirmation page after payment redirect. The payload lives for five minutes; after that the page falls back to the order-detail endpoint with its access token.
// @Tags User - Checkout
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=models.PlaceOrderResponse}
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Failure 404 {object} models.ApiResponse "No recent order data"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /user/checkout/order-data [get]
func GetOrderData(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	order, err := newTokenStore().FetchOrderData(ctx, userID.(string))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Order data expired or not found"))
			return
		}
		log.Printf("[user.checkout.order-data] ERROR user=%s err=%v", userID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch order data"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Order data retrieved", order))
}
