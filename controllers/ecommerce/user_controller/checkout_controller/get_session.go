package checkout_controller

import (
	"log"
	"net/http"

	"github.com/Vastrika-Ecommerce/vastrika-backend/config"
	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
	"github.com/gin-gonic/gin"
)

type sessionResponse struct {
	Session interface{}         `json:"session"`
	Cart    models.CartSnapshot `json:"cart"`
}

// GetCheckoutSession godoc
// @Summary Get checkout session
// @Description Retrieve the current checkout session (step, selections) alongside the freshly reconciled cart. A new session starts at the address step.
// @Tags User - Checkout
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=sessionResponse}
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /user/checkout [get]
func GetCheckoutSession(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	session, err := newSessionStore().Load(ctx, userID.(string))
	if err != nil {
		log.Printf("[user.checkout.session] ERROR load failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to load checkout session"))
		return
	}

	snap, err := newCheckoutService().ReconcileCart(ctx, userID.(string))
	if err != nil {
		log.Printf("[user.checkout.session] ERROR reconcile failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch cart"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Checkout session retrieved", sessionResponse{
		Session: session,
		Cart:    snap,
	}))
}
