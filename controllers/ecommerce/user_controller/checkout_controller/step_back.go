package checkout_controller

import (
	"log"
	"net/http"

	"github.com/Vastrika-Ecommerce/vastrika-backend/config"
	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
	"github.com/gin-gonic/gin"
)

// StepBack godoc
// @Summary Go back one checkout step
// @Description Move the session backward. State computed by the abandoned step is cleared: the payment-method selection never survives a backward move, and leaving summary also discards the computed bill.
// @Tags User - Checkout
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Failure 409 {object} models.ApiResponse "Already at the first step"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /user/checkout/back [post]
func StepBack(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	store := newSessionStore()
	session, err := store.Load(ctx, userID.(string))
	if err != nil {
		log.Printf("[user.checkout.back] ERROR session load err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to load checkout session"))
		return
	}

	if err := session.Back(); err != nil {
		c.JSON(http.StatusConflict, models.ErrorResponse(c, "Cannot go back from the address step"))
		return
	}

	if err := store.Save(ctx, session); err != nil {
		log.Printf("[user.checkout.back] ERROR session save err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to save checkout session"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Moved back a step", session))
}
