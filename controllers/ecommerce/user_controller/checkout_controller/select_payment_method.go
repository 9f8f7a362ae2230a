package checkout_controller

import (
	"log"
	"net/http"

	"github.com/Vastrika-Ecommerce/vastrika-backend/config"
	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
	"github.com/gin-gonic/gin"
)

type selectPaymentMethodRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required,oneof=cod card upi netbanking"`
}

// SelectPaymentMethod godoc
// @Summary Select payment method
// @Description Record the payment method on the payment step. COD adds its fee to the final bill at order placement.
// @Tags User - Checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body selectPaymentMethodRequest true "Payment method"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse "Bad request"
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Failure 409 {object} models.ApiResponse "Wrong step"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /user/checkout/payment-method [post]
func SelectPaymentMethod(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	var req selectPaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	store := newSessionStore()
	session, err := store.Load(ctx, userID.(string))
	if err != nil {
		log.Printf("[user.checkout.payment-method] ERROR session load err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to load checkout session"))
		return
	}

	if err := session.SelectPaymentMethod(req.PaymentMethod); err != nil {
		c.JSON(http.StatusConflict, models.ErrorResponse(c, "Payment method can only be selected on the payment step"))
		return
	}

	if err := store.Save(ctx, session); err != nil {
		log.Printf("[user.checkout.payment-method] ERROR session save err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to save checkout session"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Payment method selected", session))
}
