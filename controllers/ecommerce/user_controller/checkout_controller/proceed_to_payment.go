package checkout_controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/Vastrika-Ecommerce/vastrika-backend/checkout"
	"github.com/Vastrika-Ecommerce/vastrika-backend/config"
	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
	"github.com/gin-gonic/gin"
)

// ProceedToPayment godoc
// @Summary Proceed to payment step
// @Description Advance the checkout session from summary to payment. The cart is re-reconciled first; any blocking issue halts the advance.
// @Tags User - Checkout
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Failure 409 {object} models.ApiResponse "Blocking issues or wrong step"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /user/checkout/proceed [post]
func ProceedToPayment(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	snap, err := newCheckoutService().ReconcileCart(ctx, userID.(string))
	if err != nil {
		log.Printf("[user.checkout.proceed] ERROR reconcile failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch cart"))
		return
	}

	store := newSessionStore()
	session, err := store.Load(ctx, userID.(string))
	if err != nil {
		log.Printf("[user.checkout.proceed] ERROR session load err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to load checkout session"))
		return
	}

	if err := session.ToPayment(snap.Blocking); err != nil {
		switch {
		case errors.Is(err, checkout.ErrBlockingIssues):
			c.JSON(http.StatusConflict, models.ErrorResponse(c, "Resolve cart issues before payment"))
		default:
			c.JSON(http.StatusConflict, models.ErrorResponse(c, "Prepare checkout before proceeding to payment"))
		}
		return
	}

	if err := store.Save(ctx, session); err != nil {
		log.Printf("[user.checkout.proceed] ERROR session save err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to save checkout session"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Proceeded to payment", session))
}
