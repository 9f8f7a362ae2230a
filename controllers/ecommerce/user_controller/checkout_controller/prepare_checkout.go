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

// PrepareCheckout godoc
// @Summary Prepare checkout
// @Description Select a delivery address and compute the authoritative bill: item lines with stock-clamped quantities, coupon discount, CGST/SGST vs IGST by delivery state, shipping (free at or above the threshold), optional COD fee and rupee rounding. Advances the session to the summary step. Fails while the cart has unresolved blocking issues.
// @Tags User - Checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.PrepareCheckoutRequest true "Address selection"
// @Success 200 {object} models.ApiResponse{data=models.BillBreakdown}
// @Failure 400 {object} models.ApiResponse "Bad request"
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Failure 404 {object} models.ApiResponse "Address not found"
// @Failure 409 {object} models.ApiResponse "Cart empty or blocking issues"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /user/checkout/prepare [post]
func PrepareCheckout(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	var req models.PrepareCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	bill, err := newCheckoutService().PrepareCheckout(ctx, userID.(string), req.AddressID, req.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrAddressNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Address not found"))
		case errors.Is(err, checkout.ErrAddressNotOwned):
			c.JSON(http.StatusForbidden, models.ErrorResponse(c, "Address does not belong to you"))
		case errors.Is(err, checkout.ErrBlockingIssues):
			c.JSON(http.StatusConflict, models.ErrorResponse(c, "Resolve cart issues before checkout"))
		case errors.Is(err, checkout.ErrCartEmpty):
			c.JSON(http.StatusConflict, models.ErrorResponse(c, "Cart is empty"))
		default:
			log.Printf("[user.checkout.prepare] ERROR err=%v", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to prepare checkout"))
		}
		return
	}

	// Advance the session: address selected, bill computed, on to summary.
	store := newSessionStore()
	session, err := store.Load(ctx, userID.(string))
	if err != nil {
		log.Printf("[user.checkout.prepare] ERROR session load err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to load checkout session"))
		return
	}
	if session.Step != models.StepAddress {
		// Re-preparing from summary/payment restarts the flow.
		session = checkout.NewSession(userID.(string))
	}
	if err := session.SelectAddress(req.AddressID); err == nil {
		session.CheckoutData = &bill
		if err := session.ToSummary(); err != nil {
			log.Printf("[user.checkout.prepare] WARN step advance err=%v", err)
		}
	}
	if err := store.Save(ctx, session); err != nil {
		log.Printf("[user.checkout.prepare] ERROR session save err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to save checkout session"))
		return
	}

	if bill.OrderChanged {
		log.Printf("[user.checkout.prepare] quantities adjusted user=%s adjustments=%d", userID, len(bill.Adjustments))
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Checkout prepared", bill))
}
