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

// PaymentCallback godoc
// @Summary Complete an online payment
// @Description Posted by the payment page when a payment finishes. A completed outcome creates the order with payment recorded as paid; a failed outcome creates nothing and the user retries from checkout. Each payment ref completes at most once.
// @Tags User - Checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.PaymentCallbackRequest true "Payment outcome"
// @Success 200 {object} models.ApiResponse{data=models.PlaceOrderResponse}
// @Failure 400 {object} models.ApiResponse "Bad request"
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Failure 402 {object} models.ApiResponse "Payment failed"
// @Failure 404 {object} models.ApiResponse "Unknown or expired payment ref"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /user/checkout/payment-callback [post]
func PaymentCallback(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	var req models.PaymentCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	tokens := newTokenStore()

	pp, err := tokens.TakePendingPayment(ctx, req.PaymentRef)
	if err != nil {
		if errors.Is(err, checkout.ErrPaymentNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Payment not found or expired"))
			return
		}
		log.Printf("[user.checkout.payment-callback] ERROR take pending payment err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to process payment"))
		return
	}
	if pp.UserID != userID.(string) {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Payment not found or expired"))
		return
	}

	resp, err := newCheckoutService().CompletePayment(ctx, *pp, req.Outcome)
	if err != nil {
		if errors.Is(err, checkout.ErrPaymentFailed) {
			log.Printf("⚠️ [user.checkout.payment-callback] payment failed user=%s ref=%s", userID, pp.Ref)
			c.JSON(http.StatusPaymentRequired, models.ErrorResponse(c, "Payment failed. No order was placed."))
			return
		}
		log.Printf("[user.checkout.payment-callback] ERROR user=%s err=%v", userID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, err.Error()))
		return
	}

	if token, err := tokens.GrantOrderAccess(ctx, resp.OrderID, userID.(string)); err != nil {
		log.Printf("[user.checkout.payment-callback] WARN grant access token err=%v", err)
	} else {
		resp.AccessToken = token
	}
	if err := tokens.StoreOrderData(ctx, userID.(string), resp); err != nil {
		log.Printf("[user.checkout.payment-callback] WARN store order data err=%v", err)
	}

	store := newSessionStore()
	if session, err := store.Load(ctx, userID.(string)); err == nil {
		session.MarkPlaced(&resp)
		if err := store.Save(ctx, session); err != nil {
			log.Printf("[user.checkout.payment-callback] WARN session save err=%v", err)
		}
	}

	sendOrderConfirmation(resp.OrderID)

	log.Printf("✅ [user.checkout.payment-callback] order placed user=%s order=%s total=%.2f", userID, resp.OrderNumber, resp.TotalAmount)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Payment completed, order placed", resp))
}
