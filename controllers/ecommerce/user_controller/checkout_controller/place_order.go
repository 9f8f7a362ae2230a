package checkout_controller

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/Vastrika-Ecommerce/vastrika-backend/checkout"
	"github.com/Vastrika-Ecommerce/vastrika-backend/config"
	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
	"github.com/gin-gonic/gin"
)

// PlaceOrder godoc
// @Summary Place an order
// @Description Run one order-creation attempt for one explicit tap. COD creates the order synchronously and returns a 30-minute order-access token. Online methods return a payment URL; the order is only created when the payment page reports completion. Failures surface to the user — there is no automatic retry.
// @Tags User - Checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.PlaceOrderRequest true "Order placement"
// @Success 200 {object} models.ApiResponse{data=models.PlaceOrderResponse}
// @Failure 400 {object} models.ApiResponse "Bad request"
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Failure 403 {object} models.ApiResponse "Address not owned"
// @Failure 404 {object} models.ApiResponse "Address not found"
// @Failure 409 {object} models.ApiResponse "Cart empty or blocking issues"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /user/checkout/place-order [post]
func PlaceOrder(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	var req models.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	resp, pending, err := newCheckoutService().PlaceOrder(ctx, userID.(string), req)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrAddressNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Address not found"))
		case errors.Is(err, checkout.ErrAddressNotOwned):
			c.JSON(http.StatusForbidden, models.ErrorResponse(c, "Address does not belong to you"))
		case errors.Is(err, checkout.ErrBlockingIssues):
			c.JSON(http.StatusConflict, models.ErrorResponse(c, "Resolve cart issues before placing the order"))
		case errors.Is(err, checkout.ErrCartEmpty):
			c.JSON(http.StatusConflict, models.ErrorResponse(c, "Cart is empty"))
		default:
			log.Printf("[user.checkout.place-order] ERROR user=%s err=%v", userID, err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, err.Error()))
		}
		return
	}

	tokens := newTokenStore()

	// Online payment: park the handoff and point the client at the
	// payment page. No order exists yet.
	if pending != nil {
		if err := tokens.SavePendingPayment(ctx, *pending); err != nil {
			log.Printf("[user.checkout.place-order] ERROR save pending payment err=%v", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to initiate payment"))
			return
		}
		resp.PaymentURL = paymentPageURL(pending.Ref)
		log.Printf("✅ [user.checkout.place-order] payment handoff user=%s ref=%s amount=%.2f", userID, pending.Ref, pending.Amount)
		c.JSON(http.StatusOK, models.SuccessResponse(c, "Redirect to payment", resp))
		return
	}

	// COD: the order exists now. Mint the confirmation-page tokens and
	// finish the session.
	if token, err := tokens.GrantOrderAccess(ctx, resp.OrderID, userID.(string)); err != nil {
		log.Printf("[user.checkout.place-order] WARN grant access token err=%v", err)
	} else {
		resp.AccessToken = token
	}
	if err := tokens.StoreOrderData(ctx, userID.(string), resp); err != nil {
		log.Printf("[user.checkout.place-order] WARN store order data err=%v", err)
	}

	store := newSessionStore()
	if session, err := store.Load(ctx, userID.(string)); err == nil {
		session.MarkPlaced(&resp)
		if err := store.Save(ctx, session); err != nil {
			log.Printf("[user.checkout.place-order] WARN session save err=%v", err)
		}
	}

	sendOrderConfirmation(resp.OrderID)

	log.Printf("✅ [user.checkout.place-order] order placed user=%s order=%s total=%.2f", userID, resp.OrderNumber, resp.TotalAmount)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Order placed successfully", resp))
}

func paymentPageURL(ref string) string {
	base := os.Getenv("PAYMENT_PAGE_URL")
	if base == "" {
		base = "https://pay.vastrika.in/checkout"
	}
	return base + "?ref=" + ref
}
