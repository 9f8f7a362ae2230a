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

// AddCartItem godoc
// @Summary Add item to cart
// @Description Add a product to the cart, or increase its quantity if already present. The product must be active and the combined quantity must fit current stock.
// @Tags User - Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.AddCartItemRequest true "Item payload"
// @Success 200 {object} models.ApiResponse{data=models.CartSnapshot}
// @Failure 400 {object} models.ApiResponse "Bad request"
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Failure 404 {object} models.ApiResponse "Product not found"
// @Failure 409 {object} models.ApiResponse "Product unavailable or insufficient stock"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /user/cart/items [post]
func AddCartItem(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[user.cart.add] bad request: bind json err=%v", err)
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	svc := checkout.NewService(config.Gorm)
	if err := svc.AddItem(ctx, userID.(string), req.ProductID, req.Quantity); err != nil {
		switch {
		case errors.Is(err, checkout.ErrProductNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
		case errors.Is(err, checkout.ErrProductUnavailable):
			c.JSON(http.StatusConflict, models.ErrorResponse(c, "Product is not available"))
		case errors.Is(err, checkout.ErrInsufficientStock):
			c.JSON(http.StatusConflict, models.ErrorResponse(c, "Requested quantity exceeds available stock"))
		default:
			log.Printf("[user.cart.add] ERROR err=%v", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to add item to cart"))
		}
		return
	}

	snap, err := svc.ReconcileCart(ctx, userID.(string))
	if err != nil {
		log.Printf("[user.cart.add] ERROR reconcile failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch cart"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Item added to cart", snap))
}
