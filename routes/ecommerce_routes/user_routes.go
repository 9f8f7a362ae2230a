package ecommerce_routes

import (
	"github.com/Vastrika-Ecommerce/vastrika-backend/controllers/ecommerce/user_controller/address_controller"
	"github.com/Vastrika-Ecommerce/vastrika-backend/controllers/ecommerce/user_controller/cart_controller"
	"github.com/Vastrika-Ecommerce/vastrika-backend/controllers/ecommerce/user_controller/checkout_controller"
	"github.com/Vastrika-Ecommerce/vastrika-backend/controllers/ecommerce/user_controller/order_controller"
	"github.com/Vastrika-Ecommerce/vastrika-backend/middleware"
	"github.com/gin-gonic/gin"
)

// SetupUserRoutes sets up the cart, checkout, order and address routes.
func SetupUserRoutes(router *gin.RouterGroup) {
	user := router.Group("/user")
	user.Use(middleware.AuthMiddleware()) // All routes require auth
	{
		// Cart
		user.GET("/cart", cart_controller.GetCart)
		user.POST("/cart/items", cart_controller.AddCartItem)
		user.PATCH("/cart/items/:id", cart_controller.UpdateCartItem)
		user.DELETE("/cart/items/:id", cart_controller.RemoveCartItem)
		user.POST("/cart/coupon", cart_controller.ApplyCoupon)
		user.DELETE("/cart/coupon", cart_controller.RemoveCoupon)
		user.POST("/cart/resolve", cart_controller.ResolveCart)

		// Checkout
		user.GET("/checkout", checkout_controller.GetCheckoutSession)
		user.POST("/checkout/prepare", checkout_controller.PrepareCheckout)
		user.POST("/checkout/proceed", checkout_controller.ProceedToPayment)
		user.POST("/checkout/payment-method", checkout_controller.SelectPaymentMethod)
		user.POST("/checkout/back", checkout_controller.StepBack)
		user.POST("/checkout/place-order", checkout_controller.PlaceOrder)
		user.POST("/checkout/payment-callback", checkout_controller.PaymentCallback)
		user.GET("/checkout/order-data", checkout_controller.GetOrderData)

		// Orders
		user.GET("/orders", order_controller.GetOrders)
		user.GET("/orders/:id", order_controller.GetOrderDetails)

		// Addresses
		user.GET("/addresses", address_controller.GetAddresses)
		user.POST("/addresses", address_controller.AddAddress)
		user.PATCH("/addresses/:id", address_controller.UpdateAddress)
		user.DELETE("/addresses/:id", address_controller.DeleteAddress)
		user.PATCH("/addresses/:id/default", address_controller.SetDefaultAddress)
	}
}
