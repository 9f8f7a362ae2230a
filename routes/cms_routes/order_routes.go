package cms_routes

import (
	"github.com/Vastrika-Ecommerce/vastrika-backend/controllers/cms/order_controller"
	"github.com/Vastrika-Ecommerce/vastrika-backend/middleware"
	"github.com/gin-gonic/gin"
)

func SetupOrderRoutes(rg *gin.RouterGroup) {
	order := rg.Group("/orders")
	order.Use(middleware.AdminAuthMiddleware())
	order.Use(middleware.ActivityLoggingMiddleware())
	{
		// Reporting
		order.GET("/statistics", order_controller.GetOrderStatistics)
		order.GET("/export", order_controller.ExportOrders)

		// Order management
		order.GET("", order_controller.GetOrders)
		order.GET("/:id", order_controller.GetOrderDetailsByID)
		order.PATCH("/:id/status", order_controller.UpdateOrderStatus)
		order.POST("/:id/return", order_controller.MarkOrderReturned)
		order.POST("/:id/payment-received", order_controller.MarkPaymentReceived)
	}
}
