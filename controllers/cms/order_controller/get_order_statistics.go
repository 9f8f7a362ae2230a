package order_controller

import (
	"log"
	"net/http"

	report_cache "github.com/Vastrika-Ecommerce/vastrika-backend/cache"
	"github.com/Vastrika-Ecommerce/vastrika-backend/config"
	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
	"github.com/Vastrika-Ecommerce/vastrika-backend/statistics"
	"github.com/gin-gonic/gin"
)

// GetOrderStatistics godoc
// @Summary Get order statistics (CMS)
// @Description Aggregated order report over a resolved date window: summary with optional comparison and growth, time series, status/payment/geography breakdowns, top products, customer metrics and refund statistics. Explicit date_from/date_to override period. All validation problems are reported together.
// @Tags Admin - Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param period query string false "today|yesterday|week|month|quarter|year|custom" default(month)
// @Param date_from query string false "YYYY-MM-DD, overrides period"
// @Param date_to query string false "YYYY-MM-DD, overrides period"
// @Param status query string false "Filter by order status"
// @Param payment_method query string false "Filter by payment method"
// @Param payment_status query string false "Filter by payment status"
// @Param category_id query string false "Filter by product category (UUID)"
// @Param subcategory_id query string false "Filter by product subcategory (UUID)"
// @Param product_id query string false "Filter by product (UUID)"
// @Param state query string false "Filter by delivery state"
// @Param city query string false "Filter by delivery city"
// @Param pincode query string false "Filter by delivery pincode"
// @Param comparison query string false "previous_period|previous_year|none"
// @Param group_by query string false "day|week|month|quarter|year"
// @Param limit query int false "Top-N list size (1-100)" default(20)
// @Param include_details query bool false "Include matching order rows"
// @Success 200 {object} models.ApiResponse{data=models.StatisticsReport}
// @Failure 400 {object} models.ApiResponse "Validation failed"
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /admin/orders/statistics [get]
func GetOrderStatistics(c *gin.Context) {
	log.Printf("[admin.order.statistics] start path=%s rawQuery=%s", c.FullPath(), c.Request.URL.RawQuery)

	var filter models.ReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		log.Printf("[admin.order.statistics] bad request: bind query err=%v", err)
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid query parameters"))
		return
	}

	// Every validation problem is reported in one response
	if errs := statistics.ValidateReportFilter(filter); len(errs) > 0 {
		log.Printf("[admin.order.statistics] validation failed: %v", errs)
		c.JSON(http.StatusBadRequest, models.ValidationErrorResponse(c, errs))
		return
	}

	cacheKey := report_cache.Key(filter)
	if cached, ok := report_cache.Get(cacheKey); ok {
		log.Printf("[admin.order.statistics] cache hit")
		c.JSON(http.StatusOK, models.SuccessResponse(c, "Order statistics retrieved successfully", cached))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	report, err := statistics.NewService(config.Gorm).AssembleReport(ctx, filter)
	if err != nil {
		log.Printf("[admin.order.statistics] ERROR assemble failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to retrieve order statistics"))
		return
	}

	report_cache.Set(cacheKey, report)

	log.Printf("[admin.order.statistics] done range=%s..%s orders=%d",
		report.Range.Start.Format("2006-01-02"), report.Range.End.Format("2006-01-02"),
		report.Summary.Current.TotalOrders)

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Order statistics retrieved successfully", report))
}
