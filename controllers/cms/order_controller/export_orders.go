package order_controller

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Vastrika-Ecommerce/vastrika-backend/config"
	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
	"github.com/Vastrika-Ecommerce/vastrika-backend/services"
	"github.com/Vastrika-Ecommerce/vastrika-backend/statistics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Exports are bounded so a year-wide unfiltered export cannot exhaust
// memory building the document.
const exportRowCap = 5000

// ExportOrders godoc
// @Summary Export orders (CMS)
// @Description Export the orders matching a statistics filter as CSV or PDF. The same filter parameters as /admin/orders/statistics apply.
// @Tags Admin - Orders
// @Produce octet-stream
// @Security BearerAuth
// @Param format query string true "csv or pdf"
// @Param period query string false "today|yesterday|week|month|quarter|year|custom"
// @Param date_from query string false "YYYY-MM-DD, overrides period"
// @Param date_to query string false "YYYY-MM-DD, overrides period"
// @Success 200 "Exported file"
// @Failure 400 {object} models.ApiResponse "Validation failed"
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /admin/orders/export [get]
func ExportOrders(c *gin.Context) {
	format := strings.ToLower(strings.TrimSpace(c.Query("format")))
	log.Printf("[admin.order.export] start format=%s rawQuery=%s", format, c.Request.URL.RawQuery)

	if format != services.ExportFormatCSV && format != services.ExportFormatPDF {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "format must be csv or pdf"))
		return
	}

	var filter models.ReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		log.Printf("[admin.order.export] bad request: bind query err=%v", err)
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid query parameters"))
		return
	}

	if errs := statistics.ValidateReportFilter(filter); len(errs) > 0 {
		log.Printf("[admin.order.export] validation failed: %v", errs)
		c.JSON(http.StatusBadRequest, models.ValidationErrorResponse(c, errs))
		return
	}

	ctx, cancel := config.WithCustomTimeout(30 * time.Second)
	defer cancel()

	svc := statistics.NewService(config.Gorm)
	rng := statistics.ResolveDateRange(filter.Period, filter.DateFrom, filter.DateTo, svc.Now())
	pred := statistics.BuildFilterPredicate(filter)

	summary, err := svc.ComputeAggregateMetrics(ctx, rng, pred)
	if err != nil {
		log.Printf("[admin.order.export] ERROR summary failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to export orders"))
		return
	}

	orders, err := svc.ComputeOrderDetails(ctx, rng, pred, exportRowCap)
	if err != nil {
		log.Printf("[admin.order.export] ERROR details failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to export orders"))
		return
	}

	result, err := services.ExportOrders(format, services.OrderExportData{
		Range:   rng,
		Summary: summary,
		Orders:  orders,
	})
	if err != nil {
		log.Printf("[admin.order.export] ERROR render failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to export orders"))
		return
	}

	// Exports are GETs, so the mutation-audit middleware skips them;
	// log here instead.
	if adminIDStr, ok := c.Get("adminID"); ok {
		adminEmail, _ := c.Get("adminEmail")
		if adminID, err := uuid.Parse(adminIDStr.(string)); err == nil {
			services.LogActivitySuccess(adminID, adminEmail.(string),
				models.ActionExportOrders, models.ResourceTypeOrder, "", result.FileName,
				map[string]interface{}{"format": format, "rows": len(orders)}, c)
		}
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, result.FileName))
	c.Header("Content-Type", result.ContentType)
	c.Header("Content-Length", fmt.Sprintf("%d", len(result.Content)))
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")

	c.Data(http.StatusOK, result.ContentType, result.Content)

	log.Printf("[admin.order.export] done file=%s rows=%d bytes=%d", result.FileName, len(orders), len(result.Content))
}
