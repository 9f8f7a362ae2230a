package order_controller

import (
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/Vastrika-Ecommerce/vastrika-backend/config"
	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
	"github.com/gin-gonic/gin"
)

// GetOrders godoc
// @Summary Get orders (CMS)
// @Description Retrieve all orders for CMS (admin) with customer details and pagination. Supports optional filtering by status, payment status and search.
// @Tags Admin - Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page (max 50)" default(10)
// @Param status query string false "Filter by order status (pending, processing, shipped, delivered, cancelled, returned)"
// @Param payment_status query string false "Filter by payment status (pending, paid, refunded, failed)"
// @Param q query string false "Search by order number, customer email, or customer name"
// @Success 200 {object} models.ApiResponse{data=[]models.AdminOrderListRow,meta=models.Pagination}
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Failure 403 {object} models.ApiResponse "Forbidden"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /admin/orders [get]
func GetOrders(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		log.Printf("[admin.orders] WARN invalid page=%q err=%v -> default 1", c.Query("page"), err)
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		log.Printf("[admin.orders] WARN invalid limit=%q err=%v -> default 10", c.Query("limit"), err)
		limit = 10
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	offset := (page - 1) * limit

	status := strings.TrimSpace(c.Query("status"))
	paymentStatus := strings.TrimSpace(c.Query("payment_status"))
	q := strings.TrimSpace(c.Query("q"))

	log.Printf("[admin.orders] params page=%d limit=%d offset=%d status=%q payment_status=%q q=%q",
		page, limit, offset, status, paymentStatus, q)

	// Build WHERE clause shared by count and data queries
	whereConditions := []string{}
	whereArgs := []interface{}{}

	if status != "" {
		whereConditions = append(whereConditions, "o.status = ?")
		whereArgs = append(whereArgs, status)
	}
	if paymentStatus != "" {
		whereConditions = append(whereConditions, "o.payment_status = ?")
		whereArgs = append(whereArgs, paymentStatus)
	}
	if q != "" {
		like := "%" + q + "%"
		whereConditions = append(whereConditions, "(o.order_number ILIKE ? OR u.email ILIKE ? OR u.name ILIKE ?)")
		whereArgs = append(whereArgs, like, like, like)
	}

	whereSQL := ""
	if len(whereConditions) > 0 {
		whereSQL = " WHERE " + strings.Join(whereConditions, " AND ")
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	// Count total orders
	countSQL := `SELECT COUNT(*) FROM orders o LEFT JOIN users u ON u.id = o.user_id` + whereSQL

	var total int64
	if err := config.Gorm.WithContext(ctx).Raw(countSQL, whereArgs...).Scan(&total).Error; err != nil {
		log.Printf("[admin.orders] ERROR count failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to count orders"))
		return
	}

	dataSQL := `
		SELECT
			o.id::text AS id,
			o.order_number,
			u.id::text AS customer_id,
			COALESCE(NULLIF(u.name, ''), u.email) AS customer_name,
			u.email AS customer_email,
			o.created_at,
			COUNT(oi.id)::int AS item_count,
			o.total_amount,
			o.status,
			o.payment_method,
			o.payment_status
		FROM orders o
		LEFT JOIN users u ON u.id = o.user_id
		LEFT JOIN order_items oi ON oi.order_id = o.id
	` + whereSQL + `
		GROUP BY o.id, o.order_number, u.id, u.name, u.email, o.created_at,
		         o.total_amount, o.status, o.payment_method, o.payment_status
		ORDER BY o.created_at DESC
		LIMIT ? OFFSET ?
	`
	dataArgs := append(whereArgs, limit, offset)

	result := make([]models.AdminOrderListRow, 0, limit)
	if err := config.Gorm.WithContext(ctx).Raw(dataSQL, dataArgs...).Scan(&result).Error; err != nil {
		log.Printf("[admin.orders] ERROR data query failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch orders"))
		return
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	meta := &models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      int(total),
		TotalPages: totalPages,
	}

	log.Printf("[admin.orders] respond 200 total=%d pages=%d", total, totalPages)

	c.JSON(http.StatusOK, models.PaginatedResponse(
		c,
		"Orders retrieved successfully",
		result,
		meta,
	))
}
