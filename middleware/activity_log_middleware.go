package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/Vastrika-Ecommerce/vastrika-backend/config"
	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
	"github.com/Vastrika-Ecommerce/vastrika-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// pathSuffixToAction maps order mutation routes to audit actions.
var pathSuffixToAction = map[string]string{
	"status":           models.ActionUpdateOrderStatus,
	"return":           models.ActionMarkOrderReturned,
	"payment-received": models.ActionMarkPaymentReceived,
}

// ActivityLoggingMiddleware logs admin order mutations automatically.
// Must be used AFTER AdminAuthMiddleware (which sets adminID and adminEmail).
func ActivityLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Only mutations are audited
		if c.Request.Method == "GET" {
			c.Next()
			return
		}

		adminIDRaw, adminIDExists := c.Get("adminID")
		adminEmailRaw, adminEmailExists := c.Get("adminEmail")
		if !adminIDExists || !adminEmailExists {
			log.Printf("[activity-logging] warning: admin info not in context")
			c.Next()
			return
		}

		adminID, err := uuid.Parse(adminIDRaw.(string))
		if err != nil {
			log.Printf("[activity-logging] failed to parse admin ID: %v", err)
			c.Next()
			return
		}
		adminEmail := adminEmailRaw.(string)

		action := actionForPath(c.Request.URL.Path)
		if action == "" {
			c.Next()
			return
		}

		orderID := c.Param("id")

		// Fetch "before" snapshot for the changes diff
		beforeOrder := fetchOrder(orderID)
		resourceName := ""
		if beforeOrder != nil {
			resourceName = beforeOrder.OrderNumber
		}

		c.Next()

		statusCode := c.Writer.Status()
		if statusCode >= 200 && statusCode < 300 {
			afterOrder := fetchOrder(orderID)
			if afterOrder != nil {
				resourceName = afterOrder.OrderNumber
			}

			services.LogActivity(services.LogActivityRequest{
				AdminID:      adminID,
				AdminEmail:   adminEmail,
				Action:       action,
				ResourceType: models.ResourceTypeOrder,
				ResourceID:   orderID,
				ResourceName: resourceName,
				Changes:      services.CreateChanges(beforeOrder, afterOrder),
				Status:       models.StatusSuccess,
				Context:      c,
			})
		} else {
			services.LogActivity(services.LogActivityRequest{
				AdminID:      adminID,
				AdminEmail:   adminEmail,
				Action:       action,
				ResourceType: models.ResourceTypeOrder,
				ResourceID:   orderID,
				ResourceName: resourceName,
				Status:       models.StatusFailed,
				ErrorMessage: "Request failed with status " + http.StatusText(statusCode),
				Context:      c,
			})
		}
	}
}

// actionForPath maps "/api/v1/admin/orders/:id/<suffix>" to an action.
func actionForPath(path string) string {
	parts := strings.Split(strings.TrimSuffix(path, "/"), "/")
	if len(parts) == 0 {
		return ""
	}
	return pathSuffixToAction[parts[len(parts)-1]]
}

func fetchOrder(orderID string) *models.Order {
	if orderID == "" {
		return nil
	}
	ctx, cancel := config.WithTimeout()
	defer cancel()

	var order models.Order
	if err := config.Gorm.WithContext(ctx).First(&order, "id = ?", orderID).Error; err != nil {
		log.Printf("[activity-logging] failed to fetch order %s: %v", orderID, err)
		return nil
	}
	return &order
}
