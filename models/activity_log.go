package models

import (
	"time"

	"github.com/google/uuid"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityLog attributes every admin order mutation to an actor.
type ActivityLog struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	AdminID      uuid.UUID      `json:"admin_id" gorm:"type:uuid;not null;index:idx_activity_admin_date,sort:desc"`
	AdminEmail   string         `json:"admin_email" gorm:"not null"`
	Action       string         `json:"action" gorm:"not null;index"` // updated_order, returned_order, ...
	ResourceType string         `json:"resource_type" gorm:"not null"`
	ResourceID   string         `json:"resource_id" gorm:"not null;index"`
	ResourceName string         `json:"resource_name"` // order number for orders
	Changes      datatypes.JSON `json:"changes" gorm:"type:jsonb"`
	Status       string         `json:"status" gorm:"not null"` // success, failed
	ErrorMessage string         `json:"error_message"`
	IPAddress    string         `json:"ip_address"`
	UserAgent    string         `json:"user_agent"`
	CreatedAt    time.Time      `json:"created_at" gorm:"autoCreateTime;index:idx_activity_admin_date,sort:desc"`
}

// BeforeCreate hook - auto-generate UUID v7
func (al *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if al.ID == uuid.Nil {
		al.ID = uuid.Must(uuid.NewV7())
	}
	if al.Status == "" {
		al.Status = "success"
	}
	return nil
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}

const (
	ActionUpdateOrderStatus   = "updated_order_status"
	ActionMarkOrderReturned   = "marked_order_returned"
	ActionMarkPaymentReceived = "marked_payment_received"
	ActionExportOrders        = "exported_orders"

	ResourceTypeOrder = "order"

	StatusSuccess = "success"
	StatusFailed  = "failed"
)
