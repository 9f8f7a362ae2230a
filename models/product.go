package models

import "time"

// Product is the slice of the catalog the order/cart flows need.
// Full catalog CRUD (variants, images, descriptions) lives elsewhere.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	Status        string    `json:"status"` // Active | Inactive | Archived
	Stock         int       `json:"stock"`
	CategoryID    *string   `json:"category_id,omitempty"`
	SubcategoryID *string   `json:"subcategory_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

const (
	ProductStatusActive   = "Active"
	ProductStatusInactive = "Inactive"
	ProductStatusArchived = "Archived"
)
