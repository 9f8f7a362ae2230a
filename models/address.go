package models

import "time"

// Address is a user delivery address. State drives the CGST/SGST vs
// IGST split at checkout.
type Address struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Label     *string   `json:"label,omitempty"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Street    string    `json:"street"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Pincode   string    `json:"pincode"`
	Country   string    `json:"country"`
	Phone     string    `json:"phone"`
	IsDefault bool      `json:"is_default"`
	Status    string    `json:"status"` // active | deleted
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UpdateAddressRequest struct {
	Label     *string `json:"label,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Street    *string `json:"street,omitempty"`
	City      *string `json:"city,omitempty"`
	State     *string `json:"state,omitempty"`
	Pincode   *string `json:"pincode,omitempty" binding:"omitempty,len=6,numeric"`
	Country   *string `json:"country,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

type AddAddressRequest struct {
	Label     *string `json:"label,omitempty"`
	FirstName string  `json:"first_name" binding:"required"`
	LastName  string  `json:"last_name" binding:"required"`
	Street    string  `json:"street" binding:"required"`
	City      string  `json:"city" binding:"required"`
	State     string  `json:"state" binding:"required"`
	Pincode   string  `json:"pincode" binding:"required,len=6,numeric"`
	Country   string  `json:"country" binding:"required"`
	Phone     string  `json:"phone" binding:"required"`
	IsDefault bool    `json:"is_default"`
}
