package models

import (
	"strings"
	"time"

	"github.com/shashiranjanraj/storefront/pkg/validate"
)

// Customer is the contact information attached to an order.
type Customer struct {
	Name    string `json:"name"    validate:"required"`
	Phone   string `json:"phone"   validate:"required"`
	Address string `json:"address" validate:"required"`
}

// NewCustomer trims every field and requires all three to be non-empty.
func NewCustomer(name, phone, address string) (Customer, error) {
	c := Customer{
		Name:    strings.TrimSpace(name),
		Phone:   strings.TrimSpace(phone),
		Address: strings.TrimSpace(address),
	}
	if errs := validate.Struct(c); validate.HasErrors(errs) {
		return Customer{}, &ValidationError{Reason: ErrIncompleteCustomerInfo, Fields: errs}
	}
	return c, nil
}

// Order is an immutable snapshot of a placed purchase.
type Order struct {
	ID        string      `json:"id"`
	CreatedAt time.Time   `json:"createdAt"`
	Customer  Customer    `json:"customer"`
	Items     []CartEntry `json:"items"`
	Total     float64     `json:"total"`
}
