package models

import (
	"math"
	"strings"

	"github.com/shashiranjanraj/storefront/pkg/validate"
)

// Defaults applied when a new item leaves category or icon blank.
const (
	DefaultCategory = "Mains"
	DefaultIcon     = "🍽️"
)

// MenuItem is a purchasable entry of the catalog.
type MenuItem struct {
	ID          string  `json:"id"          validate:"required"`
	Name        string  `json:"name"        validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"       validate:"gt=0"`
	Category    string  `json:"category"`
	Icon        string  `json:"icon"`
}

// NewMenuItem trims the text fields, fills the category and icon defaults
// and rejects a blank name or a price that is not a positive finite number.
func NewMenuItem(id, name, description string, price float64, category, icon string) (MenuItem, error) {
	item := MenuItem{
		ID:          strings.TrimSpace(id),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Price:       price,
		Category:    strings.TrimSpace(category),
		Icon:        strings.TrimSpace(icon),
	}
	if item.Category == "" {
		item.Category = DefaultCategory
	}
	if item.Icon == "" {
		item.Icon = DefaultIcon
	}

	errs := validate.Struct(item)
	if math.IsInf(price, 0) || math.IsNaN(price) {
		errs["price"] = "The price must be a finite number."
	}
	if validate.HasErrors(errs) {
		return MenuItem{}, &ValidationError{Reason: ErrInvalidMenuItem, Fields: errs}
	}
	return item, nil
}
