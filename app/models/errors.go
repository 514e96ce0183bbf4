package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrInvalidMenuItem        = errors.New("menu item needs a name and a positive price")
	ErrInvalidQuantity        = errors.New("quantity must be at least 1")
	ErrEmptyCart              = errors.New("cart is empty")
	ErrIncompleteCustomerInfo = errors.New("customer name, phone and address are required")
	ErrItemNotFound           = errors.New("menu item not found")
)

// ValidationError is a refused operation. No state was changed.
// Reason is one of the sentinel errors above; errors.Is matches it.
type ValidationError struct {
	Reason error
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Reason.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, e.Fields[k])
	}
	return fmt.Sprintf("%s (%s)", e.Reason, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return e.Reason }

// IsValidation reports whether err is, or wraps, a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
