// internal/services/errors.go
package services

import (
	"errors"
	"fmt"
)

var (
	ErrUserExists         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrNotOwner           = errors.New("resource belongs to another user")
	ErrOwnProduct         = errors.New("cannot order own product")
	ErrMixedFarmers       = errors.New("order items belong to different farmers")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrValidation         = errors.New("validation failed")
)

// StockError reports the quantity that was actually available.
type StockError struct {
	ProductID string
	Available int
	Requested int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("only %d units of product %s available, %d requested", e.Available, e.ProductID, e.Requested)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }
