package usecase

import (
	"errors"
	"fmt"
)

var (
	// ErrProductNotFound: the referenced product id does not exist in the
	// catalog at lookup time.
	ErrProductNotFound = errors.New("product not found in catalog")

	// ErrInventoryUnavailable: the catalog lookup could not be completed
	// (timeout, connection failure, non-success response).
	ErrInventoryUnavailable = errors.New("product service unavailable")

	// ErrProductMissing: product CRUD 404.
	ErrProductMissing = errors.New("product not found")
)

// InsufficientStockError carries what the user-facing message needs: which
// product, how much was there, how much was asked for.
type InsufficientStockError struct {
	Name      string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %q: available %d, requested %d",
		e.Name, e.Available, e.Requested)
}
