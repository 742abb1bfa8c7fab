package catalog

import (
	"context"
	"errors"

	"github.com/ayush1817-lab/UCP/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// Store is the read-only catalog accessor. The catalog is an external
// data source; implementations never mutate it.
type Store interface {
	// ListProducts returns every product in catalog order.
	ListProducts(ctx context.Context) ([]domain.Product, error)

	// FindByID returns the product with the given id, or ErrProductNotFound.
	FindByID(ctx context.Context, id string) (*domain.Product, error)

	// Close releases any underlying resources.
	Close() error
}
