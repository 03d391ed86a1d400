package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID, including soft-deleted products
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindAll returns the full catalog, including soft-deleted products
	FindAll(ctx context.Context) ([]Product, error)

	// FindActiveOn returns products created on or before date and not deleted by then
	FindActiveOn(ctx context.Context, date time.Time) ([]Product, error)

	// FindDeletedBetween returns products whose deletion day falls in [from, to]
	FindDeletedBetween(ctx context.Context, from, to time.Time) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error
}
