package ports

import (
	"context"
	"time"

	"github.com/stockroom/inventory-api/internal/core/domain"
)

// ProductFields holds the client-writable fields of a product.
type ProductFields struct {
	Title          string
	Description    string
	InventoryCount int
	UpdatedAt      time.Time
}

// ProductService defines use-case operations for products. Authorization is
// enforced by the role gates before any of these run.
type ProductService interface {
	Create(ctx context.Context, fields ProductFields) (string, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, id string, fields ProductFields) error
	Delete(ctx context.Context, id string) error
}
