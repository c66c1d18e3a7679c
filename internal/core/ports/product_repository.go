package ports

import (
	"context"

	"github.com/stockroom/inventory-api/internal/core/domain"
)

// ProductRepository defines persistence operations for products. Lookups by
// id return domain.ErrProductNotFound when nothing matches and
// domain.ErrInvalidProductID when the id is not a valid store identifier.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (string, error)
	List(ctx context.Context) ([]*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	// Update overwrites the mutable fields of the product with the given id.
	Update(ctx context.Context, id string, fields ProductFields) error
	Delete(ctx context.Context, id string) error
}
