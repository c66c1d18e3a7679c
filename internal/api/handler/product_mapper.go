package handler

import (
	"github.com/stockroom/inventory-api/internal/core/domain"
	"github.com/stockroom/inventory-api/internal/core/ports"
)

func toProductFields(req productRequest) ports.ProductFields {
	return ports.ProductFields{
		Title:          req.Title,
		Description:    req.Description,
		InventoryCount: req.InventoryCount,
	}
}

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:             p.ID,
		Title:          p.Title,
		Description:    p.Description,
		InventoryCount: p.InventoryCount,
		CreatedAt:      p.CreatedAt.UTC(),
		UpdatedAt:      p.UpdatedAt.UTC(),
	}
}

// toProductList never returns nil so an empty collection renders as [].
func toProductList(products []*domain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}
