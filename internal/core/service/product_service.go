package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/stockroom/inventory-api/internal/core/domain"
	"github.com/stockroom/inventory-api/internal/core/ports"
)

type ProductService struct {
	repo   ports.ProductRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewProductService(repo ports.ProductRepository, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, logger: logger, now: time.Now}
}

// Create stores a new product stamped with creation and update times.
func (s *ProductService) Create(ctx context.Context, fields ports.ProductFields) (string, error) {
	now := s.now().UTC()
	id, err := s.repo.Create(ctx, &domain.Product{
		Title:          fields.Title,
		Description:    fields.Description,
		InventoryCount: fields.InventoryCount,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return "", fmt.Errorf("create product: %w", err)
	}

	s.logger.Info().Str("product_id", id).Msg("product created")
	return id, nil
}

func (s *ProductService) List(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// Update overwrites title, description and inventory count, bumping the
// update time.
func (s *ProductService) Update(ctx context.Context, id string, fields ports.ProductFields) error {
	fields.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, id, fields); err != nil {
		return err
	}

	s.logger.Info().Str("product_id", id).Msg("product updated")
	return nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return nil
}
