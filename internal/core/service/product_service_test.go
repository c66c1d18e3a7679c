package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/stockroom/inventory-api/internal/core/domain"
	"github.com/stockroom/inventory-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubProductRepo struct {
	byID      map[string]*domain.Product
	order     []string
	nextID    int
	createErr error
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{byID: make(map[string]*domain.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (string, error) {
	if r.createErr != nil {
		return "", r.createErr
	}
	r.nextID++
	clone := *p
	clone.ID = fmt.Sprintf("%024x", r.nextID)
	r.byID[clone.ID] = &clone
	r.order = append(r.order, clone.ID)
	return clone.ID, nil
}

func (r *stubProductRepo) List(context.Context) ([]*domain.Product, error) {
	out := make([]*domain.Product, 0, len(r.order))
	for _, id := range r.order {
		if p, ok := r.byID[id]; ok {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	if len(id) != 24 {
		return nil, domain.ErrInvalidProductID
	}
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) Update(_ context.Context, id string, f ports.ProductFields) error {
	p, ok := r.byID[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Title, p.Description, p.InventoryCount, p.UpdatedAt = f.Title, f.Description, f.InventoryCount, f.UpdatedAt
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func widget() ports.ProductFields {
	return ports.ProductFields{Title: "Widget", Description: "A small widget", InventoryCount: 12}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestProductService_Create(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, discardLogger)

	id, err := svc.Create(context.Background(), widget())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := repo.byID[id]
	if stored == nil {
		t.Fatalf("product %s not stored", id)
	}
	if stored.Title != "Widget" || stored.InventoryCount != 12 {
		t.Errorf("unexpected stored product: %+v", stored)
	}
	if stored.CreatedAt.IsZero() || !stored.CreatedAt.Equal(stored.UpdatedAt) {
		t.Errorf("expected matching non-zero timestamps, got %v / %v", stored.CreatedAt, stored.UpdatedAt)
	}
}

func TestProductService_Create_StoreFailure(t *testing.T) {
	repo := newStubProductRepo()
	repo.createErr = errors.New("write concern timeout")
	svc := NewProductService(repo, discardLogger)

	if _, err := svc.Create(context.Background(), widget()); !errors.Is(err, repo.createErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestProductService_ListAndGet(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, discardLogger)

	first, _ := svc.Create(context.Background(), widget())
	_, _ = svc.Create(context.Background(), ports.ProductFields{Title: "Gadget"})

	all, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[0].Title != "Widget" || all[1].Title != "Gadget" {
		t.Fatalf("unexpected list: %+v", all)
	}

	got, err := svc.Get(context.Background(), first)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != first {
		t.Errorf("expected id %s, got %s", first, got.ID)
	}

	if _, err := svc.Get(context.Background(), fmt.Sprintf("%024x", 999)); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
	if _, err := svc.Get(context.Background(), "nope"); !errors.Is(err, domain.ErrInvalidProductID) {
		t.Errorf("expected ErrInvalidProductID, got %v", err)
	}
}

func TestProductService_Update(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, discardLogger)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	id, _ := svc.Create(context.Background(), widget())
	if err := svc.Update(context.Background(), id, ports.ProductFields{Title: "Widget v2", InventoryCount: 3}); err != nil {
		t.Fatalf("update: %v", err)
	}

	stored := repo.byID[id]
	if stored.Title != "Widget v2" || stored.Description != "" || stored.InventoryCount != 3 {
		t.Errorf("unexpected product after update: %+v", stored)
	}
	if !stored.UpdatedAt.Equal(fixed) {
		t.Errorf("expected updatedAt %v, got %v", fixed, stored.UpdatedAt)
	}

	if err := svc.Update(context.Background(), fmt.Sprintf("%024x", 999), widget()); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductService_Delete(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, discardLogger)

	id, _ := svc.Create(context.Background(), widget())
	if err := svc.Delete(context.Background(), id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(context.Background(), id); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("second delete: expected ErrProductNotFound, got %v", err)
	}
}
