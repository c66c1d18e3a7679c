package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stockroom/inventory-api/internal/core/domain"
	"github.com/stockroom/inventory-api/internal/core/ports"
)

type stubProductService struct {
	createFn func(ctx context.Context, f ports.ProductFields) (string, error)
	listFn   func(ctx context.Context) ([]*domain.Product, error)
	getFn    func(ctx context.Context, id string) (*domain.Product, error)
	updateFn func(ctx context.Context, id string, f ports.ProductFields) error
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubProductService) Create(ctx context.Context, f ports.ProductFields) (string, error) {
	return s.createFn(ctx, f)
}

func (s *stubProductService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.listFn(ctx)
}

func (s *stubProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.getFn(ctx, id)
}

func (s *stubProductService) Update(ctx context.Context, id string, f ports.ProductFields) error {
	return s.updateFn(ctx, id, f)
}

func (s *stubProductService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func TestProductHandler_Create(t *testing.T) {
	handler := NewProductHandler(&stubProductService{
		createFn: func(ctx context.Context, f ports.ProductFields) (string, error) {
			if f.Title != "Widget" || f.InventoryCount != 5 {
				t.Fatalf("unexpected fields: %+v", f)
			}
			return "p1", nil
		},
	})

	c, rec := jsonRequest(newEcho(), http.MethodPost, "/products", `{"title":"Widget","description":"small","inventoryCount":5}`)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp createProductResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ProductID != "p1" || resp.Message == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestProductHandler_Create_Validation(t *testing.T) {
	handler := NewProductHandler(&stubProductService{
		createFn: func(ctx context.Context, f ports.ProductFields) (string, error) {
			t.Fatalf("should not be called")
			return "", nil
		},
	})

	for name, body := range map[string]string{
		"missing title":      `{"inventoryCount":1}`,
		"negative inventory": `{"title":"Widget","inventoryCount":-1}`,
		"wrong type":         `{"title":"Widget","inventoryCount":"many"}`,
	} {
		t.Run(name, func(t *testing.T) {
			c, _ := jsonRequest(newEcho(), http.MethodPost, "/products", body)
			assertHTTPError(t, handler.Create(c), http.StatusBadRequest)
		})
	}
}

func TestProductHandler_List(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	handler := NewProductHandler(&stubProductService{
		listFn: func(ctx context.Context) ([]*domain.Product, error) {
			return []*domain.Product{{ID: "p1", Title: "Widget", InventoryCount: 2, CreatedAt: created, UpdatedAt: created}}, nil
		},
	})

	c, rec := jsonRequest(newEcho(), http.MethodGet, "/products", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["_id"] != "p1" || resp[0]["inventoryCount"] != float64(2) {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if resp[0]["createdAt"] != "2026-03-01T12:00:00Z" {
		t.Fatalf("unexpected createdAt: %v", resp[0]["createdAt"])
	}
}

func TestProductHandler_List_Empty(t *testing.T) {
	handler := NewProductHandler(&stubProductService{
		listFn: func(ctx context.Context) ([]*domain.Product, error) { return nil, nil },
	})

	c, rec := jsonRequest(newEcho(), http.MethodGet, "/products", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := rec.Body.String(); got != "[]\n" {
		t.Fatalf("expected empty array, got %q", got)
	}
}

func TestProductHandler_Get_Errors(t *testing.T) {
	for _, want := range []error{domain.ErrProductNotFound, domain.ErrInvalidProductID} {
		t.Run(want.Error(), func(t *testing.T) {
			handler := NewProductHandler(&stubProductService{
				getFn: func(ctx context.Context, id string) (*domain.Product, error) { return nil, want },
			})

			c, _ := jsonRequest(newEcho(), http.MethodGet, "/products/x", "")
			c.SetParamNames("productId")
			c.SetParamValues("x")
			if err := handler.Get(c); !errors.Is(err, want) {
				t.Fatalf("expected %v, got %v", want, err)
			}
		})
	}
}

func TestProductHandler_Update(t *testing.T) {
	var gotID string
	handler := NewProductHandler(&stubProductService{
		updateFn: func(ctx context.Context, id string, f ports.ProductFields) error {
			gotID = id
			if f.Title != "Widget v2" {
				t.Fatalf("unexpected fields: %+v", f)
			}
			return nil
		},
	})

	c, rec := jsonRequest(newEcho(), http.MethodPut, "/products/p1", `{"title":"Widget v2","inventoryCount":0}`)
	c.SetParamNames("productId")
	c.SetParamValues("p1")
	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || gotID != "p1" {
		t.Fatalf("expected 200 for p1, got %d for %q", rec.Code, gotID)
	}
}

func TestProductHandler_Delete_NotFound(t *testing.T) {
	handler := NewProductHandler(&stubProductService{
		deleteFn: func(ctx context.Context, id string) error { return domain.ErrProductNotFound },
	})

	c, _ := jsonRequest(newEcho(), http.MethodDelete, "/products/p1", "")
	c.SetParamNames("productId")
	c.SetParamValues("p1")
	if err := handler.Delete(c); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}
