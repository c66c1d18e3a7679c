package handler

import "time"

// errorResponse documents the error envelope rendered by the central error
// handler.
type errorResponse struct {
	Error string `json:"error"`
}

// productRequest is the body of create and update calls. Update replaces all
// three fields.
type productRequest struct {
	Title          string `json:"title"          validate:"required,max=200"`
	Description    string `json:"description"    validate:"max=2000"`
	InventoryCount int    `json:"inventoryCount" validate:"gte=0"`
}

type productResponse struct {
	ID             string    `json:"_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	InventoryCount int       `json:"inventoryCount"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type createProductResponse struct {
	ProductID string `json:"productId"`
	Message   string `json:"message"`
}
