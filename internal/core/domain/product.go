package domain

import "time"

// Product is the inventory record guarded by the role gates.
type Product struct {
	ID             string
	Title          string
	Description    string
	InventoryCount int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
