package ports

import (
	"context"

	"github.com/stockroom/inventory-api/internal/core/domain"
)

// AuditRepository persists auth events to the audit collection.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuthEvent) error
}
