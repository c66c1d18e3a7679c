package ports

import "github.com/stockroom/inventory-api/internal/core/domain"

// AuditSink accepts auth events for asynchronous persistence. Record must not
// block the request path.
type AuditSink interface {
	Record(event domain.AuthEvent)
}
