package ports

import (
	"context"

	"github.com/tourista/tourism-api/internal/core/domain"
)

// AuditRepository persists authentication events.
type AuditRepository interface {
	Insert(ctx context.Context, event domain.AuthEvent) error
}

// AuditSink accepts events for asynchronous persistence. Record never blocks.
type AuditSink interface {
	Record(event domain.AuthEvent)
}
