package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/virtualvault/storefront/internal/core/domain"
)

// EventPublisher delivers a domain event to the outside world.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

// EventQueue accepts events for asynchronous publishing.
type EventQueue interface {
	Enqueue(event domain.Event)
}

// AuditRepository appends entries to the admin audit trail.
type AuditRepository interface {
	Append(ctx context.Context, entry domain.AuditEntry) error
}

// PaymentGateway charges a buyer. approved=false with a nil error is a
// decline; err is reserved for transport failures.
type PaymentGateway interface {
	Charge(ctx context.Context, amount decimal.Decimal, nonce string) (result domain.Payment, approved bool, err error)
}
