package ports

import (
	"context"

	"github.com/virtualvault/storefront/internal/core/domain"
)

type CheckoutInput struct {
	BuyerID        string
	ProductIDs     []string
	Nonce          string
	IdempotencyKey string
}

// CheckoutResult describes the outcome of a checkout. When Approved is false
// no order was stored and Payment holds the gateway's answer. Replayed is
// true when the idempotency key matched an earlier checkout; only
// ReplayedOrderID is set in that case.
type CheckoutResult struct {
	Order           *domain.Order
	Payment         domain.Payment
	Approved        bool
	Replayed        bool
	ReplayedOrderID string
}

type OrderService interface {
	Checkout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error)
	ListForBuyer(ctx context.Context, buyerID string) ([]*domain.Order, error)
	ListAll(ctx context.Context) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, actorID, orderID, status string) (*domain.Order, error)
}
