package ports

import (
	"context"

	"github.com/virtualvault/storefront/internal/core/domain"
)

// OrderRepository persists orders. List methods attach product details
// (without photos) and the buyer's name.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]*domain.Order, error)
	// ListAll returns every order, newest first.
	ListAll(ctx context.Context) ([]*domain.Order, error)
	// UpdateStatus overwrites only the status field. It returns (nil, nil)
	// when no order has the given id.
	UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error)
}
