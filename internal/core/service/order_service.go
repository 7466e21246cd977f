package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/virtualvault/storefront/internal/core/domain"
	"github.com/virtualvault/storefront/internal/core/ports"
)

// IdempotencyStore remembers which order a buyer's checkout key produced.
// Claim must be atomic: of two concurrent claims on the same key exactly one
// gets claimed=true. A taken key with an empty orderID is still in progress.
type IdempotencyStore interface {
	Claim(ctx context.Context, buyerID, key string) (orderID string, claimed bool, err error)
	Complete(ctx context.Context, buyerID, key, orderID string) error
	Release(ctx context.Context, buyerID, key string) error
}

// OrderService implements checkout and the order lifecycle.
type OrderService struct {
	orders      ports.OrderRepository
	products    ports.ProductRepository
	gateway     ports.PaymentGateway
	idempotency IdempotencyStore
	audit       ports.AuditRepository
	events      ports.EventQueue
	log         zerolog.Logger
}

func NewOrderService(
	orders ports.OrderRepository,
	products ports.ProductRepository,
	gateway ports.PaymentGateway,
	idempotency IdempotencyStore,
	audit ports.AuditRepository,
	events ports.EventQueue,
	log zerolog.Logger,
) *OrderService {
	return &OrderService{
		orders:      orders,
		products:    products,
		gateway:     gateway,
		idempotency: idempotency,
		audit:       audit,
		events:      events,
		log:         log,
	}
}

// Checkout charges the buyer for the current price of every cart entry and
// stores the order once the gateway approves. A repeated entry is charged
// once per occurrence.
func (s *OrderService) Checkout(ctx context.Context, in ports.CheckoutInput) (*ports.CheckoutResult, error) {
	if len(in.ProductIDs) == 0 {
		return nil, domain.ErrEmptyCart
	}

	if in.IdempotencyKey != "" {
		orderID, claimed, err := s.idempotency.Claim(ctx, in.BuyerID, in.IdempotencyKey)
		if err != nil {
			return nil, fmt.Errorf("checkout: %w", err)
		}
		if !claimed {
			if orderID == "" {
				return nil, domain.ErrCheckoutInProgress
			}
			return &ports.CheckoutResult{Approved: true, Replayed: true, ReplayedOrderID: orderID}, nil
		}
	}

	res, err := s.checkout(ctx, in)
	if in.IdempotencyKey == "" {
		return res, err
	}

	if err != nil || res.Order == nil {
		if rerr := s.idempotency.Release(ctx, in.BuyerID, in.IdempotencyKey); rerr != nil {
			s.log.Warn().Err(rerr).Str("buyer_id", in.BuyerID).Msg("idempotency key not released")
		}
		return res, err
	}
	if cerr := s.idempotency.Complete(ctx, in.BuyerID, in.IdempotencyKey, res.Order.ID); cerr != nil {
		s.log.Warn().Err(cerr).Str("order_id", res.Order.ID).Msg("idempotency key not stored")
	}
	return res, nil
}

func (s *OrderService) checkout(ctx context.Context, in ports.CheckoutInput) (*ports.CheckoutResult, error) {
	products, err := s.products.FindByIDs(ctx, in.ProductIDs)
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}
	prices := make(map[string]decimal.Decimal, len(products))
	for _, p := range products {
		prices[p.ID] = p.Price
	}

	total := decimal.Zero
	for _, id := range in.ProductIDs {
		price, ok := prices[id]
		if !ok {
			return nil, fmt.Errorf("checkout: %s: %w", id, domain.ErrProductNotFound)
		}
		total = total.Add(price)
	}

	payment, approved, err := s.gateway.Charge(ctx, total, in.Nonce)
	if err != nil {
		return nil, fmt.Errorf("checkout: charge: %w", err)
	}
	if !approved {
		s.log.Info().Str("buyer_id", in.BuyerID).Str("total", total.StringFixed(2)).Msg("payment declined")
		return &ports.CheckoutResult{Payment: payment}, nil
	}

	now := time.Now().UTC()
	order, err := s.orders.Create(ctx, &domain.Order{
		ProductIDs: in.ProductIDs,
		Buyer:      domain.BuyerRef{ID: in.BuyerID},
		Payment:    payment,
		Status:     domain.OrderNotProcessed,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}

	s.events.Enqueue(domain.Event{
		ID:         uuid.NewString(),
		Type:       domain.EventOrderCreated,
		SubjectID:  order.ID,
		ActorID:    in.BuyerID,
		OccurredAt: now,
		Payload: map[string]any{
			"total":    total.StringFixed(2),
			"products": in.ProductIDs,
		},
	})

	return &ports.CheckoutResult{Order: order, Payment: payment, Approved: true}, nil
}

func (s *OrderService) ListForBuyer(ctx context.Context, buyerID string) ([]*domain.Order, error) {
	return s.orders.ListByBuyer(ctx, buyerID)
}

func (s *OrderService) ListAll(ctx context.Context) ([]*domain.Order, error) {
	return s.orders.ListAll(ctx)
}

// UpdateStatus rejects anything outside the closed status set before
// touching storage. A missing order yields (nil, nil).
func (s *OrderService) UpdateStatus(ctx context.Context, actorID, orderID, status string) (*domain.Order, error) {
	next, err := domain.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.UpdateStatus(ctx, orderID, next)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}

	now := time.Now().UTC()
	if err := s.audit.Append(ctx, domain.AuditEntry{
		Kind:      domain.EventOrderStatusChanged,
		SubjectID: orderID,
		ActorID:   actorID,
		Value:     string(next),
		At:        now,
	}); err != nil {
		s.log.Error().Err(err).Str("order_id", orderID).Msg("audit append failed")
	}

	s.events.Enqueue(domain.Event{
		ID:         uuid.NewString(),
		Type:       domain.EventOrderStatusChanged,
		SubjectID:  orderID,
		ActorID:    actorID,
		OccurredAt: now,
		Payload:    map[string]any{"status": string(next)},
	})

	return order, nil
}
