package domain

import (
	"fmt"
	"time"
)

// OrderStatus is the fulfilment state of an order. The set is closed.
type OrderStatus string

const (
	OrderNotProcessed OrderStatus = "Not Process"
	OrderProcessing   OrderStatus = "Processing"
	OrderShipped      OrderStatus = "Shipped"
	OrderDelivered    OrderStatus = "delivered"
	OrderCancelled    OrderStatus = "cancel"
)

var orderStatuses = []OrderStatus{
	OrderNotProcessed,
	OrderProcessing,
	OrderShipped,
	OrderDelivered,
	OrderCancelled,
}

// OrderStatuses returns the closed set in display order.
func OrderStatuses() []OrderStatus {
	out := make([]OrderStatus, len(orderStatuses))
	copy(out, orderStatuses)
	return out
}

func (s OrderStatus) Valid() bool {
	for _, known := range orderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseOrderStatus converts external input into an OrderStatus. Matching is
// exact: "Delivered" is not "delivered".
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidOrderStatus, s)
	}
	return status, nil
}

// Payment is the opaque result recorded from the payment gateway.
type Payment map[string]any

// BuyerRef is the buyer reference of an order. Name is filled when the
// order is read back with buyer details attached.
type BuyerRef struct {
	ID   string `json:"_id"`
	Name string `json:"name,omitempty"`
}

// Order is a checked-out cart. Only Status changes after creation.
type Order struct {
	ID         string      `json:"_id"`
	ProductIDs []string    `json:"-"`
	Products   []Product   `json:"products"`
	Buyer      BuyerRef    `json:"buyer"`
	Payment    Payment     `json:"payment"`
	Status     OrderStatus `json:"status"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}
