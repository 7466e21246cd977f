// Package payment holds PaymentGateway implementations.
package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/virtualvault/storefront/internal/core/domain"
)

// DeclinedNonce is always refused by the sandbox.
const DeclinedNonce = "fake-processor-declined-visa-nonce"

// Sandbox approves every charge carrying a usable nonce and records a
// generated transaction id. It never talks to a real processor.
type Sandbox struct{}

func NewSandbox() *Sandbox {
	return &Sandbox{}
}

func (s *Sandbox) Charge(ctx context.Context, amount decimal.Decimal, nonce string) (domain.Payment, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	if nonce == "" || nonce == DeclinedNonce || !amount.IsPositive() {
		return domain.Payment{
			"success": false,
			"message": "Processor Declined",
		}, false, nil
	}

	return domain.Payment{
		"success": true,
		"transaction": map[string]any{
			"id":     uuid.NewString(),
			"amount": amount.StringFixed(2),
			"status": "submitted_for_settlement",
		},
	}, true, nil
}
