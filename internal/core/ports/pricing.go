package ports

import (
	"context"
	"encoding/json"

	"github.com/jigyasu/commerce-system/internal/core/domain"
)

// PricingResult mirrors the pricing collaborator's response body.
type PricingResult struct {
	Final      float64         `json:"final"`
	Components json.RawMessage `json:"components"`
}

// PricingClient calls the external pricing collaborator with the serialized
// cart items and the two pricing factors.
type PricingClient interface {
	Price(ctx context.Context, items []domain.CartItem, directFactor, indirectFactor float64) (*PricingResult, error)
}
