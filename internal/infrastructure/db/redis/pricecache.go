package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jigyasu/commerce-system/internal/core/ports"
)

const priceTTL = 5 * time.Minute

// PriceCache stores pricing collaborator responses for a short window so
// repeated what-if calls with identical factors skip the upstream round trip.
// Key format: price:<submission_id>:<direct_factor>:<indirect_factor>
type PriceCache struct {
	client *redis.Client
}

// NewPriceCache creates a PriceCache wrapping the given Redis client.
func NewPriceCache(client *redis.Client) *PriceCache {
	return &PriceCache{client: client}
}

// Get returns the cached result, or (nil, nil) on a miss.
func (c *PriceCache) Get(ctx context.Context, submissionID int64, directFactor, indirectFactor float64) (*ports.PricingResult, error) {
	raw, err := c.client.Get(ctx, c.key(submissionID, directFactor, indirectFactor)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("price cache get: %w", err)
	}

	var res ports.PricingResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("price cache decode: %w", err)
	}
	return &res, nil
}

// Set stores the result (expires after priceTTL).
func (c *PriceCache) Set(ctx context.Context, submissionID int64, directFactor, indirectFactor float64, res *ports.PricingResult) error {
	raw, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("price cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(submissionID, directFactor, indirectFactor), raw, priceTTL).Err()
}

func (c *PriceCache) key(submissionID int64, directFactor, indirectFactor float64) string {
	return fmt.Sprintf("price:%d:%g:%g", submissionID, directFactor, indirectFactor)
}
