package pricing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jigyasu/commerce-system/internal/api/metrics"
	"github.com/jigyasu/commerce-system/internal/core/domain"
	"github.com/jigyasu/commerce-system/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// WebhookClient calls the external pricing collaborator. The two factors
// travel as query parameters; the cart items travel as the JSON body.
type WebhookClient struct {
	baseURL string
	client  *http.Client
}

func NewWebhookClient(baseURL string, timeout time.Duration) *WebhookClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &WebhookClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Price posts the items and factors and decodes the collaborator's response.
// Transport failures and non-200 responses map to domain.ErrPricingUnavailable.
func (c *WebhookClient) Price(ctx context.Context, items []domain.CartItem, directFactor, indirectFactor float64) (*ports.PricingResult, error) {
	start := time.Now()
	res, err := c.price(ctx, items, directFactor, indirectFactor)
	metrics.PricingDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.PricingRequestsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.PricingRequestsTotal.WithLabelValues("success").Inc()
	return res, nil
}

func (c *WebhookClient) price(ctx context.Context, items []domain.CartItem, directFactor, indirectFactor float64) (*ports.PricingResult, error) {
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse pricing url: %w", err)
	}
	params := endpoint.Query()
	params.Set("direct_factor", strconv.FormatFloat(directFactor, 'f', -1, 64))
	params.Set("indirect_factor", strconv.FormatFloat(indirectFactor, 'f', -1, 64))
	endpoint.RawQuery = params.Encode()

	body, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode cart items: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build pricing request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPricingUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrPricingUnavailable, resp.StatusCode)
	}

	var result ports.PricingResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrPricingUnavailable, err)
	}
	return &result, nil
}
