package ports

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jigyasu/commerce-system/internal/core/domain"
)

// SubmitResult reports the outcome of a cart submission.
type SubmitResult struct {
	SubmissionID  int64
	ItemsReceived int
	Status        string
}

// SubmissionView is a cart submission joined with its owner's public fields.
type SubmissionView struct {
	ID        int64             `json:"id"`
	Status    string            `json:"status"`
	Items     []domain.CartItem `json:"cart_items"`
	CreatedAt time.Time         `json:"created_at"`
	User      UserPublic        `json:"user"`
}

// PriceQuote carries the pricing collaborator's result. Components is kept
// verbatim as returned by the collaborator.
type PriceQuote struct {
	SubmissionID int64           `json:"cart_submission_id"`
	TotalPrice   float64         `json:"total_price"`
	Components   json.RawMessage `json:"components"`
}

type CartService interface {
	// Submit persists a pending submission and sends a confirmation email.
	// Email delivery is fire-and-forget; its failure never rolls back the
	// submission.
	Submit(ctx context.Context, username string, items []domain.CartItem) (*SubmitResult, error)
	// ListSubmissions is superuser-only. An empty status returns all.
	ListSubmissions(ctx context.Context, callerRole, status string) ([]SubmissionView, error)
	// Price forwards the submission's items to the pricing collaborator.
	// Superuser-only.
	Price(ctx context.Context, callerRole string, submissionID int64, directFactor, indirectFactor float64) (*PriceQuote, error)
	// Quote emails the quoted price to the owner and marks the submission
	// replied. Superuser-only.
	Quote(ctx context.Context, callerRole string, submissionID int64, quotedPrice float64) error
}
