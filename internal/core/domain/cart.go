package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// SubmissionStatus represents the lifecycle state of a cart submission.
type SubmissionStatus string

const (
	SubmissionPending SubmissionStatus = "pending"
	SubmissionReplied SubmissionStatus = "replied"
)

var ErrSubmissionNotFound = errors.New("cart submission not found")
var ErrPricingUnavailable = errors.New("pricing service unavailable")

// CanTransitionTo reports whether the submission may move to next.
// The only legal transition is pending → replied.
func (s SubmissionStatus) CanTransitionTo(next SubmissionStatus) bool {
	return s == SubmissionPending && next == SubmissionReplied
}

// CartItem is a single selected activity inside a submitted cart.
type CartItem struct {
	UUID         uuid.UUID `json:"uuid"`
	ActivityName string    `json:"activity_name"`
	Quantity     int       `json:"quantity"`
}

// CartSubmission is a persisted snapshot of a user's selected items awaiting
// manual pricing. Items keep their submission order.
type CartSubmission struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user_id"`
	Status    SubmissionStatus `json:"status"`
	Items     []CartItem       `json:"cart_items"`
	CreatedAt time.Time        `json:"created_at"`
}
