package ports

import (
	"context"

	"github.com/jigyasu/commerce-system/internal/core/domain"
)

// CartRepository defines persistence operations for cart submissions.
type CartRepository interface {
	Create(ctx context.Context, s *domain.CartSubmission) (*domain.CartSubmission, error)
	FindByID(ctx context.Context, id int64) (*domain.CartSubmission, error)
	// List returns submissions joined with the owner's public fields,
	// newest first. An empty status returns all.
	List(ctx context.Context, status domain.SubmissionStatus) ([]SubmissionView, error)
	SetStatus(ctx context.Context, id int64, status domain.SubmissionStatus) error
}
