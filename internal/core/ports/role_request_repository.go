package ports

import (
	"context"

	"github.com/jigyasu/commerce-system/internal/core/domain"
)

// RoleRequestRepository defines persistence operations for role upgrade requests.
type RoleRequestRepository interface {
	Create(ctx context.Context, r *domain.RoleUpgradeRequest) (*domain.RoleUpgradeRequest, error)
	FindByID(ctx context.Context, id int64) (*domain.RoleUpgradeRequest, error)
	// ListByStatus returns requests with the given status joined with the
	// owner's public fields, ordered by id.
	ListByStatus(ctx context.Context, status domain.RequestStatus) ([]RoleRequestView, error)
	// Search matches term case-insensitively against the owner's name,
	// email, or phone.
	Search(ctx context.Context, term string) ([]RoleRequestView, error)
	// Approve atomically copies the requested role onto the owner and marks
	// the request approved, in a single transaction.
	Approve(ctx context.Context, requestID int64) error
	Reject(ctx context.Context, requestID int64) error
}
