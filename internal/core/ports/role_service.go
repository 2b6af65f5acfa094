package ports

import "context"

// UserPublic is the subset of account fields exposed when requests or
// submissions are listed for review.
type UserPublic struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Phone    string `json:"phone_number"`
	OrgName  string `json:"org_name,omitempty"`
}

// RoleRequestView is a role upgrade request joined with its owner's
// public fields.
type RoleRequestView struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"user_id"`
	RequestedRole string     `json:"requested_role"`
	InternalRole  string     `json:"internal_role,omitempty"`
	Status        string     `json:"status"`
	User          UserPublic `json:"user"`
}

// RoleService implements the superuser-gated role upgrade workflow.
// Every method takes the caller's role and fails with domain.ErrForbidden
// unless it is "superuser".
type RoleService interface {
	ListRequests(ctx context.Context, callerRole, status string) ([]RoleRequestView, error)
	SearchRequests(ctx context.Context, callerRole, term string) ([]RoleRequestView, error)
	Decide(ctx context.Context, callerRole string, requestID int64, approve bool) error
	// UpgradeRole bypasses the request workflow and assigns newRole directly.
	UpgradeRole(ctx context.Context, callerRole, username, newRole string) error
}
