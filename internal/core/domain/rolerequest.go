package domain

import "errors"

// RequestStatus represents the lifecycle state of a role upgrade request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// validDecisions defines the allowed state machine transitions.
// Approved and rejected are terminal.
var validDecisions = map[RequestStatus][]RequestStatus{
	RequestPending: {RequestApproved, RequestRejected},
}

var ErrRequestNotFound = errors.New("role request not found")
var ErrRequestDecided = errors.New("role request already decided")

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range validDecisions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether the request has been decided.
func (s RequestStatus) Terminal() bool {
	return s == RequestApproved || s == RequestRejected
}

// RoleUpgradeRequest is a petition for an elevated role, decided by a superuser.
// InternalRole is only meaningful when RequestedRole is "internal-staff".
// Requests are never deleted; decisions mutate Status only.
type RoleUpgradeRequest struct {
	ID            int64         `json:"id"`
	UserID        int64         `json:"user_id"`
	RequestedRole string        `json:"requested_role"`
	InternalRole  string        `json:"internal_role,omitempty"`
	Status        RequestStatus `json:"status"`
}
