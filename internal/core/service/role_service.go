package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jigyasu/commerce-system/internal/core/domain"
	"github.com/jigyasu/commerce-system/internal/core/ports"
)

// RoleService implements the superuser-gated role upgrade workflow.
type RoleService struct {
	users    ports.UserRepository
	requests ports.RoleRequestRepository
	log      zerolog.Logger
}

func NewRoleService(
	users ports.UserRepository,
	requests ports.RoleRequestRepository,
	log zerolog.Logger,
) *RoleService {
	return &RoleService{users: users, requests: requests, log: log}
}

func (s *RoleService) ListRequests(ctx context.Context, callerRole, status string) ([]ports.RoleRequestView, error) {
	if err := domain.RequireRole(callerRole, domain.RoleSuperuser); err != nil {
		return nil, err
	}
	if status == "" {
		status = string(domain.RequestPending)
	}
	return s.requests.ListByStatus(ctx, domain.RequestStatus(status))
}

func (s *RoleService) SearchRequests(ctx context.Context, callerRole, term string) ([]ports.RoleRequestView, error) {
	if err := domain.RequireRole(callerRole, domain.RoleSuperuser); err != nil {
		return nil, err
	}
	return s.requests.Search(ctx, term)
}

// Decide approves or rejects a pending request. Deciding a request that is
// already terminal fails with domain.ErrRequestDecided so an approval can
// never be silently re-applied.
func (s *RoleService) Decide(ctx context.Context, callerRole string, requestID int64, approve bool) error {
	if err := domain.RequireRole(callerRole, domain.RoleSuperuser); err != nil {
		return err
	}

	req, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req.Status.Terminal() {
		return domain.ErrRequestDecided
	}

	if approve {
		if err := s.requests.Approve(ctx, requestID); err != nil {
			return err
		}
	} else {
		if err := s.requests.Reject(ctx, requestID); err != nil {
			return err
		}
	}

	s.log.Info().
		Int64("request_id", requestID).
		Bool("approved", approve).
		Str("requested_role", req.RequestedRole).
		Msg("role request decided")

	return nil
}

// UpgradeRole assigns newRole directly, bypassing the request workflow.
func (s *RoleService) UpgradeRole(ctx context.Context, callerRole, username, newRole string) error {
	if err := domain.RequireRole(callerRole, domain.RoleSuperuser); err != nil {
		return err
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user.Role == newRole {
		return domain.ErrRoleAlreadyAssigned
	}

	if err := s.users.UpdateRole(ctx, user.ID, newRole); err != nil {
		return err
	}

	s.log.Info().Str("username", username).Str("role", newRole).Msg("user role upgraded")
	return nil
}
