package handler

import "github.com/jigyasu/commerce-system/internal/core/ports"

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user organisation internal-staff superuser"`
}

type roleRequestListResponse struct {
	RoleRequests []ports.RoleRequestView `json:"role_requests"`
}
