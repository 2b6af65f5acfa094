package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/jigyasu/commerce-system/internal/api/metrics"
	"github.com/jigyasu/commerce-system/internal/core/ports"
)

// RoleHandler handles the superuser-gated role upgrade workflow.
type RoleHandler struct {
	roleService ports.RoleService
}

func NewRoleHandler(roleService ports.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// UpdateRole assigns a role directly, bypassing the request workflow.
//
// @Summary      Upgrade a user's role directly
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string             true  "Username to upgrade"
// @Param        body      body      updateRoleRequest  true  "Target role"
// @Success      200       {object}  messageResponse
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Failure      409       {object}  errorResponse
// @Router       /api/auth/update-role/{username} [put]
func (h *RoleHandler) UpdateRole(c echo.Context) error {
	_, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	username := c.Param("username")
	if err := h.roleService.UpgradeRole(c.Request().Context(), role, username, req.Role); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{
		Message: fmt.Sprintf("User %s has been successfully upgraded to '%s'.", username, req.Role),
	})
}

// ListRequests returns role upgrade requests with their owners.
//
// @Summary      List role upgrade requests
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Request status filter (default pending)"  Enums(pending, approved, rejected)
// @Success      200     {object}  roleRequestListResponse
// @Failure      403     {object}  errorResponse
// @Router       /api/auth/role-requests [get]
func (h *RoleHandler) ListRequests(c echo.Context) error {
	_, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	views, err := h.roleService.ListRequests(c.Request().Context(), role, c.QueryParam("status"))
	if err != nil {
		return err
	}
	if views == nil {
		views = []ports.RoleRequestView{}
	}

	return c.JSON(http.StatusOK, roleRequestListResponse{RoleRequests: views})
}

// SearchRequests searches requests by owner name, email, or phone number.
//
// @Summary      Search role upgrade requests
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  true  "Term matched against name, email, or phone"
// @Success      200     {object}  roleRequestListResponse
// @Failure      400     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Router       /api/auth/role-requests/search [get]
func (h *RoleHandler) SearchRequests(c echo.Context) error {
	_, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	term := c.QueryParam("search")
	if term == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "search term is required")
	}

	views, err := h.roleService.SearchRequests(c.Request().Context(), role, term)
	if err != nil {
		return err
	}
	if views == nil {
		views = []ports.RoleRequestView{}
	}

	return c.JSON(http.StatusOK, roleRequestListResponse{RoleRequests: views})
}

// Decide approves or rejects a pending role upgrade request.
//
// @Summary      Decide a role upgrade request
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int     true  "Request ID"
// @Param        approve  query     bool    true  "true to approve, false to reject"
// @Success      200      {object}  messageResponse
// @Failure      400      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Failure      409      {object}  errorResponse
// @Router       /api/auth/role-requests/{id} [put]
func (h *RoleHandler) Decide(c echo.Context) error {
	_, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	requestID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request id")
	}

	approve, err := strconv.ParseBool(c.QueryParam("approve"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "approve must be true or false")
	}

	if err := h.roleService.Decide(c.Request().Context(), role, requestID, approve); err != nil {
		return err
	}

	decision := "rejected"
	if approve {
		decision = "approved"
	}
	metrics.RoleDecisionsTotal.WithLabelValues(decision).Inc()

	return c.JSON(http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Role request %s successfully", decision),
	})
}
