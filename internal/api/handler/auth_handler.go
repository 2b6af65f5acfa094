package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jigyasu/commerce-system/internal/api/metrics"
	"github.com/jigyasu/commerce-system/internal/core/domain"
	"github.com/jigyasu/commerce-system/internal/core/ports"
)

// AuthHandler handles registration, login, token refresh, and role lookup.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account. A role_request of "organisation" or
// "internal-staff" additionally opens a pending upgrade request.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  registeredUserResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username:     req.Username,
		Password:     req.Password,
		Email:        req.Email,
		Phone:        req.PhoneNumber,
		Name:         req.Name,
		OrgName:      req.OrgName,
		RoleRequest:  req.RoleRequest,
		InternalRole: req.InternalRole,
	})
	if err != nil {
		return err
	}

	roleRequest := req.RoleRequest
	if roleRequest == "" {
		roleRequest = "none"
	}
	metrics.RegistrationsTotal.WithLabelValues(roleRequest).Inc()

	return c.JSON(http.StatusCreated, registeredUserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		PhoneNumber: user.Phone,
		Name:        user.Name,
		OrgName:     user.OrgName,
		Role:        user.Role,
	})
}

// Login authenticates by email and password and returns a fresh token pair.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  tokenPairResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	pair, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Role:         pair.Role,
		Name:         pair.Name,
	})
}

// Refresh exchanges a refresh token for a new pair, rotating the stored token.
//
// @Summary      Refresh tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Current refresh token"
// @Success      200   {object}  tokenPairResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	pair, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenMismatch):
			metrics.TokenRefreshesTotal.WithLabelValues("mismatch").Inc()
		default:
			metrics.TokenRefreshesTotal.WithLabelValues("invalid").Inc()
		}
		return err
	}
	metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Role:         pair.Role,
		Name:         pair.Name,
	})
}

// Role returns the caller's current role, read from storage rather than the
// token so a recent upgrade is visible immediately.
//
// @Summary      Get own role
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  roleResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/auth/role [get]
func (h *AuthHandler) Role(c echo.Context) error {
	username, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	role, err := h.authService.Role(c.Request().Context(), username)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, roleResponse{Role: role})
}
