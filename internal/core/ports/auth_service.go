package ports

import (
	"context"

	"github.com/jigyasu/commerce-system/internal/core/domain"
)

// RegisterInput carries everything a registration may supply. RoleRequest and
// InternalRole are optional; a recognised RoleRequest opens a pending
// role upgrade petition alongside the account.
type RegisterInput struct {
	Username     string
	Password     string
	Email        string
	Phone        string
	Name         string
	OrgName      string
	RoleRequest  string
	InternalRole string
}

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	Role         string
	Name         string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	// Refresh exchanges a valid, current refresh token for a new pair and
	// rotates the stored token.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Role(ctx context.Context, username string) (string, error)
}
