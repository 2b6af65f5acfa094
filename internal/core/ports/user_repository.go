package ports

import (
	"context"

	"github.com/jigyasu/commerce-system/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrUserExists when the
	// username, email, or phone collides with an existing account.
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// UpdateRefreshToken overwrites the single stored refresh token,
	// invalidating whatever value was there before.
	UpdateRefreshToken(ctx context.Context, userID int64, token string) error
	UpdateRole(ctx context.Context, userID int64, role string) error
}
