package domain

import (
	"errors"
	"time"
)

const (
	RoleUser          = "user"
	RoleOrganisation  = "organisation"
	RoleInternalStaff = "internal-staff"
	RoleSuperuser     = "superuser"
)

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrForbidden = errors.New("access forbidden")
var ErrRoleAlreadyAssigned = errors.New("role already assigned")

var ErrTokenExpired = errors.New("token has expired")
var ErrTokenInvalid = errors.New("invalid token")
var ErrTokenMismatch = errors.New("refresh token does not match")

// User models a registered account. RefreshToken holds the single live
// refresh token for the account; rotation overwrites it.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Name         string    `json:"name"`
	OrgName      string    `json:"org_name,omitempty"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// upgradableRoles are the roles a registrant may petition for.
var upgradableRoles = map[string]struct{}{
	RoleOrganisation:  {},
	RoleInternalStaff: {},
}

// IsUpgradableRole reports whether role can be requested at registration time.
func IsUpgradableRole(role string) bool {
	_, ok := upgradableRoles[role]
	return ok
}

// RequireRole is the single authorization capability check used by every
// role-gated operation.
func RequireRole(have, want string) error {
	if have != want {
		return ErrForbidden
	}
	return nil
}
