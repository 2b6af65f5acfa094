package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jigyasu/commerce-system/internal/core/domain"
	"github.com/jigyasu/commerce-system/internal/core/ports"
)

const defaultDisplayName = "Anonymous User"

// AuthService implements registration, login, and refresh-token rotation.
type AuthService struct {
	users    ports.UserRepository
	requests ports.RoleRequestRepository
	tokens   *TokenService
	log      zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	requests ports.RoleRequestRepository,
	tokens *TokenService,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{users: users, requests: requests, tokens: tokens, log: log}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Username == "" || in.Password == "" || in.Email == "" || in.Phone == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	name := in.Name
	if name == "" {
		name = defaultDisplayName
	}

	user, err := s.users.Create(ctx, &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		Phone:        in.Phone,
		Name:         name,
		OrgName:      in.OrgName,
		Role:         domain.RoleUser,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, err
	}

	if domain.IsUpgradableRole(in.RoleRequest) {
		internalRole := ""
		if in.RoleRequest == domain.RoleInternalStaff {
			internalRole = in.InternalRole
		}
		if _, err := s.requests.Create(ctx, &domain.RoleUpgradeRequest{
			UserID:        user.ID,
			RequestedRole: in.RoleRequest,
			InternalRole:  internalRole,
			Status:        domain.RequestPending,
		}); err != nil {
			return nil, fmt.Errorf("create role request: %w", err)
		}
		s.log.Info().Str("username", user.Username).Str("requested_role", in.RoleRequest).Msg("role upgrade requested")
	}

	s.log.Info().Str("username", user.Username).Msg("user registered")
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.TokenPair, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", user.Username).Str("role", user.Role).Msg("user logged in")
	return pair, nil
}

// Refresh exchanges a refresh token for a new access+refresh pair. The
// presented token must match the single stored value; a superseded token is
// rejected even though its signature is still valid.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	claims, err := s.tokens.Verify(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByUsername(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}

	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		s.log.Warn().Str("username", user.Username).Msg("stale refresh token presented")
		return nil, domain.ErrTokenMismatch
	}

	return s.issuePair(ctx, user)
}

func (s *AuthService) Role(ctx context.Context, username string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

// issuePair creates a new access+refresh pair and rotates the stored refresh
// token, invalidating the previous one.
func (s *AuthService) issuePair(ctx context.Context, user *domain.User) (*ports.TokenPair, error) {
	access, err := s.tokens.IssueAccessToken(user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	refresh, err := s.tokens.IssueRefreshToken(user.Username)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	if err := s.users.UpdateRefreshToken(ctx, user.ID, refresh); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &ports.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		Role:         user.Role,
		Name:         user.Name,
	}, nil
}
