package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jigyasu/commerce-system/internal/core/domain"
	"github.com/jigyasu/commerce-system/internal/core/ports"
)

// stubUserRepo is an in-memory ports.UserRepository shared by the service
// tests in this package.
type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Username == u.Username || existing.Email == u.Email || existing.Phone == u.Phone {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	clone := cloneUser(u)
	clone.ID = r.nextID
	r.users[clone.Username] = clone
	return cloneUser(clone), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if u, ok := r.users[username]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdateRefreshToken(_ context.Context, userID int64, token string) error {
	for _, u := range r.users {
		if u.ID == userID {
			u.RefreshToken = token
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdateRole(_ context.Context, userID int64, role string) error {
	for _, u := range r.users {
		if u.ID == userID {
			u.Role = role
			return nil
		}
	}
	return domain.ErrUserNotFound
}

// stubRequestRepo is an in-memory ports.RoleRequestRepository. Approve copies
// the requested role onto the owner in the linked user repo, matching the
// transactional behaviour of the real repository.
type stubRequestRepo struct {
	reqs   map[int64]*domain.RoleUpgradeRequest
	users  *stubUserRepo
	nextID int64
}

func newStubRequestRepo(users *stubUserRepo) *stubRequestRepo {
	return &stubRequestRepo{reqs: make(map[int64]*domain.RoleUpgradeRequest), users: users}
}

func (r *stubRequestRepo) Create(_ context.Context, req *domain.RoleUpgradeRequest) (*domain.RoleUpgradeRequest, error) {
	r.nextID++
	clone := *req
	clone.ID = r.nextID
	r.reqs[clone.ID] = &clone
	return &clone, nil
}

func (r *stubRequestRepo) FindByID(_ context.Context, id int64) (*domain.RoleUpgradeRequest, error) {
	if req, ok := r.reqs[id]; ok {
		clone := *req
		return &clone, nil
	}
	return nil, domain.ErrRequestNotFound
}

func (r *stubRequestRepo) ListByStatus(_ context.Context, status domain.RequestStatus) ([]ports.RoleRequestView, error) {
	var views []ports.RoleRequestView
	for _, req := range r.reqs {
		if req.Status == status {
			views = append(views, r.view(req))
		}
	}
	return views, nil
}

func (r *stubRequestRepo) Search(_ context.Context, term string) ([]ports.RoleRequestView, error) {
	term = strings.ToLower(term)
	var views []ports.RoleRequestView
	for _, req := range r.reqs {
		owner := r.owner(req.UserID)
		if owner == nil {
			continue
		}
		if strings.Contains(strings.ToLower(owner.Name), term) ||
			strings.Contains(strings.ToLower(owner.Email), term) ||
			strings.Contains(strings.ToLower(owner.Phone), term) {
			views = append(views, r.view(req))
		}
	}
	return views, nil
}

func (r *stubRequestRepo) Approve(_ context.Context, requestID int64) error {
	req, ok := r.reqs[requestID]
	if !ok {
		return domain.ErrRequestNotFound
	}
	owner := r.owner(req.UserID)
	if owner == nil {
		return domain.ErrUserNotFound
	}
	owner.Role = req.RequestedRole
	req.Status = domain.RequestApproved
	return nil
}

func (r *stubRequestRepo) Reject(_ context.Context, requestID int64) error {
	req, ok := r.reqs[requestID]
	if !ok {
		return domain.ErrRequestNotFound
	}
	req.Status = domain.RequestRejected
	return nil
}

func (r *stubRequestRepo) owner(userID int64) *domain.User {
	for _, u := range r.users.users {
		if u.ID == userID {
			return u
		}
	}
	return nil
}

func (r *stubRequestRepo) view(req *domain.RoleUpgradeRequest) ports.RoleRequestView {
	v := ports.RoleRequestView{
		ID:            req.ID,
		UserID:        req.UserID,
		RequestedRole: req.RequestedRole,
		InternalRole:  req.InternalRole,
		Status:        string(req.Status),
	}
	if owner := r.owner(req.UserID); owner != nil {
		v.User = ports.UserPublic{
			Username: owner.Username,
			Email:    owner.Email,
			Name:     owner.Name,
			Phone:    owner.Phone,
			OrgName:  owner.OrgName,
		}
	}
	return v
}

func newAuthService(users *stubUserRepo, requests *stubRequestRepo) *AuthService {
	tokens := NewTokenService("secret", time.Hour, time.Hour)
	return NewAuthService(users, requests, tokens, zerolog.Nop())
}

func registerInput(username, email string) ports.RegisterInput {
	return ports.RegisterInput{
		Username: username,
		Password: "s3cret",
		Email:    email,
		Phone:    "+52" + username,
		Name:     "Name of " + username,
	}
}

func TestAuthService_Register_HashesPassword(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users, newStubRequestRepo(users))

	user, err := svc.Register(context.Background(), registerInput("alice", "alice@x.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.PasswordHash == "s3cret" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected default role user, got %q", user.Role)
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users, newStubRequestRepo(users))

	if _, err := svc.Register(context.Background(), registerInput("bob", "bob@x.com")); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), registerInput("bob", "other@x.com")); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_CreatesRoleRequest(t *testing.T) {
	users := newStubUserRepo()
	requests := newStubRequestRepo(users)
	svc := newAuthService(users, requests)

	in := registerInput("carol", "carol@x.com")
	in.RoleRequest = domain.RoleInternalStaff
	in.InternalRole = "curator"

	user, err := svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	views, err := requests.ListByStatus(context.Background(), domain.RequestPending)
	if err != nil {
		t.Fatalf("list requests: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 pending request, got %d", len(views))
	}
	if views[0].UserID != user.ID || views[0].RequestedRole != domain.RoleInternalStaff || views[0].InternalRole != "curator" {
		t.Fatalf("unexpected request: %+v", views[0])
	}
}

func TestAuthService_Register_IgnoresUnknownRoleRequest(t *testing.T) {
	users := newStubUserRepo()
	requests := newStubRequestRepo(users)
	svc := newAuthService(users, requests)

	in := registerInput("dave", "dave@x.com")
	in.RoleRequest = "superuser"

	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(requests.reqs) != 0 {
		t.Fatalf("superuser must not be requestable, got %d requests", len(requests.reqs))
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users, newStubRequestRepo(users))

	if _, err := svc.Register(context.Background(), registerInput("erin", "erin@x.com")); err != nil {
		t.Fatalf("register: %v", err)
	}

	pair, err := svc.Login(context.Background(), "erin@x.com", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected token pair, got %+v", pair)
	}
	if pair.Role != domain.RoleUser || pair.Name != "Name of erin" {
		t.Fatalf("unexpected role/name: %q %q", pair.Role, pair.Name)
	}

	// The refresh token must be persisted verbatim on the user record.
	stored, err := users.FindByUsername(context.Background(), "erin")
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	if stored.RefreshToken != pair.RefreshToken {
		t.Fatalf("refresh token not persisted verbatim")
	}

	// The access token must embed the stored role.
	tokens := NewTokenService("secret", time.Hour, time.Hour)
	claims, err := tokens.Verify(pair.AccessToken)
	if err != nil {
		t.Fatalf("verify access token: %v", err)
	}
	if claims.Subject != "erin" || claims.Role != stored.Role {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Login_BadPassword(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users, newStubRequestRepo(users))

	_, _ = svc.Register(context.Background(), registerInput("frank", "frank@x.com"))
	if _, err := svc.Login(context.Background(), "frank@x.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users, newStubRequestRepo(users))

	if _, err := svc.Login(context.Background(), "ghost@x.com", "pwd"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Refresh_RotatesToken(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users, newStubRequestRepo(users))

	_, _ = svc.Register(context.Background(), registerInput("grace", "grace@x.com"))
	pair, err := svc.Login(context.Background(), "grace@x.com", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	rotated, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if rotated.RefreshToken == pair.RefreshToken {
		t.Fatalf("refresh token was not rotated")
	}

	// The superseded token must be rejected.
	if _, err := svc.Refresh(context.Background(), pair.RefreshToken); !errors.Is(err, domain.ErrTokenMismatch) {
		t.Fatalf("expected ErrTokenMismatch for stale token, got %v", err)
	}

	// The current token still works.
	if _, err := svc.Refresh(context.Background(), rotated.RefreshToken); err != nil {
		t.Fatalf("refresh with current token: %v", err)
	}
}

func TestAuthService_Refresh_InvalidToken(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users, newStubRequestRepo(users))

	if _, err := svc.Refresh(context.Background(), "garbage"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestAuthService_Refresh_UnknownSubject(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users, newStubRequestRepo(users))

	tokens := NewTokenService("secret", time.Hour, time.Hour)
	token, err := tokens.IssueRefreshToken("nobody")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), token); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Role(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users, newStubRequestRepo(users))

	_, _ = svc.Register(context.Background(), registerInput("henry", "henry@x.com"))

	role, err := svc.Role(context.Background(), "henry")
	if err != nil {
		t.Fatalf("role: %v", err)
	}
	if role != domain.RoleUser {
		t.Fatalf("expected role user, got %q", role)
	}
}
