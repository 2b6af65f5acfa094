package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Request / Response types ---

type registerRequest struct {
	Username     string `json:"username"      validate:"required"`
	Password     string `json:"password"      validate:"required,min=6"`
	Email        string `json:"email"         validate:"required,email"`
	PhoneNumber  string `json:"phone_number"  validate:"required"`
	Name         string `json:"name"`
	OrgName      string `json:"org_name"`
	RoleRequest  string `json:"role_request"  validate:"omitempty,oneof=organisation internal-staff"`
	InternalRole string `json:"internal_role"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// tokenPairResponse is returned by login and refresh. The refresh token it
// carries supersedes any previously issued one.
type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Role         string `json:"role"`
	Name         string `json:"name"`
}

type registeredUserResponse struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Name        string `json:"name"`
	OrgName     string `json:"org_name,omitempty"`
	Role        string `json:"role"`
}

type roleResponse struct {
	Role string `json:"role"`
}
