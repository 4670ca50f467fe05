package ports

import (
	"context"
	"time"

	"github.com/rentaride/client-go/internal/core/domain"
)

// LoginRequest carries the credentials presented at login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest carries the sign-up form fields.
type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string `json:"phone,omitempty"`
}

// AuthUser is the wire shape of the user object in auth responses. Role may
// arrive as a plain string or as a Spring-style authorities list; both are
// resolved into a canonical role when the record is normalized.
type AuthUser struct {
	ID          int64              `json:"id"`
	Username    string             `json:"username"`
	FirstName   string             `json:"firstName"`
	LastName    string             `json:"lastName"`
	Email       string             `json:"email"`
	Phone       string             `json:"phone"`
	Role        string             `json:"role"`
	Authorities []domain.Authority `json:"authorities,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// AuthResult is the success payload of login and registration. Token may be
// empty: a registration accepted without a credential is the documented
// degraded response, not an error.
type AuthResult struct {
	Token string    `json:"token"`
	User  *AuthUser `json:"user"`
}

// AuthAPI is the backend transport consumed by the auth service. Every call
// suspends until the round-trip resolves or the bounded timeout fires, and
// returns errors already mapped to the domain taxonomy.
type AuthAPI interface {
	Login(ctx context.Context, req LoginRequest) (*AuthResult, error)
	Register(ctx context.Context, req RegisterRequest) (*AuthResult, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*AuthUser, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	VerifyEmail(ctx context.Context, token string) error
}
