package ports

import (
	"context"

	"github.com/rentaride/client-go/internal/core/domain"
)

// SessionReader answers the read-side auth queries used pervasively in
// rendering paths. Implementations never fail: any internal error degrades
// to false/nil.
type SessionReader interface {
	// IsAuthenticated is true iff a credential is stored and not expired.
	IsAuthenticated(ctx context.Context) bool
	// CurrentUser returns the cached user record without checking expiry.
	// Display of "last known user" during a brief offline window is a
	// legitimate use; access decisions must also consult IsAuthenticated.
	CurrentUser(ctx context.Context) *domain.UserRecord
	// SessionState derives the full session view in one read.
	SessionState(ctx context.Context) domain.SessionState
}

// AuthService orchestrates the session lifecycle against the backend.
type AuthService interface {
	SessionReader

	Login(ctx context.Context, req LoginRequest) (*domain.UserRecord, error)
	Register(ctx context.Context, req RegisterRequest) (*domain.UserRecord, error)
	// Logout is a guaranteed-success local operation: the backend call is
	// best-effort and its failure is never surfaced.
	Logout(ctx context.Context)

	UserRole(ctx context.Context) string
	HasRole(ctx context.Context, role string) bool
	IsAdmin(ctx context.Context) bool
}
