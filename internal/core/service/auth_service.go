package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rentaride/client-go/internal/core/domain"
	"github.com/rentaride/client-go/internal/core/ports"
	"github.com/rentaride/client-go/internal/metrics"
)

// AuthService orchestrates login, registration, and logout against the
// backend, and answers the session queries the rest of the client renders
// from. It composes the session store and the token validator; neither of
// those ever calls the network, and the service is the only component that
// clears the store on their behalf.
type AuthService struct {
	api    ports.AuthAPI
	store  ports.SessionStore
	tokens *TokenValidator
	log    zerolog.Logger
}

// NewAuthService wires the service. tokens may not be nil; pass
// NewTokenValidator(0) for the default expiry policy.
func NewAuthService(api ports.AuthAPI, store ports.SessionStore, tokens *TokenValidator, log zerolog.Logger) *AuthService {
	return &AuthService{api: api, store: store, tokens: tokens, log: log}
}

// Login authenticates against the backend and persists the returned
// session. The normalized user record is returned; on rejection the error
// carries the backend's own message.
func (s *AuthService) Login(ctx context.Context, req ports.LoginRequest) (*domain.UserRecord, error) {
	res, err := s.api.Login(ctx, req)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginOutcome(err)).Inc()
		return nil, asAuthRejection(err)
	}

	user := normalizeAuthUser(res.User)
	if user.Username == "" {
		user.Username = req.Username
	}
	user.Normalize()

	if res.Token == "" {
		// Accepted without a credential: cache the record but leave the
		// session unauthenticated, mirroring the degraded register path.
		s.log.Warn().Str("username", user.Username).Msg("login response carried no token")
	}
	if err := s.store.Save(ctx, domain.Credential(res.Token), user); err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("username", user.Username).Str("role", user.Role).Msg("login succeeded")
	return user, nil
}

// Register creates an account and persists the returned session. When the
// backend accepts the registration but returns no token, a best-effort
// record built from the input is cached anyway: the documented degraded
// path, after which IsAuthenticated stays false despite CurrentUser being
// non-nil.
func (s *AuthService) Register(ctx context.Context, req ports.RegisterRequest) (*domain.UserRecord, error) {
	res, err := s.api.Register(ctx, req)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(registerOutcome(err)).Inc()
		return nil, err
	}

	user := normalizeAuthUser(res.User)
	if user.Username == "" {
		user.Username = req.Username
	}
	if user.FirstName == "" {
		user.FirstName = req.FirstName
	}
	if user.LastName == "" {
		user.LastName = req.LastName
	}
	if user.Email == "" {
		user.Email = req.Email
	}
	if user.Phone == "" {
		user.Phone = req.Phone
	}
	user.Normalize()

	if err := s.store.Save(ctx, domain.Credential(res.Token), user); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	outcome := "success"
	if res.Token == "" {
		outcome = "degraded"
		s.log.Warn().Str("username", user.Username).Msg("registration accepted without token")
	}
	metrics.RegistrationsTotal.WithLabelValues(outcome).Inc()
	return user, nil
}

// Logout notifies the backend on a best-effort basis and unconditionally
// clears the local session. It never fails: whatever the backend call did,
// the local session is gone when Logout returns.
func (s *AuthService) Logout(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil {
		s.log.Warn().Err(err).Msg("logout call failed, clearing local session anyway")
	}
	if err := s.store.Clear(ctx); err != nil {
		s.log.Error().Err(err).Msg("session clear failed")
	}
	metrics.SessionTeardownsTotal.WithLabelValues("logout").Inc()
}

// IsAuthenticated is true iff a credential is stored and not expired. A
// credential that cannot be decoded counts as expired and triggers a
// self-healing store clear. Never errors; any internal failure reads as
// false.
func (s *AuthService) IsAuthenticated(ctx context.Context) bool {
	cred, err := s.store.Credential(ctx)
	if err != nil || cred == "" {
		return false
	}

	if s.tokens.IsExpired(cred) {
		if err := s.store.Clear(ctx); err != nil {
			s.log.Error().Err(err).Msg("clearing expired session failed")
		}
		metrics.SessionTeardownsTotal.WithLabelValues("expired").Inc()
		return false
	}
	return true
}

// CurrentUser returns the cached record without checking expiry. Showing
// the last known user during a brief offline window is legitimate; access
// decisions must additionally consult IsAuthenticated. Never errors.
func (s *AuthService) CurrentUser(ctx context.Context) *domain.UserRecord {
	user, err := s.store.User(ctx)
	if err != nil {
		return nil
	}
	return user
}

// SessionState derives the full session view in one pass.
func (s *AuthService) SessionState(ctx context.Context) domain.SessionState {
	return domain.SessionState{
		Authenticated: s.IsAuthenticated(ctx),
		User:          s.CurrentUser(ctx),
	}
}

// UserRole returns the cached principal's canonical role, defaulting to
// "user" when no record or role is available.
func (s *AuthService) UserRole(ctx context.Context) string {
	user := s.CurrentUser(ctx)
	if user == nil || user.Role == "" {
		return domain.RoleUser
	}
	return user.Role
}

// HasRole compares case-normalized roles, tolerating the conventional
// "ROLE_"-prefixed spelling on either side.
func (s *AuthService) HasRole(ctx context.Context, role string) bool {
	have := domain.CanonicalRole(s.UserRole(ctx))
	want := domain.CanonicalRole(role)
	return have != "" && strings.EqualFold(have, want)
}

// IsAdmin reports whether the cached principal holds the admin role.
func (s *AuthService) IsAdmin(ctx context.Context) bool {
	return s.HasRole(ctx, domain.RoleAdmin)
}

// RefreshProfile fetches GET /auth/me and re-persists the record wholesale
// alongside the existing credential.
func (s *AuthService) RefreshProfile(ctx context.Context) (*domain.UserRecord, error) {
	me, err := s.api.Me(ctx)
	if err != nil {
		return nil, err
	}

	user := normalizeAuthUser(me)
	user.Normalize()

	cred, err := s.store.Credential(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, cred, user); err != nil {
		return nil, err
	}
	return user, nil
}

// RefreshToken exchanges a refresh token for a new credential and stores
// it. On failure the session is torn down, matching the storefront's
// stubbed refresh flow. No retry or rotation hardening is attempted.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) error {
	res, err := s.api.Refresh(ctx, refreshToken)
	if err != nil {
		s.Logout(ctx)
		return err
	}
	if res.Token == "" {
		return nil
	}

	user, err := s.store.User(ctx)
	if err != nil {
		user = nil
	}
	return s.store.Save(ctx, domain.Credential(res.Token), user)
}

// ForgotPassword requests a reset email.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	return s.api.ForgotPassword(ctx, email)
}

// ResetPassword completes a reset started by ForgotPassword.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	return s.api.ResetPassword(ctx, token, newPassword)
}

// VerifyEmail confirms an address from a mailed token.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	return s.api.VerifyEmail(ctx, token)
}

// normalizeAuthUser converts the wire user shape into a domain record,
// resolving the role once regardless of which shape the backend used.
func normalizeAuthUser(u *ports.AuthUser) *domain.UserRecord {
	if u == nil {
		return &domain.UserRecord{}
	}
	return &domain.UserRecord{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      domain.ResolveRole(u.Role, u.Authorities),
		CreatedAt: u.CreatedAt,
	}
}

// asAuthRejection folds 400-class login responses into the authentication
// error so the UI shows one consistent failure, keeping the server message.
func asAuthRejection(err error) error {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) && errors.Is(err, domain.ErrInvalidRequest) {
		return &domain.APIError{Status: apiErr.Status, Message: apiErr.Message, Kind: domain.ErrAuthentication}
	}
	return err
}

func loginOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrNetwork):
		return "network_error"
	case errors.Is(err, domain.ErrServer):
		return "server_error"
	default:
		return "rejected"
	}
}

func registerOutcome(err error) string {
	if errors.Is(err, domain.ErrConflict) {
		return "conflict"
	}
	return "error"
}
