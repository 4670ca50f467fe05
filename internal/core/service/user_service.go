package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rentaride/client-go/internal/core/domain"
	"github.com/rentaride/client-go/internal/core/ports"
)

// UserService fronts the profile and admin-user endpoints. Profile edits
// re-persist the cached user record wholesale — the stored record is
// replaced, never patched — so the header and profile views stay in sync
// with what the backend accepted.
type UserService struct {
	api   ports.UserAPI
	store ports.SessionStore
	log   zerolog.Logger
}

func NewUserService(api ports.UserAPI, store ports.SessionStore, log zerolog.Logger) *UserService {
	return &UserService{api: api, store: store, log: log}
}

// Profile fetches the signed-in principal's profile and refreshes the
// cached record.
func (s *UserService) Profile(ctx context.Context) (*domain.UserRecord, error) {
	me, err := s.api.FetchProfile(ctx)
	if err != nil {
		return nil, err
	}
	return s.recache(ctx, me)
}

// UpdateProfile submits the wholesale profile edit and re-persists the
// record the backend returns.
func (s *UserService) UpdateProfile(ctx context.Context, in ports.ProfileUpdate) (*domain.UserRecord, error) {
	me, err := s.api.UpdateProfile(ctx, in)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("username", me.Username).Msg("profile updated")
	return s.recache(ctx, me)
}

// ChangePassword submits the change-password form. The session credential
// is untouched; the backend decides whether existing tokens survive.
func (s *UserService) ChangePassword(ctx context.Context, in ports.PasswordChange) error {
	return s.api.ChangePassword(ctx, in)
}

// ListUsers returns every account (admin table view).
func (s *UserService) ListUsers(ctx context.Context) ([]ports.AuthUser, error) {
	return s.api.ListUsers(ctx)
}

// ToggleUserStatus flips an account's active flag (admin table view).
func (s *UserService) ToggleUserStatus(ctx context.Context, id int64) error {
	return s.api.ToggleUserStatus(ctx, id)
}

func (s *UserService) recache(ctx context.Context, me *ports.AuthUser) (*domain.UserRecord, error) {
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
