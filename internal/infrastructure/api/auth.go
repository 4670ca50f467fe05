package api

import (
	"context"
	"net/http"

	"github.com/rentaride/client-go/internal/core/ports"
)

// Login posts the credentials. A 400/401 here is the backend's "wrong
// credentials" answer and does not tear the session down.
func (c *Client) Login(ctx context.Context, req ports.LoginRequest) (*ports.AuthResult, error) {
	var res ports.AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Register posts the sign-up form. The result's Token may legitimately be
// empty; the caller handles that degraded response.
func (c *Client) Register(ctx context.Context, req ports.RegisterRequest) (*ports.AuthResult, error) {
	var res ports.AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Logout notifies the backend. Callers treat failure as advisory.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

// Me fetches the fresh profile of the signed-in principal.
func (c *Client) Me(ctx context.Context) (*ports.AuthUser, error) {
	var user ports.AuthUser
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Refresh exchanges a refresh token for a new credential.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*ports.AuthResult, error) {
	body := map[string]string{"refreshToken": refreshToken}
	var res ports.AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", nil, body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ForgotPassword requests a reset email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/auth/forgot-password", nil, map[string]string{"email": email}, nil)
}

// ResetPassword completes a password reset.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	body := map[string]string{"token": token, "password": newPassword}
	return c.do(ctx, http.MethodPost, "/auth/reset-password", nil, body, nil)
}

// VerifyEmail confirms an address from a mailed token.
func (c *Client) VerifyEmail(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/auth/verify-email", nil, map[string]string{"token": token}, nil)
}
