package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy surfaced to callers. Read-side queries (IsAuthenticated,
// CurrentUser) never return these; they degrade to false/nil instead.
var (
	// ErrAuthentication covers rejected credentials (401/400-class on the
	// auth endpoints).
	ErrAuthentication = errors.New("authentication failed")
	// ErrConflict is returned on registration when the identity exists.
	ErrConflict = errors.New("identity already exists")
	// ErrNetwork means no response was received: the backend is unreachable.
	ErrNetwork = errors.New("backend unreachable")
	// ErrServer covers backend 5xx responses.
	ErrServer = errors.New("server error")
	// ErrForbidden covers backend 403 responses.
	ErrForbidden = errors.New("access forbidden")
	// ErrNotFound covers backend 404 responses.
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidRequest covers backend 400 responses outside the auth flows.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrMalformedToken is internal: the credential could not be decoded.
	// Never surfaced to the UI; the session store is cleared instead.
	ErrMalformedToken = errors.New("malformed token")
)

// APIError carries the HTTP status and server-provided message of a failed
// backend call. It wraps one of the sentinel errors above so callers can
// classify with errors.Is while still showing the server's own message.
type APIError struct {
	Status  int
	Message string
	Kind    error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Kind != nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

func (e *APIError) Unwrap() error {
	return e.Kind
}
