package ports

import (
	"context"

	"github.com/rentaride/client-go/internal/core/domain"
)

// SessionStore owns the persisted session bytes: one slot for the bearer
// credential, one for the serialized user record. It performs no validation
// of the stored contents; that is the auth service's job.
type SessionStore interface {
	// Save writes both values, overwriting any prior session. An empty
	// credential removes the credential slot while still caching the user
	// record (the degraded registration path).
	Save(ctx context.Context, cred domain.Credential, user *domain.UserRecord) error

	// Credential returns the stored bearer token, or empty when absent.
	// The error is reserved for storage faults, never for absence.
	Credential(ctx context.Context) (domain.Credential, error)

	// User returns the cached user record. It fails soft: absent or
	// unparseable bytes yield (nil, nil), never an error the render path
	// would have to handle.
	User(ctx context.Context) (*domain.UserRecord, error)

	// Clear removes both values. From the caller's perspective the removal
	// is atomic: no subsequent read observes one value without the other.
	Clear(ctx context.Context) error
}

// SessionEvent reports that one of the persisted session slots changed.
// Key is one of domain.StorageKeyCredential or domain.StorageKeyUser.
type SessionEvent struct {
	Key string
}

// SessionNotifier delivers change notifications for the session slots,
// including writes made by other processes sharing the same store. It is
// the explicit, testable replacement for the browser's ambient storage
// event.
type SessionNotifier interface {
	// Changes returns a channel of events that closes when ctx is
	// cancelled. Delivery is best-effort and asynchronous; consumers
	// re-derive state rather than trusting event payloads.
	Changes(ctx context.Context) (<-chan SessionEvent, error)
}
