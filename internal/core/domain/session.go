package domain

// Credential is the opaque bearer token issued by the backend at login or
// registration. This subsystem never inspects it beyond the expiry claim in
// its payload segment; presence alone does not imply validity.
type Credential string

// Storage keys for the two persisted session values. Every store backend
// uses the same pair so change notifications can be matched by key.
const (
	StorageKeyCredential = "token"
	StorageKeyUser       = "user"
)

// SessionState is the derived view of the persisted session: recomputed on
// demand from credential + user record, never persisted itself.
type SessionState struct {
	Authenticated bool
	User          *UserRecord
}
