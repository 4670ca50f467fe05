package domain

import (
	"strings"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Defaults applied when the backend omits the optional profile fields.
const (
	DefaultFavoriteCarType = "Not specified"
	DefaultMembership      = "Standard"
)

// Authority mirrors the Spring-style authority object some backend builds
// return instead of a plain role string.
type Authority struct {
	Authority string `json:"authority"`
}

// UserRecord is the cached, denormalized profile of the signed-in principal.
// It is a display convenience only: authorization decisions on the backend
// never trust it, and it is only meaningful alongside a non-expired
// credential.
type UserRecord struct {
	ID              int64     `json:"id,omitempty"`
	Username        string    `json:"username"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Role            string    `json:"role"`
	CreatedAt       time.Time `json:"createdAt"`
	TotalBookings   int       `json:"totalBookings"`
	TotalSpent      float64   `json:"totalSpent"`
	FavoriteCarType string    `json:"favoriteCarType"`
	MembershipLevel string    `json:"membershipLevel"`
}

// CanonicalRole reduces the backend's role spellings ("user", "ADMIN",
// "ROLE_ADMIN", ...) to a single lowercase form without the conventional
// "ROLE_" prefix.
func CanonicalRole(role string) string {
	role = strings.TrimSpace(role)
	if rest, ok := strings.CutPrefix(strings.ToUpper(role), "ROLE_"); ok {
		role = rest
	}
	return strings.ToLower(role)
}

// ResolveRole picks the canonical role from whichever shape the backend
// used: a plain role string, or a list of authorities. Defaults to RoleUser
// when both are absent. The resolution happens once, here, so every read
// site can rely on UserRecord.Role being a plain canonical string.
func ResolveRole(role string, authorities []Authority) string {
	if role != "" {
		return CanonicalRole(role)
	}
	if len(authorities) > 0 && authorities[0].Authority != "" {
		return CanonicalRole(authorities[0].Authority)
	}
	return RoleUser
}

// Normalize fills every optional field with its documented default.
// FirstName falls back to the username, matching what the storefront shows
// for accounts created before the profile form existed.
func (u *UserRecord) Normalize() {
	if u.FirstName == "" {
		u.FirstName = u.Username
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	u.Role = CanonicalRole(u.Role)
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	if u.FavoriteCarType == "" {
		u.FavoriteCarType = DefaultFavoriteCarType
	}
	if u.MembershipLevel == "" {
		u.MembershipLevel = DefaultMembership
	}
}
