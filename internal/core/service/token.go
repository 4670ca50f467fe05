package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rentaride/client-go/internal/core/domain"
)

// TokenValidator decides credential expiry from the token's payload alone.
// The signature is deliberately not checked: the backend is the authority
// on token validity, this check only avoids presenting a token that is
// already dead. Anything that cannot be decoded counts as expired — fail
// safe, not fail open.
type TokenValidator struct {
	skew time.Duration
	now  func() time.Time
}

// NewTokenValidator builds a validator. skew is subtracted from the exp
// claim: zero matches the storefront's observed behaviour, a positive value
// retires tokens early to avoid edge-of-expiry races.
func NewTokenValidator(skew time.Duration) *TokenValidator {
	return &TokenValidator{skew: skew, now: time.Now}
}

// IsExpired reports whether the credential is past (or within skew of) its
// exp claim. Undecodable credentials are expired; a decodable token without
// an exp claim never expires locally.
func (v *TokenValidator) IsExpired(cred domain.Credential) bool {
	claims, err := v.decode(cred)
	if err != nil {
		return true
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return true
	}
	if exp == nil {
		return false
	}
	return !v.now().Add(v.skew).Before(exp.Time)
}

// decode extracts the unverified claims from the three-segment bearer
// string.
func (v *TokenValidator) decode(cred domain.Credential) (jwt.MapClaims, error) {
	if cred == "" {
		return nil, domain.ErrMalformedToken
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(string(cred), claims); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedToken, err)
	}
	return claims, nil
}
