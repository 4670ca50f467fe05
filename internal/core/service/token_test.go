package service

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rentaride/client-go/internal/core/domain"
)

func signedToken(t *testing.T, claims jwt.MapClaims) domain.Credential {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return domain.Credential(signed)
}

func TestIsExpired_PastExp(t *testing.T) {
	v := NewTokenValidator(0)
	cred := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(-time.Minute).Unix()})

	if !v.IsExpired(cred) {
		t.Fatalf("token with past exp should be expired")
	}
}

func TestIsExpired_FutureExp(t *testing.T) {
	v := NewTokenValidator(0)
	cred := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(5 * time.Minute).Unix()})

	if v.IsExpired(cred) {
		t.Fatalf("token with future exp should not be expired")
	}
}

func TestIsExpired_NoExpClaim(t *testing.T) {
	v := NewTokenValidator(0)
	cred := signedToken(t, jwt.MapClaims{"sub": "demo"})

	if v.IsExpired(cred) {
		t.Fatalf("token without exp should not expire locally")
	}
}

func TestIsExpired_SkewRetiresEarly(t *testing.T) {
	v := NewTokenValidator(10 * time.Minute)
	cred := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(5 * time.Minute).Unix()})

	if !v.IsExpired(cred) {
		t.Fatalf("token inside the skew window should count as expired")
	}
}

func TestIsExpired_Malformed(t *testing.T) {
	v := NewTokenValidator(0)

	payload := base64.RawURLEncoding.EncodeToString([]byte("not json"))
	cases := map[string]domain.Credential{
		"empty":            "",
		"one segment":      "justonesegment",
		"two segments":     "head.payload",
		"not base64url":    "head.!!!.sig",
		"non-json payload": domain.Credential("head." + payload + ".sig"),
	}

	for name, cred := range cases {
		if !v.IsExpired(cred) {
			t.Fatalf("%s: malformed credential should count as expired", name)
		}
	}
}
