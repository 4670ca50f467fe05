package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rentaride/client-go/internal/core/domain"
	"github.com/rentaride/client-go/internal/core/ports"
	"github.com/rentaride/client-go/internal/infrastructure/store"
)

func newClientAgainst(t *testing.T, handler http.Handler, st ports.SessionStore, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, st, zerolog.Nop(), opts...)
}

func TestClient_AttachesBearer(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	if err := mem.Save(ctx, "tok-abc", &domain.UserRecord{Username: "demo"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	var gotAuth string
	c := newClientAgainst(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(ports.AuthUser{Username: "demo"})
	}), mem)

	if _, err := c.Me(ctx); err != nil {
		t.Fatalf("me: %v", err)
	}
	if gotAuth != "Bearer tok-abc" {
		t.Fatalf("authorization = %q, want bearer credential", gotAuth)
	}
}

func TestClient_NoBearerWhenSignedOut(t *testing.T) {
	var gotAuth string
	c := newClientAgainst(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}), store.NewMemory())

	if _, err := c.ListVehicles(context.Background(), ports.VehicleFilter{}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("authorization = %q, want none", gotAuth)
	}
}

func TestClient_UnreachableBackendIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing listens any more

	c := New(srv.URL, store.NewMemory(), zerolog.Nop())
	_, err := c.Me(context.Background())
	if !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("err = %v, want ErrNetwork", err)
	}

	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %T, want *domain.APIError", err)
	}
	if apiErr.Message != "cannot connect to server" {
		t.Fatalf("message = %q", apiErr.Message)
	}
	if apiErr.Status != 0 {
		t.Fatalf("status = %d, a transport failure carries no status", apiErr.Status)
	}
}

func TestClient_StatusTaxonomy(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, domain.ErrInvalidRequest},
		{http.StatusForbidden, domain.ErrForbidden},
		{http.StatusNotFound, domain.ErrNotFound},
		{http.StatusConflict, domain.ErrConflict},
		{http.StatusInternalServerError, domain.ErrServer},
		{http.StatusBadGateway, domain.ErrServer},
	}

	for _, tc := range cases {
		c := newClientAgainst(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			w.Write([]byte(`{"error":"nope"}`))
		}), store.NewMemory())

		_, err := c.GetVehicle(context.Background(), "v1")
		if !errors.Is(err, tc.want) {
			t.Fatalf("status %d: err = %v, want %v", tc.status, err, tc.want)
		}
	}
}

func TestClient_SurfacesServerMessage(t *testing.T) {
	c := newClientAgainst(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"username already taken"}`))
	}), store.NewMemory())

	_, err := c.Register(context.Background(), ports.RegisterRequest{Username: "demo"})
	if err == nil || err.Error() != "username already taken" {
		t.Fatalf("err = %v, want the backend's own text", err)
	}
}

func TestClient_SurfacesMessageEnvelope(t *testing.T) {
	c := newClientAgainst(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"startDate must precede endDate"}`))
	}), store.NewMemory())

	_, err := c.CreateBooking(context.Background(), ports.BookingRequest{})
	if err == nil || err.Error() != "startDate must precede endDate" {
		t.Fatalf("err = %v, want message envelope text", err)
	}
}

func TestClient_UnauthorizedTearsSessionDown(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	if err := mem.Save(ctx, "stale-tok", &domain.UserRecord{Username: "demo"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	hookCalls := 0
	c := newClientAgainst(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"token expired"}`))
	}), mem, WithUnauthorizedHandler(func() { hookCalls++ }))

	_, err := c.Me(ctx)
	if !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("err = %v, want ErrAuthentication", err)
	}

	if cred, _ := mem.Credential(ctx); cred != "" {
		t.Fatalf("credential survived the 401 teardown")
	}
	if user, _ := mem.User(ctx); user != nil {
		t.Fatalf("user record survived the 401 teardown")
	}
	if hookCalls != 1 {
		t.Fatalf("unauthorized hook ran %d times, want once", hookCalls)
	}
}

func TestClient_LoginRejectionDoesNotTearDown(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	if err := mem.Save(ctx, "other-session", &domain.UserRecord{Username: "someone"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	hookCalls := 0
	c := newClientAgainst(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid username or password"}`))
	}), mem, WithUnauthorizedHandler(func() { hookCalls++ }))

	if _, err := c.Login(ctx, ports.LoginRequest{Username: "demo", Password: "bad"}); err == nil {
		t.Fatalf("login must fail")
	}

	if cred, _ := mem.Credential(ctx); cred != "other-session" {
		t.Fatalf("login rejection cleared an unrelated session")
	}
	if hookCalls != 0 {
		t.Fatalf("unauthorized hook must not run for the login view")
	}
}

func TestClient_QueryParameters(t *testing.T) {
	var gotQuery string
	c := newClientAgainst(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	}), store.NewMemory())

	_, err := c.ListVehicles(context.Background(), ports.VehicleFilter{Category: "SUV", MaxPrice: 120})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotQuery != "category=SUV&maxPrice=120" {
		t.Fatalf("query = %q", gotQuery)
	}
}
