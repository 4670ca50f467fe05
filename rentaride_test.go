package rentaride_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	rentaride "github.com/rentaride/client-go"
	"github.com/rentaride/client-go/internal/core/domain"
	"github.com/rentaride/client-go/internal/core/ports"
	"github.com/rentaride/client-go/internal/infrastructure/config"
	"github.com/rentaride/client-go/internal/stubserver"
)

func startStub(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(stubserver.NewRouter(stubserver.NewServer("test-secret")))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewWithConfig_MemoryBackend(t *testing.T) {
	ctx := context.Background()
	srv := startStub(t)

	cfg := &config.Config{
		APIBaseURL:  srv.URL,
		LogLevel:    "error",
		HTTPTimeout: 5 * time.Second,
		Storage:     config.StorageConfig{Backend: "memory"},
	}

	sdk, err := rentaride.NewWithConfig(ctx, cfg)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	defer sdk.Close()

	if sdk.Watcher == nil {
		t.Fatalf("memory backend notifies; watcher must be wired")
	}

	if _, err := sdk.Auth.Login(ctx, ports.LoginRequest{Username: "demo", Password: "demo123"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if !sdk.Auth.IsAuthenticated(ctx) {
		t.Fatalf("not authenticated after login")
	}

	d := sdk.Guard.Evaluate(ctx, "/bookings", domain.UserPolicy())
	if d.Kind != domain.DecisionGranted {
		t.Fatalf("guard decision = %q, want granted", d.Kind)
	}
}

func TestNew_FromEnvironment(t *testing.T) {
	ctx := context.Background()
	srv := startStub(t)

	t.Setenv("API_BASE_URL", srv.URL)
	t.Setenv("SESSION_BACKEND", "memory")
	t.Setenv("LOG_LEVEL", "error")

	sdk, err := rentaride.New(ctx)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	defer sdk.Close()

	if sdk.Config.APIBaseURL != srv.URL {
		t.Fatalf("base url = %q, want %q", sdk.Config.APIBaseURL, srv.URL)
	}
	if sdk.Config.Storage.Backend != "memory" {
		t.Fatalf("backend = %q", sdk.Config.Storage.Backend)
	}

	vehicles, err := sdk.Vehicles.List(ctx, ports.VehicleFilter{})
	if err != nil {
		t.Fatalf("list vehicles: %v", err)
	}
	if len(vehicles) == 0 {
		t.Fatalf("seed catalog came back empty")
	}
}

func TestNewWithConfig_UnknownBackend(t *testing.T) {
	cfg := &config.Config{
		APIBaseURL: "http://localhost:0",
		Storage:    config.StorageConfig{Backend: "carrier-pigeon"},
	}
	if _, err := rentaride.NewWithConfig(context.Background(), cfg); err == nil {
		t.Fatalf("unknown backend must fail assembly")
	}
}
