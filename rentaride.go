// Package rentaride assembles the RentaRide client SDK: the session store,
// the backend transport, and the auth, guard, and storefront services, all
// wired from environment configuration. Applications embedding individual
// pieces can construct them directly from the internal packages' ports.
package rentaride

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rentaride/client-go/internal/core/ports"
	"github.com/rentaride/client-go/internal/core/service"
	"github.com/rentaride/client-go/internal/infrastructure/api"
	"github.com/rentaride/client-go/internal/infrastructure/config"
	"github.com/rentaride/client-go/internal/infrastructure/store"
	"github.com/rentaride/client-go/internal/infrastructure/store/redisstore"
	"github.com/rentaride/client-go/pkg/logger"
)

// SDK is the fully wired client stack.
type SDK struct {
	Config *config.Config

	Auth     *service.AuthService
	Guard    *service.RouteGuard
	Watcher  *service.SessionWatcher
	Vehicles *service.VehicleService
	Bookings *service.BookingService
	Users    *service.UserService

	// API exposes the raw transport for callers needing endpoints the
	// services do not wrap.
	API *api.Client

	redis *redis.Client
}

// Option customises SDK assembly.
type Option func(*options)

type options struct {
	onUnauthorized func()
	store          ports.SessionStore
}

// WithUnauthorizedHandler registers the hook invoked after a 401 tears the
// session down, typically a redirect to the login view.
func WithUnauthorizedHandler(fn func()) Option {
	return func(o *options) { o.onUnauthorized = fn }
}

// WithSessionStore overrides the configured storage backend, e.g. to share
// one in-memory store across SDK instances in tests.
func WithSessionStore(s ports.SessionStore) Option {
	return func(o *options) { o.store = s }
}

// New loads configuration from the environment and assembles the SDK.
func New(ctx context.Context, opts ...Option) (*SDK, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(ctx, cfg, opts...)
}

// NewWithConfig assembles the SDK from an explicit configuration.
func NewWithConfig(ctx context.Context, cfg *config.Config, opts ...Option) (*SDK, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	sdk := &SDK{Config: cfg}

	sessions := o.store
	if sessions == nil {
		var err error
		sessions, err = sdk.openStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
	}

	clientOpts := []api.Option{api.WithTimeout(cfg.HTTPTimeout)}
	if o.onUnauthorized != nil {
		clientOpts = append(clientOpts, api.WithUnauthorizedHandler(o.onUnauthorized))
	}
	client := api.New(cfg.APIBaseURL, sessions, log, clientOpts...)

	auth := service.NewAuthService(client, sessions, service.NewTokenValidator(cfg.ExpirySkew), log)

	sdk.Auth = auth
	sdk.Guard = service.NewRouteGuard(auth)
	sdk.Vehicles = service.NewVehicleService(client, log)
	sdk.Bookings = service.NewBookingService(client, log)
	sdk.Users = service.NewUserService(client, sessions, log)
	sdk.API = client

	if notifier, ok := sessions.(ports.SessionNotifier); ok {
		sdk.Watcher = service.NewSessionWatcher(auth, notifier, log)
	}
	return sdk, nil
}

// openStore builds the session store the configuration selects.
func (s *SDK) openStore(ctx context.Context, cfg *config.Config) (ports.SessionStore, error) {
	switch cfg.Storage.Backend {
	case "memory":
		return store.NewMemory(), nil
	case "file":
		return store.NewFile(cfg.Storage.Dir)
	case "redis":
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		s.redis = client
		return redisstore.New(client, cfg.Storage.KeyPrefix), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Storage.Backend)
	}
}

// Close releases backend connections held by the SDK.
func (s *SDK) Close() error {
	if s.redis != nil {
		return s.redis.Close()
	}
	return nil
}
