package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	APIBaseURL string `env:"API_BASE_URL, default=http://localhost:8081/api"`
	Env        string `env:"ENV,          default=development"`
	LogLevel   string `env:"LOG_LEVEL,    default=info"`

	// HTTPTimeout bounds every backend round-trip. Callers must never hang
	// indefinitely on a dead backend.
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT, default=15s"`

	// ExpirySkew is subtracted from the token's exp claim when checking
	// expiry. Zero preserves the storefront's observed edge-of-expiry
	// behaviour; raise it to avoid requests racing server-side expiry.
	ExpirySkew time.Duration `env:"TOKEN_EXPIRY_SKEW, default=0s"`

	Storage StorageConfig
	Redis   RedisConfig
}

type StorageConfig struct {
	// Backend selects the session store: memory, file, or redis.
	Backend string `env:"SESSION_BACKEND, default=file"`
	// Dir is where the file backend keeps the session slots.
	Dir string `env:"SESSION_DIR, default=.rentaride"`
	// KeyPrefix namespaces the redis backend's keys and channel.
	KeyPrefix string `env:"SESSION_KEY_PREFIX, default=rentaride:session"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
