// Package redisstore backs the session store with Redis, sharing one
// session across every process of the same profile. Change notifications
// ride a pub/sub channel, standing in for the browser's storage event.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rentaride/client-go/internal/core/domain"
	"github.com/rentaride/client-go/internal/core/ports"
)

const defaultTimeout = 5 * time.Second

// Config captures the settings for establishing a Redis connection.
type Config struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// Connect initialises a Redis client and validates connectivity with a
// ping. A default timeout is applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}

// Store keeps the two session slots under prefixed keys and publishes the
// changed key name on the events channel after every mutation.
type Store struct {
	client *redis.Client
	prefix string
}

// New wraps an established Redis client. The prefix namespaces the keys and
// the notification channel, e.g. "rentaride:session".
func New(client *redis.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

func (s *Store) key(slot string) string {
	return s.prefix + ":" + slot
}

func (s *Store) channel() string {
	return s.prefix + ":events"
}

// Save overwrites both slots in one pipeline, then notifies subscribers.
// An empty credential removes the credential slot while keeping the user
// record.
func (s *Store) Save(ctx context.Context, cred domain.Credential, user *domain.UserRecord) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	if cred == "" {
		pipe.Del(ctx, s.key(domain.StorageKeyCredential))
	} else {
		pipe.Set(ctx, s.key(domain.StorageKeyCredential), string(cred), 0)
	}
	pipe.Set(ctx, s.key(domain.StorageKeyUser), data, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session save: %w", err)
	}

	s.publish(ctx, domain.StorageKeyCredential)
	s.publish(ctx, domain.StorageKeyUser)
	return nil
}

// Credential returns the stored token, or empty when absent.
func (s *Store) Credential(ctx context.Context) (domain.Credential, error) {
	val, err := s.client.Get(ctx, s.key(domain.StorageKeyCredential)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("session read: %w", err)
	}
	return domain.Credential(val), nil
}

// User returns the cached record, failing soft on absent or corrupt bytes.
func (s *Store) User(ctx context.Context) (*domain.UserRecord, error) {
	data, err := s.client.Get(ctx, s.key(domain.StorageKeyUser)).Bytes()
	if err != nil {
		return nil, nil
	}

	var user domain.UserRecord
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, nil
	}
	return &user, nil
}

// Clear removes both slots in one pipeline, then notifies subscribers.
func (s *Store) Clear(ctx context.Context) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key(domain.StorageKeyCredential))
	pipe.Del(ctx, s.key(domain.StorageKeyUser))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session clear: %w", err)
	}

	s.publish(ctx, domain.StorageKeyCredential)
	s.publish(ctx, domain.StorageKeyUser)
	return nil
}

// Changes implements ports.SessionNotifier over Redis pub/sub. The channel
// closes when ctx is cancelled.
func (s *Store) Changes(ctx context.Context) (<-chan ports.SessionEvent, error) {
	sub := s.client.Subscribe(ctx, s.channel())
	// Force the subscription onto the wire before the caller mutates the
	// store, otherwise early events are lost.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("session subscribe: %w", err)
	}

	out := make(chan ports.SessionEvent, 16)
	go func() {
		defer close(out)
		defer sub.Close()
		in := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-in:
				if !ok {
					return
				}
				select {
				case out <- ports.SessionEvent{Key: msg.Payload}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// publish is best-effort: a missed notification only delays convergence
// until the next guard evaluation.
func (s *Store) publish(ctx context.Context, slot string) {
	_ = s.client.Publish(ctx, s.channel(), slot).Err()
}
