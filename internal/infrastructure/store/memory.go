// Package store provides the session store backends: an in-memory store
// for tests and single-process use, and a file store for durable sessions
// on disk. The Redis-backed store lives in the redisstore subpackage.
package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rentaride/client-go/internal/core/domain"
	"github.com/rentaride/client-go/internal/core/ports"
)

// Memory is an in-process session store. Everything sharing one *Memory
// sees the same slots, which makes it the cross-tab stand-in for tests:
// each "tab" holds the same instance and receives change events through
// Changes.
type Memory struct {
	mu    sync.RWMutex
	slots map[string][]byte

	subMu sync.Mutex
	subs  map[int]chan ports.SessionEvent
	next  int
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		slots: make(map[string][]byte),
		subs:  make(map[int]chan ports.SessionEvent),
	}
}

// Save overwrites both session slots. An empty credential removes the
// credential slot while keeping the user record.
func (m *Memory) Save(_ context.Context, cred domain.Credential, user *domain.UserRecord) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	m.mu.Lock()
	if cred == "" {
		delete(m.slots, domain.StorageKeyCredential)
	} else {
		m.slots[domain.StorageKeyCredential] = []byte(cred)
	}
	m.slots[domain.StorageKeyUser] = data
	m.mu.Unlock()

	m.notify(domain.StorageKeyCredential)
	m.notify(domain.StorageKeyUser)
	return nil
}

// Credential returns the stored token, or empty when absent.
func (m *Memory) Credential(_ context.Context) (domain.Credential, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return domain.Credential(m.slots[domain.StorageKeyCredential]), nil
}

// User returns the cached record, failing soft on absent or corrupt bytes.
func (m *Memory) User(_ context.Context) (*domain.UserRecord, error) {
	m.mu.RLock()
	data, ok := m.slots[domain.StorageKeyUser]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	var user domain.UserRecord
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, nil
	}
	return &user, nil
}

// Clear removes both slots.
func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	delete(m.slots, domain.StorageKeyCredential)
	delete(m.slots, domain.StorageKeyUser)
	m.mu.Unlock()

	m.notify(domain.StorageKeyCredential)
	m.notify(domain.StorageKeyUser)
	return nil
}

// Changes implements ports.SessionNotifier. Events are dropped rather than
// blocking a writer when a subscriber stops draining its channel.
func (m *Memory) Changes(ctx context.Context) (<-chan ports.SessionEvent, error) {
	ch := make(chan ports.SessionEvent, 16)

	m.subMu.Lock()
	id := m.next
	m.next++
	m.subs[id] = ch
	m.subMu.Unlock()

	go func() {
		<-ctx.Done()
		m.subMu.Lock()
		delete(m.subs, id)
		m.subMu.Unlock()
		close(ch)
	}()

	return ch, nil
}

func (m *Memory) notify(key string) {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	for _, ch := range m.subs {
		select {
		case ch <- ports.SessionEvent{Key: key}:
		default:
		}
	}
}
