package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/rentaride/client-go/internal/core/domain"
	"github.com/rentaride/client-go/internal/core/ports"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, "test:session"), mr
}

func TestRedis_SaveLoadClear(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t)

	if err := st.Save(ctx, "tok-789", &domain.UserRecord{Username: "demo", Role: "user"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	cred, err := st.Credential(ctx)
	if err != nil {
		t.Fatalf("credential: %v", err)
	}
	if cred != "tok-789" {
		t.Fatalf("credential = %q, want tok-789", cred)
	}

	user, err := st.User(ctx)
	if err != nil {
		t.Fatalf("user: %v", err)
	}
	if user == nil || user.Username != "demo" {
		t.Fatalf("user = %+v, want demo", user)
	}

	if err := st.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if cred, _ := st.Credential(ctx); cred != "" {
		t.Fatalf("credential survived clear")
	}
	if user, _ := st.User(ctx); user != nil {
		t.Fatalf("user survived clear")
	}
}

func TestRedis_CorruptUserFailsSoft(t *testing.T) {
	ctx := context.Background()
	st, mr := newTestStore(t)

	mr.Set("test:session:"+domain.StorageKeyUser, "{broken")

	user, err := st.User(ctx)
	if err != nil {
		t.Fatalf("corrupt read must not error, got %v", err)
	}
	if user != nil {
		t.Fatalf("corrupt read = %+v, want nil", user)
	}
}

// TestRedis_CrossProcessNotification drives two store handles over one
// Redis, the process analog of two browser tabs sharing origin storage.
func TestRedis_CrossProcessNotification(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mr := miniredis.RunT(t)
	clientA := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	clientB := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = clientA.Close()
		_ = clientB.Close()
	})

	tabA := New(clientA, "test:session")
	tabB := New(clientB, "test:session")

	changes, err := tabB.Changes(ctx)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if err := tabA.Save(ctx, "tok", &domain.UserRecord{Username: "demo"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	seen := map[string]bool{}
	deadline := time.After(2 * time.Second)
	for len(seen) < 2 {
		select {
		case ev := <-changes:
			seen[ev.Key] = true
		case <-deadline:
			t.Fatalf("events = %v, want both storage keys", seen)
		}
	}
	if !seen[domain.StorageKeyCredential] || !seen[domain.StorageKeyUser] {
		t.Fatalf("events = %v, want credential and user keys", seen)
	}
}

var (
	_ ports.SessionStore    = (*Store)(nil)
	_ ports.SessionNotifier = (*Store)(nil)
)
