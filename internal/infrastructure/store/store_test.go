package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rentaride/client-go/internal/core/domain"
	"github.com/rentaride/client-go/internal/core/ports"
)

func TestMemory_SaveLoadClear(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	user := &domain.UserRecord{Username: "demo", Role: "user"}
	if err := mem.Save(ctx, "tok-123", user); err != nil {
		t.Fatalf("save: %v", err)
	}

	cred, err := mem.Credential(ctx)
	if err != nil {
		t.Fatalf("credential: %v", err)
	}
	if cred != "tok-123" {
		t.Fatalf("credential = %q, want tok-123", cred)
	}

	loaded, err := mem.User(ctx)
	if err != nil {
		t.Fatalf("user: %v", err)
	}
	if loaded == nil || loaded.Username != "demo" {
		t.Fatalf("user = %+v, want demo", loaded)
	}

	if err := mem.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if cred, _ := mem.Credential(ctx); cred != "" {
		t.Fatalf("credential survived clear")
	}
	if loaded, _ := mem.User(ctx); loaded != nil {
		t.Fatalf("user survived clear")
	}
}

func TestMemory_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	if err := mem.Save(ctx, "first", &domain.UserRecord{Username: "a"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := mem.Save(ctx, "second", &domain.UserRecord{Username: "b"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	cred, _ := mem.Credential(ctx)
	user, _ := mem.User(ctx)
	if cred != "second" || user.Username != "b" {
		t.Fatalf("got (%q, %q), want wholesale replacement", cred, user.Username)
	}
}

func TestMemory_EmptyCredentialRemovesTokenSlot(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	if err := mem.Save(ctx, "tok", &domain.UserRecord{Username: "a"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := mem.Save(ctx, "", &domain.UserRecord{Username: "a"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	if cred, _ := mem.Credential(ctx); cred != "" {
		t.Fatalf("credential = %q, want removed", cred)
	}
	if user, _ := mem.User(ctx); user == nil {
		t.Fatalf("user record must survive a credential-less save")
	}
}

func TestMemory_ChangesDeliverKeys(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mem := NewMemory()
	changes, err := mem.Changes(ctx)
	if err != nil {
		t.Fatalf("changes: %v", err)
	}

	if err := mem.Save(ctx, "tok", &domain.UserRecord{Username: "a"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	seen := map[string]bool{}
	for i := 0; i < 2; i++ {
		ev := <-changes
		seen[ev.Key] = true
	}
	if !seen[domain.StorageKeyCredential] || !seen[domain.StorageKeyUser] {
		t.Fatalf("events = %v, want both storage keys", seen)
	}
}

func TestFile_SaveLoadClear(t *testing.T) {
	ctx := context.Background()
	fs, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}

	if err := fs.Save(ctx, "tok-456", &domain.UserRecord{Username: "demo", TotalBookings: 3}); err != nil {
		t.Fatalf("save: %v", err)
	}

	cred, err := fs.Credential(ctx)
	if err != nil {
		t.Fatalf("credential: %v", err)
	}
	if cred != "tok-456" {
		t.Fatalf("credential = %q, want tok-456", cred)
	}

	user, err := fs.User(ctx)
	if err != nil {
		t.Fatalf("user: %v", err)
	}
	if user == nil || user.TotalBookings != 3 {
		t.Fatalf("user = %+v, want persisted record", user)
	}

	if err := fs.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if cred, _ := fs.Credential(ctx); cred != "" {
		t.Fatalf("credential survived clear")
	}
}

func TestFile_AbsentReadsAreSoft(t *testing.T) {
	ctx := context.Background()
	fs, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}

	cred, err := fs.Credential(ctx)
	if err != nil || cred != "" {
		t.Fatalf("empty store read = (%q, %v), want absent", cred, err)
	}
	user, err := fs.User(ctx)
	if err != nil || user != nil {
		t.Fatalf("empty store read = (%+v, %v), want absent", user, err)
	}

	// Clear on an empty store is a no-op, not an error.
	if err := fs.Clear(ctx); err != nil {
		t.Fatalf("clear on empty store: %v", err)
	}
}

func TestFile_CorruptUserFailsSoft(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fs, err := NewFile(dir)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}

	path := filepath.Join(dir, domain.StorageKeyUser+".json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	user, err := fs.User(ctx)
	if err != nil {
		t.Fatalf("corrupt read must not error, got %v", err)
	}
	if user != nil {
		t.Fatalf("corrupt read = %+v, want nil", user)
	}
}

// Both backends satisfy the store port; Memory additionally notifies.
var (
	_ ports.SessionStore    = (*Memory)(nil)
	_ ports.SessionNotifier = (*Memory)(nil)
	_ ports.SessionStore    = (*File)(nil)
)
