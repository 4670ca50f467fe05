package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/rentaride/client-go/internal/core/domain"
	"github.com/rentaride/client-go/internal/infrastructure/store"
)

// TestWatcher_LogoutInAnotherTab simulates two tabs sharing one store: the
// watcher's tab observes the other tab's clear without ever calling
// IsAuthenticated itself.
func TestWatcher_LogoutInAnotherTab(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mem := store.NewMemory()
	svc := NewAuthService(&stubAuthAPI{}, mem, NewTokenValidator(0), zerolog.Nop())

	cred := domain.Credential(testToken(t, 5*time.Minute))
	if err := mem.Save(ctx, cred, &domain.UserRecord{Username: "demo"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	watcher := NewSessionWatcher(svc, mem, zerolog.Nop())
	states := make(chan domain.SessionState, 8)
	unsubscribe := watcher.OnSessionChange(func(s domain.SessionState) { states <- s })
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = watcher.Run(ctx)
	}()

	// Initial derivation sees the live session.
	if s := waitState(t, states); !s.Authenticated {
		t.Fatalf("initial state not authenticated: %+v", s)
	}

	// "Other tab" logs out through its own handle on the same store.
	if err := mem.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case s := <-states:
			if !s.Authenticated && s.User == nil {
				if watcher.State().Authenticated {
					t.Fatalf("cached state still authenticated")
				}
				cancel()
				<-done
				return
			}
		case <-deadline:
			t.Fatalf("watcher never observed the logout")
		}
	}
}

func TestWatcher_Unsubscribe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mem := store.NewMemory()
	svc := NewAuthService(&stubAuthAPI{}, mem, NewTokenValidator(0), zerolog.Nop())
	watcher := NewSessionWatcher(svc, mem, zerolog.Nop())

	states := make(chan domain.SessionState, 8)
	unsubscribe := watcher.OnSessionChange(func(s domain.SessionState) { states <- s })

	go func() { _ = watcher.Run(ctx) }()
	waitState(t, states)

	unsubscribe()
	if err := mem.Save(ctx, "tok", &domain.UserRecord{Username: "demo"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	select {
	case s := <-states:
		t.Fatalf("unsubscribed observer still notified: %+v", s)
	case <-time.After(200 * time.Millisecond):
	}
}

func waitState(t *testing.T, states <-chan domain.SessionState) domain.SessionState {
	t.Helper()
	select {
	case s := <-states:
		return s
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for session state")
		return domain.SessionState{}
	}
}
