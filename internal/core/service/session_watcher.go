package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rentaride/client-go/internal/core/domain"
	"github.com/rentaride/client-go/internal/core/ports"
)

// sessionDeriver is the slice of the auth service the watcher needs.
type sessionDeriver interface {
	SessionState(ctx context.Context) domain.SessionState
}

// SessionWatcher propagates session changes made elsewhere — another
// goroutine, another process sharing the store — into this context's UI
// state. It re-derives the session on every relevant notification, the
// same derivation used at startup, and fans the result out to registered
// observers. Delivery is eventually consistent: a navigation in between is
// still protected because the route guard re-checks on its own.
type SessionWatcher struct {
	session  sessionDeriver
	notifier ports.SessionNotifier
	log      zerolog.Logger

	mu    sync.Mutex
	subs  map[int]func(domain.SessionState)
	next  int
	state domain.SessionState
}

// NewSessionWatcher builds a watcher over the given notifier.
func NewSessionWatcher(session sessionDeriver, notifier ports.SessionNotifier, log zerolog.Logger) *SessionWatcher {
	return &SessionWatcher{
		session:  session,
		notifier: notifier,
		log:      log,
		subs:     make(map[int]func(domain.SessionState)),
	}
}

// OnSessionChange registers an observer and returns its unsubscribe
// function. The observer fires on every re-derivation, including ones that
// did not change the state; callers diff if they care.
func (w *SessionWatcher) OnSessionChange(fn func(domain.SessionState)) (unsubscribe func()) {
	w.mu.Lock()
	id := w.next
	w.next++
	w.subs[id] = fn
	w.mu.Unlock()

	return func() {
		w.mu.Lock()
		delete(w.subs, id)
		w.mu.Unlock()
	}
}

// State returns the last derived session state.
func (w *SessionWatcher) State() domain.SessionState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Run derives the initial state, then blocks re-deriving on every session
// notification until ctx is cancelled.
func (w *SessionWatcher) Run(ctx context.Context) error {
	changes, err := w.notifier.Changes(ctx)
	if err != nil {
		return err
	}

	w.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-changes:
			if !ok {
				return nil
			}
			if ev.Key != domain.StorageKeyCredential && ev.Key != domain.StorageKeyUser {
				continue
			}
			w.refresh(ctx)
		}
	}
}

func (w *SessionWatcher) refresh(ctx context.Context) {
	state := w.session.SessionState(ctx)

	w.mu.Lock()
	w.state = state
	observers := make([]func(domain.SessionState), 0, len(w.subs))
	for _, fn := range w.subs {
		observers = append(observers, fn)
	}
	w.mu.Unlock()

	w.log.Debug().Bool("authenticated", state.Authenticated).Msg("session state derived")
	for _, fn := range observers {
		fn(state)
	}
}
