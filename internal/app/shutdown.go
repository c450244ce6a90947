package app

import (
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
)

// ShutdownToken is a one-shot cancellation flag. The asynchronous signal
// context does nothing but trigger it; all teardown happens on the
// control thread after observing it. Once triggered it never resets, and
// triggering again has no further effect.
type ShutdownToken struct {
	requested atomic.Bool
	once      sync.Once
	done      chan struct{}
}

// NewShutdownToken returns an untriggered token.
func NewShutdownToken() *ShutdownToken {
	return &ShutdownToken{done: make(chan struct{})}
}

// Trigger requests shutdown. Idempotent and safe from any goroutine.
func (t *ShutdownToken) Trigger() {
	t.once.Do(func() {
		t.requested.Store(true)
		close(t.done)
	})
}

// Requested reports whether shutdown has been requested.
func (t *ShutdownToken) Requested() bool {
	return t.requested.Load()
}

// Done returns a channel closed on the first trigger.
func (t *ShutdownToken) Done() <-chan struct{} {
	return t.done
}

// notifyOnSignals routes SIGINT and SIGTERM to the token. The signal
// goroutine only flips the token; it does no logging or teardown. The
// returned stop function unregisters the handler and ends the goroutine.
func notifyOnSignals(token *ShutdownToken) (stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		for range ch {
			token.Trigger()
		}
	}()

	return func() {
		signal.Stop(ch)
		close(ch)
	}
}
