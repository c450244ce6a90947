package config

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// syncBuffer is a bytes.Buffer safe for the watcher's timer goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatcher_NoticesChange(t *testing.T) {
	path := writeTempConfig(t, "port = 5700\n")

	var out syncBuffer
	logger := zerolog.New(&out)

	w := NewWatcher(path, logger)
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte("port = 6700\n"), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	deadline := time.After(3 * time.Second)
	for {
		if strings.Contains(out.String(), "restart required") {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("no restart notice logged, output: %s", out.String())
		case <-time.After(50 * time.Millisecond):
		}
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	path := writeTempConfig(t, "port = 5700\n")

	var out syncBuffer
	logger := zerolog.New(&out)

	w := NewWatcher(path, logger)
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	other := path + ".bak"
	if err := os.WriteFile(other, []byte("x"), 0o644); err != nil {
		t.Fatalf("write sibling: %v", err)
	}

	time.Sleep(2 * debounceDelay)
	if strings.Contains(out.String(), "restart required") {
		t.Errorf("notice logged for unrelated file, output: %s", out.String())
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	path := writeTempConfig(t, "port = 5700\n")

	w := NewWatcher(path, zerolog.Nop())
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	w.Stop()
	w.Stop()
}
