package app

import (
	"testing"
	"time"
)

func TestShutdownToken_OneShot(t *testing.T) {
	token := NewShutdownToken()

	if token.Requested() {
		t.Error("new token already requested")
	}
	select {
	case <-token.Done():
		t.Error("new token already done")
	default:
	}

	token.Trigger()
	if !token.Requested() {
		t.Error("Requested() = false after Trigger()")
	}
	select {
	case <-token.Done():
	case <-time.After(time.Second):
		t.Error("Done() not closed after Trigger()")
	}

	// A second trigger has no additional effect.
	token.Trigger()
	if !token.Requested() {
		t.Error("Requested() = false after second Trigger()")
	}
}

func TestShutdownToken_ConcurrentTriggers(t *testing.T) {
	token := NewShutdownToken()
	for i := 0; i < 8; i++ {
		go token.Trigger()
	}

	select {
	case <-token.Done():
	case <-time.After(time.Second):
		t.Fatal("Done() not closed")
	}
	if !token.Requested() {
		t.Error("Requested() = false")
	}
}
