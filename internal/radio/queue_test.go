package radio

import "testing"

func TestChannelQueue_PushPop(t *testing.T) {
	q := NewChannelQueue(2)

	if _, ok := q.Pop(); ok {
		t.Error("Pop() on empty queue returned a buffer")
	}

	a := &SampleBuffer{Timestamp: 1}
	b := &SampleBuffer{Timestamp: 2}
	if !q.Push(a) || !q.Push(b) {
		t.Fatal("Push() failed below capacity")
	}

	got, ok := q.Pop()
	if !ok || got.Timestamp != 1 {
		t.Errorf("Pop() = %v, %v; want first buffer", got, ok)
	}
	got, ok = q.Pop()
	if !ok || got.Timestamp != 2 {
		t.Errorf("Pop() = %v, %v; want second buffer", got, ok)
	}
}

func TestChannelQueue_DropsWhenFull(t *testing.T) {
	q := NewChannelQueue(1)

	if !q.Push(&SampleBuffer{}) {
		t.Fatal("Push() failed below capacity")
	}
	if q.Push(&SampleBuffer{}) {
		t.Error("Push() succeeded against a full queue")
	}
	if q.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", q.Dropped())
	}
	if q.Len() != 1 || q.Cap() != 1 {
		t.Errorf("Len/Cap = %d/%d, want 1/1", q.Len(), q.Cap())
	}
}
