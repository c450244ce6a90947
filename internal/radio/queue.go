package radio

import "sync/atomic"

// SampleBuffer is one block of baseband samples moving from the radio
// interface toward the transceiver core for a single channel.
type SampleBuffer struct {
	// Samples is the complex baseband data for this block.
	Samples []complex64

	// Timestamp is the device time of the first sample.
	Timestamp uint64
}

// ChannelQueue is a bounded FIFO of sample buffers connecting the radio
// interface output to the transceiver input for one channel. Producers
// never block: a push against a full queue drops the buffer and counts
// the loss.
type ChannelQueue struct {
	ch      chan *SampleBuffer
	dropped atomic.Uint64
}

// NewChannelQueue creates a queue holding at most depth buffers.
func NewChannelQueue(depth int) *ChannelQueue {
	return &ChannelQueue{ch: make(chan *SampleBuffer, depth)}
}

// Push enqueues a buffer. Returns false if the queue was full and the
// buffer was dropped.
func (q *ChannelQueue) Push(b *SampleBuffer) bool {
	select {
	case q.ch <- b:
		return true
	default:
		q.dropped.Add(1)
		return false
	}
}

// Pop dequeues the oldest buffer, or returns false if the queue is empty.
func (q *ChannelQueue) Pop() (*SampleBuffer, bool) {
	select {
	case b := <-q.ch:
		return b, true
	default:
		return nil, false
	}
}

// Wait returns the receive side of the queue for select-based consumers.
func (q *ChannelQueue) Wait() <-chan *SampleBuffer {
	return q.ch
}

// Len returns the number of buffers currently queued.
func (q *ChannelQueue) Len() int { return len(q.ch) }

// Cap returns the queue depth.
func (q *ChannelQueue) Cap() int { return cap(q.ch) }

// Dropped returns the number of buffers dropped against a full queue.
func (q *ChannelQueue) Dropped() uint64 { return q.dropped.Load() }
