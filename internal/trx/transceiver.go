// Package trx constructs the transceiver core: the object bound to the
// upper-layer control sockets and the radio interface, consuming one
// receive queue per channel. Burst modulation and demodulation live
// behind this construction boundary and are not part of the
// orchestrator's concern.
package trx

import (
	"errors"
	"fmt"

	"github.com/sdrlab/trxd/internal/config"
	"github.com/sdrlab/trxd/internal/radio"
)

var (
	// ErrInit is returned (wrapped) when transceiver initialization fails.
	ErrInit = errors.New("trx: transceiver initialization failed")

	// ErrAttach is the base error for channel queue attachment failures.
	ErrAttach = errors.New("trx: queue attach failed")
)

// AttachError names the channel whose receive queue could not be
// attached. Unwraps to ErrAttach.
type AttachError struct {
	Channel uint
	Reason  string
}

func (e *AttachError) Error() string {
	return fmt.Sprintf("trx: could not attach queue to channel %d: %s", e.Channel, e.Reason)
}

func (e *AttachError) Unwrap() error { return ErrAttach }

// Protocol time origin the clock starts counting from. The upper layer
// expects the first indications a few frames into the epoch.
const (
	initialFrame = 3
	initialSlot  = 0
)

// Transceiver is the constructed core, bound to one radio interface and
// holding one receive queue per channel. Exclusively owned by the
// orchestrator; closed before the interface it depends on.
type Transceiver struct {
	basePort   uint
	localAddr  string
	remoteAddr string

	txSPS uint
	rxSPS uint
	chans uint

	clockFrame uint32
	clockSlot  uint32

	iface      *radio.Interface
	rssiOffset float64

	filler    config.FillerMode
	rtsc      uint
	rachDelay uint
	edge      bool

	queues map[uint]*radio.ChannelQueue
	closed bool
}

// Build constructs the transceiver core against the given interface,
// runs its mandatory initialization, and attaches every channel's
// receive queue. Attachment is all-or-nothing: on any failure the whole
// core is discarded and an error naming the failing channel is returned,
// so no partially wired transceiver ever reaches the caller.
func Build(cfg *config.Config, iface *radio.Interface) (*Transceiver, error) {
	t := &Transceiver{
		basePort:   cfg.BasePort,
		localAddr:  cfg.LocalAddr,
		remoteAddr: cfg.RemoteAddr,
		txSPS:      cfg.TxSPS,
		rxSPS:      cfg.RxSPS,
		chans:      cfg.Channels,
		clockFrame: initialFrame,
		clockSlot:  initialSlot,
		iface:      iface,
		rssiOffset: cfg.RSSIOffset,
		queues:     make(map[uint]*radio.ChannelQueue),
	}

	if err := t.init(cfg.Filler, cfg.RTSC, cfg.RACHDelay, cfg.EDGE); err != nil {
		t.Close()
		return nil, fmt.Errorf("%w: %v", ErrInit, err)
	}

	for i := uint(0); i < t.chans; i++ {
		q := iface.ReceiveQueue(i)
		if q == nil {
			t.Close()
			return nil, &AttachError{Channel: i, Reason: "no receive queue on interface"}
		}
		if err := t.attachQueue(q, i); err != nil {
			t.Close()
			return nil, &AttachError{Channel: i, Reason: err.Error()}
		}
	}

	return t, nil
}

// init applies the idle-slot and test-mode parameters. The configuration
// layer has already range-checked them; this enforces the constraints
// only the core itself can know.
func (t *Transceiver) init(filler config.FillerMode, rtsc, rachDelay uint, edge bool) error {
	if t.iface == nil {
		return fmt.Errorf("no radio interface")
	}
	if t.chans == 0 {
		return fmt.Errorf("no channels")
	}
	if edge && (t.txSPS != 4 || t.rxSPS != 4) {
		return fmt.Errorf("EDGE requires 4 samples-per-symbol")
	}
	if filler == config.FillerEdgeRandom && !edge {
		return fmt.Errorf("EDGE filler without EDGE support")
	}

	t.filler = filler
	t.rtsc = rtsc
	t.rachDelay = rachDelay
	t.edge = edge
	return nil
}

// attachQueue wires one channel's receive queue into the core.
func (t *Transceiver) attachQueue(q *radio.ChannelQueue, chanIdx uint) error {
	if t.closed {
		return fmt.Errorf("transceiver closed")
	}
	if chanIdx >= t.chans {
		return fmt.Errorf("channel %d out of range", chanIdx)
	}
	if _, ok := t.queues[chanIdx]; ok {
		return fmt.Errorf("channel %d already attached", chanIdx)
	}
	t.queues[chanIdx] = q
	return nil
}

// NumChannels returns the number of channels the core serves.
func (t *Transceiver) NumChannels() uint { return t.chans }

// ReceiveQueue returns the attached queue for a channel, or nil if the
// channel was never attached or the core is closed.
func (t *Transceiver) ReceiveQueue(chanIdx uint) *radio.ChannelQueue {
	if t.closed {
		return nil
	}
	return t.queues[chanIdx]
}

// Filler returns the configured idle-slot policy.
func (t *Transceiver) Filler() config.FillerMode { return t.filler }

// Close detaches all queues and drops the interface reference. Must run
// before the interface itself is closed. Safe to call more than once.
func (t *Transceiver) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	t.queues = nil
	t.iface = nil
	return nil
}
