// Package device defines the contract between the orchestrator and the
// hardware layer. A device is opened with an opaque argument string and
// reports back which processing topology it supports; everything past
// that negotiation (streaming, DMA, tuning) belongs to the backend.
package device

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sdrlab/trxd/internal/config"
)

// Capability is the processing topology a device reports after opening.
// It drives which radio interface variant gets built on top of it.
type Capability int

const (
	// CapNormal runs all channels at an integer multiple of the symbol rate.
	CapNormal Capability = iota

	// CapResampledLow indicates a fixed 64 MHz master clock requiring
	// rate conversion between device and transceiver.
	CapResampledLow

	// CapResampledHigh indicates a fixed 100 MHz master clock requiring
	// rate conversion between device and transceiver.
	CapResampledHigh

	// CapMultiCarrier serves multiple carriers through one wideband
	// front end.
	CapMultiCarrier
)

func (c Capability) String() string {
	switch c {
	case CapNormal:
		return "Normal"
	case CapResampledLow:
		return "ResampledLow"
	case CapResampledHigh:
		return "ResampledHigh"
	case CapMultiCarrier:
		return "MultiCarrier"
	default:
		return "Unknown"
	}
}

var (
	// ErrUnsupportedBackend is returned when the device argument string
	// names a backend this build does not provide.
	ErrUnsupportedBackend = errors.New("device: unsupported backend")

	// ErrOpen is returned (wrapped) when a backend fails to open.
	ErrOpen = errors.New("device: open failed")

	// ErrNotOpen is returned by operations requiring an opened device.
	ErrNotOpen = errors.New("device: not open")
)

// Params carries the construction parameters common to all backends.
type Params struct {
	TxSPS    uint
	RxSPS    uint
	Channels uint

	// MultiCarrier requests the multi-carrier topology from the device.
	MultiCarrier bool

	// Offset is the baseband frequency offset; 0 means automatic.
	Offset float64
}

// Device is an opened or openable radio device.
type Device interface {
	// Open opens the hardware and negotiates the processing topology.
	// The returned capability is only valid when err is nil.
	Open(ref config.ReferenceMode, swapChannels bool) (Capability, error)

	// Close releases the hardware. Safe to call more than once.
	Close() error
}

// New selects a backend from the device argument string and constructs
// an unopened device. The argument string is a comma-separated list
// whose first element names the backend; the rest is backend-specific
// and passed through unparsed. An empty string selects the simulated
// backend.
func New(p Params, args string) (Device, error) {
	backend := args
	if i := strings.IndexByte(args, ','); i >= 0 {
		backend = args[:i]
	}
	backend = strings.TrimSpace(backend)

	switch backend {
	case "", "sim":
		return newSimDevice(p, args), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBackend, backend)
	}
}
