// Package radio builds the interface layer between the device and the
// transceiver core: per-variant sample rate conversion, channel
// multiplexing, and the per-channel receive queues. The transceiver
// consumes vectors sampled at multiples of the symbol rate; the device
// may run at some other rate entirely, which is what the resampling
// variants bridge.
package radio

import (
	"errors"
	"fmt"

	"github.com/sdrlab/trxd/internal/config"
	"github.com/sdrlab/trxd/internal/device"
)

// Variant identifies which interface topology an Interface implements.
type Variant int

const (
	VariantNormal Variant = iota
	VariantResampledLow
	VariantResampledHigh
	VariantMultiCarrier
)

func (v Variant) String() string {
	switch v {
	case VariantNormal:
		return "Normal"
	case VariantResampledLow:
		return "ResampledLow"
	case VariantResampledHigh:
		return "ResampledHigh"
	case VariantMultiCarrier:
		return "MultiCarrier"
	default:
		return "Unknown"
	}
}

var (
	// ErrUnsupportedCapability is returned when the device reports a
	// capability no interface variant can serve.
	ErrUnsupportedCapability = errors.New("radio: unsupported interface configuration")

	// ErrInit is returned (wrapped) when interface initialization fails.
	ErrInit = errors.New("radio: interface initialization failed")
)

// Rational resampling ratios for the fixed-clock device variants,
// relative to the 4-SPS transceiver rate.
var resampRatios = map[Variant]struct{ num, den uint }{
	VariantResampledLow:  {num: 96, den: 65},
	VariantResampledHigh: {num: 75, den: 13},
}

// resampChannels is the channel count the resampling variants support.
// It is fixed by the topology, not the configuration.
const resampChannels = 1

// queueDepth bounds each per-channel receive queue.
const queueDepth = 32

// Interface owns the opened device and the per-channel receive queues.
// It is built by Build, handed to the transceiver builder, and must be
// closed after the transceiver that depends on it.
type Interface struct {
	variant Variant
	dev     device.Device

	txSPS uint
	rxSPS uint
	chans uint

	// resampNum/resampDen hold the rate conversion ratio for the
	// resampling variants; both zero otherwise.
	resampNum uint
	resampDen uint

	queues []*ChannelQueue
	closed bool
}

// Build selects and constructs exactly one interface variant for the
// capability the device reported, then runs its mandatory initialization.
// No half-initialized handle is ever returned. The switch is exhaustive
// over device capabilities; an unknown code is an error, never a default
// topology.
func Build(cfg *config.Config, dev device.Device, capability device.Capability) (*Interface, error) {
	var iface *Interface

	switch capability {
	case device.CapNormal:
		iface = &Interface{
			variant: VariantNormal,
			dev:     dev,
			txSPS:   cfg.TxSPS,
			rxSPS:   cfg.RxSPS,
			chans:   cfg.Channels,
		}
	case device.CapResampledLow, device.CapResampledHigh:
		variant := VariantResampledLow
		if capability == device.CapResampledHigh {
			variant = VariantResampledHigh
		}
		ratio := resampRatios[variant]
		iface = &Interface{
			variant:   variant,
			dev:       dev,
			txSPS:     cfg.TxSPS,
			rxSPS:     cfg.RxSPS,
			chans:     resampChannels,
			resampNum: ratio.num,
			resampDen: ratio.den,
		}
	case device.CapMultiCarrier:
		iface = &Interface{
			variant: VariantMultiCarrier,
			dev:     dev,
			txSPS:   cfg.TxSPS,
			rxSPS:   cfg.RxSPS,
			chans:   cfg.Channels,
		}
	default:
		return nil, fmt.Errorf("%w: capability %v", ErrUnsupportedCapability, capability)
	}

	if err := iface.init(); err != nil {
		return nil, fmt.Errorf("%w: %v variant: %v", ErrInit, iface.variant, err)
	}
	return iface, nil
}

// init allocates the per-channel receive queues and checks the variant's
// own parameter constraints.
func (ri *Interface) init() error {
	if ri.txSPS == 0 || ri.rxSPS == 0 {
		return fmt.Errorf("samples-per-symbol not set")
	}
	if ri.chans == 0 {
		return fmt.Errorf("no channels")
	}

	switch ri.variant {
	case VariantResampledLow, VariantResampledHigh:
		if ri.resampNum == 0 || ri.resampDen == 0 {
			return fmt.Errorf("resampling ratio not set")
		}
	case VariantMultiCarrier:
		if ri.chans > config.MaxMultiCarrier {
			return fmt.Errorf("%d channels exceed multi-carrier limit", ri.chans)
		}
	}

	ri.queues = make([]*ChannelQueue, ri.chans)
	for i := range ri.queues {
		ri.queues[i] = NewChannelQueue(queueDepth)
	}
	return nil
}

// Variant returns which topology this interface implements.
func (ri *Interface) Variant() Variant { return ri.variant }

// Channels returns the channel count the interface actually serves,
// which for the resampling variants differs from the configured count.
func (ri *Interface) Channels() uint { return ri.chans }

// ReceiveQueue returns the receive queue for the given channel, or nil
// if the channel is out of range or the interface has been closed.
func (ri *Interface) ReceiveQueue(chanIdx uint) *ChannelQueue {
	if ri.closed || chanIdx >= uint(len(ri.queues)) {
		return nil
	}
	return ri.queues[chanIdx]
}

// Close releases the interface's queues and drops the device reference.
// The device itself is closed by its owner, after this interface.
// Safe to call more than once.
func (ri *Interface) Close() error {
	if ri.closed {
		return nil
	}
	ri.closed = true
	ri.queues = nil
	ri.dev = nil
	return nil
}
