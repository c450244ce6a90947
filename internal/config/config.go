package config

import (
	"errors"
	"fmt"
	"strings"
)

// Default configuration parameters. The transceiver talks to the upper
// layer stack over loopback unless told otherwise.
const (
	DefaultPort     = 5700
	DefaultAddr     = "127.0.0.1"
	DefaultChannels = 1

	// DefaultTxSPS selects the precision modulator (more computation,
	// less distortion). 1 selects the minimized modulator. Other values
	// are invalid.
	DefaultTxSPS = 4

	// DefaultRxSPS is the receive path oversampling. EDGE and
	// multi-carrier configurations force 4 during validation.
	DefaultRxSPS = 1

	// DefaultLogLevel is the verbosity tag used when none is given.
	DefaultLogLevel = "NOTICE"
)

// Validation bounds for the burst test modes.
const (
	MaxRTSC         = 7
	MaxRACHDelay    = 68
	MaxMultiCarrier = 5
)

// ErrInvalid is returned (wrapped, with the offending constraint) when a
// configuration fails validation. Checkable with errors.Is.
var ErrInvalid = errors.New("invalid configuration")

// FillerMode selects what the transceiver transmits on idle timeslots.
type FillerMode int

const (
	// FillerZero transmits nothing on idle timeslots.
	FillerZero FillerMode = iota

	// FillerDummy transmits the C0 dummy burst.
	FillerDummy

	// FillerNormalRandom transmits normal bursts with random payload,
	// keyed by the configured training sequence.
	FillerNormalRandom

	// FillerEdgeRandom transmits EDGE bursts with random payload.
	// Selected automatically when EDGE is enabled with FillerNormalRandom.
	FillerEdgeRandom

	// FillerAccessRandom transmits access bursts with random payload,
	// delayed by the configured RACH delay.
	FillerAccessRandom
)

func (f FillerMode) String() string {
	switch f {
	case FillerZero:
		return "Disabled"
	case FillerDummy:
		return "Dummy bursts"
	case FillerNormalRandom:
		return "Normal bursts with random payload"
	case FillerEdgeRandom:
		return "EDGE bursts with random payload"
	case FillerAccessRandom:
		return "Access bursts with random payload"
	default:
		return "Unknown"
	}
}

// ReferenceMode selects the reference clock source for the device.
type ReferenceMode int

const (
	RefInternal ReferenceMode = iota
	RefExternal
	RefGPS
)

func (r ReferenceMode) String() string {
	switch r {
	case RefInternal:
		return "Internal"
	case RefExternal:
		return "External"
	case RefGPS:
		return "GPS"
	default:
		return "Unknown"
	}
}

// Config holds the full startup configuration for the transceiver daemon.
// It is mutable while being assembled from flags, environment, and file;
// Validate canonicalizes it and it must be treated as immutable afterwards.
type Config struct {
	LogLevel string
	LogFile  string

	LocalAddr  string
	RemoteAddr string
	BasePort   uint

	DeviceArgs string

	TxSPS    uint
	RxSPS    uint
	Channels uint

	RTSC      uint
	RACHDelay uint
	Filler    FillerMode

	ExtRef bool
	GPSRef bool

	MultiCarrier bool
	EDGE         bool

	Offset       float64
	RSSIOffset   float64
	SwapChannels bool

	// RTPriority is the SCHED_RR priority for the whole process.
	// 0 disables real-time scheduling.
	RTPriority int
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		LogLevel:   DefaultLogLevel,
		LocalAddr:  DefaultAddr,
		RemoteAddr: DefaultAddr,
		BasePort:   DefaultPort,
		TxSPS:      DefaultTxSPS,
		RxSPS:      DefaultRxSPS,
		Channels:   DefaultChannels,
		Filler:     FillerZero,
	}
}

// Reference resolves the reference clock booleans to a single mode.
// Only meaningful after Validate has rejected the External+GPS conflict.
func (c *Config) Reference() ReferenceMode {
	switch {
	case c.ExtRef:
		return RefExternal
	case c.GPSRef:
		return RefGPS
	default:
		return RefInternal
	}
}

// Validate canonicalizes the configuration and enforces the cross-field
// constraints. Forcing rules run before range checks, so a user-supplied
// samples-per-symbol is silently overridden rather than rejected when
// EDGE or multi-carrier is enabled. Returns an error wrapping ErrInvalid
// naming the offending constraint; on error no field may be trusted.
func (c *Config) Validate() error {
	// EDGE and multi-carrier require 4 SPS on both paths.
	if c.EDGE || c.MultiCarrier {
		c.TxSPS = 4
		c.RxSPS = 4
	}

	if c.ExtRef && c.GPSRef {
		return fmt.Errorf("%w: external and GPS references are mutually exclusive", ErrInvalid)
	}

	if c.EDGE && c.Filler == FillerNormalRandom {
		c.Filler = FillerEdgeRandom
	}

	if c.TxSPS != 1 && c.TxSPS != 4 {
		return fmt.Errorf("%w: unsupported tx samples-per-symbol %d", ErrInvalid, c.TxSPS)
	}
	if c.RxSPS != 1 && c.RxSPS != 4 {
		return fmt.Errorf("%w: unsupported rx samples-per-symbol %d", ErrInvalid, c.RxSPS)
	}

	if c.RTSC > MaxRTSC {
		return fmt.Errorf("%w: training sequence %d out of range", ErrInvalid, c.RTSC)
	}
	if c.RACHDelay > MaxRACHDelay {
		return fmt.Errorf("%w: RACH delay %d out of range", ErrInvalid, c.RACHDelay)
	}

	if c.Channels == 0 {
		return fmt.Errorf("%w: at least one channel required", ErrInvalid)
	}
	if c.MultiCarrier && c.Channels > MaxMultiCarrier {
		return fmt.Errorf("%w: multi-carrier supports at most %d channels", ErrInvalid, MaxMultiCarrier)
	}

	return nil
}

// Summary renders the validated settings as a human-readable block for
// the startup log. Not consumed by any later stage.
func (c *Config) Summary() string {
	enabled := func(b bool) string {
		if b {
			return "Enabled"
		}
		return "Disabled"
	}

	var b strings.Builder
	b.WriteString("Config Settings\n")
	fmt.Fprintf(&b, "   Log Level............... %s\n", c.LogLevel)
	fmt.Fprintf(&b, "   Device args............. %s\n", c.DeviceArgs)
	fmt.Fprintf(&b, "   TRX Base Port........... %d\n", c.BasePort)
	fmt.Fprintf(&b, "   TRX Address............. %s\n", c.LocalAddr)
	fmt.Fprintf(&b, "   Core Address............ %s\n", c.RemoteAddr)
	fmt.Fprintf(&b, "   Channels................ %d\n", c.Channels)
	fmt.Fprintf(&b, "   Tx Samples-per-Symbol... %d\n", c.TxSPS)
	fmt.Fprintf(&b, "   Rx Samples-per-Symbol... %d\n", c.RxSPS)
	fmt.Fprintf(&b, "   EDGE support............ %s\n", enabled(c.EDGE))
	fmt.Fprintf(&b, "   Reference............... %s\n", c.Reference())
	fmt.Fprintf(&b, "   C0 Filler Table......... %s\n", c.Filler)
	fmt.Fprintf(&b, "   Multi-Carrier........... %s\n", enabled(c.MultiCarrier))
	fmt.Fprintf(&b, "   Tuning offset........... %g\n", c.Offset)
	fmt.Fprintf(&b, "   RSSI to dBm offset...... %g\n", c.RSSIOffset)
	fmt.Fprintf(&b, "   Swap channels........... %t", c.SwapChannels)
	return b.String()
}
