package device

import (
	"fmt"
	"strings"

	"github.com/sdrlab/trxd/internal/config"
)

// simDevice is a hardware-free backend used for bring-up testing and
// development hosts without a radio attached. Capability negotiation is
// deterministic: a multi-carrier request wins, then any resampling
// option in the argument string, then the normal topology.
//
// Recognized options after the backend name:
//
//	resamp=64M | resamp=100M    report a resampling topology
//	fail=open                   fail the open call (fault injection)
type simDevice struct {
	params Params
	opts   map[string]string

	open bool

	// Negotiation results, recorded for assertions in tests.
	ref  config.ReferenceMode
	swap bool
}

func newSimDevice(p Params, args string) *simDevice {
	opts := make(map[string]string)
	parts := strings.Split(args, ",")
	for _, part := range parts[1:] {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if kv[0] == "" {
			continue
		}
		if len(kv) == 2 {
			opts[kv[0]] = kv[1]
		} else {
			opts[kv[0]] = ""
		}
	}
	return &simDevice{params: p, opts: opts}
}

func (d *simDevice) Open(ref config.ReferenceMode, swapChannels bool) (Capability, error) {
	if d.opts["fail"] == "open" {
		return 0, fmt.Errorf("%w: simulated open failure", ErrOpen)
	}
	if d.open {
		return 0, fmt.Errorf("%w: already open", ErrOpen)
	}

	d.open = true
	d.ref = ref
	d.swap = swapChannels

	if d.params.MultiCarrier {
		return CapMultiCarrier, nil
	}
	switch d.opts["resamp"] {
	case "64M":
		return CapResampledLow, nil
	case "100M":
		return CapResampledHigh, nil
	case "":
		return CapNormal, nil
	default:
		return 0, fmt.Errorf("%w: unknown resamp option %q", ErrOpen, d.opts["resamp"])
	}
}

func (d *simDevice) Close() error {
	d.open = false
	return nil
}
