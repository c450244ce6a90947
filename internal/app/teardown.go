package app

import (
	"io"

	"github.com/rs/zerolog"
)

// resources records whatever subset of the pipeline has been constructed
// so far. Teardown releases them in strict reverse-construction order:
// transceiver, then interface, then device. A worker inside the
// transceiver must never outlive the interface it reads from, and the
// interface must never outlive the device underneath it.
type resources struct {
	trx   io.Closer
	iface io.Closer
	dev   io.Closer
}

// teardown releases whichever resources are present. Each release is
// independent: a failure is logged and the next release still runs.
// Safe to call with any subset absent, and safe to call repeatedly.
func (r *resources) teardown(logger zerolog.Logger) {
	if r.trx != nil {
		if err := r.trx.Close(); err != nil {
			logger.Error().Err(err).Msg("transceiver release failed")
		}
		r.trx = nil
	}
	if r.iface != nil {
		if err := r.iface.Close(); err != nil {
			logger.Error().Err(err).Msg("radio interface release failed")
		}
		r.iface = nil
	}
	if r.dev != nil {
		if err := r.dev.Close(); err != nil {
			logger.Error().Err(err).Msg("device release failed")
		}
		r.dev = nil
	}
}
