// Package app owns the bring-up and lifecycle of the transceiver
// pipeline: it turns a validated configuration into a device, a radio
// interface, and a transceiver core, optionally elevates the process to
// real-time scheduling, and drives the run/teardown loop against
// signal-delivered cancellation.
package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/sdrlab/trxd/internal/config"
	"github.com/sdrlab/trxd/internal/device"
	"github.com/sdrlab/trxd/internal/radio"
	"github.com/sdrlab/trxd/internal/sched"
	"github.com/sdrlab/trxd/internal/trx"
)

// pollInterval is the coarse interval at which the run loop observes the
// shutdown token. This is a passive wait, not a latency-sensitive path.
const pollInterval = time.Second

// App orchestrates construction, the run loop, and ordered teardown.
// All construction is strictly sequential on the goroutine calling Run;
// the only asynchrony it coordinates with is the shutdown token.
type App struct {
	cfg       *config.Config
	logger    zerolog.Logger
	lifecycle *Lifecycle
	token     *ShutdownToken

	poll       time.Duration
	newDevice  func(device.Params, string) (device.Device, error)
	applySched func(int) error
}

// Option configures optional behavior of an App.
type Option func(*App)

// WithDeviceFactory replaces the device constructor, for tests that need
// a scripted device layer.
func WithDeviceFactory(f func(device.Params, string) (device.Device, error)) Option {
	return func(a *App) { a.newDevice = f }
}

// WithScheduler replaces the real-time scheduling call.
func WithScheduler(f func(int) error) Option {
	return func(a *App) { a.applySched = f }
}

// WithPollInterval overrides the shutdown poll interval.
func WithPollInterval(d time.Duration) Option {
	return func(a *App) { a.poll = d }
}

// New creates an App for a validated configuration.
func New(cfg *config.Config, logger zerolog.Logger, opts ...Option) *App {
	a := &App{
		cfg:        cfg,
		logger:     logger,
		lifecycle:  NewLifecycle(logger),
		token:      NewShutdownToken(),
		poll:       pollInterval,
		newDevice:  device.New,
		applySched: sched.Apply,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Shutdown requests cooperative shutdown. Idempotent.
func (a *App) Shutdown() { a.token.Trigger() }

// State returns the current lifecycle state.
func (a *App) State() State { return a.lifecycle.State() }

// Run builds the pipeline, runs until shutdown is requested, and tears
// everything down in reverse-construction order. Any initialization
// failure skips straight to teardown of whatever subset was constructed
// and returns the stage's error.
func (a *App) Run(ctx context.Context) error {
	if err := a.lifecycle.TransitionTo(StateInitializing, "startup"); err != nil {
		return err
	}

	var res resources
	fail := func(stage string, err error) error {
		a.logger.Error().Err(err).Str("stage", stage).Msg("initialization failed")
		a.shutdown(&res, "initialization failed: "+stage)
		return err
	}

	dev, err := a.newDevice(device.Params{
		TxSPS:        a.cfg.TxSPS,
		RxSPS:        a.cfg.RxSPS,
		Channels:     a.cfg.Channels,
		MultiCarrier: a.cfg.MultiCarrier,
		Offset:       a.cfg.Offset,
	}, a.cfg.DeviceArgs)
	if err != nil {
		return fail("device", err)
	}
	res.dev = dev

	capability, err := dev.Open(a.cfg.Reference(), a.cfg.SwapChannels)
	if err != nil {
		return fail("device", err)
	}
	a.logger.Info().Stringer("capability", capability).Msg("device opened")

	iface, err := radio.Build(a.cfg, dev, capability)
	if err != nil {
		return fail("radio interface", err)
	}
	res.iface = iface

	core, err := trx.Build(a.cfg, iface)
	if err != nil {
		return fail("transceiver", err)
	}
	res.trx = core

	if err := a.applySched(a.cfg.RTPriority); err != nil {
		return fail("scheduler", err)
	}

	if err := a.lifecycle.TransitionTo(StateRunning, "pipeline constructed"); err != nil {
		a.shutdown(&res, "lifecycle error")
		return err
	}

	stop := notifyOnSignals(a.token)
	defer stop()

	a.logger.Info().
		Uint("channels", core.NumChannels()).
		Stringer("variant", iface.Variant()).
		Msg("transceiver active")

	a.wait(ctx)

	a.shutdown(&res, "shutdown requested")
	return nil
}

// wait blocks until shutdown is requested or the context ends, polling
// the one-shot token on a coarse interval.
func (a *App) wait(ctx context.Context) {
	ticker := time.NewTicker(a.poll)
	defer ticker.Stop()

	for !a.token.Requested() {
		select {
		case <-ctx.Done():
			return
		case <-a.token.Done():
			return
		case <-ticker.C:
		}
	}
}

// shutdown moves through ShuttingDown and Terminated, releasing whatever
// resources exist. Transition errors are ignored here: teardown must
// always run, whichever state initialization failed in.
func (a *App) shutdown(res *resources, reason string) {
	_ = a.lifecycle.TransitionTo(StateShuttingDown, reason)
	a.logger.Info().Msg("shutting down transceiver")
	res.teardown(a.logger)
	_ = a.lifecycle.TransitionTo(StateTerminated, reason)
}
