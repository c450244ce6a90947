package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/sdrlab/trxd/internal/app"
	"github.com/sdrlab/trxd/internal/config"
)

const longHelp = `
trxd is the bring-up and lifecycle daemon for a software radio
transceiver. It validates the radio configuration, negotiates a
processing topology with the device layer, wires the interface and
transceiver core together, and runs until a shutdown signal arrives.

Highlights:
  - Capability-driven topology selection: normal, resampling, or
    multi-carrier, depending on what the opened hardware reports.
  - Strict reverse-order teardown on both clean shutdown and any
    bring-up failure.
  - Optional SCHED_RR real-time elevation for the whole process.
  - Configure via file ($HOME/.trxd/config.toml), TRXD_* environment
    variables, or flags; flags win.
`

var exampleUsage = strings.TrimSpace(`
  trxd --device-args sim --channels 2
  trxd --edge --rtsc 3 --rt-prio 18
  trxd --multi-carrier --channels 5 --ext-ref
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := config.DefaultConfig()
	var (
		cfgPath     string
		fillerDummy bool
	)

	root := &cobra.Command{
		Use:           "trxd",
		Short:         "Software radio transceiver daemon",
		Long:          strings.TrimSpace(longHelp),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Precedence is flags > environment > file > defaults.
			// Track which flags were given so lower layers never
			// override them.
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = config.DefaultConfigPath()
			}
			if cfgFile != "" && config.FileExists(cfgFile) {
				fc, err := config.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				config.ApplyFileConfig(&cfg, fc, changed)
			} else {
				cfgFile = ""
			}

			if err := config.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			// The burst test modes double as filler selection, with
			// the access mode taking precedence over the normal mode.
			if fillerDummy {
				cfg.Filler = config.FillerDummy
			}
			if changed["rtsc"] {
				cfg.Filler = config.FillerNormalRandom
			}
			if changed["rach-delay"] {
				cfg.Filler = config.FillerAccessRandom
			}

			if err := cfg.Validate(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				fmt.Fprintln(os.Stderr)
				_ = cmd.Usage()
				return err
			}

			logger, err := config.NewLogger(&cfg)
			if err != nil {
				return err
			}
			logger.Info().Msg(cfg.Summary())

			if cfgFile != "" {
				w := config.NewWatcher(cfgFile, logger)
				if err := w.Start(); err != nil {
					logger.Warn().Err(err).Msg("config watcher unavailable")
				} else {
					defer w.Stop()
				}
			}

			return app.New(&cfg, logger).Run(context.Background())
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.trxd/config.toml)")

	root.Flags().StringVarP(&cfg.DeviceArgs, "device-args", "a", cfg.DeviceArgs, "device open arguments")
	root.Flags().StringVarP(&cfg.LogLevel, "log-level", "l", cfg.LogLevel,
		"logging level ("+strings.Join(config.LogLevels, ", ")+")")
	root.Flags().StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "rotated log file (default: stderr only)")

	root.Flags().StringVarP(&cfg.RemoteAddr, "remote-addr", "i", cfg.RemoteAddr, "IP address of the upper-layer core")
	root.Flags().StringVarP(&cfg.LocalAddr, "local-addr", "j", cfg.LocalAddr, "IP address to bind locally")
	root.Flags().UintVarP(&cfg.BasePort, "port", "p", cfg.BasePort, "base port number")

	root.Flags().UintVarP(&cfg.Channels, "channels", "c", cfg.Channels, "number of carrier channels")
	root.Flags().UintVarP(&cfg.TxSPS, "tx-sps", "s", cfg.TxSPS, "Tx samples-per-symbol (1 or 4)")
	root.Flags().UintVarP(&cfg.RxSPS, "rx-sps", "b", cfg.RxSPS, "Rx samples-per-symbol (1 or 4)")

	root.Flags().BoolVarP(&cfg.EDGE, "edge", "e", cfg.EDGE, "enable EDGE receiver (forces 4 SPS)")
	root.Flags().BoolVarP(&cfg.MultiCarrier, "multi-carrier", "m", cfg.MultiCarrier, "enable multi-carrier transceiver")
	root.Flags().BoolVarP(&cfg.ExtRef, "ext-ref", "x", cfg.ExtRef, "enable external 10 MHz reference")
	root.Flags().BoolVarP(&cfg.GPSRef, "gps-ref", "g", cfg.GPSRef, "enable GPSDO reference")

	root.Flags().BoolVarP(&fillerDummy, "filler-dummy", "f", false, "enable C0 dummy burst filler")
	root.Flags().UintVarP(&cfg.RTSC, "rtsc", "r", cfg.RTSC, "random normal burst test mode with training sequence")
	root.Flags().UintVarP(&cfg.RACHDelay, "rach-delay", "A", cfg.RACHDelay, "random access burst test mode with delay")

	root.Flags().Float64VarP(&cfg.Offset, "offset", "o", cfg.Offset, "baseband frequency offset (default: auto)")
	root.Flags().Float64VarP(&cfg.RSSIOffset, "rssi-offset", "R", cfg.RSSIOffset, "RSSI to dBm offset in dB")
	root.Flags().BoolVarP(&cfg.SwapChannels, "swap-channels", "S", cfg.SwapChannels, "swap channel ordering (device-variant specific)")

	root.Flags().IntVarP(&cfg.RTPriority, "rt-prio", "t", cfg.RTPriority, "SCHED_RR real-time priority (1..32, 0 disables)")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "trxd:", err)
		os.Exit(1)
	}
}
