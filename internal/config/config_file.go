package config

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config for the TOML config file. Pointer fields
// distinguish absent keys from zero values so file entries never clobber
// defaults they don't mention.
type FileConfig struct {
	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`

	LocalAddr  string `toml:"local_addr"`
	RemoteAddr string `toml:"remote_addr"`
	BasePort   *uint  `toml:"port"`

	DeviceArgs string `toml:"device_args"`

	TxSPS    *uint `toml:"tx_sps"`
	RxSPS    *uint `toml:"rx_sps"`
	Channels *uint `toml:"channels"`

	RTSC      *uint `toml:"rtsc"`
	RACHDelay *uint `toml:"rach_delay"`

	ExtRef *bool `toml:"ext_ref"`
	GPSRef *bool `toml:"gps_ref"`

	MultiCarrier *bool `toml:"multi_carrier"`
	EDGE         *bool `toml:"edge"`

	Offset       *float64 `toml:"offset"`
	RSSIOffset   *float64 `toml:"rssi_offset"`
	SwapChannels *bool    `toml:"swap_channels"`

	RTPriority *int `toml:"rt_priority"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.trxd/config.toml if the user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".trxd", "config.toml")
	}
	return ""
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) {
	s := newConfigSetter(changed)

	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("log-file", fc.LogFile, &cfg.LogFile)
	s.setString("local-addr", fc.LocalAddr, &cfg.LocalAddr)
	s.setString("remote-addr", fc.RemoteAddr, &cfg.RemoteAddr)
	s.setString("device-args", fc.DeviceArgs, &cfg.DeviceArgs)

	s.setUint("port", fc.BasePort, &cfg.BasePort)
	s.setUint("tx-sps", fc.TxSPS, &cfg.TxSPS)
	s.setUint("rx-sps", fc.RxSPS, &cfg.RxSPS)
	s.setUint("channels", fc.Channels, &cfg.Channels)
	s.setUint("rtsc", fc.RTSC, &cfg.RTSC)
	s.setUint("rach-delay", fc.RACHDelay, &cfg.RACHDelay)

	s.setBool("ext-ref", fc.ExtRef, &cfg.ExtRef)
	s.setBool("gps-ref", fc.GPSRef, &cfg.GPSRef)
	s.setBool("multi-carrier", fc.MultiCarrier, &cfg.MultiCarrier)
	s.setBool("edge", fc.EDGE, &cfg.EDGE)
	s.setBool("swap-channels", fc.SwapChannels, &cfg.SwapChannels)

	s.setFloat("offset", fc.Offset, &cfg.Offset)
	s.setFloat("rssi-offset", fc.RSSIOffset, &cfg.RSSIOffset)

	s.setInt("rt-prio", fc.RTPriority, &cfg.RTPriority)

	// The burst test modes double as filler selection, same as on the
	// command line.
	if fc.RTSC != nil && !changed["rtsc"] && cfg.Filler == FillerZero {
		cfg.Filler = FillerNormalRandom
	}
	if fc.RACHDelay != nil && !changed["rach-delay"] && cfg.Filler == FillerZero {
		cfg.Filler = FillerAccessRandom
	}
}
