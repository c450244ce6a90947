package config

import "os"

// ApplyEnvConfig applies configuration from environment variables (TRXD_*).
// It respects flags that have been explicitly set (changed map) and
// overrides values loaded from the config file. Returns an error if any
// environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("log-level", os.Getenv("TRXD_LOG_LEVEL"), &cfg.LogLevel)
	s.setString("log-file", os.Getenv("TRXD_LOG_FILE"), &cfg.LogFile)
	s.setString("local-addr", os.Getenv("TRXD_LOCAL_ADDR"), &cfg.LocalAddr)
	s.setString("remote-addr", os.Getenv("TRXD_REMOTE_ADDR"), &cfg.RemoteAddr)
	s.setString("device-args", os.Getenv("TRXD_DEVICE_ARGS"), &cfg.DeviceArgs)

	if err := s.setUintFromString("port", os.Getenv("TRXD_PORT"), &cfg.BasePort); err != nil {
		return err
	}
	if err := s.setUintFromString("tx-sps", os.Getenv("TRXD_TX_SPS"), &cfg.TxSPS); err != nil {
		return err
	}
	if err := s.setUintFromString("rx-sps", os.Getenv("TRXD_RX_SPS"), &cfg.RxSPS); err != nil {
		return err
	}
	if err := s.setUintFromString("channels", os.Getenv("TRXD_CHANNELS"), &cfg.Channels); err != nil {
		return err
	}
	if err := s.setIntFromString("rt-prio", os.Getenv("TRXD_RT_PRIORITY"), &cfg.RTPriority); err != nil {
		return err
	}
	if err := s.setUintFromString("rtsc", os.Getenv("TRXD_RTSC"), &cfg.RTSC); err != nil {
		return err
	}
	if err := s.setUintFromString("rach-delay", os.Getenv("TRXD_RACH_DELAY"), &cfg.RACHDelay); err != nil {
		return err
	}
	if err := s.setFloatFromString("offset", os.Getenv("TRXD_OFFSET"), &cfg.Offset); err != nil {
		return err
	}
	if err := s.setFloatFromString("rssi-offset", os.Getenv("TRXD_RSSI_OFFSET"), &cfg.RSSIOffset); err != nil {
		return err
	}

	s.setBoolFromString("ext-ref", os.Getenv("TRXD_EXT_REF"), &cfg.ExtRef)
	s.setBoolFromString("gps-ref", os.Getenv("TRXD_GPS_REF"), &cfg.GPSRef)
	s.setBoolFromString("multi-carrier", os.Getenv("TRXD_MULTI_CARRIER"), &cfg.MultiCarrier)
	s.setBoolFromString("edge", os.Getenv("TRXD_EDGE"), &cfg.EDGE)
	s.setBoolFromString("swap-channels", os.Getenv("TRXD_SWAP_CHANNELS"), &cfg.SwapChannels)

	// The burst test modes double as filler selection, same as on the
	// command line.
	if os.Getenv("TRXD_RTSC") != "" && !changed["rtsc"] && cfg.Filler == FillerZero {
		cfg.Filler = FillerNormalRandom
	}
	if os.Getenv("TRXD_RACH_DELAY") != "" && !changed["rach-delay"] && cfg.Filler == FillerZero {
		cfg.Filler = FillerAccessRandom
	}

	return nil
}
