package config

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.BasePort != 5700 {
		t.Errorf("BasePort = %v, want 5700", cfg.BasePort)
	}
	if cfg.LocalAddr != "127.0.0.1" || cfg.RemoteAddr != "127.0.0.1" {
		t.Errorf("addresses = %v/%v, want loopback", cfg.LocalAddr, cfg.RemoteAddr)
	}
	if cfg.TxSPS != 4 || cfg.RxSPS != 1 {
		t.Errorf("sps = %v/%v, want 4/1", cfg.TxSPS, cfg.RxSPS)
	}
	if cfg.Channels != 1 {
		t.Errorf("Channels = %v, want 1", cfg.Channels)
	}
	if cfg.Filler != FillerZero {
		t.Errorf("Filler = %v, want FillerZero", cfg.Filler)
	}
	if cfg.RTPriority != 0 {
		t.Errorf("RTPriority = %v, want 0 (disabled)", cfg.RTPriority)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "tx sps out of range",
			mutate:  func(c *Config) { c.TxSPS = 2 },
			wantErr: true,
		},
		{
			name:    "rx sps out of range",
			mutate:  func(c *Config) { c.RxSPS = 3 },
			wantErr: true,
		},
		{
			name: "either sps invalid is rejected",
			mutate: func(c *Config) {
				c.TxSPS = 4
				c.RxSPS = 2
			},
			wantErr: true,
		},
		{
			name: "edge overrides invalid sps",
			mutate: func(c *Config) {
				c.EDGE = true
				c.TxSPS = 7
				c.RxSPS = 7
			},
			wantErr: false,
		},
		{
			name:    "external and gps reference conflict",
			mutate:  func(c *Config) { c.ExtRef = true; c.GPSRef = true },
			wantErr: true,
		},
		{
			name:    "rtsc too large",
			mutate:  func(c *Config) { c.RTSC = 8 },
			wantErr: true,
		},
		{
			name:    "rtsc at limit",
			mutate:  func(c *Config) { c.RTSC = 7 },
			wantErr: false,
		},
		{
			name:    "rach delay too large",
			mutate:  func(c *Config) { c.RACHDelay = 69 },
			wantErr: true,
		},
		{
			name:    "rach delay at limit",
			mutate:  func(c *Config) { c.RACHDelay = 68 },
			wantErr: false,
		},
		{
			name:    "multi-carrier channel limit",
			mutate:  func(c *Config) { c.MultiCarrier = true; c.Channels = 6 },
			wantErr: true,
		},
		{
			name:    "multi-carrier at channel limit",
			mutate:  func(c *Config) { c.MultiCarrier = true; c.Channels = 5 },
			wantErr: false,
		},
		{
			name:    "zero channels",
			mutate:  func(c *Config) { c.Channels = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestConfig_Validate_ForcesFourSPS(t *testing.T) {
	for _, mode := range []string{"edge", "multi-carrier"} {
		t.Run(mode, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.TxSPS = 1
			cfg.RxSPS = 1
			if mode == "edge" {
				cfg.EDGE = true
			} else {
				cfg.MultiCarrier = true
			}

			if err := cfg.Validate(); err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if cfg.TxSPS != 4 || cfg.RxSPS != 4 {
				t.Errorf("sps = %d/%d after %s, want 4/4", cfg.TxSPS, cfg.RxSPS, mode)
			}
		})
	}
}

func TestConfig_Validate_FillerUpgrade(t *testing.T) {
	// Random normal burst mode stays as-is without EDGE.
	cfg := DefaultConfig()
	cfg.RTSC = 3
	cfg.Filler = FillerNormalRandom
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Filler != FillerNormalRandom {
		t.Errorf("Filler = %v, want FillerNormalRandom", cfg.Filler)
	}

	// With EDGE it is upgraded to EDGE bursts.
	cfg = DefaultConfig()
	cfg.RTSC = 3
	cfg.Filler = FillerNormalRandom
	cfg.EDGE = true
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Filler != FillerEdgeRandom {
		t.Errorf("Filler = %v, want FillerEdgeRandom", cfg.Filler)
	}
}

func TestConfig_Reference(t *testing.T) {
	tests := []struct {
		name string
		ext  bool
		gps  bool
		want ReferenceMode
	}{
		{"internal by default", false, false, RefInternal},
		{"external", true, false, RefExternal},
		{"gps", false, true, RefGPS},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.ExtRef = tt.ext
			cfg.GPSRef = tt.gps
			if got := cfg.Reference(); got != tt.want {
				t.Errorf("Reference() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfig_Summary(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DeviceArgs = "sim"
	cfg.EDGE = true
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	s := cfg.Summary()
	for _, want := range []string{"sim", "5700", "EDGE support............ Enabled", "Internal"} {
		if !strings.Contains(s, want) {
			t.Errorf("Summary() missing %q:\n%s", want, s)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for _, tag := range LogLevels {
		if _, err := ParseLevel(tag); err != nil {
			t.Errorf("ParseLevel(%q) error = %v", tag, err)
		}
	}
	if _, err := ParseLevel("VERBOSE"); err == nil {
		t.Error("ParseLevel(VERBOSE) expected error")
	}
}
