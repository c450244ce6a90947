package config

import "testing"

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		changed map[string]bool
		wantErr bool
		check   func(t *testing.T, cfg Config)
	}{
		{
			name: "applies valid env vars",
			envVars: map[string]string{
				"TRXD_DEVICE_ARGS": "sim",
				"TRXD_PORT":        "6700",
				"TRXD_CHANNELS":    "2",
				"TRXD_EDGE":        "true",
				"TRXD_RT_PRIORITY": "12",
				"TRXD_RSSI_OFFSET": "-4.0",
			},
			changed: map[string]bool{},
			check: func(t *testing.T, cfg Config) {
				if cfg.DeviceArgs != "sim" || cfg.BasePort != 6700 || cfg.Channels != 2 {
					t.Errorf("env values not applied: %+v", cfg)
				}
				if !cfg.EDGE || cfg.RTPriority != 12 || cfg.RSSIOffset != -4.0 {
					t.Errorf("env values not applied: %+v", cfg)
				}
			},
		},
		{
			name:    "respects changed flags",
			envVars: map[string]string{"TRXD_PORT": "6700"},
			changed: map[string]bool{"port": true},
			check: func(t *testing.T, cfg Config) {
				if cfg.BasePort != DefaultPort {
					t.Errorf("BasePort = %v, want flag value preserved", cfg.BasePort)
				}
			},
		},
		{
			name:    "invalid numeric value",
			envVars: map[string]string{"TRXD_PORT": "not-a-port"},
			changed: map[string]bool{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := DefaultConfig()
			err := ApplyEnvConfig(&cfg, tt.changed)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyEnvConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}
