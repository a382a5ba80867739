package ai

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"ZeroForwardAccel", func(c *Config) { c.Steering.AccelForward = 0 }},
		{"NegativeReverseAccel", func(c *Config) { c.Steering.AccelReverse = -5 }},
		{"ZeroStrafeAccel", func(c *Config) { c.Steering.AccelStrafe = 0 }},
		{"ZeroMaxSpeed", func(c *Config) { c.Steering.MaxSpeed = 0 }},
		{"ZeroArrivalRadius", func(c *Config) { c.Steering.ArrivalRadius = 0 }},
		{"NegativeDeadZone", func(c *Config) { c.Steering.DeadZone = -1 }},
		{"ZeroSmoothing", func(c *Config) { c.Machine.Smoothing = 0 }},
		{"SmoothingAboveOne", func(c *Config) { c.Machine.Smoothing = 1.5 }},
		{"NegativeDwell", func(c *Config) { c.Machine.MinDwell = -1 }},
		{"ZeroStickinessFade", func(c *Config) { c.Machine.StickinessFade = 0 }},
		{"ProbabilisticZeroTemperature", func(c *Config) {
			c.Machine.Probabilistic = true
			c.Machine.Temperature = 0
		}},
		{"OrbitRadiiInverted", func(c *Config) {
			c.Orbit.MinRadius = 20
			c.Orbit.MaxRadius = 10
		}},
		{"ZeroJinkInterval", func(c *Config) { c.Jink.Interval = 0 }},
		{"ZeroEvadeRecompute", func(c *Config) { c.Evade.RecomputeInterval = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected a validation error, got nil")
			}
		})
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	data := []byte("machine:\n  min_dwell: 1.25\nweights:\n  attack: 2.5\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Machine.MinDwell != 1.25 {
		t.Errorf("min_dwell = %g, want 1.25", cfg.Machine.MinDwell)
	}
	if cfg.Weights.Attack != 2.5 {
		t.Errorf("attack weight = %g, want 2.5", cfg.Weights.Attack)
	}
	// Untouched fields keep their defaults
	if cfg.Steering.MaxSpeed != DefaultConfig().Steering.MaxSpeed {
		t.Error("unrelated fields must keep default values")
	}
}

func TestLoadConfigRejectsBadTuning(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	data := []byte("steering:\n  accel_forward: 0\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("a zero acceleration divisor must be rejected at load time")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/tuning.yaml"); err == nil {
		t.Error("missing config file must be an error")
	}
}
