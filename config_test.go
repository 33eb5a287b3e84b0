package ink

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigValues(t *testing.T) {
	cfg := DefaultConfig()

	th := cfg.Throttle
	if th.MinTimeIntervalMs != 8 || th.MinDistance != 1.0 ||
		th.MaxBufferSize != 32 || th.ForceFlushIntervalMs != 16 {
		t.Errorf("throttle defaults = %+v", th)
	}

	pr := cfg.Correction.Pressure
	if !pr.Enabled || pr.SmoothingWindow != 3 ||
		pr.MinPressureChange != 0.01 || pr.FallbackPressure != 0.5 {
		t.Errorf("pressure defaults = %+v", pr)
	}

	sm := cfg.Correction.Smoothing
	if !sm.Enabled || sm.Strength != 0.3 || sm.Method != MethodLinear ||
		!sm.RealtimeMode || sm.MinPoints != 2 || sm.MaxProcessingTimeMs != 1.0 {
		t.Errorf("smoothing defaults = %+v", sm)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ink.toml")

	cfg := DefaultConfig()
	cfg.Throttle.MinDistance = 2.5
	cfg.Correction.Smoothing.Method = MethodCatmullRom
	cfg.Correction.Pressure.DeviceCalibration = map[string]float64{"pen": 0.9}

	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if loaded.Throttle.MinDistance != 2.5 {
		t.Errorf("MinDistance = %g, want 2.5", loaded.Throttle.MinDistance)
	}
	if loaded.Correction.Smoothing.Method != MethodCatmullRom {
		t.Errorf("Method = %q, want catmull_rom", loaded.Correction.Smoothing.Method)
	}
	if loaded.Correction.Pressure.DeviceCalibration["pen"] != 0.9 {
		t.Errorf("DeviceCalibration = %+v", loaded.Correction.Pressure.DeviceCalibration)
	}
}

func TestLoadConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "ink.toml")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Throttle != DefaultThrottleConfig() {
		t.Errorf("Throttle = %+v, want defaults", cfg.Throttle)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("defaults were not written to %s: %v", path, err)
	}
}

func TestLoadConfigPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ink.toml")
	partial := "[throttle]\nmin_distance = 4.0\n\n[correction.smoothing]\nstrength = 0.9\n"
	if err := os.WriteFile(path, []byte(partial), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	// Overridden keys take the file values.
	if cfg.Throttle.MinDistance != 4.0 {
		t.Errorf("MinDistance = %g, want 4.0", cfg.Throttle.MinDistance)
	}
	if cfg.Correction.Smoothing.Strength != 0.9 {
		t.Errorf("Strength = %g, want 0.9", cfg.Correction.Smoothing.Strength)
	}
	// Everything else keeps its default.
	if cfg.Throttle.MinTimeIntervalMs != 8 {
		t.Errorf("MinTimeIntervalMs = %g, want the default 8", cfg.Throttle.MinTimeIntervalMs)
	}
	if !cfg.Correction.Smoothing.Enabled {
		t.Error("Enabled lost its default")
	}
}
