package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/wxsign/outdoor_temp_display/sevenseg"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeTempConfig(t, `{
		"listen": ":9000",
		"sensor_url": "http://10.0.0.5/temp",
		"ping_host": "10.0.0.1",
		"poll_seconds": 15,
		"pins": {"clock": "GPIO26", "data": "GPIO33", "latch": "GPIO25"},
		"invert_polarity": true,
		"timing": {"half_clock_us": 10, "latch_hold_us": 16}
	}`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	if cfg.Listen != ":9000" || cfg.SensorURL != "http://10.0.0.5/temp" || cfg.PollSeconds != 15 {
		t.Errorf("explicit fields not honored: %+v", cfg)
	}
	if cfg.Pins.Clock != "GPIO26" || cfg.Pins.Data != "GPIO33" || cfg.Pins.Latch != "GPIO25" {
		t.Errorf("pins not honored: %+v", cfg.Pins)
	}

	// Unset fields fall back to defaults.
	if cfg.PingSeconds != 10 || cfg.TickMillis != 100 || cfg.AnimationMillis != 250 || cfg.OverrideSeconds != 300 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadConfigRequiresPins(t *testing.T) {
	path := writeTempConfig(t, `{"pins": {"clock": "GPIO26", "data": "GPIO33"}}`)
	if _, err := loadConfig(path); err == nil {
		t.Error("loadConfig should fail without a latch pin")
	}
}

func TestLoadConfigBadFile(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("loadConfig should fail for a missing file")
	}

	path := writeTempConfig(t, `{"pins":`)
	if _, err := loadConfig(path); err == nil {
		t.Error("loadConfig should fail for malformed JSON")
	}
}

func TestDriverOpts(t *testing.T) {
	cfg := Config{
		InvertPolarity: true,
		Timing: Timing{
			HalfClockUS: 10,
			BitSetupUS:  2,
			LatchHoldUS: 16,
		},
	}

	opts := cfg.driverOpts()
	if !opts.InvertPolarity {
		t.Error("polarity flag not carried into driver opts")
	}
	if opts.HalfClock != 10*time.Microsecond || opts.BitSetup != 2*time.Microsecond || opts.LatchHold != 16*time.Microsecond {
		t.Errorf("timing not converted: %+v", opts)
	}
	// Unset timings stay zero; the driver substitutes its defaults.
	if opts.LatchSettle != 0 || opts.LatchTail != 0 {
		t.Errorf("unset timings should stay zero, got %+v", opts)
	}
	if sevenseg.DefaultLatchSettle != 4*time.Microsecond {
		t.Errorf("unexpected driver default latch settle %v", sevenseg.DefaultLatchSettle)
	}
}
