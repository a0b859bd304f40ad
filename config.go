package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/wxsign/outdoor_temp_display/sevenseg"
)

// Pins names the three GPIO lines of the display link. The names are
// resolved through gpioreg, e.g. "GPIO26".
type Pins struct {
	Clock string `json:"clock"`
	Data  string `json:"data"`
	Latch string `json:"latch"`
}

// Timing overrides the display protocol delays, in microseconds.
// Zero fields keep the driver defaults.
type Timing struct {
	HalfClockUS   int `json:"half_clock_us"`
	BitSetupUS    int `json:"bit_setup_us"`
	LatchSettleUS int `json:"latch_settle_us"`
	LatchHoldUS   int `json:"latch_hold_us"`
	LatchTailUS   int `json:"latch_tail_us"`
}

// Config represents the overall config JSON.
type Config struct {
	Listen          string `json:"listen"`
	SensorURL       string `json:"sensor_url"`
	PingHost        string `json:"ping_host"`
	PollSeconds     int    `json:"poll_seconds"`
	PingSeconds     int    `json:"ping_seconds"`
	TickMillis      int    `json:"tick_millis"`
	AnimationMillis int    `json:"animation_millis"`
	OverrideSeconds int    `json:"override_seconds"`
	Pins            Pins   `json:"pins"`
	InvertPolarity  bool   `json:"invert_polarity"`
	Timing          Timing `json:"timing"`
}

// loadConfig reads and unmarshals the config file, fills defaults and
// validates the result.
func loadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %v", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Listen == "" {
		c.Listen = ":8081"
	}
	if c.SensorURL == "" {
		c.SensorURL = "http://127.0.0.1:8080/temperature"
	}
	if c.PingHost == "" {
		c.PingHost = "192.168.1.1"
	}
	if c.PollSeconds <= 0 {
		c.PollSeconds = 30
	}
	if c.PingSeconds <= 0 {
		c.PingSeconds = 10
	}
	if c.TickMillis <= 0 {
		c.TickMillis = 100
	}
	if c.AnimationMillis <= 0 {
		c.AnimationMillis = 250
	}
	if c.OverrideSeconds <= 0 {
		c.OverrideSeconds = 300
	}
}

func (c Config) validate() error {
	if c.Pins.Clock == "" || c.Pins.Data == "" || c.Pins.Latch == "" {
		return fmt.Errorf("config: pins.clock, pins.data and pins.latch are required")
	}
	return nil
}

// driverOpts translates the config into the display driver options.
func (c Config) driverOpts() *sevenseg.Opts {
	us := func(n int) time.Duration { return time.Duration(n) * time.Microsecond }
	return &sevenseg.Opts{
		InvertPolarity: c.InvertPolarity,
		HalfClock:      us(c.Timing.HalfClockUS),
		BitSetup:       us(c.Timing.BitSetupUS),
		LatchSettle:    us(c.Timing.LatchSettleUS),
		LatchHold:      us(c.Timing.LatchHoldUS),
		LatchTail:      us(c.Timing.LatchTailUS),
	}
}
