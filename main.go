package main

import (
	"log"
	"os"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/wxsign/outdoor_temp_display/sevenseg"
)

// renderer is the slice of the display driver the loop needs.
type renderer interface {
	Render(frameA, frameB sevenseg.Frame, minus, celsius bool) error
}

func main() {
	// Initialize board.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	configPath := "config.json"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dev, err := sevenseg.New(
		mustPin(cfg.Pins.Clock),
		mustPin(cfg.Pins.Data),
		mustPin(cfg.Pins.Latch),
		cfg.driverOpts())
	if err != nil {
		log.Fatalf("Failed to open display: %v", err)
	}
	log.Println("Display driver ready:", dev)

	st := newDisplayState()

	go pollSensor(cfg, st)
	go monitorConnectivity(cfg, st)
	go httpServer(st, cfg)

	runLoop(dev, st, cfg)
}

func mustPin(name string) gpio.PinIO {
	pin := gpioreg.ByName(name)
	if pin == nil {
		log.Fatalf("GPIO pin %q not found", name)
	}
	return pin
}

// runLoop is the single owner of the display. Each iteration derives
// one command from the shared state and performs at most one render;
// a render blocks for a couple hundred microseconds, far below the
// tick period.
func runLoop(dev renderer, st *displayState, cfg Config) {
	tick := time.Duration(cfg.TickMillis) * time.Millisecond
	animEvery := time.Duration(cfg.AnimationMillis) * time.Millisecond
	lastAnim := time.Now()

	for {
		now := time.Now()
		if now.Sub(lastAnim) >= animEvery {
			st.advanceAnimation()
			lastAnim = now
		}
		renderOnce(dev, st, now)
		time.Sleep(tick)
	}
}

// renderOnce encodes and ships the current command. Encoder and
// driver failures are logged and the previous frame stays latched;
// the display never shows a malformed frame.
func renderOnce(dev renderer, st *displayState, now time.Time) {
	cmd := st.nextCommand(now)
	frameA, frameB, minus, celsius, err := sevenseg.Encode(cmd)
	if err != nil {
		log.Printf("Could not encode %v: %v", cmd, err)
		return
	}
	if err := dev.Render(frameA, frameB, minus, celsius); err != nil {
		log.Printf("Render failed: %v", err)
		return
	}
	st.setRendered(cmd, frameA, frameB, minus, celsius)
}
