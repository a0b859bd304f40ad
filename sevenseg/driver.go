// Package sevenseg drives a two-digit seven-segment display behind a
// serial-in shift register over three open-drain lines (CLOCK, DATA,
// LATCH).
//
// The lines are never driven high: a logical high releases the line to
// high impedance and the external pull-up takes it up. One display
// update shifts 16 bits (7 segments per position plus the minus and
// celsius flag bits) and commits them with a latch pulse.
package sevenseg

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// Line is a two-state open-drain line: driven low, or released to
// high impedance so the external pull-up pulls it high.
type Line interface {
	DriveLow() error
	Release() error
}

// PinLine adapts a periph.io GPIO pin to Line by mode switching:
// output-low to drive, input with pull-up to release.
type PinLine struct {
	Pin gpio.PinIO
}

func (l PinLine) DriveLow() error { return l.Pin.Out(gpio.Low) }
func (l PinLine) Release() error  { return l.Pin.In(gpio.PullUp, gpio.NoEdge) }

// Default protocol timing. HalfClock of 5us gives a bit clock of
// roughly 100kHz.
const (
	DefaultHalfClock   = 5 * time.Microsecond
	DefaultBitSetup    = 1 * time.Microsecond
	DefaultLatchSettle = 4 * time.Microsecond
	DefaultLatchHold   = 8 * time.Microsecond
	DefaultLatchTail   = 4 * time.Microsecond
)

// latchLeadIn re-asserts the idle-low latch level just before the
// commit pulse.
const latchLeadIn = 2 * time.Microsecond

// Opts configures the line driver. The zero value of every field
// selects the default.
type Opts struct {
	// InvertPolarity flips the data line mapping. By default a
	// logical 1 releases the line (pull-up high means segment on);
	// inverted, a logical 1 drives the line low.
	InvertPolarity bool

	// Protocol timing. Zero durations fall back to the defaults
	// above. The granularity must stay at microsecond resolution;
	// the shift register has no tolerance for coarser steps.
	HalfClock   time.Duration
	BitSetup    time.Duration
	LatchSettle time.Duration
	LatchHold   time.Duration
	LatchTail   time.Duration
}

func (o *Opts) applyDefaults() {
	if o.HalfClock == 0 {
		o.HalfClock = DefaultHalfClock
	}
	if o.BitSetup == 0 {
		o.BitSetup = DefaultBitSetup
	}
	if o.LatchSettle == 0 {
		o.LatchSettle = DefaultLatchSettle
	}
	if o.LatchHold == 0 {
		o.LatchHold = DefaultLatchHold
	}
	if o.LatchTail == 0 {
		o.LatchTail = DefaultLatchTail
	}
}

// Dev is the handle for one display. It owns the three lines
// exclusively between New and process exit; nothing else may touch
// them.
type Dev struct {
	clock Line
	data  Line
	latch Line
	opts  Opts

	// wait blocks for the given duration. Overridable in tests;
	// defaults to a busy wait because the protocol timing has no
	// tolerance for scheduler jitter.
	wait func(time.Duration)
}

// New creates a driver over three GPIO pins and releases all lines to
// their idle (pulled-high) state. opts can be nil for defaults.
func New(clock, data, latch gpio.PinIO, opts *Opts) (*Dev, error) {
	if clock == nil || data == nil || latch == nil {
		return nil, fmt.Errorf("sevenseg: clock, data and latch pins are all required")
	}
	return NewFromLines(PinLine{clock}, PinLine{data}, PinLine{latch}, opts)
}

// NewFromLines creates a driver over any open-drain capable line
// implementation and releases all lines to idle.
func NewFromLines(clock, data, latch Line, opts *Opts) (*Dev, error) {
	d := &Dev{
		clock: clock,
		data:  data,
		latch: latch,
		wait:  busyWait,
	}
	if opts != nil {
		d.opts = *opts
	}
	d.opts.applyDefaults()

	// Safe released state before the first render.
	if err := d.idle(); err != nil {
		return nil, err
	}
	return d, nil
}

// Render shifts one complete 16-bit frame into the display register
// and latches it. It blocks for the full line sequence (about 200us
// at default timing) and cannot be cancelled mid-shift; an aborted
// shift would leave the register in an undefined partial state.
//
// Precondition: CLOCK and LATCH idle released, which New and every
// previous Render guarantee. Postcondition: all three lines released,
// whatever the frame content.
func (d *Dev) Render(frameA, frameB Frame, minus, celsius bool) error {
	// Latch idle low while bits shift in.
	if err := d.latch.DriveLow(); err != nil {
		return err
	}
	d.wait(d.opts.LatchSettle)

	for _, bit := range frameA {
		if err := d.writeBit(bit); err != nil {
			return err
		}
	}
	for _, bit := range frameB {
		if err := d.writeBit(bit); err != nil {
			return err
		}
	}
	if err := d.writeBit(minus); err != nil {
		return err
	}
	if err := d.writeBit(celsius); err != nil {
		return err
	}

	if err := d.pulseLatch(); err != nil {
		return err
	}
	return d.idle()
}

// Halt blanks the display and leaves the lines idle.
func (d *Dev) Halt() error {
	var blank Frame
	return d.Render(blank, blank, false, false)
}

func (d *Dev) String() string {
	return fmt.Sprintf("sevenseg.Dev{invert=%v half=%v}", d.opts.InvertPolarity, d.opts.HalfClock)
}

// writeBit puts one bit on the data line, waits the setup time and
// clocks it in.
func (d *Dev) writeBit(bit bool) error {
	if err := d.setData(bit); err != nil {
		return err
	}
	d.wait(d.opts.BitSetup)
	return d.pulseClock()
}

// setData maps a logical bit to a line level under the configured
// polarity: by default 1 releases the line high.
func (d *Dev) setData(bit bool) error {
	if bit != d.opts.InvertPolarity {
		return d.data.Release()
	}
	return d.data.DriveLow()
}

// pulseClock raises the clock for a half period and drives it back
// low. The register samples the data line on the rising edge.
func (d *Dev) pulseClock() error {
	if err := d.clock.Release(); err != nil {
		return err
	}
	d.wait(d.opts.HalfClock)
	if err := d.clock.DriveLow(); err != nil {
		return err
	}
	d.wait(d.opts.HalfClock)
	return nil
}

// pulseLatch commits the shifted bits. The register needs this
// asymmetric low/high/low/release shape, not a single clean pulse;
// do not simplify it without checking on hardware.
func (d *Dev) pulseLatch() error {
	if err := d.latch.DriveLow(); err != nil {
		return err
	}
	d.wait(latchLeadIn)
	if err := d.latch.Release(); err != nil {
		return err
	}
	d.wait(d.opts.LatchHold)
	if err := d.latch.DriveLow(); err != nil {
		return err
	}
	d.wait(d.opts.LatchTail)
	return d.latch.Release()
}

// idle releases data and clock so every line sits pulled high between
// renders.
func (d *Dev) idle() error {
	if err := d.data.Release(); err != nil {
		return err
	}
	if err := d.clock.Release(); err != nil {
		return err
	}
	return d.latch.Release()
}

// busyWait spins for the given duration. time.Sleep cannot hold
// microsecond deadlines on a non-realtime kernel, and the shift
// register needs the stated margins.
func busyWait(dur time.Duration) {
	for start := time.Now(); time.Since(start) < dur; {
	}
}
