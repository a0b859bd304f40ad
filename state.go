package main

import (
	"sync"
	"time"

	"github.com/wxsign/outdoor_temp_display/sevenseg"
)

// displayState is the shared view of everything that can end up on the
// display. The collector goroutines write it, the render loop and the
// web handlers read it. Only the render loop talks to the hardware.
type displayState struct {
	mu sync.RWMutex

	temperature int
	tempValid   bool
	sampledAt   time.Time

	linkUp   bool
	linkCode string // two-digit status code while the link is down

	overrideValue int
	overrideUntil time.Time

	animFrame int

	// Snapshot of the last encoded frame, for /status and the SVG
	// preview.
	lastCommand   string
	frameA        sevenseg.Frame
	frameB        sevenseg.Frame
	minus         bool
	celsius       bool
	renderedAt    time.Time
}

func newDisplayState() *displayState {
	// Until the first ping result arrives, assume the link is up so
	// the startup animation shows instead of dashes.
	return &displayState{linkUp: true}
}

func (s *displayState) setTemperature(v int) {
	s.mu.Lock()
	s.temperature = v
	s.tempValid = true
	s.sampledAt = time.Now()
	s.mu.Unlock()
}

func (s *displayState) clearTemperature() {
	s.mu.Lock()
	s.tempValid = false
	s.mu.Unlock()
}

func (s *displayState) setLink(up bool, code string) {
	s.mu.Lock()
	s.linkUp = up
	s.linkCode = code
	s.mu.Unlock()
}

func (s *displayState) setOverride(v int, ttl time.Duration) {
	s.mu.Lock()
	s.overrideValue = v
	s.overrideUntil = time.Now().Add(ttl)
	s.mu.Unlock()
}

func (s *displayState) clearOverride() {
	s.mu.Lock()
	s.overrideUntil = time.Time{}
	s.mu.Unlock()
}

func (s *displayState) advanceAnimation() {
	s.mu.Lock()
	s.animFrame = (s.animFrame + 1) % sevenseg.AnimationFrames
	s.mu.Unlock()
}

// nextCommand derives the single display command for this loop
// iteration. Priority: manual override, then link-down diagnostics,
// then the current temperature, then the startup animation.
func (s *displayState) nextCommand(now time.Time) sevenseg.Command {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.overrideUntil.IsZero() && now.Before(s.overrideUntil) {
		return sevenseg.Number(s.overrideValue)
	}
	if !s.linkUp {
		if s.linkCode != "" {
			return sevenseg.Code(s.linkCode)
		}
		return sevenseg.Dashes()
	}
	if s.tempValid {
		return sevenseg.Number(s.temperature)
	}
	return sevenseg.Animation(s.animFrame)
}

// setRendered records the frame that was last shifted out.
func (s *displayState) setRendered(cmd sevenseg.Command, frameA, frameB sevenseg.Frame, minus, celsius bool) {
	s.mu.Lock()
	s.lastCommand = cmd.String()
	s.frameA = frameA
	s.frameB = frameB
	s.minus = minus
	s.celsius = celsius
	s.renderedAt = time.Now()
	s.mu.Unlock()
}

// statusSnapshot is the JSON shape of GET /status.
type statusSnapshot struct {
	Temperature    *int      `json:"temperature"`
	SampledAt      time.Time `json:"sampled_at,omitempty"`
	LinkUp         bool      `json:"link_up"`
	LinkCode       string    `json:"link_code,omitempty"`
	OverrideActive bool      `json:"override_active"`
	OverrideValue  int       `json:"override_value,omitempty"`
	LastCommand    string    `json:"last_command"`
	RenderedAt     time.Time `json:"rendered_at,omitempty"`
}

func (s *displayState) snapshot(now time.Time) statusSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := statusSnapshot{
		LinkUp:      s.linkUp,
		LinkCode:    s.linkCode,
		LastCommand: s.lastCommand,
		RenderedAt:  s.renderedAt,
	}
	if s.tempValid {
		t := s.temperature
		snap.Temperature = &t
		snap.SampledAt = s.sampledAt
	}
	if !s.overrideUntil.IsZero() && now.Before(s.overrideUntil) {
		snap.OverrideActive = true
		snap.OverrideValue = s.overrideValue
	}
	return snap
}

// lastFrames returns the most recently rendered frame pair for the
// preview endpoint.
func (s *displayState) lastFrames() (frameA, frameB sevenseg.Frame, minus, celsius bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frameA, s.frameB, s.minus, s.celsius
}
