package main

import (
	"errors"
	"log"
	"net"
	"time"

	"github.com/go-ping/ping"
)

// Two-digit diagnostic codes shown on the display while the link is
// down.
const (
	codeNoReply   = "11" // probe sent, no echo came back
	codeNoResolve = "12" // the probe host did not resolve
)

// linkDownThreshold is how many consecutive probe failures mark the
// link as down. A single lost echo is routine on Wi-Fi.
const linkDownThreshold = 3

// pingICMP sends one ICMP echo to host and returns the round-trip
// time in milliseconds. Raw ICMP usually requires root privileges.
func pingICMP(host string) (int64, error) {
	pinger, err := ping.NewPinger(host)
	if err != nil {
		return 0, err
	}
	pinger.SetPrivileged(true)
	pinger.Count = 1
	pinger.Timeout = 2 * time.Second

	if err := pinger.Run(); err != nil {
		return 0, err
	}
	stats := pinger.Statistics()
	if stats.PacketsRecv == 0 {
		return 0, errNoReply
	}
	return int64(stats.AvgRtt / time.Millisecond), nil
}

type probeError string

func (e probeError) Error() string { return string(e) }

const errNoReply = probeError("no echo reply")

// statusCode maps a probe failure to the diagnostic code the display
// shows.
func statusCode(err error) string {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return codeNoResolve
	}
	return codeNoReply
}

// linkTracker debounces probe results into an up/down link state.
type linkTracker struct {
	failures int
	code     string
}

// observe folds one probe result into the tracker and reports the
// resulting link state.
func (t *linkTracker) observe(err error) (up bool, code string) {
	if err == nil {
		t.failures = 0
		t.code = ""
		return true, ""
	}
	t.failures++
	t.code = statusCode(err)
	if t.failures < linkDownThreshold {
		// Not down yet; keep the previous state alive.
		return true, ""
	}
	return false, t.code
}

// monitorConnectivity probes the configured host on a fixed period and
// publishes the debounced link state.
func monitorConnectivity(cfg Config, st *displayState) {
	interval := time.Duration(cfg.PingSeconds) * time.Second
	var tracker linkTracker
	wasUp := true
	for {
		_, err := pingICMP(cfg.PingHost)
		up, code := tracker.observe(err)
		if up != wasUp {
			if up {
				log.Printf("Link to %s restored", cfg.PingHost)
			} else {
				log.Printf("Link to %s down (code %s): %v", cfg.PingHost, code, err)
			}
			wasUp = up
		}
		st.setLink(up, code)
		time.Sleep(interval)
	}
}
