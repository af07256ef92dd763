// Package status provides a thread-safe status tracker for the
// controller daemon. It is read by the HTTP status server and
// embedded into MQTT lifecycle payloads.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/zero2-controller/internal/input"
	"github.com/sweeney/zero2-controller/internal/menu"
	"github.com/sweeney/zero2-controller/internal/power"
)

// NetworkInfo contains the network state shown on the status page.
type NetworkInfo struct {
	Hostname  string
	IP        string
	Wifi      string
	Bluetooth string
}

// Config contains daemon configuration for display.
type Config struct {
	PollMs           int64
	DebounceMs       int64
	ThresholdS       int64
	WarningS         int64
	DisplayIntervalS int64
	Broker           string
	HTTPAddr         string
}

// PressCounts tracks accepted presses per channel since startup.
type PressCounts map[input.Channel]int

// Snapshot is a point-in-time view of daemon state. It is a value
// type — safe to use after the lock is released.
type Snapshot struct {
	Screen        menu.Screen
	SelectedIndex int
	PowerState    power.State
	OverlayActive bool
	Presses       PressCounts
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Network       *NetworkInfo
	Config        Config

	ButtonsEnabled bool
	DisplayEnabled bool
	MonitorEnabled bool
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			Screen:     menu.ScreenMain,
			PowerState: power.StateIdle,
			Presses:    make(PressCounts),
			StartTime:  startTime,
			Config:     cfg,
		},
	}
}

// SetSubsystems records which subsystems came up at startup.
func (t *Tracker) SetSubsystems(buttons, display, monitor bool) {
	t.mu.Lock()
	t.snap.ButtonsEnabled = buttons
	t.snap.DisplayEnabled = display
	t.snap.MonitorEnabled = monitor
	t.mu.Unlock()
}

// SetNavigation records the current screen and selection.
func (t *Tracker) SetNavigation(snap menu.Snapshot) {
	t.mu.Lock()
	t.snap.Screen = snap.Current
	t.snap.SelectedIndex = snap.SelectedIndex
	t.mu.Unlock()
}

// SetPowerState records the power monitor state.
func (t *Tracker) SetPowerState(s power.State) {
	t.mu.Lock()
	t.snap.PowerState = s
	t.mu.Unlock()
}

// SetOverlayActive records whether a warning overlay is showing.
func (t *Tracker) SetOverlayActive(active bool) {
	t.mu.Lock()
	t.snap.OverlayActive = active
	t.mu.Unlock()
}

// CountPress increments the accepted-press counter for a channel.
func (t *Tracker) CountPress(ch input.Channel) {
	t.mu.Lock()
	t.snap.Presses[ch]++
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// SetNetwork sets the network info.
func (t *Tracker) SetNetwork(info *NetworkInfo) {
	t.mu.Lock()
	t.snap.Network = info
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state. The Now
// field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	presses := make(PressCounts, len(t.snap.Presses))
	for ch, n := range t.snap.Presses {
		presses[ch] = n
	}
	t.mu.RUnlock()
	s.Presses = presses
	s.Now = time.Now()
	return s
}
