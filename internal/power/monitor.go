package power

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// Default polling cadences: fast enough for edge detection when idle,
// relaxed once an episode is being timed by the threshold itself.
const (
	DefaultEdgePoll    = 500 * time.Millisecond
	DefaultEpisodePoll = time.Second
	DefaultGrace       = 2 * time.Second
)

// Signal supplies the raw battery-low sample. The hardware/driver
// already debounces it; the threshold timer is the only filtering the
// monitor adds.
type Signal interface {
	IsLow() (bool, error)
}

// OverlaySink receives transient warning overlays. A ttl of zero means
// the overlay stays until explicitly cleared or replaced.
type OverlaySink interface {
	ShowOverlay(text string, ttl time.Duration)
	ClearOverlay()
}

// Broadcaster sends a best-effort message to all users.
type Broadcaster interface {
	SendAllUsers(text string) error
}

// Monitor runs the escalation Machine on its own lane and performs its
// side effects: warning overlays, broadcasts, and finally the shutdown
// action. Overlay and broadcast failures are logged and never block
// escalation.
type Monitor struct {
	machine   *Machine
	signal    Signal
	overlay   OverlaySink
	broadcast Broadcaster
	shutdown  func() error

	edgePoll    time.Duration
	episodePoll time.Duration
	grace       time.Duration

	// Injectable for tests.
	now   func() time.Time
	after func(time.Duration) <-chan time.Time
	sleep func(time.Duration)

	// lastState mirrors the machine state for readers on other
	// lanes; the machine itself is only touched by Run.
	mu        sync.Mutex
	lastState State
}

// NewMonitor creates a Monitor. overlay and broadcast may be nil when
// the corresponding subsystem is unavailable; shutdown must not be
// nil.
func NewMonitor(machine *Machine, signal Signal, overlay OverlaySink, broadcast Broadcaster, shutdown func() error) *Monitor {
	return &Monitor{
		machine:     machine,
		signal:      signal,
		overlay:     overlay,
		broadcast:   broadcast,
		shutdown:    shutdown,
		edgePoll:    DefaultEdgePoll,
		episodePoll: DefaultEpisodePoll,
		grace:       DefaultGrace,
		now:         time.Now,
		after:       time.After,
		sleep:       time.Sleep,
		lastState:   machine.State(),
	}
}

// State reports the machine state as of the last tick. Safe to call
// from other lanes.
func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastState
}

func (m *Monitor) setState(s State) {
	m.mu.Lock()
	m.lastState = s
	m.mu.Unlock()
}

// SetPolling overrides the edge and in-episode poll intervals.
func (m *Monitor) SetPolling(edge, episode time.Duration) {
	if edge > 0 {
		m.edgePoll = edge
	}
	if episode > 0 {
		m.episodePoll = episode
	}
}

// SetGrace overrides the pause between the final notification and the
// shutdown call.
func (m *Monitor) SetGrace(grace time.Duration) {
	m.grace = grace
}

// setClock injects time functions for tests.
func (m *Monitor) setClock(now func() time.Time, after func(time.Duration) <-chan time.Time, sleep func(time.Duration)) {
	m.now = now
	m.after = after
	m.sleep = sleep
}

// Run executes the monitor loop until the context is cancelled or the
// machine reaches ShuttingDown. Once ShuttingDown is entered the
// shutdown action is performed exactly once and is no longer
// cancellable; a flapping signal at the deadline cannot defer it.
func (m *Monitor) Run(ctx context.Context) error {
	log.Printf("power: monitoring started (threshold=%v warning=%v)",
		m.machine.threshold, m.machine.warningTime)

	for {
		interval := m.edgePoll
		if m.machine.InEpisode() {
			interval = m.episodePoll
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-m.after(interval):
		}

		low, err := m.signal.IsLow()
		if err != nil {
			// Transient read failure: skip this tick, no state change.
			log.Printf("power: battery signal read error: %v", err)
			continue
		}

		prev := m.machine.State()
		eff := m.machine.Tick(m.now(), low)
		m.setState(m.machine.State())
		if m.machine.State() != prev {
			log.Printf("power: %s -> %s", prev, m.machine.State())
		}

		if eff.ClearOverlay && m.overlay != nil {
			m.overlay.ClearOverlay()
		}

		if eff.Notice != nil {
			m.notify(eff.Notice.SecondsRemaining)
		}

		if eff.Shutdown {
			m.performShutdown()
			return nil
		}
	}
}

func (m *Monitor) notify(secs int) {
	log.Printf("power: low battery, shutdown in %ds", secs)

	if m.overlay != nil {
		m.overlay.ShowOverlay(fmt.Sprintf("LOW BATTERY\nShutdown in %ds", secs), 0)
	}
	if m.broadcast != nil {
		msg := fmt.Sprintf("Low battery: shutting down in %ds unless power is restored", secs)
		if err := m.broadcast.SendAllUsers(msg); err != nil {
			log.Printf("power: broadcast failed: %v", err)
		}
	}
}

func (m *Monitor) performShutdown() {
	log.Printf("power: low battery persisted for %v, shutting down", m.machine.threshold)

	if m.overlay != nil {
		m.overlay.ShowOverlay("LOW BATTERY\nShutting down now", 0)
	}
	if m.broadcast != nil {
		msg := fmt.Sprintf("Low battery persisted for %v. Shutting down now.", m.machine.threshold)
		if err := m.broadcast.SendAllUsers(msg); err != nil {
			log.Printf("power: final broadcast failed: %v", err)
		}
	}

	// Let the display write flush before power goes away.
	m.sleep(m.grace)

	if err := m.shutdown(); err != nil {
		log.Printf("power: shutdown action failed: %v", err)
	}
}
