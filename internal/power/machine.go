// Package power implements the battery-low shutdown escalation state
// machine. The Machine is pure logic with injectable time (no GPIO,
// display, OS, or time.Sleep); the Monitor in this package runs it on
// its own scheduling lane and owns the side effects.
package power

import "time"

// State is one of the escalation states.
type State string

const (
	StateIdle         State = "IDLE"
	StateLowDetected  State = "LOW_DETECTED"
	StateWarning      State = "WARNING"
	StateShuttingDown State = "SHUTTING_DOWN"
)

// DefaultThreshold is how long the low signal must persist before
// shutdown.
const DefaultThreshold = 30 * time.Second

// Notice is a warning notification to surface to the user.
type Notice struct {
	// SecondsRemaining until shutdown, rounded up.
	SecondsRemaining int
}

// Effects describes the side effects a tick asks the caller to
// perform. The Machine itself performs none of them.
type Effects struct {
	// Notice, if non-nil, is a warning notification to emit
	// (overlay + broadcast + log line).
	Notice *Notice
	// ClearOverlay is set when an episode is cancelled and any
	// active warning overlay should be removed.
	ClearOverlay bool
	// Shutdown is set exactly once, on the tick that enters
	// ShuttingDown.
	Shutdown bool
}

// Machine tracks one low-battery episode through
// Idle -> LowDetected -> Warning -> ShuttingDown.
type Machine struct {
	threshold   time.Duration
	warningTime time.Duration

	state State
	since time.Time // start of the current episode

	// Warning bookkeeping: bucket of the last notification, in
	// ceil(seconds/10) units, so a crossing fires at each 10s
	// boundary. -1 means no notification sent yet this episode.
	lastBucket int
}

// NewMachine creates a Machine. threshold <= 0 falls back to
// DefaultThreshold; warningTime is clamped to threshold.
func NewMachine(threshold, warningTime time.Duration) *Machine {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if warningTime < 0 {
		warningTime = 0
	}
	if warningTime > threshold {
		warningTime = threshold
	}
	return &Machine{
		threshold:   threshold,
		warningTime: warningTime,
		state:       StateIdle,
		lastBucket:  -1,
	}
}

// State returns the current escalation state.
func (m *Machine) State() State {
	return m.state
}

// Since returns the start time of the current episode. Zero when idle.
func (m *Machine) Since() time.Time {
	return m.since
}

// Tick advances the machine with one sample of the raw low-battery
// signal. The returned Effects tell the caller what to do; escalation
// itself never depends on whether the caller succeeds.
func (m *Machine) Tick(now time.Time, rawLow bool) Effects {
	switch m.state {
	case StateIdle:
		if !rawLow {
			return Effects{}
		}
		m.state = StateLowDetected
		m.since = now
		m.lastBucket = -1
		// Fall through so a zero-length pre-warning phase enters
		// Warning on the same tick.
		return m.tickLowDetected(now, rawLow)

	case StateLowDetected:
		return m.tickLowDetected(now, rawLow)

	case StateWarning:
		return m.tickWarning(now, rawLow)

	case StateShuttingDown:
		// Terminal. The monitor loop has already exited.
		return Effects{}
	}
	return Effects{}
}

func (m *Machine) tickLowDetected(now time.Time, rawLow bool) Effects {
	if !rawLow {
		return m.cancel()
	}
	if now.Sub(m.since) >= m.threshold-m.warningTime {
		m.state = StateWarning
		return m.tickWarning(now, rawLow)
	}
	return Effects{}
}

func (m *Machine) tickWarning(now time.Time, rawLow bool) Effects {
	if !rawLow {
		return m.cancel()
	}

	remaining := m.threshold - now.Sub(m.since)
	if remaining <= 0 {
		m.state = StateShuttingDown
		return Effects{Shutdown: true}
	}

	secs := int((remaining + time.Second - 1) / time.Second)
	bucket := (secs + 9) / 10

	// Notify on the first Warning tick, on each 10s boundary
	// crossing, and on every tick inside the final 10 seconds.
	if m.lastBucket == -1 || bucket != m.lastBucket || secs <= 10 {
		m.lastBucket = bucket
		return Effects{Notice: &Notice{SecondsRemaining: secs}}
	}
	return Effects{}
}

// cancel ends the episode: the raw signal returned high strictly
// before the shutdown threshold elapsed.
func (m *Machine) cancel() Effects {
	m.state = StateIdle
	m.since = time.Time{}
	m.lastBucket = -1
	return Effects{ClearOverlay: true}
}

// InEpisode reports whether a low-battery episode is in progress.
func (m *Machine) InEpisode() bool {
	return m.state == StateLowDetected || m.state == StateWarning
}
