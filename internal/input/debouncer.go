package input

import "time"

// DefaultWindow is the default debounce window between accepted
// presses on the same channel.
const DefaultWindow = 50 * time.Millisecond

// channelState tracks debounce bookkeeping for a single channel.
type channelState struct {
	// Last raw sample observed (true = pressed).
	rawPressed bool
	// Time of the last accepted press event.
	lastAccepted time.Time
}

// Debouncer filters raw pressed samples into discrete press events.
// A press is accepted for a channel only when the sample reads pressed
// and more than the window has elapsed since the last accepted press
// on that channel. Checking at any cadence, including faster than the
// window, never produces two events inside one window.
type Debouncer struct {
	source Source
	window time.Duration
	state  map[Channel]*channelState
}

// NewDebouncer creates a Debouncer reading from source. A window <= 0
// falls back to DefaultWindow.
func NewDebouncer(source Source, window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultWindow
	}
	state := make(map[Channel]*channelState, len(Channels))
	for _, ch := range Channels {
		state[ch] = &channelState{}
	}
	return &Debouncer{
		source: source,
		window: window,
		state:  state,
	}
}

// Window returns the configured debounce window.
func (d *Debouncer) Window() time.Duration {
	return d.window
}

// Check samples every channel and returns the channels whose press was
// accepted at time now, in Channels order. A sample error on one
// channel degrades that channel to "not pressed" and does not affect
// the others. Only accepted channels have their lastAccepted mutated.
func (d *Debouncer) Check(now time.Time) []Channel {
	var pressed []Channel
	for _, ch := range Channels {
		st := d.state[ch]

		raw, err := d.source.Sample(ch)
		if err != nil {
			raw = false
		}
		st.rawPressed = raw
		if !raw {
			continue
		}

		if !st.lastAccepted.IsZero() && now.Sub(st.lastAccepted) <= d.window {
			// Still inside the window from the previous accept.
			continue
		}

		st.lastAccepted = now
		pressed = append(pressed, ch)
	}
	return pressed
}

// Pressed reports the raw state of a channel as of the last Check.
func (d *Debouncer) Pressed(ch Channel) bool {
	st, ok := d.state[ch]
	if !ok {
		return false
	}
	return st.rawPressed
}
