// Package input contains pure button-input logic for the controller.
// This package has NO external dependencies (no GPIO, display, OS, or
// time.Sleep). Time is always injectable via time.Time parameters.
package input

// Channel identifies one physical button on the panel.
type Channel string

const (
	ChannelUp     Channel = "UP"
	ChannelDown   Channel = "DOWN"
	ChannelLeft   Channel = "LEFT"
	ChannelRight  Channel = "RIGHT"
	ChannelSelect Channel = "SELECT"
	ChannelA      Channel = "A"
	ChannelB      Channel = "B"
)

// Channels lists every button channel in a fixed order. The order is
// also the emission order when several presses land on the same check.
var Channels = []Channel{
	ChannelUp,
	ChannelDown,
	ChannelLeft,
	ChannelRight,
	ChannelSelect,
	ChannelA,
	ChannelB,
}

// Source supplies raw pressed samples per channel. The raw hardware
// signal is active-low; implementations return the logical,
// already-inverted value (true = pressed).
type Source interface {
	Sample(ch Channel) (bool, error)
}
