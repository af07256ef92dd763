// Package gpio provides GPIO input reading with hardware abstraction.
// The real implementation uses the Linux GPIO character device.
// The fake implementations allow testing without hardware.
package gpio

import "github.com/sweeney/zero2-controller/internal/input"

// Buttons reads the raw pressed state of the panel buttons.
type Buttons interface {
	// Sample returns the logical pressed state of one channel.
	// The raw lines are active-low (pulled up); implementations
	// return the already-inverted value (true = pressed).
	Sample(ch input.Channel) (bool, error)

	// Close releases GPIO resources.
	Close() error
}

// BatterySignal reads the raw battery-low line. The pin floats and is
// driven low by the power board; the driver applies no bias.
type BatterySignal interface {
	// IsLow reports whether the battery-low signal is asserted.
	IsLow() (bool, error)

	// Close releases GPIO resources.
	Close() error
}

// DefaultBatteryPin is the BCM pin the power board pulls low.
const DefaultBatteryPin = 25

// DefaultButtonPins maps channels to BCM pins for the Adafruit 128x64
// OLED Bonnet. Pin mapping is configuration, not logic: boards and
// board revisions differ, and the daemon accepts overrides per
// channel.
var DefaultButtonPins = map[input.Channel]int{
	input.ChannelA:      5,
	input.ChannelB:      6,
	input.ChannelUp:     23,
	input.ChannelDown:   17,
	input.ChannelLeft:   22,
	input.ChannelRight:  27,
	input.ChannelSelect: 4,
}
