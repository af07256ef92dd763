//go:build !linux

package gpio

import (
	"errors"

	"github.com/sweeney/zero2-controller/internal/input"
)

// RealButtons is not available on non-Linux platforms.
type RealButtons struct{}

// NewRealButtons returns an error on non-Linux platforms.
func NewRealButtons(pins map[input.Channel]int) (*RealButtons, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// Sample is not implemented on non-Linux platforms.
func (b *RealButtons) Sample(ch input.Channel) (bool, error) {
	return false, errors.New("gpio: not supported")
}

// Close is not implemented on non-Linux platforms.
func (b *RealButtons) Close() error {
	return nil
}

// RealBattery is not available on non-Linux platforms.
type RealBattery struct{}

// NewRealBattery returns an error on non-Linux platforms.
func NewRealBattery(pin int) (*RealBattery, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// IsLow is not implemented on non-Linux platforms.
func (b *RealBattery) IsLow() (bool, error) {
	return false, errors.New("gpio: not supported")
}

// Close is not implemented on non-Linux platforms.
func (b *RealBattery) Close() error {
	return nil
}
