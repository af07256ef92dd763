package gpio

import (
	"sync"

	"github.com/sweeney/zero2-controller/internal/input"
)

// FakeButtons is a test double whose pressed states are set directly.
// Safe for concurrent use: integration tests flip buttons from the
// test goroutine while the polling lane samples them.
type FakeButtons struct {
	mu      sync.Mutex
	pressed map[input.Channel]bool
	errs    map[input.Channel]error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeButtons creates a FakeButtons with every channel released.
func NewFakeButtons() *FakeButtons {
	return &FakeButtons{
		pressed: make(map[input.Channel]bool),
		errs:    make(map[input.Channel]error),
	}
}

// SetPressed sets the raw pressed state of a channel.
func (f *FakeButtons) SetPressed(ch input.Channel, pressed bool) {
	f.mu.Lock()
	f.pressed[ch] = pressed
	f.mu.Unlock()
}

// SetError makes Sample fail for a channel; nil clears the error.
func (f *FakeButtons) SetError(ch input.Channel, err error) {
	f.mu.Lock()
	if err == nil {
		delete(f.errs, ch)
	} else {
		f.errs[ch] = err
	}
	f.mu.Unlock()
}

// Sample returns the configured state of the channel.
func (f *FakeButtons) Sample(ch input.Channel) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs[ch]; err != nil {
		return false, err
	}
	return f.pressed[ch], nil
}

// Close marks the buttons as closed.
func (f *FakeButtons) Close() error {
	f.mu.Lock()
	f.Closed = true
	f.mu.Unlock()
	return nil
}

// FakeBattery is a test double for the battery-low line.
type FakeBattery struct {
	mu  sync.Mutex
	low bool
	err error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeBattery creates a FakeBattery with the signal deasserted.
func NewFakeBattery() *FakeBattery {
	return &FakeBattery{}
}

// SetLow sets the raw battery-low state.
func (f *FakeBattery) SetLow(low bool) {
	f.mu.Lock()
	f.low = low
	f.mu.Unlock()
}

// SetError makes IsLow fail; nil clears the error.
func (f *FakeBattery) SetError(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

// IsLow returns the configured state.
func (f *FakeBattery) IsLow() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	return f.low, nil
}

// Close marks the battery signal as closed.
func (f *FakeBattery) Close() error {
	f.mu.Lock()
	f.Closed = true
	f.mu.Unlock()
	return nil
}
