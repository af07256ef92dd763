package stats

import "sync"

// Fake is a Provider test double returning a configured snapshot.
type Fake struct {
	mu   sync.Mutex
	snap Snapshot

	// Calls counts Snapshot invocations.
	Calls int
}

// NewFake creates a Fake with every field degraded to NA.
func NewFake() *Fake {
	return &Fake{snap: Snapshot{
		Hostname:  NA,
		IP:        NA,
		CPULoad:   NA,
		Memory:    NA,
		Disk:      NA,
		CPUTemp:   NA,
		Battery:   NA,
		Wifi:      NA,
		Bluetooth: NA,
	}}
}

// Set replaces the snapshot to return.
func (f *Fake) Set(snap Snapshot) {
	f.mu.Lock()
	f.snap = snap
	f.mu.Unlock()
}

// Snapshot returns the configured snapshot.
func (f *Fake) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	return f.snap
}
