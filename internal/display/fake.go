package display

import "sync"

// Fake is a Sink test double that records every frame it is asked to
// present. Safe for concurrent use.
type Fake struct {
	mu sync.Mutex

	// frames holds each WriteLines call in order.
	frames [][]string

	// WriteError, if set, will be returned by WriteLines.
	WriteError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFake creates a Fake sink.
func NewFake() *Fake {
	return &Fake{}
}

// WriteLines records the frame.
func (f *Fake) WriteLines(lines []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.WriteError != nil {
		return f.WriteError
	}
	frame := make([]string, len(lines))
	copy(frame, lines)
	f.frames = append(f.frames, frame)
	return nil
}

// Close marks the sink as closed.
func (f *Fake) Close() error {
	f.mu.Lock()
	f.Closed = true
	f.mu.Unlock()
	return nil
}

// Frames returns a copy of all recorded frames.
func (f *Fake) Frames() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	frames := make([][]string, len(f.frames))
	copy(frames, f.frames)
	return frames
}

// LastFrame returns the most recent frame, or nil if none was written.
func (f *Fake) LastFrame() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.frames) == 0 {
		return nil
	}
	return f.frames[len(f.frames)-1]
}

// Reset clears recorded frames.
func (f *Fake) Reset() {
	f.mu.Lock()
	f.frames = nil
	f.Closed = false
	f.WriteError = nil
	f.mu.Unlock()
}
