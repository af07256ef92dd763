package notify

import "sync"

// Fake records broadcasts and system events for test assertions.
// Safe for concurrent use.
type Fake struct {
	mu sync.Mutex

	messages     []string
	systemEvents []SystemEvent

	// SendError, if set, will be returned by SendAllUsers.
	SendError error

	// Closed tracks if Close was called.
	Closed bool

	// Connected controls the return value of IsConnected.
	Connected bool
}

// NewFake creates a Fake broadcaster.
func NewFake() *Fake {
	return &Fake{}
}

// SendAllUsers records the message.
func (f *Fake) SendAllUsers(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SendError != nil {
		return f.SendError
	}
	f.messages = append(f.messages, text)
	return nil
}

// PublishSystem records the system event.
func (f *Fake) PublishSystem(event SystemEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.systemEvents = append(f.systemEvents, event)
	return nil
}

// IsConnected reports the configured connection state.
func (f *Fake) IsConnected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Connected
}

// Close marks the fake as closed.
func (f *Fake) Close() error {
	f.mu.Lock()
	f.Closed = true
	f.mu.Unlock()
	return nil
}

// Messages returns a copy of the recorded broadcasts.
func (f *Fake) Messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	msgs := make([]string, len(f.messages))
	copy(msgs, f.messages)
	return msgs
}

// SystemEvents returns a copy of the recorded lifecycle events.
func (f *Fake) SystemEvents() []SystemEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	events := make([]SystemEvent, len(f.systemEvents))
	copy(events, f.systemEvents)
	return events
}

// Reset clears recorded messages and events.
func (f *Fake) Reset() {
	f.mu.Lock()
	f.messages = nil
	f.systemEvents = nil
	f.Closed = false
	f.SendError = nil
	f.Connected = false
	f.mu.Unlock()
}
