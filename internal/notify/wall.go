package notify

import (
	"fmt"
	"os/exec"
)

// Wall broadcasts to all logged-in terminals via wall(1). Enabled by
// the POWER_NOTIFY_TERMINALS config flag.
type Wall struct {
	// run executes the wall command. Injectable for tests.
	run func(text string) error
}

// NewWall creates a Wall broadcaster.
func NewWall() *Wall {
	return &Wall{run: runWall}
}

func runWall(text string) error {
	if err := exec.Command("wall", text).Run(); err != nil {
		return fmt.Errorf("wall: %w", err)
	}
	return nil
}

// SendAllUsers writes the message to every terminal.
func (w *Wall) SendAllUsers(text string) error {
	return w.run(text)
}

// Multi fans a message out to several broadcasters. Every target is
// attempted regardless of earlier failures; the first error is
// returned after all attempts.
type Multi []Broadcaster

// SendAllUsers sends to each broadcaster in order.
func (m Multi) SendAllUsers(text string) error {
	var firstErr error
	for _, b := range m {
		if err := b.SendAllUsers(text); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
