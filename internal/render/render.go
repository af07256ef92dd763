// Package render projects the current UI state into display frames.
// The Coordinator makes no state decisions of its own: an unexpired
// warning overlay pre-empts everything, otherwise the frame is keyed
// by the navigator's current screen and filled from live metrics.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/sweeney/zero2-controller/internal/display"
	"github.com/sweeney/zero2-controller/internal/menu"
	"github.com/sweeney/zero2-controller/internal/stats"
)

// Coordinator renders frames on demand.
type Coordinator struct {
	nav     *menu.Navigator
	overlay *display.Overlay
	stats   stats.Provider
	sink    display.Sink

	// PowerState supplies the power monitor state string for the
	// POWER screen. nil renders as unavailable.
	PowerState func() string

	// Now is the clock used for overlay expiry. Tests override it.
	Now func() time.Time
}

// New creates a Coordinator writing to sink.
func New(nav *menu.Navigator, overlay *display.Overlay, provider stats.Provider, sink display.Sink) *Coordinator {
	return &Coordinator{
		nav:     nav,
		overlay: overlay,
		stats:   provider,
		sink:    sink,
		Now:     time.Now,
	}
}

// Render produces one frame. State snapshots are taken first, each
// under its own lock; the sink write and the stats collection happen
// with no lock held.
func (c *Coordinator) Render() error {
	if text, ok := c.overlay.Active(c.Now()); ok {
		return c.sink.WriteLines(overlayLines(text))
	}

	snap := c.nav.Snapshot()
	st := c.stats.Snapshot()
	return c.sink.WriteLines(c.screenLines(snap, st))
}

// overlayLines splits the overlay message into at most MaxLines rows.
func overlayLines(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) > display.MaxLines {
		lines = lines[:display.MaxLines]
	}
	return lines
}

func (c *Coordinator) screenLines(snap menu.Snapshot, st stats.Snapshot) []string {
	switch snap.Current {
	case menu.ScreenNetwork:
		return []string{
			"Network Info",
			"IP " + st.IP,
			"WiFi " + st.Wifi,
			"BT " + st.Bluetooth,
		}
	case menu.ScreenSystem:
		return []string{
			"System Info",
			"CPU " + st.CPULoad + " " + st.CPUTemp,
			"Mem " + st.Memory,
			"Disk " + st.Disk,
		}
	case menu.ScreenPower:
		state := stats.NA
		if c.PowerState != nil {
			state = c.PowerState()
		}
		return []string{
			"Power Info",
			"Bat " + st.Battery,
			"State " + state,
			"",
		}
	default:
		// Dashboard: live metrics plus the menu cursor row.
		entry := menu.Entries[snap.SelectedIndex]
		return []string{
			"IP " + st.IP,
			"CPU " + st.CPULoad + " " + st.CPUTemp,
			"Mem " + st.Memory,
			fmt.Sprintf(">%s", entry.Name),
		}
	}
}
