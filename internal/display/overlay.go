package display

import (
	"sync"
	"time"
)

// Overlay holds at most one transient warning message. While active it
// fully replaces normal render content. A newer ShowOverlay replaces
// whatever was showing; there is no queue. Safe for concurrent use:
// the power lane writes it while the render lanes read it.
type Overlay struct {
	// Now is the clock used for expiry. Tests override it.
	Now func() time.Time

	mu        sync.Mutex
	text      string
	active    bool
	expiresAt time.Time // zero = no expiry
}

// NewOverlay creates an empty overlay store.
func NewOverlay() *Overlay {
	return &Overlay{Now: time.Now}
}

// ShowOverlay sets the overlay text. A ttl of zero keeps the overlay
// until it is cleared or replaced.
func (o *Overlay) ShowOverlay(text string, ttl time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.text = text
	o.active = true
	if ttl > 0 {
		o.expiresAt = o.Now().Add(ttl)
	} else {
		o.expiresAt = time.Time{}
	}
}

// ClearOverlay removes the overlay.
func (o *Overlay) ClearOverlay() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.text = ""
	o.active = false
	o.expiresAt = time.Time{}
}

// Active returns the overlay text if one is set and unexpired at time
// now. An expired overlay is cleared as a side effect of the check.
func (o *Overlay) Active(now time.Time) (string, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.active {
		return "", false
	}
	if !o.expiresAt.IsZero() && now.After(o.expiresAt) {
		o.text = ""
		o.active = false
		o.expiresAt = time.Time{}
		return "", false
	}
	return o.text, true
}
