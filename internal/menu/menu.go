// Package menu implements the hierarchical screen navigation state
// machine. The tree is fixed: MAIN owns the selectable entry list and
// every other screen is a single-purpose leaf whose only action is
// going back, which is why all directional inputs unify to Back
// outside MAIN.
package menu

import (
	"log"
	"sync"
)

// Screen identifies one node in the navigation tree.
type Screen string

const (
	ScreenMain    Screen = "MAIN"
	ScreenNetwork Screen = "NETWORK"
	ScreenSystem  Screen = "SYSTEM"
	ScreenPower   Screen = "POWER"
)

// Entry is one selectable row on the MAIN screen.
type Entry struct {
	Name   string
	Target Screen
}

// Entries lists the MAIN screen rows in display order. Static
// definition data, never mutated at runtime.
var Entries = []Entry{
	{Name: "Dashboard", Target: ScreenMain},
	{Name: "Network Info", Target: ScreenNetwork},
	{Name: "System Info", Target: ScreenSystem},
	{Name: "Power Info", Target: ScreenPower},
}

var screens = map[Screen]bool{
	ScreenMain:    true,
	ScreenNetwork: true,
	ScreenSystem:  true,
	ScreenPower:   true,
}

// frame is one entry of navigation history: the screen left behind and
// the selection it had when it was left.
type frame struct {
	screen   Screen
	selected int
}

// Snapshot is a point-in-time copy of navigator state, safe to use
// after the lock is released.
type Snapshot struct {
	Current       Screen
	SelectedIndex int
	Depth         int
}

// Navigator owns the navigation state. All transitions go through its
// methods; the mutex is held only for the single transition or
// snapshot read, never across I/O.
type Navigator struct {
	mu       sync.Mutex
	current  Screen
	stack    []frame
	selected int
}

// NewNavigator returns a Navigator positioned on MAIN.
func NewNavigator() *Navigator {
	return &Navigator{
		current: ScreenMain,
		stack:   []frame{{screen: ScreenMain}},
	}
}

// Up moves the selection up on MAIN, otherwise goes back.
func (n *Navigator) Up() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == ScreenMain {
		n.selected = (n.selected - 1 + len(Entries)) % len(Entries)
		return
	}
	n.back()
}

// Down moves the selection down on MAIN, otherwise goes back.
func (n *Navigator) Down() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == ScreenMain {
		n.selected = (n.selected + 1) % len(Entries)
		return
	}
	n.back()
}

// Left always goes back.
func (n *Navigator) Left() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.back()
}

// Right enters the selected child on MAIN, otherwise goes back.
func (n *Navigator) Right() {
	n.Select()
}

// Select enters the child bound to the selection on MAIN (a no-op when
// the selection resolves to MAIN itself), otherwise goes back.
func (n *Navigator) Select() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current != ScreenMain {
		n.back()
		return
	}
	target := Entries[n.selected].Target
	if target == ScreenMain {
		// Already on the dashboard.
		return
	}
	n.enter(target)
}

// Back pops the navigation stack, restoring the previous screen and
// its selection. Popping the last element is a no-op that instead
// resets to (MAIN, [MAIN], 0), so the stack is never empty.
func (n *Navigator) Back() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.back()
}

// Enter pushes the current screen and switches to target, resetting
// the selection. An unknown target is a logged no-op; it must never
// crash navigation.
func (n *Navigator) Enter(target Screen) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !screens[target] {
		log.Printf("menu: unknown screen %q, ignoring", target)
		return
	}
	n.enter(target)
}

func (n *Navigator) enter(target Screen) {
	n.stack = append(n.stack, frame{screen: n.current, selected: n.selected})
	n.current = target
	n.selected = 0
}

func (n *Navigator) back() {
	if len(n.stack) > 1 {
		top := n.stack[len(n.stack)-1]
		n.stack = n.stack[:len(n.stack)-1]
		n.current = top.screen
		n.selected = top.selected
		return
	}
	n.current = ScreenMain
	n.stack = n.stack[:0]
	n.stack = append(n.stack, frame{screen: ScreenMain})
	n.selected = 0
}

// Snapshot returns a copy of the current navigation state.
func (n *Navigator) Snapshot() Snapshot {
	n.mu.Lock()
	defer n.mu.Unlock()
	return Snapshot{
		Current:       n.current,
		SelectedIndex: n.selected,
		Depth:         len(n.stack),
	}
}
