package gesture

import (
	"fmt"
	"sync"
	"time"
)

// Mode is the scene's top-level display mode.
type Mode int

const (
	// ModeTree shows the assembled particle tree.
	ModeTree Mode = iota
	// ModeScatter disperses every element into a floating cloud.
	ModeScatter
	// ModePhotoZoom focuses a single photo card.
	ModePhotoZoom
)

// String returns the wire name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeTree:
		return "tree"
	case ModeScatter:
		return "scatter"
	case ModePhotoZoom:
		return "photo_zoom"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode converts a wire name back into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "tree":
		return ModeTree, nil
	case "scatter":
		return ModeScatter, nil
	case "photo_zoom":
		return ModePhotoZoom, nil
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

// DebounceWindow is the minimum interval between two gesture-accepted mode
// transitions, measured from the timestamp of the last accepted transition.
const DebounceWindow = 800 * time.Millisecond

// Machine applies the debounced transition policy that turns noisy per-frame
// gesture readings into discrete mode changes.
//
// Gesture input goes through Observe; UI buttons go through Set, which
// bypasses the debounce entirely and does not touch its timer.
type Machine struct {
	mu           sync.Mutex
	mode         Mode
	lastAccepted time.Time
	onChange     func(from, to Mode)
}

// NewMachine creates a Machine starting in ModeTree.
func NewMachine() *Machine {
	return &Machine{mode: ModeTree}
}

// Mode returns the current mode.
func (m *Machine) Mode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// OnChange registers the callback fired after every accepted mode change,
// from either the gesture path or a manual Set. The callback runs outside
// the machine's lock.
func (m *Machine) OnChange(fn func(from, to Mode)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

// Observe feeds one gesture reading through the transition policy. It
// returns true if a transition was accepted.
//
// Readings arriving within DebounceWindow of the last accepted transition
// are dropped. A reading that matches no rule leaves the mode unchanged and
// does NOT reset the debounce clock.
func (m *Machine) Observe(r Reading, now time.Time) bool {
	m.mu.Lock()

	if now.Sub(m.lastAccepted) < DebounceWindow {
		m.mu.Unlock()
		return false
	}

	next, ok := m.evaluate(r)
	if !ok {
		m.mu.Unlock()
		return false
	}

	m.lastAccepted = now
	from := m.mode
	m.mode = next
	fn := m.onChange
	m.mu.Unlock()

	if fn != nil {
		fn(from, next)
	}
	return true
}

// evaluate applies the priority-ordered transition table. Callers hold m.mu.
//
// The open-palm rule requires NOT pinching: an OK-sign pose satisfies both
// "at most one finger curled" and the pinch distance threshold, and must not
// kick the scene out of zoom while the user is holding a pinch.
func (m *Machine) evaluate(r Reading) (Mode, bool) {
	switch {
	case r.IsFist && m.mode != ModeTree:
		return ModeTree, true
	case r.IsPinching && m.mode == ModeScatter:
		return ModePhotoZoom, true
	case r.IsOpen && !r.IsPinching && (m.mode == ModePhotoZoom || m.mode == ModeTree):
		return ModeScatter, true
	}
	return m.mode, false
}

// Set applies a manual mode override. It ignores the debounce window and
// leaves the gesture debounce timer untouched, but still fires the change
// callback so side effects stay funneled through one place.
func (m *Machine) Set(mode Mode) {
	m.mu.Lock()
	if m.mode == mode {
		m.mu.Unlock()
		return
	}
	from := m.mode
	m.mode = mode
	fn := m.onChange
	m.mu.Unlock()

	if fn != nil {
		fn(from, mode)
	}
}
