// Package history keeps a bounded undo/redo stack of editor snapshots.
package history

import (
	"bytes"
	"errors"
	"sync"
)

// DefaultDepth is the number of entries kept when no depth is configured.
const DefaultDepth = 10

// ErrRestorePending is returned when the history is mutated while a
// previously returned entry is still being restored.
var ErrRestorePending = errors.New("history: restore in progress")

// Entry is one snapshot: the rendered raster and the serialized vector state.
type Entry struct {
	Raster []byte // PNG-encoded canvas
	State  []byte // serialized overlays and mask
}

func (e Entry) equal(o Entry) bool {
	return bytes.Equal(e.State, o.State) && bytes.Equal(e.Raster, o.Raster)
}

// Manager is a bounded history with a cursor on the current entry. Pushing
// drops any redo tail and evicts the oldest entry once the depth is reached.
//
// Undo and Redo hand back an entry the caller restores asynchronously; until
// the caller reports completion with Restored, further mutations fail with
// ErrRestorePending.
type Manager struct {
	mu      sync.Mutex
	depth   int
	entries []Entry
	cursor  int
	pending bool
}

// New returns an empty Manager keeping at most depth entries.
func New(depth int) *Manager {
	if depth < 1 {
		depth = DefaultDepth
	}
	return &Manager{depth: depth, cursor: -1}
}

// Push records e as the new current entry. An entry identical to the
// current one is not recorded and Push reports false.
func (m *Manager) Push(e Entry) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending {
		return false, ErrRestorePending
	}
	if m.cursor >= 0 && m.entries[m.cursor].equal(e) {
		return false, nil
	}

	m.entries = append(m.entries[:m.cursor+1], e)
	if over := len(m.entries) - m.depth; over > 0 {
		m.entries = append([]Entry(nil), m.entries[over:]...)
	}
	m.cursor = len(m.entries) - 1
	return true, nil
}

// Undo steps back one entry. At the oldest entry it is a no-op and reports
// false.
func (m *Manager) Undo() (Entry, bool, error) {
	return m.step(-1)
}

// Redo steps forward one entry. At the newest entry it is a no-op and
// reports false.
func (m *Manager) Redo() (Entry, bool, error) {
	return m.step(1)
}

func (m *Manager) step(delta int) (Entry, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending {
		return Entry{}, false, ErrRestorePending
	}
	next := m.cursor + delta
	if m.cursor < 0 || next < 0 || next >= len(m.entries) {
		return Entry{}, false, nil
	}
	m.cursor = next
	m.pending = true
	return m.entries[next], true, nil
}

// Restored marks the pending restore as complete.
func (m *Manager) Restored() {
	m.mu.Lock()
	m.pending = false
	m.mu.Unlock()
}

// Pending reports whether a restore is in progress.
func (m *Manager) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending
}

// Len returns the number of entries.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Cursor returns the index of the current entry, -1 when empty.
func (m *Manager) Cursor() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor
}

// Current returns the current entry.
func (m *Manager) Current() (Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cursor < 0 {
		return Entry{}, false
	}
	return m.entries[m.cursor], true
}

// CanUndo reports whether Undo would move the cursor.
func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor > 0
}

// CanRedo reports whether Redo would move the cursor.
func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor >= 0 && m.cursor < len(m.entries)-1
}

// Clear drops all entries and any pending restore.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	m.cursor = -1
	m.pending = false
}
