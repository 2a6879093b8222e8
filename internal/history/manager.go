package history

import (
	"github.com/bethropolis/blocks/internal/event"
	"github.com/bethropolis/blocks/internal/logger"
	"github.com/bethropolis/blocks/internal/snapshot"
)

const DefaultMaxHistory = 100

// Manager handles the undo/redo stack. It is owned by the UI goroutine and
// does no locking.
type Manager struct {
	events       *event.Manager
	changes      []Change
	currentIndex int // Index of the *next* change to potentially Redo
	maxHistory   int
}

// NewManager creates a history manager. events may be nil.
func NewManager(events *event.Manager, maxHistory int) *Manager {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Manager{
		events:     events,
		changes:    make([]Change, 0, maxHistory),
		maxHistory: maxHistory,
	}
}

// Record adds a change, clearing any redo history. Changes whose Before
// and After are the same snapshot are ignored, and consecutive typing in
// one block coalesces into a single entry.
func (m *Manager) Record(change Change) {
	if change.Before == nil || change.After == nil || change.Before == change.After {
		return
	}

	if m.currentIndex < len(m.changes) {
		m.changes = m.changes[:m.currentIndex]
	}

	if n := len(m.changes); n > 0 && change.continues(m.changes[n-1]) {
		m.changes[n-1].After = change.After
		logger.DebugTagf("history", "History: Coalesced %s. Index: %d", change.Origin, m.currentIndex)
		return
	}

	m.changes = append(m.changes, change)

	// Oldest entries fall off the bottom.
	if len(m.changes) > m.maxHistory {
		m.changes = m.changes[len(m.changes)-m.maxHistory:]
	}
	m.currentIndex = len(m.changes)

	logger.DebugTagf("history", "History: Recorded %s. Index: %d, Count: %d", change.Origin, m.currentIndex, len(m.changes))
}

// Undo returns the snapshot before the last recorded change. ok is false
// when there is nothing to undo.
func (m *Manager) Undo(current *snapshot.Snapshot) (*snapshot.Snapshot, bool) {
	if m.currentIndex <= 0 {
		logger.DebugTagf("history", "History: Nothing to undo.")
		return current, false
	}
	m.currentIndex--
	restored := m.changes[m.currentIndex].Before
	m.notify(current, restored, "undo")
	return restored, true
}

// Redo returns the snapshot produced by the last undone change.
func (m *Manager) Redo(current *snapshot.Snapshot) (*snapshot.Snapshot, bool) {
	if m.currentIndex >= len(m.changes) {
		logger.DebugTagf("history", "History: Nothing to redo. currentIndex=%d, len(changes)=%d", m.currentIndex, len(m.changes))
		return current, false
	}
	restored := m.changes[m.currentIndex].After
	m.currentIndex++
	m.notify(current, restored, "redo")
	return restored, true
}

func (m *Manager) notify(prev, cur *snapshot.Snapshot, origin string) {
	if m.events == nil {
		return
	}
	m.events.Dispatch(event.TypeSnapshotChanged, event.SnapshotChangedData{Previous: prev, Current: cur, Origin: origin})
}

// Clear resets the history stack. Call this on file load.
func (m *Manager) Clear() {
	m.changes = m.changes[:0]
	m.currentIndex = 0
	logger.DebugTagf("history", "History: Cleared.")
}

func (m *Manager) CanUndo() bool { return m.currentIndex > 0 }
func (m *Manager) CanRedo() bool { return m.currentIndex < len(m.changes) }

// Len is the number of recorded entries, including undone ones.
func (m *Manager) Len() int { return len(m.changes) }
