// Package history provides undo/redo over editor snapshots.
package history

import "github.com/bethropolis/blocks/internal/snapshot"

// Origin names what produced a change.
type Origin string

const (
	OriginTyping  Origin = "insert-characters"
	OriginCommand Origin = "command"
	OriginPaste   Origin = "paste"
	OriginBlock   Origin = "change-block-type"
)

// Change is one replacement of the current snapshot. Snapshots are
// immutable, so reverting is restoring Before.
type Change struct {
	Origin Origin
	Before *snapshot.Snapshot
	After  *snapshot.Snapshot
}

// continues reports whether c extends prev as a single typing run: same
// origin, same block and c starting where prev ended.
func (c Change) continues(prev Change) bool {
	if c.Origin != OriginTyping || prev.Origin != OriginTyping || prev.After != c.Before {
		return false
	}
	return prev.After.Selection().FocusKey == c.After.Selection().FocusKey
}
