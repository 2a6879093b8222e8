// Package snapshot pairs a document with its selection. A Snapshot is the
// one unit of editor state handed between the owner and the engine.
package snapshot

import (
	"github.com/bethropolis/blocks/internal/document"
	"github.com/bethropolis/blocks/internal/selection"
)

// Snapshot is immutable; every edit produces a new value.
type Snapshot struct {
	doc *document.Document
	sel selection.Selection
}

// NewEmpty is the mount-time state: one empty paragraph with a caret at 0.
func NewEmpty() *Snapshot {
	doc := document.Empty()
	return &Snapshot{doc: doc, sel: selection.Collapsed(doc.First().Key(), 0)}
}

// New pairs doc with sel, clamping offsets to their blocks. A selection
// naming a missing block is kept as-is; engine operations skip such
// snapshots. Use Repair to reset it.
func New(doc *document.Document, sel selection.Selection) *Snapshot {
	if doc == nil {
		doc = document.Empty()
	}
	return &Snapshot{doc: doc, sel: sel.Clamp(doc)}
}

// Valid reports whether both selection ends name blocks in the document.
func (s *Snapshot) Valid() bool { return s.sel.Valid(s.doc) }

// Repair returns s, or a caret at the first block when the selection names
// a missing block.
func (s *Snapshot) Repair() *Snapshot {
	if s.Valid() {
		return s
	}
	return &Snapshot{doc: s.doc, sel: selection.Collapsed(s.doc.First().Key(), 0)}
}

// Document returns the snapshot's document.
func (s *Snapshot) Document() *document.Document { return s.doc }

// Selection returns the snapshot's selection.
func (s *Snapshot) Selection() selection.Selection { return s.sel }

// WithSelection returns a snapshot sharing the document with a new selection.
func (s *Snapshot) WithSelection(sel selection.Selection) *Snapshot {
	return New(s.doc, sel)
}

// AnchorBlock returns the block holding the selection anchor.
func (s *Snapshot) AnchorBlock() (*document.Block, bool) {
	return s.doc.Block(s.sel.AnchorKey)
}

// FocusBlock returns the block holding the selection focus.
func (s *Snapshot) FocusBlock() (*document.Block, bool) {
	return s.doc.Block(s.sel.FocusKey)
}

// IsCollapsed reports whether the selection is a caret.
func (s *Snapshot) IsCollapsed() bool { return s.sel.IsCollapsed() }
