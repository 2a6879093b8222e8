package history

import (
	"testing"

	"github.com/bethropolis/blocks/internal/document"
	"github.com/bethropolis/blocks/internal/engine"
	"github.com/bethropolis/blocks/internal/event"
	"github.com/bethropolis/blocks/internal/selection"
	"github.com/bethropolis/blocks/internal/snapshot"
)

func start() *snapshot.Snapshot {
	doc := document.New(document.NewBlock("a", document.Paragraph, "hello"), document.NewBlock("b", document.Paragraph, ""))
	return snapshot.New(doc, selection.Collapsed("a", 5))
}

func TestUndoRedo(t *testing.T) {
	events := event.NewManager()
	var origins []string
	events.Subscribe(event.TypeSnapshotChanged, func(e event.Event) bool {
		origins = append(origins, e.Data.(event.SnapshotChangedData).Origin)
		return false
	})
	h := NewManager(events, 10)

	s0 := start()
	s1 := engine.ToggleBlockType(s0, document.HeaderOne)
	h.Record(Change{Origin: OriginBlock, Before: s0, After: s1})
	s2 := engine.Indent(s1)
	h.Record(Change{Origin: OriginCommand, Before: s1, After: s2})

	got, ok := h.Undo(s2)
	if !ok || got != s1 {
		t.Fatalf("first undo did not restore s1")
	}
	got, ok = h.Undo(got)
	if !ok || got != s0 {
		t.Fatalf("second undo did not restore s0")
	}
	if _, ok := h.Undo(got); ok {
		t.Errorf("undo past the start succeeded")
	}
	got, ok = h.Redo(got)
	if !ok || got != s1 {
		t.Errorf("redo did not restore s1")
	}
	if len(origins) != 3 || origins[0] != "undo" || origins[2] != "redo" {
		t.Errorf("dispatched origins = %v", origins)
	}

	// A new change drops the redo tail.
	s3 := engine.InsertText(s1, "!")
	h.Record(Change{Origin: OriginCommand, Before: s1, After: s3})
	if h.CanRedo() {
		t.Errorf("redo history survived a new change")
	}
	if h.Len() != 2 {
		t.Errorf("Len = %d; expected 2", h.Len())
	}
}

func TestTypingCoalesces(t *testing.T) {
	h := NewManager(nil, 0)
	s := start()
	first := s
	for _, r := range "abc" {
		next := engine.InsertText(s, string(r))
		h.Record(Change{Origin: OriginTyping, Before: s, After: next})
		s = next
	}
	if h.Len() != 1 {
		t.Fatalf("typing produced %d entries; expected 1", h.Len())
	}
	got, _ := h.Undo(s)
	if got != first {
		t.Errorf("undo of a typing run did not restore the start")
	}

	// Typing in another block starts a new entry.
	h.Clear()
	s = first
	a := engine.InsertText(s, "x")
	h.Record(Change{Origin: OriginTyping, Before: s, After: a})
	moved := engine.PlaceCaret(a, "b", 0)
	b := engine.InsertText(moved, "y")
	h.Record(Change{Origin: OriginTyping, Before: moved, After: b})
	if h.Len() != 2 {
		t.Errorf("typing across blocks coalesced: %d entries", h.Len())
	}
}

func TestBoundedAndNoops(t *testing.T) {
	h := NewManager(nil, 2)
	s := start()
	h.Record(Change{Origin: OriginCommand, Before: s, After: s})
	if h.CanUndo() {
		t.Errorf("no-op change was recorded")
	}
	for i := 0; i < 5; i++ {
		next := engine.Indent(s)
		h.Record(Change{Origin: OriginCommand, Before: s, After: next})
		s = next
	}
	if h.Len() != 2 {
		t.Errorf("Len = %d; expected the bound of 2", h.Len())
	}
}
