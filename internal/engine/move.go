package engine

import (
	"github.com/bethropolis/blocks/internal/selection"
	"github.com/bethropolis/blocks/internal/snapshot"
)

// Direction is a caret movement.
type Direction int

const (
	MoveLeft Direction = iota
	MoveRight
	MoveUp   // previous block, same offset
	MoveDown // next block, same offset
	MoveLineStart
	MoveLineEnd
	MoveDocStart
	MoveDocEnd
)

// Move changes the focus. With extend the anchor stays put; otherwise the
// selection collapses at the new point. Left/Right on a range without
// extend collapse to its start/end.
func Move(s *snapshot.Snapshot, dir Direction, extend bool) *snapshot.Snapshot {
	if !s.Valid() {
		return s
	}
	doc := s.Document()
	sel := s.Selection()

	if !extend && !sel.IsCollapsed() && (dir == MoveLeft || dir == MoveRight) {
		start, end, _ := sel.Ordered(doc)
		if dir == MoveLeft {
			return s.WithSelection(selection.Collapsed(start.Key, start.Offset))
		}
		return s.WithSelection(selection.Collapsed(end.Key, end.Offset))
	}

	focus := sel.Focus()
	b, _ := doc.Block(focus.Key)
	switch dir {
	case MoveLeft:
		if focus.Offset > 0 {
			focus.Offset--
		} else if prev, ok := doc.Before(b.Key()); ok {
			focus = selection.Point{Key: prev.Key(), Offset: prev.Len()}
		}
	case MoveRight:
		if focus.Offset < b.Len() {
			focus.Offset++
		} else if next, ok := doc.After(b.Key()); ok {
			focus = selection.Point{Key: next.Key(), Offset: 0}
		}
	case MoveUp:
		if prev, ok := doc.Before(b.Key()); ok {
			focus = selection.Point{Key: prev.Key(), Offset: prev.ClampOffset(focus.Offset)}
		} else {
			focus.Offset = 0
		}
	case MoveDown:
		if next, ok := doc.After(b.Key()); ok {
			focus = selection.Point{Key: next.Key(), Offset: next.ClampOffset(focus.Offset)}
		} else {
			focus.Offset = b.Len()
		}
	case MoveLineStart:
		focus.Offset = 0
	case MoveLineEnd:
		focus.Offset = b.Len()
	case MoveDocStart:
		focus = selection.Point{Key: doc.First().Key(), Offset: 0}
	case MoveDocEnd:
		focus = selection.Point{Key: doc.Last().Key(), Offset: doc.Last().Len()}
	}

	if extend {
		return s.WithSelection(selection.Between(sel.Anchor(), focus))
	}
	return s.WithSelection(selection.Collapsed(focus.Key, focus.Offset))
}

// SelectAll spans the whole document.
func SelectAll(s *snapshot.Snapshot) *snapshot.Snapshot {
	doc := s.Document()
	return snapshot.New(doc, selection.Between(
		selection.Point{Key: doc.First().Key(), Offset: 0},
		selection.Point{Key: doc.Last().Key(), Offset: doc.Last().Len()},
	))
}

// PlaceCaret collapses the selection at key:offset (clamped). Missing keys
// leave s unchanged.
func PlaceCaret(s *snapshot.Snapshot, key string, offset int) *snapshot.Snapshot {
	if !s.Document().Has(key) {
		return s
	}
	return s.WithSelection(selection.Collapsed(key, offset))
}

// ExtendTo moves the focus to key:offset keeping the anchor.
func ExtendTo(s *snapshot.Snapshot, key string, offset int) *snapshot.Snapshot {
	if !s.Document().Has(key) || !s.Valid() {
		return s
	}
	return s.WithSelection(selection.Between(s.Selection().Anchor(), selection.Point{Key: key, Offset: offset}))
}
