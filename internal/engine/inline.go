// Package engine holds the pure editing operations. Every function takes a
// snapshot and returns the next one; inputs are never modified, and an
// operation that cannot apply returns its input unchanged.
package engine

import (
	"github.com/bethropolis/blocks/internal/document"
	"github.com/bethropolis/blocks/internal/logger"
	"github.com/bethropolis/blocks/internal/snapshot"
)

// ToggleInlineStyle applies style to every character in the selection, or
// removes it when every covered character already carries it. A collapsed
// selection, or a range covering no characters, is a no-op.
func ToggleInlineStyle(s *snapshot.Snapshot, style document.InlineStyle) *snapshot.Snapshot {
	if !s.Valid() {
		logger.DebugTagf("engine", "ToggleInlineStyle: selection %v names a missing block", s.Selection())
		return s
	}
	if s.IsCollapsed() {
		return s
	}

	spans := s.Selection().Spans(s.Document())
	covered, all := 0, true
	for _, sp := range spans {
		for i := sp.Start; i < sp.End; i++ {
			covered++
			if !sp.Block.StyleAt(i).Has(style) {
				all = false
			}
		}
	}
	if covered == 0 {
		logger.DebugTagf("engine", "ToggleInlineStyle: range %v covers no characters", s.Selection())
		return s
	}

	changed := make([]*document.Block, 0, len(spans))
	for _, sp := range spans {
		if sp.Start >= sp.End {
			continue
		}
		b := sp.Block
		chars := b.CharStyles()
		for i := sp.Start; i < sp.End; i++ {
			if all {
				chars[i] = chars[i].Without(style)
			} else {
				chars[i] = chars[i].With(style)
			}
		}
		changed = append(changed, document.NewBlockFromChars(b.Key(), b.Type(), b.Text(), chars))
	}

	logger.DebugTagf("engine", "ToggleInlineStyle: %s removed=%v over %d chars", style, all, covered)
	return snapshot.New(s.Document().Replace(changed...), s.Selection())
}

// ActiveInlineStyles reports the styles an inline toolbar shows as active:
// for a range, the styles carried by every covered character; for a caret,
// the styles of the character before it (or the first character at offset 0).
func ActiveInlineStyles(s *snapshot.Snapshot) document.StyleSet {
	if !s.Valid() {
		return nil
	}
	if s.IsCollapsed() {
		b, _ := s.AnchorBlock()
		off := s.Selection().AnchorOffset
		if off > 0 {
			return b.StyleAt(off - 1)
		}
		return b.StyleAt(0)
	}

	var active document.StyleSet
	first := true
	for _, sp := range s.Selection().Spans(s.Document()) {
		for i := sp.Start; i < sp.End; i++ {
			at := sp.Block.StyleAt(i)
			if first {
				active, first = at, false
				continue
			}
			active = active.Intersect(at)
		}
	}
	return active
}
