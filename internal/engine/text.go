package engine

import (
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/blocks/internal/document"
	"github.com/bethropolis/blocks/internal/logger"
	"github.com/bethropolis/blocks/internal/selection"
	"github.com/bethropolis/blocks/internal/snapshot"
)

// DefaultIndent is what Indent inserts.
const DefaultIndent = "    "

// replaceRange swaps the selected text for text styled with styles and
// collapses the caret after it. Blocks between the selection ends are
// merged into the first one, which keeps its key and type.
func replaceRange(s *snapshot.Snapshot, text string, styles document.StyleSet) *snapshot.Snapshot {
	spans := s.Selection().Spans(s.Document())
	if len(spans) == 0 {
		return s
	}
	first, last := spans[0], spans[len(spans)-1]

	headRunes := first.Block.Runes()[:first.Start]
	headStyles := first.Block.CharStyles()[:first.Start]
	tailRunes := last.Block.Runes()[last.End:]
	tailStyles := last.Block.CharStyles()[last.End:]

	inserted := []rune(text)
	runes := make([]rune, 0, len(headRunes)+len(inserted)+len(tailRunes))
	runes = append(runes, headRunes...)
	runes = append(runes, inserted...)
	runes = append(runes, tailRunes...)

	chars := make([]document.StyleSet, 0, len(runes))
	chars = append(chars, headStyles...)
	for range inserted {
		chars = append(chars, styles)
	}
	chars = append(chars, tailStyles...)

	merged := document.NewBlockFromChars(first.Block.Key(), first.Block.Type(), string(runes), chars)

	doc := s.Document()
	if len(spans) == 1 {
		doc = doc.Replace(merged)
	} else {
		doc = doc.Splice(first.Block.Key(), last.Block.Key(), merged)
	}
	return snapshot.New(doc, selection.Collapsed(merged.Key(), first.Start+len(inserted)))
}

// Indent replaces the selection with four spaces.
func Indent(s *snapshot.Snapshot) *snapshot.Snapshot {
	return IndentWith(s, DefaultIndent)
}

// IndentWith replaces the selection (or inserts at the caret) with indent,
// unstyled, and collapses the caret after it. Block type is not consulted:
// inside a code block this inserts literal spaces too.
func IndentWith(s *snapshot.Snapshot, indent string) *snapshot.Snapshot {
	if !s.Valid() {
		logger.DebugTagf("engine", "Indent: selection %v names a missing block", s.Selection())
		return s
	}
	return replaceRange(s, indent, nil)
}

// insertionStyles is what typed text inherits: the style at the start of a
// range, or of the character before a caret.
func insertionStyles(s *snapshot.Snapshot) document.StyleSet {
	start, _, ok := s.Selection().Ordered(s.Document())
	if !ok {
		return nil
	}
	b, _ := s.Document().Block(start.Key)
	if s.IsCollapsed() {
		return b.StyleAt(start.Offset - 1)
	}
	return b.StyleAt(start.Offset)
}

// InsertText types text over the selection. The inserted characters take
// the styles of their surroundings.
func InsertText(s *snapshot.Snapshot, text string) *snapshot.Snapshot {
	if !s.Valid() || (text == "" && s.IsCollapsed()) {
		return s
	}
	return replaceRange(s, text, insertionStyles(s))
}

// InsertSoftNewline places a line break inside the current block.
func InsertSoftNewline(s *snapshot.Snapshot) *snapshot.Snapshot {
	return InsertText(s, "\n")
}

// RemoveSelection deletes the selected text. Returns s for a caret.
func RemoveSelection(s *snapshot.Snapshot) *snapshot.Snapshot {
	if !s.Valid() || s.IsCollapsed() {
		return s
	}
	return replaceRange(s, "", nil)
}

// splitType is the type for the block created by SplitBlock.
func splitType(t document.BlockType) document.BlockType {
	switch t.Kind() {
	case document.KindHeaderOne, document.KindImage:
		return document.Paragraph
	}
	return t
}

// SplitBlock breaks the block at the caret (after removing any selected
// text); the text after the caret moves into a new block.
func SplitBlock(s *snapshot.Snapshot) *snapshot.Snapshot {
	if !s.Valid() {
		return s
	}
	s = RemoveSelection(s)
	b, _ := s.AnchorBlock()
	off := s.Selection().AnchorOffset

	runes, chars := b.Runes(), b.CharStyles()
	head := document.NewBlockFromChars(b.Key(), b.Type(), string(runes[:off]), chars[:off])

	doc := s.Document().Replace(head)
	tail := document.NewBlockFromChars(doc.FreshKey(), splitType(b.Type()), string(runes[off:]), chars[off:])
	doc = doc.InsertAfter(head.Key(), tail)
	return snapshot.New(doc, selection.Collapsed(tail.Key(), 0))
}

// mergeBlocks joins next onto prev, keeping prev's key and type, with the
// caret at the joint.
func mergeBlocks(s *snapshot.Snapshot, prev, next *document.Block) *snapshot.Snapshot {
	chars := append(prev.CharStyles(), next.CharStyles()...)
	merged := document.NewBlockFromChars(prev.Key(), prev.Type(), prev.Text()+next.Text(), chars)
	doc := s.Document().Splice(prev.Key(), next.Key(), merged)
	return snapshot.New(doc, selection.Collapsed(merged.Key(), prev.Len()))
}

// DeleteBackward removes the selection, or the character before the caret.
// At the start of a block the block is merged into the previous one.
func DeleteBackward(s *snapshot.Snapshot) *snapshot.Snapshot {
	if !s.Valid() {
		return s
	}
	if !s.IsCollapsed() {
		return RemoveSelection(s)
	}
	b, _ := s.AnchorBlock()
	off := s.Selection().AnchorOffset
	if off > 0 {
		return replaceRange(s.WithSelection(selection.Between(
			selection.Point{Key: b.Key(), Offset: off - 1},
			selection.Point{Key: b.Key(), Offset: off},
		)), "", nil)
	}
	prev, ok := s.Document().Before(b.Key())
	if !ok {
		return s
	}
	return mergeBlocks(s, prev, b)
}

// DeleteForward removes the selection, or the character after the caret.
// At the end of a block the next block is merged into it.
func DeleteForward(s *snapshot.Snapshot) *snapshot.Snapshot {
	if !s.Valid() {
		return s
	}
	if !s.IsCollapsed() {
		return RemoveSelection(s)
	}
	b, _ := s.AnchorBlock()
	off := s.Selection().AnchorOffset
	if off < b.Len() {
		return replaceRange(s.WithSelection(selection.Between(
			selection.Point{Key: b.Key(), Offset: off},
			selection.Point{Key: b.Key(), Offset: off + 1},
		)), "", nil)
	}
	next, ok := s.Document().After(b.Key())
	if !ok {
		return s
	}
	return mergeBlocks(s, b, next)
}

// SelectedText returns the plain text of the selection, blocks joined by newlines.
func SelectedText(s *snapshot.Snapshot) string {
	spans := s.Selection().Spans(s.Document())
	parts := make([]string, len(spans))
	for i, sp := range spans {
		runes := sp.Block.Runes()
		parts[i] = string(runes[sp.Start:sp.End])
	}
	return strings.Join(parts, "\n")
}

// Paste inserts text at the selection; each newline starts a new block.
func Paste(s *snapshot.Snapshot, text string) *snapshot.Snapshot {
	if !s.Valid() || !utf8.ValidString(text) {
		return s
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			s = SplitBlock(s)
		}
		s = InsertText(s, line)
	}
	return s
}
