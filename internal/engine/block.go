package engine

import (
	"github.com/bethropolis/blocks/internal/document"
	"github.com/bethropolis/blocks/internal/logger"
	"github.com/bethropolis/blocks/internal/selection"
	"github.com/bethropolis/blocks/internal/snapshot"
)

// selectedBlocks lists the blocks a block-level command acts on. A range
// ending at offset 0 of a later block leaves that block out.
func selectedBlocks(s *snapshot.Snapshot) []*document.Block {
	spans := s.Selection().Spans(s.Document())
	if n := len(spans); n > 1 && spans[n-1].End == 0 {
		spans = spans[:n-1]
	}
	blocks := make([]*document.Block, len(spans))
	for i, sp := range spans {
		blocks[i] = sp.Block
	}
	return blocks
}

// ToggleBlockType sets every selected block to blockType, or back to
// Paragraph when they all have it already. Text and styles are untouched.
func ToggleBlockType(s *snapshot.Snapshot, blockType document.BlockType) *snapshot.Snapshot {
	if !s.Valid() {
		logger.DebugTagf("engine", "ToggleBlockType: selection %v names a missing block", s.Selection())
		return s
	}
	blockType = blockType.OrDefault()
	blocks := selectedBlocks(s)

	target := document.Paragraph
	for _, b := range blocks {
		if b.Type() != blockType {
			target = blockType
			break
		}
	}

	changed := make([]*document.Block, len(blocks))
	for i, b := range blocks {
		changed[i] = b.WithType(target)
	}
	doc := s.Document().Replace(changed...)
	if doc == s.Document() {
		return s
	}
	logger.DebugTagf("engine", "ToggleBlockType: %d block(s) -> %s", len(blocks), target)
	return snapshot.New(doc, s.Selection())
}

// CurrentBlockType is the type of the block holding the anchor.
func CurrentBlockType(s *snapshot.Snapshot) (document.BlockType, bool) {
	b, ok := s.AnchorBlock()
	if !ok {
		return "", false
	}
	return b.Type(), true
}

// InsertBlockAfterCurrent adds an empty block of blockType after the anchor
// block and moves the caret into it. When the anchor block is empty its
// type alone is toggled in place instead, so repeated block actions on a
// blank line do not pile up empty blocks. Unknown types are stored as given.
func InsertBlockAfterCurrent(s *snapshot.Snapshot, blockType document.BlockType) *snapshot.Snapshot {
	current, ok := s.AnchorBlock()
	if !ok || !s.Valid() {
		logger.DebugTagf("engine", "InsertBlockAfterCurrent: selection %v names a missing block", s.Selection())
		return s
	}
	if current.IsEmpty() {
		target := blockType.OrDefault()
		if current.Type() == target {
			target = document.Paragraph
		}
		doc := s.Document().Replace(current.WithType(target))
		if doc == s.Document() {
			return s
		}
		logger.DebugTagf("engine", "InsertBlockAfterCurrent: empty block %s -> %s", current.Key(), target)
		return snapshot.New(doc, s.Selection())
	}

	doc := s.Document()
	block := document.NewBlock(doc.FreshKey(), blockType, "")
	next := doc.InsertAfter(current.Key(), block)
	logger.DebugTagf("engine", "InsertBlockAfterCurrent: %s block %s after %s", block.Type(), block.Key(), current.Key())
	return snapshot.New(next, selection.Collapsed(block.Key(), 0))
}
