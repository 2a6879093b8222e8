package engine

import (
	"github.com/bethropolis/blocks/internal/document"
	"github.com/bethropolis/blocks/internal/logger"
	"github.com/bethropolis/blocks/internal/snapshot"
)

// Command is a named key command, as produced by the key binding layer.
type Command string

const (
	CommandBold        Command = "bold"
	CommandItalic      Command = "italic"
	CommandUnderline   Command = "underline"
	CommandCode        Command = "code"
	CommandBackspace   Command = "backspace"
	CommandDelete      Command = "delete"
	CommandSplitBlock  Command = "split-block"
	CommandSoftNewline Command = "soft-newline"
	CommandUndo        Command = "undo"
	CommandRedo        Command = "redo"
)

var inlineCommands = map[Command]document.InlineStyle{
	CommandBold:      document.Bold,
	CommandItalic:    document.Italic,
	CommandUnderline: document.Underline,
	CommandCode:      document.Code,
}

// InlineStyleFor returns the style an inline command toggles.
func InlineStyleFor(cmd Command) (document.InlineStyle, bool) {
	style, ok := inlineCommands[cmd]
	return style, ok
}

// KeyResult is the outcome of DispatchKeyCommand. Snapshot is nil when
// Handled is false and the caller should fall back to default behaviour.
type KeyResult struct {
	Handled  bool
	Snapshot *snapshot.Snapshot
}

func notHandled() KeyResult { return KeyResult{} }

// DispatchKeyCommand applies the commands the engine owns. Inline style
// commands toggle their style. Backspace on a caret at the start of a
// non-paragraph block resets its type. Everything else (soft newline,
// undo, redo, plain deletes and splits) is left to the caller.
//
// An inline style command on a collapsed selection is reported as handled
// with the snapshot unchanged. Pending styles for text typed at a caret are
// not tracked here; a caller that wants them must keep them itself.
func DispatchKeyCommand(s *snapshot.Snapshot, cmd Command) KeyResult {
	if style, ok := inlineCommands[cmd]; ok {
		return KeyResult{Handled: true, Snapshot: ToggleInlineStyle(s, style)}
	}

	switch cmd {
	case CommandBackspace:
		if next, ok := removeBlockStyle(s); ok {
			return KeyResult{Handled: true, Snapshot: next}
		}
	}
	logger.DebugTagf("engine", "DispatchKeyCommand: %q not handled", cmd)
	return notHandled()
}

// removeBlockStyle resets a styled block to paragraph when backspace is
// pressed at its very start.
func removeBlockStyle(s *snapshot.Snapshot) (*snapshot.Snapshot, bool) {
	if !s.Valid() || !s.IsCollapsed() || s.Selection().AnchorOffset != 0 {
		return nil, false
	}
	b, _ := s.AnchorBlock()
	if b.Type() == document.Paragraph {
		return nil, false
	}
	return ToggleBlockType(s, document.Paragraph), true
}
