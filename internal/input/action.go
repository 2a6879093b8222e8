// internal/input/action.go
package input

// Action names a command the editor can perform. Names are the strings used
// in the [keys] section of the config file.
type Action string

const (
	ActionUnknown Action = ""
	ActionNone    Action = "none" // unbinds a key

	// Meta
	ActionQuit Action = "quit"
	ActionSave Action = "save"
	ActionBlur Action = "blur" // drop focus; closes the block menu

	// Inline styles
	ActionBold      Action = "bold"
	ActionItalic    Action = "italic"
	ActionUnderline Action = "underline"
	ActionCode      Action = "code"

	// Blocks
	ActionBlockMenu  Action = "block-menu"
	ActionSplitBlock Action = "split-block"
	ActionHeader     Action = "header-one"
	ActionList       Action = "unordered-list-item"
	ActionCodeBlock  Action = "code-block"

	// Text
	ActionInsertRune  Action = "insert-rune"
	ActionSoftNewline Action = "soft-newline"
	ActionBackspace   Action = "backspace"
	ActionDelete      Action = "delete"
	ActionIndent      Action = "indent"
	ActionUndo        Action = "undo"
	ActionRedo        Action = "redo"
	ActionCopy        Action = "copy"
	ActionCut         Action = "cut"
	ActionPaste       Action = "paste"
	ActionSelectAll   Action = "select-all"

	// Movement; Shift extends the selection.
	ActionMoveUp        Action = "move-up"
	ActionMoveDown      Action = "move-down"
	ActionMoveLeft      Action = "move-left"
	ActionMoveRight     Action = "move-right"
	ActionMoveLineStart Action = "move-line-start"
	ActionMoveLineEnd   Action = "move-line-end"
	ActionMoveDocStart  Action = "move-doc-start"
	ActionMoveDocEnd    Action = "move-doc-end"
)

var knownActions = map[Action]struct{}{}

func init() {
	for _, a := range []Action{
		ActionNone, ActionQuit, ActionSave, ActionBlur,
		ActionBold, ActionItalic, ActionUnderline, ActionCode,
		ActionBlockMenu, ActionSplitBlock, ActionHeader, ActionList, ActionCodeBlock,
		ActionSoftNewline, ActionBackspace, ActionDelete, ActionIndent,
		ActionUndo, ActionRedo, ActionCopy, ActionCut, ActionPaste, ActionSelectAll,
		ActionMoveUp, ActionMoveDown, ActionMoveLeft, ActionMoveRight,
		ActionMoveLineStart, ActionMoveLineEnd, ActionMoveDocStart, ActionMoveDocEnd,
	} {
		knownActions[a] = struct{}{}
	}
}

// IsKnown reports whether a can be bound to a key.
func (a Action) IsKnown() bool {
	_, ok := knownActions[a]
	return ok
}

// IsMovement reports whether Shift turns a into a selection extension.
func (a Action) IsMovement() bool {
	switch a {
	case ActionMoveUp, ActionMoveDown, ActionMoveLeft, ActionMoveRight,
		ActionMoveLineStart, ActionMoveLineEnd, ActionMoveDocStart, ActionMoveDocEnd:
		return true
	}
	return false
}

// ActionEvent is a decoded key event.
type ActionEvent struct {
	Action Action
	Rune   rune // Used for ActionInsertRune
	Extend bool // Shift held on a movement
}
