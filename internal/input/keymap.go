// internal/input/keymap.go
package input

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/blocks/internal/logger"
)

// Binding is a normalised key: Ctrl is folded into the control key codes
// and Rune is only set for tcell.KeyRune.
type Binding struct {
	Key  tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

func normalize(key tcell.Key, r rune, mod tcell.ModMask) Binding {
	if key != tcell.KeyRune {
		r = 0
	}
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		mod &^= tcell.ModCtrl // The key code already implies it
	}
	if key == tcell.KeyBackspace {
		key = tcell.KeyBackspace2
	}
	return Binding{Key: key, Rune: r, Mod: mod &^ tcell.ModMeta}
}

// keyNames are the names accepted in key strings besides single runes and
// ctrl+<letter>.
var keyNames = map[string]tcell.Key{
	"enter":     tcell.KeyEnter,
	"tab":       tcell.KeyTab,
	"backtab":   tcell.KeyBacktab,
	"backspace": tcell.KeyBackspace2,
	"delete":    tcell.KeyDelete,
	"del":       tcell.KeyDelete,
	"escape":    tcell.KeyEscape,
	"esc":       tcell.KeyEscape,
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
	"home":      tcell.KeyHome,
	"end":       tcell.KeyEnd,
	"pgup":      tcell.KeyPgUp,
	"pgdn":      tcell.KeyPgDn,
	"space":     tcell.KeyRune,
}

// ParseKey parses strings such as "ctrl+b", "alt+i", "shift+home" or "enter".
func ParseKey(s string) (Binding, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	name := parts[len(parts)-1]
	if name == "" {
		return Binding{}, fmt.Errorf("invalid key %q", s)
	}

	var mod tcell.ModMask
	for _, m := range parts[:len(parts)-1] {
		switch m {
		case "ctrl", "c":
			mod |= tcell.ModCtrl
		case "alt", "a", "m", "meta":
			mod |= tcell.ModAlt
		case "shift", "s":
			mod |= tcell.ModShift
		default:
			return Binding{}, fmt.Errorf("invalid modifier %q in key %q", m, s)
		}
	}

	if key, ok := keyNames[name]; ok {
		if name == "space" {
			return normalize(tcell.KeyRune, ' ', mod), nil
		}
		return normalize(key, 0, mod), nil
	}

	runes := []rune(name)
	if len(runes) != 1 {
		return Binding{}, fmt.Errorf("unknown key name %q in %q", name, s)
	}
	r := runes[0]
	if mod&tcell.ModCtrl != 0 && r >= 'a' && r <= 'z' {
		return normalize(tcell.KeyCtrlA+tcell.Key(r-'a'), 0, mod), nil
	}
	return normalize(tcell.KeyRune, r, mod), nil
}

// InputProcessor translates tcell key events into ActionEvents.
type InputProcessor struct {
	bindings map[Binding]Action
	custom   map[Action]struct{} // commands registered at runtime
}

// NewInputProcessor creates a processor with default keybindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{bindings: make(map[Binding]Action), custom: make(map[Action]struct{})}
	p.loadDefaultBindings()
	return p
}

var defaultBindings = map[string]Action{
	"ctrl+b":    ActionBold,
	"alt+i":     ActionItalic,
	"ctrl+u":    ActionUnderline,
	"ctrl+k":    ActionCode,
	"ctrl+z":    ActionUndo,
	"ctrl+y":    ActionRedo,
	"alt+enter": ActionSoftNewline,
	"enter":     ActionSplitBlock,
	"backspace": ActionBackspace,
	"delete":    ActionDelete,
	"tab":       ActionIndent,
	"ctrl+c":    ActionCopy,
	"ctrl+x":    ActionCut,
	"ctrl+v":    ActionPaste,
	"ctrl+a":    ActionSelectAll,
	"ctrl+s":    ActionSave,
	"ctrl+q":    ActionQuit,
	"ctrl+t":    ActionBlockMenu,
	"escape":    ActionBlur,
	"up":        ActionMoveUp,
	"down":      ActionMoveDown,
	"left":      ActionMoveLeft,
	"right":     ActionMoveRight,
	"home":      ActionMoveLineStart,
	"end":       ActionMoveLineEnd,
	"pgup":      ActionMoveDocStart,
	"pgdn":      ActionMoveDocEnd,
}

func (p *InputProcessor) loadDefaultBindings() {
	for key, action := range defaultBindings {
		b, err := ParseKey(key)
		if err != nil {
			panic(err) // the table above is static
		}
		p.bindings[b] = action
	}
}

// ApplyOverrides binds keys from a key string -> action name map. Bad
// entries are skipped and reported together.
func (p *InputProcessor) ApplyOverrides(keys map[string]string) error {
	var errs []error
	for key, name := range keys {
		b, err := ParseKey(key)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		action := Action(strings.ToLower(strings.TrimSpace(name)))
		if !p.IsBindable(action) {
			errs = append(errs, fmt.Errorf("key %q: unknown action %q", key, name))
			continue
		}
		if action == ActionNone {
			delete(p.bindings, b)
		} else {
			p.bindings[b] = action
		}
		logger.DebugTagf("input", "Keymap: %q -> %s", key, action)
	}
	return errors.Join(errs...)
}

// RegisterAction makes a plugin command bindable from [keys]. Built-in
// names cannot be taken over.
func (p *InputProcessor) RegisterAction(a Action) error {
	if a == ActionUnknown || a.IsKnown() {
		return fmt.Errorf("action %q is reserved", a)
	}
	p.custom[a] = struct{}{}
	return nil
}

// IsCustom reports whether a was added with RegisterAction.
func (p *InputProcessor) IsCustom(a Action) bool {
	_, ok := p.custom[a]
	return ok
}

// IsBindable reports whether a key may be bound to a.
func (p *InputProcessor) IsBindable(a Action) bool {
	return a.IsKnown() || p.IsCustom(a)
}

// Lookup returns the action bound to b.
func (p *InputProcessor) Lookup(b Binding) (Action, bool) {
	a, ok := p.bindings[b]
	return a, ok
}

// ProcessEvent maps a key event to an action. Unbound plain runes become
// ActionInsertRune.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	b := normalize(ev.Key(), ev.Rune(), ev.Modifiers())

	// 1. Exact binding, including any Shift.
	if action, ok := p.bindings[b]; ok {
		return ActionEvent{Action: action, Rune: b.Rune}
	}

	// 2. Shift+movement extends the selection.
	if b.Mod&tcell.ModShift != 0 {
		plain := b
		plain.Mod &^= tcell.ModShift
		if action, ok := p.bindings[plain]; ok && action.IsMovement() {
			return ActionEvent{Action: action, Extend: true}
		}
	}

	// 3. Text. Shift on a rune is just case.
	if b.Key == tcell.KeyRune && b.Mod&^tcell.ModShift == 0 {
		return ActionEvent{Action: ActionInsertRune, Rune: b.Rune}
	}

	return ActionEvent{Action: ActionUnknown}
}
