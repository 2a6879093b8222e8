// internal/blockmenu/menu.go
// Package blockmenu holds the open/closed state of the block-type picker.
package blockmenu

import (
	"github.com/bethropolis/blocks/internal/document"
	"github.com/bethropolis/blocks/internal/logger"
)

// State is the picker visibility.
type State int

const (
	Closed State = iota // initial
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Event drives a transition.
type Event int

const (
	// Toggle is a click on the block toolbar's button.
	Toggle Event = iota
	// Blur is the editor losing input focus.
	Blur
	// Select is a block type being chosen from the menu.
	Select
)

func (e Event) String() string {
	switch e {
	case Toggle:
		return "toggle"
	case Blur:
		return "blur"
	case Select:
		return "select"
	default:
		return "unknown"
	}
}

// Transition returns the state that follows s on e.
func Transition(s State, e Event) State {
	switch e {
	case Toggle:
		if s == Open {
			return Closed
		}
		return Open
	case Blur, Select:
		return Closed
	}
	return s
}

// Item is one entry in the picker.
type Item struct {
	Label string
	Type  document.BlockType
}

// DefaultItems are the block types the picker offers.
var DefaultItems = []Item{
	{Label: "Text", Type: document.Paragraph},
	{Label: "Heading", Type: document.HeaderOne},
	{Label: "List", Type: document.UnorderedListItem},
	{Label: "Code", Type: document.CodeBlock},
}

// Menu is the picker's UI state: visibility and the highlighted item.
type Menu struct {
	items    []Item
	state    State
	selected int
}

// New returns a closed menu over items, or DefaultItems when none are given.
func New(items ...Item) *Menu {
	if len(items) == 0 {
		items = DefaultItems
	}
	return &Menu{items: append([]Item(nil), items...)}
}

func (m *Menu) State() State  { return m.state }
func (m *Menu) IsOpen() bool  { return m.state == Open }
func (m *Menu) Items() []Item { return append([]Item(nil), m.items...) }
func (m *Menu) Selected() int { return m.selected }

// Apply runs the transition for e and reports whether the state changed.
func (m *Menu) Apply(e Event) bool {
	next := Transition(m.state, e)
	if next == m.state {
		return false
	}
	logger.DebugTagf("blockmenu", "Block menu: %s -> %s on %s", m.state, next, e)
	m.state = next
	if next == Open {
		m.selected = 0
	}
	return true
}

// Toggle flips visibility.
func (m *Menu) Toggle() bool { return m.Apply(Toggle) }

// Blur closes the menu on focus loss.
func (m *Menu) Blur() bool { return m.Apply(Blur) }

// MoveSelection shifts the highlight by delta, wrapping around. Ignored
// while closed.
func (m *Menu) MoveSelection(delta int) {
	if m.state != Open || len(m.items) == 0 {
		return
	}
	n := len(m.items)
	m.selected = ((m.selected+delta)%n + n) % n
}

// Choose picks item i, closes the menu and returns the chosen block type.
// ok is false for an out of range index or a closed menu.
func (m *Menu) Choose(i int) (document.BlockType, bool) {
	if m.state != Open || i < 0 || i >= len(m.items) {
		return "", false
	}
	m.selected = i
	m.Apply(Select)
	return m.items[i].Type, true
}

// ChooseSelected picks the highlighted item.
func (m *Menu) ChooseSelected() (document.BlockType, bool) {
	return m.Choose(m.selected)
}
