// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/blocks/internal/theme"
)

// Config defines the appearance and behavior of the status bar.
type Config struct {
	StyleDefault   tcell.Style
	StyleModified  tcell.Style
	StyleMessage   tcell.Style
	MessageTimeout time.Duration
}

// ConfigFromTheme takes the status bar styles from th.
func ConfigFromTheme(th *theme.Theme) Config {
	return Config{
		StyleDefault:   th.GetStyle(theme.StyleStatusBar),
		StyleModified:  th.GetStyle(theme.StyleStatusBarModified),
		StyleMessage:   th.GetStyle(theme.StyleStatusBarMessage),
		MessageTimeout: 4 * time.Second,
	}
}

// StatusBar is the bottom line: file, block type, active styles and
// temporary messages.
type StatusBar struct {
	config Config
	mu     sync.RWMutex
	now    func() time.Time

	filePath   string
	isModified bool
	blockType  string
	styles     []string
	focused    bool

	tempMessage     string
	tempMessageTime time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{config: config, now: time.Now, focused: true}
}

// SetConfig swaps the styles, e.g. after a theme change.
func (sb *StatusBar) SetConfig(config Config) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.config = config
}

// SetFileInfo updates the file path shown in the status bar.
func (sb *StatusBar) SetFileInfo(path string, modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.filePath = path
	sb.isModified = modified
}

// SetBlockInfo shows the caret block's type and the styles active at the caret.
func (sb *StatusBar) SetBlockInfo(blockType string, styles []string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.blockType = blockType
	sb.styles = append(sb.styles[:0], styles...)
}

// SetFocused records whether the editor has input focus.
func (sb *StatusBar) SetFocused(focused bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.focused = focused
}

// SetTemporaryMessage displays a message for a configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
}

// ResetTemporaryMessage clears any temporary message being displayed
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// Text returns the line that Draw would show, and whether it is a message.
func (sb *StatusBar) Text() (string, bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	active := !sb.tempMessageTime.IsZero() && sb.now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout
	if !sb.tempMessageTime.IsZero() && !active {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}
	if active {
		return sb.tempMessage, true
	}
	return sb.defaultText(), false
}

func (sb *StatusBar) defaultText() string {
	fPath := sb.filePath
	if fPath == "" {
		fPath = "[No Name]"
	}
	var b strings.Builder
	b.WriteString(fPath)
	if sb.isModified {
		b.WriteString(" [Modified]")
	}
	if sb.blockType != "" {
		fmt.Fprintf(&b, " -- %s", sb.blockType)
	}
	if len(sb.styles) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(sb.styles, " "))
	}
	if !sb.focused {
		b.WriteString(" -- (unfocused)")
	}
	return b.String()
}

// Draw renders the status bar on the last screen row.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1

	text, isMessage := sb.Text()
	style := sb.config.StyleDefault
	if isMessage {
		style = sb.config.StyleMessage
	} else {
		sb.mu.RLock()
		if sb.isModified {
			style = sb.config.StyleModified
		}
		sb.mu.RUnlock()
	}

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	gr := uniseg.NewGraphemes(text)
	currentX := 0
	for gr.Next() {
		clusterWidth := gr.Width()
		if currentX+clusterWidth > width {
			break
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			screen.SetContent(currentX, y, runes[0], runes[1:], style)
		}
		currentX += clusterWidth
	}
}
