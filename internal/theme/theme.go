// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/blocks/internal/logger"
)

// Style names looked up by the renderer. Syntax highlighting uses the
// tree-sitter capture names directly ("keyword", "string.escape", ...).
const (
	StyleDefault       = "Default"
	StyleHeader        = "Header"
	StyleListBullet    = "ListBullet"
	StyleCode          = "Code"      // inline CODE style
	StyleCodeBlock     = "CodeBlock" // background of code-block lines
	StyleImage         = "Image"
	StyleUnknownBlock  = "UnknownBlock"
	StyleSelection     = "Selection"
	StylePlaceholder   = "Placeholder"
	StyleToolbar       = "Toolbar"
	StyleToolbarActive = "ToolbarActive"
	StyleBlockToolbar  = "BlockToolbar"
	StyleMenu          = "Menu"
	StyleMenuSelected  = "MenuSelected"

	StyleStatusBar         = "StatusBar"
	StyleStatusBarModified = "StatusBarModified"
	StyleStatusBarMessage  = "StatusBarMessage"
)

// Theme is a named set of styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle returns the style for name, falling back to the part before the
// first dot, then to Default.
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		if style, ok := t.Styles[name[:dotIndex]]; ok {
			return style
		}
	}

	if defStyle, ok := t.Styles[StyleDefault]; ok {
		return defStyle
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// Has reports whether name resolves without falling back to Default.
func (t *Theme) Has(name string) bool {
	if _, ok := t.Styles[name]; ok {
		return true
	}
	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		_, ok := t.Styles[name[:dotIndex]]
		return ok
	}
	return false
}

type palette struct {
	fg, panel, muted                 tcell.Color
	orange, yellow, green, cyan      tcell.Color
	blue, magenta, selection, codeBg tcell.Color
}

func build(name string, dark bool, p palette) Theme {
	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(p.fg)
	code := base.Background(p.codeBg)
	panel := tcell.StyleDefault.Background(p.panel).Foreground(p.fg)

	return Theme{
		Name:   name,
		IsDark: dark,
		Styles: map[string]tcell.Style{
			// --- Blocks ---
			StyleDefault:      base,
			StyleHeader:       base.Foreground(p.blue).Bold(true),
			StyleListBullet:   base.Foreground(p.orange),
			StyleCode:         base.Foreground(p.magenta).Background(p.codeBg),
			StyleCodeBlock:    code,
			StyleImage:        base.Foreground(p.muted).Italic(true),
			StyleUnknownBlock: base.Foreground(p.muted),
			StyleSelection:    base.Background(p.selection),
			StylePlaceholder:  base.Foreground(p.muted).Italic(true),

			// --- Toolbars and menu ---
			StyleToolbar:       panel,
			StyleToolbarActive: panel.Foreground(p.yellow).Bold(true),
			StyleBlockToolbar:  panel.Foreground(p.green).Bold(true),
			StyleMenu:          panel,
			StyleMenuSelected:  panel.Reverse(true),

			StyleStatusBar:         panel,
			StyleStatusBarModified: panel.Foreground(p.yellow),
			StyleStatusBarMessage:  panel.Bold(true),

			// --- Syntax highlighting inside code blocks ---
			"keyword":          code.Foreground(p.blue).Bold(true),
			"string":           code.Foreground(p.green),
			"string.escape":    code.Foreground(p.magenta),
			"comment":          code.Foreground(p.muted).Italic(true),
			"number":           code.Foreground(p.orange),
			"constant":         code.Foreground(p.orange),
			"boolean":          code.Foreground(p.orange),
			"type":             code.Foreground(p.cyan),
			"type.builtin":     code.Foreground(p.cyan).Bold(true),
			"function":         code.Foreground(p.yellow),
			"function.builtin": code.Foreground(p.cyan).Italic(true),
			"variable":         code,
			"operator":         code,
			"punctuation":      code.Foreground(p.muted),
		},
	}
}

// DevComfortDark is the default theme.
var DevComfortDark = build("DevComfort Dark", true, palette{
	fg:        tcell.NewHexColor(0xc5cdd9),
	panel:     tcell.NewHexColor(0x2a2f38),
	muted:     tcell.NewHexColor(0x5c6370),
	orange:    tcell.NewHexColor(0xd19a66),
	yellow:    tcell.NewHexColor(0xe5c07b),
	green:     tcell.NewHexColor(0x98c379),
	cyan:      tcell.NewHexColor(0x56b6c2),
	blue:      tcell.NewHexColor(0x61afef),
	magenta:   tcell.NewHexColor(0xc678dd),
	selection: tcell.NewHexColor(0x3e4451),
	codeBg:    tcell.NewHexColor(0x21252b),
})

// PaperLight suits light terminals.
var PaperLight = build("Paper Light", false, palette{
	fg:        tcell.NewHexColor(0x383a42),
	panel:     tcell.NewHexColor(0xe5e5e6),
	muted:     tcell.NewHexColor(0xa0a1a7),
	orange:    tcell.NewHexColor(0x986801),
	yellow:    tcell.NewHexColor(0xc18401),
	green:     tcell.NewHexColor(0x50a14f),
	cyan:      tcell.NewHexColor(0x0184bc),
	blue:      tcell.NewHexColor(0x4078f2),
	magenta:   tcell.NewHexColor(0xa626a4),
	selection: tcell.NewHexColor(0xd7e4fd),
	codeBg:    tcell.NewHexColor(0xf0f0f1),
})
