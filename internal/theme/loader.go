// internal/theme/loader.go
package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/blocks/internal/logger"
)

// TomlStyleDef is one style in a theme file. Pointers detect unset values.
type TomlStyleDef struct {
	Fg        *string `toml:"fg"`
	Bg        *string `toml:"bg"`
	Bold      *bool   `toml:"bold"`
	Italic    *bool   `toml:"italic"`
	Underline *bool   `toml:"underline"`
	Reverse   *bool   `toml:"reverse"`
}

// TomlTheme is the layout of a theme file. Extends names a built-in theme
// whose styles are used for anything the file leaves out.
type TomlTheme struct {
	Name    string                  `toml:"name"`
	IsDark  bool                    `toml:"is_dark"`
	Extends string                  `toml:"extends"`
	Styles  map[string]TomlStyleDef `toml:"styles"`
}

// LoadThemeFromFile parses a TOML theme file.
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file '%s': %w", filePath, err)
	}
	name := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	t, err := ParseTheme(string(data), name)
	if err != nil {
		return nil, fmt.Errorf("theme file '%s': %w", filePath, err)
	}
	logger.DebugTagf("theme", "Loaded theme '%s' from '%s'", t.Name, filePath)
	return t, nil
}

// ParseTheme converts TOML theme data. fallbackName is used when the data
// has no name. Styles without an explicit parent inherit from the theme's
// Default, which itself starts from the extended built-in's Default.
func ParseTheme(data, fallbackName string) (*Theme, error) {
	var tomlTheme TomlTheme
	metadata, err := toml.Decode(data, &tomlTheme)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML theme: %w", err)
	}
	if len(metadata.Undecoded()) > 0 {
		logger.Warnf("Theme '%s': Unrecognized keys: %v", tomlTheme.Name, metadata.Undecoded())
	}
	if tomlTheme.Name == "" {
		tomlTheme.Name = fallbackName
	}

	theme := &Theme{
		Name:   tomlTheme.Name,
		IsDark: tomlTheme.IsDark,
		Styles: make(map[string]tcell.Style),
	}

	parentDefault := tcell.StyleDefault
	if tomlTheme.Extends != "" {
		parent, ok := Builtin(tomlTheme.Extends)
		if !ok {
			return nil, fmt.Errorf("unknown theme %q in extends", tomlTheme.Extends)
		}
		for k, v := range parent.Styles {
			theme.Styles[k] = v
		}
		parentDefault = parent.GetStyle(StyleDefault)
	}

	baseStyle := parentDefault
	if defaultTomlStyle, ok := tomlTheme.Styles[StyleDefault]; ok {
		var parseErr error
		baseStyle, parseErr = convertTomlStyle(defaultTomlStyle, parentDefault)
		if parseErr != nil {
			logger.Warnf("Theme '%s': Failed to parse 'Default' style, using parent default: %v", theme.Name, parseErr)
			baseStyle = parentDefault
		}
	}
	theme.Styles[StyleDefault] = baseStyle

	for name, tomlStyle := range tomlTheme.Styles {
		if name == StyleDefault {
			continue
		}
		style, err := convertTomlStyle(tomlStyle, baseStyle)
		if err != nil {
			logger.Warnf("Theme '%s': Failed to parse style '%s', skipping: %v", theme.Name, name, err)
			continue
		}
		theme.Styles[name] = style
	}
	return theme, nil
}

// convertTomlStyle converts the TOML definition to a tcell.Style, inheriting from a base
func convertTomlStyle(tomlStyle TomlStyleDef, baseStyle tcell.Style) (tcell.Style, error) {
	style := baseStyle // Start with the base style to inherit unset properties

	// Apply foreground color
	if tomlStyle.Fg != nil {
		color, err := parseColorString(*tomlStyle.Fg)
		if err != nil {
			return style, fmt.Errorf("invalid foreground color '%s': %w", *tomlStyle.Fg, err)
		}
		style = style.Foreground(color)
	}

	// Apply background color
	if tomlStyle.Bg != nil {
		color, err := parseColorString(*tomlStyle.Bg)
		if err != nil {
			return style, fmt.Errorf("invalid background color '%s': %w", *tomlStyle.Bg, err)
		}
		style = style.Background(color)
	}

	// Apply attributes
	if tomlStyle.Bold != nil {
		style = style.Bold(*tomlStyle.Bold)
	}
	if tomlStyle.Italic != nil {
		style = style.Italic(*tomlStyle.Italic)
	}
	if tomlStyle.Underline != nil {
		style = style.Underline(*tomlStyle.Underline)
	}
	if tomlStyle.Reverse != nil {
		style = style.Reverse(*tomlStyle.Reverse)
	}

	return style, nil
}

// parseColorString accepts #RRGGBB, tcell colour names and the keywords
// "reset" and "default".
func parseColorString(s string) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(s, "#") {
		if len(s) != 7 {
			return tcell.ColorDefault, fmt.Errorf("invalid hex color format '%s', must be #RRGGBB", s)
		}
		val, err := strconv.ParseInt(s[1:], 16, 32)
		if err != nil {
			return tcell.ColorDefault, fmt.Errorf("invalid hex value '%s': %w", s, err)
		}
		return tcell.NewHexColor(int32(val)), nil
	}

	switch s {
	case "reset":
		return tcell.ColorReset, nil
	case "default":
		return tcell.ColorDefault, nil
	}
	if c, ok := tcell.ColorNames[s]; ok {
		return c, nil
	}
	return tcell.ColorDefault, fmt.Errorf("unknown color format or name '%s'", s)
}
