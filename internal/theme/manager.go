// internal/theme/manager.go
package theme

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bethropolis/blocks/internal/logger"
)

var builtins = map[string]*Theme{
	strings.ToLower(DevComfortDark.Name): &DevComfortDark,
	strings.ToLower(PaperLight.Name):     &PaperLight,
}

// Builtin looks a built-in theme up by case-insensitive name.
func Builtin(name string) (*Theme, bool) {
	t, ok := builtins[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// Manager holds the available themes and the active one.
type Manager struct {
	themes      map[string]*Theme // lowercase name -> theme
	activeTheme *Theme
}

// NewManager starts with the built-in themes and DevComfortDark active.
func NewManager() *Manager {
	m := &Manager{themes: make(map[string]*Theme)}
	for k, t := range builtins {
		m.themes[k] = t
	}
	m.activeTheme = &DevComfortDark
	return m
}

// LoadFile adds the theme at path and makes it active.
func (m *Manager) LoadFile(path string) error {
	t, err := LoadThemeFromFile(path)
	if err != nil {
		return err
	}
	m.themes[strings.ToLower(t.Name)] = t
	m.activeTheme = t
	logger.Infof("Theme switched to: %s", t.Name)
	return nil
}

// SetTheme activates a known theme by name.
func (m *Manager) SetTheme(name string) error {
	t, ok := m.themes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return fmt.Errorf("theme '%s' not found", name)
	}
	m.activeTheme = t
	logger.Infof("Theme switched to: %s", t.Name)
	return nil
}

// Current returns the active theme.
func (m *Manager) Current() *Theme { return m.activeTheme }

// ListThemes returns the theme names, sorted.
func (m *Manager) ListThemes() []string {
	names := make([]string, 0, len(m.themes))
	for _, t := range m.themes {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}
