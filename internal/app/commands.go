package app

import (
	"fmt"
	"strings"

	"github.com/bethropolis/blocks/internal/logger"
)

// registerAppCommands registers built-in commands that live outside the
// engine, such as theme switching.
func (a *App) registerAppCommands() {
	themeCmdFunc := func(args []string) error {
		if len(args) == 0 {
			a.statusBar.SetTemporaryMessage("Current theme: %s", a.themes.Current().Name)
			return nil
		}
		themeName := strings.Join(args, " ") // theme names may contain spaces
		if err := a.setTheme(themeName); err != nil {
			return fmt.Errorf("theme '%s' not found. Available: %s", themeName, strings.Join(a.themes.ListThemes(), ", "))
		}
		a.statusBar.SetTemporaryMessage("Theme set to: %s", a.themes.Current().Name)
		return nil
	}

	// next-theme cycles through the sorted theme list.
	nextThemeCmdFunc := func([]string) error {
		names := a.themes.ListThemes()
		if len(names) == 0 {
			return fmt.Errorf("no themes available")
		}
		current := a.themes.Current().Name
		next := names[0]
		for i, n := range names {
			if n == current {
				next = names[(i+1)%len(names)]
				break
			}
		}
		return themeCmdFunc([]string{next})
	}

	themeListCmdFunc := func([]string) error {
		a.statusBar.SetTemporaryMessage("Available themes: %s", strings.Join(a.themes.ListThemes(), ", "))
		return nil
	}

	for name, fn := range map[string]func([]string) error{
		"theme":      themeCmdFunc,
		"next-theme": nextThemeCmdFunc,
		"themes":     themeListCmdFunc,
	} {
		if err := a.registerCommand(name, fn); err != nil {
			logger.Warnf("Failed to register '%s' command: %v", name, err)
		}
	}
}
