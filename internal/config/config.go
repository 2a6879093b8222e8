// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/blocks/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger  logger.Config `toml:"logger"`
	Editor  EditorConfig  `toml:"editor"`
	Toolbar ToolbarConfig `toml:"toolbar"`
	// Keys maps key strings such as "ctrl+b" to command names.
	Keys map[string]string `toml:"keys"`
	// ThemeFile is an optional TOML theme; relative paths resolve against
	// the config file's directory.
	ThemeFile string `toml:"theme_file"`
	// Plugins holds one table per plugin, e.g. [plugins.autosave].
	Plugins map[string]map[string]interface{} `toml:"plugins"`
}

// EditorConfig holds editing behaviour.
type EditorConfig struct {
	IndentWidth     int    `toml:"indent_width"`
	SystemClipboard bool   `toml:"system_clipboard"`
	CodeLanguage    string `toml:"code_language"` // grammar for code blocks
	MaxHistory      int    `toml:"max_history"`
	Placeholder     string `toml:"placeholder"` // shown while the document is empty
}

// ToolbarConfig positions the floating toolbars, in cells.
type ToolbarConfig struct {
	InlineOffset float64 `toml:"inline_offset"`
	BlockGap     float64 `toml:"block_gap"`
	BlockAnchor  string  `toml:"block_anchor"` // "center" or "top"
	BlockWidth   float64 `toml:"block_width"`
	BlockHeight  float64 `toml:"block_height"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			IndentWidth:     DefaultIndentWidth,
			SystemClipboard: SystemClipboard,
			CodeLanguage:    DefaultCodeLanguage,
			MaxHistory:      DefaultMaxHistory,
			Placeholder:     DefaultPlaceholder,
		},
		Toolbar: ToolbarConfig{
			InlineOffset: DefaultInlineOffset,
			BlockGap:     DefaultBlockGap,
			BlockAnchor:  DefaultBlockAnchor,
			BlockWidth:   DefaultBlockWidth,
			BlockHeight:  DefaultBlockHeight,
		},
		Keys: map[string]string{
			"alt+w": "word-count",
			"alt+t": "next-theme",
		},
		Plugins: map[string]map[string]interface{}{},
	}
}

// IndentString is the text inserted by the indent command.
func (c *Config) IndentString() string {
	return strings.Repeat(" ", c.Editor.IndentWidth)
}

// DefaultPath is ~/.config/blocks/config.toml, or "" when the user config
// directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName)
}

// loadFromFile decodes filePath over cfg. A missing file is not an error.
// It returns the keys the file set that Config does not know.
func loadFromFile(filePath string, cfg *Config) ([]string, error) {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	var unknown []string
	for _, key := range metadata.Undecoded() {
		unknown = append(unknown, key.String())
	}
	if cfg.ThemeFile != "" && !filepath.IsAbs(cfg.ThemeFile) {
		cfg.ThemeFile = filepath.Join(filepath.Dir(filePath), cfg.ThemeFile)
	}
	return unknown, nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.IndentWidth <= 0 || c.Editor.IndentWidth > MaxIndentWidth {
		c.Editor.IndentWidth = defaults.Editor.IndentWidth
	}
	if c.Editor.MaxHistory <= 0 {
		c.Editor.MaxHistory = defaults.Editor.MaxHistory
	}
	if c.Editor.CodeLanguage == "" {
		c.Editor.CodeLanguage = defaults.Editor.CodeLanguage
	}

	if c.Toolbar.InlineOffset < 0 {
		c.Toolbar.InlineOffset = defaults.Toolbar.InlineOffset
	}
	if c.Toolbar.BlockGap < 0 {
		c.Toolbar.BlockGap = defaults.Toolbar.BlockGap
	}
	if c.Toolbar.BlockWidth < 1 {
		c.Toolbar.BlockWidth = defaults.Toolbar.BlockWidth
	}
	if c.Toolbar.BlockHeight < 1 {
		c.Toolbar.BlockHeight = defaults.Toolbar.BlockHeight
	}
	switch c.Toolbar.BlockAnchor {
	case "center", "top":
	default:
		c.Toolbar.BlockAnchor = defaults.Toolbar.BlockAnchor
	}

	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if c.Plugins == nil {
		c.Plugins = map[string]map[string]interface{}{}
	}
	if c.Keys == nil {
		c.Keys = map[string]string{}
	}
}

// Load builds a Config from defaults, the file at configFilePath (the
// default location when empty) and set flags, in that order. Unknown keys
// in the file are returned so the caller can warn once logging is up.
func Load(configFilePath string, flags *Flags) (*Config, []string, error) {
	cfg := NewDefaultConfig()

	effectivePath := configFilePath
	if effectivePath == "" {
		effectivePath = DefaultPath()
	}

	var unknown []string
	var err error
	if effectivePath != "" {
		unknown, err = loadFromFile(effectivePath, cfg)
	}

	if flags != nil {
		flags.ApplyOverrides(cfg, false)
	}
	cfg.validate()
	return cfg, unknown, err
}

// LoadConfig runs Load once and stores the result for Get. It should be
// called only once, typically from main, before the logger is initialised.
func LoadConfig(configFilePath string, flags *Flags) (*Config, []string, error) {
	var unknown []string
	loadOnce.Do(func() {
		loadedConfig, unknown, loadErr = Load(configFilePath, flags)
	})
	return loadedConfig, unknown, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}
