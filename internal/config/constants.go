package config

// Base application details
const AppName = "blocks"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "blocks.log"

// Editor behaviour
const DefaultIndentWidth = 4
const MaxIndentWidth = 16
const DefaultMaxHistory = 100
const DefaultCodeLanguage = "go"
const DefaultPlaceholder = "Start typing..."
const SystemClipboard = true

// Toolbar layout, in terminal cells
const DefaultInlineOffset = 1
const DefaultBlockGap = 1
const DefaultBlockWidth = 3
const DefaultBlockHeight = 1
const DefaultBlockAnchor = "center"
