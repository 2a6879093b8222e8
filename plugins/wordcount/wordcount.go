// plugins/wordcount/wordcount.go
package wordcount

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/blocks/internal/plugin"
)

// Ensure WordCount implements plugin.Plugin
var _ plugin.Plugin = (*WordCount)(nil)

// CommandName is the command the plugin registers.
const CommandName = "word-count"

// WordCount reports block, word and character counts of the document.
type WordCount struct {
	api plugin.EditorAPI
}

// New creates a new instance of the WordCount plugin.
func New() *WordCount {
	return &WordCount{}
}

// Name returns the unique name of the plugin.
func (p *WordCount) Name() string {
	return "wordcount"
}

// Initialize registers the word-count command.
func (p *WordCount) Initialize(api plugin.EditorAPI) error {
	p.api = api
	if err := api.RegisterCommand(CommandName, p.executeWordCount); err != nil {
		return fmt.Errorf("failed to register '%s' command: %w", CommandName, err)
	}
	return nil
}

// Shutdown performs cleanup (nothing needed for this simple plugin).
func (p *WordCount) Shutdown() error {
	return nil
}

// Stats are the counts shown by the command.
type Stats struct {
	Blocks int
	Words  int
	Chars  int
}

// Count computes Stats for the given block texts.
func Count(texts []string) Stats {
	st := Stats{Blocks: len(texts)}
	for _, t := range texts {
		st.Words += len(strings.Fields(t))
		st.Chars += utf8.RuneCountInString(t)
	}
	return st
}

func (p *WordCount) executeWordCount(args []string) error {
	if p.api == nil {
		return fmt.Errorf("wordcount plugin not initialized with API")
	}
	blocks := p.api.Snapshot().Document().Blocks()
	texts := make([]string, len(blocks))
	for i, b := range blocks {
		texts[i] = b.Text()
	}
	st := Count(texts)
	p.api.SetStatusMessage("Blocks: %d, Words: %d, Chars: %d", st.Blocks, st.Words, st.Chars)
	return nil
}
