package lang

import (
	"fmt"
	"io/fs"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/bethropolis/blocks/internal/logger"
)

// QueryFS is the filesystem holding queries/<QueryPath>/highlights.scm.
var QueryFS fs.FS

// Language is a grammar usable for code blocks.
type Language struct {
	// Name is the display name, also accepted as a lookup key.
	Name string

	// Aliases are additional lookup keys, such as "py" or "golang".
	Aliases []string

	TreeSitterLang *sitter.Language

	// QueryPath is the directory under queries/ holding the highlight query.
	QueryPath string
}

// GetQuery loads the highlight query source for this language.
func (l *Language) GetQuery() ([]byte, error) {
	if QueryFS == nil {
		return nil, fmt.Errorf("no query filesystem for %s", l.Name)
	}
	if l.QueryPath == "" {
		return nil, fmt.Errorf("no query path defined for language %s", l.Name)
	}

	queryPath := fmt.Sprintf("queries/%s/highlights.scm", l.QueryPath)
	query, err := fs.ReadFile(QueryFS, queryPath)
	if err != nil {
		return nil, fmt.Errorf("load query for %s: %w", l.Name, err)
	}
	logger.DebugTagf("highlight", "Loaded query from %s for %s (%d bytes)", queryPath, l.Name, len(query))
	return query, nil
}
