// internal/highlighter/languages.go
package highlighter

import (
	"embed"
	"sync"

	"github.com/bethropolis/blocks/internal/highlighter/lang"
	"github.com/bethropolis/blocks/internal/logger"

	gosrc "github.com/smacker/go-tree-sitter/golang"
	jssrc "github.com/smacker/go-tree-sitter/javascript"
	pythonsrc "github.com/smacker/go-tree-sitter/python"
	rustsrc "github.com/smacker/go-tree-sitter/rust"
)

//go:embed queries/*/*.scm
var embeddedQueries embed.FS

var registerOnce sync.Once

// RegisterLanguages installs the built-in grammars. Safe to call repeatedly.
func RegisterLanguages() {
	registerOnce.Do(func() {
		if lang.QueryFS == nil {
			lang.QueryFS = embeddedQueries
		}

		lang.Register(&lang.Language{
			Name:           "Go",
			Aliases:        []string{"golang"},
			TreeSitterLang: gosrc.GetLanguage(),
			QueryPath:      "go",
		})
		lang.Register(&lang.Language{
			Name:           "Python",
			Aliases:        []string{"py"},
			TreeSitterLang: pythonsrc.GetLanguage(),
			QueryPath:      "python",
		})
		lang.Register(&lang.Language{
			Name:           "JavaScript",
			Aliases:        []string{"js"},
			TreeSitterLang: jssrc.GetLanguage(),
			QueryPath:      "javascript",
		})
		lang.Register(&lang.Language{
			Name:           "Rust",
			Aliases:        []string{"rs"},
			TreeSitterLang: rustsrc.GetLanguage(),
			QueryPath:      "rust",
		})

		logger.DebugTagf("highlight", "Registration complete. Registered %d languages.", len(lang.GetAll()))
	})
}
