// Package highlighter colours code-block text with tree-sitter queries.
package highlighter

import (
	"context"
	"errors"
	"fmt"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/bethropolis/blocks/internal/highlighter/lang"
	"github.com/bethropolis/blocks/internal/highlighter/utils"
	"github.com/bethropolis/blocks/internal/logger"
)

// ErrUnknownLanguage is returned for a language name nothing registered.
var ErrUnknownLanguage = errors.New("unknown language")

// Span styles the runes [Start, End) of a block's text.
type Span struct {
	Start, End int
	StyleName  string
}

const maxCached = 256

type cacheKey struct {
	lang *lang.Language
	text string
}

// Highlighter parses code-block text. It is not safe for concurrent use.
type Highlighter struct {
	parser  *sitter.Parser
	queries map[*lang.Language]*sitter.Query
	cache   map[cacheKey][]Span
}

// NewHighlighter creates a highlighter with the built-in languages registered.
func NewHighlighter() *Highlighter {
	RegisterLanguages()
	return &Highlighter{
		parser:  sitter.NewParser(),
		queries: make(map[*lang.Language]*sitter.Query),
		cache:   make(map[cacheKey][]Span),
	}
}

func (h *Highlighter) query(l *lang.Language) (*sitter.Query, error) {
	if q, ok := h.queries[l]; ok {
		return q, nil
	}
	src, err := l.GetQuery()
	if err != nil {
		return nil, err
	}
	q, err := sitter.NewQuery(src, l.TreeSitterLang)
	if err != nil {
		return nil, fmt.Errorf("query parse failed for %s: %w", l.Name, err)
	}
	h.queries[l] = q
	return q, nil
}

// Highlight returns styled rune spans for text in the named language,
// ordered by start. Results are cached by language and text.
func (h *Highlighter) Highlight(ctx context.Context, language, text string) ([]Span, error) {
	l := lang.Get(language)
	if l == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, language)
	}
	if text == "" {
		return nil, nil
	}
	k := cacheKey{lang: l, text: text}
	if spans, ok := h.cache[k]; ok {
		return spans, nil
	}

	q, err := h.query(l)
	if err != nil {
		return nil, err
	}

	h.parser.SetLanguage(l.TreeSitterLang)
	src := []byte(text)
	tree, err := h.parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing failed: %w", err)
	}
	defer tree.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, tree.RootNode())

	runes := utils.NewRuneIndex(text)
	var spans []Span
	for {
		match, exists := qc.NextMatch()
		if !exists {
			break
		}
		for _, capture := range match.Captures {
			start := runes.ByteToRune(int(capture.Node.StartByte()))
			end := runes.ByteToRune(int(capture.Node.EndByte()))
			if end <= start {
				continue
			}
			spans = append(spans, Span{
				Start:     start,
				End:       end,
				StyleName: utils.CaptureNameToStyleName(q.CaptureNameForId(capture.Index)),
			})
		}
	}
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })

	if len(h.cache) >= maxCached {
		h.cache = make(map[cacheKey][]Span)
	}
	h.cache[k] = spans
	logger.DebugTagf("highlight", "Highlight: %s, %d runes, %d spans", l.Name, len(text), len(spans))
	return spans, nil
}

// StyleAt returns the name of the last span covering rune i, or "".
func StyleAt(spans []Span, i int) string {
	name := ""
	for _, s := range spans {
		if s.Start > i {
			break
		}
		if i < s.End {
			name = s.StyleName
		}
	}
	return name
}
