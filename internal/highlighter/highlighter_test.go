package highlighter

import (
	"context"
	"errors"
	"testing"

	"github.com/bethropolis/blocks/internal/highlighter/lang"
)

func TestRegistry(t *testing.T) {
	RegisterLanguages()
	RegisterLanguages()
	for _, name := range []string{"go", "Golang", "python", "py", "js", "rust"} {
		if lang.Get(name) == nil {
			t.Errorf("language %q not registered", name)
		}
	}
	if n := len(lang.GetAll()); n != 4 {
		t.Errorf("registered %d languages; expected 4", n)
	}
}

func TestHighlightGo(t *testing.T) {
	h := NewHighlighter()
	text := "func main() {\n\treturn \"é\"\n}"
	spans, err := h.Highlight(context.Background(), "go", text)
	if err != nil {
		t.Fatalf("Highlight: %v", err)
	}
	if got := StyleAt(spans, 0); got != "keyword" {
		t.Errorf("style at 'func' = %q; expected keyword", got)
	}
	if got := StyleAt(spans, 5); got != "function" {
		t.Errorf("style at 'main' = %q; expected function", got)
	}
	// The "é" literal is runes 22..24; offsets count runes, not bytes.
	if got := StyleAt(spans, 23); got != "string" {
		t.Errorf("style inside the string = %q; expected string", got)
	}
	if got := StyleAt(spans, 11); got != "" {
		t.Errorf("unstyled rune got %q", got)
	}

	again, _ := h.Highlight(context.Background(), "go", text)
	if len(again) != len(spans) || (len(spans) > 0 && &again[0] != &spans[0]) {
		t.Errorf("second call did not hit the cache")
	}
}

func TestHighlightPython(t *testing.T) {
	h := NewHighlighter()
	spans, err := h.Highlight(context.Background(), "python", "def f():\n    return 1")
	if err != nil {
		t.Fatalf("Highlight: %v", err)
	}
	if got := StyleAt(spans, 0); got != "keyword" {
		t.Errorf("style at 'def' = %q", got)
	}
	if got := StyleAt(spans, 4); got != "function" {
		t.Errorf("style at 'f' = %q", got)
	}
}

func TestHighlightUnknownLanguage(t *testing.T) {
	h := NewHighlighter()
	if _, err := h.Highlight(context.Background(), "cobol", "x"); !errors.Is(err, ErrUnknownLanguage) {
		t.Errorf("err = %v; expected ErrUnknownLanguage", err)
	}
	if spans, err := h.Highlight(context.Background(), "go", ""); err != nil || spans != nil {
		t.Errorf("empty text = %v, %v", spans, err)
	}
}
