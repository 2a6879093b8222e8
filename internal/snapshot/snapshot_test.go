package snapshot

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bethropolis/blocks/internal/document"
	"github.com/bethropolis/blocks/internal/selection"
)

func TestNewEmpty(t *testing.T) {
	s := NewEmpty()
	doc := s.Document()
	if doc.Len() != 1 || !doc.First().IsEmpty() {
		t.Fatalf("NewEmpty should hold one empty block, got %d", doc.Len())
	}
	if !s.IsCollapsed() || s.Selection().AnchorKey != doc.First().Key() || s.Selection().AnchorOffset != 0 {
		t.Errorf("NewEmpty selection is %v; expected caret at offset 0", s.Selection())
	}
}

func TestNewClampsAndRepair(t *testing.T) {
	doc := document.New(document.NewBlock("a", document.Paragraph, "abc"))
	s := New(doc, selection.Collapsed("a", 10))
	if got := s.Selection().AnchorOffset; got != 3 {
		t.Errorf("offset clamped to %d; expected 3", got)
	}

	stale := New(doc, selection.Collapsed("gone", 1))
	if stale.Valid() {
		t.Fatalf("selection on a missing key should be invalid")
	}
	if got := stale.Repair().Selection(); got != selection.Collapsed("a", 0) {
		t.Errorf("Repair() selection is %v; expected caret at a:0", got)
	}
	if s.Repair() != s {
		t.Errorf("Repair() on a valid snapshot should return it unchanged")
	}
}

func sampleSnapshot() *Snapshot {
	doc := document.New(
		document.NewBlock("a1", document.HeaderOne, "Title"),
		document.NewBlock("b2", document.Paragraph, "hello world",
			document.StyleRange{Style: document.Bold, Start: 0, End: 5},
			document.StyleRange{Style: document.Italic, Start: 3, End: 11}),
		document.NewBlock("c3", "custom-embed", ""),
	)
	return New(doc, selection.Between(selection.Point{Key: "b2", Offset: 6}, selection.Point{Key: "a1", Offset: 2}))
}

func TestEncodeDecode(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(format.String(), func(t *testing.T) {
			want := sampleSnapshot()
			var buf bytes.Buffer
			if err := Encode(&buf, want, format); err != nil {
				t.Fatalf("Encode: %v", err)
			}
			got, err := Decode(&buf, format)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if diff := cmp.Diff(want.Export(), got.Export()); diff != "" {
				t.Errorf("snapshot changed across %v (-want +got):\n%s", format, diff)
			}
		})
	}
}

func TestDecodeJSONShape(t *testing.T) {
	input := `{
  "blocks": [
    {"key": "k1", "type": "paragraph", "text": "hi", "inlineStyleRanges": [{"style": "BOLD", "start": 0, "end": 9}]}
  ],
  "selection": {"anchorKey": "nope", "anchorOffset": 1, "focusKey": "nope", "focusOffset": 1}
}`
	s, err := Decode(strings.NewReader(input), FormatJSON)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	b := s.Document().First()
	if diff := cmp.Diff([]document.StyleRange{{Style: document.Bold, Start: 0, End: 2}}, b.StyleRanges()); diff != "" {
		t.Errorf("ranges not clamped (-want +got):\n%s", diff)
	}
	if got := s.Selection(); got != selection.Collapsed("k1", 0) {
		t.Errorf("selection on missing key became %v; expected caret at k1:0", got)
	}
}

func TestImportErrors(t *testing.T) {
	if _, err := Import(Flat{}); !errors.Is(err, ErrEmptyDocument) {
		t.Errorf("empty import error is %v; expected ErrEmptyDocument", err)
	}
	dup := Flat{Blocks: []FlatBlock{{Key: "x"}, {Key: "x"}}}
	if _, err := Import(dup); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("duplicate import error is %v; expected ErrDuplicateKey", err)
	}
}

func TestFormatForPath(t *testing.T) {
	testCases := []struct {
		path string
		want Format
		err  bool
	}{
		{"doc.json", FormatJSON, false},
		{"doc.YAML", FormatYAML, false},
		{"doc.yml", FormatYAML, false},
		{"doc.txt", 0, true},
	}
	for _, tc := range testCases {
		got, err := FormatForPath(tc.path)
		if (err != nil) != tc.err || (!tc.err && got != tc.want) {
			t.Errorf("FormatForPath(%q) = %v, %v; expected %v, err=%v", tc.path, got, err, tc.want, tc.err)
		}
	}
}
