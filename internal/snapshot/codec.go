package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bethropolis/blocks/internal/document"
	"github.com/bethropolis/blocks/internal/logger"
	"github.com/bethropolis/blocks/internal/selection"
)

var (
	ErrEmptyDocument = errors.New("snapshot has no blocks")
	ErrDuplicateKey  = errors.New("duplicate block key")
	ErrUnknownFormat = errors.New("unknown snapshot format")
)

// Format selects the on-disk encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatForPath picks a format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Flat is the serialisable shape of a snapshot.
type Flat struct {
	Blocks    []FlatBlock   `json:"blocks" yaml:"blocks"`
	Selection FlatSelection `json:"selection" yaml:"selection"`
}

type FlatBlock struct {
	Key               string      `json:"key" yaml:"key"`
	Type              string      `json:"type" yaml:"type"`
	Text              string      `json:"text" yaml:"text"`
	InlineStyleRanges []FlatRange `json:"inlineStyleRanges" yaml:"inlineStyleRanges"`
}

type FlatRange struct {
	Style string `json:"style" yaml:"style"`
	Start int    `json:"start" yaml:"start"`
	End   int    `json:"end" yaml:"end"`
}

type FlatSelection struct {
	AnchorKey    string `json:"anchorKey" yaml:"anchorKey"`
	AnchorOffset int    `json:"anchorOffset" yaml:"anchorOffset"`
	FocusKey     string `json:"focusKey" yaml:"focusKey"`
	FocusOffset  int    `json:"focusOffset" yaml:"focusOffset"`
}

// Export flattens the snapshot.
func (s *Snapshot) Export() Flat {
	blocks := s.doc.Blocks()
	flat := Flat{
		Blocks: make([]FlatBlock, 0, len(blocks)),
		Selection: FlatSelection{
			AnchorKey:    s.sel.AnchorKey,
			AnchorOffset: s.sel.AnchorOffset,
			FocusKey:     s.sel.FocusKey,
			FocusOffset:  s.sel.FocusOffset,
		},
	}
	for _, b := range blocks {
		ranges := make([]FlatRange, 0)
		for _, r := range b.StyleRanges() {
			ranges = append(ranges, FlatRange{Style: string(r.Style), Start: r.Start, End: r.End})
		}
		flat.Blocks = append(flat.Blocks, FlatBlock{
			Key:               b.Key(),
			Type:              string(b.Type()),
			Text:              b.Text(),
			InlineStyleRanges: ranges,
		})
	}
	return flat
}

// Import rebuilds a snapshot. It rejects an empty block list and repeated
// keys; offsets and ranges are clamped and a selection naming a missing
// block becomes a caret at the first block.
func Import(flat Flat) (*Snapshot, error) {
	if len(flat.Blocks) == 0 {
		return nil, ErrEmptyDocument
	}
	seen := make(map[string]struct{}, len(flat.Blocks))
	blocks := make([]*document.Block, 0, len(flat.Blocks))
	for i, fb := range flat.Blocks {
		if fb.Key == "" {
			return nil, fmt.Errorf("block %d: empty key", i)
		}
		if _, dup := seen[fb.Key]; dup {
			return nil, fmt.Errorf("block %d: %w %q", i, ErrDuplicateKey, fb.Key)
		}
		seen[fb.Key] = struct{}{}

		ranges := make([]document.StyleRange, 0, len(fb.InlineStyleRanges))
		for _, r := range fb.InlineStyleRanges {
			ranges = append(ranges, document.StyleRange{Style: document.InlineStyle(r.Style), Start: r.Start, End: r.End})
		}
		blocks = append(blocks, document.NewBlock(fb.Key, document.BlockType(fb.Type), fb.Text, ranges...))
	}

	doc := document.New(blocks...)
	sel := selection.Selection{
		AnchorKey:    flat.Selection.AnchorKey,
		AnchorOffset: flat.Selection.AnchorOffset,
		FocusKey:     flat.Selection.FocusKey,
		FocusOffset:  flat.Selection.FocusOffset,
	}
	snap := New(doc, sel)
	if !snap.Valid() {
		logger.DebugTagf("snapshot", "Import: selection %v names a missing block, resetting", sel)
		snap = snap.Repair()
	}
	return snap, nil
}

// Encode writes the snapshot in the given format.
func Encode(w io.Writer, s *Snapshot, format Format) error {
	flat := s.Export()
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(flat); err != nil {
			return fmt.Errorf("encode json snapshot: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(flat); err != nil {
			return fmt.Errorf("encode yaml snapshot: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml snapshot: %w", err)
		}
	default:
		return fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
	return nil
}

// Decode reads a snapshot in the given format.
func Decode(r io.Reader, format Format) (*Snapshot, error) {
	var flat Flat
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&flat); err != nil {
			return nil, fmt.Errorf("decode json snapshot: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&flat); err != nil {
			return nil, fmt.Errorf("decode yaml snapshot: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
	return Import(flat)
}
