// Package document holds the immutable block-structured rich-text model.
package document

import "unicode/utf8"

// BlockType names the kind of a block. The set is open: any string is a
// valid type and unknown names are carried through untouched.
type BlockType string

// Built-in block types.
const (
	Paragraph         BlockType = "paragraph"
	HeaderOne         BlockType = "header-one"
	UnorderedListItem BlockType = "unordered-list-item"
	CodeBlock         BlockType = "code-block"
	Image             BlockType = "image"
)

// BlockKind is the variant a BlockType resolves to.
type BlockKind int

const (
	KindUnknown BlockKind = iota // renderer-supplied or future type, stored opaquely
	KindParagraph
	KindHeaderOne
	KindUnorderedListItem
	KindCodeBlock
	KindImage
)

var knownKinds = map[BlockType]BlockKind{
	Paragraph:         KindParagraph,
	HeaderOne:         KindHeaderOne,
	UnorderedListItem: KindUnorderedListItem,
	CodeBlock:         KindCodeBlock,
	Image:             KindImage,
}

// Kind resolves the type to its variant, KindUnknown for unrecognised names.
func (t BlockType) Kind() BlockKind {
	if k, ok := knownKinds[t]; ok {
		return k
	}
	return KindUnknown
}

// IsKnown reports whether the type is one of the built-in types.
func (t BlockType) IsKnown() bool {
	return t.Kind() != KindUnknown
}

func (t BlockType) String() string { return string(t) }

// OrDefault returns Paragraph for the empty type.
func (t BlockType) OrDefault() BlockType {
	if t == "" {
		return Paragraph
	}
	return t
}

// Block is one paragraph-level unit of content. Blocks are never mutated
// after construction; the With* methods return modified copies.
type Block struct {
	key    string
	typ    BlockType
	text   string
	length int // rune count of text
	styles []StyleRange
}

// NewBlock builds a block. Style ranges are clamped to the text and normalised.
func NewBlock(key string, typ BlockType, text string, ranges ...StyleRange) *Block {
	n := utf8.RuneCountInString(text)
	return &Block{
		key:    key,
		typ:    typ.OrDefault(),
		text:   text,
		length: n,
		styles: NormalizeRanges(ranges, n),
	}
}

// NewBlockFromChars builds a block from text and one StyleSet per rune.
func NewBlockFromChars(key string, typ BlockType, text string, chars []StyleSet) *Block {
	n := utf8.RuneCountInString(text)
	return &Block{
		key:    key,
		typ:    typ.OrDefault(),
		text:   text,
		length: n,
		styles: rangesFromChars(chars, n),
	}
}

func (b *Block) Key() string     { return b.key }
func (b *Block) Type() BlockType { return b.typ }
func (b *Block) Text() string    { return b.text }

// Len is the text length in runes; offsets are rune offsets.
func (b *Block) Len() int { return b.length }

// IsEmpty reports whether the block has no text.
func (b *Block) IsEmpty() bool { return b.length == 0 }

// StyleRanges returns a copy of the normalised inline style ranges.
func (b *Block) StyleRanges() []StyleRange {
	out := make([]StyleRange, len(b.styles))
	copy(out, b.styles)
	return out
}

// ClampOffset limits offset to [0, Len()].
func (b *Block) ClampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > b.length {
		return b.length
	}
	return offset
}

// WithType returns a copy of the block with a different type.
func (b *Block) WithType(t BlockType) *Block {
	if b.typ == t.OrDefault() {
		return b
	}
	next := *b
	next.typ = t.OrDefault()
	return &next
}

// WithKey returns a copy of the block with a different key.
func (b *Block) WithKey(key string) *Block {
	next := *b
	next.key = key
	return &next
}

// CharStyles expands the style ranges into one StyleSet per rune.
func (b *Block) CharStyles() []StyleSet {
	chars := make([]StyleSet, b.length)
	for _, r := range b.styles {
		for i := r.Start; i < r.End; i++ {
			chars[i] = chars[i].With(r.Style)
		}
	}
	return chars
}

// StyleAt returns the styles of the rune at offset, nil outside the text.
func (b *Block) StyleAt(offset int) StyleSet {
	if offset < 0 || offset >= b.length {
		return nil
	}
	var set StyleSet
	for _, r := range b.styles {
		if offset >= r.Start && offset < r.End {
			set = set.With(r.Style)
		}
	}
	return set
}

// Runes returns the text as runes.
func (b *Block) Runes() []rune {
	return []rune(b.text)
}
