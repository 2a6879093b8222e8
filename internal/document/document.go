package document

import (
	"strings"

	"github.com/google/uuid"
)

// Document is an ordered, non-empty sequence of blocks with unique keys.
// Edits return a new Document; untouched *Block values are shared.
type Document struct {
	blocks []*Block
	index  map[string]int
}

// keyLength is how many characters of a UUID form a block key.
const keyLength = 8

// NewKey returns a random block key. Uniqueness within a document is
// enforced by FreshKey.
func NewKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:keyLength]
}

// New builds a document from blocks in display order. An empty input yields
// a single empty paragraph. Empty or repeated keys are replaced with fresh ones.
func New(blocks ...*Block) *Document {
	d := &Document{
		blocks: make([]*Block, 0, len(blocks)),
		index:  make(map[string]int, len(blocks)),
	}
	for _, b := range blocks {
		if b == nil {
			continue
		}
		if _, dup := d.index[b.key]; dup || b.key == "" {
			b = b.WithKey(d.FreshKey())
		}
		d.index[b.key] = len(d.blocks)
		d.blocks = append(d.blocks, b)
	}
	if len(d.blocks) == 0 {
		b := NewBlock(d.FreshKey(), Paragraph, "")
		d.index[b.key] = 0
		d.blocks = append(d.blocks, b)
	}
	return d
}

// Empty returns a document holding one empty paragraph.
func Empty() *Document {
	return New()
}

// fromSlice wraps an already-validated slice, rebuilding the index.
func fromSlice(blocks []*Block) *Document {
	d := &Document{blocks: blocks, index: make(map[string]int, len(blocks))}
	for i, b := range blocks {
		d.index[b.key] = i
	}
	return d
}

// FreshKey returns a key that no block in the document uses.
func (d *Document) FreshKey() string {
	for {
		key := NewKey()
		if _, taken := d.index[key]; !taken {
			return key
		}
	}
}

// Len is the number of blocks, always at least one.
func (d *Document) Len() int { return len(d.blocks) }

// Blocks returns the blocks in display order. The slice is a copy.
func (d *Document) Blocks() []*Block {
	out := make([]*Block, len(d.blocks))
	copy(out, d.blocks)
	return out
}

// Keys returns the block keys in display order.
func (d *Document) Keys() []string {
	keys := make([]string, len(d.blocks))
	for i, b := range d.blocks {
		keys[i] = b.key
	}
	return keys
}

// At returns the block at position i.
func (d *Document) At(i int) *Block { return d.blocks[i] }

// Block looks up a block by key.
func (d *Document) Block(key string) (*Block, bool) {
	i, ok := d.index[key]
	if !ok {
		return nil, false
	}
	return d.blocks[i], true
}

// Has reports whether a block with key exists.
func (d *Document) Has(key string) bool {
	_, ok := d.index[key]
	return ok
}

// Index returns the display position of key, or -1.
func (d *Document) Index(key string) int {
	i, ok := d.index[key]
	if !ok {
		return -1
	}
	return i
}

func (d *Document) First() *Block { return d.blocks[0] }
func (d *Document) Last() *Block  { return d.blocks[len(d.blocks)-1] }

// Before returns the block preceding key.
func (d *Document) Before(key string) (*Block, bool) {
	i := d.Index(key)
	if i <= 0 {
		return nil, false
	}
	return d.blocks[i-1], true
}

// After returns the block following key.
func (d *Document) After(key string) (*Block, bool) {
	i := d.Index(key)
	if i < 0 || i+1 >= len(d.blocks) {
		return nil, false
	}
	return d.blocks[i+1], true
}

// Between returns the blocks from fromKey to toKey inclusive, in display
// order regardless of argument order. Nil if either key is missing.
func (d *Document) Between(fromKey, toKey string) []*Block {
	i, j := d.Index(fromKey), d.Index(toKey)
	if i < 0 || j < 0 {
		return nil
	}
	if i > j {
		i, j = j, i
	}
	out := make([]*Block, j-i+1)
	copy(out, d.blocks[i:j+1])
	return out
}

// Replace swaps in blocks that share keys with existing ones. Blocks with
// unknown keys are ignored. Returns d itself when nothing changed.
func (d *Document) Replace(blocks ...*Block) *Document {
	var next []*Block
	for _, b := range blocks {
		i, ok := d.index[b.key]
		if !ok || d.blocks[i] == b {
			continue
		}
		if next == nil {
			next = make([]*Block, len(d.blocks))
			copy(next, d.blocks)
		}
		next[i] = b
	}
	if next == nil {
		return d
	}
	return &Document{blocks: next, index: d.index}
}

// InsertAfter places b immediately after the block with key. A key already
// used by the document is replaced with a fresh one. Returns d if key is missing.
func (d *Document) InsertAfter(key string, b *Block) *Document {
	i, ok := d.index[key]
	if !ok {
		return d
	}
	if d.Has(b.key) || b.key == "" {
		b = b.WithKey(d.FreshKey())
	}
	next := make([]*Block, 0, len(d.blocks)+1)
	next = append(next, d.blocks[:i+1]...)
	next = append(next, b)
	next = append(next, d.blocks[i+1:]...)
	return fromSlice(next)
}

// Splice replaces the blocks from fromKey to toKey inclusive with
// replacement. The result keeps at least one block. Returns d if either key
// is missing.
func (d *Document) Splice(fromKey, toKey string, replacement ...*Block) *Document {
	i, j := d.Index(fromKey), d.Index(toKey)
	if i < 0 || j < 0 {
		return d
	}
	if i > j {
		i, j = j, i
	}
	next := make([]*Block, 0, len(d.blocks)-(j-i+1)+len(replacement))
	next = append(next, d.blocks[:i]...)
	next = append(next, replacement...)
	next = append(next, d.blocks[j+1:]...)
	if len(next) == 0 {
		return Empty()
	}
	return New(next...)
}

// PlainText joins block texts with newlines.
func (d *Document) PlainText() string {
	var sb strings.Builder
	for i, b := range d.blocks {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(b.text)
	}
	return sb.String()
}
