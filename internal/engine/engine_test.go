package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bethropolis/blocks/internal/document"
	"github.com/bethropolis/blocks/internal/selection"
	"github.com/bethropolis/blocks/internal/snapshot"
)

type rng = document.StyleRange

func pt(key string, off int) selection.Point { return selection.Point{Key: key, Offset: off} }

func span(anchor, focus selection.Point) selection.Selection { return selection.Between(anchor, focus) }

func snap(sel selection.Selection, blocks ...*document.Block) *snapshot.Snapshot {
	return snapshot.New(document.New(blocks...), sel)
}

func para(key, text string, ranges ...rng) *document.Block {
	return document.NewBlock(key, document.Paragraph, text, ranges...)
}

func blockRanges(t *testing.T, s *snapshot.Snapshot, key string) []rng {
	t.Helper()
	b, ok := s.Document().Block(key)
	if !ok {
		t.Fatalf("block %q missing", key)
	}
	return b.StyleRanges()
}

func blockTypes(s *snapshot.Snapshot) []document.BlockType {
	var out []document.BlockType
	for _, b := range s.Document().Blocks() {
		out = append(out, b.Type())
	}
	return out
}

// assertClamped checks that every selection end lies inside its block.
func assertClamped(t *testing.T, s *snapshot.Snapshot) {
	t.Helper()
	sel := s.Selection()
	for _, p := range []selection.Point{sel.Anchor(), sel.Focus()} {
		b, ok := s.Document().Block(p.Key)
		if !ok {
			t.Errorf("selection end %v names a missing block", p)
			continue
		}
		if p.Offset < 0 || p.Offset > b.Len() {
			t.Errorf("selection end %v outside [0, %d]", p, b.Len())
		}
	}
}

func TestToggleInlineStyle(t *testing.T) {
	testCases := []struct {
		name string
		in   *snapshot.Snapshot
		want map[string][]rng
	}{
		{
			name: "unstyled range turns on",
			in:   snap(span(pt("a", 1), pt("a", 4)), para("a", "hello")),
			want: map[string][]rng{"a": {{Style: document.Bold, Start: 1, End: 4}}},
		},
		{
			name: "fully styled range turns off",
			in:   snap(span(pt("a", 1), pt("a", 4)), para("a", "hello", rng{Style: document.Bold, Start: 0, End: 5})),
			want: map[string][]rng{"a": {{Style: document.Bold, Start: 0, End: 1}, {Style: document.Bold, Start: 4, End: 5}}},
		},
		{
			name: "partially styled range turns on everywhere",
			in:   snap(span(pt("a", 0), pt("a", 5)), para("a", "hello", rng{Style: document.Bold, Start: 1, End: 2})),
			want: map[string][]rng{"a": {{Style: document.Bold, Start: 0, End: 5}}},
		},
		{
			name: "backward range over several blocks",
			in: snap(span(pt("c", 2), pt("a", 3)),
				para("a", "hello"), para("b", "mid", rng{Style: document.Bold, Start: 0, End: 3}), para("c", "world")),
			want: map[string][]rng{
				"a": {{Style: document.Bold, Start: 3, End: 5}},
				"b": {{Style: document.Bold, Start: 0, End: 3}},
				"c": {{Style: document.Bold, Start: 0, End: 2}},
			},
		},
		{
			name: "other styles are kept",
			in:   snap(span(pt("a", 0), pt("a", 2)), para("a", "hello", rng{Style: document.Italic, Start: 0, End: 5})),
			want: map[string][]rng{"a": {{Style: document.Bold, Start: 0, End: 2}, {Style: document.Italic, Start: 0, End: 5}}},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ToggleInlineStyle(tc.in, document.Bold)
			for key, want := range tc.want {
				if diff := cmp.Diff(want, blockRanges(t, got, key)); diff != "" {
					t.Errorf("block %s ranges (-want +got):\n%s", key, diff)
				}
			}
			if got.Selection() != tc.in.Selection() {
				t.Errorf("selection changed from %v to %v", tc.in.Selection(), got.Selection())
			}
			assertClamped(t, got)
		})
	}
}

func TestToggleInlineStyleTwiceRestores(t *testing.T) {
	inputs := []*snapshot.Snapshot{
		snap(span(pt("a", 1), pt("a", 3)), para("a", "hello", rng{Style: document.Bold, Start: 1, End: 3})),
		snap(span(pt("a", 2), pt("b", 2)), para("a", "hello", rng{Style: document.Italic, Start: 0, End: 4}), para("b", "world")),
		snap(span(pt("b", 4), pt("a", 0)), para("a", "abc", rng{Style: document.Bold, Start: 0, End: 3}), para("b", "defgh", rng{Style: document.Bold, Start: 0, End: 4})),
	}
	for i, in := range inputs {
		twice := ToggleInlineStyle(ToggleInlineStyle(in, document.Bold), document.Bold)
		for _, b := range in.Document().Blocks() {
			if diff := cmp.Diff(b.StyleRanges(), blockRanges(t, twice, b.Key())); diff != "" {
				t.Errorf("input %d block %s not restored (-want +got):\n%s", i, b.Key(), diff)
			}
		}
	}
}

func TestToggleInlineStyleMixedRange(t *testing.T) {
	in := snap(span(pt("a", 0), pt("a", 5)), para("a", "hello", rng{Style: document.Bold, Start: 1, End: 3}))

	once := ToggleInlineStyle(in, document.Bold)
	want := []document.StyleRange{{Style: document.Bold, Start: 0, End: 5}}
	if diff := cmp.Diff(want, blockRanges(t, once, "a")); diff != "" {
		t.Errorf("first toggle (-want +got):\n%s", diff)
	}

	twice := ToggleInlineStyle(once, document.Bold)
	if got := blockRanges(t, twice, "a"); len(got) != 0 {
		t.Errorf("second toggle left %v; expected no ranges", got)
	}
}

func TestToggleInlineStyleUniform(t *testing.T) {
	in := snap(span(pt("a", 0), pt("a", 6)), para("a", "abcdef",
		rng{Style: document.Underline, Start: 0, End: 2}, rng{Style: document.Underline, Start: 4, End: 5}))
	got := ToggleInlineStyle(in, document.Underline)
	b, _ := got.Document().Block("a")
	for i := 0; i < b.Len(); i++ {
		if !b.StyleAt(i).Has(document.Underline) {
			t.Errorf("character %d not underlined after toggle", i)
		}
	}
}

func TestToggleInlineStyleNoOps(t *testing.T) {
	caret := snap(selection.Collapsed("a", 2), para("a", "hello"))
	if got := ToggleInlineStyle(caret, document.Bold); got != caret {
		t.Errorf("collapsed selection should return the same snapshot")
	}
	// From the end of one block to the start of the next covers nothing.
	empty := snap(span(pt("a", 5), pt("b", 0)), para("a", "hello"), para("b", "world"))
	if got := ToggleInlineStyle(empty, document.Bold); got != empty {
		t.Errorf("zero-character range should return the same snapshot")
	}
	stale := snap(span(pt("gone", 0), pt("a", 2)), para("a", "hello"))
	if got := ToggleInlineStyle(stale, document.Bold); got != stale {
		t.Errorf("selection on a missing block should return the same snapshot")
	}
}

func TestToggleDoesNotMutateInput(t *testing.T) {
	in := snap(span(pt("a", 0), pt("a", 3)), para("a", "hello"))
	_ = ToggleInlineStyle(in, document.Bold)
	_ = ToggleBlockType(in, document.HeaderOne)
	b := in.Document().First()
	if len(b.StyleRanges()) != 0 || b.Type() != document.Paragraph {
		t.Errorf("input snapshot was modified")
	}
}

func TestActiveInlineStyles(t *testing.T) {
	a := para("a", "hello", rng{Style: document.Bold, Start: 0, End: 3}, rng{Style: document.Italic, Start: 1, End: 5})
	testCases := []struct {
		name string
		sel  selection.Selection
		want document.StyleSet
	}{
		{"caret after bold italic", selection.Collapsed("a", 2), document.StyleSet{document.Bold, document.Italic}},
		{"caret at start", selection.Collapsed("a", 0), document.StyleSet{document.Bold}},
		{"range intersection", span(pt("a", 1), pt("a", 5)), document.StyleSet{document.Italic}},
		{"range all bold", span(pt("a", 0), pt("a", 3)), document.StyleSet{document.Bold}},
	}
	for _, tc := range testCases {
		got := ActiveInlineStyles(snap(tc.sel, a))
		if !got.Equal(tc.want) {
			t.Errorf("%s: ActiveInlineStyles is %v; expected %v", tc.name, got, tc.want)
		}
	}
}

func TestToggleBlockType(t *testing.T) {
	three := func(sel selection.Selection, types ...document.BlockType) *snapshot.Snapshot {
		return snap(sel,
			document.NewBlock("a", types[0], "one"),
			document.NewBlock("b", types[1], "two"),
			document.NewBlock("c", types[2], "three"))
	}
	p, h := document.Paragraph, document.HeaderOne
	testCases := []struct {
		name string
		in   *snapshot.Snapshot
		want []document.BlockType
	}{
		{"caret sets type", three(selection.Collapsed("b", 1), p, p, p), []document.BlockType{p, h, p}},
		{"range sets all", three(span(pt("a", 1), pt("b", 1)), p, h, p), []document.BlockType{h, h, p}},
		{"all same reverts", three(span(pt("b", 1), pt("a", 0)), h, h, p), []document.BlockType{p, p, p}},
		{"end at offset zero is excluded", three(span(pt("a", 1), pt("c", 0)), p, p, p), []document.BlockType{h, h, p}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ToggleBlockType(tc.in, h)
			var types []document.BlockType
			for _, b := range got.Document().Blocks() {
				types = append(types, b.Type())
			}
			if diff := cmp.Diff(tc.want, types); diff != "" {
				t.Errorf("types (-want +got):\n%s", diff)
			}
			if got.Document().PlainText() != tc.in.Document().PlainText() {
				t.Errorf("text changed")
			}
		})
	}

	unknown := ToggleBlockType(three(selection.Collapsed("a", 0), p, p, p), "pull-quote")
	if got := unknown.Document().First().Type(); got != "pull-quote" {
		t.Errorf("unknown type stored as %q", got)
	}
}

func TestInsertBlockAfterCurrentOnEmptyBlock(t *testing.T) {
	s := snapshot.NewEmpty()
	got := InsertBlockAfterCurrent(s, document.HeaderOne)
	if got.Document().Len() != 1 {
		t.Fatalf("got %d blocks; expected 1", got.Document().Len())
	}
	if typ := got.Document().First().Type(); typ != document.HeaderOne {
		t.Errorf("block type is %q; expected header-one", typ)
	}
}

func TestInsertBlockAfterCurrentTogglesOnlyEmptyAnchor(t *testing.T) {
	s := snap(span(pt("a", 0), pt("b", 2)), para("a", ""), para("b", "xyz"))
	got := InsertBlockAfterCurrent(s, document.HeaderOne)
	if diff := cmp.Diff([]document.BlockType{document.HeaderOne, document.Paragraph}, blockTypes(got)); diff != "" {
		t.Errorf("block types (-want +got):\n%s", diff)
	}
	if got.Selection() != s.Selection() {
		t.Errorf("selection changed from %v to %v", s.Selection(), got.Selection())
	}

	back := InsertBlockAfterCurrent(got, document.HeaderOne)
	if diff := cmp.Diff([]document.BlockType{document.Paragraph, document.Paragraph}, blockTypes(back)); diff != "" {
		t.Errorf("second toggle block types (-want +got):\n%s", diff)
	}
}

func TestInsertBlockAfterCurrentOnText(t *testing.T) {
	s := snap(selection.Collapsed("a", 5), para("a", "hello"), para("z", "tail"))
	got := InsertBlockAfterCurrent(s, document.HeaderOne)

	doc := got.Document()
	if doc.Len() != 3 {
		t.Fatalf("got %d blocks; expected 3", doc.Len())
	}
	first, added := doc.At(0), doc.At(1)
	if first.Key() != "a" || first.Text() != "hello" || first.Type() != document.Paragraph {
		t.Errorf("original block changed: %q %q %q", first.Key(), first.Text(), first.Type())
	}
	if added.Type() != document.HeaderOne || !added.IsEmpty() || added.Key() == "a" {
		t.Errorf("new block is %q %q %q; expected an empty header-one with a new key", added.Key(), added.Text(), added.Type())
	}
	if doc.At(2).Key() != "z" {
		t.Errorf("new block was not placed right after the current one")
	}
	if want := selection.Collapsed(added.Key(), 0); got.Selection() != want {
		t.Errorf("selection is %v; expected %v", got.Selection(), want)
	}
}

func TestInsertBlockKeysStayUnique(t *testing.T) {
	s := snap(selection.Collapsed("a", 1), para("a", "x"))
	for i := 0; i < 200; i++ {
		s = InsertBlockAfterCurrent(s, document.UnorderedListItem)
		s = InsertText(s, "item")
	}
	seen := map[string]bool{}
	for _, key := range s.Document().Keys() {
		if seen[key] {
			t.Fatalf("key %q used twice", key)
		}
		seen[key] = true
	}
	if len(seen) != 201 {
		t.Errorf("got %d blocks; expected 201", len(seen))
	}
}

func TestIndent(t *testing.T) {
	s := snap(selection.Collapsed("a", 2), para("a", "abcd"))
	got := Indent(s)
	b := got.Document().First()
	if b.Text() != "ab    cd" {
		t.Errorf("text is %q; expected %q", b.Text(), "ab    cd")
	}
	if want := selection.Collapsed("a", 6); got.Selection() != want {
		t.Errorf("selection is %v; expected %v", got.Selection(), want)
	}

	code := snap(span(pt("k", 1), pt("k", 3)), document.NewBlock("k", document.CodeBlock, "x := 1"))
	got = Indent(code)
	if txt := got.Document().First().Text(); txt != "x    = 1" {
		t.Errorf("code block indent gave %q", txt)
	}
	assertClamped(t, got)
}

func TestIndentShiftsStyles(t *testing.T) {
	s := snap(selection.Collapsed("a", 1), para("a", "abc", rng{Style: document.Bold, Start: 0, End: 3}))
	got := Indent(s)
	want := []rng{{Style: document.Bold, Start: 0, End: 1}, {Style: document.Bold, Start: 5, End: 7}}
	if diff := cmp.Diff(want, blockRanges(t, got, "a")); diff != "" {
		t.Errorf("ranges (-want +got):\n%s", diff)
	}
}

func TestIndentAcrossBlocks(t *testing.T) {
	s := snap(span(pt("b", 2), pt("a", 3)), para("a", "hello"), para("m", "mid"), document.NewBlock("b", document.HeaderOne, "world"))
	got := Indent(s)
	doc := got.Document()
	if doc.Len() != 1 || doc.First().Text() != "hel    rld" || doc.First().Key() != "a" {
		t.Errorf("merged block is %q (%d blocks)", doc.First().Text(), doc.Len())
	}
	if want := selection.Collapsed("a", 7); got.Selection() != want {
		t.Errorf("selection is %v; expected %v", got.Selection(), want)
	}
}

func TestDispatchKeyCommand(t *testing.T) {
	ranged := snap(span(pt("a", 0), pt("a", 5)), para("a", "hello"))
	testCases := []struct {
		cmd     Command
		handled bool
		style   document.InlineStyle
	}{
		{CommandBold, true, document.Bold},
		{CommandItalic, true, document.Italic},
		{CommandUnderline, true, document.Underline},
		{CommandCode, true, document.Code},
		{CommandUndo, false, ""},
		{CommandRedo, false, ""},
		{CommandSoftNewline, false, ""},
		{"made-up", false, ""},
	}
	for _, tc := range testCases {
		res := DispatchKeyCommand(ranged, tc.cmd)
		if res.Handled != tc.handled {
			t.Errorf("%q handled=%v; expected %v", tc.cmd, res.Handled, tc.handled)
			continue
		}
		if !tc.handled {
			if res.Snapshot != nil {
				t.Errorf("%q not handled but returned a snapshot", tc.cmd)
			}
			continue
		}
		if !res.Snapshot.Document().First().StyleAt(0).Has(tc.style) {
			t.Errorf("%q did not apply %s", tc.cmd, tc.style)
		}
	}
}

func TestBackspaceResetsBlockType(t *testing.T) {
	heading := snap(selection.Collapsed("a", 0), document.NewBlock("a", document.HeaderOne, "Title"))
	res := DispatchKeyCommand(heading, CommandBackspace)
	if !res.Handled || res.Snapshot.Document().First().Type() != document.Paragraph {
		t.Errorf("backspace at start of heading should reset it, got handled=%v", res.Handled)
	}

	mid := heading.WithSelection(selection.Collapsed("a", 2))
	if res := DispatchKeyCommand(mid, CommandBackspace); res.Handled {
		t.Errorf("backspace mid-block should be left to the caller")
	}
	plain := snap(selection.Collapsed("a", 0), para("a", "x"))
	if res := DispatchKeyCommand(plain, CommandBackspace); res.Handled {
		t.Errorf("backspace at start of a paragraph should be left to the caller")
	}
}

func TestTextEditing(t *testing.T) {
	s := snap(selection.Collapsed("a", 2), para("a", "abcd", rng{Style: document.Bold, Start: 0, End: 2}))

	typed := InsertText(s, "XY")
	if txt := typed.Document().First().Text(); txt != "abXYcd" {
		t.Errorf("InsertText gave %q", txt)
	}
	if diff := cmp.Diff([]rng{{Style: document.Bold, Start: 0, End: 4}}, blockRanges(t, typed, "a")); diff != "" {
		t.Errorf("typed text should inherit bold (-want +got):\n%s", diff)
	}

	split := SplitBlock(s)
	doc := split.Document()
	if doc.Len() != 2 || doc.At(0).Text() != "ab" || doc.At(1).Text() != "cd" {
		t.Fatalf("SplitBlock gave %q", doc.PlainText())
	}
	if want := selection.Collapsed(doc.At(1).Key(), 0); split.Selection() != want {
		t.Errorf("SplitBlock selection is %v; expected %v", split.Selection(), want)
	}

	merged := DeleteBackward(split)
	if merged.Document().Len() != 1 || merged.Document().First().Text() != "abcd" {
		t.Errorf("DeleteBackward at block start should merge, got %q", merged.Document().PlainText())
	}
	if want := selection.Collapsed("a", 2); merged.Selection() != want {
		t.Errorf("merge selection is %v; expected %v", merged.Selection(), want)
	}
	if diff := cmp.Diff([]rng{{Style: document.Bold, Start: 0, End: 2}}, blockRanges(t, merged, "a")); diff != "" {
		t.Errorf("merge lost styles (-want +got):\n%s", diff)
	}

	back := DeleteBackward(s)
	if txt := back.Document().First().Text(); txt != "acd" || back.Selection().AnchorOffset != 1 {
		t.Errorf("DeleteBackward gave %q at %v", txt, back.Selection())
	}
	fwd := DeleteForward(s)
	if txt := fwd.Document().First().Text(); txt != "abd" || fwd.Selection().AnchorOffset != 2 {
		t.Errorf("DeleteForward gave %q at %v", txt, fwd.Selection())
	}

	start := s.WithSelection(selection.Collapsed("a", 0))
	if DeleteBackward(start) != start {
		t.Errorf("DeleteBackward at document start should be a no-op")
	}
}

func TestPasteAndSelectedText(t *testing.T) {
	s := snap(selection.Collapsed("a", 1), para("a", "ab"))
	got := Paste(s, "x\ny\r\nz")
	if txt := got.Document().PlainText(); txt != "ax\ny\nzb" {
		t.Errorf("Paste gave %q", txt)
	}
	all := SelectAll(got)
	if txt := SelectedText(all); txt != "ax\ny\nzb" {
		t.Errorf("SelectedText gave %q", txt)
	}
	assertClamped(t, got)
}

func TestMove(t *testing.T) {
	s := snap(selection.Collapsed("a", 3), para("a", "abc"), para("b", "de"))
	testCases := []struct {
		name   string
		dir    Direction
		extend bool
		from   selection.Selection
		want   selection.Selection
	}{
		{"right wraps to next block", MoveRight, false, selection.Collapsed("a", 3), selection.Collapsed("b", 0)},
		{"left wraps to previous block", MoveLeft, false, selection.Collapsed("b", 0), selection.Collapsed("a", 3)},
		{"down clamps offset", MoveDown, false, selection.Collapsed("a", 3), selection.Collapsed("b", 2)},
		{"up at top goes to start", MoveUp, false, selection.Collapsed("a", 2), selection.Collapsed("a", 0)},
		{"extend keeps anchor", MoveRight, true, selection.Collapsed("a", 1), span(pt("a", 1), pt("a", 2))},
		{"left collapses range to start", MoveLeft, false, span(pt("b", 1), pt("a", 1)), selection.Collapsed("a", 1)},
		{"doc end", MoveDocEnd, false, selection.Collapsed("a", 0), selection.Collapsed("b", 2)},
	}
	for _, tc := range testCases {
		got := Move(s.WithSelection(tc.from), tc.dir, tc.extend)
		if got.Selection() != tc.want {
			t.Errorf("%s: selection is %v; expected %v", tc.name, got.Selection(), tc.want)
		}
		assertClamped(t, got)
	}
}
