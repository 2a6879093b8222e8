package document

import "sort"

// InlineStyle is a character-level formatting attribute. Like BlockType it
// is open; the constants below are what the toolbars and key commands use.
type InlineStyle string

const (
	Bold      InlineStyle = "BOLD"
	Italic    InlineStyle = "ITALIC"
	Underline InlineStyle = "UNDERLINE"
	Code      InlineStyle = "CODE"
)

// StyleRange applies Style to the runes in [Start, End).
type StyleRange struct {
	Style InlineStyle
	Start int
	End   int
}

// StyleSet is a sorted, duplicate-free set of styles. The zero value is empty.
// Methods never modify the receiver.
type StyleSet []InlineStyle

// Has reports whether s is in the set.
func (set StyleSet) Has(s InlineStyle) bool {
	i := sort.Search(len(set), func(i int) bool { return set[i] >= s })
	return i < len(set) && set[i] == s
}

// With returns the set plus s.
func (set StyleSet) With(s InlineStyle) StyleSet {
	i := sort.Search(len(set), func(i int) bool { return set[i] >= s })
	if i < len(set) && set[i] == s {
		return set
	}
	out := make(StyleSet, 0, len(set)+1)
	out = append(out, set[:i]...)
	out = append(out, s)
	return append(out, set[i:]...)
}

// Without returns the set minus s.
func (set StyleSet) Without(s InlineStyle) StyleSet {
	i := sort.Search(len(set), func(i int) bool { return set[i] >= s })
	if i >= len(set) || set[i] != s {
		return set
	}
	if len(set) == 1 {
		return nil
	}
	out := make(StyleSet, 0, len(set)-1)
	out = append(out, set[:i]...)
	return append(out, set[i+1:]...)
}

// Intersect returns the styles present in both sets.
func (set StyleSet) Intersect(other StyleSet) StyleSet {
	var out StyleSet
	for _, s := range set {
		if other.Has(s) {
			out = append(out, s)
		}
	}
	return out
}

// Equal reports whether both sets hold the same styles.
func (set StyleSet) Equal(other StyleSet) bool {
	if len(set) != len(other) {
		return false
	}
	for i := range set {
		if set[i] != other[i] {
			return false
		}
	}
	return true
}

// NormalizeRanges clamps ranges to [0, length], drops empty ones, merges
// overlapping or touching ranges of the same style and sorts by style then start.
func NormalizeRanges(ranges []StyleRange, length int) []StyleRange {
	if len(ranges) == 0 {
		return nil
	}
	clean := make([]StyleRange, 0, len(ranges))
	for _, r := range ranges {
		if r.Start < 0 {
			r.Start = 0
		}
		if r.End > length {
			r.End = length
		}
		if r.Style == "" || r.Start >= r.End {
			continue
		}
		clean = append(clean, r)
	}
	sort.Slice(clean, func(i, j int) bool {
		if clean[i].Style != clean[j].Style {
			return clean[i].Style < clean[j].Style
		}
		return clean[i].Start < clean[j].Start
	})

	var out []StyleRange
	for _, r := range clean {
		if n := len(out); n > 0 && out[n-1].Style == r.Style && r.Start <= out[n-1].End {
			if r.End > out[n-1].End {
				out[n-1].End = r.End
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

// rangesFromChars collapses per-rune style sets back into ranges.
func rangesFromChars(chars []StyleSet, length int) []StyleRange {
	open := map[InlineStyle]int{}
	var out []StyleRange
	closeMissing := func(at int, keep StyleSet) {
		for s, start := range open {
			if !keep.Has(s) {
				out = append(out, StyleRange{Style: s, Start: start, End: at})
				delete(open, s)
			}
		}
	}
	for i := 0; i < length && i < len(chars); i++ {
		closeMissing(i, chars[i])
		for _, s := range chars[i] {
			if _, ok := open[s]; !ok {
				open[s] = i
			}
		}
	}
	end := length
	if len(chars) < end {
		end = len(chars)
	}
	closeMissing(end, nil)
	return NormalizeRanges(out, length)
}
