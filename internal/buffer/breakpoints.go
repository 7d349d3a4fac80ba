package buffer

import "sort"

// Boundary selects whether a lookup or a span includes the position it names.
type Boundary uint8

const (
	// Exclusive leaves the named position out.
	Exclusive Boundary = iota + 1
	// Inclusive takes the named position in.
	Inclusive
)

// String returns the boundary name.
func (b Boundary) String() string {
	switch b {
	case Exclusive:
		return "exclusive"
	case Inclusive:
		return "inclusive"
	default:
		return "unknown"
	}
}

// Breakpoint records that characters [0..Index] of a line occupy Extra more
// cells than their count.
type Breakpoint struct {
	Index int
	Extra int
}

// Breakpoints is the per-line table of cumulative extra display width,
// ordered by strictly increasing Index. Entries exist only at characters whose
// cell width is not 1, so an empty table means the line is all single-width.
type Breakpoints struct {
	entries []Breakpoint
}

// NewBreakpoints builds a table for text.
func NewBreakpoints(text []rune, tabWidth int) *Breakpoints {
	bp := &Breakpoints{}
	bp.Rebuild(text, tabWidth)
	return bp
}

// Len returns the number of entries.
func (bp *Breakpoints) Len() int { return len(bp.entries) }

// Entries returns a copy of the table.
func (bp *Breakpoints) Entries() []Breakpoint {
	out := make([]Breakpoint, len(bp.entries))
	copy(out, bp.entries)
	return out
}

// Total returns the extra width of the whole line.
func (bp *Breakpoints) Total() int {
	if len(bp.entries) == 0 {
		return 0
	}
	return bp.entries[len(bp.entries)-1].Extra
}

// ExtraWidthUpTo returns the cumulative extra width recorded by the entry with
// the largest Index that is <= index (Inclusive) or < index (Exclusive), or 0
// when there is none.
func (bp *Breakpoints) ExtraWidthUpTo(index int, b Boundary) int {
	i := bp.search(index, b)
	if i < 0 {
		return 0
	}
	return bp.entries[i].Extra
}

// search returns the position of the entry ExtraWidthUpTo reads, or -1.
func (bp *Breakpoints) search(index int, b Boundary) int {
	// n is the count of entries satisfying the boundary condition.
	n := sort.Search(len(bp.entries), func(i int) bool {
		if b == Exclusive {
			return bp.entries[i].Index >= index
		}
		return bp.entries[i].Index > index
	})
	return n - 1
}

// Add inserts an entry or overwrites the value at an existing index. Entries
// after index are left as they are; they are recomputed by the next Rebuild.
func (bp *Breakpoints) Add(index, extra int) {
	i := sort.Search(len(bp.entries), func(i int) bool {
		return bp.entries[i].Index >= index
	})
	if i < len(bp.entries) && bp.entries[i].Index == index {
		bp.entries[i].Extra = extra
		return
	}
	bp.entries = append(bp.entries, Breakpoint{})
	copy(bp.entries[i+1:], bp.entries[i:])
	bp.entries[i] = Breakpoint{Index: index, Extra: extra}
}

// Rebuild recomputes the table from scratch.
func (bp *Breakpoints) Rebuild(text []rune, tabWidth int) {
	bp.entries = bp.entries[:0]
	bp.entries = appendBreakpoints(bp.entries, text, 0, 0, tabWidth)
}

// appendBreakpoints scans text as if it started at character offset with a
// running extra width of base, appending an entry for every cell wider or
// narrower than one column.
func appendBreakpoints(dst []Breakpoint, text []rune, offset, base, tabWidth int) []Breakpoint {
	extra := base
	for i, r := range text {
		if w := cellWidth(r, tabWidth); w != 1 {
			extra += w - 1
			dst = append(dst, Breakpoint{Index: offset + i, Extra: extra})
		}
	}
	return dst
}

// insertRunes patches the table for runes inserted at character index at.
// Entries before at are untouched, entries after it shift right by
// len(runes) and absorb the extra width the insertion adds.
func (bp *Breakpoints) insertRunes(at int, runes []rune, tabWidth int) {
	if len(runes) == 0 {
		return
	}
	split := bp.search(at, Exclusive) + 1
	base := 0
	if split > 0 {
		base = bp.entries[split-1].Extra
	}

	added := appendBreakpoints(nil, runes, at, base, tabWidth)
	delta := 0
	if len(added) > 0 {
		delta = added[len(added)-1].Extra - base
	}

	tail := bp.entries[split:]
	out := make([]Breakpoint, 0, len(bp.entries)+len(added))
	out = append(out, bp.entries[:split]...)
	out = append(out, added...)
	for _, e := range tail {
		out = append(out, Breakpoint{Index: e.Index + len(runes), Extra: e.Extra + delta})
	}
	bp.entries = out
}

// removeRange patches the table for the removal of characters [start, end).
func (bp *Breakpoints) removeRange(start, end int) {
	if end <= start {
		return
	}
	lo := bp.search(start, Exclusive) + 1
	hi := bp.search(end, Exclusive) + 1

	before := 0
	if lo > 0 {
		before = bp.entries[lo-1].Extra
	}
	removed := 0
	if hi > lo {
		removed = bp.entries[hi-1].Extra - before
	}

	n := end - start
	kept := bp.entries[:lo]
	for _, e := range bp.entries[hi:] {
		kept = append(kept, Breakpoint{Index: e.Index - n, Extra: e.Extra - removed})
	}
	bp.entries = kept
}

// equal reports whether two tables hold the same entries.
func (bp *Breakpoints) equal(other *Breakpoints) bool {
	if len(bp.entries) != len(other.entries) {
		return false
	}
	for i := range bp.entries {
		if bp.entries[i] != other.entries[i] {
			return false
		}
	}
	return true
}
