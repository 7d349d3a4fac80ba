package buffer

import (
	"sort"
	"strings"
	"unicode"
)

// DefaultTabWidth is the number of cells a tab occupies when no width is set.
const DefaultTabWidth = 4

// Line is one logical line of a document: its characters, without a line
// terminator, and the breakpoint table describing their display width.
type Line struct {
	text     []rune
	bps      *Breakpoints
	tabWidth int
	modified bool
}

// NewLine creates a line from text. A tabWidth below 1 selects DefaultTabWidth.
func NewLine(text string, tabWidth int) *Line {
	if tabWidth < 1 {
		tabWidth = DefaultTabWidth
	}
	runes := []rune(text)
	return &Line{
		text:     runes,
		bps:      NewBreakpoints(runes, tabWidth),
		tabWidth: tabWidth,
	}
}

// Len returns the number of characters in the line.
func (l *Line) Len() int { return len(l.text) }

// IsEmpty reports whether the line has no characters.
func (l *Line) IsEmpty() bool { return len(l.text) == 0 }

func (l *Line) String() string { return string(l.text) }

// Modified reports whether the line changed since it was created or since
// ClearModified was last called.
func (l *Line) Modified() bool { return l.modified }

// ClearModified resets the modified flag.
func (l *Line) ClearModified() { l.modified = false }

// TabWidth returns the number of cells a tab occupies on this line.
func (l *Line) TabWidth() int { return l.tabWidth }

// Breakpoints returns a copy of the line's breakpoint table.
func (l *Line) Breakpoints() []Breakpoint { return l.bps.Entries() }

// DisplayWidth returns the number of cells the whole line occupies.
func (l *Line) DisplayWidth() int {
	return len(l.text) + l.bps.ExtraWidthUpTo(len(l.text), Inclusive)
}

// Column returns the display column at which the character at charIndex
// starts. charIndex is clamped to [0, Len].
func (l *Line) Column(charIndex int) int {
	charIndex = clampInt(charIndex, 0, len(l.text))
	return charIndex + l.bps.ExtraWidthUpTo(charIndex, Exclusive)
}

// CharWidth returns the cell width of the character at charIndex, or 0 past
// the end of the line.
func (l *Line) CharWidth(charIndex int) int {
	if charIndex < 0 || charIndex >= len(l.text) {
		return 0
	}
	return cellWidth(l.text[charIndex], l.tabWidth)
}

// CharIndexAt returns the index of the character whose cell covers column.
// A column inside a wide cell snaps back to that character; a column past the
// end returns Len.
func (l *Line) CharIndexAt(column int) int {
	if column <= 0 {
		return 0
	}
	if column >= l.DisplayWidth() {
		return len(l.text)
	}
	// First index whose start column lies beyond column, then step back.
	i := sort.Search(len(l.text)+1, func(i int) bool {
		return l.Column(i) > column
	})
	return i - 1
}

// Window returns exactly count display columns of the line starting at
// column start. A multi-cell character cut by either edge of the window is
// replaced by blanks for the cells that fall inside it, and tabs are expanded
// to spaces. Columns past the end of the line are blank.
func (l *Line) Window(start, count int) string {
	if count <= 0 {
		return ""
	}
	if start < 0 {
		start = 0
	}
	end := start + count

	var sb strings.Builder
	sb.Grow(count)
	pos := start
	emitted := false

	i := l.CharIndexAt(start)
	col := l.Column(i)
	for ; i < len(l.text) && pos < end; i++ {
		r := l.text[i]
		w := cellWidth(r, l.tabWidth)
		if w == 0 {
			// Combining marks ride on an emitted base; control characters never print.
			if emitted && col >= start && !unicode.IsControl(r) {
				sb.WriteRune(r)
			}
			continue
		}
		switch {
		case col < start:
			// Cut by the left edge.
			pos = min(col+w, end)
			sb.WriteString(strings.Repeat(" ", pos-start))
			emitted = false
		case col+w > end:
			// Cut by the right edge.
			sb.WriteString(strings.Repeat(" ", end-pos))
			pos = end
			emitted = false
		case r == '\t':
			sb.WriteString(strings.Repeat(" ", w))
			pos += w
			emitted = false
		default:
			sb.WriteRune(r)
			pos += w
			emitted = true
		}
		col += w
	}
	// Marks trailing the last glyph that fits still belong to it.
	for ; emitted && i < len(l.text); i++ {
		r := l.text[i]
		if cellWidth(r, l.tabWidth) != 0 || unicode.IsControl(r) {
			break
		}
		sb.WriteRune(r)
	}
	if pos < end {
		sb.WriteString(strings.Repeat(" ", end-pos))
	}
	return sb.String()
}

// Insert inserts text before the character at charIndex.
func (l *Line) Insert(charIndex int, text string) error {
	if charIndex < 0 || charIndex > len(l.text) {
		return outOfRange("insert", "index %d not in [0, %d]", charIndex, len(l.text))
	}
	if strings.ContainsAny(text, "\r\n") {
		return invalidRange("insert", "line text cannot contain a line terminator")
	}
	if text == "" {
		return nil
	}
	runes := []rune(text)
	l.text = append(l.text[:charIndex], append(runes, l.text[charIndex:]...)...)
	l.bps.insertRunes(charIndex, runes, l.tabWidth)
	l.modified = true
	return nil
}

// Remove deletes the characters covered by s.
func (l *Line) Remove(s Span) error {
	start, end, err := s.bounds(len(l.text))
	if err != nil {
		return err
	}
	if start == end {
		return nil
	}
	l.text = append(l.text[:start], l.text[end:]...)
	l.bps.removeRange(start, end)
	l.modified = true
	return nil
}

// SplitOff truncates the line at charIndex and returns the removed tail as a
// new line.
func (l *Line) SplitOff(charIndex int) (*Line, error) {
	if charIndex < 0 || charIndex > len(l.text) {
		return nil, outOfRange("split", "index %d not in [0, %d]", charIndex, len(l.text))
	}
	tail := make([]rune, len(l.text)-charIndex)
	copy(tail, l.text[charIndex:])
	right := &Line{
		text:     tail,
		bps:      NewBreakpoints(tail, l.tabWidth),
		tabWidth: l.tabWidth,
		modified: true,
	}
	if charIndex < len(l.text) {
		l.bps.removeRange(charIndex, len(l.text))
		l.text = l.text[:charIndex]
	}
	l.modified = true
	return right, nil
}

// Append joins other onto the end of the line.
func (l *Line) Append(other *Line) {
	if other == nil || len(other.text) == 0 {
		return
	}
	at := len(l.text)
	l.text = append(l.text, other.text...)
	l.bps.insertRunes(at, other.text, l.tabWidth)
	l.modified = true
}

// setTabWidth changes the tab width and rebuilds the table.
func (l *Line) setTabWidth(tabWidth int) {
	if tabWidth < 1 || tabWidth == l.tabWidth {
		return
	}
	l.tabWidth = tabWidth
	l.bps.Rebuild(l.text, tabWidth)
}

// consistent reports whether the incrementally maintained table matches a
// full rebuild.
func (l *Line) consistent() bool {
	return l.bps.equal(NewBreakpoints(l.text, l.tabWidth))
}

// Span is a character range within a line. Exclusive spans cover
// [Start, End); Inclusive spans cover [Start, End].
type Span struct {
	Start int
	End   int
	Bound Boundary
}

// ExclusiveSpan returns the span [start, end).
func ExclusiveSpan(start, end int) Span {
	return Span{Start: start, End: end, Bound: Exclusive}
}

// InclusiveSpan returns the span [start, end].
func InclusiveSpan(start, end int) Span {
	return Span{Start: start, End: end, Bound: Inclusive}
}

// bounds validates the span against a line of length n and returns it as a
// half-open range.
func (s Span) bounds(n int) (int, int, error) {
	end := s.End
	switch s.Bound {
	case Exclusive:
	case Inclusive:
		end++
	default:
		return 0, 0, invalidRange("remove", "span has no inclusive or exclusive bound")
	}
	if s.Start < 0 || end < s.Start || (s.Bound == Inclusive && s.End < s.Start) {
		return 0, 0, invalidRange("remove", "malformed %s span %d..%d", s.Bound, s.Start, s.End)
	}
	if end > n {
		return 0, 0, outOfRange("remove", "%s span %d..%d exceeds line length %d", s.Bound, s.Start, s.End, n)
	}
	return s.Start, end, nil
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
