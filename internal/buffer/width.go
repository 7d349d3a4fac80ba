package buffer

import "github.com/mattn/go-runewidth"

// widthCondition pins ambiguous-width characters to a single cell so the
// result does not depend on the host locale.
var widthCondition = &runewidth.Condition{EastAsianWidth: false}

// RuneWidth returns the number of terminal cells r occupies: 0, 1 or 2.
// Control characters, including tab, are zero width.
func RuneWidth(r rune) int {
	w := widthCondition.RuneWidth(r)
	switch {
	case w < 0:
		return 0
	case w > 2:
		return 2
	}
	return w
}

// StringWidth sums RuneWidth over s.
func StringWidth(s string) int {
	n := 0
	for _, r := range s {
		n += RuneWidth(r)
	}
	return n
}

// cellWidth is the width of r inside a Line, where a tab expands to tabWidth
// cells and everything else follows RuneWidth.
func cellWidth(r rune, tabWidth int) int {
	if r == '\t' {
		return tabWidth
	}
	return RuneWidth(r)
}
