package buffer

import (
	"fmt"
	"strings"
)

// LineEnding is the line terminator style of a file.
type LineEnding uint8

const (
	// Unix terminates lines with "\n".
	Unix LineEnding = iota
	// Dos terminates lines with "\r\n".
	Dos
)

// Terminator returns the byte sequence ending each line.
func (le LineEnding) Terminator() string {
	if le == Dos {
		return "\r\n"
	}
	return "\n"
}

func (le LineEnding) String() string {
	if le == Dos {
		return "CRLF"
	}
	return "LF"
}

// IndentStyle is the kind of whitespace used for indentation.
type IndentStyle uint8

const (
	Spaces IndentStyle = iota
	Tabs
)

// Indent describes one level of indentation.
type Indent struct {
	Style IndentStyle
	Width int // spaces per level; for Tabs, the display width of a tab
}

// Unit returns the text inserted for one level of indentation.
func (in Indent) Unit() string {
	if in.Style == Tabs {
		return "\t"
	}
	w := in.Width
	if w < 1 {
		w = DefaultTabWidth
	}
	return strings.Repeat(" ", w)
}

func (in Indent) String() string {
	if in.Style == Tabs {
		return "tabs"
	}
	return fmt.Sprintf("%d spaces", in.Width)
}

// Format is the file format captured at load time and reapplied on save.
type Format struct {
	LineEnding LineEnding
	Indent     Indent
}

// DetectLineEnding inspects the first terminator in text. Text without any
// terminator is treated as Unix.
func DetectLineEnding(text string) LineEnding {
	i := strings.IndexByte(text, '\n')
	if i > 0 && text[i-1] == '\r' {
		return Dos
	}
	return Unix
}

// SplitLines splits text into lines. Every "\n" ends a line; for Dos text a
// "\r" before it is part of the terminator, while Unix text keeps any "\r" in
// the line. A trailing terminator yields a final empty line, so joining the
// result with le's terminator reproduces text.
func SplitLines(text string, le LineEnding) []string {
	lines := make([]string, 0, strings.Count(text, "\n")+1)
	for {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			break
		}
		line := text[:i]
		if le == Dos {
			line = strings.TrimSuffix(line, "\r")
		}
		lines = append(lines, line)
		text = text[i+1:]
	}
	return append(lines, text)
}

// DetectIndent picks the dominant indentation style among lines. Tabs win
// when more lines start with a tab than with a space. For spaces the width is
// the most common change in indentation between consecutive indented lines.
// fallback is returned when no line is indented.
func DetectIndent(lines []string, fallback Indent) Indent {
	tabs, spaces := 0, 0
	steps := map[int]int{}
	prev := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		switch line[0] {
		case '\t':
			tabs++
			continue
		case ' ':
			spaces++
		}
		n := len(line) - len(strings.TrimLeft(line, " "))
		if d := n - prev; d != 0 {
			if d < 0 {
				d = -d
			}
			steps[d]++
		}
		prev = n
	}

	switch {
	case tabs == 0 && spaces == 0:
		return fallback
	case tabs > spaces:
		return Indent{Style: Tabs, Width: fallback.tabWidth()}
	}

	best, bestCount := 0, 0
	for step, count := range steps {
		if count > bestCount || (count == bestCount && step < best) {
			best, bestCount = step, count
		}
	}
	if best == 0 {
		best = fallback.tabWidth()
	}
	return Indent{Style: Spaces, Width: best}
}

func (in Indent) tabWidth() int {
	if in.Width < 1 {
		return DefaultTabWidth
	}
	return in.Width
}
