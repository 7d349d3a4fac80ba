package buffer

import "unicode"

// charClass groups characters for word navigation.
type charClass uint8

const (
	classSpace charClass = iota
	classWord
	classPunct
)

func classify(r rune) charClass {
	switch {
	case unicode.IsSpace(r):
		return classSpace
	case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r):
		return classWord
	default:
		return classPunct
	}
}

// NextWordBoundary returns the index of the first character after charIndex
// whose class differs from the character at charIndex. It returns Len at the
// end of the line.
func (l *Line) NextWordBoundary(charIndex int) int {
	i := clampInt(charIndex, 0, len(l.text))
	if i == len(l.text) {
		return i
	}
	c := classify(l.text[i])
	for i++; i < len(l.text) && classify(l.text[i]) == c; i++ {
	}
	return i
}

// PreviousWordBoundary returns the start of the run of same-class characters
// that ends just before charIndex. It returns 0 at the start of the line.
func (l *Line) PreviousWordBoundary(charIndex int) int {
	i := clampInt(charIndex, 0, len(l.text))
	if i == 0 {
		return 0
	}
	i--
	c := classify(l.text[i])
	for i > 0 && classify(l.text[i-1]) == c {
		i--
	}
	return i
}

// Words returns the index of every whitespace-separated word start followed
// by Len.
func (l *Line) Words() []int {
	var out []int
	inWord := false
	for i, r := range l.text {
		space := classify(r) == classSpace
		if !space && !inWord {
			out = append(out, i)
		}
		inWord = !space
	}
	return append(out, len(l.text))
}
