package buffer

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// InsertChar inserts r at the cursor and moves the cursor past it. A newline
// splits the line.
func (d *Document) InsertChar(r rune) error {
	if r == '\n' {
		return d.SplitLine()
	}
	return d.InsertText(string(r))
}

// InsertText inserts s at the cursor and moves the cursor to the end of the
// inserted text. Line terminators in s ("\n" or "\r\n") start new lines.
func (d *Document) InsertText(s string) error {
	if err := d.checkOpen("insert"); err != nil {
		return err
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	if strings.ContainsRune(s, '\r') {
		return invalidRange("insert", "bare carriage return in inserted text")
	}
	if s == "" {
		return nil
	}

	for i, part := range strings.Split(s, "\n") {
		if i > 0 {
			if err := d.splitAtCursor(); err != nil {
				return err
			}
		}
		if part == "" {
			continue
		}
		line := d.lines[d.cursor.Line]
		if err := line.Insert(d.cursor.Char, part); err != nil {
			return err
		}
		d.cursor.Char += utf8.RuneCountInString(part)
	}
	d.touch()
	d.place(d.cursor, true)
	return nil
}

// InsertIndent inserts one level of indentation in the document's style.
func (d *Document) InsertIndent() error {
	return d.InsertText(d.format.Indent.Unit())
}

// DeleteChar deletes the character before the cursor. At the start of a line
// the line is spliced onto the previous one.
func (d *Document) DeleteChar() error {
	if err := d.checkOpen("delete"); err != nil {
		return err
	}
	cur := d.cursor
	switch {
	case cur.Char > 0:
		if err := d.lines[cur.Line].Remove(ExclusiveSpan(cur.Char-1, cur.Char)); err != nil {
			return err
		}
		d.touch()
		d.place(Loc{Line: cur.Line, Char: cur.Char - 1}, true)
		return nil
	case cur.Line > 0:
		return d.SpliceLine(cur.Line - 1)
	default:
		return outOfRange("delete", "nothing before the start of the document")
	}
}

// DeleteForward deletes the character under the cursor. At the end of a line
// the next line is spliced onto it.
func (d *Document) DeleteForward() error {
	if err := d.checkOpen("delete forward"); err != nil {
		return err
	}
	cur := d.cursor
	line := d.lines[cur.Line]
	switch {
	case cur.Char < line.Len():
		if err := line.Remove(ExclusiveSpan(cur.Char, cur.Char+1)); err != nil {
			return err
		}
		d.touch()
		d.place(cur, true)
		return nil
	case cur.Line < len(d.lines)-1:
		return d.SpliceLine(cur.Line)
	default:
		return outOfRange("delete forward", "nothing after the end of the document")
	}
}

// InsertLine inserts a new line holding text before line index; index may
// equal LineCount to append. The cursor moves to the start of the new line.
func (d *Document) InsertLine(index int, text string) error {
	if err := d.checkOpen("insert line"); err != nil {
		return err
	}
	if index < 0 || index > len(d.lines) {
		return outOfRange("insert line", "index %d not in [0, %d]", index, len(d.lines))
	}
	if strings.ContainsAny(text, "\r\n") {
		return invalidRange("insert line", "line text cannot contain a line terminator")
	}
	l := NewLine(text, d.tabWidth)
	l.modified = true
	d.lines = slices.Insert(d.lines, index, l)
	d.touch()
	d.place(Loc{Line: index}, true)
	return nil
}

// RemoveLine removes line index. The last remaining line is cleared rather
// than removed. The cursor moves to the line above the removed one.
func (d *Document) RemoveLine(index int) error {
	if err := d.checkOpen("remove line"); err != nil {
		return err
	}
	if index < 0 || index >= len(d.lines) {
		return outOfRange("remove line", "index %d not in [0, %d)", index, len(d.lines))
	}
	if len(d.lines) == 1 {
		l := NewLine("", d.tabWidth)
		l.modified = true
		d.lines[0] = l
	} else {
		d.lines = slices.Delete(d.lines, index, index+1)
	}
	d.touch()

	target := max(index-1, 0)
	d.place(Loc{Line: target, Char: d.lines[target].CharIndexAt(d.desiredCol)}, false)
	return nil
}

// SpliceLine joins line index+1 onto the end of line index. The cursor moves
// to the join point.
func (d *Document) SpliceLine(index int) error {
	if err := d.checkOpen("splice line"); err != nil {
		return err
	}
	if index < 0 || index >= len(d.lines)-1 {
		return outOfRange("splice line", "index %d has no following line", index)
	}
	upper := d.lines[index]
	join := upper.Len()
	upper.Append(d.lines[index+1])
	d.lines = slices.Delete(d.lines, index+1, index+2)
	d.touch()
	d.place(Loc{Line: index, Char: join}, true)
	return nil
}

// SplitLine breaks the current line at the cursor and moves the cursor to the
// start of the new line.
func (d *Document) SplitLine() error {
	if err := d.checkOpen("split line"); err != nil {
		return err
	}
	if err := d.splitAtCursor(); err != nil {
		return err
	}
	d.touch()
	d.place(d.cursor, true)
	return nil
}

// splitAtCursor moves the text after the cursor to a new line below and puts
// the cursor at its start. Nothing changes when the cursor lies outside its
// line.
func (d *Document) splitAtCursor() error {
	cur := d.cursor
	tail, err := d.lines[cur.Line].SplitOff(cur.Char)
	if err != nil {
		return err
	}
	d.lines = slices.Insert(d.lines, cur.Line+1, tail)
	d.cursor = Loc{Line: cur.Line + 1}
	return nil
}
