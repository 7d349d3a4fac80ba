package buffer

import "strings"

// Direction is a cursor movement direction.
type Direction uint8

const (
	Left Direction = iota
	Right
	Up
	Down
	Home // start of the line
	End  // end of the line
	WordLeft
	WordRight
)

var directionNames = [...]string{"left", "right", "up", "down", "home", "end", "word left", "word right"}

func (dir Direction) String() string {
	if int(dir) < len(directionNames) {
		return directionNames[dir]
	}
	return "unknown"
}

// Cursor returns the cursor position.
func (d *Document) Cursor() Loc { return d.cursor }

// Offset returns the viewport scroll position.
func (d *Document) Offset() Offset { return d.offset }

// Size returns the viewport size.
func (d *Document) Size() Size { return d.size }

// CursorColumn returns the display column of the cursor on its line.
func (d *Document) CursorColumn() int {
	return d.lines[d.cursor.Line].Column(d.cursor.Char)
}

// CursorWidth returns the number of cells under the cursor: the width of the
// character it sits on, or 1 at the end of a line.
func (d *Document) CursorWidth() int {
	if w := d.lines[d.cursor.Line].CharWidth(d.cursor.Char); w > 0 {
		return w
	}
	return 1
}

// CursorScreen returns the cursor position relative to the viewport, for
// placing the terminal caret.
func (d *Document) CursorScreen() (row, col int) {
	return d.cursor.Line - d.offset.Y, d.CursorColumn() - d.offset.X
}

// Resize changes the viewport size and scrolls to keep the cursor visible.
func (d *Document) Resize(size Size) {
	d.size = clampSize(size)
	d.scrollToCursor()
}

// SetCursor moves the cursor to (line, char).
func (d *Document) SetCursor(line, char int) error {
	if err := d.checkOpen("set cursor"); err != nil {
		return err
	}
	if line < 0 || line >= len(d.lines) {
		return outOfRange("set cursor", "line %d not in [0, %d)", line, len(d.lines))
	}
	if n := d.lines[line].Len(); char < 0 || char > n {
		return outOfRange("set cursor", "char %d not in [0, %d] on line %d", char, n, line)
	}
	d.place(Loc{Line: line, Char: char}, true)
	return nil
}

// MoveCursor moves the cursor amount steps in dir. Left and Right step over
// characters within the line; Up and Down step over lines, keeping the
// display column and snapping back to the start of a wide character; Home
// and End ignore amount. A move whose target lies outside the buffer fails
// with ErrOutOfRange and leaves the cursor where it was. Word moves stop at
// the line edges instead of failing.
func (d *Document) MoveCursor(dir Direction, amount int) error {
	if err := d.checkOpen("move cursor"); err != nil {
		return err
	}
	if amount < 0 {
		return invalidRange("move cursor", "negative amount %d", amount)
	}
	cur := d.cursor
	line := d.lines[cur.Line]

	switch dir {
	case Left:
		if cur.Char-amount < 0 {
			return outOfRange("move cursor", "cannot move %d left from char %d", amount, cur.Char)
		}
		d.place(Loc{Line: cur.Line, Char: cur.Char - amount}, true)
	case Right:
		if cur.Char+amount > line.Len() {
			return outOfRange("move cursor", "cannot move %d right from char %d of %d", amount, cur.Char, line.Len())
		}
		d.place(Loc{Line: cur.Line, Char: cur.Char + amount}, true)
	case Up, Down:
		target := cur.Line - amount
		if dir == Down {
			target = cur.Line + amount
		}
		if target < 0 || target >= len(d.lines) {
			return outOfRange("move cursor", "line %d not in [0, %d)", target, len(d.lines))
		}
		char := d.lines[target].CharIndexAt(d.desiredCol)
		d.place(Loc{Line: target, Char: char}, false)
	case Home:
		d.place(Loc{Line: cur.Line}, true)
	case End:
		d.place(Loc{Line: cur.Line, Char: line.Len()}, true)
	case WordLeft:
		char := cur.Char
		for i := 0; i < amount; i++ {
			char = line.PreviousWordBoundary(char)
		}
		d.place(Loc{Line: cur.Line, Char: char}, true)
	case WordRight:
		char := cur.Char
		for i := 0; i < amount; i++ {
			char = line.NextWordBoundary(char)
		}
		d.place(Loc{Line: cur.Line, Char: char}, true)
	default:
		return invalidRange("move cursor", "unknown direction %d", dir)
	}
	return nil
}

// place sets the cursor, optionally records its column as the one vertical
// moves aim for, and scrolls the viewport to it.
func (d *Document) place(loc Loc, sticky bool) {
	d.cursor = loc
	if sticky {
		d.desiredCol = d.CursorColumn()
	}
	d.scrollToCursor()
}

// scrollToCursor adjusts the offset so the cursor lies inside the viewport.
func (d *Document) scrollToCursor() {
	if d.cursor.Line < d.offset.Y {
		d.offset.Y = d.cursor.Line
	} else if d.cursor.Line >= d.offset.Y+d.size.Height {
		d.offset.Y = d.cursor.Line - d.size.Height + 1
	}

	col := d.CursorColumn()
	w := min(d.CursorWidth(), d.size.Width)
	if col < d.offset.X {
		d.offset.X = col
	} else if col+w > d.offset.X+d.size.Width {
		d.offset.X = col + w - d.size.Width
	}
	if d.offset.X < 0 {
		d.offset.X = 0
	}
	if d.offset.Y < 0 {
		d.offset.Y = 0
	}
}

// VisibleLines renders the viewport: exactly Height rows of exactly Width
// display columns. Rows past the end of the document are blank.
func (d *Document) VisibleLines() []string {
	rows := make([]string, d.size.Height)
	for r := range rows {
		rows[r] = d.VisibleSegment(r, 0, d.size.Width)
	}
	return rows
}

// VisibleSegment renders count columns of viewport row row starting at
// viewport column col. It lets a consumer split a row around the caret
// without touching the lines themselves.
func (d *Document) VisibleSegment(row, col, count int) string {
	if count <= 0 {
		return ""
	}
	i := d.offset.Y + row
	if row < 0 || i >= len(d.lines) {
		return strings.Repeat(" ", count)
	}
	return d.lines[i].Window(d.offset.X+col, count)
}
