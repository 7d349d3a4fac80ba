package buffer

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docWith(t *testing.T, size Size, lines ...string) *Document {
	t.Helper()
	d := New(size)
	require.NoError(t, d.InsertText(strings.Join(lines, "\n")))
	require.NoError(t, d.SetCursor(0, 0))
	return d
}

// assertCursorVisible checks the cursor lies inside the viewport.
func assertCursorVisible(t *testing.T, d *Document) {
	t.Helper()
	row, col := d.CursorScreen()
	size := d.Size()
	assert.GreaterOrEqual(t, row, 0)
	assert.Less(t, row, size.Height)
	assert.GreaterOrEqual(t, col, 0)
	assert.Less(t, col, size.Width)
	if w := d.CursorWidth(); w <= size.Width {
		assert.LessOrEqual(t, col+w, size.Width, "wide cursor cell must fit")
	}
}

func TestSetCursor(t *testing.T) {
	d := docWith(t, viewport, "abc", "de")

	require.NoError(t, d.SetCursor(1, 2))
	assert.Equal(t, Loc{Line: 1, Char: 2}, d.Cursor())

	for _, loc := range []Loc{{2, 0}, {-1, 0}, {1, 3}, {0, -1}} {
		err := d.SetCursor(loc.Line, loc.Char)
		assert.True(t, errors.Is(err, ErrOutOfRange), "%v", loc)
		assert.Equal(t, Loc{Line: 1, Char: 2}, d.Cursor(), "failed set must not move the cursor")
	}
}

func TestMoveCursor_Horizontal(t *testing.T) {
	d := docWith(t, viewport, "hello")

	require.NoError(t, d.MoveCursor(Right, 3))
	assert.Equal(t, 3, d.Cursor().Char)
	require.NoError(t, d.MoveCursor(Left, 1))
	assert.Equal(t, 2, d.Cursor().Char)

	err := d.MoveCursor(Left, 5)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	assert.Equal(t, 2, d.Cursor().Char)

	err = d.MoveCursor(Right, 4)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	assert.Equal(t, 2, d.Cursor().Char)

	require.NoError(t, d.MoveCursor(End, 0))
	assert.Equal(t, 5, d.Cursor().Char)
	require.NoError(t, d.MoveCursor(Home, 7))
	assert.Equal(t, 0, d.Cursor().Char)

	err = d.MoveCursor(Right, -1)
	assert.True(t, errors.Is(err, ErrInvalidRange))

	err = d.MoveCursor(Direction(99), 1)
	assert.True(t, errors.Is(err, ErrInvalidRange))
}

func TestMoveCursor_VerticalKeepsColumn(t *testing.T) {
	d := docWith(t, viewport, "a好好b", "abcdef", "x")

	require.NoError(t, d.SetCursor(1, 2))
	require.NoError(t, d.MoveCursor(Up, 1))
	assert.Equal(t, Loc{Line: 0, Char: 1}, d.Cursor(), "column 2 falls inside the wide glyph and snaps to its start")
	assert.Equal(t, 1, d.CursorColumn())

	require.NoError(t, d.MoveCursor(Down, 1))
	assert.Equal(t, Loc{Line: 1, Char: 2}, d.Cursor(), "the desired column survives the detour")

	require.NoError(t, d.MoveCursor(Down, 1))
	assert.Equal(t, Loc{Line: 2, Char: 1}, d.Cursor(), "short lines clamp to their end")

	require.NoError(t, d.MoveCursor(Up, 2))
	assert.Equal(t, Loc{Line: 0, Char: 1}, d.Cursor())

	err := d.MoveCursor(Up, 1)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	err = d.MoveCursor(Down, 3)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	assert.Equal(t, Loc{Line: 0, Char: 1}, d.Cursor())
}

func TestMoveCursor_Words(t *testing.T) {
	d := docWith(t, viewport, "foo bar.baz")

	require.NoError(t, d.MoveCursor(WordRight, 1))
	assert.Equal(t, 3, d.Cursor().Char)
	require.NoError(t, d.MoveCursor(WordRight, 2))
	assert.Equal(t, 7, d.Cursor().Char)
	require.NoError(t, d.MoveCursor(WordRight, 10))
	assert.Equal(t, 11, d.Cursor().Char, "word moves stop at the line end")

	require.NoError(t, d.MoveCursor(WordLeft, 1))
	assert.Equal(t, 8, d.Cursor().Char)
	require.NoError(t, d.MoveCursor(WordLeft, 10))
	assert.Equal(t, 0, d.Cursor().Char)
}

func TestViewport_HorizontalScroll(t *testing.T) {
	d := New(Size{Width: 10, Height: 3})
	require.NoError(t, d.InsertText("abcdefghijklmno"))

	assert.Equal(t, 15, d.CursorColumn())
	assert.Equal(t, Offset{X: 6, Y: 0}, d.Offset())
	row, col := d.CursorScreen()
	assert.Equal(t, 0, row)
	assert.Equal(t, 9, col)
	assert.Equal(t, "ghijklmno ", d.VisibleLines()[0])

	require.NoError(t, d.MoveCursor(Home, 0))
	assert.Equal(t, Offset{}, d.Offset())
	assert.Equal(t, "abcdefghij", d.VisibleLines()[0])
}

func TestViewport_WideGlyphAtEdge(t *testing.T) {
	d := New(Size{Width: 5, Height: 1})
	require.NoError(t, d.InsertText("abcd好"))
	require.NoError(t, d.MoveCursor(Home, 0))
	require.NoError(t, d.MoveCursor(Right, 4))

	// The wide glyph under the cursor must be fully visible.
	assert.Equal(t, 4, d.CursorColumn())
	assert.Equal(t, 1, d.Offset().X)
	assert.Equal(t, "bcd好", d.VisibleLines()[0])
	assertCursorVisible(t, d)
}

func TestViewport_VerticalScroll(t *testing.T) {
	lines := make([]string, 10)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	d := docWith(t, Size{Width: 10, Height: 3}, lines...)

	require.NoError(t, d.MoveCursor(Down, 5))
	assert.Equal(t, 3, d.Offset().Y)
	assert.Equal(t, []string{"line 3    ", "line 4    ", "line 5    "}, d.VisibleLines())

	require.NoError(t, d.MoveCursor(Up, 5))
	assert.Equal(t, 0, d.Offset().Y)
}

func TestVisibleLines_PastEnd(t *testing.T) {
	d := docWith(t, Size{Width: 4, Height: 3}, "ab")
	assert.Equal(t, []string{"ab  ", "    ", "    "}, d.VisibleLines())

	assert.Equal(t, "b ", d.VisibleSegment(0, 1, 2))
	assert.Equal(t, "  ", d.VisibleSegment(5, 0, 2))
	assert.Equal(t, "", d.VisibleSegment(0, 0, 0))
}

func TestResize(t *testing.T) {
	d := docWith(t, Size{Width: 20, Height: 10}, strings.Repeat("x", 30), "a", "b", "c", "d")
	require.NoError(t, d.SetCursor(4, 1))
	assert.Equal(t, Offset{}, d.Offset())

	d.Resize(Size{Width: 5, Height: 2})
	assert.Equal(t, Size{Width: 5, Height: 2}, d.Size())
	assert.Equal(t, 3, d.Offset().Y)
	assertCursorVisible(t, d)
}

// Random moves and edits never leave the cursor outside the viewport or
// produce rows of the wrong width.
func TestViewport_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	d := docWith(t, Size{Width: 7, Height: 4},
		"日本語のテキスト",
		"short",
		"",
		"mixed 好 and 😀 glyphs",
		"a much longer ascii line that scrolls sideways",
		"x",
	)
	dirs := []Direction{Left, Right, Up, Down, Home, End, WordLeft, WordRight}
	pieces := []string{"好", "a", " ", "😀", "\n", "zz"}

	for step := 0; step < 500; step++ {
		switch rng.Intn(4) {
		case 0:
			_ = d.InsertText(pieces[rng.Intn(len(pieces))])
		case 1:
			_ = d.DeleteChar()
		default:
			_ = d.MoveCursor(dirs[rng.Intn(len(dirs))], rng.Intn(3))
		}

		assertCursorVisible(t, d)
		rows := d.VisibleLines()
		require.Len(t, rows, 4)
		for _, row := range rows {
			require.Equal(t, 7, StringWidth(row), "step %d: row %q", step, row)
		}
		for i := 0; i < d.LineCount(); i++ {
			l, err := d.Line(i)
			require.NoError(t, err)
			require.True(t, l.consistent(), "step %d line %d", step, i)
		}
	}
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "word right", WordRight.String())
	assert.Equal(t, "unknown", Direction(77).String())
}
