/*
Package buffer implements the text buffer underneath the quill editor.

A Document owns an ordered slice of Lines, the cursor, the viewport and the
file format captured at load time. Each Line owns its characters together with
a Breakpoints table recording where the display width of the line diverges
from its character count, so that cursor math, horizontal scrolling and
double-width rendering never drift from the underlying text.

Coordinates are 0-based. Character indices count runes; display columns count
terminal cells.

	doc, err := buffer.Open(buffer.Size{Width: 80, Height: 24}, "notes.txt")
	if err != nil {
		return err
	}
	_ = doc.InsertText("hello")
	for _, row := range doc.VisibleLines() {
		fmt.Println(row)
	}
	row, col := doc.CursorScreen()

A Document is not safe for concurrent use; it is meant to be driven from the
single input/render loop of the consuming editor.
*/
package buffer
