package buffer

import (
	"errors"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/willibrandon/quill/internal/logger"
)

// Loc is a position in a document: a line index and a character index
// within that line.
type Loc struct {
	Line int
	Char int
}

// Offset is the scroll position of the viewport: Y is the first visible line
// and X the first visible display column.
type Offset struct {
	X int
	Y int
}

// Size is the viewport size in cells.
type Size struct {
	Width  int
	Height int
}

// State is the lifecycle stage of a document.
type State uint8

const (
	StateUninitialized State = iota
	StateLoaded
	StateEditing
	StateSaved
	StateClosed
)

var stateNames = [...]string{"uninitialized", "loaded", "editing", "saved", "closed"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Document is an editable text buffer with a cursor and a viewport.
type Document struct {
	lines []*Line

	cursor     Loc
	desiredCol int // display column kept across vertical moves
	offset     Offset
	size       Size

	format   Format
	tabWidth int
	path     string
	modified bool
	state    State
}

type options struct {
	tabWidth int
	indent   Indent
	path     string
}

// Option configures a Document.
type Option func(*options)

// WithTabWidth sets the number of cells a tab occupies.
func WithTabWidth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.tabWidth = n
		}
	}
}

// WithIndent sets the indentation used by new buffers and by files that have
// no indented lines.
func WithIndent(in Indent) Option {
	return func(o *options) { o.indent = in }
}

// WithPath names the file a new, empty document saves to. Open ignores it.
func WithPath(path string) Option {
	return func(o *options) { o.path = path }
}

func newOptions(opts []Option) options {
	o := options{tabWidth: DefaultTabWidth}
	for _, opt := range opts {
		opt(&o)
	}
	if o.indent.Width < 1 {
		o.indent.Width = o.tabWidth
	}
	return o
}

// New creates an empty document holding a single empty line.
func New(size Size, opts ...Option) *Document {
	o := newOptions(opts)
	return &Document{
		lines:    []*Line{NewLine("", o.tabWidth)},
		size:     clampSize(size),
		format:   Format{LineEnding: Unix, Indent: o.indent},
		tabWidth: o.tabWidth,
		path:     o.path,
		state:    StateLoaded,
	}
}

// errNotUTF8 rejects files that could not be written back byte for byte.
var errNotUTF8 = errors.New("file is not valid UTF-8")

// Open reads the file at path into a new document, capturing its line ending
// and indentation so Save writes it back in the same format.
func Open(size Size, path string, opts ...Option) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("open failed", "path", path, "error", err)
		return nil, ioError("open", path, err)
	}

	if !utf8.Valid(data) {
		logger.Warn("open failed", "path", path, "error", errNotUTF8)
		return nil, ioError("open", path, errNotUTF8)
	}

	o := newOptions(opts)
	text := string(data)
	le := DetectLineEnding(text)
	raw := SplitLines(text, le)

	d := &Document{
		lines:    make([]*Line, len(raw)),
		size:     clampSize(size),
		format:   Format{LineEnding: le, Indent: DetectIndent(raw, o.indent)},
		tabWidth: o.tabWidth,
		path:     path,
		state:    StateLoaded,
	}
	for i, s := range raw {
		d.lines[i] = NewLine(s, o.tabWidth)
	}

	logger.Debug("document opened",
		"path", path,
		"bytes", len(data),
		"lines", len(d.lines),
		"line_ending", le.String(),
		"indent", d.format.Indent.String())
	return d, nil
}

// Render returns the document text with every line joined by the captured
// line terminator.
func (d *Document) Render() string {
	var sb strings.Builder
	term := d.format.LineEnding.Terminator()
	for i, l := range d.lines {
		if i > 0 {
			sb.WriteString(term)
		}
		sb.WriteString(l.String())
	}
	return sb.String()
}

// Save writes the document to path, or to the path it was opened from when
// path is empty. A successful save clears the modified flag.
func (d *Document) Save(path string) error {
	if d.state == StateClosed {
		return &Error{Kind: KindClosed, Op: "save"}
	}
	if path == "" {
		path = d.path
	}
	if path == "" {
		return &Error{Kind: KindNoFileName, Op: "save"}
	}
	if err := writeFile(path, d.Render()); err != nil {
		logger.Warn("save failed", "path", path, "error", err)
		return ioError("save", path, err)
	}
	if d.path == "" {
		d.path = path
	}
	d.modified = false
	for _, l := range d.lines {
		l.ClearModified()
	}
	d.state = StateSaved
	logger.Debug("document saved", "path", path, "lines", len(d.lines))
	return nil
}

// SaveAs writes a copy of the document to path without changing the
// document's own path or modified flag.
func (d *Document) SaveAs(path string) error {
	if d.state == StateClosed {
		return &Error{Kind: KindClosed, Op: "save as"}
	}
	if path == "" {
		return &Error{Kind: KindNoFileName, Op: "save as"}
	}
	if err := writeFile(path, d.Render()); err != nil {
		logger.Warn("save as failed", "path", path, "error", err)
		return ioError("save as", path, err)
	}
	return nil
}

func writeFile(path, text string) error {
	perm := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		perm = fi.Mode().Perm()
	}
	return os.WriteFile(path, []byte(text), perm)
}

// Close ends the editing session. Every later edit, cursor move or save fails
// with ErrClosed.
func (d *Document) Close() {
	if d.state == StateClosed {
		return
	}
	d.state = StateClosed
	logger.Debug("document closed", "path", d.path, "modified", d.modified)
}

// State returns the lifecycle stage of the document.
func (d *Document) State() State { return d.state }

// Path returns the file the document was opened from or last saved to.
func (d *Document) Path() string { return d.path }

// Modified reports whether the document changed since it was loaded or saved.
func (d *Document) Modified() bool { return d.modified }

// Format returns the captured line ending and indentation.
func (d *Document) Format() Format { return d.format }

// SetLineEnding changes the terminator used by Render and Save.
func (d *Document) SetLineEnding(le LineEnding) error {
	if err := d.checkOpen("set line ending"); err != nil {
		return err
	}
	if le == d.format.LineEnding {
		return nil
	}
	d.format.LineEnding = le
	d.touch()
	return nil
}

// TabWidth returns the number of cells a tab occupies.
func (d *Document) TabWidth() int { return d.tabWidth }

// SetTabWidth changes the tab width and rebuilds every line's breakpoints.
// Widths below 1 are ignored.
func (d *Document) SetTabWidth(n int) error {
	if err := d.checkOpen("set tab width"); err != nil {
		return err
	}
	if n < 1 || n == d.tabWidth {
		return nil
	}
	d.tabWidth = n
	for _, l := range d.lines {
		l.setTabWidth(n)
	}
	d.desiredCol = d.CursorColumn()
	d.scrollToCursor()
	return nil
}

// LineCount returns the number of lines.
func (d *Document) LineCount() int { return len(d.lines) }

// Line returns line i. Callers must not mutate it; edits go through the
// Document so the cursor and modified state stay in step.
func (d *Document) Line(i int) (*Line, error) {
	return d.line("line", i)
}

// Text returns the text of line i.
func (d *Document) Text(i int) (string, error) {
	l, err := d.line("text", i)
	if err != nil {
		return "", err
	}
	return l.String(), nil
}

// LineLen returns the number of characters on line i.
func (d *Document) LineLen(i int) (int, error) {
	l, err := d.line("line length", i)
	if err != nil {
		return 0, err
	}
	return l.Len(), nil
}

// DisplayWidth returns the number of cells line i occupies.
func (d *Document) DisplayWidth(i int) (int, error) {
	l, err := d.line("display width", i)
	if err != nil {
		return 0, err
	}
	return l.DisplayWidth(), nil
}

// Words returns the word starts of line i followed by its length.
func (d *Document) Words(i int) ([]int, error) {
	l, err := d.line("words", i)
	if err != nil {
		return nil, err
	}
	return l.Words(), nil
}

func (d *Document) line(op string, i int) (*Line, error) {
	if i < 0 || i >= len(d.lines) {
		return nil, outOfRange(op, "line %d not in [0, %d)", i, len(d.lines))
	}
	return d.lines[i], nil
}

func (d *Document) checkOpen(op string) error {
	if d.state == StateClosed {
		return &Error{Kind: KindClosed, Op: op}
	}
	return nil
}

// touch records a text change.
func (d *Document) touch() {
	d.modified = true
	d.state = StateEditing
}

func clampSize(s Size) Size {
	if s.Width < 1 {
		s.Width = 1
	}
	if s.Height < 1 {
		s.Height = 1
	}
	return s
}
