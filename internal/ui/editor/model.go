// Package editor is a terminal editor built on bubbletea that drives a
// buffer.Document: keys map to document operations and the screen is drawn
// from the document's visible rows.
package editor

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/willibrandon/quill/internal/buffer"
	"github.com/willibrandon/quill/internal/lang"
	"github.com/willibrandon/quill/internal/logger"
)

// statusTimeout is how long a status message stays on screen.
const statusTimeout = 3 * time.Second

type clearStatusMsg struct{ id int }

// Model is the editor's bubbletea model.
type Model struct {
	doc  *buffer.Document
	keys KeyMap

	width  int
	height int

	highlighter     *highlighter
	clipboard       Clipboard
	enableStatusBar bool
	language        string

	statusMessage string
	statusID      int
	confirmQuit   bool
}

type options struct {
	SyntaxTheme     string
	Highlight       bool
	EnableStatusBar bool
	KeyMap          KeyMap
	Clipboard       Clipboard
}

// Option configures the editor.
type Option func(*options)

// WithSyntaxTheme selects the chroma style used for highlighting.
func WithSyntaxTheme(theme string) Option {
	return func(o *options) { o.SyntaxTheme = theme }
}

// WithHighlight turns syntax highlighting on or off.
func WithHighlight(enabled bool) Option {
	return func(o *options) { o.Highlight = enabled }
}

// WithStatusBar shows or hides the status bar.
func WithStatusBar(enabled bool) Option {
	return func(o *options) { o.EnableStatusBar = enabled }
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap(km KeyMap) Option {
	return func(o *options) { o.KeyMap = km }
}

// WithClipboard replaces the system clipboard.
func WithClipboard(cb Clipboard) Option {
	return func(o *options) { o.Clipboard = cb }
}

// New creates an editor for doc.
func New(doc *buffer.Document, opts ...Option) *Model {
	o := &options{
		SyntaxTheme:     "catppuccin-macchiato",
		Highlight:       true,
		EnableStatusBar: true,
		KeyMap:          DefaultKeyMap(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.Clipboard == nil {
		o.Clipboard = newSystemClipboard()
	}

	language, ok := lang.ForPath(doc.Path())
	if !ok {
		language = "Plain Text"
	}

	size := doc.Size()
	return &Model{
		doc:             doc,
		keys:            o.KeyMap,
		width:           size.Width,
		height:          size.Height,
		highlighter:     newHighlighter(o.SyntaxTheme, doc.Path(), o.Highlight),
		clipboard:       o.Clipboard,
		enableStatusBar: o.EnableStatusBar,
		language:        language,
	}
}

// Document returns the document being edited.
func (m *Model) Document() *buffer.Document { return m.doc }

// StatusMessage returns the message currently shown in the status bar.
func (m *Model) StatusMessage() string { return m.statusMessage }

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeypress(msg)

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.statusMessage = ""
		}
	}
	return m, nil
}

// SetSize resizes the editor; the status bar takes the bottom row.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.doc.Resize(buffer.Size{Width: width, Height: m.textHeight()})
}

func (m *Model) textHeight() int {
	if m.enableStatusBar {
		return max(m.height-1, 1)
	}
	return max(m.height, 1)
}

func (m *Model) handleKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, m.keys.Quit) {
		m.confirmQuit = false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.doc.Modified() && !m.confirmQuit {
			m.confirmQuit = true
			return m, m.setStatus("unsaved changes, press ctrl+q again to quit")
		}
		m.doc.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Save):
		return m, m.save()

	case key.Matches(msg, m.keys.Up):
		m.move(buffer.Up, 1)
	case key.Matches(msg, m.keys.Down):
		m.move(buffer.Down, 1)
	case key.Matches(msg, m.keys.Left):
		m.moveLeft()
	case key.Matches(msg, m.keys.Right):
		m.moveRight()
	case key.Matches(msg, m.keys.Home):
		m.move(buffer.Home, 0)
	case key.Matches(msg, m.keys.End):
		m.move(buffer.End, 0)
	case key.Matches(msg, m.keys.WordLeft):
		m.move(buffer.WordLeft, 1)
	case key.Matches(msg, m.keys.WordRight):
		m.move(buffer.WordRight, 1)
	case key.Matches(msg, m.keys.PageUp):
		m.move(buffer.Up, min(m.doc.Size().Height, m.doc.Cursor().Line))
	case key.Matches(msg, m.keys.PageDown):
		m.move(buffer.Down, min(m.doc.Size().Height, m.doc.LineCount()-1-m.doc.Cursor().Line))

	case key.Matches(msg, m.keys.Newline):
		m.edit("split line", m.doc.SplitLine())
	case key.Matches(msg, m.keys.Indent):
		m.edit("indent", m.doc.InsertIndent())
	case key.Matches(msg, m.keys.Backspace):
		m.edit("delete", m.doc.DeleteChar())
	case key.Matches(msg, m.keys.DeleteForward):
		m.edit("delete forward", m.doc.DeleteForward())
	case key.Matches(msg, m.keys.DeleteLine):
		m.edit("remove line", m.doc.RemoveLine(m.doc.Cursor().Line))

	case key.Matches(msg, m.keys.CopyLine):
		return m, m.copyLine(false)
	case key.Matches(msg, m.keys.CutLine):
		return m, m.copyLine(true)
	case key.Matches(msg, m.keys.Paste):
		return m, m.paste()

	case msg.Type == tea.KeySpace:
		m.edit("insert", m.doc.InsertChar(' '))
	case msg.Type == tea.KeyRunes && !msg.Alt:
		m.edit("insert", m.doc.InsertText(normalizeNewlines(string(msg.Runes))))
	}
	return m, nil
}

// move applies a cursor move. Moves past the edge of the buffer are no-ops.
func (m *Model) move(dir buffer.Direction, amount int) {
	if err := m.doc.MoveCursor(dir, amount); err != nil && !errors.Is(err, buffer.ErrOutOfRange) {
		logger.Warn("cursor move failed", "direction", dir.String(), "error", err)
	}
}

// moveLeft wraps to the end of the previous line at the start of a line.
func (m *Model) moveLeft() {
	if m.doc.Cursor().Char > 0 || m.doc.Cursor().Line == 0 {
		m.move(buffer.Left, 1)
		return
	}
	m.move(buffer.Up, 1)
	m.move(buffer.End, 0)
}

// moveRight wraps to the start of the next line at the end of a line.
func (m *Model) moveRight() {
	cur := m.doc.Cursor()
	n, _ := m.doc.LineLen(cur.Line)
	if cur.Char < n || cur.Line == m.doc.LineCount()-1 {
		m.move(buffer.Right, 1)
		return
	}
	m.move(buffer.Down, 1)
	m.move(buffer.Home, 0)
}

// edit reports a failed edit. Edits at the edge of the buffer, such as a
// backspace at the very start, are silently ignored.
func (m *Model) edit(op string, err error) {
	if err == nil || errors.Is(err, buffer.ErrOutOfRange) {
		return
	}
	logger.Warn("edit failed", "op", op, "error", err)
}

// copyLine puts the cursor line on the clipboard, removing it when cut is set.
func (m *Model) copyLine(cut bool) tea.Cmd {
	line := m.doc.Cursor().Line
	text, err := m.doc.Text(line)
	if err != nil {
		return nil
	}
	if err := m.clipboard.Write(text + "\n"); err != nil {
		logger.Warn("clipboard write failed", "error", err)
		return m.setStatus(err.Error())
	}
	if cut {
		m.edit("remove line", m.doc.RemoveLine(line))
		return m.setStatus("cut 1 line")
	}
	return m.setStatus("copied 1 line")
}

func (m *Model) paste() tea.Cmd {
	text, err := m.clipboard.Read()
	if err != nil {
		logger.Warn("clipboard read failed", "error", err)
		return m.setStatus(err.Error())
	}
	m.edit("paste", m.doc.InsertText(normalizeNewlines(text)))
	return nil
}

// normalizeNewlines turns pasted CR and CRLF terminators into LF.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func (m *Model) save() tea.Cmd {
	if err := m.doc.Save(""); err != nil {
		if errors.Is(err, buffer.ErrNoFileName) {
			return m.setStatus("no file name; start quill with a path to save")
		}
		logger.Error("save failed", "path", m.doc.Path(), "error", err)
		return m.setStatus(fmt.Sprintf("save failed: %v", err))
	}
	logger.Info("saved", "path", m.doc.Path(), "lines", m.doc.LineCount())
	return m.setStatus(fmt.Sprintf("saved %d lines", m.doc.LineCount()))
}

// setStatus shows msg and schedules its removal.
func (m *Model) setStatus(msg string) tea.Cmd {
	m.statusID++
	m.statusMessage = msg
	id := m.statusID
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}
