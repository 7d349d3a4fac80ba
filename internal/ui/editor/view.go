package editor

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/willibrandon/quill/internal/logger"
)

// View renders the editor and returns it as a string
func (m *Model) View() string {
	components := []string{m.renderContent()}
	if m.enableStatusBar {
		components = append(components, m.renderStatusLine())
	}
	return lipgloss.JoinVertical(lipgloss.Left, components...)
}

func (m *Model) renderContent() string {
	size := m.doc.Size()
	cursorRow, cursorCol := m.doc.CursorScreen()

	rows := make([]string, size.Height)
	for r := range rows {
		if r == cursorRow {
			rows[r] = m.renderCursorRow(r, cursorCol, size.Width)
			continue
		}
		rows[r] = m.highlighter.Highlight(m.doc.VisibleSegment(r, 0, size.Width))
	}
	return strings.Join(rows, "\n")
}

// renderCursorRow splits the row around the caret cell so the caret can be
// styled without re-deriving any column math.
func (m *Model) renderCursorRow(row, col, width int) string {
	caretWidth := min(m.doc.CursorWidth(), width-col)
	if caretWidth <= 0 {
		return m.highlighter.Highlight(m.doc.VisibleSegment(row, 0, width))
	}

	left := m.doc.VisibleSegment(row, 0, col)
	caret := m.doc.VisibleSegment(row, col, caretWidth)
	right := m.doc.VisibleSegment(row, col+caretWidth, width-col-caretWidth)

	return m.highlighter.Highlight(left) + cursorStyle.Render(caret) + m.highlighter.Highlight(right)
}

func (m *Model) renderStatusLine() string {
	cur := m.doc.Cursor()
	format := m.doc.Format()
	right := fmt.Sprintf("%s | %s | %s | Ln %d, Col %d ",
		m.language,
		format.LineEnding,
		format.Indent,
		cur.Line+1,
		m.doc.CursorColumn()+1,
	)

	left := " " + m.getStatusText(true)
	if lipgloss.Width(left)+lipgloss.Width(right) > m.width {
		left = " " + m.getStatusText(false)
	}
	if avail := m.width - lipgloss.Width(right) - 1; lipgloss.Width(left) > avail && avail > 1 {
		left = ansi.Truncate(left, avail, "…")
	}

	padding := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return statusStyle.Inline(true).MaxWidth(max(m.width, 1)).
		Render(left + strings.Repeat(" ", padding) + right)
}

// getStatusText builds the left side of the status bar; key hints fill the
// message slot when there is room and nothing else to say.
func (m *Model) getStatusText(hints bool) string {
	name := "[No Name]"
	if path := m.doc.Path(); path != "" {
		name = filepath.Base(path)
	}
	status := fileStyle.Render(name)

	if m.doc.Modified() {
		status += " " + modifiedStyle.Render("[+]")
	}

	warnCount, errCount := logger.GetCounts()
	if warnCount > 0 {
		status += " " + warningStyle.Render(fmt.Sprintf("⚠ %d", warnCount))
	}
	if errCount > 0 {
		status += " " + errorStyle.Render(fmt.Sprintf("✕ %d", errCount))
	}

	if m.statusMessage != "" {
		status += " | " + m.statusMessage
	} else if hints {
		var help []string
		for _, b := range m.keys.ShortHelp() {
			help = append(help, b.Help().Key+" "+b.Help().Desc)
		}
		status += " | " + mutedStyle.Render(strings.Join(help, " · "))
	}
	return status
}
