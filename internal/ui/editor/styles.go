package editor

import "github.com/charmbracelet/lipgloss"

// Default styles for the editor components
var (
	// cursorStyle paints the cell under the caret
	cursorStyle = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "252", Dark: "248"}).
			Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "0"})

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "236", Dark: "252"}).
			Background(lipgloss.AdaptiveColor{Light: "252", Dark: "236"})

	fileStyle = lipgloss.NewStyle().Bold(true)

	modifiedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "3", Dark: "11"}).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "245", Dark: "242"})

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "3", Dark: "11"})

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"})
)
