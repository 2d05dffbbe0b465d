package prompt

import "github.com/charmbracelet/lipgloss"

var (
	colorFail = lipgloss.AdaptiveColor{
		Light: "#f07171",
		Dark:  "#f07178",
	}
	colorMuted = lipgloss.AdaptiveColor{
		Light: "#828c99",
		Dark:  "#6c7680",
	}
)

var (
	// alertStyle frames a blocking alert.
	alertStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFail).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorFail).
			Padding(0, 1)

	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
)

// renderAlert formats message as an alert box.
func renderAlert(message string) string {
	return alertStyle.Render(message)
}
