package lipgloss

import "github.com/charmbracelet/lipgloss"

var (
	Red     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	Green   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	Yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	BlueSky = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	Info    = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)

	// BoxStyle frames summaries printed at the end of a command.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)
)
