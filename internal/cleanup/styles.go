package cleanup

import "github.com/charmbracelet/lipgloss"

const (
	redColorConstant   = "1"
	greenColorConstant = "2"
	blueColorConstant  = "4"
	cyanColorConstant  = "6"
)

var (
	promptBranchStyle   = lipgloss.NewStyle().Bold(true)
	skipNoticeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(blueColorConstant))
	skipBranchStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(blueColorConstant)).Bold(true)
	warningStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color(redColorConstant))
	deletionNoticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(redColorConstant))
	deletionDetailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(redColorConstant)).Bold(true)
	fetchNoticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(cyanColorConstant))
	creationNoticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(greenColorConstant)).Faint(true)
)
