package report

import "github.com/charmbracelet/lipgloss"

// Color palette shared with the plain-text renderer's intent:
// red for HIGH/FAIL, yellow for MEDIUM, green for LOW/PASS.
var (
	colorPass    = lipgloss.Color("#22C55E")
	colorMedium  = lipgloss.Color("#EAB308")
	colorFail    = lipgloss.Color("#EF4444")
	colorPrimary = lipgloss.Color("#4A9EFF")
	colorDim     = lipgloss.Color("#9CA3AF")
	colorWhite   = lipgloss.Color("#F9FAFB")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(colorDim)

	deviceNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite).
			MarginTop(1)

	deviceCountStyle = lipgloss.NewStyle().
				Foreground(colorDim)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(colorDim)

	summaryBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1).
			MarginBottom(1)

	passStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPass)
	mediumStyle = lipgloss.NewStyle().Bold(true).Foreground(colorMedium)
	failStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorFail)
	dimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)
