package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/wx-dashboard/internal/alerts"
)

var (
	// Color palette
	colorPrimary = lipgloss.Color("#00BFFF") // Deep sky blue
	colorDanger  = lipgloss.Color("#FF6B6B") // Red
	colorOrange  = lipgloss.Color("#FF8C42")
	colorWarning = lipgloss.Color("#FFD93D") // Yellow
	colorSuccess = lipgloss.Color("#6BCF7F") // Green
	colorCold    = lipgloss.Color("#4A90E2")
	colorHeat    = lipgloss.Color("#FF9AA2")
	colorPurple  = lipgloss.Color("#B388FF")
	colorMuted   = lipgloss.Color("#6C757D") // Gray
	colorBorder  = lipgloss.Color("#4A90E2") // Border blue
	colorWhite   = lipgloss.Color("#FFFFFF")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	clockStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(lipgloss.Color("#1F2937")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(colorWhite)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(1, 0, 0, 0)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true).
				MarginBottom(1)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1).
			MarginRight(1)

	// "Active Alerts: N"
	pillStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorWhite).
			Padding(0, 2)

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Bold(true).
			Padding(0, 1).
			MarginRight(1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			PaddingLeft(1).
			MarginBottom(1)

	conditionsCardStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorWhite).
				Padding(0, 1)
)

// tagColors maps a style tag to its card accent
var tagColors = map[alerts.StyleTag]lipgloss.Color{
	alerts.StyleTornado:          colorDanger,
	alerts.StyleSevere:           colorOrange,
	alerts.StyleWatch:            colorWarning,
	alerts.StyleFlood:            colorSuccess,
	alerts.StyleHeat:             colorHeat,
	alerts.StyleAirQuality:       colorPurple,
	alerts.StyleSpecialStatement: colorPrimary,
	alerts.StyleDefault:          colorMuted,
}

// badgeInfo is the label and color of a summary badge
type badgeInfo struct {
	label string
	color lipgloss.Color
}

var badges = map[alerts.Category]badgeInfo{
	alerts.CategoryTornado:          {"Tornado", colorDanger},
	alerts.CategorySevereWarn:       {"Svr T-Storm", colorOrange},
	alerts.CategorySevere:           {"Severe", colorWarning},
	alerts.CategoryFlood:            {"Flood", colorSuccess},
	alerts.CategoryHeat:             {"Heat", colorHeat},
	alerts.CategoryHeatAdvisory:     {"Heat Adv", colorHeat},
	alerts.CategoryCold:             {"Cold", colorCold},
	alerts.CategoryAirQuality:       {"Air Quality", colorPurple},
	alerts.CategorySpecialStatement: {"SPS", colorPrimary},
}

// tagStyle returns the card style for a style tag
func tagStyle(tag alerts.StyleTag) lipgloss.Style {
	color, ok := tagColors[tag]
	if !ok {
		color = colorMuted
	}
	return cardStyle.BorderForeground(color)
}

// eventStyle returns the headline style for a style tag
func eventStyle(tag alerts.StyleTag) lipgloss.Style {
	color, ok := tagColors[tag]
	if !ok || tag == alerts.StyleDefault {
		color = colorWhite
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true)
}
