package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/wx-dashboard/internal/alerts"
	"github.com/ngmaloney/wx-dashboard/internal/config"
	"github.com/ngmaloney/wx-dashboard/internal/models"
	"github.com/ngmaloney/wx-dashboard/internal/rotation"
)

// View renders the dashboard
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	alertsPane := m.renderAlerts()
	sidePane := lipgloss.JoinVertical(lipgloss.Left, m.renderConditions(), "", m.renderMap())

	var body string
	switch m.cfg.View.Layout {
	case config.LayoutStacked:
		w := max(m.width-4, 20)
		body = lipgloss.JoinVertical(lipgloss.Left,
			paneStyle.Width(w).Render(alertsPane),
			paneStyle.Width(w).Render(sidePane),
		)
	default:
		left := max(m.width*3/5-4, 20)
		right := max(m.width-left-8, 20)
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			paneStyle.Width(left).Render(alertsPane),
			paneStyle.Width(right).Render(sidePane),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		"",
		body,
		m.renderFooter(),
	)
}

// renderHeader renders the title and the wall clock with its zone abbreviation
func (m Model) renderHeader() string {
	title := titleStyle.Render("⛈  Weather Alert Dashboard")
	clock := clockStyle.Render(m.now.Format("Mon Jan 2  3:04:05 PM MST"))
	return lipgloss.JoinHorizontal(lipgloss.Center, clock, "  ", title)
}

// renderBadges renders the enabled category badges in configured order
func (m Model) renderBadges() string {
	var rendered []string
	for _, name := range m.cfg.View.Badges {
		c := alerts.Category(name)
		info, ok := badges[c]
		if !ok {
			continue
		}
		rendered = append(rendered, badgeStyle.Background(info.color).
			Render(fmt.Sprintf("%s: %d", info.label, m.counts[c])))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// renderAlerts renders badges, the active count and the visible page of cards
func (m Model) renderAlerts() string {
	n := m.pager.Len()

	sections := []string{
		sectionHeaderStyle.Render("⚠  ACTIVE ALERTS"),
		m.renderBadges(),
		"",
		pillStyle.Render(fmt.Sprintf("Active Alerts: %d", n)),
	}

	if n == 0 {
		if !m.alertsLoaded {
			sections = append(sections, "", fmt.Sprintf("%s %s", m.spinner.View(), mutedStyle.Render("Loading alerts...")))
			return lipgloss.JoinVertical(lipgloss.Left, sections...)
		}
		sections = append(sections, "", mutedStyle.Render("No Active Alerts"))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	sections = append(sections, "", m.renderPageCaption(), "")
	for _, a := range m.pager.Window() {
		sections = append(sections, m.renderAlertCard(a))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderPageCaption renders "◀ Showing a–b of n ▶"
func (m Model) renderPageCaption() string {
	start, end := m.pager.Bounds()
	caption := fmt.Sprintf("◀  Showing %d–%d of %d  ▶", start+1, end, m.pager.Len())
	if m.pager.Mode() == rotation.ModePaused {
		caption += "  (paused)"
	}
	return mutedStyle.Render(caption)
}

func (m Model) renderAlertCard(a alerts.FilteredAlert) string {
	lines := []string{
		eventStyle(a.Style).Render(a.EventOrUnknown()),
	}
	if a.Headline != "" {
		lines = append(lines, mutedStyle.Render(a.Headline))
	}
	lines = append(lines,
		fmt.Sprintf("%s %s", labelStyle.Render("Effective:"), m.formatTime(a.EffectiveAt)),
		fmt.Sprintf("%s %s", labelStyle.Render("Expires:"), m.formatTime(a.ExpiresAt)),
	)

	switch {
	case m.cfg.View.CountyDetail == config.CountyDetailNever:
	case m.showCounties:
		lines = append(lines, fmt.Sprintf("%s %s", labelStyle.Render("Counties Affected:"), alerts.CountyList(a.AreaDesc)))
	default:
		lines = append(lines, mutedStyle.Render("c: Show Affected Counties"))
	}

	return tagStyle(a.Style).Render(strings.Join(lines, "\n"))
}

func (m Model) formatTime(t time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	return t.In(m.zone).Format("Jan 2, 3:04 PM MST")
}

// renderConditions renders the current city of the conditions rotation
func (m Model) renderConditions() string {
	header := sectionHeaderStyle.Render("🌡  CURRENT CONDITIONS")
	if len(m.conditions) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			header,
			fmt.Sprintf("%s %s", m.spinner.View(), mutedStyle.Render("Loading current conditions...")),
		)
	}

	city := m.conditions[m.cycler.Index()]

	current := []string{
		mutedStyle.Italic(true).Render("Currently"),
		valueStyle.Bold(true).Render("Temp: " + formatTemp(city.Current.Temperature)),
		"Feels Like: " + formatTemp(city.Current.ApparentTemperature),
		mutedStyle.Italic(true).Render(city.Current.ShortForecast),
	}

	lines := []string{
		titleStyle.Render(city.City),
		conditionsCardStyle.Render(strings.Join(current, "\n")),
	}
	for _, p := range city.Forecast {
		lines = append(lines, renderForecastPeriod(p, m.zone))
	}
	lines = append(lines, mutedStyle.Render(fmt.Sprintf("%d of %d", m.cycler.Index()+1, m.cycler.Len())))

	return lipgloss.JoinVertical(lipgloss.Left, header, strings.Join(lines, "\n"))
}

func renderForecastPeriod(p models.ForecastPeriod, zone *time.Location) string {
	line := fmt.Sprintf("%s  Temp: %s  Feels Like: %s",
		labelStyle.Render(p.Time.In(zone).Format("3:04 PM")),
		formatTemp(p.Temperature),
		formatTemp(p.ApparentTemperature))
	detail := "  " + p.ShortForecast
	if p.ProbabilityOfPrecipitation != nil {
		detail += fmt.Sprintf("  Precip: %d%%", *p.ProbabilityOfPrecipitation)
	}
	return line + "\n" + mutedStyle.Render(detail)
}

func formatTemp(t *int) string {
	if t == nil {
		return "--°F"
	}
	return fmt.Sprintf("%d°F", *t)
}

// renderMap renders the map selector and the selected product
func (m Model) renderMap() string {
	var tabs []string
	for i, p := range m.maps {
		style := mutedStyle
		if i == m.mapIndex {
			style = lipgloss.NewStyle().Foreground(colorWhite).Background(colorPrimary).Bold(true)
		}
		tabs = append(tabs, style.Padding(0, 1).Render(p.name))
	}

	selected := m.maps[m.mapIndex]
	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		valueStyle.Render(selected.url),
	}
	if selected.name == spcProduct {
		var legend []string
		for _, l := range spcLegend {
			legend = append(legend, fmt.Sprintf("%s – %s", l.color, l.risk))
		}
		lines = append(lines, mutedStyle.Render(strings.Join(legend, "; ")))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderFooter() string {
	footer := m.help.View(m.keys)
	if m.cfg.View.Footer != "" {
		footer += "  " + mutedStyle.Render(m.cfg.View.Footer)
	}
	if !m.lastFetch.IsZero() {
		footer += "  " + mutedStyle.Render("Updated "+m.lastFetch.In(m.zone).Format("3:04:05 PM"))
	}
	return helpStyle.Render(footer)
}
