package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/wx-dashboard/internal/models"
	"github.com/ngmaloney/wx-dashboard/internal/rotation"
)

// AlertSource is the alert feed as the dashboard sees it
type AlertSource interface {
	Fetch(ctx context.Context) []models.RawAlert
}

// ConditionsSource is the conditions feed as the dashboard sees it
type ConditionsSource interface {
	Fetch(ctx context.Context, locations []models.Location) []models.CityConditions
}

// fetchAlerts fetches alerts in the background
func fetchAlerts(src AlertSource, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return alertsFetchedMsg{alerts: src.Fetch(ctx)}
	}
}

// fetchConditions fetches every location's conditions in the background
func fetchConditions(src ConditionsSource, locations []models.Location, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return conditionsFetchedMsg{conditions: src.Fetch(ctx, locations)}
	}
}

func clockTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return clockTickMsg(t) })
}

func scheduleAlertRefresh(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return alertRefreshMsg{} })
}

func scheduleConditionsRefresh(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return conditionsRefreshMsg{} })
}

func pageTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return pageTickMsg{} })
}

func rotateTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return rotateTickMsg{} })
}

// resumeAfter schedules the end of a manual pause. A newer navigation makes
// this token stale, which is how an earlier resume timer gets cancelled.
func resumeAfter(token rotation.ResumeToken, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return resumeMsg{token: token} })
}
