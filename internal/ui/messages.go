package ui

import (
	"time"

	"github.com/ngmaloney/wx-dashboard/internal/models"
	"github.com/ngmaloney/wx-dashboard/internal/rotation"
)

// Message types for timers and async fetches. Each timer reschedules itself
// from Update, so every timer owns its own message type.

// clockTickMsg drives the header clock
type clockTickMsg time.Time

// alertRefreshMsg asks for a new alerts fetch
type alertRefreshMsg struct{}

// conditionsRefreshMsg asks for a new conditions fetch
type conditionsRefreshMsg struct{}

// pageTickMsg advances the alert pager
type pageTickMsg struct{}

// rotateTickMsg advances the conditions city
type rotateTickMsg struct{}

// resumeMsg ends a manual pause, if token is still current
type resumeMsg struct {
	token rotation.ResumeToken
}

// alertsFetchedMsg is sent when the alert source returns. The source never
// fails, so there is no error field.
type alertsFetchedMsg struct {
	alerts []models.RawAlert
}

// conditionsFetchedMsg is sent when the conditions source returns
type conditionsFetchedMsg struct {
	conditions []models.CityConditions
}
