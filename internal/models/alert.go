package models

import "time"

// AlertSeverity represents the severity level reported by the alert feed
type AlertSeverity string

const (
	SeverityExtreme  AlertSeverity = "Extreme"
	SeveritySevere   AlertSeverity = "Severe"
	SeverityModerate AlertSeverity = "Moderate"
	SeverityMinor    AlertSeverity = "Minor"
	SeverityUnknown  AlertSeverity = "Unknown"
)

// RawAlert is a single alert record as received from the alerts feed.
// Timestamps are kept as the feed sent them; parsing happens during classification
// so a malformed value never drops the record on the floor.
type RawAlert struct {
	ID         string
	Event      string // e.g., "Tornado Warning", "Heat Advisory"
	SenderName string // issuing office, e.g., "NWS Peachtree City GA"
	Headline   string
	Effective  string // ISO-8601
	Expires    string // ISO-8601
	AreaDesc   string // "Fulton, GA; DeKalb, GA; Cobb, GA"
	Severity   AlertSeverity
}

// AlertData contains one poll cycle's worth of raw alerts
type AlertData struct {
	Alerts    []RawAlert
	UpdatedAt time.Time
}

// EventOrUnknown returns the event name, or "Unknown" when the feed sent none
func (a RawAlert) EventOrUnknown() string {
	if a.Event == "" {
		return "Unknown"
	}
	return a.Event
}

// ParseSeverity maps the feed's severity string onto AlertSeverity
func ParseSeverity(s string) AlertSeverity {
	switch s {
	case "Extreme":
		return SeverityExtreme
	case "Severe":
		return SeveritySevere
	case "Moderate":
		return SeverityModerate
	case "Minor":
		return SeverityMinor
	default:
		return SeverityUnknown
	}
}
