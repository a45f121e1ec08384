package noaa

import (
	"context"
	"time"

	"github.com/ngmaloney/wx-dashboard/internal/models"
)

// NOAAAlertClient implements AlertClient using the NWS alerts feed
type NOAAAlertClient struct {
	httpClient
	alertsURL string
}

// NewAlertClient creates a new alert client for alertsURL
// (https://api.weather.gov/alerts/active when empty)
func NewAlertClient(alertsURL string, opts ...Option) *NOAAAlertClient {
	c := &NOAAAlertClient{httpClient: newHTTPClient(opts...), alertsURL: alertsURL}
	if c.alertsURL == "" {
		c.alertsURL = c.baseURL + "/alerts/active"
	}
	return c
}

// GetActiveAlerts retrieves every active alert. No query parameters are sent;
// region filtering happens client side.
func (c *NOAAAlertClient) GetActiveAlerts(ctx context.Context) (*models.AlertData, error) {
	var alertResp alertResponse
	if err := c.getJSON(ctx, c.alertsURL, &alertResp); err != nil {
		return nil, err
	}

	alertData := &models.AlertData{
		Alerts:    make([]models.RawAlert, 0, len(alertResp.Features)),
		UpdatedAt: time.Now(),
	}

	for _, feature := range alertResp.Features {
		props := feature.Properties
		id := props.ID
		if id == "" {
			id = feature.ID
		}

		alertData.Alerts = append(alertData.Alerts, models.RawAlert{
			ID:         id,
			Event:      props.Event,
			SenderName: props.SenderName,
			Headline:   props.Headline,
			Effective:  props.Effective,
			Expires:    props.Expires,
			AreaDesc:   props.AreaDesc,
			Severity:   models.ParseSeverity(props.Severity),
		})
	}

	return alertData, nil
}

// Internal types for NWS alert API responses. Null JSON values decode to "".

type alertResponse struct {
	Features []struct {
		ID         string `json:"id"`
		Properties struct {
			ID         string `json:"id"`
			Event      string `json:"event"`
			SenderName string `json:"senderName"`
			Headline   string `json:"headline"`
			Severity   string `json:"severity"`
			Effective  string `json:"effective"`
			Expires    string `json:"expires"`
			AreaDesc   string `json:"areaDesc"`
		} `json:"properties"`
	} `json:"features"`
}
