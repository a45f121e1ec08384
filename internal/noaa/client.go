package noaa

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ngmaloney/wx-dashboard/internal/models"
)

const (
	defaultBaseURL   = "https://api.weather.gov"
	defaultUserAgent = "WxDashboard/1.0 (github.com/ngmaloney/wx-dashboard)"
	defaultTimeout   = 30 * time.Second
)

// AlertClient defines the interface for fetching active NWS alerts
type AlertClient interface {
	// GetActiveAlerts retrieves every active alert from the alerts feed
	GetActiveAlerts(ctx context.Context) (*models.AlertData, error)
}

// ForecastClient defines the interface for fetching gridpoint forecasts
type ForecastClient interface {
	// GetHourlyForecast retrieves the hourly forecast periods for a grid location
	GetHourlyForecast(ctx context.Context, loc models.Location) (*HourlyForecast, error)

	// GetGridpointValues retrieves the raw gridpoint time series for a grid location
	GetGridpointValues(ctx context.Context, loc models.Location) (*GridpointValues, error)
}

// Option configures a NOAA client
type Option func(*httpClient)

// WithBaseURL overrides the API root (used for gridpoint URLs)
func WithBaseURL(u string) Option {
	return func(c *httpClient) { c.baseURL = u }
}

// WithUserAgent sets the User-Agent header NWS asks every caller to send
func WithUserAgent(ua string) Option {
	return func(c *httpClient) { c.userAgent = ua }
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) { c.httpClient.Timeout = d }
}

// httpClient is the shared transport for the alert and forecast clients
type httpClient struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

func newHTTPClient(opts ...Option) httpClient {
	c := httpClient{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// getJSON issues a GET and decodes a 200 response into v
func (c *httpClient) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// StatusError is returned when the API answers with a non-200 status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("API returned status %d: %s", e.StatusCode, e.Body)
}
