package feeds

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ngmaloney/wx-dashboard/internal/models"
	"github.com/ngmaloney/wx-dashboard/internal/noaa"
)

// ErrNoAlertsYet is reported by CheckReadiness until the first successful poll.
var ErrNoAlertsYet = errors.New("alerts feed has not been polled successfully yet")

// AlertSource wraps one call to the alerts feed
type AlertSource struct {
	client noaa.AlertClient
	deps

	mu          sync.RWMutex
	lastSuccess time.Time
}

// NewAlertSource creates an alert source over client
func NewAlertSource(client noaa.AlertClient, opts ...Option) *AlertSource {
	return &AlertSource{client: client, deps: newDeps(opts)}
}

// Fetch returns the current raw alerts. It never fails: on any transport or
// decode error it logs and returns an empty slice. There is no retry; the
// next poll is the retry.
func (s *AlertSource) Fetch(ctx context.Context) []models.RawAlert {
	start := s.clock.Now()
	data, err := s.client.GetActiveAlerts(ctx)
	s.metrics.ObserveFetch("alerts", s.clock.Since(start).Seconds(), err)

	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"feed":  "alerts",
			"error": err,
		}).Error("failed to fetch alerts")
		return []models.RawAlert{}
	}
	if data == nil || data.Alerts == nil {
		return []models.RawAlert{}
	}

	now := s.clock.Now()
	s.mu.Lock()
	s.lastSuccess = now
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.RawAlerts.Set(float64(len(data.Alerts)))
		s.metrics.LastAlertsSuccess.Set(float64(now.Unix()))
	}
	s.logger.WithFields(logrus.Fields{
		"feed":  "alerts",
		"count": len(data.Alerts),
	}).Debug("fetched alerts")

	return data.Alerts
}

// LastSuccess returns the time of the last successful fetch, zero if none
func (s *AlertSource) LastSuccess() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSuccess
}

// CheckReadiness reports ready once one poll has succeeded
func (s *AlertSource) CheckReadiness(_ context.Context) error {
	if s.LastSuccess().IsZero() {
		return ErrNoAlertsYet
	}
	return nil
}
