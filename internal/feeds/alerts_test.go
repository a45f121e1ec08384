package feeds

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngmaloney/wx-dashboard/internal/models"
	"github.com/ngmaloney/wx-dashboard/internal/observability"
)

type fakeAlertClient struct {
	data *models.AlertData
	err  error
}

func (f *fakeAlertClient) GetActiveAlerts(_ context.Context) (*models.AlertData, error) {
	return f.data, f.err
}

func TestAlertSource_Fetch(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC))
	metrics := observability.NewMetricsForTesting()
	client := &fakeAlertClient{data: &models.AlertData{Alerts: []models.RawAlert{
		{ID: "a", Event: "Tornado Warning"},
		{ID: "b", Event: "Flood Watch"},
	}}}

	src := NewAlertSource(client, WithClock(clock), WithMetrics(metrics))
	require.ErrorIs(t, src.CheckReadiness(context.Background()), ErrNoAlertsYet)

	got := src.Fetch(context.Background())
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)

	assert.NoError(t, src.CheckReadiness(context.Background()))
	assert.True(t, src.LastSuccess().Equal(clock.Now()))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.FetchRequests.WithLabelValues("alerts", "success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.RawAlerts))
}

func TestAlertSource_FetchFailureIsEmpty(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	metrics := observability.NewMetricsForTesting()
	client := &fakeAlertClient{err: errors.New("connection refused")}

	src := NewAlertSource(client, WithLogger(logger), WithMetrics(metrics))

	got := src.Fetch(context.Background())
	require.NotNil(t, got)
	assert.Empty(t, got)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "alerts", hook.LastEntry().Data["feed"])

	assert.ErrorIs(t, src.CheckReadiness(context.Background()), ErrNoAlertsYet)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.FetchRequests.WithLabelValues("alerts", "error")))
}

func TestAlertSource_NilDataIsEmpty(t *testing.T) {
	src := NewAlertSource(&fakeAlertClient{})

	got := src.Fetch(context.Background())
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAlertSource_FailureKeepsLastSuccess(t *testing.T) {
	clock := clockwork.NewFakeClock()
	client := &fakeAlertClient{data: &models.AlertData{Alerts: []models.RawAlert{{ID: "a"}}}}
	src := NewAlertSource(client, WithClock(clock))

	src.Fetch(context.Background())
	first := src.LastSuccess()

	clock.Advance(time.Minute)
	client.err = errors.New("timeout")
	assert.Empty(t, src.Fetch(context.Background()))

	assert.True(t, src.LastSuccess().Equal(first))
	assert.NoError(t, src.CheckReadiness(context.Background()))
}
