package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "wx_dashboard"

// Metrics holds the Prometheus counters and gauges for the feed adapters.
type Metrics struct {
	// Feed fetch metrics.
	FetchRequests *prometheus.CounterVec   // labels: feed={alerts,forecast,gridpoint}, outcome={success,error}
	FetchDuration *prometheus.HistogramVec // labels: feed

	// Alert state after classification.
	RawAlerts         prometheus.Gauge
	ActiveAlerts      prometheus.Gauge
	AlertsByCategory  *prometheus.GaugeVec // labels: category
	ConditionsCities  prometheus.Gauge
	LocationsSkipped  *prometheus.CounterVec // labels: reason={error,no_current_period}
	LastAlertsSuccess prometheus.Gauge
}

func newMetrics(help bool) *Metrics {
	h := func(s string) string {
		if help {
			return s
		}
		return ""
	}
	return &Metrics{
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_requests_total",
			Help:      h("Upstream feed requests by feed and outcome."),
		}, []string{"feed", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      h("Upstream feed request duration in seconds."),
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"feed"}),
		RawAlerts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "raw_alerts",
			Help:      h("Alerts returned by the last successful alerts poll."),
		}),
		ActiveAlerts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_alerts",
			Help:      h("Alerts in the monitored region that are active or upcoming."),
		}),
		AlertsByCategory: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "alerts_by_category",
			Help:      h("Active alerts per category. Categories overlap."),
		}, []string{"category"}),
		ConditionsCities: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "conditions_cities",
			Help:      h("Locations with usable conditions after the last conditions poll."),
		}),
		LocationsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conditions_locations_skipped_total",
			Help:      h("Locations dropped from a conditions poll by reason."),
		}, []string{"reason"}),
		LastAlertsSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_alerts_success_timestamp_seconds",
			Help:      h("Unix time of the last successful alerts poll."),
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.FetchRequests,
		m.FetchDuration,
		m.RawAlerts,
		m.ActiveAlerts,
		m.AlertsByCategory,
		m.ConditionsCities,
		m.LocationsSkipped,
		m.LastAlertsSuccess,
	}
}

// NewMetrics creates and registers all dashboard metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics(true)
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	m := newMetrics(false)
	prometheus.NewRegistry().MustRegister(m.collectors()...)
	return m
}

// ObserveFetch records one upstream request.
func (m *Metrics) ObserveFetch(feed string, seconds float64, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.FetchRequests.WithLabelValues(feed, outcome).Inc()
	m.FetchDuration.WithLabelValues(feed).Observe(seconds)
}

// SetCategoryCounts replaces the per-category gauge values.
func (m *Metrics) SetCategoryCounts(active int, counts map[string]int) {
	if m == nil {
		return
	}
	m.ActiveAlerts.Set(float64(active))
	for category, n := range counts {
		m.AlertsByCategory.WithLabelValues(category).Set(float64(n))
	}
}
