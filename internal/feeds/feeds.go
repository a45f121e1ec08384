// Package feeds adapts the NWS clients into never-failing sources for the
// dashboard. Transport and decode errors stop here: they are logged and
// counted, and callers get an empty or partial result instead.
package feeds

import (
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/ngmaloney/wx-dashboard/internal/observability"
)

// Option configures a source
type Option func(*deps)

type deps struct {
	logger  logrus.FieldLogger
	metrics *observability.Metrics
	clock   clockwork.Clock
}

func newDeps(opts []Option) deps {
	d := deps{
		logger: observability.DiscardLogger(),
		clock:  clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// WithLogger sets the logger failures are reported to
func WithLogger(l logrus.FieldLogger) Option {
	return func(d *deps) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithMetrics records fetch outcomes. Nil disables metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(d *deps) { d.metrics = m }
}

// WithClock overrides the time source
func WithClock(c clockwork.Clock) Option {
	return func(d *deps) {
		if c != nil {
			d.clock = c
		}
	}
}
