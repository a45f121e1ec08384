// Package poller runs a function on a fixed interval until its context ends.
package poller

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

// PollFunc is called once per tick with the tick time
type PollFunc func(ctx context.Context, now time.Time)

// Poller calls a PollFunc immediately and then every interval
type Poller struct {
	name     string
	interval time.Duration
	poll     PollFunc
	clock    clockwork.Clock
	logger   logrus.FieldLogger
}

// New creates a poller. clock and logger may be nil.
func New(name string, interval time.Duration, poll PollFunc, clock clockwork.Clock, logger logrus.FieldLogger) *Poller {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Poller{
		name:     name,
		interval: interval,
		poll:     poll,
		clock:    clock,
		logger:   logger.WithField("poller", name),
	}
}

// Run blocks until ctx is cancelled and returns ctx.Err(). Polls never
// overlap: a slow poll delays the next tick instead of running alongside it.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.WithField("interval", p.interval).Info("poller started")
	defer p.logger.Info("poller stopped")

	p.poll(ctx, p.clock.Now())

	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.Chan():
			p.poll(ctx, now)
		}
	}
}
