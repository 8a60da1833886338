// Package poller runs a job on a cron schedule.
package poller

import (
	"errors"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/guillerg01/date-checker/internal/logger"
)

// Poller runs a single job on a schedule. Ticks never overlap with a
// stopped poller: Stop waits for an in-flight run to finish.
type Poller struct {
	spec string
	job  func()

	mu   sync.Mutex
	cron *cron.Cron
}

// New returns a poller that will invoke job per the cron spec. Descriptor
// schedules like "@every 4m" are accepted alongside the standard five-field
// syntax.
func New(spec string, job func()) *Poller {
	return &Poller{spec: spec, job: job}
}

// Start validates the schedule and begins ticking. Starting a running
// poller is an error.
func (p *Poller) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cron != nil {
		return errors.New("poller already started")
	}

	c := cron.New()
	if _, err := c.AddFunc(p.spec, p.job); err != nil {
		return err
	}
	c.Start()
	p.cron = c
	logger.Info("poller started", logger.Fields{"schedule": p.spec})
	return nil
}

// Stop halts the schedule and blocks until any running job returns.
// Stopping a poller that never started is a no-op.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cron == nil {
		return
	}
	ctx := p.cron.Stop()
	<-ctx.Done()
	p.cron = nil
	logger.Info("poller stopped", nil)
}

// Running reports whether the poller is currently scheduled.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cron != nil
}
