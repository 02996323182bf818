package cronjob

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/launchpad-labs/project-starter/internal/logging"
)

// Sweepable drops expired entries and reports how many it removed.
type Sweepable interface {
	Sweep(now time.Time) int
}

// Prunable drops entries idle for longer than idle.
type Prunable interface {
	Prune(idle time.Duration) int
}

type Scheduler struct {
	c *cron.Cron
}

func NewScheduler() *Scheduler {
	return &Scheduler{c: cron.New()}
}

// AddSweep runs s.Sweep on spec (e.g. "@every 1m").
func (s *Scheduler) AddSweep(name, spec string, target Sweepable) error {
	return s.add(name, spec, func() int { return target.Sweep(time.Now()) })
}

// AddPrune runs p.Prune(idle) on spec.
func (s *Scheduler) AddPrune(name, spec string, target Prunable, idle time.Duration) error {
	return s.add(name, spec, func() int { return target.Prune(idle) })
}

func (s *Scheduler) add(name, spec string, job func() int) error {
	_, err := s.c.AddFunc(spec, func() {
		if n := job(); n > 0 {
			logging.NewLogger(context.Background()).LogInfof("cron", "%s removed %d entries", name, n)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %s: %w", name, err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.c.Start()
	logging.L().Info("cron scheduler started")
}

// Stop halts scheduling and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.c.Stop().Done()
}
