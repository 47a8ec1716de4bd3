// Package scheduler runs the periodic maintenance jobs.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// JobSweeper unpublishes listings older than a cutoff.
type JobSweeper interface {
	SweepExpiredJobs(ctx context.Context, maxAgeDays int) (int64, error)
}

// Scheduler owns the cron runner for background maintenance.
type Scheduler struct {
	cron    *cron.Cron
	sweeper JobSweeper
	maxDays int
}

// New creates a scheduler that unpublishes listings older than maxDays on
// the given cron schedule.
func New(sweeper JobSweeper, schedule string, maxDays int) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(),
		sweeper: sweeper,
		maxDays: maxDays,
	}

	if _, err := s.cron.AddFunc(schedule, s.runSweep); err != nil {
		return nil, err
	}
	return s, nil
}

// Start begins running scheduled jobs in the background.
func (s *Scheduler) Start() {
	log.Printf("[scheduler] sweeping listings older than %d days", s.maxDays)
	s.cron.Start()
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	n, err := s.sweeper.SweepExpiredJobs(ctx, s.maxDays)
	if err != nil {
		log.Printf("[scheduler] sweep failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("[scheduler] unpublished %d expired listings", n)
	}
}
