// Package scheduler wires up the cron job that periodically triggers a full
// scrape run. Retry of failed runs is left to the next tick.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/jobsentry/jobsentry/internal/services"
)

type Scheduler struct {
	cron   *cron.Cron
	scrape *services.ScrapeService
	spec   string // e.g. "@every 6h"
}

// New creates a Scheduler that fires every intervalHours hours.
func New(scrape *services.ScrapeService, intervalHours int) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLogger(cron.DefaultLogger)),
		scrape: scrape,
		spec:   fmt.Sprintf("@every %dh", intervalHours),
	}
}

// Start registers the job and starts the cron loop, plus one immediate run so
// a fresh deployment has data without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] cron started — spec: %s", s.spec)

	go s.runOnce(ctx)
	return nil
}

// Stop shuts the scheduler down; in-flight runs finish on their own timeout.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[scheduler] cron stopped")
}

func (s *Scheduler) runOnce(ctx context.Context) {
	summary, err := s.scrape.Run(ctx, false)
	if err != nil {
		log.Printf("[scheduler] scrape run failed: %v", err)
		return
	}
	log.Printf("[scheduler] scrape run finished — companies=%d new_jobs=%d notifications=%d",
		summary.CompaniesProcessed, summary.NewJobsFound, summary.NotificationsSent)
}
