package scheduler

import (
	"fmt"
	"log"

	"findabode-backend/internal/config"
	"findabode-backend/internal/featured"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the daily featured reconciliation pass
type Scheduler struct {
	cron      *cron.Cron
	featured  *featured.Service
	config    *config.Config
	isRunning bool
}

// NewScheduler creates a new scheduler
func NewScheduler(svc *featured.Service, cfg *config.Config) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		featured: svc,
		config:   cfg,
	}
}

// Start registers the daily job and starts the cron loop
func (s *Scheduler) Start() error {
	if !s.config.Featured.DailyRunEnabled {
		log.Println("Scheduler: Daily reconciliation is disabled in configuration")
		return nil
	}

	cronSpec := parseDailyRunTime(s.config.Featured.DailyRunTime)

	_, err := s.cron.AddFunc(cronSpec, func() {
		log.Println("Scheduler: Starting daily featured reconciliation...")
		if _, err := s.featured.Reconcile(); err != nil {
			log.Printf("Scheduler: Daily reconciliation failed: %v", err)
		} else {
			log.Println("Scheduler: Daily reconciliation completed successfully")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.isRunning = true
	log.Printf("Scheduler: Started with daily run at %s (cron: %s)", s.config.Featured.DailyRunTime, cronSpec)

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	if s.isRunning {
		s.cron.Stop()
		s.isRunning = false
		log.Println("Scheduler: Stopped")
	}
}

// RunNow immediately executes the reconciliation pass (for manual trigger)
func (s *Scheduler) RunNow() (featured.ReconcileResult, error) {
	log.Println("Scheduler: Manual trigger - starting reconciliation pass...")
	return s.featured.Reconcile()
}

// parseDailyRunTime converts HH:MM format to a cron specification.
// Example: "02:00" -> "0 2 * * *" (run at 2:00 AM every day)
func parseDailyRunTime(timeStr string) string {
	var hour, minute int
	n, _ := fmt.Sscanf(timeStr, "%d:%d", &hour, &minute)
	if n == 2 && hour >= 0 && hour < 24 && minute >= 0 && minute < 60 {
		return fmt.Sprintf("%d %d * * *", minute, hour)
	}

	log.Printf("Scheduler: Failed to parse time '%s', using default 02:00", timeStr)
	return "0 2 * * *"
}
