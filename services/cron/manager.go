package cron

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/studyshelf/catalog-api/services"
)

// CronManager manages all scheduled cron jobs
type CronManager struct {
	cron     *cron.Cron
	stats    *services.StatsService
	schedule string
}

// NewCronManager creates a new cron manager. The schedule controls the
// statistics refresh backstop; empty falls back to every 5 minutes.
func NewCronManager(stats *services.StatsService, schedule string) *CronManager {
	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds())

	if schedule == "" {
		schedule = "0 */5 * * * *"
	}

	return &CronManager{
		cron:     c,
		stats:    stats,
		schedule: schedule,
	}
}

// Start starts all cron jobs
func (m *CronManager) Start() error {
	log.Println("Starting cron jobs...")

	if err := m.registerJobs(); err != nil {
		return err
	}

	m.cron.Start()

	log.Println("Cron jobs started successfully")
	return nil
}

// Stop stops all cron jobs
func (m *CronManager) Stop() {
	log.Println("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Cron jobs stopped")
}

// registerJobs registers all cron jobs with their schedules
func (m *CronManager) registerJobs() error {
	// Refresh aggregate statistics on the configured schedule. Mutations
	// already trigger a recompute; this is only a freshness backstop.
	_, err := m.cron.AddFunc(m.schedule, func() {
		m.logJobStart("refresh_statistics")
		m.RefreshStatistics()
	})
	if err != nil {
		return err
	}

	log.Println("All cron jobs registered successfully")
	return nil
}

// RefreshStatistics runs one aggregation pass over the live collections.
func (m *CronManager) RefreshStatistics() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stats, err := m.stats.Recompute(ctx)
	if err != nil {
		log.Printf("[CRON] Error in job: refresh_statistics - %v", err)
		return
	}

	log.Printf("[CRON] Completed job: refresh_statistics - %d subjects, %d files, %d users",
		stats.TotalSubjects, stats.TotalFiles, stats.TotalUsers)
}

// logJobStart logs the start of a cron job
func (m *CronManager) logJobStart(jobName string) {
	log.Printf("[CRON] Starting job: %s at %s", jobName, time.Now().Format(time.RFC3339))
}
