package cron

import (
	"log"
	"time"

	"github.com/gradpath/consultancy-api/model"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CronManager schedules the background maintenance jobs
type CronManager struct {
	cron          *cron.Cron
	db            *gorm.DB
	retentionDays int
}

// NewCronManager creates a new cron manager. retentionDays controls how long
// soft-deleted rows are kept before the purge job removes them for good.
func NewCronManager(db *gorm.DB, retentionDays int) *CronManager {
	c := cron.New(cron.WithSeconds())

	return &CronManager{
		cron:          c,
		db:            db,
		retentionDays: retentionDays,
	}
}

// Start registers and starts all cron jobs
func (m *CronManager) Start() error {
	log.Println("Starting cron jobs...")

	if err := m.registerJobs(); err != nil {
		return err
	}

	m.cron.Start()

	log.Println("Cron jobs started successfully")
	return nil
}

// Stop stops all cron jobs and waits for running ones to finish
func (m *CronManager) Stop() {
	log.Println("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Cron jobs stopped")
}

func (m *CronManager) registerJobs() error {
	// Daily at 03:00: purge soft-deleted rows past the retention window
	_, err := m.cron.AddFunc("0 0 3 * * *", func() {
		m.logJobStart("purge_soft_deleted")
		m.PurgeSoftDeleted()
	})
	if err != nil {
		return err
	}

	// Weekly on Sunday at 04:00: prune old cron job logs
	_, err = m.cron.AddFunc("0 0 4 * * 0", func() {
		m.logJobStart("prune_job_logs")
		m.PruneJobLogs()
	})
	return err
}

func (m *CronManager) logJobStart(jobName string) {
	entry := model.CronJobLog{
		JobName:   jobName,
		Status:    model.CronJobStarted,
		StartedAt: time.Now(),
	}
	if err := m.db.Create(&entry).Error; err != nil {
		log.Printf("[CRON] Failed to log start of %s: %v", jobName, err)
	}
}

func (m *CronManager) logJobComplete(jobName, message string) {
	now := time.Now()
	entry := model.CronJobLog{
		JobName:     jobName,
		Status:      model.CronJobCompleted,
		StartedAt:   now,
		CompletedAt: &now,
		Message:     message,
	}
	if err := m.db.Create(&entry).Error; err != nil {
		log.Printf("[CRON] Failed to log completion of %s: %v", jobName, err)
	}
}

func (m *CronManager) logJobError(jobName string, jobErr error) {
	now := time.Now()
	entry := model.CronJobLog{
		JobName:     jobName,
		Status:      model.CronJobFailed,
		StartedAt:   now,
		CompletedAt: &now,
		ErrorMsg:    jobErr.Error(),
	}
	if err := m.db.Create(&entry).Error; err != nil {
		log.Printf("[CRON] Failed to log error of %s: %v", jobName, err)
	}
	log.Printf("[CRON] %s failed: %v", jobName, jobErr)
}
