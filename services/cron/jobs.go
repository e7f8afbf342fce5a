package cron

import (
	"fmt"
	"time"

	"github.com/gradpath/consultancy-api/model"
)

// PurgeSoftDeleted permanently removes rows that were soft-deleted more than
// the retention window ago. Runs daily.
func (m *CronManager) PurgeSoftDeleted() {
	jobName := "purge_soft_deleted"
	cutoff := time.Now().AddDate(0, 0, -m.retentionDays)

	purged := int64(0)
	for _, target := range []interface{}{
		&model.Course{},
		&model.Consultancy{},
		&model.User{},
	} {
		res := m.db.Unscoped().
			Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
			Delete(target)
		if res.Error != nil {
			m.logJobError(jobName, fmt.Errorf("failed to purge rows: %w", res.Error))
			return
		}
		purged += res.RowsAffected
	}

	m.logJobComplete(jobName, fmt.Sprintf("Purged %d rows soft-deleted before %s", purged, cutoff.Format(time.RFC3339)))
}

// PruneJobLogs removes cron job log entries older than 90 days. Runs weekly.
func (m *CronManager) PruneJobLogs() {
	jobName := "prune_job_logs"
	cutoff := time.Now().AddDate(0, 0, -90)

	res := m.db.Where("created_at < ?", cutoff).Delete(&model.CronJobLog{})
	if res.Error != nil {
		m.logJobError(jobName, fmt.Errorf("failed to prune job logs: %w", res.Error))
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Pruned %d log entries", res.RowsAffected))
}
