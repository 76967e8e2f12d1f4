package logging

import (
	"log/slog"
	"time"

	"github.com/lovemypet/backend/internal/models"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// StartCleanup schedules deletion of system_logs older than retentionDays.
// The caller stops the returned scheduler on shutdown.
func StartCleanup(db *gorm.DB, retentionDays int, schedule string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		cutoff := time.Now().AddDate(0, 0, -retentionDays)
		result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
		if result.Error != nil {
			slog.Error("log cleanup failed", "error", result.Error)
		} else if result.RowsAffected > 0 {
			slog.Info("log cleanup completed", "deleted", result.RowsAffected)
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
