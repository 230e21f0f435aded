package utils

import (
	"os"
	"time"

	"github.com/dasgmd/learn-gita/config"
	"github.com/dasgmd/learn-gita/models"
)

// StartUploadCleaner launches a background goroutine that periodically deletes
// expired uploaded files recorded in the database. It is best-effort: a failed
// file removal still drops the row so the table cannot grow unbounded.
func StartUploadCleaner(interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	go func() {
		for {
			// sleep first so boot is not racing the database
			time.Sleep(interval)
			db := config.DB()
			if db == nil {
				continue
			}
			var items []models.UploadedFile
			if err := db.Where("expire_at <= ?", time.Now()).Limit(100).Find(&items).Error; err != nil {
				if Sugar != nil {
					Sugar.Warnf("upload cleaner query failed: %v", err)
				}
				continue
			}
			for _, it := range items {
				if it.FilePath != "" {
					_ = os.Remove(it.FilePath)
				}
				if err := db.Delete(&models.UploadedFile{}, it.ID).Error; err != nil {
					if Sugar != nil {
						Sugar.Warnf("upload cleaner delete row failed: %v", err)
					}
				}
			}
		}
	}()
}
