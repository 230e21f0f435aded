package models

import "time"

// FestivalCompletion records a user finishing one festival task.
type FestivalCompletion struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;index:idx_fest_done_user_task,unique;not null" json:"user_id"`
	TaskID    uint      `gorm:"index:idx_fest_done_user_task,unique;not null" json:"task_id"`
	CreatedAt time.Time `json:"completed_at"`
}
