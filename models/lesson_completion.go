package models

import "time"

// LessonCompletion marks a lesson as finished by a user.
type LessonCompletion struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;index:idx_lesson_done_user,unique;not null" json:"user_id"`
	LessonID  uint      `gorm:"index:idx_lesson_done_user,unique;not null" json:"lesson_id"`
	CreatedAt time.Time `json:"created_at"`
}
