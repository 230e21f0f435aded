package models

import "time"

// Enrollment links a user to a course they joined. One row per (user, course).
type Enrollment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;index:idx_enroll_user_course,unique;not null" json:"user_id"`
	CourseID  uint      `gorm:"index:idx_enroll_user_course,unique;not null" json:"course_id"`
	CreatedAt time.Time `json:"created_at"`
	Course    Course    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"course,omitempty"`
}
