package models

import "time"

// Course is a published learning track (e.g. an 18-chapter Gita journey).
type Course struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Slug        string    `gorm:"size:64;uniqueIndex;not null" json:"slug"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Level       string    `gorm:"size:32;default:'Beginner'" json:"level"` // Beginner/Intermediate/Advanced
	Duration    string    `gorm:"size:32" json:"duration"`
	ImageURL    string    `gorm:"size:512" json:"image_url"`
	Published   bool      `gorm:"default:true" json:"published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Lessons     []Lesson  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"lessons,omitempty"`
}
