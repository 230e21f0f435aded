package models

import "time"

// Lesson is a single unit within a course: a video plus shloka and prose in
// English and Hindi.
type Lesson struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	CourseID         uint      `gorm:"index;not null" json:"course_id"`
	Position         int       `gorm:"not null;default:0" json:"position"`
	Title            string    `gorm:"size:255;not null" json:"title"`
	HindiTitle       string    `gorm:"size:255" json:"hindi_title"`
	VideoURL         string    `gorm:"size:512" json:"video_url"`
	ShlokaSanskrit   string    `gorm:"type:text" json:"shloka_sanskrit"`
	ShlokaEnglish    string    `gorm:"type:text" json:"shloka_english"`
	ShlokaHindi      string    `gorm:"type:text" json:"shloka_hindi"`
	Content          string    `gorm:"type:text" json:"content"`
	HindiContent     string    `gorm:"type:text" json:"hindi_content"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
