package models

import "time"

// Festival is a calendar event (Ekadashi, Janmashtami, ...) with optional
// seva tasks attached.
type Festival struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Date         string         `gorm:"size:10;index;not null" json:"date"` // YYYY-MM-DD
	Description  string         `gorm:"type:text" json:"description"`
	Significance string         `gorm:"type:text" json:"significance"`
	FastType     string         `gorm:"size:64" json:"fast_type"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	Tasks        []FestivalTask `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"tasks,omitempty"`
}
