package models

import "time"

// FestivalTask is one seva item a devotee can complete for a festival.
type FestivalTask struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FestivalID  uint      `gorm:"index;not null" json:"festival_id"`
	Description string    `gorm:"size:512;not null" json:"description"`
	PointValue  int       `gorm:"not null;default:0" json:"point_value"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
