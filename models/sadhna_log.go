package models

import "time"

// SadhnaLog stores one daily practice submission per user per day.
// EntryDate is the day the record is about; CreatedAt is when it was actually
// saved, which is what punctuality is judged on. The unique index plus an
// ON CONFLICT upsert in the controller enforce the one-record-per-day
// invariant, so a resubmission replaces the same row instead of duplicating.
type SadhnaLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index;index:idx_sadhna_user_date,unique;not null" json:"user_id"`
	EntryDate  string    `gorm:"size:10;index:idx_sadhna_user_date,unique;not null" json:"entry_date"`
	TotalScore int       `gorm:"not null;default:0" json:"total_score"`
	Answers    string    `gorm:"type:text" json:"answers"` // JSON object of practice items
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
