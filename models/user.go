package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a devotee account. Passwords are stored as bcrypt hashes only.
// CurrentStreak, LongestStreak and LastSadhnaDate are a denormalized cache of
// the streak engine's output: they are overwritten from a full recomputation
// on every submission and never incremented in place.
type User struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Username       string         `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email          string         `gorm:"size:255;index" json:"email"`
	PasswordHash   string         `gorm:"size:255" json:"-"`
	Provider       string         `gorm:"size:32" json:"provider"`
	ProviderID     string         `gorm:"size:255" json:"provider_id"`
	RegisterIP     string         `gorm:"size:45" json:"register_ip"`
	AvatarURL      string         `gorm:"size:512" json:"avatar_url"`
	Role           string         `gorm:"size:16;default:'user'" json:"role"`
	PhoneNumber    string         `gorm:"size:32" json:"phone_number"`
	City           string         `gorm:"size:128" json:"city"`
	Gender         string         `gorm:"size:16" json:"gender"`
	DateOfBirth    string         `gorm:"size:10" json:"date_of_birth"`
	CurrentStreak  int            `gorm:"default:0" json:"current_streak"`
	LongestStreak  int            `gorm:"default:0" json:"longest_streak"`
	LastSadhnaDate string         `gorm:"size:10" json:"last_sadhna_date"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	SadhnaLogs     []SadhnaLog    `json:"-"`
	Enrollments    []Enrollment   `json:"-"`
}

// BeforeCreate hook ensures timestamps are set even when not provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	return nil
}

// BeforeUpdate ensures the UpdatedAt timestamp is refreshed.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}
