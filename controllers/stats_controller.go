package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dasgmd/learn-gita/models"
	"github.com/dasgmd/learn-gita/utils"
)

// StatsController provides aggregate community statistics for the admin
// dashboard. Individual counters fall back to zero instead of failing the
// whole endpoint.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// GetStats returns headline numbers for the community.
func (s *StatsController) GetStats(ctx *gin.Context) {
	var userCount, entriesTotal, entriesToday, activeStreaks int64
	var courseCount, enrollmentCount, dailyActive int64

	if err := s.db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		userCount = 0
	}
	if err := s.db.Model(&models.SadhnaLog{}).Count(&entriesTotal).Error; err != nil {
		entriesTotal = 0
	}

	today := time.Now().In(time.Local).Format("2006-01-02")
	if err := s.db.Model(&models.SadhnaLog{}).Where("entry_date = ?", today).Count(&entriesToday).Error; err != nil {
		entriesToday = 0
	}
	if err := s.db.Model(&models.User{}).Where("current_streak > 0").Count(&activeStreaks).Error; err != nil {
		activeStreaks = 0
	}
	if err := s.db.Model(&models.Course{}).Where("published = ?", true).Count(&courseCount).Error; err != nil {
		courseCount = 0
	}
	if err := s.db.Model(&models.Enrollment{}).Count(&enrollmentCount).Error; err != nil {
		enrollmentCount = 0
	}

	// PV-based daily active: sum of today's page views across all paths.
	// String date equality avoids timezone mismatches with the DATE column.
	if err := s.db.Model(&models.PageView{}).
		Where("date = ?", today).
		Select("COALESCE(SUM(count),0)").
		Scan(&dailyActive).Error; err != nil {
		dailyActive = 0
	}

	utils.Success(ctx, gin.H{
		"user_count":         userCount,
		"sadhna_entries":     entriesTotal,
		"entries_today":      entriesToday,
		"active_streaks":     activeStreaks,
		"course_count":       courseCount,
		"enrollment_count":   enrollmentCount,
		"daily_active_count": dailyActive,
	})
}

// GetLeaderboard ranks devotees by current streak, longest streak breaking ties.
func (s *StatsController) GetLeaderboard(ctx *gin.Context) {
	var users []models.User
	if err := s.db.Where("current_streak > 0").
		Order("current_streak DESC, longest_streak DESC").
		Limit(20).
		Find(&users).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50110, "failed to load leaderboard")
		return
	}

	items := make([]gin.H, 0, len(users))
	for i, u := range users {
		items = append(items, gin.H{
			"rank":           i + 1,
			"username":       u.Username,
			"avatar_url":     u.AvatarURL,
			"current_streak": u.CurrentStreak,
			"longest_streak": u.LongestStreak,
		})
	}
	utils.Success(ctx, gin.H{"items": items})
}
