package controllers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dasgmd/learn-gita/config"
	"github.com/dasgmd/learn-gita/middleware"
	"github.com/dasgmd/learn-gita/models"
	"github.com/dasgmd/learn-gita/streak"
	"github.com/dasgmd/learn-gita/utils"
)

// SadhnaController handles daily practice submissions and streak queries.
//
// The streak is never incremented in place: every submission reloads the full
// history and recomputes from scratch, so backfilled or corrected entries
// converge to the right answer on the next write.
type SadhnaController struct {
	db *gorm.DB
}

// NewSadhnaController creates a SadhnaController.
func NewSadhnaController(db *gorm.DB) *SadhnaController {
	return &SadhnaController{db: db}
}

// Submit records today's (or a backfilled day's) practice. Resubmitting the
// same day overwrites the answers but keeps the original submission time, so
// punctuality cannot be gamed after the fact.
func (s *SadhnaController) Submit(ctx *gin.Context) {
	var req struct {
		EntryDate  string                 `json:"entry_date"`
		TotalScore int                    `json:"total_score"`
		Answers    map[string]interface{} `json:"answers"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40060, "invalid request payload")
		return
	}

	entryDate := strings.TrimSpace(req.EntryDate)
	today := time.Now().In(time.Local).Format("2006-01-02")
	if entryDate == "" {
		entryDate = today
	}
	if _, err := time.ParseInLocation("2006-01-02", entryDate, time.Local); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40061, "entry_date must be YYYY-MM-DD")
		return
	}
	if entryDate > today {
		utils.Error(ctx, http.StatusBadRequest, 40062, "entry_date cannot be in the future")
		return
	}

	if req.TotalScore < 0 {
		utils.Error(ctx, http.StatusBadRequest, 40063, "total_score cannot be negative")
		return
	}

	answersJSON := "{}"
	if len(req.Answers) > 0 {
		b, err := json.Marshal(req.Answers)
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40064, "answers not serializable")
			return
		}
		answersJSON = string(b)
	}

	userID := middleware.CurrentUserID(ctx)

	// Upsert on (user_id, entry_date). created_at stays untouched on conflict
	// because punctuality is judged on the first submission time.
	log := models.SadhnaLog{
		UserID:     userID,
		EntryDate:  entryDate,
		TotalScore: req.TotalScore,
		Answers:    answersJSON,
	}
	if err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "entry_date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_score": req.TotalScore,
			"answers":     answersJSON,
			"updated_at":  time.Now(),
		}),
	}).Create(&log).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50060, "failed to save sadhna entry")
		return
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50061, "failed to load user")
		return
	}

	oldStreak := user.CurrentStreak
	newStreak, err := s.recomputeStreak(userID)
	if err != nil {
		utils.Sugar.Errorf("streak recompute failed for user %d: %v", userID, err)
		utils.Error(ctx, http.StatusInternalServerError, 50062, "failed to compute streak")
		return
	}

	ladder := config.Get().Levels
	levelUp := streak.CheckLevelUp(oldStreak, newStreak, ladder)

	updates := map[string]interface{}{
		"current_streak": newStreak,
	}
	if newStreak > user.LongestStreak {
		updates["longest_streak"] = newStreak
	}
	if entryDate > user.LastSadhnaDate {
		updates["last_sadhna_date"] = entryDate
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50063, "failed to update streak cache")
		return
	}
	utils.InvalidateByPrefix("cache:user:public:")

	resp := gin.H{
		"entry":  log,
		"streak": newStreak,
		"level":  streak.CurrentLevelInfo(newStreak, ladder),
	}
	if levelUp != nil {
		resp["level_up"] = levelUp
	}
	utils.Success(ctx, resp)
}

// Today returns the current day's entry, if any.
func (s *SadhnaController) Today(ctx *gin.Context) {
	today := time.Now().In(time.Local).Format("2006-01-02")
	var log models.SadhnaLog
	err := s.db.Where("user_id = ? AND entry_date = ?", middleware.CurrentUserID(ctx), today).First(&log).Error
	if err != nil {
		utils.Success(ctx, gin.H{"submitted": false, "entry_date": today})
		return
	}
	utils.Success(ctx, gin.H{"submitted": true, "entry_date": today, "entry": log})
}

// History returns the user's entries, optionally filtered to one month
// (?month=YYYY-MM), newest first.
func (s *SadhnaController) History(ctx *gin.Context) {
	q := s.db.Where("user_id = ?", middleware.CurrentUserID(ctx))
	if month := strings.TrimSpace(ctx.Query("month")); month != "" {
		if _, err := time.Parse("2006-01", month); err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40065, "month must be YYYY-MM")
			return
		}
		q = q.Where("entry_date LIKE ?", month+"-%")
	}
	var logs []models.SadhnaLog
	if err := q.Order("entry_date DESC").Limit(366).Find(&logs).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50064, "failed to load history")
		return
	}
	utils.Success(ctx, gin.H{"items": logs, "count": len(logs)})
}

// Streak recomputes the live streak and returns it with ladder placement.
// The stored cache is refreshed when it drifted (e.g. a day passed with no
// submission since the last write).
func (s *SadhnaController) Streak(ctx *gin.Context) {
	userID := middleware.CurrentUserID(ctx)

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40401, "user not found")
		return
	}

	current, err := s.recomputeStreak(userID)
	if err != nil {
		utils.Sugar.Errorf("streak recompute failed for user %d: %v", userID, err)
		utils.Error(ctx, http.StatusInternalServerError, 50062, "failed to compute streak")
		return
	}

	if current != user.CurrentStreak {
		_ = s.db.Model(&user).Update("current_streak", current).Error
	}

	ladder := config.Get().Levels
	utils.Success(ctx, gin.H{
		"streak":           current,
		"longest_streak":   max(user.LongestStreak, current),
		"last_sadhna_date": user.LastSadhnaDate,
		"level":            streak.CurrentLevelInfo(current, ladder),
	})
}

// Levels exposes the configured ladder so the frontend can render the full
// progression path.
func (s *SadhnaController) Levels(ctx *gin.Context) {
	utils.Success(ctx, gin.H{"levels": config.Get().Levels})
}

// recomputeStreak loads the user's full history and runs the streak engine.
func (s *SadhnaController) recomputeStreak(userID uint) (int, error) {
	var logs []models.SadhnaLog
	if err := s.db.Select("entry_date", "created_at").
		Where("user_id = ?", userID).
		Order("entry_date ASC").
		Find(&logs).Error; err != nil {
		return 0, err
	}

	records := make([]streak.Record, 0, len(logs))
	for _, l := range logs {
		records = append(records, streak.Record{
			EntryDate:   l.EntryDate,
			SubmittedAt: l.CreatedAt.Format(time.RFC3339),
		})
	}
	return streak.CalculateStreak(records)
}
