package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dasgmd/learn-gita/middleware"
	"github.com/dasgmd/learn-gita/models"
	"github.com/dasgmd/learn-gita/utils"
)

// FestivalController serves the festival calendar and seva task completions.
type FestivalController struct {
	db *gorm.DB
}

// NewFestivalController creates a FestivalController.
func NewFestivalController(db *gorm.DB) *FestivalController {
	return &FestivalController{db: db}
}

// Upcoming lists festivals from today onward, soonest first. Cached because
// the calendar only changes when an admin edits it.
func (f *FestivalController) Upcoming(ctx *gin.Context) {
	today := time.Now().In(time.Local).Format("2006-01-02")
	cacheKey := "cache:festivals:upcoming:" + today
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var festivals []models.Festival
	if err := f.db.Preload("Tasks").Where("date >= ?", today).Order("date ASC").Limit(50).Find(&festivals).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50080, "failed to load festivals")
		return
	}

	payload := gin.H{"items": festivals, "count": len(festivals)}
	utils.CacheSetJSON(cacheKey, utils.JSONResponse{Code: 0, Message: "success", Data: payload}, time.Hour)
	utils.Success(ctx, payload)
}

// Get returns one festival with its tasks.
func (f *FestivalController) Get(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		utils.Error(ctx, http.StatusBadRequest, 40080, "invalid festival id")
		return
	}
	var festival models.Festival
	if err := f.db.Preload("Tasks").First(&festival, id).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40480, "festival not found")
		return
	}
	utils.Success(ctx, festival)
}

// CompleteTask records the user finishing one seva task. Each task counts
// once per user.
func (f *FestivalController) CompleteTask(ctx *gin.Context) {
	taskID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || taskID <= 0 {
		utils.Error(ctx, http.StatusBadRequest, 40081, "invalid task id")
		return
	}

	var task models.FestivalTask
	if err := f.db.First(&task, taskID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40481, "task not found")
		return
	}

	userID := middleware.CurrentUserID(ctx)
	completion := models.FestivalCompletion{UserID: userID, TaskID: uint(taskID)}
	if err := f.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&completion).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50081, "failed to record completion")
		return
	}

	utils.Success(ctx, gin.H{
		"task_id":      taskID,
		"festival_id":  task.FestivalID,
		"point_value":  task.PointValue,
		"total_points": f.totalPoints(userID),
	})
}

// MyCompletions lists the user's completed tasks and their seva point total.
func (f *FestivalController) MyCompletions(ctx *gin.Context) {
	userID := middleware.CurrentUserID(ctx)

	var completions []models.FestivalCompletion
	if err := f.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&completions).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50082, "failed to load completions")
		return
	}

	taskIDs := make([]uint, 0, len(completions))
	for _, c := range completions {
		taskIDs = append(taskIDs, c.TaskID)
	}

	var tasks []models.FestivalTask
	if ids := utils.UniqueUint(taskIDs); len(ids) > 0 {
		_ = f.db.Where("id IN ?", ids).Find(&tasks).Error
	}

	utils.Success(ctx, gin.H{
		"completions":  completions,
		"tasks":        tasks,
		"total_points": f.totalPoints(userID),
	})
}

func (f *FestivalController) totalPoints(userID uint) int64 {
	var total int64
	row := f.db.Model(&models.FestivalCompletion{}).
		Joins("JOIN festival_tasks ON festival_tasks.id = festival_completions.task_id").
		Where("festival_completions.user_id = ?", userID).
		Select("COALESCE(SUM(festival_tasks.point_value), 0)").
		Row()
	_ = row.Scan(&total)
	return total
}
