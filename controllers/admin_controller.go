package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dasgmd/learn-gita/config"
	"github.com/dasgmd/learn-gita/models"
	"github.com/dasgmd/learn-gita/streak"
	"github.com/dasgmd/learn-gita/utils"
)

// AdminController manages catalog content and users. All routes behind it
// require the admin role.
type AdminController struct {
	db *gorm.DB
}

// NewAdminController creates an AdminController.
func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{db: db}
}

// ListUsers returns paginated users including register IP and streak cache.
func (a *AdminController) ListUsers(ctx *gin.Context) {
	page, pageSize := 1, 20
	if v := strings.TrimSpace(ctx.Query("page")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := strings.TrimSpace(ctx.Query("page_size")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			pageSize = n
		}
	}

	var total int64
	if err := a.db.Model(&models.User{}).Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50090, "failed to count users")
		return
	}

	var users []models.User
	if err := a.db.Order("created_at DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&users).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50091, "failed to load users")
		return
	}

	ladder := config.Get().Levels
	items := make([]gin.H, 0, len(users))
	for i := range users {
		items = append(items, gin.H{
			"user":  users[i],
			"level": streak.CurrentLevelInfo(users[i].CurrentStreak, ladder),
		})
	}

	utils.Success(ctx, gin.H{
		"items": items,
		"pagination": gin.H{
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": int((total + int64(pageSize) - 1) / int64(pageSize)),
		},
	})
}

// SetUserRole switches a user between the user and admin roles.
func (a *AdminController) SetUserRole(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		utils.Error(ctx, http.StatusBadRequest, 40095, "invalid user id")
		return
	}
	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil || (req.Role != "user" && req.Role != "admin") {
		utils.Error(ctx, http.StatusBadRequest, 40096, "role must be user or admin")
		return
	}

	res := a.db.Model(&models.User{}).Where("id = ?", id).Update("role", req.Role)
	if res.Error != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50092, "failed to update role")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(ctx, http.StatusNotFound, 40401, "user not found")
		return
	}
	utils.Success(ctx, gin.H{"id": id, "role": req.Role})
}

type courseRequest struct {
	Slug        string `json:"slug" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Level       string `json:"level"`
	Duration    string `json:"duration"`
	ImageURL    string `json:"image_url"`
	Published   *bool  `json:"published"`
}

// CreateCourse adds a course to the catalog.
func (a *AdminController) CreateCourse(ctx *gin.Context) {
	var req courseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40097, "invalid request payload")
		return
	}

	course := models.Course{
		Slug:        strings.TrimSpace(req.Slug),
		Title:       utils.StripTags(strings.TrimSpace(req.Title)),
		Description: utils.Sanitize(req.Description),
		Level:       strings.TrimSpace(req.Level),
		Duration:    strings.TrimSpace(req.Duration),
		ImageURL:    strings.TrimSpace(req.ImageURL),
		Published:   true,
	}
	if req.Published != nil {
		course.Published = *req.Published
	}
	if course.Level == "" {
		course.Level = "Beginner"
	}

	if err := a.db.Create(&course).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50093, "failed to create course")
		return
	}
	utils.CacheDelete("cache:courses:list")
	utils.Success(ctx, course)
}

// UpdateCourse edits course fields.
func (a *AdminController) UpdateCourse(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		utils.Error(ctx, http.StatusBadRequest, 40098, "invalid course id")
		return
	}
	var course models.Course
	if err := a.db.First(&course, id).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40470, "course not found")
		return
	}

	var req courseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40097, "invalid request payload")
		return
	}

	course.Slug = strings.TrimSpace(req.Slug)
	course.Title = utils.StripTags(strings.TrimSpace(req.Title))
	course.Description = utils.Sanitize(req.Description)
	if req.Level != "" {
		course.Level = strings.TrimSpace(req.Level)
	}
	course.Duration = strings.TrimSpace(req.Duration)
	course.ImageURL = strings.TrimSpace(req.ImageURL)
	if req.Published != nil {
		course.Published = *req.Published
	}

	if err := a.db.Save(&course).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50094, "failed to update course")
		return
	}
	utils.CacheDelete("cache:courses:list")
	utils.Success(ctx, course)
}

// DeleteCourse removes a course and, via constraints, its lessons.
func (a *AdminController) DeleteCourse(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		utils.Error(ctx, http.StatusBadRequest, 40098, "invalid course id")
		return
	}
	res := a.db.Delete(&models.Course{}, id)
	if res.Error != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50095, "failed to delete course")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(ctx, http.StatusNotFound, 40470, "course not found")
		return
	}
	utils.CacheDelete("cache:courses:list")
	utils.Success(ctx, gin.H{"deleted": id})
}

type lessonRequest struct {
	CourseID       uint   `json:"course_id" binding:"required"`
	Position       int    `json:"position"`
	Title          string `json:"title" binding:"required"`
	HindiTitle     string `json:"hindi_title"`
	VideoURL       string `json:"video_url"`
	ShlokaSanskrit string `json:"shloka_sanskrit"`
	ShlokaEnglish  string `json:"shloka_english"`
	ShlokaHindi    string `json:"shloka_hindi"`
	Content        string `json:"content"`
	HindiContent   string `json:"hindi_content"`
}

// CreateLesson adds a lesson to a course.
func (a *AdminController) CreateLesson(ctx *gin.Context) {
	var req lessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40099, "invalid request payload")
		return
	}

	var course models.Course
	if err := a.db.First(&course, req.CourseID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40470, "course not found")
		return
	}

	lesson := models.Lesson{
		CourseID:       req.CourseID,
		Position:       req.Position,
		Title:          utils.StripTags(strings.TrimSpace(req.Title)),
		HindiTitle:     utils.StripTags(strings.TrimSpace(req.HindiTitle)),
		VideoURL:       strings.TrimSpace(req.VideoURL),
		ShlokaSanskrit: req.ShlokaSanskrit,
		ShlokaEnglish:  req.ShlokaEnglish,
		ShlokaHindi:    req.ShlokaHindi,
		Content:        utils.Sanitize(req.Content),
		HindiContent:   utils.Sanitize(req.HindiContent),
	}
	if err := a.db.Create(&lesson).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50096, "failed to create lesson")
		return
	}
	utils.Success(ctx, lesson)
}

// UpdateLesson edits lesson fields.
func (a *AdminController) UpdateLesson(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		utils.Error(ctx, http.StatusBadRequest, 40100, "invalid lesson id")
		return
	}
	var lesson models.Lesson
	if err := a.db.First(&lesson, id).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40471, "lesson not found")
		return
	}

	var req lessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40099, "invalid request payload")
		return
	}

	lesson.Position = req.Position
	lesson.Title = utils.StripTags(strings.TrimSpace(req.Title))
	lesson.HindiTitle = utils.StripTags(strings.TrimSpace(req.HindiTitle))
	lesson.VideoURL = strings.TrimSpace(req.VideoURL)
	lesson.ShlokaSanskrit = req.ShlokaSanskrit
	lesson.ShlokaEnglish = req.ShlokaEnglish
	lesson.ShlokaHindi = req.ShlokaHindi
	lesson.Content = utils.Sanitize(req.Content)
	lesson.HindiContent = utils.Sanitize(req.HindiContent)

	if err := a.db.Save(&lesson).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50097, "failed to update lesson")
		return
	}
	utils.Success(ctx, lesson)
}

// DeleteLesson removes a lesson.
func (a *AdminController) DeleteLesson(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		utils.Error(ctx, http.StatusBadRequest, 40100, "invalid lesson id")
		return
	}
	res := a.db.Delete(&models.Lesson{}, id)
	if res.Error != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50098, "failed to delete lesson")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(ctx, http.StatusNotFound, 40471, "lesson not found")
		return
	}
	utils.Success(ctx, gin.H{"deleted": id})
}

type festivalRequest struct {
	Name         string `json:"name" binding:"required"`
	Date         string `json:"date" binding:"required"`
	Description  string `json:"description"`
	Significance string `json:"significance"`
	FastType     string `json:"fast_type"`
	Tasks        []struct {
		Description string `json:"description"`
		PointValue  int    `json:"point_value"`
	} `json:"tasks"`
}

// CreateFestival adds a festival with optional tasks in one call.
func (a *AdminController) CreateFestival(ctx *gin.Context) {
	var req festivalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40101, "invalid request payload")
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40102, "date must be YYYY-MM-DD")
		return
	}

	festival := models.Festival{
		Name:         utils.StripTags(strings.TrimSpace(req.Name)),
		Date:         req.Date,
		Description:  utils.Sanitize(req.Description),
		Significance: utils.Sanitize(req.Significance),
		FastType:     utils.StripTags(strings.TrimSpace(req.FastType)),
	}
	for _, t := range req.Tasks {
		desc := utils.StripTags(strings.TrimSpace(t.Description))
		if desc == "" {
			continue
		}
		festival.Tasks = append(festival.Tasks, models.FestivalTask{
			Description: desc,
			PointValue:  t.PointValue,
		})
	}

	if err := a.db.Create(&festival).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50099, "failed to create festival")
		return
	}
	utils.InvalidateByPrefix("cache:festivals:")
	utils.Success(ctx, festival)
}

// UpdateFestival edits festival fields (tasks are managed separately).
func (a *AdminController) UpdateFestival(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		utils.Error(ctx, http.StatusBadRequest, 40103, "invalid festival id")
		return
	}
	var festival models.Festival
	if err := a.db.First(&festival, id).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40480, "festival not found")
		return
	}

	var req festivalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40101, "invalid request payload")
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40102, "date must be YYYY-MM-DD")
		return
	}

	festival.Name = utils.StripTags(strings.TrimSpace(req.Name))
	festival.Date = req.Date
	festival.Description = utils.Sanitize(req.Description)
	festival.Significance = utils.Sanitize(req.Significance)
	festival.FastType = utils.StripTags(strings.TrimSpace(req.FastType))

	if err := a.db.Save(&festival).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50100, "failed to update festival")
		return
	}
	utils.InvalidateByPrefix("cache:festivals:")
	utils.Success(ctx, festival)
}

// DeleteFestival removes a festival and its tasks.
func (a *AdminController) DeleteFestival(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		utils.Error(ctx, http.StatusBadRequest, 40103, "invalid festival id")
		return
	}
	res := a.db.Delete(&models.Festival{}, id)
	if res.Error != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50101, "failed to delete festival")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(ctx, http.StatusNotFound, 40480, "festival not found")
		return
	}
	utils.InvalidateByPrefix("cache:festivals:")
	utils.Success(ctx, gin.H{"deleted": id})
}

type festivalTaskRequest struct {
	Description string `json:"description" binding:"required"`
	PointValue  int    `json:"point_value"`
}

// CreateFestivalTask attaches a task to an existing festival.
func (a *AdminController) CreateFestivalTask(ctx *gin.Context) {
	festivalID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || festivalID <= 0 {
		utils.Error(ctx, http.StatusBadRequest, 40103, "invalid festival id")
		return
	}
	var req festivalTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40101, "invalid request payload")
		return
	}
	desc := utils.StripTags(strings.TrimSpace(req.Description))
	if desc == "" {
		utils.Error(ctx, http.StatusBadRequest, 40104, "description must not be empty")
		return
	}

	var festival models.Festival
	if err := a.db.First(&festival, festivalID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40480, "festival not found")
		return
	}

	task := models.FestivalTask{
		FestivalID:  festival.ID,
		Description: desc,
		PointValue:  req.PointValue,
	}
	if err := a.db.Create(&task).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50102, "failed to create task")
		return
	}
	utils.InvalidateByPrefix("cache:festivals:")
	utils.Success(ctx, task)
}

// UpdateFestivalTask edits a task's description or point value.
func (a *AdminController) UpdateFestivalTask(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		utils.Error(ctx, http.StatusBadRequest, 40105, "invalid task id")
		return
	}
	var task models.FestivalTask
	if err := a.db.First(&task, id).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40481, "task not found")
		return
	}

	var req festivalTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40101, "invalid request payload")
		return
	}
	desc := utils.StripTags(strings.TrimSpace(req.Description))
	if desc == "" {
		utils.Error(ctx, http.StatusBadRequest, 40104, "description must not be empty")
		return
	}

	task.Description = desc
	task.PointValue = req.PointValue
	if err := a.db.Save(&task).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50103, "failed to update task")
		return
	}
	utils.InvalidateByPrefix("cache:festivals:")
	utils.Success(ctx, task)
}

// DeleteFestivalTask removes a task. Completions referencing it are kept for
// point history.
func (a *AdminController) DeleteFestivalTask(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		utils.Error(ctx, http.StatusBadRequest, 40105, "invalid task id")
		return
	}
	res := a.db.Delete(&models.FestivalTask{}, id)
	if res.Error != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50104, "failed to delete task")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(ctx, http.StatusNotFound, 40481, "task not found")
		return
	}
	utils.InvalidateByPrefix("cache:festivals:")
	utils.Success(ctx, gin.H{"deleted": id})
}

// GetUserProgress returns one devotee's practice summary for the admin panel:
// streak cache with level, sadhna entry count, and per-course lesson progress.
func (a *AdminController) GetUserProgress(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		utils.Error(ctx, http.StatusBadRequest, 40095, "invalid user id")
		return
	}
	var user models.User
	if err := a.db.First(&user, id).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40401, "user not found")
		return
	}

	var entryCount int64
	if err := a.db.Model(&models.SadhnaLog{}).Where("user_id = ?", user.ID).Count(&entryCount).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50105, "failed to count entries")
		return
	}

	var enrollments []models.Enrollment
	if err := a.db.Preload("Course").Where("user_id = ?", user.ID).Find(&enrollments).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50106, "failed to load enrollments")
		return
	}

	courses := make([]gin.H, 0, len(enrollments))
	for _, e := range enrollments {
		var totalLessons, doneLessons int64
		a.db.Model(&models.Lesson{}).Where("course_id = ?", e.CourseID).Count(&totalLessons)
		a.db.Model(&models.LessonCompletion{}).
			Joins("JOIN lessons ON lessons.id = lesson_completions.lesson_id").
			Where("lesson_completions.user_id = ? AND lessons.course_id = ?", user.ID, e.CourseID).
			Count(&doneLessons)
		courses = append(courses, gin.H{
			"course_id":         e.CourseID,
			"course_title":      e.Course.Title,
			"lessons_total":     totalLessons,
			"lessons_completed": doneLessons,
			"enrolled_at":       e.CreatedAt,
		})
	}

	utils.Success(ctx, gin.H{
		"user":           user,
		"level":          streak.CurrentLevelInfo(user.CurrentStreak, config.Get().Levels),
		"sadhna_entries": entryCount,
		"courses":        courses,
	})
}
