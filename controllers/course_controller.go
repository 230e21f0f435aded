package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dasgmd/learn-gita/middleware"
	"github.com/dasgmd/learn-gita/models"
	"github.com/dasgmd/learn-gita/utils"
)

// CourseController serves the course catalog, enrollment and lesson progress.
type CourseController struct {
	db *gorm.DB
}

// NewCourseController creates a CourseController.
func NewCourseController(db *gorm.DB) *CourseController {
	return &CourseController{db: db}
}

// List returns all published courses. The catalog changes rarely so the
// response is cached for an hour; admin writes invalidate it.
func (c *CourseController) List(ctx *gin.Context) {
	const cacheKey = "cache:courses:list"
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var courses []models.Course
	if err := c.db.Where("published = ?", true).Order("id ASC").Find(&courses).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50070, "failed to load courses")
		return
	}

	payload := gin.H{"items": courses, "count": len(courses)}
	utils.CacheSetJSON(cacheKey, utils.JSONResponse{Code: 0, Message: "success", Data: payload}, time.Hour)
	utils.Success(ctx, payload)
}

// Get returns one course with its lessons ordered by position.
func (c *CourseController) Get(ctx *gin.Context) {
	slug := strings.TrimSpace(ctx.Param("slug"))
	var course models.Course
	err := c.db.Preload("Lessons", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("slug = ? AND published = ?", slug, true).First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40470, "course not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50071, "failed to load course")
		return
	}
	utils.Success(ctx, course)
}

// Enroll joins the authenticated user to a course. Re-enrolling is a no-op
// thanks to the unique (user, course) index.
func (c *CourseController) Enroll(ctx *gin.Context) {
	courseID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || courseID <= 0 {
		utils.Error(ctx, http.StatusBadRequest, 40070, "invalid course id")
		return
	}

	var course models.Course
	if err := c.db.Where("id = ? AND published = ?", courseID, true).First(&course).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40470, "course not found")
		return
	}

	enrollment := models.Enrollment{
		UserID:   middleware.CurrentUserID(ctx),
		CourseID: uint(courseID),
	}
	if err := c.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&enrollment).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50072, "failed to enroll")
		return
	}
	utils.Success(ctx, gin.H{"enrolled": true, "course_id": courseID})
}

// MyCourses lists the user's enrollments with per-course progress.
func (c *CourseController) MyCourses(ctx *gin.Context) {
	userID := middleware.CurrentUserID(ctx)

	var enrollments []models.Enrollment
	if err := c.db.Preload("Course").Where("user_id = ?", userID).Order("created_at DESC").Find(&enrollments).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50073, "failed to load enrollments")
		return
	}

	doneByLesson, err := c.completedLessonSet(userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50074, "failed to load progress")
		return
	}

	items := make([]gin.H, 0, len(enrollments))
	for _, e := range enrollments {
		var lessonIDs []uint
		_ = c.db.Model(&models.Lesson{}).Where("course_id = ?", e.CourseID).Pluck("id", &lessonIDs).Error
		completed := 0
		for _, id := range utils.UniqueUint(lessonIDs) {
			if doneByLesson[id] {
				completed++
			}
		}
		progress := 0.0
		if len(lessonIDs) > 0 {
			progress = float64(completed) / float64(len(lessonIDs)) * 100
		}
		items = append(items, gin.H{
			"course":            e.Course,
			"enrolled_at":       e.CreatedAt,
			"total_lessons":     len(lessonIDs),
			"completed_lessons": completed,
			"progress":          progress,
		})
	}
	utils.Success(ctx, gin.H{"items": items, "count": len(items)})
}

// CompleteLesson marks a lesson finished for the user. Completing an already
// finished lesson is a no-op.
func (c *CourseController) CompleteLesson(ctx *gin.Context) {
	lessonID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || lessonID <= 0 {
		utils.Error(ctx, http.StatusBadRequest, 40071, "invalid lesson id")
		return
	}

	var lesson models.Lesson
	if err := c.db.First(&lesson, lessonID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40471, "lesson not found")
		return
	}

	userID := middleware.CurrentUserID(ctx)
	completion := models.LessonCompletion{UserID: userID, LessonID: uint(lessonID)}
	if err := c.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&completion).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50075, "failed to record completion")
		return
	}

	var total, done int64
	_ = c.db.Model(&models.Lesson{}).Where("course_id = ?", lesson.CourseID).Count(&total).Error
	_ = c.db.Model(&models.LessonCompletion{}).
		Joins("JOIN lessons ON lessons.id = lesson_completions.lesson_id").
		Where("lesson_completions.user_id = ? AND lessons.course_id = ?", userID, lesson.CourseID).
		Count(&done).Error

	utils.Success(ctx, gin.H{
		"lesson_id":         lessonID,
		"course_id":         lesson.CourseID,
		"completed_lessons": done,
		"total_lessons":     total,
		"course_finished":   total > 0 && done >= total,
	})
}

func (c *CourseController) completedLessonSet(userID uint) (map[uint]bool, error) {
	var ids []uint
	if err := c.db.Model(&models.LessonCompletion{}).Where("user_id = ?", userID).Pluck("lesson_id", &ids).Error; err != nil {
		return nil, err
	}
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
