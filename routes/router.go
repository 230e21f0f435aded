package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dasgmd/learn-gita/config"
	"github.com/dasgmd/learn-gita/controllers"
	"github.com/dasgmd/learn-gita/middleware"
	"github.com/dasgmd/learn-gita/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Access logs go to their own rolling file through zap.
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.Use(middleware.PageViewRecorder(db))

	r.Static("/static", "./static")

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	sadhnaController := controllers.NewSadhnaController(db)
	courseController := controllers.NewCourseController(db)
	festivalController := controllers.NewFestivalController(db)
	chatController := controllers.NewChatController()
	statsController := controllers.NewStatsController(db)
	configController := controllers.NewConfigController()
	uploadController := controllers.NewUploadController(db)
	adminController := controllers.NewAdminController(db)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimit())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/send-email-code", authController.SendEmailCode)
	authGroup.GET("/captcha", authController.Captcha)
	authGroup.GET("/oauth/:provider/login", authController.OAuthRedirect)
	authGroup.GET("/oauth/:provider/callback", authController.OAuthCallback)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)
	authGroup.PATCH("/profile", middleware.AuthRequired(), authController.UpdateProfile)
	authGroup.POST("/password", middleware.AuthRequired(), authController.ChangePassword)

	// Public catalog and community endpoints
	api.GET("/courses", courseController.List)
	api.GET("/courses/:slug", courseController.Get)
	api.GET("/festivals", festivalController.Upcoming)
	api.GET("/festivals/:id", festivalController.Get)
	api.GET("/gita/verse-of-the-day", chatController.VerseOfDay)
	api.GET("/stats", statsController.GetStats)
	api.GET("/leaderboard", statsController.GetLeaderboard)
	api.GET("/levels", sadhnaController.Levels)
	api.GET("/config/notice", configController.GetNotice)
	api.GET("/config/app", configController.GetAppConfig)
	api.GET("/users/:id", authController.GetUserPublic)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(), middleware.RateLimit())
	protected.POST("/sadhna", sadhnaController.Submit)
	protected.GET("/sadhna/today", sadhnaController.Today)
	protected.GET("/sadhna/history", sadhnaController.History)
	protected.GET("/sadhna/streak", sadhnaController.Streak)
	protected.POST("/courses/:id/enroll", courseController.Enroll)
	protected.GET("/users/me/courses", courseController.MyCourses)
	protected.POST("/lessons/:id/complete", courseController.CompleteLesson)
	protected.POST("/festival-tasks/:id/complete", festivalController.CompleteTask)
	protected.GET("/users/me/festival-tasks", festivalController.MyCompletions)
	protected.POST("/gita/chat", chatController.Ask)
	protected.POST("/upload", uploadController.Upload)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired(), middleware.RateLimit())
	admin.GET("/users", adminController.ListUsers)
	admin.PATCH("/users/:id/role", adminController.SetUserRole)
	admin.GET("/users/:id/progress", adminController.GetUserProgress)
	admin.POST("/courses", adminController.CreateCourse)
	admin.PUT("/courses/:id", adminController.UpdateCourse)
	admin.DELETE("/courses/:id", adminController.DeleteCourse)
	admin.POST("/lessons", adminController.CreateLesson)
	admin.PUT("/lessons/:id", adminController.UpdateLesson)
	admin.DELETE("/lessons/:id", adminController.DeleteLesson)
	admin.POST("/festivals", adminController.CreateFestival)
	admin.PUT("/festivals/:id", adminController.UpdateFestival)
	admin.DELETE("/festivals/:id", adminController.DeleteFestival)
	admin.POST("/festivals/:id/tasks", adminController.CreateFestivalTask)
	admin.PUT("/festival-tasks/:id", adminController.UpdateFestivalTask)
	admin.DELETE("/festival-tasks/:id", adminController.DeleteFestivalTask)

	r.NoRoute(func(ctx *gin.Context) {
		path := ctx.Request.URL.Path
		if strings.HasPrefix(path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
			return
		}
		if strings.HasPrefix(path, "/static/") {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "static asset not found"})
			return
		}
		// Everything else falls back to the SPA entry point.
		ctx.Status(http.StatusOK)
		ctx.File("./static/index.html")
	})

	return r
}
