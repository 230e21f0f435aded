package main

import (
	"time"

	"github.com/dasgmd/learn-gita/config"
	"github.com/dasgmd/learn-gita/models"
	"github.com/dasgmd/learn-gita/routes"
	"github.com/dasgmd/learn-gita/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.SadhnaLog{},
		&models.Course{},
		&models.Lesson{},
		&models.Enrollment{},
		&models.LessonCompletion{},
		&models.Festival{},
		&models.FestivalTask{},
		&models.FestivalCompletion{},
		&models.PageView{},
		&models.UploadedFile{},
	)

	r := routes.SetupRouter(db)

	// Best-effort cleanup of expired uploads.
	utils.StartUploadCleaner(5 * time.Minute)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
