package controllers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dasgmd/learn-gita/config"
	"github.com/dasgmd/learn-gita/middleware"
	"github.com/dasgmd/learn-gita/models"
	"github.com/dasgmd/learn-gita/utils"
)

// 10MB is plenty for avatars and course/festival artwork.
const maxUploadSize = 10 * 1024 * 1024

var allowedUploadExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// UploadController stores image uploads under static/uploads and records them
// for the background cleaner.
type UploadController struct {
	db *gorm.DB
}

// NewUploadController creates an UploadController.
func NewUploadController(db *gorm.DB) *UploadController {
	return &UploadController{db: db}
}

// Upload saves an image and returns its public URL.
func (u *UploadController) Upload(ctx *gin.Context) {
	file, header, err := ctx.Request.FormFile("file")
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40120, "no file uploaded")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		utils.Error(ctx, http.StatusBadRequest, 40121, "file size exceeds 10MB")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedUploadExts[ext] {
		utils.Error(ctx, http.StatusBadRequest, 40122, "only image uploads are allowed")
		return
	}

	now := time.Now()
	baseDir := filepath.Join(".", "static", "uploads", now.Format("2006"), now.Format("01"))
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50120, "failed to create upload directory")
		return
	}

	safeName := fmt.Sprintf("%d_%d%s", now.UnixNano(), middleware.CurrentUserID(ctx), ext)
	dstPath := filepath.Join(baseDir, safeName)

	out, err := os.Create(dstPath)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50121, "failed to save file")
		return
	}
	defer out.Close()

	lr := &io.LimitedReader{R: file, N: maxUploadSize + 1}
	written, err := io.Copy(out, lr)
	if err != nil || written > maxUploadSize {
		_ = out.Close()
		_ = os.Remove(dstPath)
		utils.Error(ctx, http.StatusBadRequest, 40121, "file size exceeds 10MB")
		return
	}

	relURL := fmt.Sprintf("/static/uploads/%s/%s/%s", now.Format("2006"), now.Format("01"), safeName)

	ttlHours := config.Get().UploadsTTLHours
	if ttlHours <= 0 {
		ttlHours = 72
	}
	absPath, _ := filepath.Abs(dstPath)
	if err := u.db.Create(&models.UploadedFile{
		FilePath: absPath,
		URL:      relURL,
		ExpireAt: now.Add(time.Duration(ttlHours) * time.Hour),
	}).Error; err != nil {
		utils.Sugar.Warnf("failed to record upload %s: %v", relURL, err)
	}

	utils.Success(ctx, gin.H{"url": relURL})
}
