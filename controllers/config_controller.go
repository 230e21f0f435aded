package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/dasgmd/learn-gita/config"
	"github.com/dasgmd/learn-gita/utils"
)

// ConfigController serves dynamic UI configuration.
type ConfigController struct{}

func NewConfigController() *ConfigController { return &ConfigController{} }

// GetNotice returns the announcement bar content.
func (c *ConfigController) GetNotice(ctx *gin.Context) {
	cfg := config.Get()
	utils.Success(ctx, gin.H{
		"title": cfg.NoticeTitle,
		"html":  cfg.NoticeHTML,
	})
}

// GetAppConfig exposes the public feature switches the frontend needs before
// a user is signed in.
func (c *ConfigController) GetAppConfig(ctx *gin.Context) {
	cfg := config.Get()
	utils.Success(ctx, gin.H{
		"captcha_enabled": cfg.RegisterCaptchaEnabled,
		"oauth_providers": availableProviders(cfg),
		"ai_enabled":      cfg.GeminiAPIKey != "",
		"levels":          cfg.Levels,
	})
}

func availableProviders(cfg config.AppConfig) []string {
	providers := []string{}
	if cfg.GitHubClientID != "" && cfg.GitHubClientSecret != "" {
		providers = append(providers, "github")
	}
	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		providers = append(providers, "google")
	}
	return providers
}
