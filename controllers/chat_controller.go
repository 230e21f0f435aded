package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dasgmd/learn-gita/middleware"
	"github.com/dasgmd/learn-gita/utils"
)

const gitaSystemPrompt = `You are GitaGPT, a gentle spiritual guide grounded in the Bhagavad Gita.
Answer questions with wisdom from the Gita, citing chapter and verse where relevant.
Keep answers warm, concise and practical. If a question is outside spiritual life,
steer it kindly back to the teachings. Address the seeker with respect.`

// fallbackVerse is served when the AI backend is unavailable.
var fallbackVerse = gin.H{
	"sanskrit":    "कर्मण्येवाधिकारस्ते मा फलेषु कदाचन। मा कर्मफलहेतुर्भूर्मा ते सङ्गोऽस्त्वकर्मणि॥",
	"translation": "You have a right to perform your prescribed duty, but you are not entitled to the fruits of action. Never consider yourself the cause of the results, and never be attached to inaction.",
	"chapter":     2,
	"verse":       47,
}

// ChatController answers devotee questions through Gemini, with canned
// replies when the API is not configured.
type ChatController struct{}

// NewChatController creates a ChatController.
func NewChatController() *ChatController {
	return &ChatController{}
}

// Ask relays a question to the Gita guide. History lets the frontend keep a
// multi-turn conversation; only the last twenty turns are forwarded.
func (c *ChatController) Ask(ctx *gin.Context) {
	var req struct {
		Message string `json:"message" binding:"required"`
		History []struct {
			Role string `json:"role"`
			Text string `json:"text"`
		} `json:"history"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40090, "invalid request payload")
		return
	}

	message := utils.StripTags(strings.TrimSpace(req.Message))
	if message == "" {
		utils.Error(ctx, http.StatusBadRequest, 40091, "message is required")
		return
	}
	if len(message) > 2000 {
		utils.Error(ctx, http.StatusBadRequest, 40092, "message too long")
		return
	}

	if !utils.GeminiConfigured() {
		utils.Success(ctx, gin.H{
			"reply":  "Hare Krishna. The AI guide is resting right now. Meanwhile, reflect on Gita 2.47: focus on your duty, not on the fruits of action.",
			"source": "fallback",
		})
		return
	}

	history := req.History
	if len(history) > 20 {
		history = history[len(history)-20:]
	}
	msgs := make([]utils.GeminiMessage, 0, len(history)+1)
	for _, h := range history {
		text := utils.StripTags(strings.TrimSpace(h.Text))
		if text == "" {
			continue
		}
		msgs = append(msgs, utils.GeminiMessage{Role: h.Role, Text: text})
	}
	msgs = append(msgs, utils.GeminiMessage{Role: "user", Text: message})

	reply, err := utils.GeminiGenerate(ctx.Request.Context(), gitaSystemPrompt, msgs)
	if err != nil {
		utils.Sugar.Warnf("gemini chat failed for user %d: %v", middleware.CurrentUserID(ctx), err)
		utils.Success(ctx, gin.H{
			"reply":  "Hare Krishna. The AI guide could not answer just now. Please try again in a moment.",
			"source": "fallback",
		})
		return
	}

	utils.Success(ctx, gin.H{"reply": reply, "source": "gemini"})
}

// VerseOfDay returns one verse per calendar day. The generated verse is
// cached until midnight so every devotee sees the same one.
func (c *ChatController) VerseOfDay(ctx *gin.Context) {
	today := time.Now().In(time.Local).Format("2006-01-02")
	cacheKey := "cache:verse:" + today

	var cached gin.H
	if utils.CacheGetJSON(cacheKey, &cached) {
		utils.Success(ctx, cached)
		return
	}

	if !utils.GeminiConfigured() {
		utils.Success(ctx, fallbackVerse)
		return
	}

	prompt := `Pick one verse from the Bhagavad Gita appropriate for daily reflection on ` + today + `.
Respond with only a JSON object with keys: sanskrit, translation, chapter (number), verse (number). No markdown.`
	text, err := utils.GeminiGenerate(ctx.Request.Context(), "", []utils.GeminiMessage{{Role: "user", Text: prompt}})
	if err != nil {
		utils.Sugar.Warnf("verse of day generation failed: %v", err)
		utils.Success(ctx, fallbackVerse)
		return
	}

	verse := parseVerseJSON(text)
	if verse == nil {
		verse = fallbackVerse
	}
	utils.CacheSetJSON(cacheKey, verse, untilLocalMidnight())
	utils.Success(ctx, verse)
}

func untilLocalMidnight() time.Duration {
	now := time.Now().In(time.Local)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return time.Until(midnight)
}
