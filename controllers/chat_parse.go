package controllers

import (
	"encoding/json"
	"strings"

	"github.com/gin-gonic/gin"
)

// parseVerseJSON extracts the verse object from a model reply. Models often
// wrap JSON in code fences, so everything outside the outermost braces is
// dropped before decoding.
func parseVerseJSON(text string) gin.H {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil
	}

	var raw struct {
		Sanskrit    string      `json:"sanskrit"`
		Translation string      `json:"translation"`
		Chapter     json.Number `json:"chapter"`
		Verse       json.Number `json:"verse"`
	}
	dec := json.NewDecoder(strings.NewReader(text[start : end+1]))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil
	}
	if raw.Translation == "" {
		return nil
	}

	chapter, _ := raw.Chapter.Int64()
	verse, _ := raw.Verse.Int64()
	return gin.H{
		"sanskrit":    raw.Sanskrit,
		"translation": raw.Translation,
		"chapter":     chapter,
		"verse":       verse,
	}
}
