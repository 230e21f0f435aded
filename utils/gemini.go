package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dasgmd/learn-gita/config"
)

// geminiHTTP is shared across requests; generation can be slow so the timeout
// is generous.
var geminiHTTP = &http.Client{Timeout: 60 * time.Second}

// GeminiMessage is one turn of a chat exchange. Role is "user" or "model".
type GeminiMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// GeminiConfigured reports whether an API key is present. Callers fall back
// to canned responses when it is not.
func GeminiConfigured() bool {
	return config.Get().GeminiAPIKey != ""
}

// GeminiGenerate sends a system instruction plus conversation history to the
// Gemini generateContent endpoint and returns the first candidate text.
func GeminiGenerate(ctx context.Context, system string, history []GeminiMessage) (string, error) {
	cfg := config.Get()
	if cfg.GeminiAPIKey == "" {
		return "", fmt.Errorf("gemini not configured")
	}

	req := geminiRequest{}
	if system != "" {
		req.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: system}}}
	}
	for _, m := range history {
		role := m.Role
		if role != "model" {
			role = "user"
		}
		req.Contents = append(req.Contents, geminiContent{
			Role:  role,
			Parts: []geminiPart{{Text: m.Text}},
		})
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", cfg.GeminiBaseURL, cfg.GeminiModel)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", cfg.GeminiAPIKey)

	resp, err := geminiHTTP.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}

	var out geminiResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("gemini decode failed: %w", err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("gemini error %d: %s", out.Error.Code, out.Error.Message)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
