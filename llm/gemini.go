// Gemini native REST client.
// https://ai.google.dev/api/rest
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tripwise-project/tripwise-agent/logger"
)

// GeminiClient implements the Client interface using Gemini's native REST API.
type GeminiClient struct {
	APIKey  string
	Model   string
	BaseURL string
	HTTP    *http.Client
}

type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig *geminiGenConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role"` // "user" or "model"
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
	Error      *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason"`
}

// NewGeminiClient creates a new Gemini native API client
func NewGeminiClient(apiKey, model string, timeout time.Duration) *GeminiClient {
	if model == "" {
		model = "gemini-2.0-flash-exp"
	}
	if timeout == 0 {
		timeout = 12 * time.Second
	}

	return &GeminiClient{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: "https://generativelanguage.googleapis.com/v1beta",
		HTTP:    newHTTPClient(timeout),
	}
}

// Chat implements the Client interface for the Gemini native API.
// Gemini has no dedicated system role, so the system instruction is
// prepended to the user message.
func (c *GeminiClient) Chat(ctx context.Context, system, user string) (string, error) {
	fullPrompt := user
	if strings.TrimSpace(system) != "" {
		fullPrompt = fmt.Sprintf("System Instructions: %s\n\nUser: %s", system, user)
	}

	log := logger.GetLogger().WithField("model", c.Model)
	log.Debugf("gemini call, prompt length %d", len(fullPrompt))

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: fullPrompt}}},
		},
		GenerationConfig: &geminiGenConfig{
			Temperature:     0,
			MaxOutputTokens: 1024,
		},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.BaseURL, c.Model, c.APIKey)

	// Second attempt covers transient 429/5xx without a full retry stack.
	for attempt := 0; attempt < 2; attempt++ {
		httpReq, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
		if err != nil {
			return "", fmt.Errorf("gemini: create request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")

		res, err := c.HTTP.Do(httpReq)
		if err != nil {
			if attempt == 0 {
				log.Warnf("gemini request failed, retrying: %v", err)
				time.Sleep(2 * time.Second)
				continue
			}
			return "", fmt.Errorf("gemini: http request: %w", err)
		}

		body, _ := io.ReadAll(res.Body)
		res.Body.Close()

		if res.StatusCode == http.StatusTooManyRequests {
			if attempt == 0 {
				log.Warn("gemini rate limited, retrying")
				time.Sleep(4 * time.Second)
				continue
			}
			return "", fmt.Errorf("gemini: 429 rate limit: %s", string(body))
		}

		if res.StatusCode/100 != 2 {
			if attempt == 0 {
				log.Warnf("gemini status %d, retrying", res.StatusCode)
				time.Sleep(2 * time.Second)
				continue
			}
			return "", fmt.Errorf("gemini: %d %s", res.StatusCode, string(body))
		}

		var out geminiResponse
		if err := json.Unmarshal(body, &out); err != nil {
			return "", fmt.Errorf("gemini: decode failed: %w; raw=%s", err, string(body))
		}

		if out.Error != nil {
			if attempt == 0 {
				log.Warnf("gemini api error %d, retrying", out.Error.Code)
				time.Sleep(2 * time.Second)
				continue
			}
			return "", fmt.Errorf("gemini: %d %s", out.Error.Code, out.Error.Message)
		}

		if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
			if attempt == 0 {
				time.Sleep(time.Second)
				continue
			}
			return "", errors.New("gemini: empty candidates")
		}

		return strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text), nil
	}

	return "", errors.New("gemini: retry exhausted")
}
