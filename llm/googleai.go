package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// GoogleAIClient adapts a langchaingo googleai model to the Client
// interface. Preferred when GOOGLE_API_KEY is available.
type GoogleAIClient struct {
	model llms.Model
}

// NewGoogleAIClient creates a googleai-backed client.
func NewGoogleAIClient(ctx context.Context, apiKey, model string) (*GoogleAIClient, error) {
	if apiKey == "" {
		return nil, ErrLLMDisabled
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}

	m, err := googleai.New(
		ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize googleai model: %w", err)
	}

	return &GoogleAIClient{model: m}, nil
}

// Chat implements the Client interface.
func (c *GoogleAIClient) Chat(ctx context.Context, system, user string) (string, error) {
	prompt := user
	if strings.TrimSpace(system) != "" {
		prompt = system + "\n\n" + user
	}

	out, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt, llms.WithTemperature(0))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
