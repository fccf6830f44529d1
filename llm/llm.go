// Package llm produces interview feedback from a chat model.
package llm

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"

	"github.com/mrsingh-rishi/interview-coach/config"
)

type FeedbackGenerator interface {
	Feedback(ctx context.Context, question, transcript string) (string, error)
	StreamFeedback(ctx context.Context, question, transcript string, out chan<- string) error
}

// NewOpenAI builds the process-wide OpenAI client. It does not check the key.
func NewOpenAI(cfg config.OpenAIConfig) *openai.Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return openai.NewClientWithConfig(clientConfig)
}

// New builds the feedback generator named by cfg.Pipeline.Feedback.
func New(ctx context.Context, cfg *config.Config, client *openai.Client) (FeedbackGenerator, error) {
	switch cfg.Pipeline.Feedback {
	case "openai":
		return NewOpenAIClient(client, SystemInstructions, cfg.OpenAI.ChatModel), nil
	case "gemini":
		return NewGeminiClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, SystemInstructions)
	default:
		return nil, errors.Errorf("unknown feedback provider: %q", cfg.Pipeline.Feedback)
	}
}
