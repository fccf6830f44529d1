// Package stt turns a recorded answer on disk into text.
package stt

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"

	"github.com/mrsingh-rishi/interview-coach/config"
)

// Transcriber returns the full text of the audio file at path.
// No timestamps, no speaker labels.
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (string, error)
}

// New builds the transcriber named by cfg.Pipeline.Transcriber.
func New(ctx context.Context, cfg *config.Config, client *openai.Client) (Transcriber, error) {
	switch cfg.Pipeline.Transcriber {
	case "openai":
		return NewWhisperClient(client, cfg.OpenAI.TranscriptionModel), nil
	case "google":
		return NewGoogleClient(ctx, cfg.Speech.LanguageCode, cfg.Speech.SampleRateHertz)
	default:
		return nil, errors.Errorf("unknown transcriber: %q", cfg.Pipeline.Transcriber)
	}
}
