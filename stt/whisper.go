package stt

import (
	"context"
	"log"
	"strings"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
)

// WhisperClient transcribes through the OpenAI audio transcription endpoint.
type WhisperClient struct {
	Client *openai.Client
	Model  string
}

func NewWhisperClient(client *openai.Client, model string) *WhisperClient {
	if model == "" {
		model = openai.Whisper1
	}
	return &WhisperClient{Client: client, Model: model}
}

func (w *WhisperClient) Transcribe(ctx context.Context, path string) (string, error) {
	resp, err := w.Client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.Model,
		FilePath: path,
		Format:   openai.AudioResponseFormatJSON,
	})
	if err != nil {
		return "", errors.Wrap(err, "whisper transcription")
	}
	text := strings.TrimSpace(resp.Text)
	log.Printf("📝 Whisper transcript (%d chars)", len(text))
	return text, nil
}
