package stt

import (
	"context"
	"log"
	"os"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/pkg/errors"
)

// GoogleClient transcribes with Cloud Speech-to-Text synchronous recognition.
// Synchronous requests are capped at about one minute of audio, which covers
// a timed interview answer.
type GoogleClient struct {
	speechClient    *speech.Client
	languageCode    string
	sampleRateHertz int32
}

// NewGoogleClient relies on Application Default Credentials.
func NewGoogleClient(ctx context.Context, languageCode string, sampleRateHertz int32) (*GoogleClient, error) {
	speechClient, err := speech.NewClient(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create speech client")
	}
	return &GoogleClient{
		speechClient:    speechClient,
		languageCode:    languageCode,
		sampleRateHertz: sampleRateHertz,
	}, nil
}

func (g *GoogleClient) Close() error {
	if g.speechClient != nil {
		return g.speechClient.Close()
	}
	return nil
}

func (g *GoogleClient) Transcribe(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "read recording")
	}

	resp, err := g.speechClient.Recognize(ctx, g.recognizeRequest(data))
	if err != nil {
		return "", errors.Wrap(err, "google recognize")
	}

	text := joinResults(resp.GetResults())
	log.Printf("📝 Google transcript (%d chars)", len(text))
	return text, nil
}

func (g *GoogleClient) recognizeRequest(data []byte) *speechpb.RecognizeRequest {
	return &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   speechpb.RecognitionConfig_WEBM_OPUS,
			SampleRateHertz:            g.sampleRateHertz,
			LanguageCode:               g.languageCode,
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: data},
		},
	}
}

// joinResults keeps the top alternative of each consecutive result.
func joinResults(results []*speechpb.SpeechRecognitionResult) string {
	var parts []string
	for _, result := range results {
		if len(result.Alternatives) == 0 {
			continue
		}
		if t := strings.TrimSpace(result.Alternatives[0].Transcript); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
