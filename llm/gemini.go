package llm

import (
	"context"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GeminiClient generates feedback with a Gemini model. The persona goes in
// the model's system instruction, the question and answer in one user turn.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
	name   string
}

func NewGeminiClient(ctx context.Context, apiKey, modelName, systemInstructions string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create gemini client")
	}
	model := client.GenerativeModel(modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstructions)},
	}
	return &GeminiClient{client: client, model: model, name: modelName}, nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

func (g *GeminiClient) Feedback(ctx context.Context, question, transcript string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(UserPrompt(question, transcript)))
	if err != nil {
		return "", errors.Wrap(err, "gemini generate")
	}
	text := strings.TrimSpace(responseText(resp))
	log.Printf("%s response: candidates=%d", g.name, len(resp.Candidates))
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}

func (g *GeminiClient) StreamFeedback(ctx context.Context, question, transcript string, out chan<- string) error {
	iter := g.model.GenerateContentStream(ctx, genai.Text(UserPrompt(question, transcript)))

	var buffer sentenceBuffer
	for {
		resp, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return errors.Wrap(err, "gemini stream")
		}
		for _, s := range buffer.processChunk(responseText(resp)) {
			if err := send(ctx, out, s); err != nil {
				return err
			}
		}
	}

	if leftover := buffer.flushRemaining(); leftover != "" {
		if err := send(ctx, out, leftover); err != nil {
			return err
		}
	}
	if buffer.text() == "" {
		return ErrEmptyCompletion
	}
	return nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return sb.String()
}
