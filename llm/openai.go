package llm

import (
	"context"
	"io"
	"log"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
)

// ErrEmptyCompletion is returned when the model answers with no text.
var ErrEmptyCompletion = errors.New("completion returned no content")

type OpenAIClient struct {
	Client             *openai.Client
	SystemInstructions string
	Model              string // Model to use for OpenAI API
}

func NewOpenAIClient(client *openai.Client, systemInstructions string, model string) *OpenAIClient {
	if model == "" {
		model = openai.GPT4o
	}
	return &OpenAIClient{
		Client:             client,
		SystemInstructions: systemInstructions,
		Model:              model,
	}
}

func (c *OpenAIClient) messages(question, transcript string) []openai.ChatCompletionMessage {
	return []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: c.SystemInstructions},
		{Role: openai.ChatMessageRoleUser, Content: UserPrompt(question, transcript)},
	}
}

// Feedback asks the chat model to critique the transcript and returns the
// first choice's text.
func (c *OpenAIClient) Feedback(ctx context.Context, question, transcript string) (string, error) {
	resp, err := c.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.Model,
		Messages: c.messages(question, transcript),
	})
	if err != nil {
		return "", errors.Wrap(err, "chat completion")
	}
	log.Printf("%s response: id=%s choices=%d usage=%d tokens", c.Model, resp.ID, len(resp.Choices), resp.Usage.TotalTokens)

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}

// StreamFeedback streams the same completion as Feedback, sending each
// finished sentence to out. The caller owns out.
func (c *OpenAIClient) StreamFeedback(ctx context.Context, question, transcript string, out chan<- string) error {
	stream, err := c.Client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:    c.Model,
		Messages: c.messages(question, transcript),
		Stream:   true,
	})
	if err != nil {
		return errors.Wrap(err, "open completion stream")
	}
	defer stream.Close()

	var buffer sentenceBuffer
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return errors.Wrap(err, "receive completion chunk")
		}
		if len(resp.Choices) == 0 {
			continue
		}
		chunk := resp.Choices[0].Delta.Content
		if chunk == "" {
			continue
		}
		for _, s := range buffer.processChunk(chunk) {
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
	log.Printf("%s streamed %d chars", c.Model, len(buffer.text()))
	return nil
}
