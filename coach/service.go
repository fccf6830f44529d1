// Package coach runs the transcribe-then-critique pipeline for one
// recorded interview answer.
package coach

//go:generate mockgen -destination=mock_coach/mock_coach.go -package=mock_coach github.com/mrsingh-rishi/interview-coach/coach Transcriber,FeedbackGenerator

import (
	"context"
	"io"
	"log"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/mrsingh-rishi/interview-coach/recording"
)

// DefaultQuestion stands in when the client does not send a question.
const DefaultQuestion = "Unknown question"

type Transcriber interface {
	Transcribe(ctx context.Context, path string) (string, error)
}

type FeedbackGenerator interface {
	Feedback(ctx context.Context, question, transcript string) (string, error)
	StreamFeedback(ctx context.Context, question, transcript string, out chan<- string) error
}

type Result struct {
	Transcript string `json:"transcript"`
	Feedback   string `json:"feedback"`
}

type Options struct {
	TempDir           string
	TranscribeTimeout time.Duration
	FeedbackTimeout   time.Duration
}

// Service is built once at startup and shared by all requests.
type Service struct {
	transcriber Transcriber
	feedback    FeedbackGenerator
	opts        Options
}

func NewService(transcriber Transcriber, feedback FeedbackGenerator, opts Options) *Service {
	return &Service{transcriber: transcriber, feedback: feedback, opts: opts}
}

// Evaluate transcribes audio and asks for feedback on the answer. Errors are
// always *Error.
func (s *Service) Evaluate(ctx context.Context, audio io.Reader, question string) (Result, error) {
	transcript, err := s.Transcribe(ctx, audio)
	if err != nil {
		return Result{}, err
	}

	feedback, err := s.Feedback(ctx, question, transcript)
	if err != nil {
		return Result{}, err
	}
	return Result{Transcript: transcript, Feedback: feedback}, nil
}

// Transcribe stores audio in a temp file for the duration of the upstream
// call and returns the transcript. The temp file is removed before return.
func (s *Service) Transcribe(ctx context.Context, audio io.Reader) (string, error) {
	file, err := recording.Save(s.opts.TempDir, audio)
	if err != nil {
		return "", newError(KindLocalIO, "save recording", err)
	}
	defer file.Remove()
	log.Printf("Saved recording to %s (%d bytes)", file.Path(), file.Size())

	ctx, cancel := withTimeout(ctx, s.opts.TranscribeTimeout)
	defer cancel()

	transcript, err := s.transcriber.Transcribe(ctx, file.Path())
	if err != nil {
		return "", newError(KindTranscription, "transcribe", err)
	}
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return "", newError(KindTranscription, "transcribe", errors.New("empty transcript"))
	}
	log.Printf("📝 Transcription result: %s", transcript)
	return transcript, nil
}

func (s *Service) Feedback(ctx context.Context, question, transcript string) (string, error) {
	ctx, cancel := withTimeout(ctx, s.opts.FeedbackTimeout)
	defer cancel()

	feedback, err := s.feedback.Feedback(ctx, question, transcript)
	if err != nil {
		return "", newError(KindCompletion, "feedback", err)
	}
	if strings.TrimSpace(feedback) == "" {
		return "", newError(KindCompletion, "feedback", errors.New("empty feedback"))
	}
	log.Printf("Completion result: %s", feedback)
	return feedback, nil
}

// StreamFeedback sends feedback sentences to out as the model produces them.
// The caller owns out and closes it after StreamFeedback returns. A stream
// that yields no text is a completion error, as with Feedback.
func (s *Service) StreamFeedback(ctx context.Context, question, transcript string, out chan<- string) error {
	ctx, cancel := withTimeout(ctx, s.opts.FeedbackTimeout)
	defer cancel()

	sentences := make(chan string)
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.feedback.StreamFeedback(ctx, question, transcript, sentences)
		close(sentences)
	}()

	forwarded := 0
	for sentence := range sentences {
		if strings.TrimSpace(sentence) == "" || ctx.Err() != nil {
			continue
		}
		select {
		case out <- sentence:
			forwarded++
		case <-ctx.Done():
		}
	}

	if err := <-errCh; err != nil {
		return newError(KindCompletion, "stream feedback", err)
	}
	if err := ctx.Err(); err != nil {
		return newError(KindCompletion, "stream feedback", err)
	}
	if forwarded == 0 {
		return newError(KindCompletion, "stream feedback", errors.New("empty feedback"))
	}
	log.Printf("Streamed %d feedback sentence(s)", forwarded)
	return nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
