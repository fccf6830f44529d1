package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mrsingh-rishi/interview-coach/coach"
	"github.com/mrsingh-rishi/interview-coach/config"
	"github.com/mrsingh-rishi/interview-coach/llm"
	"github.com/mrsingh-rishi/interview-coach/server"
	"github.com/mrsingh-rishi/interview-coach/stt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.OpenAI.APIKey == "" && (cfg.Pipeline.Transcriber == "openai" || cfg.Pipeline.Feedback == "openai") {
		log.Println("OPENAI_API_KEY is not set; requests will fail until it is")
	}

	ctx := context.Background()
	client := llm.NewOpenAI(cfg.OpenAI)

	transcriber, err := stt.New(ctx, cfg, client)
	if err != nil {
		log.Fatalf("Failed to create transcriber: %v", err)
	}
	feedback, err := llm.New(ctx, cfg, client)
	if err != nil {
		log.Fatalf("Failed to create feedback generator: %v", err)
	}

	svc := coach.NewService(transcriber, feedback, coach.Options{
		TempDir:           cfg.Pipeline.TempDir,
		TranscribeTimeout: cfg.Pipeline.TranscribeTimeout,
		FeedbackTimeout:   cfg.Pipeline.FeedbackTimeout,
	})

	app, err := server.New(cfg, svc)
	if err != nil {
		log.Fatalf("Failed to build server: %v", err)
	}

	go func() {
		log.Printf("Fiber server listening on %s (transcriber=%s, feedback=%s)",
			cfg.Server.Addr, cfg.Pipeline.Transcriber, cfg.Pipeline.Feedback)
		if err := app.Listen(cfg.Server.Addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	for _, c := range []any{transcriber, feedback} {
		if closer, ok := c.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				log.Printf("Close error: %v", err)
			}
		}
	}
}
