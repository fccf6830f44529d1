// Package server exposes the coach pipeline and the recorder page over HTTP.
package server

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/pkg/errors"

	"github.com/mrsingh-rishi/interview-coach/coach"
	"github.com/mrsingh-rishi/interview-coach/config"
)

// New wires routes onto a fresh fiber app. svc is shared by all requests.
func New(cfg *config.Config, svc *coach.Service) (*fiber.App, error) {
	static, err := newStaticFiles(cfg.Server.StaticDir, cfg.Server.IndexFile)
	if err != nil {
		return nil, err
	}
	h := &handler{svc: svc, maxAudio: cfg.BodyLimit()}

	app := fiber.New(fiber.Config{
		AppName:               "interview-coach",
		BodyLimit:             cfg.BodyLimit(),
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Post("/transcribe_and_feedback", h.transcribeAndFeedback)

	// Middleware to require WebSocket upgrade on /ws
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/transcribe_and_feedback", websocket.New(h.streamTranscribeAndFeedback))

	app.Get("/", static.serveIndex)
	app.Get("/*", static.serve)

	return app, nil
}

// errorHandler keeps fiber's plain-text replies for routing errors and hides
// everything else behind the generic message.
func errorHandler(c *fiber.Ctx, err error) error {
	var e *fiber.Error
	if errors.As(err, &e) {
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Status(e.Code).SendString(e.Message)
	}
	log.Printf("❌ unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": coach.MsgInternal})
}
