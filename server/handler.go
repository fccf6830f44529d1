package server

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mrsingh-rishi/interview-coach/coach"
)

type handler struct {
	svc      *coach.Service
	maxAudio int // bytes
}

func requestID() string {
	return uuid.NewString()[:8]
}

// transcribeAndFeedback accepts multipart `audio` (required) and `question`
// (optional) and replies with the transcript and the model's feedback.
func (h *handler) transcribeAndFeedback(c *fiber.Ctx) error {
	id := requestID()

	form, err := c.MultipartForm()
	if err != nil {
		return h.fail(c, id, coach.ErrNoAudio)
	}
	files := form.File["audio"]
	if len(files) == 0 {
		return h.fail(c, id, coach.ErrNoAudio)
	}
	question := coach.DefaultQuestion
	if v, ok := form.Value["question"]; ok && len(v) > 0 {
		question = v[0]
	}

	upload := files[0]
	log.Printf("[%s] Received audio %q (%s, %d bytes) for question: %s",
		id, upload.Filename, upload.Header.Get(fiber.HeaderContentType), upload.Size, question)

	src, err := upload.Open()
	if err != nil {
		return h.fail(c, id, &coach.Error{Kind: coach.KindLocalIO, Op: "open upload", Err: err})
	}
	defer src.Close()

	result, err := h.svc.Evaluate(c.UserContext(), src, question)
	if err != nil {
		return h.fail(c, id, err)
	}
	log.Printf("[%s] ✅ Feedback ready", id)
	return c.JSON(result)
}

func (h *handler) fail(c *fiber.Ctx, id string, err error) error {
	e := coach.AsError(err)
	logError(id, e)
	return c.Status(e.Kind.Status()).JSON(fiber.Map{"error": e.Public()})
}

func logError(id string, e *coach.Error) {
	switch e.Kind {
	case coach.KindClient:
		log.Printf("[%s] Rejected request: %v", id, e.Err)
	case coach.KindTranscription:
		log.Printf("[%s] ❌ Transcription service error: %+v", id, e.Err)
	case coach.KindCompletion:
		log.Printf("[%s] ❌ Completion service error: %+v", id, e.Err)
	default:
		log.Printf("[%s] ❌ Local I/O error during %s: %+v", id, e.Op, e.Err)
	}
}
