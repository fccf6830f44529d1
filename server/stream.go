package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log"

	"github.com/gofiber/websocket/v2"
	"github.com/pkg/errors"

	"github.com/mrsingh-rishi/interview-coach/coach"
)

// streamRequest is the single text frame a client sends after connecting.
type streamRequest struct {
	Question *string `json:"question"`
	Audio    string  `json:"audio"` // base64 recording
}

type streamEvent struct {
	Type  string `json:"type"` // "transcript", "feedback", "done", "error"
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

// streamTranscribeAndFeedback is the websocket flavour of
// transcribeAndFeedback: the transcript is sent first, then the feedback
// sentence by sentence as the model writes it.
func (h *handler) streamTranscribeAndFeedback(ws *websocket.Conn) {
	defer ws.Close()
	id := requestID()

	msg, err := h.readRequest(ws)
	if err != nil {
		if errors.Is(err, coach.ErrTooLarge) {
			h.sendError(ws, id, err)
			return
		}
		log.Printf("[%s] read error: %v", id, err)
		return
	}

	var req streamRequest
	if err := json.Unmarshal(msg, &req); err != nil {
		h.sendError(ws, id, &coach.Error{Kind: coach.KindClient, Op: "decode message", Err: errors.New("invalid message")})
		return
	}
	if req.Audio == "" {
		h.sendError(ws, id, coach.ErrNoAudio)
		return
	}
	audio, err := base64.StdEncoding.DecodeString(req.Audio)
	if err != nil {
		h.sendError(ws, id, &coach.Error{Kind: coach.KindClient, Op: "decode audio", Err: errors.New("invalid audio encoding")})
		return
	}
	if len(audio) > h.maxAudio {
		h.sendError(ws, id, coach.ErrTooLarge)
		return
	}
	question := coach.DefaultQuestion
	if req.Question != nil {
		question = *req.Question
	}
	log.Printf("[%s] Received streamed audio (%d bytes) for question: %s", id, len(audio), question)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Frames after the request are ignored; a failed read means the client
	// went away. The reader must finish before the handler returns and the
	// connection is released.
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()
	defer func() {
		ws.Close()
		<-readerDone
	}()

	transcript, err := h.svc.Transcribe(ctx, bytes.NewReader(audio))
	if err != nil {
		h.sendError(ws, id, err)
		return
	}
	if err := ws.WriteJSON(streamEvent{Type: "transcript", Text: transcript}); err != nil {
		log.Printf("[%s] write error: %v", id, err)
		return
	}

	sentences := make(chan string)
	errCh := make(chan error, 1)
	go func() {
		errCh <- h.svc.StreamFeedback(ctx, question, transcript, sentences)
		close(sentences)
	}()

	var writeErr error
	for s := range sentences {
		if writeErr != nil {
			continue
		}
		if writeErr = ws.WriteJSON(streamEvent{Type: "feedback", Text: s}); writeErr != nil {
			cancel()
		}
	}
	if writeErr != nil {
		log.Printf("[%s] write error: %v", id, writeErr)
		return
	}
	if err := <-errCh; err != nil {
		h.sendError(ws, id, err)
		return
	}

	if err := ws.WriteJSON(streamEvent{Type: "done"}); err != nil {
		log.Printf("[%s] write error: %v", id, err)
		return
	}
	log.Printf("[%s] ✅ Streamed feedback complete", id)
}

// readRequest reads the request frame, refusing frames that cannot hold a
// recording within maxAudio. An oversized frame is drained so the client
// can read the error reply; frames past the hard limit close the connection.
func (h *handler) readRequest(ws *websocket.Conn) ([]byte, error) {
	frameLimit := int64(base64.StdEncoding.EncodedLen(h.maxAudio)) + 1024
	ws.SetReadLimit(4 * frameLimit)

	_, r, err := ws.NextReader()
	if err != nil {
		return nil, err
	}
	msg, err := io.ReadAll(io.LimitReader(r, frameLimit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(msg)) > frameLimit {
		if _, err := io.Copy(io.Discard, r); err != nil {
			return nil, err
		}
		return nil, coach.ErrTooLarge
	}
	return msg, nil
}

func (h *handler) sendError(ws *websocket.Conn, id string, err error) {
	e := coach.AsError(err)
	logError(id, e)
	if werr := ws.WriteJSON(streamEvent{Type: "error", Error: e.Public()}); werr != nil {
		log.Printf("[%s] write error: %v", id, werr)
	}
}
