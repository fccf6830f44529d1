package coach

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Kind classifies a pipeline failure. It decides the log wording and the
// HTTP status; the message a caller sees never carries the cause.
type Kind int

const (
	KindClient Kind = iota + 1
	KindTranscription
	KindCompletion
	KindLocalIO
)

// Messages shown to callers.
const (
	MsgNoAudio  = "No audio file provided"
	MsgTooLarge = "Audio file too large"
	MsgInternal = "An error occurred processing your request"
)

func (k Kind) String() string {
	switch k {
	case KindClient:
		return "client"
	case KindTranscription:
		return "transcription"
	case KindCompletion:
		return "completion"
	case KindLocalIO:
		return "local-io"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Status is the HTTP status reported for the kind.
func (k Kind) Status() int {
	if k == KindClient {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Op)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Cause lets errors.Cause reach the upstream error.
func (e *Error) Cause() error { return e.Err }

// Public is the message safe to return to the caller.
func (e *Error) Public() string {
	if e.Kind == KindClient && e.Err != nil {
		return e.Err.Error()
	}
	return MsgInternal
}

// ErrNoAudio is the client error for a request without an audio part.
var ErrNoAudio = &Error{Kind: KindClient, Op: "read upload", Err: errors.New(MsgNoAudio)}

// ErrTooLarge is the client error for a recording over the upload limit.
var ErrTooLarge = &Error{Kind: KindClient, Op: "read upload", Err: errors.New(MsgTooLarge)}

func newError(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf reports the kind of err, treating anything unclassified as a
// local failure.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindLocalIO
}

// AsError returns err as an *Error, wrapping unclassified errors.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: KindLocalIO, Op: "unclassified", Err: err}
}
