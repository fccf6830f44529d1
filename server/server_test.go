package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"

	"github.com/mrsingh-rishi/interview-coach/coach"
	"github.com/mrsingh-rishi/interview-coach/coach/mock_coach"
	"github.com/mrsingh-rishi/interview-coach/config"
)

var webmClip = []byte("\x1aE\xdf\xa3\x9fB\x86\x81\x01 tiny webm clip")

type testEnv struct {
	app         *fiber.App
	tempDir     string
	staticDir   string
	transcriber *mock_coach.MockTranscriber
	feedback    *mock_coach.MockFeedbackGenerator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithLimit(t, 25)
}

func newTestEnvWithLimit(t *testing.T, bodyLimitMB int) *testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)
	base := t.TempDir()
	env := &testEnv{
		tempDir:     filepath.Join(base, "tmp"),
		staticDir:   filepath.Join(base, "public"),
		transcriber: mock_coach.NewMockTranscriber(ctrl),
		feedback:    mock_coach.NewMockFeedbackGenerator(ctrl),
	}
	for _, dir := range []string{env.tempDir, env.staticDir} {
		if err := os.Mkdir(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}

	svc := coach.NewService(env.transcriber, env.feedback, coach.Options{
		TempDir:           env.tempDir,
		TranscribeTimeout: 5 * time.Second,
		FeedbackTimeout:   5 * time.Second,
	})
	cfg := &config.Config{Server: config.ServerConfig{
		StaticDir:   env.staticDir,
		IndexFile:   "index.html",
		BodyLimitMB: bodyLimitMB,
	}}
	app, err := New(cfg, svc)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	env.app = app
	return env
}

func (e *testEnv) do(t *testing.T, req *http.Request) (int, []byte) {
	t.Helper()
	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, body
}

func (e *testEnv) assertNoTempFiles(t *testing.T) {
	t.Helper()
	entries, err := os.ReadDir(e.tempDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("%d temp file(s) left after request", len(entries))
	}
}

// uploadRequest builds the form the recorder page posts. A nil audio omits
// the part; a nil question omits the field.
func uploadRequest(t *testing.T, audio []byte, question *string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if audio != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="audio"; filename="recording.webm"`)
		h.Set("Content-Type", "audio/webm")
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatal(err)
		}
		part.Write(audio)
	}
	if question != nil {
		if err := w.WriteField("question", *question); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/transcribe_and_feedback", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decodeBody(t *testing.T, body []byte) map[string]string {
	t.Helper()
	var m map[string]string
	if err := json.Unmarshal(body, &m); err != nil {
		t.Fatalf("body %q is not a JSON object of strings: %v", body, err)
	}
	return m
}

func strPtr(s string) *string { return &s }

func TestTranscribeAndFeedbackEndToEnd(t *testing.T) {
	env := newTestEnv(t)

	env.transcriber.EXPECT().
		Transcribe(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, path string) (string, error) {
			data, err := os.ReadFile(path)
			if err != nil || !bytes.Equal(data, webmClip) {
				t.Errorf("transcriber saw %q, %v", data, err)
			}
			return "I am passionate about this role.", nil
		})
	env.feedback.EXPECT().
		Feedback(gomock.Any(), "Why do you want this job?", "I am passionate about this role.").
		Return("Too vague — give me a concrete story.", nil)

	status, body := env.do(t, uploadRequest(t, webmClip, strPtr("Why do you want this job?")))
	if status != http.StatusOK {
		t.Fatalf("status = %d, body %s", status, body)
	}
	got := decodeBody(t, body)
	want := map[string]string{
		"transcript": "I am passionate about this role.",
		"feedback":   "Too vague — give me a concrete story.",
	}
	if len(got) != len(want) || got["transcript"] != want["transcript"] || got["feedback"] != want["feedback"] {
		t.Errorf("body = %v, want %v", got, want)
	}
	env.assertNoTempFiles(t)
}

func TestTranscribeAndFeedbackMissingAudio(t *testing.T) {
	env := newTestEnv(t)

	reqs := map[string]*http.Request{
		"question only": uploadRequest(t, nil, strPtr("Why?")),
		"empty form":    uploadRequest(t, nil, nil),
		"not multipart": httptest.NewRequest(http.MethodPost, "/transcribe_and_feedback", bytes.NewBufferString(`{"question":"Why?"}`)),
	}
	for name, req := range reqs {
		t.Run(name, func(t *testing.T) {
			status, body := env.do(t, req)
			if status != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", status)
			}
			if string(body) != `{"error":"No audio file provided"}` {
				t.Errorf("body = %s", body)
			}
		})
	}
	env.assertNoTempFiles(t)
}

func TestTranscribeAndFeedbackDefaultQuestion(t *testing.T) {
	env := newTestEnv(t)

	env.transcriber.EXPECT().Transcribe(gomock.Any(), gomock.Any()).Return("Because I like it.", nil)
	env.feedback.EXPECT().
		Feedback(gomock.Any(), coach.DefaultQuestion, "Because I like it.").
		Return("Say more.", nil)

	status, body := env.do(t, uploadRequest(t, webmClip, nil))
	if status != http.StatusOK {
		t.Fatalf("status = %d, body %s", status, body)
	}
	got := decodeBody(t, body)
	if got["transcript"] == "" || got["feedback"] == "" {
		t.Errorf("body = %v, want non-empty transcript and feedback", got)
	}
}

func TestTranscribeAndFeedbackUpstreamFailures(t *testing.T) {
	tests := []struct {
		name   string
		expect func(env *testEnv)
	}{
		{
			name: "transcription",
			expect: func(env *testEnv) {
				env.transcriber.EXPECT().Transcribe(gomock.Any(), gomock.Any()).
					Return("", errors.New("error, status code: 401, message: Incorrect API key"))
			},
		},
		{
			name: "completion",
			expect: func(env *testEnv) {
				env.transcriber.EXPECT().Transcribe(gomock.Any(), gomock.Any()).Return("My answer.", nil)
				env.feedback.EXPECT().Feedback(gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", errors.New("error, status code: 503"))
			},
		},
		{
			name: "empty completion",
			expect: func(env *testEnv) {
				env.transcriber.EXPECT().Transcribe(gomock.Any(), gomock.Any()).Return("My answer.", nil)
				env.feedback.EXPECT().Feedback(gomock.Any(), gomock.Any(), gomock.Any()).Return("", nil)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			tt.expect(env)

			status, body := env.do(t, uploadRequest(t, webmClip, strPtr("q")))
			if status != http.StatusInternalServerError {
				t.Errorf("status = %d, want 500", status)
			}
			got := decodeBody(t, body)
			if len(got) != 1 || got["error"] != coach.MsgInternal {
				t.Errorf("body = %v, want only the generic error", got)
			}
			env.assertNoTempFiles(t)
		})
	}
}

func TestStaticFiles(t *testing.T) {
	env := newTestEnv(t)

	index := []byte("<!doctype html><title>Interview</title>")
	script := []byte("const q = ['Why do you want this job?', 'done'];\n")
	if err := os.WriteFile(filepath.Join(env.staticDir, "index.html"), index, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(env.staticDir, "js"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(env.staticDir, "js", "data.js"), script, 0o644); err != nil {
		t.Fatal(err)
	}
	secret := filepath.Join(filepath.Dir(env.staticDir), "secret.txt")
	if err := os.WriteFile(secret, []byte("OPENAI_API_KEY=sk-live"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Run("index", func(t *testing.T) {
		status, body := env.do(t, httptest.NewRequest(http.MethodGet, "/", nil))
		if status != http.StatusOK || !bytes.Equal(body, index) {
			t.Errorf("GET / = %d %q", status, body)
		}
	})
	t.Run("nested file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/js/data.js", nil)
		resp, err := env.app.Test(req, -1)
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != http.StatusOK || !bytes.Equal(body, script) {
			t.Errorf("GET /js/data.js = %d %q", resp.StatusCode, body)
		}
		if ct := resp.Header.Get("Content-Type"); ct == "" {
			t.Error("missing content type")
		}
	})

	notFound := []string{"/missing.css", "/js", "/../secret.txt", "/js/../../secret.txt", "/%2e%2e/secret.txt"}
	for _, p := range notFound {
		t.Run("not found "+p, func(t *testing.T) {
			status, body := env.do(t, httptest.NewRequest(http.MethodGet, p, nil))
			if status != http.StatusNotFound {
				t.Errorf("GET %s = %d %q, want 404", p, status, body)
			}
		})
	}
}

func TestStaticIndexMissing(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.do(t, httptest.NewRequest(http.MethodGet, "/", nil))
	if status != http.StatusNotFound {
		t.Errorf("GET / without index = %d, want 404", status)
	}
}

func TestResolve(t *testing.T) {
	s, err := newStaticFiles(t.TempDir(), "")
	if err != nil {
		t.Fatal(err)
	}
	if s.index != "index.html" {
		t.Errorf("index = %q", s.index)
	}
	if p, ok := s.resolve("css/site.css"); !ok || p != filepath.Join(s.root, "css", "site.css") {
		t.Errorf("resolve(css/site.css) = %q, %v", p, ok)
	}
	for _, rel := range []string{"", "..", "../x", "a/../../x", "a/..", "a\x00b"} {
		if _, ok := s.resolve(rel); ok {
			t.Errorf("resolve(%q) accepted", rel)
		}
	}
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if status != http.StatusOK || decodeBody(t, body)["status"] != "ok" {
		t.Errorf("GET /healthz = %d %s", status, body)
	}
}
