package config

import (
	"log"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Pipeline PipelineConfig `toml:"pipeline"`
	OpenAI   OpenAIConfig   `toml:"openai"`
	Gemini   GeminiConfig   `toml:"gemini"`
	Speech   SpeechConfig   `toml:"google_speech"`
}

type ServerConfig struct {
	Addr        string `toml:"addr"`
	StaticDir   string `toml:"static_dir"`
	IndexFile   string `toml:"index_file"`
	BodyLimitMB int    `toml:"body_limit_mb"`
}

type PipelineConfig struct {
	Transcriber       string        `toml:"transcriber"` // "openai" or "google"
	Feedback          string        `toml:"feedback"`    // "openai" or "gemini"
	TempDir           string        `toml:"temp_dir"`
	TranscribeTimeout time.Duration `toml:"transcribe_timeout"`
	FeedbackTimeout   time.Duration `toml:"feedback_timeout"`
}

type OpenAIConfig struct {
	APIKey             string `toml:"api_key"`
	BaseURL            string `toml:"base_url"`
	TranscriptionModel string `toml:"transcription_model"`
	ChatModel          string `toml:"chat_model"`
}

type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

type SpeechConfig struct {
	LanguageCode    string `toml:"language_code"`
	SampleRateHertz int32  `toml:"sample_rate_hertz"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:        ":5000",
			StaticDir:   "public",
			IndexFile:   "index.html",
			BodyLimitMB: 25,
		},
		Pipeline: PipelineConfig{
			Transcriber:       "openai",
			Feedback:          "openai",
			TranscribeTimeout: 60 * time.Second,
			FeedbackTimeout:   60 * time.Second,
		},
		OpenAI: OpenAIConfig{
			TranscriptionModel: "whisper-1",
			ChatModel:          "gpt-4o",
		},
		Gemini: GeminiConfig{
			Model: "gemini-1.5-flash",
		},
		Speech: SpeechConfig{
			LanguageCode:    "en-US",
			SampleRateHertz: 48000,
		},
	}
}

// Load builds the configuration from defaults, an optional TOML file
// ($COACH_CONFIG or ./config.toml), a .env file and the process environment,
// in that order of increasing precedence.
func Load() (*Config, error) {
	cfg := defaultConfig()

	path := os.Getenv("COACH_CONFIG")
	if path == "" {
		path = "config.toml"
	}
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, errors.Wrapf(err, "bad config %s", path)
		}
		log.Printf("✅ Loaded config from %s", path)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, falling back to environment variables")
	}
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAI.APIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.OpenAI.BaseURL = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Gemini.APIKey = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Addr = ":" + v
	}
	if v := os.Getenv("STATIC_DIR"); v != "" {
		cfg.Server.StaticDir = v
	}
	if v := os.Getenv("TRANSCRIBER"); v != "" {
		cfg.Pipeline.Transcriber = v
	}
	if v := os.Getenv("FEEDBACK_PROVIDER"); v != "" {
		cfg.Pipeline.Feedback = v
	}
}

// Validate rejects provider names the server cannot build. Credentials are
// not checked here; a missing key shows up as an upstream error on first use.
func (c *Config) Validate() error {
	switch c.Pipeline.Transcriber {
	case "openai", "google":
	default:
		return errors.Errorf("unknown transcriber: %q", c.Pipeline.Transcriber)
	}
	switch c.Pipeline.Feedback {
	case "openai", "gemini":
	default:
		return errors.Errorf("unknown feedback provider: %q", c.Pipeline.Feedback)
	}
	if c.Server.BodyLimitMB <= 0 {
		return errors.New("server.body_limit_mb must be positive")
	}
	return nil
}

// BodyLimit is the request body ceiling in bytes.
func (c *Config) BodyLimit() int {
	return c.Server.BodyLimitMB * 1024 * 1024
}
