package gemini

import (
	"log/slog"
	"net/http"
	"os"
	"time"
)

// Config for the Gemini client.
type Config struct {
	APIKey  string        // if empty, falls back to env GEMINI_API_KEY
	BaseURL string        // default https://generativelanguage.googleapis.com/v1beta
	Model   string        // e.g. "gemini-2.5-pro"
	Timeout time.Duration // http client timeout
}

// Client implements llm.Generator against the Gemini REST API.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-pro"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 90 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}
