package llm

import (
	"context"
	"errors"
)

// Generator is the narrow surface of the external model service the rest of
// the code depends on: text in, text out. Implementations must be safe for
// concurrent use; the process holds a single instance for its lifetime.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	// GenerateVision sends a prompt together with a PNG image.
	GenerateVision(ctx context.Context, prompt string, imagePNG []byte) (string, error)
}

// ErrRateLimited marks quota/rate-limit rejections from the model service.
// It is retried like any other failure, but keeps its identity so the
// request boundary can surface a distinct status after exhaustion.
var ErrRateLimited = errors.New("model service rate limited")

// ErrMissingAPIKey is a configuration error: no credential was present at
// startup. It is permanent, never retried.
var ErrMissingAPIKey = errors.New("model API key is not configured on the server")
