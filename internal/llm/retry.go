package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// InvokerConfig bounds the retry loop around a model call.
type InvokerConfig struct {
	MaxAttempts int           // default 3
	Delay       time.Duration // fixed delay between attempts, default 5s
}

func (c *InvokerConfig) defaults() {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.Delay <= 0 {
		c.Delay = 5 * time.Second
	}
}

// Invoker calls a Generator and insists on a JSON response. Any failure
// (transport, rate limit, or an unparsable reply) is retried up
// to MaxAttempts with a fixed delay; the last failure propagates with its
// identity intact. A missing credential is never retried.
type Invoker struct {
	gen    Generator
	cfg    InvokerConfig
	logger *slog.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

func NewInvoker(gen Generator, cfg InvokerConfig, logger *slog.Logger) *Invoker {
	cfg.defaults()
	if logger == nil {
		logger = slog.Default()
	}
	return &Invoker{gen: gen, cfg: cfg, logger: logger, sleep: sleepCtx}
}

// InvokeJSON runs a text-only generation. If schema is non-nil the parsed
// response must also validate against it, otherwise well-formed JSON is
// enough.
func (iv *Invoker) InvokeJSON(ctx context.Context, prompt string, schema *jsonschema.Schema) (json.RawMessage, error) {
	return iv.run(ctx, schema, func(ctx context.Context) (string, error) {
		return iv.gen.Generate(ctx, prompt)
	})
}

// InvokeVisionJSON is InvokeJSON with an attached PNG image.
func (iv *Invoker) InvokeVisionJSON(ctx context.Context, prompt string, imagePNG []byte, schema *jsonschema.Schema) (json.RawMessage, error) {
	return iv.run(ctx, schema, func(ctx context.Context) (string, error) {
		return iv.gen.GenerateVision(ctx, prompt, imagePNG)
	})
}

func (iv *Invoker) run(ctx context.Context, schema *jsonschema.Schema, call func(context.Context) (string, error)) (json.RawMessage, error) {
	var lastErr error
	for attempt := 1; attempt <= iv.cfg.MaxAttempts; attempt++ {
		start := time.Now()
		raw, err := iv.attempt(ctx, schema, call)
		if err == nil {
			iv.logger.Debug("model.invoke.ok",
				"attempt", attempt,
				"bytes", len(raw),
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return raw, nil
		}
		lastErr = err

		if errors.Is(err, ErrMissingAPIKey) {
			// Configuration error, permanent until corrected.
			return nil, err
		}

		iv.logger.Warn("model.invoke.attempt_failed",
			"attempt", attempt,
			"max_attempts", iv.cfg.MaxAttempts,
			"rate_limited", errors.Is(err, ErrRateLimited),
			"error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)

		if attempt < iv.cfg.MaxAttempts {
			if serr := iv.sleep(ctx, iv.cfg.Delay); serr != nil {
				return nil, serr
			}
		}
	}
	return nil, fmt.Errorf("model call failed after %d attempts: %w", iv.cfg.MaxAttempts, lastErr)
}

func (iv *Invoker) attempt(ctx context.Context, schema *jsonschema.Schema, call func(context.Context) (string, error)) (json.RawMessage, error) {
	text, err := call(ctx)
	if err != nil {
		return nil, err
	}

	cleaned := []byte(StripFences(text))
	if schema != nil {
		if err := ValidateAgainstSchema(schema, cleaned); err != nil {
			return nil, fmt.Errorf("response rejected: %w", err)
		}
		return cleaned, nil
	}
	var parsed any
	if err := json.Unmarshal(cleaned, &parsed); err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w", err)
	}
	return cleaned, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
