package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/docuproc/inspection-reports/internal/export"
	"github.com/docuproc/inspection-reports/internal/extract"
	"github.com/docuproc/inspection-reports/internal/gdt"
	"github.com/docuproc/inspection-reports/internal/llm"
	"github.com/docuproc/inspection-reports/internal/llm/gemini"
	"github.com/docuproc/inspection-reports/internal/report"
	"github.com/docuproc/inspection-reports/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	port := envOr("PORT", "8080")
	origins := splitCSV(envOr("ALLOWED_ORIGINS", "http://127.0.0.1:5001"))

	if os.Getenv("GEMINI_API_KEY") == "" {
		// Not fatal: the server runs, model-backed endpoints report the
		// configuration error until the key is provided.
		logger.Warn("GEMINI_API_KEY is not set; model-backed endpoints will fail")
	}

	// Process-wide model client, constructed once, safe for concurrent use.
	gen := gemini.NewClient(gemini.Config{
		Model: os.Getenv("GEMINI_MODEL"),
	}, logger)
	invoker := llm.NewInvoker(gen, llm.InvokerConfig{
		MaxAttempts: envInt("MODEL_MAX_ATTEMPTS", 3),
		Delay:       time.Duration(envInt("MODEL_RETRY_DELAY_SECONDS", 5)) * time.Second,
	}, logger)

	extractor := extract.NewExtractor(logger)
	aggregator, err := report.NewAggregator(invoker, logger)
	if err != nil {
		fatal(logger, "build aggregator", err)
	}
	mapper, err := report.NewMapper(invoker, logger)
	if err != nil {
		fatal(logger, "build mapper", err)
	}
	pointQuery, err := report.NewPointQuery(invoker, logger)
	if err != nil {
		fatal(logger, "build point query", err)
	}
	analyzer, err := gdt.NewAnalyzer(gdt.Config{
		Pdftoppm: os.Getenv("PDFTOPPM_BIN"),
		DPI:      envInt("GDT_DPI", 0),
	}, nil, invoker, logger)
	if err != nil {
		fatal(logger, "build gdt analyzer", err)
	}
	exporter := export.NewService(logger)

	svc := server.NewService(extractor, aggregator, mapper, pointQuery, analyzer, exporter, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}))
	svc.RegisterHTTP(r)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("http serving", "addr", srv.Addr, "origins", origins)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal(logger, "http serve", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	os.Exit(1)
}
