// Package server exposes the report pipeline over HTTP. Every request is
// handled independently and synchronously; nothing is shared across
// requests beyond the process-wide model client.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/docuproc/inspection-reports/internal/export"
	"github.com/docuproc/inspection-reports/internal/extract"
	"github.com/docuproc/inspection-reports/internal/gdt"
	"github.com/docuproc/inspection-reports/internal/report"
)

// maxUploadBytes bounds multipart form memory usage.
const maxUploadBytes = 32 << 20

type Service struct {
	extractor  extract.TextExtractor
	aggregator *report.Aggregator
	mapper     *report.Mapper
	pointQuery *report.PointQuery
	analyzer   *gdt.Analyzer
	exporter   *export.Service
	logger     *slog.Logger
}

func NewService(
	extractor extract.TextExtractor,
	aggregator *report.Aggregator,
	mapper *report.Mapper,
	pointQuery *report.PointQuery,
	analyzer *gdt.Analyzer,
	exporter *export.Service,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		extractor:  extractor,
		aggregator: aggregator,
		mapper:     mapper,
		pointQuery: pointQuery,
		analyzer:   analyzer,
		exporter:   exporter,
		logger:     logger,
	}
}

// RegisterHTTP mounts the service endpoints on a chi router.
func (s *Service) RegisterHTTP(r chi.Router) {
	r.Get("/", s.handleIndex)
	r.Post("/generate-report", s.handleGenerateReport)
	r.Post("/export-docx", s.handleExport)
	r.Post("/query-point", s.handleQueryPoint)
	r.Post("/analyze-gdt", s.handleAnalyzeGDT)
}

func (s *Service) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("The backend server is running. Please use the frontend to upload files.\n"))
}
