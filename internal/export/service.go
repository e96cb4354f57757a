// Package export renders a report into downloadable document bytes.
package export

import (
	"log/slog"
	"time"

	"github.com/docuproc/inspection-reports/internal/report"
)

const reportHeading = "Inspection Report"

// Service renders reports as DOCX or XLSX bytes. No row/column width
// validation happens here; cells are rendered positionally as-is.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// DOCX renders the heading, one "key: value" paragraph per header entry,
// then (when both columns and rows are present) a grid table. Header-less
// or table-less reports still produce a valid minimal document.
func (s *Service) DOCX(rep report.Report) ([]byte, error) {
	start := time.Now()
	b, err := writeDocx(rep)
	if err != nil {
		return nil, err
	}
	s.logger.Info("export.docx.ok",
		"header_keys", len(rep.Header),
		"rows", len(rep.Table.Rows),
		"bytes", len(b),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return b, nil
}

// XLSX renders the same layout on a worksheet.
func (s *Service) XLSX(rep report.Report) ([]byte, error) {
	start := time.Now()
	b, err := writeXlsx(rep)
	if err != nil {
		return nil, err
	}
	s.logger.Info("export.xlsx.ok",
		"header_keys", len(rep.Header),
		"rows", len(rep.Table.Rows),
		"bytes", len(b),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return b, nil
}
