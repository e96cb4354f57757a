package extract

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/docuproc/inspection-reports/constants"
)

// Extractor dispatches text extraction by declared format.
type Extractor struct {
	logger *slog.Logger
}

func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// Extract produces per-page text for PDFs and a single blob for everything
// else. Plain text never fails; PDF and DOCX parser failures come back
// wrapped in ErrUnreadable.
func (e *Extractor) Extract(data []byte, format constants.Format) (Result, error) {
	start := time.Now()

	var res Result
	var err error
	switch format {
	case constants.PDF:
		res, err = extractPDF(data)
	case constants.DOCX:
		res, err = extractDocx(data)
	default:
		res = extractText(data)
	}

	if err != nil {
		e.logger.Error("extract.failed",
			"format", string(format),
			"bytes", len(data),
			"error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return Result{}, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	e.logger.Debug("extract.ok",
		"format", string(format),
		"bytes", len(data),
		"pages", len(res.Pages),
		"page_aware", res.PageAware,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}
