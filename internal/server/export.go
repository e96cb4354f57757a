package server

import (
	"encoding/json"
	"net/http"

	"github.com/docuproc/inspection-reports/constants"
	"github.com/docuproc/inspection-reports/internal/report"
)

// handleExport accepts a {header, table} body and returns it as a
// downloadable document. Default format is DOCX; ?format=xlsx selects a
// spreadsheet instead.
func (s *Service) handleExport(w http.ResponseWriter, r *http.Request) {
	var rep report.Report
	if err := json.NewDecoder(r.Body).Decode(&rep); err != nil {
		writeError(w, http.StatusBadRequest, "Request must be JSON")
		return
	}
	rep.Normalize()

	var (
		data     []byte
		err      error
		filename string
		mimeType string
	)
	switch r.URL.Query().Get("format") {
	case "", "docx":
		data, err = s.exporter.DOCX(rep)
		filename, mimeType = "inspection_report.docx", constants.DocxMIME
	case "xlsx":
		data, err = s.exporter.XLSX(rep)
		filename, mimeType = "inspection_report.xlsx", constants.XlsxMIME
	default:
		writeError(w, http.StatusBadRequest, "unsupported export format")
		return
	}
	if err != nil {
		s.logger.Error("export.failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create export file")
		return
	}

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
