package server

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/docuproc/inspection-reports/constants"
)

// handleQueryPoint answers a point-label query: which value does the
// labeled parameter carry in the uploaded document.
func (s *Service) handleQueryPoint(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	source, sourceName, err := formFile(r, "sourceFile")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing source file")
		return
	}
	label := strings.TrimSpace(r.FormValue("label"))
	if label == "" {
		writeError(w, http.StatusBadRequest, "Missing label")
		return
	}

	extracted, err := s.extractor.Extract(source, constants.MapExtToFormat(filepath.Ext(sourceName)))
	if err != nil {
		writeFailure(w, s.logger, err)
		return
	}

	ans, err := s.pointQuery.Lookup(r.Context(), extracted.Text(), label)
	if err != nil {
		writeFailure(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, ans)
}
