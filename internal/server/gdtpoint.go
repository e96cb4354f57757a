package server

import (
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/docuproc/inspection-reports/constants"
	"github.com/docuproc/inspection-reports/internal/gdt"
)

type featuresBody struct {
	Features []gdt.Feature `json:"features"`
}

// handleAnalyzeGDT crops around a clicked point on a drawing page and
// returns the feature control frame the model reads there.
func (s *Service) handleAnalyzeGDT(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	source, sourceName, err := formFile(r, "sourceFile")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing source file")
		return
	}
	if constants.MapExtToFormat(filepath.Ext(sourceName)) != constants.PDF {
		writeError(w, http.StatusBadRequest, "GD&T analysis requires a PDF drawing")
		return
	}

	page, err := strconv.Atoi(r.FormValue("page"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "page must be an integer")
		return
	}
	x, errX := strconv.ParseFloat(r.FormValue("x"), 64)
	y, errY := strconv.ParseFloat(r.FormValue("y"), 64)
	if errX != nil || errY != nil {
		writeError(w, http.StatusBadRequest, "x and y must be numbers")
		return
	}

	feat, err := s.analyzer.AnalyzePoint(r.Context(), source, page, x, y)
	if err != nil {
		writeFailure(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, featuresBody{Features: []gdt.Feature{feat}})
}
