package server

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/docuproc/inspection-reports/constants"
)

// handleGenerateReport runs the full chain: extract the source document's
// text, aggregate page results into {header, table}, and, when a template
// accompanies the source, map the result onto the template's structure.
func (s *Service) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	source, sourceName, err := formFile(r, "sourceFile")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing source file")
		return
	}

	sourceFormat := constants.MapExtToFormat(filepath.Ext(sourceName))
	extracted, err := s.extractor.Extract(source, sourceFormat)
	if err != nil {
		writeFailure(w, s.logger, err)
		return
	}

	rep, err := s.aggregator.Aggregate(r.Context(), extracted.Pages)
	if err != nil {
		writeFailure(w, s.logger, err)
		return
	}

	// Optional second step: reshape onto the template's structure.
	if template, templateName, terr := formFile(r, "templateFile"); terr == nil {
		templateText, err := s.templateText(template, templateName)
		if err != nil {
			writeFailure(w, s.logger, err)
			return
		}
		rep, err = s.mapper.MapToTemplate(r.Context(), templateText, rep)
		if err != nil {
			writeFailure(w, s.logger, err)
			return
		}
	}

	rep.Normalize()
	s.logger.Info("generate_report.ok",
		"source", sourceName,
		"format", string(sourceFormat),
		"pages", len(extracted.Pages),
		"rows", len(rep.Table.Rows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	writeJSON(w, http.StatusOK, rep)
}

// templateText extracts a template as one text blob: DOCX templates go
// through the document reader, everything else is decoded permissively.
// Templates are never paged.
func (s *Service) templateText(data []byte, name string) (string, error) {
	format := constants.MapExtToFormat(filepath.Ext(name))
	if format == constants.PDF {
		format = constants.TEXT
	}
	res, err := s.extractor.Extract(data, format)
	if err != nil {
		return "", err
	}
	return res.Text(), nil
}
