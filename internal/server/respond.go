package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/docuproc/inspection-reports/internal/extract"
	"github.com/docuproc/inspection-reports/internal/gdt"
	"github.com/docuproc/inspection-reports/internal/llm"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// writeFailure maps pipeline errors onto the status taxonomy: 400 for bad
// input, 429 after rate-limit exhaustion, 500 for extraction or
// configuration failures, 502 for every other upstream failure.
func writeFailure(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, gdt.ErrPageOutOfRange):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, llm.ErrMissingAPIKey):
		writeError(w, http.StatusInternalServerError, llm.ErrMissingAPIKey.Error())
	case errors.Is(err, llm.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "The AI service is rate limited. Please try again later.")
	case errors.Is(err, extract.ErrUnreadable):
		writeError(w, http.StatusInternalServerError, "Could not extract text from the uploaded file.")
	default:
		logger.Error("request.upstream_failure", "error", err)
		writeError(w, http.StatusBadGateway, "Failed to generate a result from the AI model.")
	}
}

// formFile reads one uploaded file fully into memory and returns its bytes
// and filename.
func formFile(r *http.Request, field string) ([]byte, string, error) {
	f, hdr, err := r.FormFile(field)
	if err != nil {
		return nil, "", fmt.Errorf("missing %s", field)
	}
	defer func(f multipart.File) {
		_ = f.Close()
	}(f)

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", field, err)
	}
	return data, hdr.Filename, nil
}
