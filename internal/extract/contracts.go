package extract

import (
	"errors"
	"strings"

	"github.com/docuproc/inspection-reports/constants"
)

// ErrUnreadable marks parser-level failures (corrupt file, unsupported
// internal structure). Callers map it to a server-side processing error;
// no partial text is ever returned alongside it.
var ErrUnreadable = errors.New("could not extract text from document")

// Result is the output of text extraction.
//
// For PDFs, Pages holds one entry per page in page order and PageAware is
// true; a page with no extractable text is an empty string. For DOCX and
// plain text, Pages holds a single concatenated blob and PageAware is false.
type Result struct {
	Pages     []string
	PageAware bool
}

// Text returns the whole document as a single string.
func (r Result) Text() string {
	return strings.Join(r.Pages, "\n")
}

// Blank reports whether every page is empty or whitespace-only.
func (r Result) Blank() bool {
	for _, p := range r.Pages {
		if strings.TrimSpace(p) != "" {
			return false
		}
	}
	return true
}

// TextExtractor is Stage 1: document bytes -> text.
type TextExtractor interface {
	Extract(data []byte, format constants.Format) (Result, error)
}
