package constants

import "strings"

// Format identifies how an uploaded document is parsed.
type Format string

const (
	PDF  Format = "PDF"
	DOCX Format = "DOCX"
	TEXT Format = "TEXT"
)

// MIME types for export downloads.
const (
	DocxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	XlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a filename extension to a parsing format.
// Anything that is not .pdf or .docx is treated as plain text.
func MapExtToFormat(ext string) Format {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	case "docx":
		return DOCX
	default:
		return TEXT
	}
}
