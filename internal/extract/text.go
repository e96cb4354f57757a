package extract

import "strings"

// extractText decodes raw bytes permissively: invalid UTF-8 sequences are
// replaced rather than causing a failure. Plain text extraction never errors.
func extractText(data []byte) Result {
	return Result{Pages: []string{strings.ToValidUTF8(string(data), "�")}}
}
