package extract

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// extractPDF extracts text page by page using pdfcpu. A page whose content
// stream cannot be read or yields no text contributes an empty string; only
// a document-level parse failure is an error.
func extractPDF(data []byte) (Result, error) {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return Result{}, fmt.Errorf("pdfcpu read: %w", err)
	}

	pages := make([]string, 0, ctx.PageCount)
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		pages = append(pages, pageText(ctx, pageNr))
	}
	return Result{Pages: pages, PageAware: true}, nil
}

// PageCount returns the number of pages in a PDF byte stream.
func PageCount(data []byte) (int, error) {
	conf := model.NewDefaultConfiguration()
	n, err := api.PageCount(bytes.NewReader(data), conf)
	if err != nil {
		return 0, fmt.Errorf("%w: pdfcpu page count: %v", ErrUnreadable, err)
	}
	return n, nil
}

func pageText(ctx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil || r == nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}
	return decodeContentStream(data)
}

// pdfLiteralRe matches PDF string literals in parentheses: (text here)
var pdfLiteralRe = regexp.MustCompile(`\(([^)]*)\)`)

// decodeContentStream walks content stream lines and collects the text
// shown by the Tj / TJ / ' operators, inserting breaks on the positioning
// operators so words and lines do not run together.
func decodeContentStream(data []byte) string {
	var sb strings.Builder

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		switch {
		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
			for _, m := range pdfLiteralRe.FindAllSubmatch(line, -1) {
				sb.WriteString(unescapePDFString(m[1]))
			}
		case bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")):
			for _, m := range pdfLiteralRe.FindAllSubmatch(line, -1) {
				sb.WriteByte('\n')
				sb.WriteString(unescapePDFString(m[1]))
			}
		case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")):
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
		case bytes.Equal(line, []byte("T*")):
			sb.WriteByte('\n')
		}
	}

	return squeezeWhitespace(sb.String())
}

// unescapePDFString handles the basic PDF escape sequences, including
// octal escapes like \040.
func unescapePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(raw[i])
		default:
			if raw[i] >= '0' && raw[i] <= '7' {
				val := int(raw[i] - '0')
				for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
					i++
					val = val*8 + int(raw[i]-'0')
				}
				sb.WriteByte(byte(val))
			} else {
				sb.WriteByte(raw[i])
			}
		}
	}
	return sb.String()
}

// squeezeWhitespace collapses whitespace runs and drops non-printable runes.
func squeezeWhitespace(text string) string {
	var sb strings.Builder
	prevSpace := false
	for _, r := range text {
		switch {
		case r == '\n':
			sb.WriteByte('\n')
			prevSpace = true
		case unicode.IsSpace(r):
			if !prevSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
				prevSpace = true
			}
		case unicode.IsPrint(r):
			sb.WriteRune(r)
			prevSpace = false
		}
	}
	return strings.TrimSpace(sb.String())
}
