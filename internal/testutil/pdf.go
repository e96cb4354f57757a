// Package testutil builds small document fixtures for tests.
package testutil

import (
	"fmt"
	"strings"
)

// BuildTextPDF returns a minimal but valid PDF with one page per argument,
// each showing its text with a single Tj operator. An empty string yields a
// page with an empty content stream. Offsets in the xref table are exact.
func BuildTextPDF(pages ...string) []byte {
	n := len(pages)
	total := 3 + 2*n // catalog + pages + font, plus a page and content object per page
	fontObj := total

	var b strings.Builder
	offsets := make([]int, total+1)
	b.WriteString("%PDF-1.4\n")

	offsets[1] = b.Len()
	b.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	kids := make([]string, n)
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 3+i)
	}
	offsets[2] = b.Len()
	fmt.Fprintf(&b, "2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n",
		strings.Join(kids, " "), n)

	for i := range pages {
		pageObj := 3 + i
		contentObj := 3 + n + i
		offsets[pageObj] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents %d 0 R /Resources << /Font << /F1 %d 0 R >> >> >>\nendobj\n",
			pageObj, contentObj, fontObj)
	}

	for i, text := range pages {
		contentObj := 3 + n + i
		stream := ""
		if text != "" {
			stream = "BT\n/F1 12 Tf\n72 720 Td\n(" + escapePDFText(text) + ") Tj\nET"
		}
		offsets[contentObj] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n",
			contentObj, len(stream), stream)
	}

	offsets[fontObj] = b.Len()
	fmt.Fprintf(&b, "%d 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n", fontObj)

	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", total+1)
	b.WriteString("0000000000 65535 f \n")
	for i := 1; i <= total; i++ {
		fmt.Fprintf(&b, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		total+1, xref)

	return []byte(b.String())
}

func escapePDFText(text string) string {
	text = strings.ReplaceAll(text, `\`, `\\`)
	text = strings.ReplaceAll(text, "(", `\(`)
	text = strings.ReplaceAll(text, ")", `\)`)
	return text
}
