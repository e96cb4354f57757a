package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/docuproc/inspection-reports/internal/report"
)

// Minimal WordprocessingML package: content types, package relationships,
// and word/document.xml. This is the writing counterpart of the DOCX reader
// in internal/extract; no library in the ecosystem we build on writes DOCX.

const docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const docxRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func writeDocx(rep report.Report) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name string
		body string
	}{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRels},
		{"word/document.xml", buildDocumentXML(rep)},
	}
	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", p.name, err)
		}
		if _, err := w.Write([]byte(p.body)); err != nil {
			return nil, fmt.Errorf("write %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close docx archive: %w", err)
	}
	return buf.Bytes(), nil
}

func buildDocumentXML(rep report.Report) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)

	writeStyledParagraph(&b, "Heading1", reportHeading)

	for _, k := range sortedKeys(rep.Header) {
		writeParagraph(&b, k+": "+rep.Header[k])
	}
	writeParagraph(&b, "")

	if len(rep.Table.Columns) > 0 && len(rep.Table.Rows) > 0 {
		writeTable(&b, rep.Table)
	}

	b.WriteString(`</w:body></w:document>`)
	return b.String()
}

func writeStyledParagraph(b *strings.Builder, style, text string) {
	b.WriteString(`<w:p><w:pPr><w:pStyle w:val="`)
	b.WriteString(style)
	b.WriteString(`"/></w:pPr>`)
	writeRun(b, text)
	b.WriteString(`</w:p>`)
}

func writeParagraph(b *strings.Builder, text string) {
	b.WriteString(`<w:p>`)
	writeRun(b, text)
	b.WriteString(`</w:p>`)
}

func writeRun(b *strings.Builder, text string) {
	if text == "" {
		return
	}
	b.WriteString(`<w:r><w:t xml:space="preserve">`)
	b.WriteString(xmlEscaper.Replace(text))
	b.WriteString(`</w:t></w:r>`)
}

func writeTable(b *strings.Builder, t report.Table) {
	b.WriteString(`<w:tbl><w:tblPr><w:tblBorders>`)
	for _, edge := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
		fmt.Fprintf(b, `<w:%s w:val="single" w:sz="4" w:space="0" w:color="auto"/>`, edge)
	}
	b.WriteString(`</w:tblBorders></w:tblPr>`)

	writeTableRow(b, t.Columns)
	for _, row := range t.Rows {
		writeTableRow(b, row)
	}
	b.WriteString(`</w:tbl>`)
}

func writeTableRow(b *strings.Builder, cells []string) {
	b.WriteString(`<w:tr>`)
	for _, cell := range cells {
		b.WriteString(`<w:tc>`)
		writeParagraph(b, cell)
		b.WriteString(`</w:tc>`)
	}
	b.WriteString(`</w:tr>`)
}

func sortedKeys(h report.Header) []string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
