package testutil

import (
	"archive/zip"
	"bytes"
	"strings"
)

// BuildDocx returns a minimal DOCX archive whose document body holds one
// <w:p> per argument.
func BuildDocx(paragraphs ...string) []byte {
	var doc strings.Builder
	doc.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	doc.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		doc.WriteString(`<w:p><w:r><w:t>`)
		doc.WriteString(p)
		doc.WriteString(`</w:t></w:r></w:p>`)
	}
	doc.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("word/document.xml")
	_, _ = w.Write([]byte(doc.String()))
	_ = zw.Close()
	return buf.Bytes()
}
