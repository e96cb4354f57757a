package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// extractDocx reads word/document.xml out of the DOCX ZIP archive and joins
// paragraph texts with newlines. Page boundaries are not reconstructible
// from the XML, so the whole document comes back as one blob.
func extractDocx(data []byte) (Result, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Result{}, fmt.Errorf("open zip: %w", err)
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return Result{}, fmt.Errorf("word/document.xml not found in archive")
	}

	rc, err := docFile.Open()
	if err != nil {
		return Result{}, fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()

	paragraphs, err := docxParagraphs(rc)
	if err != nil {
		return Result{}, err
	}
	return Result{Pages: []string{strings.Join(paragraphs, "\n")}}, nil
}

// docxParagraphs walks the WordprocessingML token stream and returns the
// text of each <w:p> element, tables included (cell paragraphs are ordinary
// <w:p> elements).
func docxParagraphs(r io.Reader) ([]string, error) {
	decoder := xml.NewDecoder(r)

	var paragraphs []string
	var current strings.Builder
	inParagraph := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "p" {
				inParagraph = true
				current.Reset()
			}
		case xml.CharData:
			if inParagraph {
				current.Write(t)
			}
		case xml.EndElement:
			if t.Name.Local == "p" && inParagraph {
				inParagraph = false
				paragraphs = append(paragraphs, current.String())
			}
		}
	}
	return paragraphs, nil
}
