package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuproc/inspection-reports/constants"
	"github.com/docuproc/inspection-reports/internal/testutil"
)

func TestExtract_PlainText(t *testing.T) {
	e := NewExtractor(nil)

	res, err := e.Extract([]byte("Part No: 42\nDiameter 10.5"), constants.TEXT)
	require.NoError(t, err)
	assert.False(t, res.PageAware)
	require.Len(t, res.Pages, 1)
	assert.Contains(t, res.Pages[0], "Part No: 42")
}

func TestExtract_PlainTextInvalidUTF8(t *testing.T) {
	e := NewExtractor(nil)

	// Invalid byte sequences are replaced, never an error.
	res, err := e.Extract([]byte{'o', 'k', 0xff, 0xfe, '!'}, constants.TEXT)
	require.NoError(t, err)
	require.Len(t, res.Pages, 1)
	assert.Contains(t, res.Pages[0], "ok")
	assert.Contains(t, res.Pages[0], "!")
	assert.Contains(t, res.Pages[0], "�")
}

func TestExtract_Docx(t *testing.T) {
	e := NewExtractor(nil)
	data := testutil.BuildDocx("Inspection Report", "Part No: 42", "Approved by QA")

	res, err := e.Extract(data, constants.DOCX)
	require.NoError(t, err)
	assert.False(t, res.PageAware)
	require.Len(t, res.Pages, 1)
	assert.Equal(t, "Inspection Report\nPart No: 42\nApproved by QA", res.Pages[0])
}

func TestExtract_DocxCorrupt(t *testing.T) {
	e := NewExtractor(nil)

	_, err := e.Extract([]byte("definitely not a zip archive"), constants.DOCX)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestExtract_PDFPerPage(t *testing.T) {
	e := NewExtractor(nil)
	data := testutil.BuildTextPDF("First page text", "", "Third page text")

	res, err := e.Extract(data, constants.PDF)
	require.NoError(t, err)
	assert.True(t, res.PageAware)
	require.Len(t, res.Pages, 3)
	assert.Contains(t, res.Pages[0], "First page")
	assert.Equal(t, "", strings.TrimSpace(res.Pages[1]))
	assert.Contains(t, res.Pages[2], "Third page")
}

func TestExtract_PDFCorrupt(t *testing.T) {
	e := NewExtractor(nil)

	_, err := e.Extract([]byte("%PDF-1.4 garbage"), constants.PDF)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestPageCount(t *testing.T) {
	n, err := PageCount(testutil.BuildTextPDF("a", "b", "c"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestResult_Blank(t *testing.T) {
	assert.True(t, Result{Pages: []string{"", "  \n\t"}}.Blank())
	assert.False(t, Result{Pages: []string{"", "x"}}.Blank())
	assert.True(t, Result{}.Blank())
}

func TestDecodeContentStream(t *testing.T) {
	stream := []byte("BT\n/F1 12 Tf\n72 720 Td\n(Hello World) Tj\nT*\n[(second) -100 (line)] TJ\nET")
	got := decodeContentStream(stream)
	assert.Contains(t, got, "Hello World")
	assert.Contains(t, got, "secondline")
}

func TestUnescapePDFString_Octal(t *testing.T) {
	assert.Equal(t, "A B", unescapePDFString([]byte(`A\040B`)))
	assert.Equal(t, "tab\there", unescapePDFString([]byte(`tab\there`)))
}
