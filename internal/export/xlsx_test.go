package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/docuproc/inspection-reports/internal/report"
)

func TestXLSX_LayoutRoundTrip(t *testing.T) {
	rep := report.Report{
		Header: report.Header{"Part No": "42"},
		Table: report.Table{
			Columns: []string{"Dim", "Nominal"},
			Rows:    [][]string{{"d1", "10.0"}, {"d2", "5.5"}},
		},
	}

	data, err := NewService(nil).XLSX(rep)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	get := func(cell string) string {
		v, err := f.GetCellValue(sheetName, cell)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Inspection Report", get("A1"))
	assert.Equal(t, "Part No", get("A2"))
	assert.Equal(t, "42", get("B2"))
	// Blank separator row, then the table block.
	assert.Equal(t, "Dim", get("A4"))
	assert.Equal(t, "Nominal", get("B4"))
	assert.Equal(t, "d1", get("A5"))
	assert.Equal(t, "5.5", get("B6"))
}

func TestXLSX_EmptyReportStillOpens(t *testing.T) {
	data, err := NewService(nil).XLSX(report.Report{})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Inspection Report", v)
}
