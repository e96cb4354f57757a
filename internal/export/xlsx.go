package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/docuproc/inspection-reports/internal/report"
)

const sheetName = "Report"

func writeXlsx(rep report.Report) ([]byte, error) {
	f := excelize.NewFile()
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("new sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	set := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheetName, cell, v)
	}

	set(1, 1, reportHeading)
	cursor := 2

	for _, k := range sortedKeys(rep.Header) {
		set(1, cursor, k)
		set(2, cursor, rep.Header[k])
		cursor++
	}
	cursor++ // blank row between header block and table

	if len(rep.Table.Columns) > 0 && len(rep.Table.Rows) > 0 {
		for i, col := range rep.Table.Columns {
			set(i+1, cursor, col)
		}
		cursor++
		for _, row := range rep.Table.Rows {
			for i, cell := range row {
				set(i+1, cursor, cell)
			}
			cursor++
		}
	}

	_ = f.SetColWidth(sheetName, "A", "B", 28)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
