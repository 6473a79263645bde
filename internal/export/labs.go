// Package export renders health data as downloadable spreadsheets.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"biogram-server/internal/models"
)

// ContentTypeXLSX is the MIME type of the generated workbooks.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const labSheet = "Lab Results"

// LabResultsHeader is the column order of the lab export.
var LabResultsHeader = []string{
	"Test Date",
	"Test Name",
	"Value",
	"Unit",
	"Reference Range",
	"Status",
	"Provider",
	"Notes",
}

var labColumnWidths = []float64{12, 30, 12, 10, 20, 10, 28, 40}

// LabResultsWorkbook writes results, in the order given, to an .xlsx file.
// Abnormal and critical rows are highlighted.
func LabResultsWorkbook(results []models.LabResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(labSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	flagStyles, err := statusStyles(f)
	if err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(labSheet, "A1", &LabResultsHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	last, _ := excelize.ColumnNumberToName(len(LabResultsHeader))
	if err := f.SetCellStyle(labSheet, "A1", last+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("failed to set header style: %w", err)
	}
	for i, width := range labColumnWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(labSheet, col, col, width); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, r := range results {
		row := i + 2
		cell, _ := excelize.CoordinatesToCellName(1, row)
		values := []interface{}{
			r.TestDate.Format("2006-01-02"),
			r.TestName,
			r.Value,
			r.Unit,
			r.ReferenceRange,
			string(r.Status),
			r.Provider,
			r.Notes,
		}
		if err := f.SetSheetRow(labSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", row, err)
		}
		if style, ok := flagStyles[r.Status]; ok {
			end, _ := excelize.CoordinatesToCellName(len(LabResultsHeader), row)
			if err := f.SetCellStyle(labSheet, cell, end, style); err != nil {
				return nil, fmt.Errorf("failed to style row %d: %w", row, err)
			}
		}
	}

	if err := f.SetPanes(labSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write to buffer: %w", err)
	}
	return buf.Bytes(), nil
}

func statusStyles(f *excelize.File) (map[models.LabStatus]int, error) {
	colors := map[models.LabStatus]string{
		models.LabAbnormal: "#FFF4CE",
		models.LabCritical: "#FDE7E9",
	}
	styles := make(map[models.LabStatus]int, len(colors))
	for status, color := range colors {
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create %s style: %w", status, err)
		}
		styles[status] = id
	}
	return styles, nil
}
