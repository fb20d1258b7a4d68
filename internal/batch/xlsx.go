package batch

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadColumn extracts one column of cell values from a sheet, skipping the
// header row. The returned slice is positional: empty cells stay as empty
// strings so row indexes line up with the source spreadsheet.
func ReadColumn(path, sheet string, column int) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	values := make([]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if column < len(row) {
			values = append(values, row[column])
		} else {
			values = append(values, "")
		}
	}
	return values, nil
}

var resultHeaders = []string{
	"Row",
	"Bill Rate",
	"Min Bill Rate",
	"Max Bill Rate",
	"Duration",
	"Experience",
	"Requisition ID",
	"Location",
	"Skills",
	"Summary",
	"Contact",
	"Provider",
	"Status",
	"Error",
}

// WriteResults writes a job summary as a result workbook.
func WriteResults(path string, summary *Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Extraction Results"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("remove default sheet: %w", err)
	}

	for i, h := range resultHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for rowNum, result := range summary.Results {
		values := resultRow(result)
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNum+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", result.RowIndex, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func resultRow(result RowResult) []any {
	if result.Record == nil {
		values := make([]any, len(resultHeaders))
		values[0] = result.RowIndex + 1
		values[len(values)-1] = result.Error
		return values
	}

	rec := result.Record
	var min, max any
	if rec.RateMin != nil {
		min = *rec.RateMin
	}
	if rec.RateMax != nil {
		max = *rec.RateMax
	}

	return []any{
		result.RowIndex + 1,
		rec.Rate,
		min,
		max,
		rec.Duration,
		rec.Experience,
		rec.ExternalID,
		rec.Location,
		strings.Join(rec.Skills, ", "),
		rec.Summary,
		rec.Contact,
		rec.Provider,
		string(rec.Status),
		result.Error,
	}
}
