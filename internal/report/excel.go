package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"drefacil/internal/dre"
)

// WriteExcel renders the statement as a one-sheet workbook.
func WriteExcel(w io.Writer, s dre.Statement) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "DRE"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	if err := f.SetCellValue(sheet, "A1", periodTitle(s)); err != nil {
		return fmt.Errorf("write title: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", bold); err != nil {
		return fmt.Errorf("style title: %w", err)
	}

	row := 3
	for _, ln := range statementLines(s) {
		labelCell := fmt.Sprintf("A%d", row)
		valueCell := fmt.Sprintf("B%d", row)
		if err := f.SetCellValue(sheet, labelCell, ln.Label); err != nil {
			return fmt.Errorf("write label row %d: %w", row, err)
		}
		value, _ := ln.Value.Float64()
		if err := f.SetCellValue(sheet, valueCell, value); err != nil {
			return fmt.Errorf("write value row %d: %w", row, err)
		}
		if ln.Subtotal {
			if err := f.SetCellStyle(sheet, labelCell, valueCell, bold); err != nil {
				return fmt.Errorf("style row %d: %w", row, err)
			}
		}
		row++
	}

	row++
	for _, m := range marginRows(s) {
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", row), m[0]); err != nil {
			return fmt.Errorf("write margin label row %d: %w", row, err)
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", row), m[1]); err != nil {
			return fmt.Errorf("write margin value row %d: %w", row, err)
		}
		row++
	}

	if err := f.SetColWidth(sheet, "A", "A", 36); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
