package sheet

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// CurrentValue reads a cell's present value so diffs can show the old side.
// Errors are returned rather than swallowed; callers treating the old value
// as optional may ignore them.
func CurrentValue(absPath, sheetName, cell string) (string, error) {
	wb, err := excelize.OpenFile(absPath)
	if err != nil {
		return "", err
	}
	defer wb.Close()
	resolved, err := resolveSheet(wb, sheetName)
	if err != nil {
		return "", err
	}
	return wb.GetCellValue(resolved, cell)
}

// CurrentRange reads the present values of a rectangular range as rows.
func CurrentRange(absPath, sheetName, cellRange string) ([][]any, error) {
	wb, err := excelize.OpenFile(absPath)
	if err != nil {
		return nil, err
	}
	defer wb.Close()
	resolved, err := resolveSheet(wb, sheetName)
	if err != nil {
		return nil, err
	}

	first, rest, _ := strings.Cut(cellRange, ":")
	last := rest
	if last == "" {
		last = first
	}
	startCol, startRow, err := excelize.CellNameToCoordinates(first)
	if err != nil {
		return nil, err
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(last)
	if err != nil {
		return nil, err
	}

	rows := make([][]any, 0, endRow-startRow+1)
	for r := startRow; r <= endRow; r++ {
		row := make([]any, 0, endCol-startCol+1)
		for c := startCol; c <= endCol; c++ {
			cell, err := excelize.CoordinatesToCellName(c, r)
			if err != nil {
				return nil, err
			}
			value, err := wb.GetCellValue(resolved, cell)
			if err != nil {
				return nil, err
			}
			row = append(row, value)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
