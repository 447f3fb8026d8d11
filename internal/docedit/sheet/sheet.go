// Package sheet implements the Spreadsheet-like document applier backed by
// excelize: cell and range writes, formulas, and row/column structure
// changes against .xlsx workbooks.
package sheet

import (
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"docpilot/internal/docedit"
	"docpilot/internal/docedit/diffview"
)

// Applier performs the physical writes for cell-family operations.
type Applier struct{}

// NewEditor wires a spreadsheet applier into the shared editor state machine.
func NewEditor(root string, ledger *docedit.Ledger, decider docedit.Decider, opts docedit.EditorOptions) *docedit.Editor {
	return docedit.NewEditor(root, ledger, decider, &Applier{}, opts)
}

func (a *Applier) Extensions() []string {
	return []string{".xlsx", ".xlsm"}
}

func (a *Applier) RenderDiff(op *docedit.Operation) string {
	return diffview.Render(op)
}

func (a *Applier) Summarize(op *docedit.Operation) string {
	return diffview.ChangeSummary(op)
}

func (a *Applier) Apply(op *docedit.Operation, absPath string) (string, error) {
	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %s", op.Path)
		}
		return "", err
	}

	wb, err := excelize.OpenFile(absPath)
	if err != nil {
		return "", fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	sheetName, err := resolveSheet(wb, op.Sheet)
	if err != nil {
		return "", err
	}

	var message string
	switch op.Kind {
	case docedit.KindWriteCell:
		message, err = writeCell(wb, sheetName, op)
	case docedit.KindWriteRange:
		message, err = writeRange(wb, sheetName, op)
	case docedit.KindAddFormula:
		message, err = addFormula(wb, sheetName, op)
	case docedit.KindDeleteRow:
		message, err = deleteRow(wb, sheetName, op)
	case docedit.KindInsertRow:
		message, err = insertRow(wb, sheetName, op)
	case docedit.KindDeleteColumn:
		message, err = deleteColumn(wb, sheetName, op)
	case docedit.KindInsertColumn:
		message, err = insertColumn(wb, sheetName, op)
	default:
		return "", fmt.Errorf("unsupported operation %s for spreadsheets", op.Kind)
	}
	if err != nil {
		return "", err
	}

	if err := wb.Save(); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	return message, nil
}

// resolveSheet validates the named sheet, defaulting to the active one.
// A miss echoes the available sheets.
func resolveSheet(wb *excelize.File, name string) (string, error) {
	if name == "" {
		return wb.GetSheetName(wb.GetActiveSheetIndex()), nil
	}
	available := wb.GetSheetList()
	for _, s := range available {
		if s == name {
			return name, nil
		}
	}
	return "", fmt.Errorf("sheet not found: %s (available: %s)", name, strings.Join(available, ", "))
}

func writeCell(wb *excelize.File, sheetName string, op *docedit.Operation) (string, error) {
	if op.Cell == "" {
		return "", fmt.Errorf("no cell reference provided")
	}
	if err := wb.SetCellValue(sheetName, op.Cell, op.NewValue); err != nil {
		return "", err
	}
	return fmt.Sprintf("Updated %s!%s = %v", sheetName, op.Cell, op.NewValue), nil
}

func writeRange(wb *excelize.File, sheetName string, op *docedit.Operation) (string, error) {
	rows, ok := docedit.RowsOf(op.NewValue)
	if !ok {
		return "", fmt.Errorf("range operation requires a sequence of values")
	}

	startCol, startRow, err := rangeAnchor(op)
	if err != nil {
		return "", err
	}

	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(startCol+c, startRow+r)
			if err != nil {
				return "", err
			}
			if err := wb.SetCellValue(sheetName, cell, value); err != nil {
				return "", err
			}
		}
	}

	label := op.CellRange
	if label == "" {
		label = op.Cell
	}
	return fmt.Sprintf("Updated range %s!%s (%d row(s))", sheetName, label, len(rows)), nil
}

// rangeAnchor picks the top-left coordinate for a range write: the single
// cell when given, else the left edge of the range, else A1.
func rangeAnchor(op *docedit.Operation) (col, row int, err error) {
	anchor := op.Cell
	if anchor == "" && op.CellRange != "" {
		anchor, _, _ = strings.Cut(op.CellRange, ":")
	}
	if anchor == "" {
		return 1, 1, nil
	}
	return excelize.CellNameToCoordinates(anchor)
}

func addFormula(wb *excelize.File, sheetName string, op *docedit.Operation) (string, error) {
	if op.Cell == "" {
		return "", fmt.Errorf("no cell reference provided")
	}
	formula := op.Formula
	if formula == "" {
		formula = fmt.Sprint(op.NewValue)
	}
	if !strings.HasPrefix(formula, "=") {
		formula = "=" + formula
	}
	if err := wb.SetCellFormula(sheetName, op.Cell, strings.TrimPrefix(formula, "=")); err != nil {
		return "", err
	}
	return fmt.Sprintf("Added formula to %s!%s: %s", sheetName, op.Cell, formula), nil
}

func deleteRow(wb *excelize.File, sheetName string, op *docedit.Operation) (string, error) {
	if op.Row < 1 {
		return "", fmt.Errorf("no row index provided")
	}
	if err := wb.RemoveRow(sheetName, op.Row); err != nil {
		return "", err
	}
	return fmt.Sprintf("Deleted row %d from %s", op.Row, sheetName), nil
}

func insertRow(wb *excelize.File, sheetName string, op *docedit.Operation) (string, error) {
	if op.Row < 1 {
		return "", fmt.Errorf("no row index provided")
	}
	if err := wb.InsertRows(sheetName, op.Row, 1); err != nil {
		return "", err
	}
	if values, ok := op.NewValue.([]any); ok {
		for c, value := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, op.Row)
			if err != nil {
				return "", err
			}
			if err := wb.SetCellValue(sheetName, cell, value); err != nil {
				return "", err
			}
		}
	}
	return fmt.Sprintf("Inserted row at position %d in %s", op.Row, sheetName), nil
}

func deleteColumn(wb *excelize.File, sheetName string, op *docedit.Operation) (string, error) {
	if op.Column == "" {
		return "", fmt.Errorf("no column provided")
	}
	if err := wb.RemoveCol(sheetName, op.Column); err != nil {
		return "", err
	}
	return fmt.Sprintf("Deleted column %s from %s", op.Column, sheetName), nil
}

func insertColumn(wb *excelize.File, sheetName string, op *docedit.Operation) (string, error) {
	if op.Column == "" {
		return "", fmt.Errorf("no column provided")
	}
	if err := wb.InsertCols(sheetName, op.Column, 1); err != nil {
		return "", err
	}
	if values, ok := op.NewValue.([]any); ok {
		colNum, err := excelize.ColumnNameToNumber(op.Column)
		if err != nil {
			return "", err
		}
		for r, value := range values {
			cell, err := excelize.CoordinatesToCellName(colNum, r+1)
			if err != nil {
				return "", err
			}
			if err := wb.SetCellValue(sheetName, cell, value); err != nil {
				return "", err
			}
		}
	}
	return fmt.Sprintf("Inserted column at %s in %s", op.Column, sheetName), nil
}

var _ docedit.Applier = (*Applier)(nil)
