package docedit

import "fmt"

// Constructors for the tool boundary. Each builds a fully-populated
// operation from primitive arguments.

func NewReplaceText(path, oldText, newText, description string) *Operation {
	if description == "" {
		description = "Replace text"
	}
	return &Operation{
		Kind:           KindReplaceText,
		Path:           path,
		Description:    description,
		OldText:        oldText,
		NewText:        newText,
		ParagraphIndex: -1,
	}
}

// NewInsertText inserts at the given paragraph index, or appends a new
// paragraph when paragraphIndex is negative.
func NewInsertText(path, newText string, paragraphIndex int, description string) *Operation {
	if description == "" {
		description = "Insert text"
	}
	return &Operation{
		Kind:           KindInsertText,
		Path:           path,
		Description:    description,
		NewText:        newText,
		ParagraphIndex: paragraphIndex,
	}
}

func NewDeleteText(path, oldText, description string) *Operation {
	if description == "" {
		description = "Delete text"
	}
	return &Operation{
		Kind:           KindDeleteText,
		Path:           path,
		Description:    description,
		OldText:        oldText,
		ParagraphIndex: -1,
	}
}

func NewAddComment(path, text, description string) *Operation {
	if description == "" {
		description = "Add comment"
	}
	return &Operation{
		Kind:           KindAddComment,
		Path:           path,
		Description:    description,
		NewText:        text,
		ParagraphIndex: -1,
	}
}

func NewWriteCell(path, sheet, cell string, oldValue, newValue any, description string) *Operation {
	if description == "" {
		description = fmt.Sprintf("Update cell %s", cell)
	}
	return &Operation{
		Kind:           KindWriteCell,
		Path:           path,
		Description:    description,
		Sheet:          sheet,
		Cell:           cell,
		OldValue:       oldValue,
		NewValue:       newValue,
		ParagraphIndex: -1,
	}
}

// NewWriteRange writes rows of values starting at the anchor cell.
func NewWriteRange(path, sheet, cellRange, anchor string, oldValues, newValues any, description string) *Operation {
	if description == "" {
		description = fmt.Sprintf("Update range %s", cellRange)
	}
	return &Operation{
		Kind:           KindWriteRange,
		Path:           path,
		Description:    description,
		Sheet:          sheet,
		Cell:           anchor,
		CellRange:      cellRange,
		OldValue:       oldValues,
		NewValue:       newValues,
		ParagraphIndex: -1,
	}
}

func NewAddFormula(path, sheet, cell, formula string, oldValue any, description string) *Operation {
	if description == "" {
		description = fmt.Sprintf("Add formula to %s", cell)
	}
	return &Operation{
		Kind:           KindAddFormula,
		Path:           path,
		Description:    description,
		Sheet:          sheet,
		Cell:           cell,
		OldValue:       oldValue,
		NewValue:       formula,
		Formula:        formula,
		ParagraphIndex: -1,
	}
}

func NewDeleteRow(path, sheet string, row int, oldValues any, description string) *Operation {
	if description == "" {
		description = fmt.Sprintf("Delete row %d", row)
	}
	return &Operation{
		Kind:           KindDeleteRow,
		Path:           path,
		Description:    description,
		Sheet:          sheet,
		Row:            row,
		OldValue:       oldValues,
		ParagraphIndex: -1,
	}
}

// NewInsertRow opens a row at the 1-indexed position; values, when
// provided, are written into the new row.
func NewInsertRow(path, sheet string, row int, values any, description string) *Operation {
	if description == "" {
		description = fmt.Sprintf("Insert row at %d", row)
	}
	return &Operation{
		Kind:           KindInsertRow,
		Path:           path,
		Description:    description,
		Sheet:          sheet,
		Row:            row,
		NewValue:       values,
		ParagraphIndex: -1,
	}
}

func NewDeleteColumn(path, sheet, column string, oldValues any, description string) *Operation {
	if description == "" {
		description = fmt.Sprintf("Delete column %s", column)
	}
	return &Operation{
		Kind:           KindDeleteColumn,
		Path:           path,
		Description:    description,
		Sheet:          sheet,
		Column:         column,
		OldValue:       oldValues,
		ParagraphIndex: -1,
	}
}

func NewInsertColumn(path, sheet, column string, values any, description string) *Operation {
	if description == "" {
		description = fmt.Sprintf("Insert column at %s", column)
	}
	return &Operation{
		Kind:           KindInsertColumn,
		Path:           path,
		Description:    description,
		Sheet:          sheet,
		Column:         column,
		NewValue:       values,
		ParagraphIndex: -1,
	}
}
