package tools

import (
	"context"

	"docpilot/internal/docedit"
	"docpilot/internal/docedit/sheet"
)

func sheetExecutors(editor *docedit.Editor) []Executor {
	return []Executor{
		&xlsxWriteCell{editor},
		&xlsxWriteRange{editor},
		&xlsxAddFormula{editor},
		&xlsxDeleteRow{editor},
		&xlsxInsertRow{editor},
		&xlsxDeleteColumn{editor},
		&xlsxInsertColumn{editor},
	}
}

// currentCell pre-reads a cell so the diff can show the old value.
// Best-effort: unreadable workbooks leave the old side empty and the
// editor reports the real failure at apply time.
func currentCell(editor *docedit.Editor, path, sheetName, cell string) any {
	abs, _, err := editor.Resolve(path)
	if err != nil {
		return nil
	}
	value, err := sheet.CurrentValue(abs, sheetName, cell)
	if err != nil {
		return nil
	}
	return value
}

func currentRange(editor *docedit.Editor, path, sheetName, cellRange string) any {
	abs, _, err := editor.Resolve(path)
	if err != nil {
		return nil
	}
	rows, err := sheet.CurrentRange(abs, sheetName, cellRange)
	if err != nil {
		return nil
	}
	return rows
}

type xlsxWriteCell struct {
	editor *docedit.Editor
}

func (t *xlsxWriteCell) Definition() Definition {
	return Definition{
		Name:        "xlsx_write_cell",
		Description: "Write a value to a spreadsheet cell. Requires user approval.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"path":        map[string]any{"type": "string"},
				"cell":        map[string]any{"type": "string", "description": "Cell reference, e.g. B2"},
				"value":       map[string]any{"description": "New cell value"},
				"sheet":       map[string]any{"type": "string", "description": "Sheet name; defaults to the active sheet"},
				"description": map[string]any{"type": "string"},
			},
			"required": []string{"path", "cell", "value"},
		},
	}
}

func (t *xlsxWriteCell) Execute(ctx context.Context, args map[string]any) string {
	path, ok := argString(args, "path")
	if !ok || path == "" {
		return missing("path")
	}
	cell, ok := argString(args, "cell")
	if !ok || cell == "" {
		return missing("cell")
	}
	value, ok := args["value"]
	if !ok {
		return missing("value")
	}
	sheetName := optString(args, "sheet")

	oldValue := currentCell(t.editor, path, sheetName, cell)
	op := docedit.NewWriteCell(path, sheetName, cell, oldValue, value, optString(args, "description"))
	return formatResult(t.editor.Execute(ctx, op))
}

type xlsxWriteRange struct {
	editor *docedit.Editor
}

func (t *xlsxWriteRange) Definition() Definition {
	return Definition{
		Name:        "xlsx_write_range",
		Description: "Write rows of values starting at a cell. Accepts a flat list (one column) or a list of rows. Requires user approval.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"path":        map[string]any{"type": "string"},
				"start_cell":  map[string]any{"type": "string", "description": "Top-left cell of the write, e.g. A1"},
				"values":      map[string]any{"type": "array", "description": "Values to write"},
				"sheet":       map[string]any{"type": "string"},
				"description": map[string]any{"type": "string"},
			},
			"required": []string{"path", "start_cell", "values"},
		},
	}
}

func (t *xlsxWriteRange) Execute(ctx context.Context, args map[string]any) string {
	path, ok := argString(args, "path")
	if !ok || path == "" {
		return missing("path")
	}
	start, ok := argString(args, "start_cell")
	if !ok || start == "" {
		return missing("start_cell")
	}
	values, ok := argList(args, "values")
	if !ok || len(values) == 0 {
		return missing("values")
	}
	sheetName := optString(args, "sheet")

	rows, _ := docedit.RowsOf(values)
	cellRange := rangeLabel(start, rows)
	oldValues := currentRange(t.editor, path, sheetName, cellRange)
	op := docedit.NewWriteRange(path, sheetName, cellRange, start, oldValues, values, optString(args, "description"))
	return formatResult(t.editor.Execute(ctx, op))
}

type xlsxAddFormula struct {
	editor *docedit.Editor
}

func (t *xlsxAddFormula) Definition() Definition {
	return Definition{
		Name:        "xlsx_add_formula",
		Description: "Set a formula on a spreadsheet cell. Requires user approval.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"path":        map[string]any{"type": "string"},
				"cell":        map[string]any{"type": "string"},
				"formula":     map[string]any{"type": "string", "description": "Formula, with or without a leading ="},
				"sheet":       map[string]any{"type": "string"},
				"description": map[string]any{"type": "string"},
			},
			"required": []string{"path", "cell", "formula"},
		},
	}
}

func (t *xlsxAddFormula) Execute(ctx context.Context, args map[string]any) string {
	path, ok := argString(args, "path")
	if !ok || path == "" {
		return missing("path")
	}
	cell, ok := argString(args, "cell")
	if !ok || cell == "" {
		return missing("cell")
	}
	formula, ok := argString(args, "formula")
	if !ok || formula == "" {
		return missing("formula")
	}
	sheetName := optString(args, "sheet")

	oldValue := currentCell(t.editor, path, sheetName, cell)
	op := docedit.NewAddFormula(path, sheetName, cell, formula, oldValue, optString(args, "description"))
	return formatResult(t.editor.Execute(ctx, op))
}

type xlsxDeleteRow struct {
	editor *docedit.Editor
}

func (t *xlsxDeleteRow) Definition() Definition {
	return Definition{
		Name:        "xlsx_delete_row",
		Description: "Delete a 1-indexed row from a spreadsheet. Requires user approval.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"path":        map[string]any{"type": "string"},
				"row":         map[string]any{"type": "integer"},
				"sheet":       map[string]any{"type": "string"},
				"description": map[string]any{"type": "string"},
			},
			"required": []string{"path", "row"},
		},
	}
}

func (t *xlsxDeleteRow) Execute(ctx context.Context, args map[string]any) string {
	path, ok := argString(args, "path")
	if !ok || path == "" {
		return missing("path")
	}
	row, ok := argInt(args, "row")
	if !ok || row < 1 {
		return missing("row")
	}

	op := docedit.NewDeleteRow(path, optString(args, "sheet"), row, nil, optString(args, "description"))
	return formatResult(t.editor.Execute(ctx, op))
}

type xlsxInsertRow struct {
	editor *docedit.Editor
}

func (t *xlsxInsertRow) Definition() Definition {
	return Definition{
		Name:        "xlsx_insert_row",
		Description: "Insert a row at a 1-indexed position, optionally filling it with values. Requires user approval.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"path":        map[string]any{"type": "string"},
				"row":         map[string]any{"type": "integer"},
				"values":      map[string]any{"type": "array", "description": "Optional values for the new row"},
				"sheet":       map[string]any{"type": "string"},
				"description": map[string]any{"type": "string"},
			},
			"required": []string{"path", "row"},
		},
	}
}

func (t *xlsxInsertRow) Execute(ctx context.Context, args map[string]any) string {
	path, ok := argString(args, "path")
	if !ok || path == "" {
		return missing("path")
	}
	row, ok := argInt(args, "row")
	if !ok || row < 1 {
		return missing("row")
	}
	var values any
	if list, ok := argList(args, "values"); ok {
		values = list
	}

	op := docedit.NewInsertRow(path, optString(args, "sheet"), row, values, optString(args, "description"))
	return formatResult(t.editor.Execute(ctx, op))
}

type xlsxDeleteColumn struct {
	editor *docedit.Editor
}

func (t *xlsxDeleteColumn) Definition() Definition {
	return Definition{
		Name:        "xlsx_delete_column",
		Description: "Delete a column (by letter) from a spreadsheet. Requires user approval.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"path":        map[string]any{"type": "string"},
				"column":      map[string]any{"type": "string", "description": "Column letter, e.g. B"},
				"sheet":       map[string]any{"type": "string"},
				"description": map[string]any{"type": "string"},
			},
			"required": []string{"path", "column"},
		},
	}
}

func (t *xlsxDeleteColumn) Execute(ctx context.Context, args map[string]any) string {
	path, ok := argString(args, "path")
	if !ok || path == "" {
		return missing("path")
	}
	column, ok := argString(args, "column")
	if !ok || column == "" {
		return missing("column")
	}

	op := docedit.NewDeleteColumn(path, optString(args, "sheet"), column, nil, optString(args, "description"))
	return formatResult(t.editor.Execute(ctx, op))
}

type xlsxInsertColumn struct {
	editor *docedit.Editor
}

func (t *xlsxInsertColumn) Definition() Definition {
	return Definition{
		Name:        "xlsx_insert_column",
		Description: "Insert a column at a letter position, optionally filling it with values. Requires user approval.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"path":        map[string]any{"type": "string"},
				"column":      map[string]any{"type": "string"},
				"values":      map[string]any{"type": "array", "description": "Optional values written down the new column"},
				"sheet":       map[string]any{"type": "string"},
				"description": map[string]any{"type": "string"},
			},
			"required": []string{"path", "column"},
		},
	}
}

func (t *xlsxInsertColumn) Execute(ctx context.Context, args map[string]any) string {
	path, ok := argString(args, "path")
	if !ok || path == "" {
		return missing("path")
	}
	column, ok := argString(args, "column")
	if !ok || column == "" {
		return missing("column")
	}
	var values any
	if list, ok := argList(args, "values"); ok {
		values = list
	}

	op := docedit.NewInsertColumn(path, optString(args, "sheet"), column, values, optString(args, "description"))
	return formatResult(t.editor.Execute(ctx, op))
}

// rangeLabel derives the written rectangle from the anchor and row shape.
func rangeLabel(start string, rows [][]any) string {
	if len(rows) == 0 {
		return start
	}
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	end, ok := offsetCell(start, width-1, len(rows)-1)
	if !ok || end == start {
		return start
	}
	return start + ":" + end
}
