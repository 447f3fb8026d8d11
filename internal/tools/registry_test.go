package tools

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"docpilot/internal/docedit"
	"docpilot/internal/docedit/decision"
	"docpilot/internal/docedit/sheet"
	"docpilot/internal/docedit/word"
)

// newTestRegistry builds a registry over a temp workspace. scriptedVerdict
// answers every prompt; pass VerdictApproved to let operations through.
func newTestRegistry(t *testing.T, verdict decision.Verdict) (*Registry, string) {
	t.Helper()
	root := t.TempDir()
	ledger := docedit.NewLedger()
	decider := scriptedDecider{verdict: verdict}
	opts := docedit.EditorOptions{}
	wordEditor := word.NewEditor(root, ledger, decider, opts)
	sheetEditor := sheet.NewEditor(root, ledger, decider, opts)
	return NewRegistry(wordEditor, sheetEditor, ledger, nil), root
}

type scriptedDecider struct {
	verdict decision.Verdict
}

func (d scriptedDecider) Decide(ctx context.Context, path, description, diff, summary, kindLabel string) decision.Verdict {
	return d.verdict
}

func seedWorkbook(t *testing.T, root string, cells map[string]any) {
	t.Helper()
	wb := excelize.NewFile()
	defer wb.Close()
	for cell, value := range cells {
		require.NoError(t, wb.SetCellValue("Sheet1", cell, value))
	}
	require.NoError(t, wb.SaveAs(filepath.Join(root, "budget.xlsx")))
}

func TestRegistryListsAllTools(t *testing.T) {
	r, _ := newTestRegistry(t, decision.VerdictApproved)

	defs := r.List()
	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.Name
	}

	expected := []string{
		"docx_add_comment", "docx_delete_text", "docx_insert_text", "docx_replace_text",
		"xlsx_add_formula", "xlsx_delete_column", "xlsx_delete_row",
		"xlsx_insert_column", "xlsx_insert_row", "xlsx_write_cell", "xlsx_write_range",
	}
	assert.Equal(t, expected, names, "definitions should be name-sorted and complete")

	for _, d := range defs {
		assert.NotEmpty(t, d.Description, "%s needs a description", d.Name)
		assert.NotEmpty(t, d.Parameters, "%s needs parameters", d.Name)
	}
}

func TestRegistryUnknownTool(t *testing.T) {
	r, _ := newTestRegistry(t, decision.VerdictApproved)
	out := r.Execute(context.Background(), "docx_rotate_pages", nil)
	assert.Equal(t, `Error: unknown tool "docx_rotate_pages"`, out)
}

func TestToolArgumentValidation(t *testing.T) {
	r, _ := newTestRegistry(t, decision.VerdictApproved)
	ctx := context.Background()

	cases := []struct {
		tool string
		args map[string]any
		want string
	}{
		{"docx_replace_text", map[string]any{}, `Error: missing or invalid "path"`},
		{"docx_replace_text", map[string]any{"path": "a.docx"}, `Error: missing or invalid "old_text"`},
		{"docx_replace_text", map[string]any{"path": "a.docx", "old_text": "x"}, `Error: missing or invalid "new_text"`},
		{"docx_insert_text", map[string]any{"path": "a.docx"}, `Error: missing or invalid "new_text"`},
		{"xlsx_write_cell", map[string]any{"path": "b.xlsx"}, `Error: missing or invalid "cell"`},
		{"xlsx_delete_row", map[string]any{"path": "b.xlsx"}, `Error: missing or invalid "row"`},
		{"xlsx_delete_column", map[string]any{"path": "b.xlsx"}, `Error: missing or invalid "column"`},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, r.Execute(ctx, tc.tool, tc.args), "tool %s", tc.tool)
	}
}

func TestWriteCellEndToEnd(t *testing.T) {
	r, root := newTestRegistry(t, decision.VerdictApproved)
	seedWorkbook(t, root, map[string]any{"B2": 1500})

	out := r.Execute(context.Background(), "xlsx_write_cell", map[string]any{
		"path":  "budget.xlsx",
		"cell":  "B2",
		"value": 1800,
	})
	assert.False(t, strings.HasPrefix(out, "Error:"), "unexpected error: %s", out)
	assert.Contains(t, out, "B2")

	value, err := sheet.CurrentValue(filepath.Join(root, "budget.xlsx"), "", "B2")
	require.NoError(t, err)
	assert.Equal(t, "1800", value)
}

func TestWriteCellRejected(t *testing.T) {
	r, root := newTestRegistry(t, decision.VerdictRejected)
	seedWorkbook(t, root, map[string]any{"B2": 1500})

	args := map[string]any{"path": "budget.xlsx", "cell": "B2", "value": 1800}
	out := r.Execute(context.Background(), "xlsx_write_cell", args)
	assert.Equal(t, "Error: Operation rejected by user.", out)

	// The rejection is remembered for the identical retry.
	out = r.Execute(context.Background(), "xlsx_write_cell", args)
	assert.Equal(t, "Error: Operation was previously rejected.", out)

	value, err := sheet.CurrentValue(filepath.Join(root, "budget.xlsx"), "", "B2")
	require.NoError(t, err)
	assert.Equal(t, "1500", value, "rejected write must not touch the file")
}

func TestSandboxEscapeReportsError(t *testing.T) {
	r, _ := newTestRegistry(t, decision.VerdictApproved)
	out := r.Execute(context.Background(), "docx_replace_text", map[string]any{
		"path":     "../../etc/passwd",
		"old_text": "root",
		"new_text": "toor",
	})
	assert.True(t, strings.HasPrefix(out, "Error:"), "escape must fail: %s", out)
	assert.Contains(t, out, "outside workspace")
}

func TestResetClearsLedger(t *testing.T) {
	r, root := newTestRegistry(t, decision.VerdictRejected)
	seedWorkbook(t, root, map[string]any{"B2": 1500})

	args := map[string]any{"path": "budget.xlsx", "cell": "B2", "value": 1800}
	r.Execute(context.Background(), "xlsx_write_cell", args)
	assert.Equal(t, "Error: Operation was previously rejected.",
		r.Execute(context.Background(), "xlsx_write_cell", args))

	r.Reset()
	// After reset the operation prompts again instead of short-circuiting.
	assert.Equal(t, "Error: Operation rejected by user.",
		r.Execute(context.Background(), "xlsx_write_cell", args))
}

func TestArgHelpers(t *testing.T) {
	args := map[string]any{
		"name":  "report.docx",
		"row":   float64(3),
		"count": 7,
		"cells": []any{"a", "b"},
	}

	s, ok := argString(args, "name")
	assert.True(t, ok)
	assert.Equal(t, "report.docx", s)
	_, ok = argString(args, "absent")
	assert.False(t, ok)
	assert.Equal(t, "", optString(args, "absent"))

	n, ok := argInt(args, "row")
	assert.True(t, ok, "JSON numbers decode as float64")
	assert.Equal(t, 3, n)
	n, ok = argInt(args, "count")
	assert.True(t, ok)
	assert.Equal(t, 7, n)
	_, ok = argInt(args, "name")
	assert.False(t, ok)

	list, ok := argList(args, "cells")
	assert.True(t, ok)
	assert.Len(t, list, 2)
	_, ok = argList(args, "row")
	assert.False(t, ok)
}
