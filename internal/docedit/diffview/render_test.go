package diffview

import (
	"strings"
	"testing"

	"docpilot/internal/docedit"
)

func TestRenderReplaceText(t *testing.T) {
	op := docedit.NewReplaceText("report.docx", "The March deadline", "The April deadline", "")
	op.Location = "Paragraph 4"

	got := Render(op)
	want := strings.Join([]string{
		"@ Paragraph 4",
		"- The March deadline",
		"+ The April deadline",
	}, "\n")
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderMultilineBlocks(t *testing.T) {
	op := docedit.NewReplaceText("report.docx", "line one\nline two", "line one\nline 2", "")
	got := Render(op)
	lines := strings.Split(got, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), got)
	}
	if lines[0] != "- line one" || lines[1] != "- line two" {
		t.Fatalf("old block malformed:\n%s", got)
	}
	if lines[2] != "+ line one" || lines[3] != "+ line 2" {
		t.Fatalf("new block malformed:\n%s", got)
	}
}

func TestRenderInsertAndDelete(t *testing.T) {
	insert := Render(docedit.NewInsertText("report.docx", "A new paragraph", -1, ""))
	if insert != "+ A new paragraph" {
		t.Fatalf("insert: got %q", insert)
	}
	if strings.Contains(insert, "- ") {
		t.Fatal("insert must carry no removed lines")
	}

	del := Render(docedit.NewDeleteText("report.docx", "Old text", ""))
	if del != "- Old text" {
		t.Fatalf("delete: got %q", del)
	}
}

func TestRenderContextLines(t *testing.T) {
	op := docedit.NewDeleteText("report.docx", "middle", "")
	op.ContextBefore = "before"
	op.ContextAfter = "after"

	got := Render(op)
	want := "  before\n- middle\n  after"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderCellDiff(t *testing.T) {
	op := docedit.NewWriteCell("budget.xlsx", "Data", "B2", 1500, 1800, "")
	got := Render(op)
	want := "@ Data!B2:\n- 1500\n+ 1800"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderCellDiffNoOldValue(t *testing.T) {
	op := docedit.NewWriteCell("budget.xlsx", "", "C3", nil, "total", "")
	got := Render(op)
	want := "@ C3:\n+ total"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderRangeDiff(t *testing.T) {
	op := docedit.NewWriteRange("budget.xlsx", "Data", "A1:B2", "A1",
		[]any{[]any{1, 2}, []any{3, 4}},
		[]any{[]any{1, 2}, []any{3, 9}},
		"")

	got := Render(op)
	if !strings.HasPrefix(got, "@ Range: Data!A1:B2") {
		t.Fatalf("missing range header:\n%s", got)
	}
	if strings.Contains(got, "Row 1:") {
		t.Fatal("unchanged row must not render")
	}
	if !strings.Contains(got, "Row 2:") {
		t.Fatalf("changed row missing:\n%s", got)
	}
	if !strings.Contains(got, "- 3, 4") || !strings.Contains(got, "+ 3, 9") {
		t.Fatalf("row pair malformed:\n%s", got)
	}
}

func TestRenderRangeDiffTruncates(t *testing.T) {
	oldRows := make([]any, 20)
	newRows := make([]any, 20)
	for i := range oldRows {
		oldRows[i] = []any{i}
		newRows[i] = []any{i * 10}
	}
	op := docedit.NewWriteRange("budget.xlsx", "", "A1:A20", "A1", oldRows, newRows, "")

	got := Render(op)
	if strings.Count(got, "Row ") != maxRangePreview {
		t.Fatalf("expected %d row pairs, got:\n%s", maxRangePreview, got)
	}
	if !strings.Contains(got, "... and more rows") {
		t.Fatalf("truncation marker missing:\n%s", got)
	}
}

func TestRenderRangeDiffNotesOversizedEqualRange(t *testing.T) {
	rows := make([]any, 6)
	for i := range rows {
		rows[i] = []any{"same"}
	}
	op := docedit.NewWriteRange("budget.xlsx", "", "A1:A6", "A1", rows, rows, "")

	got := Render(op)
	if strings.Contains(got, "Row ") {
		t.Fatalf("equal rows must not render pairs:\n%s", got)
	}
	if !strings.Contains(got, "... and more rows") {
		t.Fatalf("ranges beyond the preview cap need the note even with no differing pairs:\n%s", got)
	}
}

func TestRenderRangeDiffNoNoteWithinPreview(t *testing.T) {
	op := docedit.NewWriteRange("budget.xlsx", "", "A1:A3", "A1",
		[]any{[]any{1}, []any{2}, []any{3}},
		[]any{[]any{1}, []any{9}, []any{3}},
		"")
	if got := Render(op); strings.Contains(got, "... and more rows") {
		t.Fatalf("3-row range must not claim more rows:\n%s", got)
	}
}

func TestRenderFormula(t *testing.T) {
	op := docedit.NewAddFormula("budget.xlsx", "Data", "D10", "=SUM(D2:D9)", 0, "")
	got := Render(op)
	if !strings.Contains(got, "@ Data!D10:") {
		t.Fatalf("formula diff missing location:\n%s", got)
	}
	if !strings.Contains(got, "+ =SUM(D2:D9)") {
		t.Fatalf("formula diff missing new value:\n%s", got)
	}
}

func TestColorizePreservesContentWithoutColor(t *testing.T) {
	// fatih/color disables itself when output is not a terminal; under the
	// test runner the colorized string equals the input.
	diff := "@ Paragraph 1\n- old\n+ new\n  ctx"
	got := Colorize(diff)
	for _, line := range strings.Split(diff, "\n") {
		if !strings.Contains(got, line) {
			t.Fatalf("line %q lost in colorize", line)
		}
	}
}

func TestChangeSummary(t *testing.T) {
	text := docedit.NewReplaceText("report.docx", "one\ntwo", "one\nthree", "")
	if got := ChangeSummary(text); got == "" || got == "no changes" {
		t.Fatalf("text change should summarize, got %q", got)
	}

	cell := docedit.NewWriteCell("budget.xlsx", "Data", "B2", 1, 2, "")
	if got := ChangeSummary(cell); got != "" {
		t.Fatalf("cell-family operations carry no summary, got %q", got)
	}
}

func TestStatsAndSummary(t *testing.T) {
	added, removed := Stats("one\ntwo", "one\nthree\nfour")
	if added == 0 || removed == 0 {
		t.Fatalf("expected both added and removed lines, got +%d -%d", added, removed)
	}

	if Summary(0, 0) != "no changes" {
		t.Fatalf("empty summary: %q", Summary(0, 0))
	}
	if got := Summary(2, 1); got != "+2, -1 lines" {
		t.Fatalf("summary: %q", got)
	}
	if got := Summary(3, 0); got != "+3 lines" {
		t.Fatalf("summary: %q", got)
	}
}
