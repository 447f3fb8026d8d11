// Package diffview renders operations as tag-annotated text. Each line
// carries a one-glyph tag — "+ " added, "- " removed, "@ " header, two
// spaces for context — and presentation layers translate the tags into
// their own styling.
package diffview

import (
	"fmt"
	"strings"

	"docpilot/internal/docedit"
)

// maxRangePreview caps how many differing row pairs a range diff shows.
const maxRangePreview = 5

// Render produces the diff for any operation. Text-family operations show
// the full old block followed by the full new block; the old text is
// already pre-identified, so an aligned line-diff would add nothing.
func Render(op *docedit.Operation) string {
	if op.Kind.Family() == docedit.FamilyCell {
		if op.IsRange() {
			return renderRange(op)
		}
		return renderCell(cellLocation(op.Sheet, op.Cell), op.OldValue, op.NewValue)
	}
	return renderText(op)
}

func renderText(op *docedit.Operation) string {
	var lines []string

	if op.Location != "" {
		lines = append(lines, "@ "+op.Location)
	} else if op.ContextBefore != "" {
		for _, l := range strings.Split(op.ContextBefore, "\n") {
			lines = append(lines, "  "+l)
		}
	}

	switch op.Kind {
	case docedit.KindInsertText, docedit.KindAddComment:
		for _, l := range splitBlock(op.NewText) {
			lines = append(lines, "+ "+l)
		}
	case docedit.KindDeleteText:
		for _, l := range splitBlock(op.OldText) {
			lines = append(lines, "- "+l)
		}
	default:
		for _, l := range splitBlock(op.OldText) {
			lines = append(lines, "- "+l)
		}
		for _, l := range splitBlock(op.NewText) {
			lines = append(lines, "+ "+l)
		}
	}

	if op.Location == "" && op.ContextAfter != "" {
		for _, l := range strings.Split(op.ContextAfter, "\n") {
			lines = append(lines, "  "+l)
		}
	}

	return strings.Join(lines, "\n")
}

func renderCell(location string, oldValue, newValue any) string {
	lines := []string{"@ " + location + ":"}
	if oldValue != nil {
		lines = append(lines, "- "+fmt.Sprint(oldValue))
	}
	if newValue != nil {
		lines = append(lines, "+ "+fmt.Sprint(newValue))
	}
	return strings.Join(lines, "\n")
}

func renderRange(op *docedit.Operation) string {
	label := op.CellRange
	if label == "" {
		label = op.Cell
	}
	location := cellLocation(op.Sheet, label)

	oldRows, oldOK := docedit.RowsOf(op.OldValue)
	newRows, newOK := docedit.RowsOf(op.NewValue)
	if !oldOK || !newOK {
		// Not row sequences; fall back to the single-cell style with the
		// whole range as the label.
		return renderCell(location, op.OldValue, op.NewValue)
	}

	lines := []string{"@ Range: " + location}

	// Positional preview: the first differing row pairs, row-granular.
	// Reordered rows render as replace pairs; this is a preview heuristic,
	// not a minimal diff.
	pairs := len(oldRows)
	if len(newRows) < pairs {
		pairs = len(newRows)
	}
	shown := 0
	examined := 0
	for i := 0; i < pairs && shown < maxRangePreview; i++ {
		examined = i + 1
		if rowsEqual(oldRows[i], newRows[i]) {
			continue
		}
		lines = append(lines, fmt.Sprintf("  Row %d:", i+1))
		lines = append(lines, "- "+formatRow(oldRows[i]))
		lines = append(lines, "+ "+formatRow(newRows[i]))
		shown++
	}
	if len(oldRows) > maxRangePreview || len(newRows) > maxRangePreview ||
		len(oldRows) > examined || len(newRows) > examined {
		lines = append(lines, "  ... and more rows")
	}

	return strings.Join(lines, "\n")
}

func rowsEqual(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if fmt.Sprint(a[i]) != fmt.Sprint(b[i]) {
			return false
		}
	}
	return true
}

func formatRow(row []any) string {
	parts := make([]string, len(row))
	for i, v := range row {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}

func cellLocation(sheet, cell string) string {
	if sheet != "" {
		return sheet + "!" + cell
	}
	return cell
}

func splitBlock(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
