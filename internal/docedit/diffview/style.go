package diffview

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"

	"docpilot/internal/docedit"
)

var (
	addedColor   = color.New(color.FgGreen)
	removedColor = color.New(color.FgRed)
	headerColor  = color.New(color.FgCyan)
	contextColor = color.New(color.Faint)
)

// Colorize maps line tags to ANSI colors for terminal surfaces. Color
// output honors the fatih/color global NoColor switch.
func Colorize(diff string) string {
	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+ "):
			lines[i] = addedColor.Sprint(line)
		case strings.HasPrefix(line, "- "):
			lines[i] = removedColor.Sprint(line)
		case strings.HasPrefix(line, "@ "):
			lines[i] = headerColor.Sprint(line)
		default:
			lines[i] = contextColor.Sprint(line)
		}
	}
	return strings.Join(lines, "\n")
}

// ChangeSummary describes the scale of a text change for prompt headers.
// Cell-family operations return "" since the rendered diff already shows
// every affected value.
func ChangeSummary(op *docedit.Operation) string {
	if op.Kind.Family() != docedit.FamilyText {
		return ""
	}
	return Summary(Stats(op.OldText, op.NewText))
}

// Stats counts added and removed lines between two text blocks.
func Stats(oldText, newText string) (added, removed int) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldText, newText, false)
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			added += countLines(d.Text)
		case diffmatchpatch.DiffDelete:
			removed += countLines(d.Text)
		}
	}
	return added, removed
}

// Summary renders "+a −r lines" for prompt headers.
func Summary(added, removed int) string {
	if added == 0 && removed == 0 {
		return "no changes"
	}
	parts := make([]string, 0, 2)
	if added > 0 {
		parts = append(parts, fmt.Sprintf("+%d", added))
	}
	if removed > 0 {
		parts = append(parts, fmt.Sprintf("-%d", removed))
	}
	return strings.Join(parts, ", ") + " lines"
}

func countLines(text string) int {
	n := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		n++
	}
	return n
}
