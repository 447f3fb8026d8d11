package word

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	docx "github.com/fumiama/go-docx"

	"docpilot/internal/docedit"
)

// writeFixture creates a .docx with the given paragraphs and returns its path.
func writeFixture(t *testing.T, paragraphs ...string) string {
	t.Helper()
	doc := docx.New().WithDefaultTheme()
	for _, text := range paragraphs {
		doc.AddParagraph().AddText(text)
	}
	path := filepath.Join(t.TempDir(), "fixture.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	if _, err := doc.WriteTo(f); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close fixture: %v", err)
	}
	return path
}

// readParagraphs reopens the file and returns the text of each body paragraph.
func readParagraphs(t *testing.T, path string) []string {
	t.Helper()
	doc, err := openDocument(path)
	if err != nil {
		t.Fatalf("reopen fixture: %v", err)
	}
	var out []string
	for _, p := range bodyParagraphs(doc) {
		out = append(out, paragraphText(p))
	}
	return out
}

func TestApplyReplaceText(t *testing.T) {
	path := writeFixture(t, "The March deadline stands.", "Unrelated paragraph.")
	a := &Applier{}

	op := docedit.NewReplaceText("fixture.docx", "March", "April", "")
	msg, err := a.Apply(op, path)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !strings.Contains(msg, "Replaced 1 occurrence(s)") {
		t.Fatalf("unexpected message %q", msg)
	}

	paragraphs := readParagraphs(t, path)
	if paragraphs[0] != "The April deadline stands." {
		t.Fatalf("replacement not persisted: %q", paragraphs[0])
	}
	if paragraphs[1] != "Unrelated paragraph." {
		t.Fatalf("untouched paragraph changed: %q", paragraphs[1])
	}
}

func TestApplyReplaceTextCountsAllOccurrences(t *testing.T) {
	path := writeFixture(t, "March and March again", "March once more")
	a := &Applier{}

	msg, err := a.Apply(docedit.NewReplaceText("fixture.docx", "March", "April", ""), path)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !strings.Contains(msg, "Replaced 3 occurrence(s)") {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestApplyReplaceTextNotFound(t *testing.T) {
	path := writeFixture(t, "Nothing relevant here.")
	a := &Applier{}

	_, err := a.Apply(docedit.NewReplaceText("fixture.docx", "missing text", "x", ""), path)
	if err == nil || !strings.Contains(err.Error(), "text not found") {
		t.Fatalf("expected text-not-found error, got %v", err)
	}

	// The file stays untouched on a failed match.
	if got := readParagraphs(t, path); got[0] != "Nothing relevant here." {
		t.Fatalf("file modified on failed replace: %q", got[0])
	}
}

func TestApplyDeleteText(t *testing.T) {
	path := writeFixture(t, "Keep this. Remove this. Keep that.")
	a := &Applier{}

	if _, err := a.Apply(docedit.NewDeleteText("fixture.docx", " Remove this.", ""), path); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := readParagraphs(t, path); got[0] != "Keep this. Keep that." {
		t.Fatalf("deletion not applied: %q", got[0])
	}
}

func TestApplyInsertTextAppends(t *testing.T) {
	path := writeFixture(t, "First paragraph.")
	a := &Applier{}

	msg, err := a.Apply(docedit.NewInsertText("fixture.docx", "Appended paragraph.", -1, ""), path)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !strings.Contains(msg, "Inserted text") {
		t.Fatalf("unexpected message %q", msg)
	}

	paragraphs := readParagraphs(t, path)
	last := paragraphs[len(paragraphs)-1]
	if last != "Appended paragraph." {
		t.Fatalf("appended paragraph missing, got %q", last)
	}
}

func TestApplyInsertTextAtParagraph(t *testing.T) {
	path := writeFixture(t, "First.", "Second.")
	a := &Applier{}

	if _, err := a.Apply(docedit.NewInsertText("fixture.docx", " Added.", 0, ""), path); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := readParagraphs(t, path); got[0] != "First. Added." {
		t.Fatalf("insert at paragraph 0 failed: %q", got[0])
	}
}

func TestApplyInsertTextIndexOutOfRange(t *testing.T) {
	path := writeFixture(t, "Only one.")
	a := &Applier{}

	_, err := a.Apply(docedit.NewInsertText("fixture.docx", "x", 5, ""), path)
	if err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Fatalf("expected out-of-range error, got %v", err)
	}
}

func TestApplyMissingFile(t *testing.T) {
	a := &Applier{}
	op := docedit.NewReplaceText("ghost.docx", "a", "b", "")
	_, err := a.Apply(op, filepath.Join(t.TempDir(), "ghost.docx"))
	if err == nil || !strings.Contains(err.Error(), "file not found: ghost.docx") {
		t.Fatalf("expected file-not-found error, got %v", err)
	}
}

func TestApplyCommentUnsupported(t *testing.T) {
	path := writeFixture(t, "Some text.")
	a := &Applier{}

	_, err := a.Apply(docedit.NewAddComment("fixture.docx", "note", ""), path)
	if err == nil || !strings.Contains(err.Error(), "not supported") {
		t.Fatalf("expected unsupported error, got %v", err)
	}
}

func TestApplyCellKindRejected(t *testing.T) {
	path := writeFixture(t, "Some text.")
	a := &Applier{}

	_, err := a.Apply(docedit.NewWriteCell("fixture.docx", "", "A1", nil, 1, ""), path)
	if err == nil || !strings.Contains(err.Error(), "unsupported operation") {
		t.Fatalf("expected unsupported-operation error, got %v", err)
	}
}

func TestFindText(t *testing.T) {
	path := writeFixture(t, "Introduction.", "The March deadline stands.", "Closing.")

	location, paragraph, err := FindText(path, "March deadline")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if location != "Paragraph 2" {
		t.Fatalf("unexpected location %q", location)
	}
	if paragraph != "The March deadline stands." {
		t.Fatalf("unexpected paragraph %q", paragraph)
	}

	if _, _, err := FindText(path, "absent"); err == nil {
		t.Fatal("expected error for absent text")
	}
}

func TestReplaceSpansRuns(t *testing.T) {
	// Build a paragraph whose match spans two runs.
	doc := docx.New().WithDefaultTheme()
	p := doc.AddParagraph()
	p.AddText("The March ")
	p.AddText("deadline stands.")
	path := filepath.Join(t.TempDir(), "runs.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := doc.WriteTo(f); err != nil {
		t.Fatalf("write: %v", err)
	}
	f.Close()

	a := &Applier{}
	if _, err := a.Apply(docedit.NewReplaceText("runs.docx", "March deadline", "April deadline", ""), path); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := readParagraphs(t, path); got[0] != "The April deadline stands." {
		t.Fatalf("cross-run replace failed: %q", got[0])
	}
}
