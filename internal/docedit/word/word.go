// Package word implements the Word-like document applier: text replace,
// insert, and delete against .docx files, with run-level replacement to
// preserve formatting where the match allows it.
package word

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"docpilot/internal/docedit"
	"docpilot/internal/docedit/diffview"
)

// Applier performs the physical writes for text-family operations.
type Applier struct{}

// NewEditor wires a Word applier into the shared editor state machine.
func NewEditor(root string, ledger *docedit.Ledger, decider docedit.Decider, opts docedit.EditorOptions) *docedit.Editor {
	return docedit.NewEditor(root, ledger, decider, &Applier{}, opts)
}

func (a *Applier) Extensions() []string {
	return []string{".docx"}
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

	switch op.Kind {
	case docedit.KindReplaceText:
		return a.replaceText(absPath, op.OldText, op.NewText)
	case docedit.KindDeleteText:
		// Deletion is replacement with the empty string.
		return a.replaceText(absPath, op.OldText, "")
	case docedit.KindInsertText:
		return a.insertText(absPath, op.NewText, op.ParagraphIndex)
	case docedit.KindAddComment:
		return "", fmt.Errorf("adding comments is not supported by the Word editor")
	default:
		return "", fmt.Errorf("unsupported operation %s for Word documents", op.Kind)
	}
}

func (a *Applier) replaceText(absPath, oldText, newText string) (string, error) {
	if oldText == "" {
		return "", fmt.Errorf("no text to replace")
	}

	doc, err := openDocument(absPath)
	if err != nil {
		return "", err
	}

	replacements := 0
	for _, p := range allParagraphs(doc) {
		replacements += replaceInParagraph(p, oldText, newText)
	}

	if replacements == 0 {
		return "", fmt.Errorf("text not found: %q", truncate(oldText, 50))
	}

	if err := saveDocument(doc, absPath); err != nil {
		return "", err
	}
	return fmt.Sprintf("Replaced %d occurrence(s) in %s", replacements, filepath.Base(absPath)), nil
}

func (a *Applier) insertText(absPath, newText string, paragraphIndex int) (string, error) {
	doc, err := openDocument(absPath)
	if err != nil {
		return "", err
	}

	if paragraphIndex >= 0 {
		paragraphs := bodyParagraphs(doc)
		if paragraphIndex >= len(paragraphs) {
			return "", fmt.Errorf("paragraph index %d out of range (0-%d)", paragraphIndex, len(paragraphs)-1)
		}
		paragraphs[paragraphIndex].AddText(newText)
	} else {
		doc.AddParagraph().AddText(newText)
	}

	if err := saveDocument(doc, absPath); err != nil {
		return "", err
	}
	return fmt.Sprintf("Inserted text in %s", filepath.Base(absPath)), nil
}

// FindText locates the first body paragraph containing text and returns a
// human location label together with the paragraph's full text, for diff
// context. Tools call this before building a replace operation.
func FindText(absPath, text string) (location, paragraph string, err error) {
	doc, err := openDocument(absPath)
	if err != nil {
		return "", "", err
	}
	for i, p := range bodyParagraphs(doc) {
		full := paragraphText(p)
		if strings.Contains(full, text) {
			return fmt.Sprintf("Paragraph %d", i+1), full, nil
		}
	}
	return "", "", fmt.Errorf("text not found: %q", truncate(text, 50))
}

var _ docedit.Applier = (*Applier)(nil)

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
