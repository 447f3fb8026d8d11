package word

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	docx "github.com/fumiama/go-docx"
)

// openDocument parses the .docx container at absPath. The file is read into
// memory first: the parser keeps reading from its io.ReaderAt lazily, and a
// later save rewrites the same path the document came from.
func openDocument(absPath string) (*docx.Docx, error) {
	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, err
	}
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", absPath, err)
	}
	return doc, nil
}

// saveDocument serializes the document back in place. The file is rewritten
// from the parsed state; no cross-process lock is held.
func saveDocument(doc *docx.Docx, absPath string) error {
	out, err := os.Create(absPath)
	if err != nil {
		return err
	}
	if _, err := doc.WriteTo(out); err != nil {
		out.Close()
		return fmt.Errorf("save %s: %w", absPath, err)
	}
	return out.Close()
}

// bodyParagraphs returns the document's top-level paragraphs in order.
func bodyParagraphs(doc *docx.Docx) []*docx.Paragraph {
	var out []*docx.Paragraph
	for _, it := range doc.Document.Body.Items {
		if p, ok := it.(*docx.Paragraph); ok {
			out = append(out, p)
		}
	}
	return out
}

// allParagraphs returns body paragraphs followed by every paragraph inside
// table cells, so replacements cover the whole document.
func allParagraphs(doc *docx.Docx) []*docx.Paragraph {
	out := bodyParagraphs(doc)
	for _, it := range doc.Document.Body.Items {
		tbl, ok := it.(*docx.Table)
		if !ok {
			continue
		}
		for _, row := range tbl.TableRows {
			for _, cell := range row.TableCells {
				out = append(out, cell.Paragraphs...)
			}
		}
	}
	return out
}

// textNodes collects the writable text nodes of a paragraph's runs.
func textNodes(p *docx.Paragraph) []*docx.Text {
	var out []*docx.Text
	for _, child := range p.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				out = append(out, t)
			}
		}
	}
	return out
}

func paragraphText(p *docx.Paragraph) string {
	var b strings.Builder
	for _, t := range textNodes(p) {
		b.WriteString(t.Text)
	}
	return b.String()
}

// replaceInParagraph substitutes old with new inside one paragraph and
// returns how many occurrences it replaced. It first tries each run's text
// node so formatting survives; when the match spans runs it rebuilds the
// whole paragraph text into the first run.
func replaceInParagraph(p *docx.Paragraph, oldText, newText string) int {
	full := paragraphText(p)
	if !strings.Contains(full, oldText) {
		return 0
	}

	nodes := textNodes(p)
	replaced := 0
	for _, t := range nodes {
		if strings.Contains(t.Text, oldText) {
			replaced += strings.Count(t.Text, oldText)
			t.Text = strings.ReplaceAll(t.Text, oldText, newText)
		}
	}
	if replaced > 0 {
		return replaced
	}

	// Match spans runs: collapse the paragraph text into the first node.
	if len(nodes) == 0 {
		return 0
	}
	replaced = strings.Count(full, oldText)
	nodes[0].Text = strings.ReplaceAll(full, oldText, newText)
	for _, t := range nodes[1:] {
		t.Text = ""
	}
	return replaced
}
