// Package docedit implements the approval-gated document mutation core:
// the operation envelope, the session approval ledger, and the editor
// state machine that gates every physical write behind a user decision.
package docedit

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Kind enumerates every supported document mutation. The set is closed:
// appliers switch exhaustively over it and report unsupported kinds
// explicitly instead of falling through.
type Kind uint8

const (
	KindReplaceText Kind = iota
	KindInsertText
	KindDeleteText
	KindAddComment
	KindWriteCell
	KindWriteRange
	KindAddFormula
	KindDeleteRow
	KindInsertRow
	KindDeleteColumn
	KindInsertColumn
)

// Family groups kinds by the fields they carry.
type Family uint8

const (
	FamilyText Family = iota
	FamilyCell
)

func (k Kind) String() string {
	switch k {
	case KindReplaceText:
		return "replace_text"
	case KindInsertText:
		return "insert_text"
	case KindDeleteText:
		return "delete_text"
	case KindAddComment:
		return "add_comment"
	case KindWriteCell:
		return "write_cell"
	case KindWriteRange:
		return "write_range"
	case KindAddFormula:
		return "add_formula"
	case KindDeleteRow:
		return "delete_row"
	case KindInsertRow:
		return "insert_row"
	case KindDeleteColumn:
		return "delete_column"
	case KindInsertColumn:
		return "insert_column"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Label returns the kind formatted for display, e.g. "Replace Text".
func (k Kind) Label() string {
	parts := strings.Split(k.String(), "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

// Family reports whether the kind carries text-family or cell-family fields.
func (k Kind) Family() Family {
	switch k {
	case KindReplaceText, KindInsertText, KindDeleteText, KindAddComment:
		return FamilyText
	default:
		return FamilyCell
	}
}

// Operation is a proposed single document change. It is pure data: the
// fingerprint is derived from the substantive fields on demand, so an
// operation mutated after fingerprinting simply fingerprints differently
// and goes back through approval.
type Operation struct {
	Kind        Kind
	Path        string
	Description string

	// Text family. Absence is kind-driven: insert carries no old text,
	// delete carries no new text.
	OldText       string
	NewText       string
	Location      string
	ContextBefore string
	ContextAfter  string

	// ParagraphIndex targets a specific paragraph for insertions.
	// Negative means append at the end of the document.
	ParagraphIndex int

	// Cell family.
	Sheet     string
	Cell      string
	CellRange string
	OldValue  any
	NewValue  any
	Formula   string

	// Row and Column address 1-indexed row/column operations
	// (delete-row, insert-row, delete-column, insert-column).
	Row    int
	Column string

	// Metadata is carried through untouched; the core never reads it.
	Metadata map[string]any
}

// Fingerprint is a deterministic digest of an operation's substantive
// content, used as the ledger key.
type Fingerprint string

// Fingerprint hashes (kind, path, old_text, new_text, cell, old_value,
// new_value), NUL-separated, missing fields as empty strings. Description,
// metadata, and context fields do not participate.
func (op *Operation) Fingerprint() Fingerprint {
	h := sha256.New()
	for i, field := range []string{
		op.Kind.String(),
		op.Path,
		op.OldText,
		op.NewText,
		op.Cell,
		formatValue(op.OldValue),
		formatValue(op.NewValue),
	} {
		if i > 0 {
			h.Write([]byte{0})
		}
		h.Write([]byte(field))
	}
	return Fingerprint(hex.EncodeToString(h.Sum(nil)))
}

// IsRange reports whether the operation addresses a cell range or a row
// sequence rather than a single cell or text pair.
func (op *Operation) IsRange() bool {
	if op.CellRange != "" {
		return true
	}
	_, oldOK := RowsOf(op.OldValue)
	_, newOK := RowsOf(op.NewValue)
	return oldOK || newOK
}

// RowsOf normalizes a range value into an ordered sequence of rows. A flat
// sequence becomes single-cell rows (written down one column); a sequence
// of sequences is a 2-D block. Scalars report false.
func RowsOf(v any) ([][]any, bool) {
	switch rows := v.(type) {
	case [][]any:
		return rows, true
	case []any:
		out := make([][]any, 0, len(rows))
		for _, r := range rows {
			if row, ok := r.([]any); ok {
				out = append(out, row)
			} else {
				out = append(out, []any{r})
			}
		}
		return out, true
	default:
		return nil, false
	}
}

func formatValue(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// Result is the outcome of executing an operation. Output is the
// human-readable message relayed to the caller; Path is expressed relative
// to the workspace root. Err carries machine-usable detail on failure.
type Result struct {
	Success bool
	Output  string
	Path    string
	Err     error
}
