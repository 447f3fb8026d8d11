package docedit

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"docpilot/internal/docedit/decision"
	"docpilot/internal/logging"
)

// ErrOutsideWorkspace marks a containment failure: the resolved path does
// not fall under the workspace root.
var ErrOutsideWorkspace = errors.New("operation outside workspace")

// Applier is the format-specific half of an editor: it renders the diff
// for its operations and physically applies an approved one.
type Applier interface {
	// RenderDiff returns the tag-annotated diff for the operation.
	RenderDiff(op *Operation) string

	// Summarize returns a short change-scale line for prompt headers,
	// or "" when the operation has nothing to count.
	Summarize(op *Operation) string

	// Apply performs the physical write at the resolved absolute path and
	// returns the human-readable outcome message. Called only after
	// approval.
	Apply(op *Operation, absPath string) (string, error)

	// Extensions lists the file extensions the applier handles.
	Extensions() []string
}

// Decider resolves one yes/no question about a rendered change.
type Decider interface {
	Decide(ctx context.Context, path, description, diff, summary, kindLabel string) decision.Verdict
}

// EditorOptions carries the optional knobs shared by all editors.
type EditorOptions struct {
	// AutoApprove skips prompting entirely. Sandboxing and apply-time
	// error handling still run.
	AutoApprove bool
	Logger      logging.Logger
}

// Editor owns the execute-with-approval state machine for one document
// format. The applier supplies diffs and physical writes; the editor does
// everything else: sandbox enforcement, ledger checks, prompting, and
// converting every failure into a Result.
type Editor struct {
	root        string
	ledger      *Ledger
	decider     Decider
	applier     Applier
	autoApprove bool
	log         logging.Logger
}

func NewEditor(root string, ledger *Ledger, decider Decider, applier Applier, opts EditorOptions) *Editor {
	abs, err := filepath.Abs(filepath.Clean(root))
	if err != nil {
		abs = filepath.Clean(root)
	}
	return &Editor{
		root:        abs,
		ledger:      ledger,
		decider:     decider,
		applier:     applier,
		autoApprove: opts.AutoApprove,
		log:         logging.OrNop(opts.Logger),
	}
}

// Root returns the workspace root the editor sandboxes into.
func (e *Editor) Root() string {
	return e.root
}

// Ledger exposes the session approval ledger.
func (e *Editor) Ledger() *Ledger {
	return e.ledger
}

// Supports reports whether the editor's applier handles the file extension.
func (e *Editor) Supports(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, known := range e.applier.Extensions() {
		if ext == known {
			return true
		}
	}
	return false
}

// Resolve maps a raw path into the workspace. It returns the absolute
// on-disk path and the workspace-relative display path, or
// ErrOutsideWorkspace when the resolved path escapes the root.
func (e *Editor) Resolve(raw string) (abs string, rel string, err error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", "", fmt.Errorf("path cannot be empty")
	}
	candidate := trimmed
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(e.root, candidate)
	}
	abs, err = filepath.Abs(filepath.Clean(candidate))
	if err != nil {
		return "", "", err
	}
	rel, err = filepath.Rel(e.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", "", fmt.Errorf("%w: %s", ErrOutsideWorkspace, raw)
	}
	return abs, filepath.ToSlash(rel), nil
}

// Execute runs one operation through the approval state machine:
//
//  1. resolve the target inside the workspace root
//  2. short-circuit on a previously rejected fingerprint
//  3. auto-approve or replay a previous approval without prompting
//  4. otherwise render the diff and block on the decision channel
//  5. apply the physical write and report the outcome
//
// Nothing escapes Execute: every failure, including a panicking applier,
// comes back as a Result.
func (e *Editor) Execute(ctx context.Context, op *Operation) Result {
	absPath, relPath, err := e.Resolve(op.Path)
	if err != nil {
		e.log.Warn("edit %s blocked: %v", op.Kind, err)
		return Result{Success: false, Output: err.Error(), Path: op.Path, Err: err}
	}

	fp := e.ledger.Fingerprint(op)

	if e.ledger.IsRejected(fp) {
		return Result{Success: false, Output: "Operation was previously rejected.", Path: relPath}
	}

	if e.autoApprove || e.ledger.IsApproved(fp) {
		e.ledger.RememberApproved(fp)
	} else {
		diff := e.applier.RenderDiff(op)
		summary := e.applier.Summarize(op)
		switch verdict := e.decider.Decide(ctx, relPath, op.Description, diff, summary, op.Kind.Label()); verdict {
		case decision.VerdictApproved:
			e.ledger.RememberApproved(fp)
		case decision.VerdictRejected:
			e.ledger.RememberRejected(fp)
			return Result{Success: false, Output: "Operation rejected by user.", Path: relPath}
		default:
			// Timed out or abandoned: not a decision, nothing recorded.
			// An identical retry will prompt again.
			return Result{Success: false, Output: "Operation not approved: no decision received.", Path: relPath}
		}
	}

	message, err := e.apply(op, absPath)
	if err != nil {
		e.log.Warn("edit %s on %s failed: %v", op.Kind, relPath, err)
		return Result{Success: false, Output: fmt.Sprintf("Failed to apply operation: %v", err), Path: relPath, Err: err}
	}

	e.log.Info("edit %s applied to %s", op.Kind, relPath)
	return Result{Success: true, Output: message, Path: relPath}
}

func (e *Editor) apply(op *Operation, absPath string) (message string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("apply panicked: %v", r)
		}
	}()
	return e.applier.Apply(op, absPath)
}
