// Package tools exposes the document mutation entry points consumed by the
// conversation driver. Every tool accepts primitive arguments, builds an
// operation, runs it through the matching editor's approval flow, and
// returns a single human-readable string; failures carry an "Error: "
// prefix and nothing else crosses the boundary.
package tools

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"docpilot/internal/docedit"
	"docpilot/internal/logging"
)

// Definition describes a tool to the driver (name, purpose, JSON-schema
// style parameters).
type Definition struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// Executor is one callable tool.
type Executor interface {
	Definition() Definition
	Execute(ctx context.Context, args map[string]any) string
}

// Registry maps tool names to executors and owns session-scoped state
// reachable from the driver boundary.
type Registry struct {
	mu     sync.RWMutex
	execs  map[string]Executor
	ledger *docedit.Ledger
	log    logging.Logger
}

// NewRegistry registers the full document-mutation toolset against the two
// editors.
func NewRegistry(word, sheet *docedit.Editor, ledger *docedit.Ledger, log logging.Logger) *Registry {
	r := &Registry{
		execs:  make(map[string]Executor),
		ledger: ledger,
		log:    logging.OrNop(log),
	}
	for _, e := range wordExecutors(word) {
		r.register(e)
	}
	for _, e := range sheetExecutors(sheet) {
		r.register(e)
	}
	return r
}

func (r *Registry) register(e Executor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.execs[e.Definition().Name] = e
}

// Execute dispatches one tool call. Unknown names come back as error text,
// matching the string-only contract of the boundary.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) string {
	r.mu.RLock()
	exec, ok := r.execs[name]
	r.mu.RUnlock()
	if !ok {
		return fmt.Sprintf("Error: unknown tool %q", name)
	}
	r.log.Debug("tool %s invoked", name)
	return exec.Execute(ctx, args)
}

// List returns every registered definition, name-sorted.
func (r *Registry) List() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Definition, 0, len(r.execs))
	for _, e := range r.execs {
		out = append(out, e.Definition())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Reset clears the approval ledger for a fresh session.
func (r *Registry) Reset() {
	r.ledger.Clear()
	r.log.Info("session reset: approval ledger cleared")
}

func formatResult(res docedit.Result) string {
	if res.Success {
		return res.Output
	}
	return "Error: " + res.Output
}
