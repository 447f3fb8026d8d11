// Package decision bridges a blocking worker context and an event-driven UI
// context to answer one yes/no question about a proposed document change.
package decision

import "sync"

// Request is one pending approval question. The worker blocks on Done();
// the UI side calls Resolve exactly once. A request is one-shot: the first
// Resolve wins and later calls are no-ops.
type Request struct {
	Path        string
	Description string
	Diff        string
	Summary     string
	KindLabel   string

	mu        sync.Mutex
	resolved  bool
	approved  bool
	abandoned bool
	done      chan struct{}
}

// NewRequest builds an unresolved request.
func NewRequest(path, description, diff, summary, kindLabel string) *Request {
	return &Request{
		Path:        path,
		Description: description,
		Diff:        diff,
		Summary:     summary,
		KindLabel:   kindLabel,
		done:        make(chan struct{}),
	}
}

// Resolve records the decision and signals the waiter. Idempotent.
func (r *Request) Resolve(approved bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.resolved {
		return
	}
	r.resolved = true
	r.approved = approved
	close(r.done)
}

// markAbandoned seals the request as torn down rather than answered. The
// waiter distinguishes this from a rejection, so nothing is recorded.
// A no-op once the request is resolved.
func (r *Request) markAbandoned() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.resolved {
		return
	}
	r.resolved = true
	r.abandoned = true
	close(r.done)
}

// Abandoned reports whether the request was sealed by teardown instead of
// a user answer.
func (r *Request) Abandoned() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.abandoned
}

// Done is closed once the request has been resolved.
func (r *Request) Done() <-chan struct{} {
	return r.done
}

// Approved reports whether the request was resolved as approved. Anything
// other than an explicit approval, including an unresolved request, is false.
func (r *Request) Approved() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolved && r.approved
}

// Resolved reports whether a decision has been recorded.
func (r *Request) Resolved() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolved
}
