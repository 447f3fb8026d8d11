package decision

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"docpilot/internal/logging"
)

// DefaultTimeout bounds how long a submit waits for the UI before giving up.
const DefaultTimeout = 300 * time.Second

// Verdict is the outcome of one submitted question. A timed-out or
// abandoned request is "not approved now" rather than a rejection: callers
// must not remember it, so an identical retry prompts again.
type Verdict int

const (
	VerdictApproved Verdict = iota
	VerdictRejected
	VerdictTimedOut
	VerdictAbandoned
)

func (v Verdict) String() string {
	switch v {
	case VerdictApproved:
		return "approved"
	case VerdictRejected:
		return "rejected"
	case VerdictTimedOut:
		return "timed_out"
	case VerdictAbandoned:
		return "abandoned"
	default:
		return fmt.Sprintf("verdict(%d)", int(v))
	}
}

// Presenter is the contract a UI surface fulfills: show the request and
// eventually call Resolve exactly once with a definite boolean.
type Presenter interface {
	Present(req *Request) error
}

// Options configures a Channel. Zero values fall back to stdin/stdout, the
// default timeout, and a no-op logger.
type Options struct {
	Presenter Presenter
	Timeout   time.Duration
	Input     io.Reader
	Output    io.Writer
	Logger    logging.Logger
}

// Channel owns the single pending-request slot. At most one request is
// outstanding at a time; concurrent Decide calls from independent tool
// invocations serialize on the channel.
type Channel struct {
	submitMu sync.Mutex // serializes Decide end to end

	mu        sync.Mutex // guards pending, presenter, and in
	pending   *Request
	presenter Presenter
	in        *bufio.Reader

	timeout time.Duration
	out     io.Writer
	log     logging.Logger
}

func NewChannel(opts Options) *Channel {
	in := opts.Input
	if in == nil {
		in = os.Stdin
	}
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Channel{
		presenter: opts.Presenter,
		timeout:   timeout,
		in:        bufio.NewReader(in),
		out:       out,
		log:       logging.OrNop(opts.Logger),
	}
}

// SetPresenter registers the active UI surface. A nil presenter deregisters
// it, so subsequent submissions fall back to the direct prompt.
func (c *Channel) SetPresenter(p Presenter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.presenter = p
}

func (c *Channel) currentPresenter() Presenter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.presenter
}

// Pending returns the outstanding request, if any.
func (c *Channel) Pending() *Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

func (c *Channel) setPending(req *Request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = req
}

func (c *Channel) clearPending(req *Request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == req {
		c.pending = nil
	}
}

// SetInput swaps the stream the fallback prompt reads from. Plain-mode
// surfaces share their command reader here so a buffered answer line is
// not lost between two readers over the same descriptor.
func (c *Channel) SetInput(r io.Reader) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if br, ok := r.(*bufio.Reader); ok {
		c.in = br
		return
	}
	c.in = bufio.NewReader(r)
}

func (c *Channel) input() *bufio.Reader {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.in
}

// Submit asks the active UI for a decision and reports plain approval.
func (c *Channel) Submit(ctx context.Context, path, description, diff, summary, kindLabel string) bool {
	return c.Decide(ctx, path, description, diff, summary, kindLabel) == VerdictApproved
}

// Decide runs the full request lifecycle: dispatch to the registered
// presenter, block until resolution, timeout, or cancellation. With no
// presenter registered it prompts directly on the configured input.
func (c *Channel) Decide(ctx context.Context, path, description, diff, summary, kindLabel string) Verdict {
	c.submitMu.Lock()
	defer c.submitMu.Unlock()

	presenter := c.currentPresenter()
	if presenter == nil {
		return c.promptDirect(path, description, diff, summary, kindLabel)
	}

	req := NewRequest(path, description, diff, summary, kindLabel)
	c.setPending(req)

	if err := presenter.Present(req); err != nil {
		c.log.Warn("decision: presenter unreachable, falling back to prompt: %v", err)
		c.clearPending(req)
		return c.promptDirect(path, description, diff, summary, kindLabel)
	}

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	select {
	case <-req.Done():
		c.clearPending(req)
		if req.Abandoned() {
			c.log.Warn("decision: %s abandoned for %s", kindLabel, path)
			return VerdictAbandoned
		}
		if req.Approved() {
			c.log.Info("decision: %s approved for %s", kindLabel, path)
			return VerdictApproved
		}
		c.log.Info("decision: %s rejected for %s", kindLabel, path)
		return VerdictRejected
	case <-timer.C:
		// Seal the request so a late UI resolve is a no-op.
		req.Resolve(false)
		c.clearPending(req)
		c.log.Warn("decision: %s timed out after %s for %s", kindLabel, c.timeout, path)
		return VerdictTimedOut
	case <-ctx.Done():
		req.Resolve(false)
		c.clearPending(req)
		c.log.Warn("decision: %s abandoned for %s: %v", kindLabel, path, ctx.Err())
		return VerdictAbandoned
	}
}

// Resolve records the UI's answer and frees the pending slot.
func (c *Channel) Resolve(req *Request, approved bool) {
	if req == nil {
		return
	}
	req.Resolve(approved)
	c.clearPending(req)
}

// Abandon seals any outstanding request as torn down, not decided, so
// teardown never leaves a waiter blocked on a stale slot and nothing lands
// in the ledger.
func (c *Channel) Abandon() {
	c.mu.Lock()
	pending := c.pending
	c.pending = nil
	c.mu.Unlock()
	if pending != nil {
		pending.markAbandoned()
	}
}

// promptDirect is the plain-text fallback: print the change, read one line,
// treat y/yes as approval and anything else, including EOF, as rejection.
func (c *Channel) promptDirect(path, description, diff, summary, kindLabel string) Verdict {
	separator := strings.Repeat("=", 60)
	fmt.Fprintf(c.out, "\n%s\n", separator)
	fmt.Fprintf(c.out, "Proposed Edit: %s\n", kindLabel)
	fmt.Fprintf(c.out, "File: %s\n", path)
	if description != "" {
		fmt.Fprintf(c.out, "Description: %s\n", description)
	}
	if summary != "" {
		fmt.Fprintf(c.out, "Changes: %s\n", summary)
	}
	fmt.Fprintf(c.out, "%s\n%s\n%s\n", separator, diff, separator)
	fmt.Fprint(c.out, "Apply changes? [y/N] ")

	line, err := c.input().ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(c.out)
		return VerdictRejected
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return VerdictApproved
	default:
		return VerdictRejected
	}
}
