package docedit

import "sync"

// Ledger remembers which operation fingerprints were approved or rejected
// during the current session. A fingerprint is never in both sets:
// recording a decision evicts it from the opposite set under the same lock.
// The ledger lives in memory only and is dropped on session reset.
type Ledger struct {
	mu       sync.Mutex
	approved map[Fingerprint]struct{}
	rejected map[Fingerprint]struct{}
}

func NewLedger() *Ledger {
	return &Ledger{
		approved: make(map[Fingerprint]struct{}),
		rejected: make(map[Fingerprint]struct{}),
	}
}

// Fingerprint delegates to the operation model.
func (l *Ledger) Fingerprint(op *Operation) Fingerprint {
	return op.Fingerprint()
}

func (l *Ledger) RememberApproved(fp Fingerprint) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.approved[fp] = struct{}{}
	delete(l.rejected, fp)
}

func (l *Ledger) RememberRejected(fp Fingerprint) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rejected[fp] = struct{}{}
	delete(l.approved, fp)
}

func (l *Ledger) IsApproved(fp Fingerprint) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.approved[fp]
	return ok
}

func (l *Ledger) IsRejected(fp Fingerprint) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.rejected[fp]
	return ok
}

// Clear empties both sets. Called on session reset.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.approved = make(map[Fingerprint]struct{})
	l.rejected = make(map[Fingerprint]struct{})
}
