// Package dedup tracks event identifiers already seen by the pipeline.
package dedup

import "sync"

// Ledger is the process-wide record of admitted event ids. It grows
// monotonically for the life of the process and is never persisted; a fresh
// process re-admits everything. Safe for concurrent use: the check-then-admit
// in Admit is atomic under the mutex, so an id can neither be admitted twice
// nor lost when refresh cycles interleave.
type Ledger struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{seen: make(map[string]struct{})}
}

// Admit records id as seen and reports whether this was its first
// presentation. Every later call with the same id returns false, regardless
// of which cycle or source presents it.
func (l *Ledger) Admit(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.seen[id]; ok {
		return false
	}
	l.seen[id] = struct{}{}
	return true
}

// Seen reports whether id has been admitted, without admitting it.
func (l *Ledger) Seen(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, ok := l.seen[id]
	return ok
}

// Len returns the number of admitted ids.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.seen)
}
