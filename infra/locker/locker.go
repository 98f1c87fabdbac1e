// locker/locker.go
package locker

import "sync"

// Locker serializes reconciliation runs. Two runs racing on the same ledger
// would double-process rows, so only one run may hold the slot at a time.
type Locker struct {
	mu      sync.Mutex
	running bool
}

func New() *Locker {
	return &Locker{}
}

// TryAcquire claims the run slot, returning false if a run already holds it.
func (l *Locker) TryAcquire() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return false
	}
	l.running = true
	return true
}

func (l *Locker) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.running = false
}
