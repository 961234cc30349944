package scrim

import (
	"sync"

	"github.com/google/uuid"
)

// lockMap hands out one mutex per scrim id. Every mutate-recompute-save
// sequence runs under the scrim's mutex so the recompute rule always observes
// a consistent snapshot of both rosters and both confirmation flags.
type lockMap struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newLockMap() *lockMap {
	return &lockMap{locks: make(map[uuid.UUID]*sync.Mutex)}
}

// Lock acquires the per-scrim mutex and returns its unlock func.
func (l *lockMap) Lock(id uuid.UUID) func() {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
