package lock

import (
	"context"
	"sync"

	"github.com/abel-getahun/minefield-api/service/i"
)

// LocalGameLocker serializes game mutations within a single process. It backs
// tests and single-node deployments where a distributed lock is overkill.
type LocalGameLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewLocalGameLocker creates an in-process locker.
func NewLocalGameLocker() *LocalGameLocker {
	return &LocalGameLocker{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for one game, creating it on first use. Game
// mutexes are never reclaimed; the set of live game IDs per process stays
// small.
func (l *LocalGameLocker) Lock(_ context.Context, gameID string) (i.UnlockFunc, error) {
	l.mu.Lock()
	m, ok := l.locks[gameID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[gameID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return func() error {
		m.Unlock()
		return nil
	}, nil
}
