// Package lock provides the per-game mutual exclusion the coordinator holds
// across a load-check-mutate-persist sequence.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"

	"github.com/abel-getahun/minefield-api/service/i"
)

const (
	lockKeyFmt = "minefield:game:%s:move_lock"

	// lockExpiry caps how long a crashed holder can block a game.
	lockExpiry = 8 * time.Second
)

// RedsyncGameLocker serializes game mutations across every instance of the
// service with a Redis-backed distributed mutex per game ID.
type RedsyncGameLocker struct {
	locker *redsync.Redsync
}

// NewRedsyncGameLocker creates a locker over the given Redis client.
func NewRedsyncGameLocker(client *redis.Client) *RedsyncGameLocker {
	pool := goredis.NewPool(client)
	return &RedsyncGameLocker{locker: redsync.New(pool)}
}

// Lock acquires the mutex for one game and returns its release function.
func (l *RedsyncGameLocker) Lock(ctx context.Context, gameID string) (i.UnlockFunc, error) {
	mutex := l.locker.NewMutex(fmt.Sprintf(lockKeyFmt, gameID), redsync.WithExpiry(lockExpiry))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}

	return func() error {
		ok, err := mutex.Unlock()
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("redis eval func returned 0 while releasing")
		}
		return nil
	}, nil
}
