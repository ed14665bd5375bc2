package i

import "context"

// UnlockFunc releases a held game lock.
type UnlockFunc func() error

// GameLocker serializes mutations per game: at most one holder per game ID at
// a time, held across the whole load-check-mutate-persist sequence.
type GameLocker interface {
	Lock(ctx context.Context, gameID string) (UnlockFunc, error)
}
