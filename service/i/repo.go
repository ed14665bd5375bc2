package i

import (
	"context"
	"errors"

	"github.com/abel-getahun/minefield-api/game"
)

// Store errors every GameRepo implementation maps to.
var (
	// ErrNotFound means no record exists under the requested ID.
	ErrNotFound = errors.New("game not found")

	// ErrConcurrentModification means the record changed since it was read.
	// It reflects a legitimate race, not a bug, and may be retried.
	ErrConcurrentModification = errors.New("game was modified concurrently")

	// ErrUnavailable means the store could not be reached.
	ErrUnavailable = errors.New("game store unavailable")
)

// GameRepo defines the interface for game persistence operations.
// After a successful Save, a Load of the same game must observe the write.
type GameRepo interface {
	// Load retrieves a game by ID. Returns ErrNotFound if no record exists.
	Load(ctx context.Context, id string) (*game.Game, error)

	// Save persists the game, conditioned on the record's version matching
	// what the caller read. On success the game's Version is advanced;
	// on a version mismatch it returns ErrConcurrentModification.
	Save(ctx context.Context, g *game.Game) error

	// Exists reports whether a record is stored under the given ID.
	Exists(ctx context.Context, id string) (bool, error)
}
