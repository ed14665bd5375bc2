// Package repo provides the persistence implementations for game records.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/abel-getahun/minefield-api/game"
	"github.com/abel-getahun/minefield-api/service/i"
)

const gameKeyFmt = "minefield:game:%s"

// RedisGameRepo stores each game as a JSON document under its own key.
// Saves run inside a WATCH transaction conditioned on the stored version, so
// a lost read-modify-write race surfaces as ErrConcurrentModification
// instead of silently overwriting.
type RedisGameRepo struct {
	client *redis.Client
}

// NewRedisGameRepo creates a game repository over the given Redis client.
func NewRedisGameRepo(client *redis.Client) *RedisGameRepo {
	return &RedisGameRepo{client: client}
}

// Load retrieves and decodes a game record.
func (r *RedisGameRepo) Load(ctx context.Context, id string) (*game.Game, error) {
	payload, err := r.client.Get(ctx, gameKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, i.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", i.ErrUnavailable, err)
	}

	var g game.Game
	if err := json.Unmarshal(payload, &g); err != nil {
		return nil, fmt.Errorf("decoding game %s: %w", id, err)
	}
	return &g, nil
}

// Save writes the game if the stored version still matches the version the
// caller read. On success the caller's Version is advanced.
func (r *RedisGameRepo) Save(ctx context.Context, g *game.Game) error {
	key := gameKey(g.ID)

	next := *g
	next.Version = g.Version + 1
	payload, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("encoding game %s: %w", g.ID, err)
	}

	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		stored, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
			// A fresh record may only be created from version zero.
			if g.Version != 0 {
				return i.ErrConcurrentModification
			}
		case err != nil:
			return fmt.Errorf("%w: %v", i.ErrUnavailable, err)
		default:
			var current game.Game
			if err := json.Unmarshal(stored, &current); err != nil {
				return fmt.Errorf("decoding game %s: %w", g.ID, err)
			}
			if current.Version != g.Version {
				return i.ErrConcurrentModification
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, 0)
			return nil
		})
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return i.ErrConcurrentModification
	}
	if err != nil {
		return err
	}

	g.Version = next.Version
	return nil
}

// Exists reports whether a record is stored under the given ID.
func (r *RedisGameRepo) Exists(ctx context.Context, id string) (bool, error) {
	n, err := r.client.Exists(ctx, gameKey(id)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", i.ErrUnavailable, err)
	}
	return n > 0, nil
}

func gameKey(id string) string {
	return fmt.Sprintf(gameKeyFmt, id)
}
