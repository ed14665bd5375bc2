package repo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/abel-getahun/minefield-api/game"
	"github.com/abel-getahun/minefield-api/service/i"
)

// MongoGameRepo stores each game as a BSON document keyed by its code.
// Updates filter on the version the caller read, so a lost race matches no
// document and surfaces as ErrConcurrentModification.
type MongoGameRepo struct {
	collection *mongo.Collection
}

// NewMongoGameRepo creates a game repository over the given MongoDB client,
// database name, and collection name.
func NewMongoGameRepo(client *mongo.Client, dbName, collectionName string) *MongoGameRepo {
	return &MongoGameRepo{collection: client.Database(dbName).Collection(collectionName)}
}

// Load retrieves a game record by ID.
func (m *MongoGameRepo) Load(ctx context.Context, id string) (*game.Game, error) {
	var g game.Game
	if err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, i.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", i.ErrUnavailable, err)
	}
	return &g, nil
}

// Save inserts a fresh record or replaces an existing one, conditioned on the
// version the caller read. On success the caller's Version is advanced.
func (m *MongoGameRepo) Save(ctx context.Context, g *game.Game) error {
	next := *g
	next.Version = g.Version + 1

	if g.Version == 0 {
		if _, err := m.collection.InsertOne(ctx, &next); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return i.ErrConcurrentModification
			}
			return fmt.Errorf("%w: %v", i.ErrUnavailable, err)
		}
	} else {
		res, err := m.collection.ReplaceOne(ctx, bson.M{"_id": g.ID, "version": g.Version}, &next)
		if err != nil {
			return fmt.Errorf("%w: %v", i.ErrUnavailable, err)
		}
		if res.MatchedCount == 0 {
			return i.ErrConcurrentModification
		}
	}

	g.Version = next.Version
	return nil
}

// Exists reports whether a record is stored under the given ID.
func (m *MongoGameRepo) Exists(ctx context.Context, id string) (bool, error) {
	n, err := m.collection.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("%w: %v", i.ErrUnavailable, err)
	}
	return n > 0, nil
}
