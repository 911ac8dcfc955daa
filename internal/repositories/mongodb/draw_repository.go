package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ArowuTest/lottery-insights/internal/models"
	"github.com/ArowuTest/lottery-insights/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DrawRepository implements the repositories.DrawRepository interface
type DrawRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

var _ repositories.DrawRepository = (*DrawRepository)(nil)

// NewDrawRepository creates a new DrawRepository and ensures its indexes
func NewDrawRepository(ctx context.Context, db *mongo.Database) (*DrawRepository, error) {
	r := &DrawRepository{
		client:     db.Client(),
		collection: db.Collection("draws"),
	}
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "game", Value: 1}, {Key: "drawDate", Value: 1}, {Key: "drawNumber", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uq_game_draw"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create draw index: %w", err)
	}
	return r, nil
}

// sortOldestFirst and sortNewestFirst order by date then draw number
var (
	sortOldestFirst = bson.D{{Key: "drawDate", Value: 1}, {Key: "drawNumber", Value: 1}}
	sortNewestFirst = bson.D{{Key: "drawDate", Value: -1}, {Key: "drawNumber", Value: -1}}
)

// FindAll finds all draws of a game, oldest first
func (r *DrawRepository) FindAll(ctx context.Context, game models.Game) ([]*models.Draw, error) {
	opts := options.Find().SetSort(sortOldestFirst)
	return r.find(ctx, bson.M{"game": game}, opts)
}

// FindLatest finds the most recent draw of a game
func (r *DrawRepository) FindLatest(ctx context.Context, game models.Game) (*models.Draw, error) {
	opts := options.FindOne().SetSort(sortNewestFirst)

	var draw models.Draw
	err := r.collection.FindOne(ctx, bson.M{"game": game}, opts).Decode(&draw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find latest draw: %w", err)
	}
	return &draw, nil
}

// FindPage finds draws newest first
func (r *DrawRepository) FindPage(ctx context.Context, game models.Game, offset, limit int) ([]*models.Draw, error) {
	opts := options.Find().
		SetSort(sortNewestFirst).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	return r.find(ctx, bson.M{"game": game}, opts)
}

// Count counts the draws of a game
func (r *DrawRepository) Count(ctx context.Context, game models.Game) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"game": game})
	if err != nil {
		return 0, fmt.Errorf("failed to count draws: %w", err)
	}
	return count, nil
}

// LastUpdated returns the newest updatedAt of the game's draws
func (r *DrawRepository) LastUpdated(ctx context.Context, game models.Game) (time.Time, error) {
	opts := options.FindOne().
		SetSort(bson.D{{Key: "updatedAt", Value: -1}}).
		SetProjection(bson.M{"updatedAt": 1})

	var doc struct {
		UpdatedAt time.Time `bson:"updatedAt"`
	}
	err := r.collection.FindOne(ctx, bson.M{"game": game}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("failed to find last update: %w", err)
	}
	return doc.UpdatedAt, nil
}

// ReplaceAll swaps the game's draws inside a session transaction.
// Transactions need a replica set (Atlas clusters are).
func (r *DrawRepository) ReplaceAll(ctx context.Context, game models.Game, draws []*models.Draw) error {
	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(draws))
	for _, d := range draws {
		c := *d
		c.Game = game
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now
		}
		c.UpdatedAt = now
		docs = append(docs, c)
	}

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.collection.DeleteMany(sc, bson.M{"game": game}); err != nil {
			return nil, fmt.Errorf("failed to clear draws: %w", err)
		}
		if len(docs) == 0 {
			return nil, nil
		}
		if _, err := r.collection.InsertMany(sc, docs); err != nil {
			return nil, fmt.Errorf("failed to insert draws: %w", err)
		}
		return nil, nil
	})
	return err
}

func (r *DrawRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*models.Draw, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to execute find query: %w", err)
	}
	defer cursor.Close(ctx)

	var draws []*models.Draw
	if err := cursor.All(ctx, &draws); err != nil {
		return nil, fmt.Errorf("failed to decode draws: %w", err)
	}
	// Return an empty slice instead of nil if no documents are found
	if draws == nil {
		draws = []*models.Draw{}
	}
	return draws, nil
}
