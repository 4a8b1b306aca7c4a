package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/stagepass/ticketing-backend/internal/core/domain"
	"github.com/stagepass/ticketing-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoEventRepository struct {
	collection *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *MongoEventRepository {
	return &MongoEventRepository{collection: db.Collection("events")}
}

func (r *MongoEventRepository) ListActive(ctx context.Context, limit, skip int64) ([]models.Event, int64, error) {
	filter := bson.M{"isActive": true}
	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.M{"createdAt": -1})

	var events []models.Event
	var total int64
	err := readRetry(ctx, "events.ListActive", func() error {
		cursor, err := r.collection.Find(ctx, filter, opts)
		if err != nil {
			return err
		}
		defer cursor.Close(ctx)
		events = events[:0]
		if err := cursor.All(ctx, &events); err != nil {
			return err
		}
		total, err = r.collection.CountDocuments(ctx, filter)
		return err
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	return events, total, nil
}

func (r *MongoEventRepository) GetBySlug(ctx context.Context, slug string) (*models.Event, error) {
	var event models.Event
	err := readRetry(ctx, "events.GetBySlug", func() error {
		return r.collection.FindOne(ctx, bson.M{"slug": slug, "isActive": true}).Decode(&event)
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find event by slug: %w", err)
	}
	return &event, nil
}

func (r *MongoEventRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var event models.Event
	err := readRetry(ctx, "events.GetByID", func() error {
		return r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return &event, nil
}
