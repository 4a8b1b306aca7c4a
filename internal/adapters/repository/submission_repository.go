package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stagepass/ticketing-backend/internal/core/domain"
	"github.com/stagepass/ticketing-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoSubmissionRepository struct {
	DB *mongo.Database
}

func NewSubmissionRepository(db *mongo.Database) *MongoSubmissionRepository {
	return &MongoSubmissionRepository{DB: db}
}

func (r *MongoSubmissionRepository) Create(ctx context.Context, sub *models.EventSubmission) error {
	if sub.ID.IsZero() {
		sub.ID = primitive.NewObjectID()
	}
	if _, err := r.DB.Collection("eventSubmissions").InsertOne(ctx, sub); err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

func (r *MongoSubmissionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.EventSubmission, error) {
	var sub models.EventSubmission
	err := readRetry(ctx, "eventSubmissions.GetByID", func() error {
		return r.DB.Collection("eventSubmissions").FindOne(ctx, bson.M{"_id": id}).Decode(&sub)
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find submission: %w", err)
	}
	return &sub, nil
}

func (r *MongoSubmissionRepository) List(ctx context.Context, filter models.SubmissionFilter) ([]models.EventSubmission, error) {
	// The service layer pins SellerID for non-admin callers before the
	// filter reaches here.
	query := bson.M{}
	if !filter.SellerID.IsZero() {
		query["sellerId"] = filter.SellerID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	opts := options.Find().SetSort(bson.M{"submittedAt": -1})

	var subs []models.EventSubmission
	err := readRetry(ctx, "eventSubmissions.List", func() error {
		cursor, err := r.DB.Collection("eventSubmissions").Find(ctx, query, opts)
		if err != nil {
			return err
		}
		defer cursor.Close(ctx)
		subs = subs[:0]
		return cursor.All(ctx, &subs)
	})
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return subs, nil
}

// PublishApproved marks the submission approved and inserts the published
// event inside a single Mongo transaction. The status update filter matches
// only while status is pending, so concurrent duplicate approvals produce
// exactly one event.
func (r *MongoSubmissionRepository) PublishApproved(ctx context.Context, id primitive.ObjectID, slug string, decidedAt time.Time, event *models.Event) error {
	session, err := r.DB.Client().StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	callback := func(sessCtx mongo.SessionContext) (interface{}, error) {
		filter := bson.M{"_id": id, "status": models.SubmissionStatusPending}
		update := bson.M{
			"$set": bson.M{
				"status":    models.SubmissionStatusApproved,
				"decidedAt": decidedAt,
				"slug":      slug,
			},
		}
		res, err := r.DB.Collection("eventSubmissions").UpdateOne(sessCtx, filter, update)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, domain.ErrNotPending
		}

		if event.ID.IsZero() {
			event.ID = primitive.NewObjectID()
		}
		event.CreatedAt = decidedAt
		event.UpdatedAt = decidedAt
		if _, err := r.DB.Collection("events").InsertOne(sessCtx, event); err != nil {
			return nil, err
		}
		return nil, nil
	}

	if _, err := session.WithTransaction(ctx, callback); err != nil {
		if errors.Is(err, domain.ErrNotPending) {
			return domain.ErrNotPending
		}
		return fmt.Errorf("publish approved submission: %w", err)
	}
	return nil
}

func (r *MongoSubmissionRepository) Reject(ctx context.Context, id primitive.ObjectID, feedback string, decidedAt time.Time) (*models.EventSubmission, error) {
	filter := bson.M{"_id": id, "status": models.SubmissionStatusPending}
	update := bson.M{
		"$set": bson.M{
			"status":        models.SubmissionStatusRejected,
			"decidedAt":     decidedAt,
			"adminFeedback": feedback,
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var sub models.EventSubmission
	err := r.DB.Collection("eventSubmissions").FindOneAndUpdate(ctx, filter, update, opts).Decode(&sub)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return nil, getErr
			}
			return nil, domain.ErrNotPending
		}
		return nil, fmt.Errorf("reject submission: %w", err)
	}
	return &sub, nil
}
