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

// MongoAccountRepository implements domain.AccountRepository on the users
// collection. Seller-status transitions are compare-and-set: the filter
// carries the expected current status, so under concurrent requests at most
// one write matches.
type MongoAccountRepository struct {
	collection *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *MongoAccountRepository {
	return &MongoAccountRepository{collection: db.Collection("users")}
}

func (r *MongoAccountRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *MongoAccountRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := readRetry(ctx, "users.GetByID", func() error {
		return r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (r *MongoAccountRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := readRetry(ctx, "users.GetByEmail", func() error {
		return r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

func (r *MongoAccountRepository) BeginSellerApplication(ctx context.Context, id primitive.ObjectID, app models.SellerApplication) (*models.User, error) {
	filter := bson.M{
		"_id":          id,
		"sellerStatus": bson.M{"$in": []models.SellerStatus{models.SellerStatusNone, models.SellerStatusDenied}},
	}
	update := bson.M{
		"$set": bson.M{
			"sellerStatus":      models.SellerStatusPending,
			"sellerApplication": app,
			"sellerAppliedAt":   app.AppliedAt,
			"updatedAt":         time.Now(),
		},
		"$unset": bson.M{
			"sellerDeniedAt": "",
			"canReapplyAt":   "",
		},
	}

	user, err := r.casUpdate(ctx, filter, update)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Either the account vanished or another request got there first.
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return nil, getErr
			}
			return nil, domain.ErrAlreadyPending
		}
		return nil, fmt.Errorf("begin seller application: %w", err)
	}
	return user, nil
}

func (r *MongoAccountRepository) ApproveSeller(ctx context.Context, id primitive.ObjectID, notes string, now time.Time) (*models.User, error) {
	filter := bson.M{"_id": id, "sellerStatus": models.SellerStatusPending}
	update := bson.M{
		"$set": bson.M{
			"role":                         models.RoleSeller,
			"sellerStatus":                 models.SellerStatusApproved,
			"sellerApprovedAt":             now,
			"sellerApplication.decidedAt":  now,
			"sellerApplication.adminNotes": notes,
			"updatedAt":                    now,
		},
	}

	user, err := r.casUpdate(ctx, filter, update)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return nil, getErr
			}
			return nil, domain.ErrNotPending
		}
		return nil, fmt.Errorf("approve seller: %w", err)
	}
	return user, nil
}

func (r *MongoAccountRepository) DenySeller(ctx context.Context, id primitive.ObjectID, notes string, now, canReapplyAt time.Time) (*models.User, error) {
	filter := bson.M{"_id": id, "sellerStatus": models.SellerStatusPending}
	update := bson.M{
		"$set": bson.M{
			"sellerStatus":                 models.SellerStatusDenied,
			"sellerDeniedAt":               now,
			"canReapplyAt":                 canReapplyAt,
			"sellerApplication.decidedAt":  now,
			"sellerApplication.adminNotes": notes,
			"updatedAt":                    now,
		},
	}

	user, err := r.casUpdate(ctx, filter, update)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return nil, getErr
			}
			return nil, domain.ErrNotPending
		}
		return nil, fmt.Errorf("deny seller: %w", err)
	}
	return user, nil
}

func (r *MongoAccountRepository) ListPendingApplications(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.M{"sellerAppliedAt": 1})

	var users []models.User
	err := readRetry(ctx, "users.ListPendingApplications", func() error {
		cursor, err := r.collection.Find(ctx, bson.M{"sellerStatus": models.SellerStatusPending}, opts)
		if err != nil {
			return err
		}
		defer cursor.Close(ctx)
		users = users[:0]
		return cursor.All(ctx, &users)
	})
	if err != nil {
		return nil, fmt.Errorf("list pending applications: %w", err)
	}
	return users, nil
}

func (r *MongoAccountRepository) casUpdate(ctx context.Context, filter, update bson.M) (*models.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}
