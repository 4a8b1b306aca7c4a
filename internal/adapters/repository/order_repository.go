package repository

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/stagepass/ticketing-backend/internal/core/domain"
	"github.com/stagepass/ticketing-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoOrderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{collection: db.Collection("orders")}
}

func (r *MongoOrderRepository) Create(ctx context.Context, order *models.TicketOrder) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	order.OrderNumber = fmt.Sprintf("TIX-%d%04d", time.Now().Unix(), rand.Intn(10000))
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt

	if _, err := r.collection.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *MongoOrderRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.TicketOrder, error) {
	var order models.TicketOrder
	err := readRetry(ctx, "orders.GetByID", func() error {
		return r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return &order, nil
}

func (r *MongoOrderRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.TicketOrder, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})

	var orders []models.TicketOrder
	err := readRetry(ctx, "orders.ListByUser", func() error {
		cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
		if err != nil {
			return err
		}
		defer cursor.Close(ctx)
		orders = orders[:0]
		return cursor.All(ctx, &orders)
	})
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (r *MongoOrderRepository) MarkPaid(ctx context.Context, id primitive.ObjectID, paymentID string) error {
	update := bson.M{
		"$set": bson.M{
			"status":        models.OrderStatusPaid,
			"paymentStatus": "paid",
			"paymentId":     paymentID,
			"updatedAt":     time.Now(),
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("mark order paid: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoOrderRepository) MarkRefunded(ctx context.Context, id primitive.ObjectID, refundID string) error {
	// Only paid orders can move to refunded.
	filter := bson.M{"_id": id, "status": models.OrderStatusPaid}
	update := bson.M{
		"$set": bson.M{
			"status":        models.OrderStatusRefunded,
			"paymentStatus": "refunded",
			"refundId":      refundID,
			"updatedAt":     time.Now(),
		},
	}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("mark order refunded: %w", err)
	}
	if res.MatchedCount == 0 {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return domain.ErrOrderNotPaid
	}
	return nil
}
