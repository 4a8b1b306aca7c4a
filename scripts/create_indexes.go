package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Run this script once to create database indexes
// Usage: go run scripts/create_indexes.go
func main() {
	_ = godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "stagepass"
	}

	clientOptions := options.Client().ApplyURI(mongoURI).SetServerSelectionTimeout(30 * time.Second)

	log.Println("connecting to MongoDB...")
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatalf("failed to create client: %v", err)
	}
	defer client.Disconnect(ctx)

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	log.Println("connected")

	db := client.Database(dbName)

	createIndex(ctx, db.Collection("users"), mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("idx_email").SetUnique(true),
	})
	createIndex(ctx, db.Collection("users"), mongo.IndexModel{
		Keys: bson.D{
			{Key: "sellerStatus", Value: 1},
			{Key: "sellerAppliedAt", Value: 1},
		},
		Options: options.Index().SetName("idx_seller_review_queue"),
	})

	createIndex(ctx, db.Collection("eventSubmissions"), mongo.IndexModel{
		Keys: bson.D{
			{Key: "sellerId", Value: 1},
			{Key: "submittedAt", Value: -1},
		},
		Options: options.Index().SetName("idx_seller_submissions_date"),
	})
	createIndex(ctx, db.Collection("eventSubmissions"), mongo.IndexModel{
		Keys:    bson.D{{Key: "status", Value: 1}},
		Options: options.Index().SetName("idx_submission_status"),
	})

	// Unique slug backs the exactly-once slug assignment at approval time.
	createIndex(ctx, db.Collection("events"), mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetName("idx_slug").SetUnique(true),
	})
	createIndex(ctx, db.Collection("events"), mongo.IndexModel{
		Keys: bson.D{
			{Key: "isActive", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("idx_active_events_date"),
	})

	createIndex(ctx, db.Collection("orders"), mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("idx_user_orders_date"),
	})

	log.Println("all indexes created")
}

func createIndex(ctx context.Context, coll *mongo.Collection, model mongo.IndexModel) {
	name := "unnamed"
	if model.Options != nil && model.Options.Name != nil {
		name = *model.Options.Name
	}
	if _, err := coll.Indexes().CreateOne(ctx, model); err != nil {
		log.Printf("failed to create index %s on %s: %v", name, coll.Name(), err)
		return
	}
	log.Printf("created index %s on %s", name, coll.Name())
}
