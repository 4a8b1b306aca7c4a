package main

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stagepass/ticketing-backend/internal/adapters/repository"
	"github.com/stagepass/ticketing-backend/internal/config"
	"github.com/stagepass/ticketing-backend/internal/handlers"
	"github.com/stagepass/ticketing-backend/internal/services/approval"
	"github.com/stagepass/ticketing-backend/internal/services/notify"
	"github.com/stagepass/ticketing-backend/internal/services/seller"
	"github.com/stagepass/ticketing-backend/internal/services/submission"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	cfg := config.Load()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	db, disconnect, err := connectMongo(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer disconnect()

	// Notification fan-out is optional: without a broker, decisions are
	// still made, outcomes just get logged instead of emailed.
	var notifier notify.Notifier
	if cfg.RabbitMQURL != "" {
		amqpNotifier, err := notify.NewAMQPNotifier(cfg.RabbitMQURL)
		if err != nil {
			logrus.WithError(err).Warn("RabbitMQ unavailable, falling back to log notifier")
			notifier = notify.NewLogNotifier()
		} else {
			defer amqpNotifier.Close()
			notifier = amqpNotifier
		}
	} else {
		notifier = notify.NewLogNotifier()
	}

	accountRepo := repository.NewAccountRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	eventRepo := repository.NewEventRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	sellerSvc := seller.NewService(accountRepo, cfg.SellerReapplyCooldown)
	submissionSvc := submission.NewService(accountRepo, submissionRepo)
	approvalSvc := approval.NewService(accountRepo, submissionRepo, notifier, cfg.SellerReapplyCooldown)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Stripe-Signature"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	handlers.SetupRoutes(router, handlers.Handlers{
		Auth:       handlers.NewAuthHandler(accountRepo, cfg),
		Seller:     handlers.NewSellerHandler(sellerSvc),
		Submission: handlers.NewSubmissionHandler(submissionSvc),
		Admin:      handlers.NewAdminHandler(approvalSvc, submissionSvc, accountRepo, orderRepo),
		Event:      handlers.NewEventHandler(eventRepo),
		Order:      handlers.NewOrderHandler(orderRepo, eventRepo),
		Payment:    handlers.NewPaymentHandler(orderRepo, cfg),
		Upload:     handlers.NewUploadHandler(),
	})

	logrus.WithField("port", cfg.Port).Info("server starting")
	if err := router.Run(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}

func connectMongo(cfg *config.Config) (*mongo.Database, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.MongoURI).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, err
	}
	logrus.Info("connected to MongoDB")

	disconnect := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			logrus.WithError(err).Warn("mongo disconnect failed")
		}
	}
	return client.Database(cfg.MongoDB), disconnect, nil
}
