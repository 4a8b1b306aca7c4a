package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/stagepass/ticketing-backend/internal/middleware"
)

// Handlers bundles the constructed handlers for route wiring. Dependencies
// are built in main and injected; nothing here reaches for globals.
type Handlers struct {
	Auth       *AuthHandler
	Seller     *SellerHandler
	Submission *SubmissionHandler
	Admin      *AdminHandler
	Event      *EventHandler
	Order      *OrderHandler
	Payment    *PaymentHandler
	Upload     *UploadHandler
}

func SetupRoutes(router *gin.Engine, h Handlers) {
	logrus.Info("Setting up routes...")

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "ticketing-backend",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes
	authGroup := router.Group("/api/v1/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh-token", h.Auth.RefreshToken)
	}

	publicEvents := router.Group("/api/v1/public/events")
	{
		publicEvents.GET("", h.Event.List)
		publicEvents.GET("/:slug", h.Event.GetBySlug)
	}

	// Stripe calls this unauthenticated; the signature is the auth.
	router.POST("/api/v1/payments/webhook", h.Payment.HandleWebhook)

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.AuthMiddleware())
	{
		sellerGroup := protected.Group("/seller")
		{
			sellerGroup.POST("/apply", h.Seller.Apply)
			sellerGroup.GET("/status", h.Seller.GetStatus)
		}

		submissions := protected.Group("/submissions")
		submissions.Use(middleware.RoleMiddleware("seller"))
		{
			submissions.POST("", h.Submission.Submit)
			submissions.GET("", h.Submission.List)
		}

		protected.POST("/upload", h.Upload.UploadImage)

		orders := protected.Group("/orders")
		{
			orders.POST("", h.Order.PlaceOrder)
			orders.GET("", h.Order.GetUserOrders)
			orders.GET("/:id", h.Order.GetOrderById)
		}

		payments := protected.Group("/payments")
		{
			payments.POST("/create-intent", h.Payment.CreatePaymentIntent)
		}

		admin := protected.Group("/admin")
		admin.Use(middleware.RoleMiddleware("admin"))
		{
			admin.GET("/seller-applications", h.Admin.ListSellerApplications)
			admin.POST("/seller-applications/:accountId/decision", h.Admin.DecideSellerApplication)
			admin.GET("/submissions", h.Admin.ListSubmissions)
			admin.POST("/submissions/:id/decision", h.Admin.DecideSubmission)
			admin.POST("/orders/:id/refund", h.Admin.RefundOrder)
		}
	}
}
