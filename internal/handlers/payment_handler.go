package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stagepass/ticketing-backend/internal/config"
	"github.com/stagepass/ticketing-backend/internal/core/domain"
	"github.com/stagepass/ticketing-backend/internal/models"
	"github.com/stagepass/ticketing-backend/utils"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"github.com/stripe/stripe-go/v81/webhook"
)

type PaymentHandler struct {
	orders        domain.OrderRepository
	webhookSecret string
}

func NewPaymentHandler(orders domain.OrderRepository, cfg *config.Config) *PaymentHandler {
	stripe.Key = cfg.StripeSecretKey
	return &PaymentHandler{
		orders:        orders,
		webhookSecret: strings.TrimSpace(cfg.StripeWebhookSecret),
	}
}

// CreatePaymentIntent handles POST /api/v1/payments/create-intent.
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse("Invalid or missing token"))
		return
	}

	var req struct {
		OrderID string `json:"orderId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request"))
		return
	}

	orderID, err := primitiveIDFromHex(req.OrderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid order ID"))
		return
	}

	order, err := h.orders.GetByID(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	if order.UserID != userID {
		c.JSON(http.StatusForbidden, utils.ErrorResponse("You do not have access to this order"))
		return
	}
	if order.Status != models.OrderStatusPending {
		c.JSON(http.StatusConflict, utils.ErrorResponse("Order is not awaiting payment"))
		return
	}

	amount := int64(order.Total * 100)
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: map[string]string{
			"orderId": req.OrderID,
		},
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(fmt.Sprintf("Stripe error: %v", err)))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Payment intent created", gin.H{
		"clientSecret": pi.ClientSecret,
	}))
}

// HandleWebhook processes asynchronous events from Stripe. Anything Stripe
// should not retry gets a 200 even when we discard it.
func (h *PaymentHandler) HandleWebhook(c *gin.Context) {
	const MaxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, utils.ErrorResponse("Error reading request body"))
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	event, err := webhook.ConstructEventWithOptions(payload, signature, h.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid signature"))
		return
	}

	switch event.Type {
	case "payment_intent.succeeded":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			c.JSON(http.StatusBadRequest, utils.ErrorResponse("Error parsing webhook JSON"))
			return
		}

		orderID, err := primitiveIDFromHex(pi.Metadata["orderId"])
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"success": true})
			return
		}

		if err := h.orders.MarkPaid(c.Request.Context(), orderID, pi.ID); err != nil {
			logrus.WithError(err).WithField("orderId", orderID.Hex()).Error("failed to mark order paid")
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
