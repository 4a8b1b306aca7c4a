package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stagepass/ticketing-backend/internal/core/domain"
	"github.com/stagepass/ticketing-backend/internal/models"
	"github.com/stagepass/ticketing-backend/utils"
)

type OrderHandler struct {
	orders domain.OrderRepository
	events domain.EventRepository
}

func NewOrderHandler(orders domain.OrderRepository, events domain.EventRepository) *OrderHandler {
	return &OrderHandler{orders: orders, events: events}
}

// PlaceOrder handles POST /api/v1/orders: a pending ticket order priced
// from the published event, to be paid through the payment intent flow.
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse("Invalid or missing token"))
		return
	}

	var input models.PlaceOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request: "+err.Error()))
		return
	}

	eventID, err := primitiveIDFromHex(input.EventID)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid event id"))
		return
	}

	event, err := h.events.GetByID(c.Request.Context(), eventID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !event.IsActive {
		c.JSON(http.StatusConflict, utils.ErrorResponse("Event is no longer on sale"))
		return
	}

	order := &models.TicketOrder{
		UserID:        userID,
		EventID:       event.ID,
		EventTitle:    event.Title,
		EventSlug:     event.Slug,
		UnitPrice:     event.TicketPrice,
		Quantity:      input.Quantity,
		Total:         event.TicketPrice * float64(input.Quantity),
		Status:        models.OrderStatusPending,
		PaymentStatus: "unpaid",
	}
	if err := h.orders.Create(c.Request.Context(), order); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.SuccessResponse("Order placed", order))
}

// GetUserOrders handles GET /api/v1/orders.
func (h *OrderHandler) GetUserOrders(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse("Invalid or missing token"))
		return
	}

	orders, err := h.orders.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Orders", gin.H{
		"orders": orders,
		"total":  len(orders),
	}))
}

// GetOrderById handles GET /api/v1/orders/:id. Admins may look at any
// order; customers only their own.
func (h *OrderHandler) GetOrderById(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse("Invalid or missing token"))
		return
	}

	orderID, err := primitiveIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid order id"))
		return
	}

	order, err := h.orders.GetByID(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	if order.UserID != userID && currentRole(c) != string(models.RoleAdmin) {
		c.JSON(http.StatusForbidden, utils.ErrorResponse("You do not have access to this order"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Order", order))
}
