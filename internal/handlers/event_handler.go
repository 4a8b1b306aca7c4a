package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stagepass/ticketing-backend/internal/core/domain"
	"github.com/stagepass/ticketing-backend/utils"
)

// EventHandler serves the public, customer-facing event catalog.
type EventHandler struct {
	events domain.EventRepository
}

func NewEventHandler(events domain.EventRepository) *EventHandler {
	return &EventHandler{events: events}
}

// List handles GET /api/v1/public/events.
func (h *EventHandler) List(c *gin.Context) {
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	page, err := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}

	events, total, err := h.events.ListActive(c.Request.Context(), limit, (page-1)*limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Events", gin.H{
		"events": events,
		"total":  total,
		"page":   page,
		"limit":  limit,
	}))
}

// GetBySlug handles GET /api/v1/public/events/:slug.
func (h *EventHandler) GetBySlug(c *gin.Context) {
	event, err := h.events.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Event", event))
}
