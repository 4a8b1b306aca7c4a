package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stagepass/ticketing-backend/internal/models"
	"github.com/stagepass/ticketing-backend/internal/services/submission"
	"github.com/stagepass/ticketing-backend/utils"
)

type SubmissionHandler struct {
	submissions submission.Service
}

func NewSubmissionHandler(submissions submission.Service) *SubmissionHandler {
	return &SubmissionHandler{submissions: submissions}
}

// Submit handles POST /api/v1/submissions (approved sellers only).
func (h *SubmissionHandler) Submit(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse("Invalid or missing token"))
		return
	}

	var input submission.SubmitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid JSON format"))
		return
	}

	sub, err := h.submissions.Submit(c.Request.Context(), userID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.SuccessResponse("Submission received", gin.H{
		"id":     sub.ID.Hex(),
		"status": sub.Status,
	}))
}

// List handles GET /api/v1/submissions. Sellers see their own; the admin
// listing lives under /admin and sets the admin view.
func (h *SubmissionHandler) List(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse("Invalid or missing token"))
		return
	}

	filter := models.SubmissionFilter{
		Status: models.SubmissionStatus(c.Query("status")),
	}

	subs, err := h.submissions.List(c.Request.Context(), userID, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Submissions", gin.H{
		"submissions": subs,
		"total":       len(subs),
	}))
}
