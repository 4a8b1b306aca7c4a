package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stagepass/ticketing-backend/internal/core/domain"
	"github.com/stagepass/ticketing-backend/utils"
)

// respondError maps workflow errors onto HTTP status codes. Validation and
// state conflicts carry the violated rule in the message; anything else is
// a server error and gets logged.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(err.Error()))
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, utils.ErrorResponse(err.Error()))
	case domain.IsConflict(err):
		c.JSON(http.StatusConflict, utils.ErrorResponse(err.Error()))
	default:
		logrus.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Something went wrong, please try again"))
	}
}
