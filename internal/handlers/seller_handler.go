package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stagepass/ticketing-backend/internal/services/seller"
	"github.com/stagepass/ticketing-backend/utils"
)

type SellerHandler struct {
	sellers seller.Service
}

func NewSellerHandler(sellers seller.Service) *SellerHandler {
	return &SellerHandler{sellers: sellers}
}

// Apply handles POST /api/v1/seller/apply.
func (h *SellerHandler) Apply(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse("Invalid or missing token"))
		return
	}

	var input seller.ApplyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid JSON format"))
		return
	}

	snap, err := h.sellers.Apply(c.Request.Context(), userID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Application submitted", snap))
}

// GetStatus handles GET /api/v1/seller/status.
func (h *SellerHandler) GetStatus(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse("Invalid or missing token"))
		return
	}

	snap, err := h.sellers.GetStatus(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Seller status", snap))
}
