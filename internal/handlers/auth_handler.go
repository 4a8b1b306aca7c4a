package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stagepass/ticketing-backend/internal/config"
	"github.com/stagepass/ticketing-backend/internal/core/domain"
	"github.com/stagepass/ticketing-backend/internal/models"
	"github.com/stagepass/ticketing-backend/utils"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	accounts domain.AccountRepository
	cfg      *config.Config
}

func NewAuthHandler(accounts domain.AccountRepository, cfg *config.Config) *AuthHandler {
	return &AuthHandler{accounts: accounts, cfg: cfg}
}

type registerInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"fullName" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request: "+err.Error()))
		return
	}

	if _, err := h.accounts.GetByEmail(c.Request.Context(), input.Email); err == nil {
		c.JSON(http.StatusConflict, utils.ErrorResponse("An account with this email already exists"))
		return
	} else if !errors.Is(err, domain.ErrNotFound) {
		respondError(c, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, err)
		return
	}

	user := &models.User{
		Email:        input.Email,
		Password:     string(hash),
		FullName:     input.FullName,
		Role:         models.RoleCustomer,
		SellerStatus: models.SellerStatusNone,
	}
	if err := h.accounts.Create(c.Request.Context(), user); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.SuccessResponse("Account created", gin.H{
		"id":    user.ID.Hex(),
		"email": user.Email,
		"role":  user.Role,
	}))
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request: "+err.Error()))
		return
	}

	user, err := h.accounts.GetByEmail(c.Request.Context(), input.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse("Invalid email or password"))
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse("Invalid email or password"))
		return
	}

	accessToken, err := utils.GenerateToken(user.ID.Hex(), string(user.Role), h.cfg.AccessTokenTTL)
	if err != nil {
		respondError(c, err)
		return
	}
	refreshToken, err := utils.GenerateRefreshToken(user.ID.Hex(), string(user.Role), h.cfg.RefreshTokenTTL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Login successful", gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
		"user": gin.H{
			"id":           user.ID.Hex(),
			"email":        user.Email,
			"fullName":     user.FullName,
			"role":         user.Role,
			"sellerStatus": user.SellerStatus,
		},
	}))
}

type refreshInput struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var input refreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request"))
		return
	}

	claims, err := utils.VerifyRefreshToken(input.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse("Invalid or expired refresh token"))
		return
	}

	// Role may have changed since the refresh token was minted (e.g. the
	// account was promoted to seller), so reload it.
	id, err := primitiveIDFromHex(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse("Invalid token subject"))
		return
	}
	user, err := h.accounts.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	accessToken, err := utils.GenerateToken(user.ID.Hex(), string(user.Role), h.cfg.AccessTokenTTL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Token refreshed", gin.H{
		"accessToken": accessToken,
	}))
}
