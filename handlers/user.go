package handlers

import (
	"errors"
	"net/http"

	userRepo "gobarber/database/repository/user"
	"gobarber/middleware"
	"gobarber/services/user"
	"gobarber/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterUserHandler handles POST /users.
func (h *HandlerBundle) RegisterUserHandler(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Provider bool   `json:"provider"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation fails"})
		return
	}

	usr, err := h.UserService.Register(c.Request.Context(), user.RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Provider: input.Provider,
	})
	if err != nil {
		if errors.Is(err, userRepo.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
			return
		}
		utils.GetLogger().Error("Failed to register user", zap.String("email", input.Email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, usr)
}

// UpdateUserHandler handles PUT /users.
func (h *HandlerBundle) UpdateUserHandler(c *gin.Context) {
	var input struct {
		Name        string `json:"name"`
		Email       string `json:"email" binding:"omitempty,email"`
		OldPassword string `json:"old_password"`
		Password    string `json:"password" binding:"omitempty,min=6"`
		AvatarID    string `json:"avatar_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation fails"})
		return
	}

	userID := middleware.UserID(c)

	usr, err := h.UserService.Update(c.Request.Context(), userID, user.UpdateInput{
		Name:        input.Name,
		Email:       input.Email,
		OldPassword: input.OldPassword,
		Password:    input.Password,
		AvatarID:    input.AvatarID,
	})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrPasswordMismatch):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Password does not match"})
		case errors.Is(err, userRepo.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
		default:
			utils.GetLogger().Error("Failed to update user", zap.String("userID", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, usr)
}

// RegisterDeviceHandler handles PUT /users/device (FCM token registration).
func (h *HandlerBundle) RegisterDeviceHandler(c *gin.Context) {
	var input struct {
		FCMToken string `json:"fcm_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation fails"})
		return
	}

	userID := middleware.UserID(c)
	if err := h.UserService.SetFCMToken(c.Request.Context(), userID, input.FCMToken); err != nil {
		utils.GetLogger().Error("Failed to register device", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Device registered"})
}
