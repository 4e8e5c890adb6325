package handlers

import (
	"errors"
	"net/http"

	"gobarber/services/user"
	"gobarber/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CreateSessionHandler handles POST /sessions (login).
func (h *HandlerBundle) CreateSessionHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation fails"})
		return
	}

	auth, err := h.UserService.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User or password does not match"})
			return
		}
		utils.GetLogger().Error("Failed to authenticate user", zap.String("email", input.Email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, auth)
}
