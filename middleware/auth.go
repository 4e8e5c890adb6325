package middleware

import (
	"net/http"
	"strings"

	userRepo "gobarber/database/repository/user"
	"gobarber/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware validates the Bearer token, confirms the subject still
// exists and stores the user ID in the request context.
func JWTAuthMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token not provided"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token invalid"})
			return
		}

		// The token may outlive the account.
		if _, err := users.GetByID(c.Request.Context(), userID); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token invalid"})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}

// UserID extracts the authenticated user ID placed by JWTAuthMiddleware.
func UserID(c *gin.Context) string {
	id, _ := c.Get("userID")
	s, _ := id.(string)
	return s
}
