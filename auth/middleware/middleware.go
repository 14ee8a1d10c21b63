package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/adeel/roomshare-backend/auth"
)

const userIDKey = "userID"

// bearerUserID extracts the authenticated user id from the Authorization
// header, or uuid.Nil if the request is unauthenticated.
func bearerUserID(c *gin.Context) uuid.UUID {
	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return uuid.Nil
	}
	sub, err := auth.ValidateToken(parts[1], auth.TokenTypeAccess)
	if err != nil {
		return uuid.Nil
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil
	}
	return userID
}

// AuthRequired rejects unauthenticated requests.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := bearerUserID(c)
		if userID == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// AuthOptional attaches the user id when a valid token is present and
// continues unauthenticated otherwise.
func AuthOptional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := bearerUserID(c); userID != uuid.Nil {
			c.Set(userIDKey, userID)
		}
		c.Next()
	}
}

// UserID returns the authenticated user id set by AuthRequired/AuthOptional,
// or uuid.Nil for anonymous requests.
func UserID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(userIDKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}
