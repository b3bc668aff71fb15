package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"accountsvc/auth"
	"accountsvc/services"
)

const (
	ClaimsKey = "claims"
	UserIDKey = "userID"
)

// AuthRequired rejects requests without a valid bearer token and stores the
// verified claims plus the numeric user id in the gin context.
func AuthRequired(accounts *services.Accounts) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := accounts.VerifyToken(c.GetHeader("Authorization"))
		if err != nil {
			if errors.Is(err, auth.ErrMissingToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token required"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// UserID returns the authenticated user id set by AuthRequired.
func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
