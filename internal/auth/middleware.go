package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// validates JWT tokens and adds user info to context. Failures are recorded
// on the context for the exception filter.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := claimsFromHeader(secret, c.GetHeader("Authorization"))
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// validates JWT if present but doesn't require it
func OptionalAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}

		if claims, err := claimsFromHeader(secret, c.GetHeader("Authorization")); err == nil {
			setClaims(c, claims)
		}

		c.Next()
	}
}

func claimsFromHeader(secret, header string) (*Claims, error) {
	if header == "" {
		return nil, ErrMissingToken
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, ErrMalformedAuth
	}

	return ValidateJWT(secret, parts[1])
}

func setClaims(c *gin.Context, claims *Claims) {
	c.Set("user_id", claims.UserID)
	c.Set("user_email", claims.Email)
	c.Set("is_admin", claims.IsAdmin)
}

// extracts user_id from context after AuthMiddleware
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")

	if !exists {
		return "", false
	}

	id, ok := userID.(string)
	return id, ok
}

// reports whether the authenticated user is an admin
func IsAdmin(c *gin.Context) bool {
	return c.GetBool("is_admin")
}
