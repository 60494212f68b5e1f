package middleware

import (
	"net/http"
	"strings"

	"todoapp/internal/service"

	"github.com/gin-gonic/gin"
)

// TokenParser is implemented by *service.TokenService.
type TokenParser interface {
	Parse(token string) (*service.Claims, error)
}

// JWT rejects requests without a valid bearer token and stores
// user_id and username in the gin context.
func JWT(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Next()
	}
}
