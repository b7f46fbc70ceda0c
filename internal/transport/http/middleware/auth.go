package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/iamasit07/4-in-a-row/bot/pkg/auth"
)

const (
	// ContextSubject holds the token subject for downstream handlers
	ContextSubject = "service_subject"
	// ContextRole holds the token role
	ContextRole = "service_role"
)

// AuthMiddleware checks the bearer service token. An empty secret turns
// authentication off.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		claims, err := auth.ValidateServiceToken(secret, tokenString)
		if err != nil {
			log.Debug().Str("component", "auth").Err(err).Str("ip", c.ClientIP()).Msg("rejected token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(ContextSubject, claims.Subject)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}
