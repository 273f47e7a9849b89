package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/simatwa/tailoring-ms-api/config"
	"github.com/simatwa/tailoring-ms-api/models"
	"github.com/simatwa/tailoring-ms-api/services"
)

const currentUserKey = "current_user"

// abortUnauthenticated rejects the request with the uniform detail envelope
// and the Bearer challenge header.
func abortUnauthenticated(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"detail": "Invalid or missing token",
	})
}

// RequireToken authenticates the request's bearer token against the stored
// user tokens and stashes the resolved user in the context. Tokens are
// opaque strings carrying the fixed service prefix; anything else is
// rejected without touching the database.
func RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthenticated(c)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortUnauthenticated(c)
			return
		}

		user, err := services.AuthenticateToken(config.GetDB(), strings.TrimSpace(parts[1]))
		if err != nil {
			if err != services.ErrInvalidToken {
				log.Error().Err(err).Msg("token lookup failed")
			}
			abortUnauthenticated(c)
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser extracts the authenticated user from the Gin context
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
