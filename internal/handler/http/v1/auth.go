package v1

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/crowd_alert_system/internal/config"
	"github.com/sirupsen/logrus"
)

// APIKeyAuthMiddleware - middleware для аутентификации по API-ключу
func APIKeyAuthMiddleware(cfg *config.Config, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-Key")
		if apiKey == "" {
			// Проверяем также заголовок Authorization: Bearer
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				apiKey = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if apiKey == "" {
			log.WithField("path", c.FullPath()).Warn("API key missing from request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API key required"})
			return
		}

		if !validAPIKey(cfg.APIKeys, apiKey) {
			// сам ключ в лог не пишем
			log.WithField("path", c.FullPath()).Warn("Invalid API key provided")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			return
		}

		c.Next()
	}
}

func validAPIKey(keys []string, candidate string) bool {
	for _, key := range keys {
		if key != "" && subtle.ConstantTimeCompare([]byte(key), []byte(candidate)) == 1 {
			return true
		}
	}
	return false
}
