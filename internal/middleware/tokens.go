package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/paleofinder-api/internal/config"
	"github.com/windoze95/paleofinder-api/internal/util"
)

// VerifyTokenMiddleware verifies the access token in the Authorization
// header and stores its user ID in the context.
func VerifyTokenMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))

		userID, err := util.ParseToken(tokenString, util.TokenTypeAccess, cfg.EnvVars.JwtSecretKey)
		if err != nil {
			status := http.StatusUnauthorized
			if errors.Is(err, util.ErrInvalidTokenUser) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"message": err.Error()})
			c.Abort()
			return
		}

		c.Set(util.ContextUserIDKey, userID)
		c.Next()
	}
}
