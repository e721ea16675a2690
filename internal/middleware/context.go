package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/paleofinder-api/internal/logger"
	"github.com/windoze95/paleofinder-api/internal/service"
	"github.com/windoze95/paleofinder-api/internal/util"
	"go.uber.org/zap"
)

// AttachUserToContext loads the user named by the verified token and stores
// it in the context. Requests whose user no longer exists are rejected.
func AttachUserToContext(userService *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := util.GetUserIDFromContext(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
			c.Abort()
			return
		}

		user, err := userService.GetUserByID(userID)
		if err != nil {
			logger.FromGin(c).Info("token user not found", zap.Uint("user_id", userID), zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
			c.Abort()
			return
		}

		c.Set(util.ContextUserKey, user)
		c.Next()
	}
}
