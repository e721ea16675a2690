package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/paleofinder-api/internal/logger"
	"github.com/windoze95/paleofinder-api/internal/models"
	"github.com/windoze95/paleofinder-api/internal/repository"
	"github.com/windoze95/paleofinder-api/internal/service"
	"github.com/windoze95/paleofinder-api/internal/util"
	"go.uber.org/zap"
)

// nextAfterLogin is where a client goes once signed in.
const nextAfterLogin = "/v1/recipes/find"

// UserHandler is the handler for user-related requests.
type UserHandler struct {
	Service *service.UserService
}

// NewUserHandler is the constructor function for initializing a new UserHandler.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{Service: userService}
}

// CreateUser registers a new user and logs them in.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var newUser struct {
		Username     string `json:"username" form:"username"`
		Password     string `json:"password" form:"password"`
		Confirmation string `json:"confirmation" form:"confirmation"`
	}
	if err := c.ShouldBind(&newUser); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid registration request"})
		return
	}

	if err := h.Service.ValidateUsername(newUser.Username); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Service.ValidatePassword(newUser.Password, newUser.Confirmation); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Service.CreateUser(newUser.Username, newUser.Password)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "username is already taken"})
			return
		}
		logger.FromGin(c).Error("failed to create user", zap.String("username", newUser.Username), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	h.respondWithTokens(c, user, http.StatusCreated, "User signed up successfully")
}

// LoginUser logs a user in.
func (h *UserHandler) LoginUser(c *gin.Context) {
	var userCredentials struct {
		Username string `json:"username" form:"username"`
		Password string `json:"password" form:"password"`
	}
	if err := c.ShouldBind(&userCredentials); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid login request"})
		return
	}
	if userCredentials.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "must provide username"})
		return
	}
	if userCredentials.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "must provide password"})
		return
	}

	user, err := h.Service.LoginUser(userCredentials.Username, userCredentials.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		logger.FromGin(c).Error("failed to log in user", zap.String("username", userCredentials.Username), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		return
	}

	h.respondWithTokens(c, user, http.StatusOK, "User logged in successfully")
}

func (h *UserHandler) respondWithTokens(c *gin.Context, user *models.User, status int, message string) {
	tokens, err := util.IssueTokenPair(user.ID, h.Service.Cfg.EnvVars.JwtSecretKey)
	if err != nil {
		logger.FromGin(c).Error("failed to issue tokens", zap.Uint("user_id", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tokens"})
		return
	}

	c.JSON(status, gin.H{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"message":       message,
		"next":          nextAfterLogin,
		"user":          service.ToUserResponse(user),
	})
}

// RefreshToken validates a refresh token and issues a new token pair.
func (h *UserHandler) RefreshToken(c *gin.Context) {
	var request struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "refresh_token is required"})
		return
	}

	userID, err := util.ParseToken(request.RefreshToken, util.TokenTypeRefresh, h.Service.Cfg.EnvVars.JwtSecretKey)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		return
	}

	tokens, err := util.IssueTokenPair(userID, h.Service.Cfg.EnvVars.JwtSecretKey)
	if err != nil {
		logger.FromGin(c).Error("failed to issue tokens on refresh", zap.Uint("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tokens"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": tokens.AccessToken, "refresh_token": tokens.RefreshToken})
}

// LogoutUser acknowledges a logout. Tokens are stateless, so the client
// discards them.
func (h *UserHandler) LogoutUser(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "User logged out successfully"})
}

// GetMe returns the authenticated user's profile.
func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := util.GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": service.ToUserResponse(user)})
}
