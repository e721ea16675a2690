package router

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/windoze95/paleofinder-api/internal/config"
	"github.com/windoze95/paleofinder-api/internal/handlers"
	"github.com/windoze95/paleofinder-api/internal/logger"
	"github.com/windoze95/paleofinder-api/internal/middleware"
	"github.com/windoze95/paleofinder-api/internal/repository"
	"github.com/windoze95/paleofinder-api/internal/scraper"
	"github.com/windoze95/paleofinder-api/internal/service"
)

const (
	limiterCleanupInterval = 5 * time.Minute
	limiterExpiration      = 10 * time.Minute
)

// SetupRouter sets up the Gin router. Background work started here stops
// when ctx is done.
func SetupRouter(ctx context.Context, cfg *config.Config, userRepo repository.UserRepo, fetcher scraper.Fetcher) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.EnvVars.AllowedOrigins)))

	// Request correlation, access logging and no-cache on every response
	r.Use(logger.RequestIDMiddleware())
	r.Use(logger.AccessLogMiddleware())
	r.Use(middleware.NoCacheHeaders())

	// Ping route for testing
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// User-related routes setup
	userService := service.NewUserService(cfg, userRepo)
	userHandler := handlers.NewUserHandler(userService)

	// Recipe finder setup
	extractor := scraper.NewExtractor(cfg.Markers)
	finderService := service.NewFinderService(cfg, fetcher, extractor)
	finderHandler := handlers.NewFinderHandler(finderService)

	limiter := middleware.NewIPRateLimiter(cfg.EnvVars.RateLimitRPS)
	go limiter.RunCleanup(ctx, limiterCleanupInterval, limiterExpiration)
	rateLimit := middleware.RateLimitByIP(limiter)

	// Group for API routes that don't require token verification
	apiPublic := r.Group("/v1")
	{
		// Create a new user
		apiPublic.POST("/users", userHandler.CreateUser)
		// Login a user
		apiPublic.POST("/auth/login", userHandler.LoginUser)
		// Refresh an access token
		apiPublic.POST("/auth/refresh", userHandler.RefreshToken)
		// Logout; tokens are dropped client side
		apiPublic.POST("/auth/logout", userHandler.LogoutUser)

		// Random recipe and keyword search against the recipe site
		apiPublic.GET("/recipes/find", rateLimit, finderHandler.FindRecipe)
		apiPublic.GET("/recipes/search", rateLimit, finderHandler.SearchRecipes)
		apiPublic.POST("/recipes/search", rateLimit, finderHandler.SearchRecipes)
	}

	// Group for API routes that require token verification
	apiProtected := r.Group("/v1")
	{
		apiProtected.Use(middleware.VerifyTokenMiddleware(cfg))

		// Get the authenticated user
		apiProtected.GET("/users/me", middleware.AttachUserToContext(userService), userHandler.GetMe)
	}

	return r
}

// corsConfig allows the listed origins with credentials, or any origin
// without credentials when none are listed.
func corsConfig(allowedOrigins []string) cors.Config {
	config := cors.DefaultConfig()
	config.AddAllowHeaders("Authorization")
	config.ExposeHeaders = []string{"X-Request-ID"}
	if len(allowedOrigins) == 0 {
		config.AllowAllOrigins = true
		return config
	}
	config.AllowCredentials = true
	config.AllowOrigins = allowedOrigins
	return config
}
