package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/paleofinder-api/internal/logger"
	"github.com/windoze95/paleofinder-api/internal/models"
	"github.com/windoze95/paleofinder-api/internal/scraper"
	"github.com/windoze95/paleofinder-api/internal/service"
	"go.uber.org/zap"
)

// Error codes returned in the error_code field of failed finder requests.
const (
	CodeEmptySearch     = "empty_search"
	CodeNoMatch         = "no_match"
	CodeNoRecipe        = "no_recipe"
	CodeUpstreamFailure = "upstream_unavailable"
	CodeInternal        = "internal_error"
)

// FinderHandler is the handler for random and keyword recipe lookups.
type FinderHandler struct {
	Service *service.FinderService
}

// NewFinderHandler is the constructor function for initializing a new FinderHandler.
func NewFinderHandler(finderService *service.FinderService) *FinderHandler {
	return &FinderHandler{Service: finderService}
}

// FindRecipe handles GET /v1/recipes/find and returns one random recipe.
func (h *FinderHandler) FindRecipe(c *gin.Context) {
	detail, err := h.Service.Find(c.Request.Context())
	if err != nil {
		h.respondError(c, "find", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": service.ToRecipeResponse(*detail)})
}

// SearchRecipes handles GET /v1/recipes/search?q=... and POST
// /v1/recipes/search with a search_terms form or JSON field.
func (h *FinderHandler) SearchRecipes(c *gin.Context) {
	query := c.Query("q")
	if c.Request.Method == http.MethodPost {
		var req struct {
			SearchTerms string `json:"search_terms" form:"search_terms"`
		}
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error_code": CodeEmptySearch, "message": "Invalid search request"})
			return
		}
		query = req.SearchTerms
	}

	details, err := h.Service.Search(c.Request.Context(), query)
	if err != nil {
		h.respondError(c, "search", err, zap.String("query", query))
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": toRecipeResponses(details)})
}

func toRecipeResponses(details []models.RecipeDetail) []service.RecipeResponse {
	responses := make([]service.RecipeResponse, 0, len(details))
	for _, d := range details {
		responses = append(responses, service.ToRecipeResponse(d))
	}
	return responses
}

// respondError maps a finder error to its status, code and message.
func (h *FinderHandler) respondError(c *gin.Context, op string, err error, fields ...zap.Field) {
	log := logger.FromGin(c).With(append(fields, zap.String("operation", op), zap.Error(err))...)

	var (
		fetchErr   *scraper.FetchError
		extractErr *scraper.ExtractError
	)
	switch {
	case errors.Is(err, service.ErrEmptySearch):
		c.JSON(http.StatusBadRequest, gin.H{"error_code": CodeEmptySearch, "message": "Please enter some text for your search."})
	case errors.Is(err, service.ErrNoMatch):
		c.JSON(http.StatusNotFound, gin.H{"error_code": CodeNoMatch, "message": "Sorry, none of the terms you entered matched any recipe."})
	case errors.Is(err, service.ErrNoRecipes), errors.Is(err, service.ErrNoValidRecipe):
		log.Warn("no recipe available")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error_code": CodeNoRecipe, "message": "Sorry, no recipe is available right now. Please try again."})
	case errors.As(err, &fetchErr), errors.As(err, &extractErr):
		log.Error("recipe site request failed")
		c.JSON(http.StatusBadGateway, gin.H{"error_code": CodeUpstreamFailure, "message": "Sorry, the recipe site could not be reached. Please try again later."})
	default:
		log.Error("unexpected finder failure")
		c.JSON(http.StatusInternalServerError, gin.H{"error_code": CodeInternal, "message": "Internal server error"})
	}
}
