package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/windoze95/paleofinder-api/internal/config"
	"github.com/windoze95/paleofinder-api/internal/logger"
	"github.com/windoze95/paleofinder-api/internal/models"
	"github.com/windoze95/paleofinder-api/internal/scraper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultFindMaxAttempts   = 5
	defaultDetailConcurrency = 4
)

// FinderService finds recipes on the upstream listing page, either one at
// random or all whose title matches a search.
type FinderService struct {
	Cfg       *config.Config
	Fetcher   scraper.Fetcher
	Extractor *scraper.Extractor
	// Intn returns a uniform random int in [0, n).
	Intn func(n int) int
}

// RecipeResponse is the response object for a found recipe.
type RecipeResponse struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	ImageURL string `json:"image_url"`
	Summary  string `json:"summary"`
}

// NewFinderService is the constructor function for initializing a new FinderService.
func NewFinderService(cfg *config.Config, fetcher scraper.Fetcher, extractor *scraper.Extractor) *FinderService {
	return &FinderService{
		Cfg:       cfg,
		Fetcher:   fetcher,
		Extractor: extractor,
		Intn:      rand.IntN,
	}
}

// ToRecipeResponse converts a RecipeDetail to a RecipeResponse.
func ToRecipeResponse(detail models.RecipeDetail) RecipeResponse {
	return RecipeResponse{
		Title:    detail.Summary.Title,
		Link:     detail.Summary.Link,
		ImageURL: detail.Summary.ImageURL,
		Summary:  detail.Body,
	}
}

// Find returns one recipe picked at random from the listing. Candidates
// that turn out to be list pages, or whose page cannot be fetched, are
// discarded and the whole pick is retried, up to FindMaxAttempts times.
func (s *FinderService) Find(ctx context.Context) (*models.RecipeDetail, error) {
	maxAttempts := s.Cfg.EnvVars.FindMaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultFindMaxAttempts
	}
	log := logger.With(zap.String("operation", "find"))

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		recipes, err := s.listRecipes(ctx)
		if err != nil {
			var fetchErr *scraper.FetchError
			if !errors.As(err, &fetchErr) {
				return nil, err
			}
			log.Warn("failed to fetch listing", zap.Int("attempt", attempt), zap.Error(err))
			lastErr = err
			continue
		}
		if len(recipes) == 0 {
			return nil, ErrNoRecipes
		}

		candidate := recipes[s.Intn(len(recipes))]
		html, err := s.Fetcher.Fetch(ctx, candidate.Link)
		if err != nil {
			log.Warn("failed to fetch candidate recipe", zap.Int("attempt", attempt), zap.String("link", candidate.Link), zap.Error(err))
			lastErr = err
			continue
		}

		body, isRecipe := s.Extractor.ParseDetail(html)
		if !isRecipe {
			log.Info("candidate is a list page, picking again", zap.Int("attempt", attempt), zap.String("link", candidate.Link))
			lastErr = nil
			continue
		}

		return &models.RecipeDetail{Summary: candidate, Body: body}, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w after %d attempts: %w", ErrNoValidRecipe, maxAttempts, lastErr)
	}
	return nil, fmt.Errorf("%w after %d attempts", ErrNoValidRecipe, maxAttempts)
}

// Search returns every listed recipe whose title matches query, in listing
// order, each with its summary. Recipes whose page cannot be fetched are
// left out; if none can be fetched the last fetch error is returned.
func (s *FinderService) Search(ctx context.Context, query string) ([]models.RecipeDetail, error) {
	terms := Terms(query)
	if len(terms) == 0 {
		return nil, ErrEmptySearch
	}
	log := logger.With(zap.String("operation", "search"), zap.Strings("terms", terms))

	recipes, err := s.listRecipes(ctx)
	if err != nil {
		return nil, err
	}

	var matched []models.RecipeSummary
	for _, recipe := range recipes {
		if Matches(terms, Terms(recipe.Title)) {
			matched = append(matched, recipe)
		}
	}
	if len(matched) == 0 {
		return nil, ErrNoMatch
	}

	concurrency := s.Cfg.EnvVars.DetailConcurrency
	if concurrency <= 0 {
		concurrency = defaultDetailConcurrency
	}

	// Indexed by position in matched so completion order does not matter.
	details := make([]*models.RecipeDetail, len(matched))
	fetchErrs := make([]error, len(matched))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, summary := range matched {
		g.Go(func() error {
			html, err := s.Fetcher.Fetch(ctx, summary.Link)
			if err != nil {
				log.Warn("dropping recipe whose page could not be fetched", zap.String("link", summary.Link), zap.Error(err))
				fetchErrs[i] = err
				return nil
			}
			details[i] = &models.RecipeDetail{Summary: summary, Body: s.Extractor.ExtractBody(html)}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]models.RecipeDetail, 0, len(matched))
	var lastErr error
	for i, detail := range details {
		if detail == nil {
			lastErr = fetchErrs[i]
			continue
		}
		results = append(results, *detail)
	}
	if len(results) == 0 {
		return nil, lastErr
	}

	log.Info("search complete", zap.Int("matched", len(matched)), zap.Int("returned", len(results)))
	return results, nil
}

func (s *FinderService) listRecipes(ctx context.Context) ([]models.RecipeSummary, error) {
	listingURL := s.Cfg.EnvVars.ListingURL
	html, err := s.Fetcher.Fetch(ctx, listingURL)
	if err != nil {
		return nil, err
	}
	return s.Extractor.ListRecipes(html, listingURL)
}
