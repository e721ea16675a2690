package scraper

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/windoze95/paleofinder-api/internal/config"
	"github.com/windoze95/paleofinder-api/internal/logger"
	"github.com/windoze95/paleofinder-api/internal/models"
	"go.uber.org/zap"
)

// Extractor pulls recipe records out of upstream HTML using a fixed set of
// markers.
type Extractor struct {
	markers config.Markers
}

// NewExtractor creates an Extractor. A nil markers value selects
// config.DefaultMarkers.
func NewExtractor(markers *config.Markers) *Extractor {
	if markers == nil {
		markers = config.DefaultMarkers()
	}
	return &Extractor{markers: *markers}
}

// ListRecipes returns one RecipeSummary per well-formed card in the listing
// container, in document order. Relative card links are resolved against
// baseURL. Cards without a title, link or image are skipped.
func (e *Extractor) ListRecipes(html string, baseURL string) ([]models.RecipeSummary, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, &ExtractError{Reason: "invalid base URL: " + err.Error()}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &ExtractError{Reason: "failed to parse HTML: " + err.Error()}
	}

	container := doc.Find(e.markers.Listing.Container).First()
	if container.Length() == 0 {
		return nil, &ExtractError{Reason: "container not found"}
	}

	log := logger.Get()
	var recipes []models.RecipeSummary
	container.Find(e.markers.Listing.Card).Each(func(i int, card *goquery.Selection) {
		summary, reason := e.parseCard(card, base)
		if reason != "" {
			log.Warn("skipping malformed recipe card", zap.Int("index", i), zap.String("reason", reason))
			return
		}
		recipes = append(recipes, summary)
	})

	return recipes, nil
}

// parseCard returns the card's summary, or a non-empty reason when a
// required field is missing.
func (e *Extractor) parseCard(card *goquery.Selection, base *url.URL) (models.RecipeSummary, string) {
	title := strings.TrimSpace(card.Find(e.markers.Listing.Title).First().Text())
	if title == "" {
		return models.RecipeSummary{}, "missing title"
	}

	href, ok := card.Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return models.RecipeSummary{}, "missing link"
	}
	link := resolveURL(base, strings.TrimSpace(href))
	if link == "" {
		return models.RecipeSummary{}, "unusable link"
	}

	src, ok := card.Find(e.markers.Listing.Image).First().Attr("src")
	if !ok || strings.TrimSpace(src) == "" {
		return models.RecipeSummary{}, "missing image"
	}

	return models.RecipeSummary{
		Title:    title,
		Link:     link,
		ImageURL: strings.TrimSpace(src),
	}, ""
}

// ExtractBody returns the recipe summary text of a detail page, or
// models.NotARecipeBody when the page is not a single recipe.
func (e *Extractor) ExtractBody(html string) string {
	body, isRecipe := e.ParseDetail(html)
	if !isRecipe {
		return models.NotARecipeBody
	}
	return body
}

// ParseDetail reports whether the page carries the single-recipe marker and,
// if so, the trimmed text of its summary element. A recipe page without a
// summary yields an empty body.
func (e *Extractor) ParseDetail(html string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", false
	}

	recipe := doc.Find(e.markers.Detail.Recipe).First()
	if recipe.Length() == 0 {
		return "", false
	}

	return strings.TrimSpace(recipe.Find(e.markers.Detail.Summary).First().Text()), true
}

// resolveURL resolves href against base and returns an absolute http(s) URL,
// or "" if that is not possible.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	if resolved.Host == "" {
		return ""
	}
	return resolved.String()
}
