package scraper_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/windoze95/paleofinder-api/internal/config"
	"github.com/windoze95/paleofinder-api/internal/models"
	"github.com/windoze95/paleofinder-api/internal/scraper"
	"github.com/windoze95/paleofinder-api/internal/testutil"
)

func TestExtractor_ListRecipes(t *testing.T) {
	t.Parallel()

	t.Run("returns every well-formed card in document order", func(t *testing.T) {
		t.Parallel()

		html := testutil.ListingHTML(
			testutil.TestCard("paleo-chili", "Paleo Chili"),
			testutil.TestCard("chicken-soup", "Chicken Soup"),
			testutil.TestCard("banana-bread", "Banana Bread"),
		)

		recipes, err := scraper.NewExtractor(nil).ListRecipes(html, testutil.ListingURL)

		require.NoError(t, err)
		require.Len(t, recipes, 3)
		assert.Equal(t, "Paleo Chili", recipes[0].Title)
		assert.Equal(t, "Chicken Soup", recipes[1].Title)
		assert.Equal(t, "Banana Bread", recipes[2].Title)
		assert.Equal(t, models.RecipeSummary{
			Title:    "Chicken Soup",
			Link:     "https://ultimatepaleoguide.com/chicken-soup/",
			ImageURL: "https://ultimatepaleoguide.com/wp-content/uploads/chicken-soup.jpg",
		}, recipes[1])
	})

	t.Run("ignores anchors outside the container", func(t *testing.T) {
		t.Parallel()

		recipes, err := scraper.NewExtractor(nil).ListRecipes(testutil.ListingHTML(), testutil.ListingURL)

		require.NoError(t, err)
		assert.Empty(t, recipes)
	})

	t.Run("skips a card missing its image", func(t *testing.T) {
		t.Parallel()

		broken := testutil.TestCard("mystery-stew", "Mystery Stew")
		broken.Image = ""
		html := testutil.ListingHTML(
			testutil.TestCard("paleo-chili", "Paleo Chili"),
			broken,
			testutil.TestCard("banana-bread", "Banana Bread"),
		)

		recipes, err := scraper.NewExtractor(nil).ListRecipes(html, testutil.ListingURL)

		require.NoError(t, err)
		require.Len(t, recipes, 2)
		assert.Equal(t, "Paleo Chili", recipes[0].Title)
		assert.Equal(t, "Banana Bread", recipes[1].Title)
	})

	t.Run("skips cards missing title or link", func(t *testing.T) {
		t.Parallel()

		noTitle := testutil.TestCard("untitled", "")
		noLink := testutil.TestCard("nowhere", "Nowhere Salad")
		noLink.Link = ""
		html := testutil.ListingHTML(noTitle, testutil.TestCard("paleo-chili", "Paleo Chili"), noLink)

		recipes, err := scraper.NewExtractor(nil).ListRecipes(html, testutil.ListingURL)

		require.NoError(t, err)
		require.Len(t, recipes, 1)
		assert.Equal(t, "Paleo Chili", recipes[0].Title)
	})

	t.Run("resolves relative links against the base URL", func(t *testing.T) {
		t.Parallel()

		card := testutil.TestCard("paleo-chili", "Paleo Chili")
		card.Link = "/paleo-chili/"

		recipes, err := scraper.NewExtractor(nil).ListRecipes(testutil.ListingHTML(card), testutil.ListingURL)

		require.NoError(t, err)
		require.Len(t, recipes, 1)
		assert.Equal(t, "https://ultimatepaleoguide.com/paleo-chili/", recipes[0].Link)
	})

	t.Run("skips non-HTTP links", func(t *testing.T) {
		t.Parallel()

		card := testutil.TestCard("paleo-chili", "Paleo Chili")
		card.Link = "javascript:void(0)"

		recipes, err := scraper.NewExtractor(nil).ListRecipes(testutil.ListingHTML(card), testutil.ListingURL)

		require.NoError(t, err)
		assert.Empty(t, recipes)
	})

	t.Run("returns ExtractError when the container is missing", func(t *testing.T) {
		t.Parallel()

		_, err := scraper.NewExtractor(nil).ListRecipes(`<html><body><a href="/x">x</a></body></html>`, testutil.ListingURL)

		require.Error(t, err)
		var extractErr *scraper.ExtractError
		require.True(t, errors.As(err, &extractErr))
		assert.Equal(t, "container not found", extractErr.Reason)
	})

	t.Run("honours custom markers", func(t *testing.T) {
		t.Parallel()

		markers := config.DefaultMarkers()
		markers.Listing.Container = "#grid"
		markers.Listing.Title = "h3"
		markers.Listing.Image = "img"
		html := `<div id="grid"><a href="https://example.com/a"><img src="a.jpg"><h3> Apple Crisp </h3></a></div>`

		recipes, err := scraper.NewExtractor(markers).ListRecipes(html, "https://example.com/")

		require.NoError(t, err)
		require.Len(t, recipes, 1)
		assert.Equal(t, "Apple Crisp", recipes[0].Title)
		assert.Equal(t, "a.jpg", recipes[0].ImageURL)
	})
}

func TestExtractor_ExtractBody(t *testing.T) {
	t.Parallel()

	t.Run("returns trimmed summary of a recipe page", func(t *testing.T) {
		t.Parallel()

		body := scraper.NewExtractor(nil).ExtractBody(testutil.RecipeHTML("A warming, grain-free chili."))

		assert.Equal(t, "A warming, grain-free chili.", body)
	})

	t.Run("returns the sentinel for a list page", func(t *testing.T) {
		t.Parallel()

		body := scraper.NewExtractor(nil).ExtractBody(testutil.ListPageHTML())

		assert.Equal(t, "This is a list of recipes, not a single recipe.", body)
	})

	t.Run("summary outside the recipe container is ignored", func(t *testing.T) {
		t.Parallel()

		html := `<div class="wprm-recipe-summary">orphan</div>`

		assert.Equal(t, models.NotARecipeBody, scraper.NewExtractor(nil).ExtractBody(html))
	})
}

func TestExtractor_ParseDetail(t *testing.T) {
	t.Parallel()

	t.Run("reports recipe pages", func(t *testing.T) {
		t.Parallel()

		body, ok := scraper.NewExtractor(nil).ParseDetail(testutil.RecipeHTML("Crispy skin, juicy meat."))

		assert.True(t, ok)
		assert.Equal(t, "Crispy skin, juicy meat.", body)
	})

	t.Run("reports list pages", func(t *testing.T) {
		t.Parallel()

		body, ok := scraper.NewExtractor(nil).ParseDetail(testutil.ListPageHTML())

		assert.False(t, ok)
		assert.Empty(t, body)
	})

	t.Run("recipe without summary yields empty body", func(t *testing.T) {
		t.Parallel()

		body, ok := scraper.NewExtractor(nil).ParseDetail(`<div class="wprm-recipe wprm-recipe-simple"><h2>Untitled</h2></div>`)

		assert.True(t, ok)
		assert.Empty(t, body)
	})
}
