package testutil

import (
	"fmt"
	"html"
	"strings"

	"github.com/windoze95/paleofinder-api/internal/models"
	"gorm.io/gorm"
)

// ListingURL is the listing page address used across tests.
const ListingURL = "https://ultimatepaleoguide.com/recipes/"

// Card describes one recipe card on a listing page. Empty fields are left
// out of the generated markup, which makes the card malformed.
type Card struct {
	Title string
	Link  string
	Image string
}

// TestCard returns a well-formed card whose link lives under ListingURL.
func TestCard(slug, title string) Card {
	return Card{
		Title: title,
		Link:  "https://ultimatepaleoguide.com/" + slug + "/",
		Image: "https://ultimatepaleoguide.com/wp-content/uploads/" + slug + ".jpg",
	}
}

// ListingHTML renders a listing page shaped like the upstream site, with
// the given cards inside the grid container and one unrelated anchor in the
// page header.
func ListingHTML(cards ...Card) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><head><title>Recipes</title></head><body>`)
	b.WriteString(`<header><a href="/">Ultimate Paleo Guide</a></header>`)
	b.WriteString(`<div id="wpupg-grid-all-recipes" class="wpupg-grid">`)
	for _, c := range cards {
		b.WriteString(cardHTML(c))
	}
	b.WriteString(`</div></body></html>`)
	return b.String()
}

func cardHTML(c Card) string {
	var b strings.Builder
	if c.Link != "" {
		fmt.Fprintf(&b, `<a href="%s" class="wpupg-item">`, html.EscapeString(c.Link))
	} else {
		b.WriteString(`<a class="wpupg-item">`)
	}
	if c.Image != "" {
		fmt.Fprintf(&b, `<div class="wpupg-item-image wpupg-block-image-normal wpupg-align-center"><img src="%s" alt=""></div>`, html.EscapeString(c.Image))
	}
	if c.Title != "" {
		fmt.Fprintf(&b, `<div class="wpupg-item-title wpupg-block-text-bold">
			%s
		</div>`, html.EscapeString(c.Title))
	}
	b.WriteString(`</a>`)
	return b.String()
}

// RecipeHTML renders a single-recipe detail page with the given summary.
func RecipeHTML(summary string) string {
	return fmt.Sprintf(`<!DOCTYPE html><html><body><article>
<div class="wprm-recipe wprm-recipe-simple">
	<h2 class="wprm-recipe-name">Recipe</h2>
	<div class="wprm-recipe-summary">
		%s
	</div>
</div>
</article></body></html>`, html.EscapeString(summary))
}

// ListPageHTML renders a detail page that is really a roundup of recipes
// and carries no single-recipe marker.
func ListPageHTML() string {
	return `<!DOCTYPE html><html><body><article>
<h1>25 Paleo Soups</h1>
<ol><li><a href="/soup-1/">Soup 1</a></li><li><a href="/soup-2/">Soup 2</a></li></ol>
</article></body></html>`
}

// TestUser creates a test user with its auth record populated.
func TestUser() *models.User {
	return &models.User{
		Model:    gorm.Model{ID: 1},
		Username: "cavecook",
		Auth: &models.UserAuth{
			Model:          gorm.Model{ID: 1},
			UserID:         1,
			HashedPassword: "$2a$10$abcdefghijklmnopqrstuuABCDEFGHIJKLMNOPQRSTUVWXYZ012",
			AuthType:       models.Standard,
		},
	}
}
