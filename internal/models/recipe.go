package models

// NotARecipeBody is the body given to a detail page that turned out to be a
// list of recipes rather than a single recipe.
const NotARecipeBody = "This is a list of recipes, not a single recipe."

// RecipeSummary is a recipe card scraped from the listing page.
type RecipeSummary struct {
	Title    string
	Link     string // absolute URL of the recipe's own page
	ImageURL string
}

// RecipeDetail is a RecipeSummary plus the description scraped from the
// recipe's own page. Body is either the summary text or NotARecipeBody.
type RecipeDetail struct {
	Summary RecipeSummary
	Body    string
}
