package service

import "errors"

// User-facing conditions returned by FinderService. They describe an empty
// result rather than a fault.
var (
	ErrEmptySearch   = errors.New("no search terms entered")
	ErrNoMatch       = errors.New("no recipe matched the search terms")
	ErrNoRecipes     = errors.New("recipe listing is empty")
	ErrNoValidRecipe = errors.New("no single recipe found")
)
