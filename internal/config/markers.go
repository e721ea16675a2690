package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Markers holds the CSS selectors that locate recipe data in the upstream
// site's markup.
type Markers struct {
	Listing ListingMarkers `yaml:"listing"`
	Detail  DetailMarkers  `yaml:"detail"`
}

// ListingMarkers locate recipe cards on the listing page.
type ListingMarkers struct {
	Container string `yaml:"container"`
	Card      string `yaml:"card"`
	Title     string `yaml:"title"`
	Image     string `yaml:"image"`
}

// DetailMarkers locate the summary on a single recipe page.
type DetailMarkers struct {
	Recipe  string `yaml:"recipe"`
	Summary string `yaml:"summary"`
}

// DefaultMarkers returns the selectors for ultimatepaleoguide.com.
func DefaultMarkers() *Markers {
	return &Markers{
		Listing: ListingMarkers{
			Container: "#wpupg-grid-all-recipes",
			Card:      "a",
			Title:     ".wpupg-item-title",
			Image:     ".wpupg-item-image img",
		},
		Detail: DetailMarkers{
			Recipe:  ".wprm-recipe.wprm-recipe-simple",
			Summary: ".wprm-recipe-summary",
		},
	}
}

// LoadMarkers reads selector overrides from a YAML file. An empty path
// returns the defaults; keys missing from the file keep their default.
func LoadMarkers(path string) (*Markers, error) {
	markers := DefaultMarkers()
	if path == "" {
		return markers, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read markers file: %w", err)
	}

	var overrides Markers
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse markers file: %w", err)
	}

	mergeString(&markers.Listing.Container, overrides.Listing.Container)
	mergeString(&markers.Listing.Card, overrides.Listing.Card)
	mergeString(&markers.Listing.Title, overrides.Listing.Title)
	mergeString(&markers.Listing.Image, overrides.Listing.Image)
	mergeString(&markers.Detail.Recipe, overrides.Detail.Recipe)
	mergeString(&markers.Detail.Summary, overrides.Detail.Summary)

	return markers, nil
}

func mergeString(dst *string, override string) {
	if override != "" {
		*dst = override
	}
}
