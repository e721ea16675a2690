package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/paleo")
	t.Setenv("JWT_SECRET_KEY", "secret")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.EnvVars.Port != "8080" {
		t.Errorf("Port = %q, want '8080'", cfg.EnvVars.Port)
	}
	if cfg.EnvVars.ListingURL != "https://ultimatepaleoguide.com/recipes/" {
		t.Errorf("ListingURL = %q", cfg.EnvVars.ListingURL)
	}
	if cfg.EnvVars.FetchTimeout != 10*time.Second {
		t.Errorf("FetchTimeout = %v, want 10s", cfg.EnvVars.FetchTimeout)
	}
	if cfg.EnvVars.FindMaxAttempts != 5 {
		t.Errorf("FindMaxAttempts = %d, want 5", cfg.EnvVars.FindMaxAttempts)
	}
	if err := cfg.CheckConfigEnvFields(); err != nil {
		t.Errorf("CheckConfigEnvFields error: %v", err)
	}
}

func TestCheckConfigEnvFields_MissingRequired(t *testing.T) {
	cfg := &Config{EnvVars: EnvVars{Port: "8080", DatabaseUrl: "postgres://localhost/paleo"}}

	err := cfg.CheckConfigEnvFields()
	if err == nil {
		t.Fatal("CheckConfigEnvFields should fail when JWT_SECRET_KEY is empty")
	}
	if err.Error() != "$JWT_SECRET_KEY must be set" {
		t.Errorf("error = %q", err.Error())
	}
}

func TestLoadMarkers_EmptyPathReturnsDefaults(t *testing.T) {
	markers, err := LoadMarkers("")
	if err != nil {
		t.Fatalf("LoadMarkers error: %v", err)
	}
	if markers.Listing.Container != "#wpupg-grid-all-recipes" {
		t.Errorf("Container = %q", markers.Listing.Container)
	}
	if markers.Detail.Recipe != ".wprm-recipe.wprm-recipe-simple" {
		t.Errorf("Recipe = %q", markers.Detail.Recipe)
	}
}

func TestLoadMarkers_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "markers.yaml")
	content := "listing:\n  container: \"#all-recipes\"\ndetail:\n  summary: \".recipe-intro\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	markers, err := LoadMarkers(path)
	if err != nil {
		t.Fatalf("LoadMarkers error: %v", err)
	}
	if markers.Listing.Container != "#all-recipes" {
		t.Errorf("Container = %q, want '#all-recipes'", markers.Listing.Container)
	}
	if markers.Detail.Summary != ".recipe-intro" {
		t.Errorf("Summary = %q, want '.recipe-intro'", markers.Detail.Summary)
	}
	// Untouched keys keep their defaults
	if markers.Listing.Title != ".wpupg-item-title" {
		t.Errorf("Title = %q, want default", markers.Listing.Title)
	}
}

func TestLoadMarkers_MissingFile(t *testing.T) {
	_, err := LoadMarkers(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("LoadMarkers should fail for a missing file")
	}
}

func TestLoadMarkers_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "markers.yaml")
	if err := os.WriteFile(path, []byte("listing: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMarkers(path); err == nil {
		t.Error("LoadMarkers should fail for invalid YAML")
	}
}
