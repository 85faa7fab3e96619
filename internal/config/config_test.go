package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvGroqAPIKey, "gsk_test")
	t.Setenv(EnvTavilyAPIKey, "")
	t.Setenv(EnvModel, "")
	t.Setenv(EnvMaxIterations, "")
	t.Setenv(EnvSearchResults, "")
	t.Setenv(EnvRequestTimeout, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Model != DefaultModel {
		t.Errorf("Model = %q, want %q", cfg.Model, DefaultModel)
	}
	if cfg.MaxIterations != DefaultMaxIterations {
		t.Errorf("MaxIterations = %d, want %d", cfg.MaxIterations, DefaultMaxIterations)
	}
	if cfg.SearchResults != DefaultSearchResults {
		t.Errorf("SearchResults = %d, want %d", cfg.SearchResults, DefaultSearchResults)
	}
	if cfg.RequestTimeout != DefaultRequestTimeout {
		t.Errorf("RequestTimeout = %v, want %v", cfg.RequestTimeout, DefaultRequestTimeout)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv(EnvGroqAPIKey, "gsk_test")
	t.Setenv(EnvTavilyAPIKey, "tvly_test")
	t.Setenv(EnvModel, "llama-3.1-8b-instant")
	t.Setenv(EnvMaxIterations, "8")
	t.Setenv(EnvSearchResults, "5")
	t.Setenv(EnvRequestTimeout, "45s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Model != "llama-3.1-8b-instant" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.MaxIterations != 8 {
		t.Errorf("MaxIterations = %d", cfg.MaxIterations)
	}
	if cfg.SearchResults != 5 {
		t.Errorf("SearchResults = %d", cfg.SearchResults)
	}
	if cfg.RequestTimeout != 45*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.TavilyAPIKey != "tvly_test" {
		t.Errorf("TavilyAPIKey = %q", cfg.TavilyAPIKey)
	}
}

func TestLoad_MissingGroqKey(t *testing.T) {
	t.Setenv(EnvGroqAPIKey, "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing key")
	}
	if !strings.Contains(err.Error(), EnvGroqAPIKey) {
		t.Errorf("error %q must name the missing variable", err)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		value string
	}{
		{"iterations not a number", EnvMaxIterations, "many"},
		{"iterations zero", EnvMaxIterations, "0"},
		{"iterations negative", EnvMaxIterations, "-2"},
		{"results not a number", EnvSearchResults, "few"},
		{"timeout not a duration", EnvRequestTimeout, "soon"},
		{"timeout negative", EnvRequestTimeout, "-5s"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(EnvGroqAPIKey, "gsk_test")
			t.Setenv(EnvMaxIterations, "")
			t.Setenv(EnvSearchResults, "")
			t.Setenv(EnvRequestTimeout, "")
			t.Setenv(tc.env, tc.value)

			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%q", tc.env, tc.value)
			}
			if _, err := Load(); err != nil && !strings.Contains(err.Error(), tc.env) {
				t.Errorf("error must name %s", tc.env)
			}
		})
	}
}
