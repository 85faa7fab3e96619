package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvGroqAPIKey     = "GROQ_API_KEY"
	EnvTavilyAPIKey   = "TAVILY_API_KEY"
	EnvModel          = "REAGENT_MODEL"
	EnvMaxIterations  = "REAGENT_MAX_ITERATIONS"
	EnvSearchResults  = "REAGENT_SEARCH_RESULTS"
	EnvRequestTimeout = "REAGENT_REQUEST_TIMEOUT"
)

// Defaults applied when the corresponding variable is unset.
const (
	DefaultModel          = "llama-3.3-70b-versatile"
	DefaultMaxIterations  = 5
	DefaultSearchResults  = 3
	DefaultRequestTimeout = 30 * time.Second
)

// Config is the resolved runtime configuration.
type Config struct {
	GroqAPIKey string

	// TavilyAPIKey may be empty; the search tool is simply not registered
	// then and the agent runs with the calculator only.
	TavilyAPIKey string

	Model          string
	MaxIterations  int
	SearchResults  int
	RequestTimeout time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win
// over .env entries.
func Load() (*Config, error) {
	// Missing .env is the normal case outside local development.
	_ = godotenv.Load()

	cfg := &Config{
		GroqAPIKey:     os.Getenv(EnvGroqAPIKey),
		TavilyAPIKey:   os.Getenv(EnvTavilyAPIKey),
		Model:          DefaultModel,
		MaxIterations:  DefaultMaxIterations,
		SearchResults:  DefaultSearchResults,
		RequestTimeout: DefaultRequestTimeout,
	}

	if cfg.GroqAPIKey == "" {
		return nil, fmt.Errorf("config: %s is not set", EnvGroqAPIKey)
	}

	if v := os.Getenv(EnvModel); v != "" {
		cfg.Model = v
	}

	if v := os.Getenv(EnvMaxIterations); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("config: %s must be a positive integer, got %q", EnvMaxIterations, v)
		}
		cfg.MaxIterations = n
	}

	if v := os.Getenv(EnvSearchResults); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("config: %s must be a positive integer, got %q", EnvSearchResults, v)
		}
		cfg.SearchResults = n
	}

	if v := os.Getenv(EnvRequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("config: %s must be a positive duration like 30s, got %q", EnvRequestTimeout, v)
		}
		cfg.RequestTimeout = d
	}

	return cfg, nil
}
