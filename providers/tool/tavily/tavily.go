package tavily

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/reagent-ai/reagent/internal/utils"
	"github.com/reagent-ai/reagent/providers/tool"
)

const (
	toolName = "tavily_search"

	toolDescription = "Searches the web for current information and returns a numbered list of results " +
		"with title, URL and a short snippet. The input must be a plain search query. " +
		"Use it for facts that may have changed after the model's training data was collected."

	defaultBaseURL = "https://api.tavily.com"

	// DefaultMaxResults bounds the result list so observations stay small
	// enough to fit comfortably in the transcript.
	DefaultMaxResults = 3

	// DefaultTimeout bounds a single search call.
	DefaultTimeout = 15 * time.Second

	snippetLimit = 200
)

// SearchTool queries the Tavily Search API. Construct with New.
type SearchTool struct {
	apiKey     string
	baseURL    string
	client     *http.Client
	maxResults int
	timeout    time.Duration
}

// Option configures a SearchTool.
type Option func(*SearchTool)

// WithBaseURL overrides the Tavily API endpoint, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(t *SearchTool) {
		t.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient overrides the HTTP client used for API calls.
func WithHTTPClient(client *http.Client) Option {
	return func(t *SearchTool) {
		t.client = client
	}
}

// WithMaxResults caps how many results a search returns.
func WithMaxResults(n int) Option {
	return func(t *SearchTool) {
		if n > 0 {
			t.maxResults = n
		}
	}
}

// WithTimeout sets the per-call deadline.
func WithTimeout(d time.Duration) Option {
	return func(t *SearchTool) {
		if d > 0 {
			t.timeout = d
		}
	}
}

// New returns a search tool authenticated with the given API key.
func New(apiKey string, opts ...Option) *SearchTool {
	t := &SearchTool{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		client:     http.DefaultClient,
		maxResults: DefaultMaxResults,
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *SearchTool) Name() string { return toolName }

func (t *SearchTool) Description() string { return toolDescription }

type searchRequest struct {
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth"`
	MaxResults  int    `json:"max_results"`
}

type searchResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

type searchResponse struct {
	Query   string         `json:"query"`
	Results []searchResult `json:"results"`
}

// Call runs the search and renders the results for the transcript. An
// empty result set is a successful observation, not a failure. The API
// key travels in the Authorization header only and never appears in the
// rendered output.
func (t *SearchTool) Call(ctx context.Context, input string) tool.Observation {
	query := strings.TrimSpace(input)
	if query == "" {
		return tool.Failure(tool.ErrInvalidInput, "empty search query")
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	body := searchRequest{
		Query:       query,
		SearchDepth: "basic",
		MaxResults:  t.maxResults,
	}

	start := time.Now()
	response, err := utils.DoPostSync[searchResponse](ctx, t.client, t.baseURL+"/search", t.apiKey, body)
	if err != nil {
		// A cancelled caller is not an upstream fault. The deadline may be
		// the tool's own or a shorter one inherited from the caller, so the
		// timeout message reports the time actually spent.
		switch {
		case errors.Is(err, context.Canceled):
			return tool.Failure(tool.ErrCancelled, "search for %q cancelled", query)
		case errors.Is(err, context.DeadlineExceeded):
			return tool.Failure(tool.ErrTimeout, "search for %q timed out after %s",
				query, time.Since(start).Round(time.Millisecond))
		}
		var httpErr *utils.HTTPError
		if errors.As(err, &httpErr) {
			return tool.Failure(tool.ErrUpstreamUnavailable, "search upstream returned status %d", httpErr.StatusCode)
		}
		return tool.Failure(tool.ErrUpstreamUnavailable, "search upstream unreachable: %v", err)
	}

	if len(response.Results) == 0 {
		return tool.Success(fmt.Sprintf("No results found for %q. Try a broader or differently worded query.", query))
	}

	return tool.Success(renderResults(response.Results, t.maxResults))
}

func renderResults(results []searchResult, limit int) string {
	if len(results) > limit {
		results = results[:limit]
	}

	var b strings.Builder
	for i, r := range results {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "%d. %s\n   %s\n   %s", i+1, r.Title, r.URL, snippet(r.Content))
	}
	return b.String()
}

// snippet collapses whitespace and truncates on a rune boundary.
func snippet(content string) string {
	collapsed := strings.Join(strings.Fields(content), " ")
	runes := []rune(collapsed)
	if len(runes) <= snippetLimit {
		return collapsed
	}
	return string(runes[:snippetLimit]) + "..."
}
