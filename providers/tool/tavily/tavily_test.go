package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/reagent-ai/reagent/providers/tool"
)

func TestCall_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}

		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.Query != "go generics release date" {
			t.Errorf("query = %q", req.Query)
		}
		if req.SearchDepth != "basic" {
			t.Errorf("search_depth = %q, want basic", req.SearchDepth)
		}
		if req.MaxResults != 2 {
			t.Errorf("max_results = %d, want 2", req.MaxResults)
		}

		json.NewEncoder(w).Encode(searchResponse{
			Query: req.Query,
			Results: []searchResult{
				{Title: "Go 1.18 Release Notes", URL: "https://go.dev/doc/go1.18", Content: "Go 1.18 adds generics."},
				{Title: "Go Blog", URL: "https://go.dev/blog/intro-generics", Content: "An introduction to generics."},
			},
		})
	}))
	defer server.Close()

	search := New("test-key", WithBaseURL(server.URL), WithMaxResults(2))
	obs := search.Call(context.Background(), "go generics release date")

	if obs.IsError() {
		t.Fatalf("Call failed: %v", obs.Err)
	}
	if !strings.Contains(obs.Content, "1. Go 1.18 Release Notes") {
		t.Errorf("missing numbered first result in %q", obs.Content)
	}
	if !strings.Contains(obs.Content, "https://go.dev/doc/go1.18") {
		t.Errorf("missing URL in %q", obs.Content)
	}
	if strings.Contains(obs.Content, "test-key") {
		t.Error("API key leaked into observation content")
	}
}

func TestCall_EmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(searchResponse{Results: nil})
	}))
	defer server.Close()

	search := New("test-key", WithBaseURL(server.URL))
	obs := search.Call(context.Background(), "arcane query with no matches")

	if obs.IsError() {
		t.Fatalf("empty results must not be a failure: %v", obs.Err)
	}
	if !strings.Contains(obs.Content, "No results found") {
		t.Errorf("unexpected content %q", obs.Content)
	}
}

func TestCall_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer server.Close()

	search := New("test-key", WithBaseURL(server.URL))
	obs := search.Call(context.Background(), "anything")

	if !obs.IsError() {
		t.Fatal("expected failure for HTTP 500")
	}
	if obs.Err.Kind != tool.ErrUpstreamUnavailable {
		t.Errorf("kind = %q, want %q", obs.Err.Kind, tool.ErrUpstreamUnavailable)
	}
}

func TestCall_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(searchResponse{})
	}))
	defer server.Close()

	search := New("test-key", WithBaseURL(server.URL), WithTimeout(20*time.Millisecond))
	obs := search.Call(context.Background(), "slow query")

	if !obs.IsError() {
		t.Fatal("expected timeout failure")
	}
	if obs.Err.Kind != tool.ErrTimeout {
		t.Errorf("kind = %q, want %q", obs.Err.Kind, tool.ErrTimeout)
	}
}

func TestCall_CancelledMidSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(searchResponse{})
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	search := New("test-key", WithBaseURL(server.URL))
	obs := search.Call(ctx, "slow query")

	if !obs.IsError() {
		t.Fatal("expected failure for cancelled call")
	}
	if obs.Err.Kind != tool.ErrCancelled {
		t.Errorf("kind = %q, want %q", obs.Err.Kind, tool.ErrCancelled)
	}
}

func TestCall_TimeoutMessageReflectsCallerDeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(searchResponse{})
	}))
	defer server.Close()

	// The caller's deadline is far shorter than the tool's configured one;
	// the message must not blame the configured duration.
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	search := New("test-key", WithBaseURL(server.URL), WithTimeout(10*time.Second))
	obs := search.Call(ctx, "slow query")

	if !obs.IsError() {
		t.Fatal("expected timeout failure")
	}
	if obs.Err.Kind != tool.ErrTimeout {
		t.Errorf("kind = %q, want %q", obs.Err.Kind, tool.ErrTimeout)
	}
	if strings.Contains(obs.Err.Message, "10s") {
		t.Errorf("message blames the configured timeout: %q", obs.Err.Message)
	}
}

func TestCall_TruncatesSnippets(t *testing.T) {
	long := strings.Repeat("lorem ipsum ", 100)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(searchResponse{
			Results: []searchResult{{Title: "Long", URL: "https://example.com", Content: long}},
		})
	}))
	defer server.Close()

	search := New("test-key", WithBaseURL(server.URL))
	obs := search.Call(context.Background(), "long content")

	if obs.IsError() {
		t.Fatalf("Call failed: %v", obs.Err)
	}
	if !strings.Contains(obs.Content, "...") {
		t.Error("long snippet was not truncated")
	}
	if len(obs.Content) > 400 {
		t.Errorf("observation too long: %d bytes", len(obs.Content))
	}
}

func TestSnippet(t *testing.T) {
	if got := snippet("  spaced   out\n\ttext  "); got != "spaced out text" {
		t.Errorf("snippet() = %q", got)
	}
	if got := snippet(""); got != "" {
		t.Errorf("snippet(empty) = %q", got)
	}
}
