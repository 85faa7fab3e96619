package groq

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/reagent-ai/reagent/internal/utils"
	"github.com/reagent-ai/reagent/providers/ai"
)

const (
	defaultBaseURL          = "https://api.groq.com/openai/v1"
	chatCompletionsEndpoint = "/chat/completions"

	// DefaultModel is used when a request does not name a model.
	DefaultModel = "llama-3.3-70b-versatile"
)

// Provider implements [ai.Provider] for the Groq API.
type Provider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// New creates a Groq provider with default base URL and HTTP client. The API
// key is passed explicitly rather than read from the environment so that
// configuration stays a caller concern and parallel queries with different
// credentials stay isolated.
func New(apiKey string) *Provider {
	return &Provider{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{},
	}
}

// WithBaseURL overrides the default base URL for API requests.
func (p *Provider) WithBaseURL(baseURL string) *Provider {
	p.baseURL = baseURL
	return p
}

// WithHTTPClient sets the HTTP client used for outbound requests.
func (p *Provider) WithHTTPClient(client *http.Client) *Provider {
	p.client = client
	return p
}

var _ ai.Provider = (*Provider)(nil)

// Complete implements [ai.Provider]. Transport and server-side failures are
// reported through the ai sentinel errors so the loop controller can treat
// them as fatal for the current query without inspecting strings.
func (p *Provider) Complete(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("%w: API key is not set", ai.ErrUpstreamUnavailable)
	}

	model := request.Model
	if model == "" {
		model = DefaultModel
	}

	resp, err := utils.DoPostSync[chatCompletionsResponse](ctx, p.client, p.baseURL+chatCompletionsEndpoint, p.apiKey, chatCompletionsRequest{
		Model:       model,
		Messages:    request.Messages,
		Temperature: request.Temperature,
		MaxTokens:   request.MaxTokens,
		Stop:        request.Stop,
	})
	if err != nil {
		return nil, classifyTransportError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", ai.ErrUpstreamUnavailable)
	}

	choice := resp.Choices[0]
	out := &ai.ChatResponse{
		Content:      choice.Message.Content,
		Model:        resp.Model,
		FinishReason: choice.FinishReason,
	}
	if resp.Usage != nil {
		out.Usage = &ai.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
	}
	return out, nil
}

// classifyTransportError maps HTTP and network failures onto the ai sentinel
// errors. Context errors pass through untouched so cancellation stays
// distinguishable from backend failure.
func classifyTransportError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var httpErr *utils.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %s", ai.ErrRateLimited, httpErr.Error())
	}

	return fmt.Errorf("%w: %s", ai.ErrUpstreamUnavailable, err.Error())
}

// --- Groq wire types (OpenAI chat-completions compatible) ---

type chatCompletionsRequest struct {
	Model       string       `json:"model"`
	Messages    []ai.Message `json:"messages"`
	Temperature float32      `json:"temperature"`
	MaxTokens   int          `json:"max_tokens,omitempty"`
	Stop        []string     `json:"stop,omitempty"`
}

type chatCompletionsResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int        `json:"index"`
		Message      ai.Message `json:"message"`
		FinishReason string     `json:"finish_reason"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
}
