package ai

// MessageRole identifies the author of a chat message; compatible with the
// role strings used by OpenAI-style chat-completion APIs.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is a single entry in the conversational context sent to the oracle.
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// ChatRequest carries one oracle invocation: the full serialized transcript
// plus generation configuration. The oracle is stateless from the caller's
// perspective; all conversational state travels in Messages.
type ChatRequest struct {
	Model       string    `json:"model,omitempty"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`

	// Stop lists sequences at which the backend must cut generation short.
	// The loop controller uses this to stop the model before it fabricates
	// its own "Observation:" line.
	Stop []string `json:"stop,omitempty"`
}

// Usage reports token accounting for a completed request, when the backend
// provides it.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens,omitempty"`
	CompletionTokens int `json:"completion_tokens,omitempty"`
	TotalTokens      int `json:"total_tokens,omitempty"`
}

// ChatResponse is the oracle's generated segment for one request.
type ChatResponse struct {
	Content      string `json:"content"`
	Model        string `json:"model,omitempty"`
	FinishReason string `json:"finish_reason,omitempty"`
	Usage        *Usage `json:"usage,omitempty"`
}
