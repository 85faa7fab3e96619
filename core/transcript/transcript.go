package transcript

import (
	"fmt"
	"sync"

	"github.com/reagent-ai/reagent/providers/ai"
)

// Kind identifies what a turn records.
type Kind int

const (
	KindSystem Kind = iota
	KindQuery
	KindThoughtAction
	KindObservation
	KindFinalAnswer
)

func (k Kind) String() string {
	switch k {
	case KindSystem:
		return "system"
	case KindQuery:
		return "query"
	case KindThoughtAction:
		return "thought_action"
	case KindObservation:
		return "observation"
	case KindFinalAnswer:
		return "final_answer"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Turn is one entry in the run record.
type Turn struct {
	Kind    Kind
	Content string
}

// Transcript is a concurrency-safe, append-only run record. Turns are never
// mutated or removed once appended.
type Transcript struct {
	mu    sync.RWMutex
	turns []Turn
}

// New returns a transcript seeded with the system prompt and the user query.
func New(systemPrompt, query string) *Transcript {
	return &Transcript{
		turns: []Turn{
			{Kind: KindSystem, Content: systemPrompt},
			{Kind: KindQuery, Content: query},
		},
	}
}

func (t *Transcript) append(kind Kind, content string) {
	t.mu.Lock()
	t.turns = append(t.turns, Turn{Kind: kind, Content: content})
	t.mu.Unlock()
}

// AppendThoughtAction records a raw oracle completion.
func (t *Transcript) AppendThoughtAction(content string) {
	t.append(KindThoughtAction, content)
}

// AppendObservation records tool output or a corrective message produced by
// the loop.
func (t *Transcript) AppendObservation(content string) {
	t.append(KindObservation, content)
}

// AppendFinalAnswer records the answer that ends the run.
func (t *Transcript) AppendFinalAnswer(content string) {
	t.append(KindFinalAnswer, content)
}

// Turns returns a copy of the recorded turns.
func (t *Transcript) Turns() []Turn {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Turn, len(t.turns))
	copy(out, t.turns)
	return out
}

// Len reports the number of recorded turns.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.turns)
}

// Messages renders the transcript as the chat-message list for the next
// oracle request. The final answer, when present, renders as an assistant
// message like any other completion.
func (t *Transcript) Messages() []ai.Message {
	t.mu.RLock()
	defer t.mu.RUnlock()

	messages := make([]ai.Message, 0, len(t.turns))
	for _, turn := range t.turns {
		switch turn.Kind {
		case KindSystem:
			messages = append(messages, ai.Message{Role: ai.RoleSystem, Content: turn.Content})
		case KindQuery:
			messages = append(messages, ai.Message{Role: ai.RoleUser, Content: turn.Content})
		case KindThoughtAction, KindFinalAnswer:
			messages = append(messages, ai.Message{Role: ai.RoleAssistant, Content: turn.Content})
		case KindObservation:
			messages = append(messages, ai.Message{Role: ai.RoleUser, Content: "Observation: " + turn.Content})
		}
	}
	return messages
}
