package parse

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ErrUnparseable marks a completion that matches neither the final-answer
// nor the action form. The control loop treats it as recoverable and feeds
// a corrective observation back to the oracle.
var ErrUnparseable = errors.New("parse: completion matches no known step form")

// Kind classifies a parsed step.
type Kind int

const (
	// KindFinalAnswer is a completion carrying the answer to return.
	KindFinalAnswer Kind = iota
	// KindAction is a request to dispatch a named tool.
	KindAction
	// KindDirect is the explicit no-tool sentinel: the oracle declared it
	// needs no tool and the loop should ask it to answer directly.
	KindDirect
)

func (k Kind) String() string {
	switch k {
	case KindFinalAnswer:
		return "final_answer"
	case KindAction:
		return "action"
	case KindDirect:
		return "direct"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Step is one classified oracle completion.
type Step struct {
	Kind    Kind
	Thought string

	// Tool is set for KindAction. Input is set for KindAction and, when
	// the oracle provided one, for KindDirect (the direct-response
	// segment).
	Tool  string
	Input string

	// Answer is set for KindFinalAnswer.
	Answer string
}

var (
	finalAnswerPattern = regexp.MustCompile(`(?is)final\s+answer\s*:\s*(.+)$`)
	thoughtPattern     = regexp.MustCompile(`(?im)^\s*thought\s*:\s*(.*)$`)
	actionPattern      = regexp.MustCompile(`(?im)^\s*action\s*:\s*(.+)$`)
	actionInputPattern = regexp.MustCompile(`(?is)action\s+input\s*:\s*(.+)$`)
)

// directSentinels are the Action values that mean "no tool needed".
var directSentinels = map[string]struct{}{
	"none":      {},
	"null":      {},
	"n/a":       {},
	"no action": {},
	"no tool":   {},
}

// ParseStep classifies a raw completion. Text after a hallucinated
// "Observation:" line is discarded before matching, since observations
// are produced by the loop, never by the oracle. A completion containing
// both an action and a final answer resolves to the final answer.
func ParseStep(completion string) (Step, error) {
	text := strings.TrimSpace(completion)
	if idx := strings.Index(text, "\nObservation:"); idx >= 0 {
		text = strings.TrimSpace(text[:idx])
	}
	if text == "" {
		return Step{}, fmt.Errorf("%w: empty completion", ErrUnparseable)
	}

	step := Step{}
	if m := thoughtPattern.FindStringSubmatch(text); m != nil {
		step.Thought = strings.TrimSpace(m[1])
	}

	if m := finalAnswerPattern.FindStringSubmatch(text); m != nil {
		step.Kind = KindFinalAnswer
		step.Answer = strings.TrimSpace(m[1])
		if step.Answer == "" {
			return Step{}, fmt.Errorf("%w: final answer is empty", ErrUnparseable)
		}
		return step, nil
	}

	actionMatch := actionPattern.FindStringSubmatch(text)
	if actionMatch == nil {
		return Step{}, fmt.Errorf("%w: no Action or Final Answer line", ErrUnparseable)
	}

	name := strings.Trim(strings.TrimSpace(actionMatch[1]), "`\"'.")
	input := ""
	if m := actionInputPattern.FindStringSubmatch(text); m != nil {
		input = NormalizeInput(m[1])
	}

	if _, ok := directSentinels[strings.ToLower(name)]; ok {
		step.Kind = KindDirect
		step.Input = input
		return step, nil
	}

	step.Kind = KindAction
	step.Tool = name
	step.Input = input
	return step, nil
}

var codeFencePattern = regexp.MustCompile("(?s)^```[a-zA-Z0-9_-]*\\s*(.*?)\\s*```$")

// inputKeys are JSON envelope keys models commonly wrap a plain string in.
var inputKeys = []string{"query", "expression", "input", "q"}

// NormalizeInput strips code fences and wrapping quotes from an action
// input, and unwraps single-value JSON envelopes like {"query": "..."}.
// Repair of almost-JSON goes through jsonrepair before unmarshaling, the
// same way structured outputs are salvaged elsewhere.
func NormalizeInput(raw string) string {
	s := strings.TrimSpace(raw)
	if m := codeFencePattern.FindStringSubmatch(s); m != nil {
		s = strings.TrimSpace(m[1])
	}

	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			s = strings.TrimSpace(s[1 : len(s)-1])
		}
	}

	if strings.HasPrefix(s, "{") {
		if unwrapped, ok := unwrapEnvelope(s); ok {
			return unwrapped
		}
	}
	return s
}

func unwrapEnvelope(s string) (string, bool) {
	repaired, err := jsonrepair.JSONRepair(s)
	if err != nil {
		return "", false
	}

	var envelope map[string]any
	if err := json.Unmarshal([]byte(repaired), &envelope); err != nil {
		return "", false
	}

	for _, key := range inputKeys {
		if v, ok := envelope[key].(string); ok {
			return strings.TrimSpace(v), true
		}
	}

	// A single string field unwraps regardless of its key.
	if len(envelope) == 1 {
		for _, v := range envelope {
			if str, ok := v.(string); ok {
				return strings.TrimSpace(str), true
			}
		}
	}
	return "", false
}
