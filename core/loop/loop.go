package loop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/reagent-ai/reagent/core/parse"
	"github.com/reagent-ai/reagent/core/prompt"
	"github.com/reagent-ai/reagent/core/transcript"
	"github.com/reagent-ai/reagent/internal/utils"
	"github.com/reagent-ai/reagent/providers/ai"
	"github.com/reagent-ai/reagent/providers/tool"
)

const (
	// DefaultMaxIterations bounds how many oracle calls a single run may
	// make before it is declared exhausted.
	DefaultMaxIterations = 5

	// DefaultObservationLimit caps how many characters of a single
	// observation enter the transcript.
	DefaultObservationLimit = 20000

	// stopObservation is sent as a stop sequence so the backend cuts
	// generation before the model fabricates its own observation.
	stopObservation = "\nObservation:"
)

// ErrEmptyQuery is returned when Run is called with a blank query.
var ErrEmptyQuery = errors.New("loop: empty query")

// ErrIterationsExhausted marks a run that spent its whole iteration budget
// without producing a final answer.
var ErrIterationsExhausted = errors.New("loop: iteration budget exhausted")

// ExhaustedError carries the state of an exhausted run so callers can show
// the user how far the reasoning got.
type ExhaustedError struct {
	Iterations  int
	LastThought string
	Transcript  *transcript.Transcript
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("loop: no final answer after %d iterations", e.Iterations)
}

func (e *ExhaustedError) Unwrap() error { return ErrIterationsExhausted }

// Result is a completed run.
type Result struct {
	Answer     string
	Transcript *transcript.Transcript
	Iterations int
}

// Controller owns the reasoning cycle for one oracle and one tool registry.
// It is safe for concurrent use; each Run builds its own transcript.
type Controller struct {
	oracle           ai.Provider
	registry         *tool.Registry
	logger           *slog.Logger
	model            string
	maxIterations    int
	observationLimit int
}

// Option configures a Controller.
type Option func(*Controller)

// WithModel sets the model identifier sent with every oracle request.
func WithModel(model string) Option {
	return func(c *Controller) {
		c.model = model
	}
}

// WithMaxIterations overrides the iteration budget.
func WithMaxIterations(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.maxIterations = n
		}
	}
}

// WithObservationLimit caps the observation length admitted per iteration.
func WithObservationLimit(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.observationLimit = n
		}
	}
}

// WithLogger sets the structured logger for run events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New returns a Controller over the given oracle and tool registry.
func New(oracle ai.Provider, registry *tool.Registry, opts ...Option) *Controller {
	c := &Controller{
		oracle:           oracle,
		registry:         registry,
		logger:           slog.Default(),
		maxIterations:    DefaultMaxIterations,
		observationLimit: DefaultObservationLimit,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run answers a single query. It returns the final answer with the full
// transcript, an *ExhaustedError when the budget runs out, or the oracle's
// transport error when a call fails. Cancellation is honored between oracle
// calls and around tool dispatch; a cancelled run returns ctx.Err().
func (c *Controller) Run(ctx context.Context, query string) (*Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	tr := transcript.New(prompt.System(c.registry.Specs()), query)
	lastThought := ""

	for iteration := 1; iteration <= c.maxIterations; iteration++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		response, err := c.oracle.Complete(ctx, ai.ChatRequest{
			Model:       c.model,
			Messages:    tr.Messages(),
			Temperature: 0,
			Stop:        []string{stopObservation},
		})
		if err != nil {
			return nil, fmt.Errorf("oracle call on iteration %d: %w", iteration, err)
		}

		step, parseErr := parse.ParseStep(response.Content)
		if parseErr != nil {
			c.logger.Warn("completion did not parse",
				slog.Int("iteration", iteration),
				slog.String("error", parseErr.Error()))
			tr.AppendThoughtAction(response.Content)
			tr.AppendObservation(correctiveFormat)
			continue
		}
		if step.Thought != "" {
			lastThought = step.Thought
		}

		switch step.Kind {
		case parse.KindFinalAnswer:
			tr.AppendFinalAnswer(response.Content)
			c.logger.Info("run finished",
				slog.Int("iterations", iteration),
				slog.Int("answer_length", len(step.Answer)))
			return &Result{Answer: step.Answer, Transcript: tr, Iterations: iteration}, nil

		case parse.KindDirect:
			// The no-tool sentinel terminates the run: the direct-response
			// segment, or failing that the thought, is the answer.
			answer := step.Input
			if answer == "" {
				answer = step.Thought
			}
			if answer == "" {
				tr.AppendThoughtAction(response.Content)
				tr.AppendObservation(correctiveDirect)
				continue
			}
			tr.AppendFinalAnswer(response.Content)
			c.logger.Info("run finished without tools",
				slog.Int("iterations", iteration))
			return &Result{Answer: answer, Transcript: tr, Iterations: iteration}, nil

		case parse.KindAction:
			tr.AppendThoughtAction(response.Content)
			observation, err := c.dispatch(ctx, iteration, step)
			if err != nil {
				return nil, err
			}
			tr.AppendObservation(observation)
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
	}

	return nil, &ExhaustedError{
		Iterations:  c.maxIterations,
		LastThought: lastThought,
		Transcript:  tr,
	}
}

const correctiveFormat = "Your last response could not be parsed. Reply in the exact format: " +
	"a \"Thought:\" line, then either \"Action:\" and \"Action Input:\" lines to use a tool, " +
	"or a \"Final Answer:\" line with your answer."

const correctiveDirect = "You indicated that no tool is needed. " +
	"Write your answer now as a single \"Final Answer:\" line."

// dispatch resolves and calls the named tool, returning the observation
// text to feed back to the oracle. Unknown tool names produce a corrective
// observation listing the valid names. A tool reporting its upstream as
// unreachable is infrastructure failure, not a reasoning fault, and ends
// the run with an error instead of an observation.
func (c *Controller) dispatch(ctx context.Context, iteration int, step parse.Step) (string, error) {
	named, ok := c.registry.Get(step.Tool)
	if !ok {
		c.logger.Warn("unknown tool requested",
			slog.Int("iteration", iteration),
			slog.String("tool", step.Tool))
		return fmt.Sprintf("Unknown tool %q. Valid tools are: [%s]. "+
			"Pick one of them, or answer directly with \"Final Answer:\".",
			step.Tool, strings.Join(c.registry.Names(), ", ")), nil
	}

	observation := named.Call(ctx, step.Input)
	// Cancellation during the call surfaces as ctx.Err(), never as the
	// failure kind the tool classified the aborted transport under.
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if observation.IsError() {
		c.logger.Warn("tool call failed",
			slog.Int("iteration", iteration),
			slog.String("tool", named.Name()),
			slog.String("kind", string(observation.Err.Kind)),
			slog.String("message", observation.Err.Message))
		if observation.Err.Kind == tool.ErrUpstreamUnavailable {
			return "", fmt.Errorf("tool %s on iteration %d: %w", named.Name(), iteration, observation.Err)
		}
	} else {
		c.logger.Debug("tool call succeeded",
			slog.Int("iteration", iteration),
			slog.String("tool", named.Name()),
			slog.Int("observation_length", len(observation.Content)))
	}

	return utils.TruncateString(observation.Text(), c.observationLimit), nil
}
