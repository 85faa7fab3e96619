package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reagent-ai/reagent/core/loop"
	"github.com/reagent-ai/reagent/internal/config"
	"github.com/reagent-ai/reagent/internal/tui"
	"github.com/reagent-ai/reagent/providers/ai/groq"
	"github.com/reagent-ai/reagent/providers/ai/middleware"
	"github.com/reagent-ai/reagent/providers/tool"
	"github.com/reagent-ai/reagent/providers/tool/calculator"
	"github.com/reagent-ai/reagent/providers/tool/tavily"
)

var (
	flagVerbose       bool
	flagModel         string
	flagMaxIterations int
)

func main() {
	root := &cobra.Command{
		Use:   "reagent [query]",
		Short: "Reasoning agent that routes questions to a calculator, web search, or a direct answer",
		Long: "reagent answers a question by reasoning in steps: it evaluates arithmetic with a " +
			"restricted calculator, searches the web for current information, and answers general " +
			"questions directly. Without arguments it starts an interactive chat session.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runChat()
			}
			return runOnce(strings.Join(args, " "))
		},
	}

	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log oracle traffic and tool calls")
	root.PersistentFlags().StringVar(&flagModel, "model", "", "override the model identifier")
	root.PersistentFlags().IntVar(&flagMaxIterations, "max-iterations", 0, "override the reasoning iteration budget")

	root.AddCommand(&cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat()
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// buildController wires config, oracle, middleware and tools into a ready
// loop controller. Logs go to logOut; the chat TUI passes io.Discard since
// it owns the terminal.
func buildController(logOut io.Writer) (*loop.Controller, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if flagModel != "" {
		cfg.Model = flagModel
	}
	if flagMaxIterations > 0 {
		cfg.MaxIterations = flagMaxIterations
	}

	level := slog.LevelWarn
	logLevel := middleware.LogLevelMinimal
	if flagVerbose {
		level = slog.LevelDebug
		logLevel = middleware.LogLevelVerbose
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))

	oracle := middleware.Chain(groq.New(cfg.GroqAPIKey),
		middleware.Logging(logger, logLevel),
		middleware.Retry(middleware.RetryConfig{}),
		middleware.Timeout(cfg.RequestTimeout),
	)

	tools := []tool.Tool{calculator.New()}
	if cfg.TavilyAPIKey != "" {
		tools = append(tools, tavily.New(cfg.TavilyAPIKey,
			tavily.WithMaxResults(cfg.SearchResults),
			tavily.WithTimeout(cfg.RequestTimeout),
		))
	} else {
		logger.Warn("web search disabled", slog.String("reason", config.EnvTavilyAPIKey+" is not set"))
	}

	controller := loop.New(oracle, tool.NewRegistry(tools...),
		loop.WithModel(cfg.Model),
		loop.WithMaxIterations(cfg.MaxIterations),
		loop.WithLogger(logger),
	)
	return controller, cfg, nil
}

func runOnce(query string) error {
	controller, _, err := buildController(os.Stderr)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := controller.Run(ctx, query)
	if err != nil {
		var exhausted *loop.ExhaustedError
		if errors.As(err, &exhausted) {
			if exhausted.LastThought != "" {
				return fmt.Errorf("no answer after %d iterations (last thought: %s)",
					exhausted.Iterations, exhausted.LastThought)
			}
			return fmt.Errorf("no answer after %d iterations", exhausted.Iterations)
		}
		return err
	}

	fmt.Println(result.Answer)
	return nil
}

func runChat() error {
	controller, cfg, err := buildController(io.Discard)
	if err != nil {
		return err
	}
	return tui.Run(controller, cfg.Model)
}
