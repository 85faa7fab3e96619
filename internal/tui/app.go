package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/reagent-ai/reagent/core/loop"
)

// QueryRunner answers one query per call. The loop controller satisfies it.
type QueryRunner interface {
	Run(ctx context.Context, query string) (*loop.Result, error)
}

// exitWords end the session when typed as the whole input.
var exitWords = map[string]struct{}{
	"exit": {},
	"quit": {},
	"bye":  {},
}

var (
	userStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	agentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	historyStyle = lipgloss.NewStyle().PaddingLeft(1)
)

type responseMsg struct {
	result *loop.Result
	err    error
}

// Model is the chat TUI state.
type Model struct {
	runner    QueryRunner
	modelName string

	input    textinput.Model
	view     viewport.Model
	spin     spinner.Model
	history  []string
	thinking bool
	cancel   context.CancelFunc
	ready    bool
	width    int
	height   int
}

// New returns a fresh chat model over the given runner.
func New(runner QueryRunner, modelName string) Model {
	input := textinput.New()
	input.Placeholder = "Ask something (exit to quit)"
	input.Prompt = promptStyle.Render("> ")
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return Model{
		runner:    runner,
		modelName: modelName,
		input:     input,
		spin:      spin,
		history: []string{
			titleStyle.Render("reagent") + faintStyle.Render(" · "+modelName),
			faintStyle.Render("Type a question. \"exit\" quits, Esc cancels a running query."),
			"",
		},
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		viewHeight := msg.Height - 3
		if viewHeight < 1 {
			viewHeight = 1
		}
		if !m.ready {
			m.view = viewport.New(msg.Width, viewHeight)
			m.ready = true
		} else {
			m.view.Width = msg.Width
			m.view.Height = viewHeight
		}
		m.refreshView()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit

		case "esc":
			if m.thinking && m.cancel != nil {
				m.cancel()
			}
			return m, nil

		case "enter":
			if m.thinking {
				return m, nil
			}
			query := strings.TrimSpace(m.input.Value())
			if query == "" {
				return m, nil
			}
			if _, done := exitWords[strings.ToLower(query)]; done {
				return m, tea.Quit
			}

			m.input.Reset()
			m.appendLine(userStyle.Render("you: ") + query)
			m.thinking = true

			ctx, cancel := context.WithCancel(context.Background())
			m.cancel = cancel
			return m, tea.Batch(m.spin.Tick, m.runQuery(ctx, query))
		}

	case responseMsg:
		m.thinking = false
		m.cancel = nil
		m.appendResponse(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.thinking {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.ready {
		return "starting..."
	}

	status := ""
	if m.thinking {
		status = m.spin.View() + faintStyle.Render(" thinking, Esc cancels")
	}

	return fmt.Sprintf("%s\n%s\n%s", m.view.View(), status, m.input.View())
}

func (m *Model) runQuery(ctx context.Context, query string) tea.Cmd {
	runner := m.runner
	return func() tea.Msg {
		result, err := runner.Run(ctx, query)
		return responseMsg{result: result, err: err}
	}
}

func (m *Model) appendResponse(msg responseMsg) {
	switch {
	case msg.err == nil:
		m.appendLine(agentStyle.Render("agent: ") + msg.result.Answer)
		m.appendLine(faintStyle.Render(fmt.Sprintf("(%d iterations)", msg.result.Iterations)))

	case errors.Is(msg.err, context.Canceled):
		m.appendLine(faintStyle.Render("(cancelled)"))

	default:
		var exhausted *loop.ExhaustedError
		if errors.As(msg.err, &exhausted) {
			line := fmt.Sprintf("no answer after %d iterations", exhausted.Iterations)
			if exhausted.LastThought != "" {
				line += "; last thought: " + exhausted.LastThought
			}
			m.appendLine(errorStyle.Render("agent: ") + line)
			break
		}
		m.appendLine(errorStyle.Render("error: ") + msg.err.Error())
	}
	m.appendLine("")
}

func (m *Model) appendLine(line string) {
	m.history = append(m.history, line)
	m.refreshView()
}

func (m *Model) refreshView() {
	if !m.ready {
		return
	}
	m.view.SetContent(historyStyle.Render(strings.Join(m.history, "\n")))
	m.view.GotoBottom()
}

// Run starts the interactive chat session and blocks until it ends.
func Run(runner QueryRunner, modelName string) error {
	program := tea.NewProgram(New(runner, modelName), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
