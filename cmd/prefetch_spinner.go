package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type taskDoneMsg[T any] struct {
	value T
	err   error
}

// taskSpinner keeps a spinner and the elapsed time on screen while one
// background task runs, then clears its line.
type taskSpinner[T any] struct {
	spinner spinner.Model
	label   string
	started time.Time
	task    tea.Cmd
	result  taskDoneMsg[T]
	done    bool
}

func newTaskSpinner[T any](label string, task tea.Cmd) taskSpinner[T] {
	return taskSpinner[T]{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("183"))),
		),
		label:   label,
		started: time.Now(),
		task:    task,
	}
}

func (m taskSpinner[T]) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.task)
}

func (m taskSpinner[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case taskDoneMsg[T]:
		m.result = msg
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m taskSpinner[T]) View() string {
	if m.done {
		return ""
	}
	line := m.spinner.View() + " " + m.label
	if elapsed := time.Since(m.started); elapsed >= time.Second {
		line += fmt.Sprintf(" %ds", int(elapsed.Seconds()))
	}
	return line
}

// runWithSpinner runs task while a spinner with label is drawn on output.
func runWithSpinner[T any](ctx context.Context, output io.Writer, label string, task func(context.Context) (T, error)) (T, error) {
	final, err := tea.NewProgram(
		newTaskSpinner[T](label, func() tea.Msg {
			value, err := task(ctx)
			return taskDoneMsg[T]{value: value, err: err}
		}),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	).Run()

	var zero T
	if err != nil {
		return zero, err
	}
	m, ok := final.(taskSpinner[T])
	if !ok || !m.done {
		return zero, fmt.Errorf("spinner for %q stopped before the task finished", label)
	}
	return m.result.value, m.result.err
}

func runPrefetchSpinner(ctx context.Context, output io.Writer, label string, fetch func(context.Context) ([]string, error)) ([]string, error) {
	return runWithSpinner(ctx, output, label, fetch)
}
