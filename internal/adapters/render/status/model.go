package status

import (
	"errors"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/guide-cli/internal/application"
)

var ErrNoFrame = errors.New("status dashboard produced no frame")

// frameMsg asks the dashboard to draw itself as of at.
type frameMsg struct {
	at time.Time
}

// dashboard is a one-shot bubbletea program: it draws a single frame and
// quits, so the CLI gets lipgloss layout without an alternate screen.
type dashboard struct {
	status application.Status
	opts   RenderOptions
	styles styles
	frame  string
	drawn  bool
}

func newDashboard(status application.Status, opts RenderOptions) dashboard {
	return dashboard{status: status, opts: opts, styles: newStyles()}
}

func (d dashboard) Init() tea.Cmd {
	at := d.opts.Now
	if at.IsZero() {
		at = d.status.Triggers.Now
	}
	return func() tea.Msg { return frameMsg{at: at} }
}

func (d dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	frame, ok := msg.(frameMsg)
	if !ok {
		return d, nil
	}

	opts := d.opts
	opts.Now = frame.at
	d.frame = renderView(d.status, opts, d.styles)
	d.drawn = true
	return d, tea.Quit
}

func (d dashboard) View() string {
	return d.frame
}

// Render draws the session dashboard once without taking over the terminal.
func Render(status application.Status, opts RenderOptions) (string, error) {
	final, err := tea.NewProgram(
		newDashboard(status, opts),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	).Run()
	if err != nil {
		return "", err
	}

	if d, ok := final.(dashboard); ok && d.drawn {
		return d.frame, nil
	}
	return "", ErrNoFrame
}
