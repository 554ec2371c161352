package status

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/bnema/mini-coderbrain/internal/application"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")
	ErrNoFrame               = errors.New("status program exited before drawing")
)

// frame carries one fully composed status view.
type frame struct {
	body string
}

// statusModel draws a single frame of project status and quits.
type statusModel struct {
	compose tea.Cmd
	body    string
	drawn   bool
}

func newStatusModel(signals application.Signals, opts RenderOptions) statusModel {
	s := newStyles()
	return statusModel{
		compose: func() tea.Msg {
			return frame{body: renderView(signals, opts, s)}
		},
	}
}

func (m statusModel) Init() tea.Cmd {
	return m.compose
}

func (m statusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	f, ok := msg.(frame)
	if !ok {
		return m, nil
	}

	m.body = f.body
	m.drawn = true
	return m, tea.Quit
}

func (m statusModel) View() string {
	return m.body
}

// Render draws the status of one project. The program has no input and
// discards its terminal output; the frame is returned instead.
func Render(ctx context.Context, signals application.Signals, opts RenderOptions) (string, error) {
	p := tea.NewProgram(
		newStatusModel(signals, opts),
		tea.WithContext(ctx),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("run status program: %w", err)
	}

	m, ok := final.(statusModel)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}
	if !m.drawn {
		return "", ErrNoFrame
	}

	return m.View(), nil
}
