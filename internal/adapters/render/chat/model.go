package chat

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

	"github.com/bnema/world-saver-cli/internal/application"
	"github.com/bnema/world-saver-cli/internal/domain"
	"github.com/bnema/world-saver-cli/internal/ports"
)

var ErrUnexpectedModel = errors.New("unexpected final bubbletea model type")

// Game is the part of application.Game the interactive view drives.
type Game interface {
	Snapshot() application.Snapshot
	Subscribe(fn func(application.Snapshot))
	Start(ctx context.Context) error
	SetUsername(ctx context.Context, name string) error
	Submit(ctx context.Context, text string) error
	Reset(ctx context.Context, confirmer ports.Confirmer) (bool, error)
}

type snapshotMsg struct {
	snapshot application.Snapshot
}

type turnDoneMsg struct {
	err error
}

type resetDoneMsg struct {
	reset bool
	err   error
}

type model struct {
	ctx        context.Context
	game       Game
	opts       RenderOptions
	styles     styles
	input      textinput.Model
	spinner    spinner.Model
	viewport   viewport.Model
	snapshot   application.Snapshot
	confirming bool
	notice     string
	ready      bool
}

func newModel(ctx context.Context, game Game, opts RenderOptions) model {
	input := textinput.New()
	input.CharLimit = 500
	input.Focus()

	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	m := model{
		ctx:      ctx,
		game:     game,
		opts:     opts,
		styles:   newStyles(),
		input:    input,
		spinner:  s,
		viewport: viewport.New(80, 20),
		snapshot: game.Snapshot(),
	}
	m.input.Placeholder = m.placeholder()
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.start())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.opts.Width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-6, 3)
		m.input.Width = max(msg.Width-4, 10)
		m.ready = true
		m.refresh()
		return m, nil
	case snapshotMsg:
		m.snapshot = msg.snapshot
		m.refresh()
		return m, nil
	case turnDoneMsg:
		m.notice = noticeFor(msg.err)
		m.snapshot = m.game.Snapshot()
		m.refresh()
		return m, nil
	case resetDoneMsg:
		switch {
		case msg.err != nil:
			m.notice = msg.err.Error()
		case msg.reset:
			m.notice = "Session reset. Pick a username to play again."
		}
		m.snapshot = m.game.Snapshot()
		m.refresh()
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirming {
		m.confirming = false
		switch msg.String() {
		case "y", "Y":
			return m, m.reset()
		default:
			m.notice = "Reset cancelled."
			return m, nil
		}
	}

	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyCtrlR:
		m.confirming = true
		m.notice = ""
		return m, nil
	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case tea.KeyEnter:
		return m.submit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}

	switch m.snapshot.State {
	case domain.StateAwaitingResponse, domain.StateGameOver:
		return m, nil
	case domain.StateAwaitingUsername:
		m.input.Reset()
		m.notice = ""
		return m, func() tea.Msg {
			return turnDoneMsg{err: m.game.SetUsername(m.ctx, text)}
		}
	default:
		m.input.Reset()
		m.notice = ""
		return m, func() tea.Msg {
			return turnDoneMsg{err: m.game.Submit(m.ctx, text)}
		}
	}
}

func (m model) start() tea.Cmd {
	return func() tea.Msg {
		return turnDoneMsg{err: m.game.Start(m.ctx)}
	}
}

// reset runs after the operator already answered the prompt in the view.
func (m model) reset() tea.Cmd {
	confirmed := ports.ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil })
	return func() tea.Msg {
		reset, err := m.game.Reset(m.ctx, confirmed)
		return resetDoneMsg{reset: reset, err: err}
	}
}

func (m *model) refresh() {
	m.input.Placeholder = m.placeholder()
	m.viewport.SetContent(renderTranscript(m.snapshot.Session.Transcript, m.opts, m.styles))
	m.viewport.GotoBottom()
}

func (m model) placeholder() string {
	switch m.snapshot.State {
	case domain.StateAwaitingUsername:
		return "Pick a username"
	case domain.StateGameOver:
		return "Game over. Ctrl+R to reset"
	default:
		return "How will you save the world?"
	}
}

func (m model) View() string {
	footer := m.footer()
	if !m.ready {
		return lipgloss.JoinVertical(lipgloss.Left,
			renderView(m.snapshot, m.opts, m.styles),
			footer,
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(m.snapshot, m.opts, m.styles),
		m.viewport.View(),
		footer,
	)
}

func (m model) footer() string {
	var lines []string

	switch {
	case m.confirming:
		lines = append(lines, m.styles.warning.Render(application.ResetPrompt+" [y/N]"))
	case m.snapshot.State == domain.StateAwaitingResponse:
		lines = append(lines, fmt.Sprintf("%s %s", m.spinner.View(), m.styles.hint.Render("The narrator is thinking...")))
	default:
		lines = append(lines, m.input.View())
	}

	if m.notice != "" {
		lines = append(lines, m.styles.hint.Render(m.notice))
	}
	lines = append(lines, m.styles.hint.Render("enter: send  ctrl+r: reset  esc: quit"))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// noticeFor turns a turn error into a status line. Narrator failures are
// already in the transcript.
func noticeFor(err error) string {
	if err == nil || errors.Is(err, domain.ErrNarratorUnavailable) {
		return ""
	}
	return err.Error()
}

// Run drives game interactively until the operator quits.
func Run(ctx context.Context, game Game, opts RenderOptions, programOpts ...tea.ProgramOption) error {
	programOpts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, programOpts...)
	p := tea.NewProgram(newModel(ctx, game, opts), programOpts...)

	game.Subscribe(func(snapshot application.Snapshot) {
		p.Send(snapshotMsg{snapshot: snapshot})
	})

	finalModel, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	if _, ok := finalModel.(model); !ok && finalModel != nil {
		return ErrUnexpectedModel
	}
	return nil
}
