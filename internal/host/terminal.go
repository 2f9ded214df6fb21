package host

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yndnr/multiagent-go/internal/telemetry/logger"
)

// Viewer renders the terminal screen after every frame.
type Viewer interface {
	View(width, height int) string
}

// KeyHandler receives key presses other than quit. Bindings are shown
// in the help line.
type KeyHandler interface {
	HandleKey(msg tea.KeyMsg)
	Bindings() []key.Binding
}

var (
	quitKey = key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// Terminal runs frames inside a bubbletea program.
type Terminal struct {
	FPS       int
	MaxFrames int
	AltScreen bool

	Viewer Viewer
	Keys   KeyHandler

	// Input and Output override the terminal, mainly for tests.
	Input  io.Reader
	Output io.Writer

	Logger logger.Logger
}

// Run implements runtime.Host.
func (t *Terminal) Run(ctx context.Context, frame func()) error {
	log := t.Logger
	if log == nil {
		log = logger.Nop()
	}

	m := newTerminalModel(t, frame)

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if t.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if t.Input != nil {
		opts = append(opts, tea.WithInput(t.Input))
	}
	if t.Output != nil {
		opts = append(opts, tea.WithOutput(t.Output))
	}

	log.Debug("terminal host started", "fps", fpsOrDefault(t.FPS))

	_, err := tea.NewProgram(m, opts...).Run()
	if err != nil && ctx.Err() != nil && errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	if err != nil {
		return err
	}

	log.Debug("terminal host stopped", "frames", m.frames)
	return nil
}

type frameMsg time.Time

type terminalModel struct {
	frame     func()
	interval  time.Duration
	maxFrames int
	viewer    Viewer
	handler   KeyHandler
	help      help.Model

	frames        int
	width, height int
}

func newTerminalModel(t *Terminal, frame func()) *terminalModel {
	return &terminalModel{
		frame:     frame,
		interval:  frameInterval(t.FPS),
		maxFrames: t.MaxFrames,
		viewer:    t.Viewer,
		handler:   t.Keys,
		help:      help.New(),
	}
}

func (m *terminalModel) Init() tea.Cmd {
	return m.tick()
}

func (m *terminalModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *terminalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, quitKey) {
			return m, tea.Quit
		}
		if m.handler != nil {
			m.handler.HandleKey(msg)
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width

	case frameMsg:
		m.frame()
		m.frames++
		if m.maxFrames > 0 && m.frames >= m.maxFrames {
			return m, tea.Quit
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *terminalModel) View() string {
	var b strings.Builder
	if m.viewer != nil {
		b.WriteString(m.viewer.View(m.width, m.height))
		b.WriteString("\n")
	}
	b.WriteString(statusStyle.Render(m.help.ShortHelpView(m.bindings())))
	return b.String()
}

func (m *terminalModel) bindings() []key.Binding {
	var out []key.Binding
	if m.handler != nil {
		out = append(out, m.handler.Bindings()...)
	}
	return append(out, quitKey)
}
