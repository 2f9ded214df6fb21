package bouncingballs

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/time/rate"

	"github.com/yndnr/multiagent-go/internal/telemetry/logger"
	"github.com/yndnr/multiagent-go/pkg/shared"
)

// Number of balls added or removed per key press.
const ballStep = 5

var (
	pauseKey  = key.NewBinding(key.WithKeys("p", " "), key.WithHelp("p", "pause"))
	shakeKey  = key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "shake"))
	addKey    = key.NewBinding(key.WithKeys("+", "=", "a"), key.WithHelp("+", "add balls"))
	removeKey = key.NewBinding(key.WithKeys("-", "x"), key.WithHelp("-", "remove balls"))
)

// TerminalPresentation draws the balls in a terminal and turns key
// presses into commands. It implements runtime.Presentation together
// with the host's Viewer and KeyHandler.
type TerminalPresentation struct {
	cfg  Config
	snap Snapshot

	pending []Command
	// resized is set by View when the area changed and cleared once the
	// new config is published.
	resized bool
	// recalc asks the simulation to re-bounce on the frame after a resize.
	recalc bool

	cols, rows int
}

// NewTerminalPresentation starts with the area in cfg.
func NewTerminalPresentation(cfg Config) *TerminalPresentation {
	return &TerminalPresentation{cfg: cfg}
}

// OnEvents implements runtime.Presentation.
func (p *TerminalPresentation) OnEvents(events []Event) {
	for _, ev := range events {
		switch ev.Kind {
		case EventBallsChanged:
			p.cfg.BallCount = ev.Count
		case EventPaused:
			p.snap.Paused = true
		case EventResumed:
			p.snap.Paused = false
		}
	}
}

// Draw implements runtime.Presentation.
func (p *TerminalPresentation) Draw(g shared.Guard[Snapshot], emit func(Command)) (Config, bool) {
	p.snap = g.Value()

	if p.recalc {
		emit(Command{Kind: CommandRecalculateArea})
		p.recalc = false
	}
	for _, c := range p.pending {
		emit(c)
	}
	p.pending = p.pending[:0]

	if p.resized {
		p.resized = false
		p.recalc = true
		return p.cfg, true
	}
	return p.cfg, false
}

// HandleKey implements host.KeyHandler.
func (p *TerminalPresentation) HandleKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, pauseKey):
		if p.snap.Paused {
			p.pending = append(p.pending, Command{Kind: CommandResume})
		} else {
			p.pending = append(p.pending, Command{Kind: CommandPause})
		}
	case key.Matches(msg, shakeKey):
		p.pending = append(p.pending, Command{Kind: CommandShake})
	case key.Matches(msg, addKey):
		p.pending = append(p.pending, Command{Kind: CommandAddBalls, Count: ballStep})
	case key.Matches(msg, removeKey):
		p.pending = append(p.pending, Command{Kind: CommandRemoveBalls, Count: ballStep})
	}
}

// Bindings implements host.KeyHandler.
func (p *TerminalPresentation) Bindings() []key.Binding {
	return []key.Binding{pauseKey, shakeKey, addKey, removeKey}
}

// View implements host.Viewer. A new terminal size is published as the
// area on the next frame.
func (p *TerminalPresentation) View(width, height int) string {
	if width > 0 && height > 0 {
		cols, rows := areaFor(width, height)
		if cols != p.cols || rows != p.rows {
			p.cols, p.rows = cols, rows
			p.cfg = configFor(cols, rows, p.cfg.BallCount)
			p.resized = true
		}
	}
	return Render(p.snap, p.cols, p.rows)
}

// HeadlessPresentation logs a progress line at most once per interval.
type HeadlessPresentation struct {
	cfg     Config
	log     logger.Logger
	limiter *rate.Limiter

	// ShakeEvery sends a shake every that many frames. Zero disables it.
	ShakeEvery int

	frames  int
	bounces int
	last    Snapshot
}

// NewHeadlessPresentation logs through log every interval.
func NewHeadlessPresentation(cfg Config, log logger.Logger, interval time.Duration) *HeadlessPresentation {
	if log == nil {
		log = logger.Nop()
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &HeadlessPresentation{
		cfg:     cfg,
		log:     log,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// OnEvents implements runtime.Presentation.
func (p *HeadlessPresentation) OnEvents(events []Event) {
	for _, ev := range events {
		switch ev.Kind {
		case EventBounced:
			p.bounces += ev.Count
		case EventBallsChanged:
			p.cfg.BallCount = ev.Count
		}
	}
}

// Draw implements runtime.Presentation.
func (p *HeadlessPresentation) Draw(g shared.Guard[Snapshot], emit func(Command)) (Config, bool) {
	p.frames++
	p.last = g.Value()

	if p.ShakeEvery > 0 && p.frames%p.ShakeEvery == 0 {
		emit(Command{Kind: CommandShake})
	}

	if p.limiter.Allow() {
		p.log.Info("bouncing balls",
			"frame", p.frames,
			"tick", p.last.Tick,
			"version", g.Version(),
			"balls", len(p.last.Balls),
			"bounces_seen", p.bounces,
		)
	}
	return p.cfg, false
}

// Frames returns the number of frames drawn.
func (p *HeadlessPresentation) Frames() int { return p.frames }

// Bounces returns the bounces reported through events.
func (p *HeadlessPresentation) Bounces() int { return p.bounces }

// Last returns the most recent snapshot drawn.
func (p *HeadlessPresentation) Last() Snapshot { return p.last }
