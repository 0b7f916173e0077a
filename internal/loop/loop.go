// Package loop drives one player's game: the level state machine, the
// fixed-rate terminal loop and its HUD.
package loop

import (
	"bufio"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/tomz197/rotander/internal/config"
	"github.com/tomz197/rotander/internal/draw"
	"github.com/tomz197/rotander/internal/input"
	"github.com/tomz197/rotander/internal/level"
	"github.com/tomz197/rotander/internal/object"
	"github.com/tomz197/rotander/internal/physics"
)

// screen is the frontend phase around the level sessions.
type screen int

const (
	screenStart    screen = iota // Title screen
	screenGame                   // A session is running (any session state)
	screenFinished               // Every level is complete
)

// Options configures a terminal game.
type Options struct {
	Levels       *level.Manager
	Settings     config.Settings // Base settings, levels may override them
	TermSizeFunc draw.TermSizeFunc
	Logger       *log.Logger
	Username     string

	// DisconnectInactive ends the game after InactivityDisconnectUser
	// seconds without input.
	DisconnectInactive bool
}

// terminal handles rendering and input for a single connection.
type terminal struct {
	opts        Options
	logger      *log.Logger
	canvas      *draw.Canvas
	chunkWriter *draw.ChunkWriter // Accumulates UI text for chunked output
	styles      styles
	inputStream *input.Stream
	input       input.Input

	screen     screen
	prevScreen screen
	prevState  State
	session    *Session
	totalScore int
	loadErr    error

	scene     []Primitive
	particles []*object.Particle
	minimap   minimapGrid

	running     bool
	holdConfirm bool // Ignore Space/Enter until both are released
	delta       time.Duration
	lastInput   time.Time
	isInactive  bool
	wasInactive bool
}

// Run plays the levels in opts.Levels on the terminal behind r and w until
// the player quits. Blocks for the whole game.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Levels == nil {
		opts.Levels = level.NewManager(level.Builtin(), 1)
	}
	if err := opts.Settings.Validate(); err != nil {
		return err
	}
	if len(opts.Username) > MaxUsernameLength {
		opts.Username = opts.Username[:MaxUsernameLength]
	}

	t := newTerminal(r, w, opts)

	restore := draw.EnterFullscreen(w, "rotander")
	defer restore()

	frameTime := opts.Settings.TickDuration()
	lastTime := time.Now()

	for t.running {
		frameStart := time.Now()
		t.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		t.processInput()
		t.updateScreen()

		switch t.screen {
		case screenStart:
			t.updateStartScreen()
		case screenGame:
			t.updateGame()
		case screenFinished:
			t.updateFinishedScreen()
		}
		t.particles = object.UpdateParticles(t.particles, t.delta.Seconds())

		if err := t.drawFrame(); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < frameTime {
			time.Sleep(frameTime - elapsed)
		}
	}

	return nil
}

func newTerminal(r *bufio.Reader, w io.Writer, opts Options) *terminal {
	termWidth, termHeight, _ := opts.TermSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	d := opts.Settings.Display
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, float64(d.WindowWidth), float64(d.WindowHeight))
	canvas.SetOffset(offsetCol, offsetRow)

	renderer := lipgloss.NewRenderer(w)
	renderer.SetColorProfile(termenv.TrueColor)

	return &terminal{
		opts:        opts,
		logger:      opts.Logger,
		canvas:      canvas,
		chunkWriter: draw.NewChunkWriter(w, offsetCol, offsetRow),
		styles:      newStyles(renderer),
		inputStream: input.StartStream(r),
		screen:      screenStart,
		prevScreen:  -1,
		running:     true,
		lastInput:   time.Now(),
	}
}

// processInput reads input and tracks inactivity.
func (t *terminal) processInput() {
	t.input = input.ReadInput(t.inputStream)

	if len(t.input.Pressed) > 0 {
		t.lastInput = time.Now()
		t.isInactive = false
	} else if t.opts.DisconnectInactive {
		idle := time.Since(t.lastInput).Seconds()
		if idle > InactivityDisconnectUser {
			t.logger.Info("disconnecting inactive player")
			t.running = false
		} else if idle > InactivityWarnUser {
			t.isInactive = true
		}
	}

	if t.input.Quit || t.input.Closed {
		t.running = false
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (t *terminal) updateScreen() {
	termWidth, termHeight, err := t.opts.TermSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != t.canvas.TerminalWidth() || renderHeight != t.canvas.TerminalHeight() ||
		offsetCol != t.canvas.OffsetCol() || offsetRow != t.canvas.OffsetRow() {
		t.chunkWriter.ClearAll()
		t.canvas.ForceRedraw()
	}

	t.canvas.Resize(renderWidth, renderHeight)
	t.canvas.SetOffset(offsetCol, offsetRow)
	t.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, MaxTermWidth)
	renderHeight = min(termHeight, MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// confirmed reports a fresh Space or Enter press. After holdConfirm is set
// a key still held from play (Space is also jump) must be released first.
func (t *terminal) confirmed() bool {
	down := t.input.Space || t.input.Enter
	if t.holdConfirm {
		t.holdConfirm = down
		return false
	}
	return down
}

// updateStartScreen waits for the player to start the first level.
func (t *terminal) updateStartScreen() {
	if t.confirmed() {
		t.totalScore = 0
		t.opts.Levels.Reset()
		t.startLevel()
	}
}

// updateFinishedScreen returns to the title after the last level.
func (t *terminal) updateFinishedScreen() {
	if t.confirmed() {
		input.ResetKeyInput(t.inputStream)
		t.screen = screenStart
	}
}

// startLevel loads the manager's current level into a fresh session.
func (t *terminal) startLevel() {
	input.ResetKeyInput(t.inputStream)

	l, err := t.opts.Levels.Load(t.opts.Settings)
	if err != nil {
		t.logger.Error("load level", "path", t.opts.Levels.Path(), "err", err)
		t.loadErr = err
		t.screen = screenStart
		return
	}
	t.loadErr = nil
	t.logger.Info("level started", "level", t.opts.Levels.Current(), "name", l.Name, "shapes", len(l.Shapes), "enemies", len(l.Enemies))
	t.session = NewSession(l, t.logger)
	t.screen = screenGame
}

// updateGame advances the running session or handles its end screens.
func (t *terminal) updateGame() {
	s := t.session
	switch s.State() {
	case StatePlaying:
		if t.input.Escape {
			s.TogglePause()
			return
		}
		s.Rotate(t.input.Rotate)
		events := s.Tick(physics.Controls{
			Left:  t.input.Left,
			Right: t.input.Right,
			Duck:  t.input.Down,
			Jump:  t.input.Jump(),
		})
		t.handleEvents(events)
		if s.State() != StatePlaying {
			input.ResetKeyInput(t.inputStream)
			t.holdConfirm = true
		}

	case StatePaused:
		if t.input.Escape || t.confirmed() {
			input.ResetKeyInput(t.inputStream)
			s.TogglePause()
		}

	case StateComplete:
		if t.confirmed() {
			t.totalScore += s.Score()
			if t.opts.Levels.HasNext() {
				t.opts.Levels.Advance()
				t.startLevel()
			} else {
				t.logger.Info("all levels complete", "score", t.totalScore)
				input.ResetKeyInput(t.inputStream)
				t.screen = screenFinished
			}
		}

	case StateEliminated:
		if t.confirmed() {
			input.ResetKeyInput(t.inputStream)
			t.screen = screenStart
		}
	}
}

// handleEvents maps session events to the bell and particle effects.
func (t *terminal) handleEvents(events []Event) {
	d := t.session.Settings().Display
	for _, e := range events {
		switch e.Kind {
		case EventDeath:
			draw.Bell(t.chunkWriter)
			t.particles = object.SpawnExplosion(t.particles, 0, 0,
				deathParticleCount, deathParticleSpeed, deathParticleLifetime, d.User)
		case EventLevelComplete:
			draw.Bell(t.chunkWriter)
			t.particles = object.SpawnExplosion(t.particles, 0, 0,
				winParticleCount, deathParticleSpeed, deathParticleLifetime*2, d.Target)
		case EventElimination, EventAlarmOn:
			draw.Bell(t.chunkWriter)
		}
	}
}
