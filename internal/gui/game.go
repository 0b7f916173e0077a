// Package gui is the windowed frontend. It plays the same sessions as the
// terminal loop and draws them with ebiten.
package gui

import (
	"image"
	"image/color"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tomz197/rotander/internal/config"
	"github.com/tomz197/rotander/internal/input"
	"github.com/tomz197/rotander/internal/level"
	"github.com/tomz197/rotander/internal/loop"
	"github.com/tomz197/rotander/internal/object"
	"github.com/tomz197/rotander/internal/physics"
	"github.com/tomz197/rotander/internal/sound"
)

type screen int

const (
	screenStart screen = iota
	screenGame
	screenFinished
)

// Particle effect tuning in world units.
const (
	burstCount    = 32
	burstSpeed    = 1.5
	burstLifetime = 0.8
)

// Options configures a windowed game.
type Options struct {
	Levels   *level.Manager
	Settings config.Settings
	Logger   *log.Logger
	Mute     bool
}

// Game implements ebiten.Game.
type Game struct {
	opts   Options
	logger *log.Logger

	screen     screen
	session    *loop.Session
	totalScore int
	loadErr    error

	scene     []loop.Primitive
	particles []*object.Particle
	vertices  []ebiten.Vertex
	indices   []uint16
	white     *ebiten.Image

	audio *audio.Context
	tones map[loop.EventKind][]byte
}

// NewGame creates the game on its title screen.
func NewGame(opts Options) (*Game, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Levels == nil {
		opts.Levels = level.NewManager(level.Builtin(), 1)
	}
	if err := opts.Settings.Validate(); err != nil {
		return nil, err
	}

	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)

	g := &Game{
		opts:   opts,
		logger: opts.Logger,
		white:  white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}
	if !opts.Mute {
		g.audio = audio.NewContext(sound.SampleRate)
		g.tones = map[loop.EventKind][]byte{
			loop.EventJump:          sound.Jump.PCM(sound.SampleRate),
			loop.EventDeath:         sound.Death.PCM(sound.SampleRate),
			loop.EventElimination:   sound.Elimination.PCM(sound.SampleRate),
			loop.EventLevelComplete: sound.Complete.PCM(sound.SampleRate),
			loop.EventTargetPulse:   sound.Pulse.PCM(sound.SampleRate),
			loop.EventAlarmOn:       sound.Alarm.PCM(sound.SampleRate),
		}
	}
	return g, nil
}

// Update runs one tick. Ebiten calls it at the settings' tick rate.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	switch g.screen {
	case screenStart:
		if confirmed() {
			g.totalScore = 0
			g.opts.Levels.Reset()
			g.startLevel()
		}
	case screenGame:
		g.updateGame()
	case screenFinished:
		if confirmed() {
			g.screen = screenStart
		}
	}

	g.particles = object.UpdateParticles(g.particles, g.settings().TickSeconds())
	return nil
}

func (g *Game) settings() config.Settings {
	if g.session != nil {
		return g.session.Settings()
	}
	return g.opts.Settings
}

func confirmed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter)
}

func (g *Game) startLevel() {
	l, err := g.opts.Levels.Load(g.opts.Settings)
	if err != nil {
		g.logger.Error("load level", "path", g.opts.Levels.Path(), "err", err)
		g.loadErr = err
		g.screen = screenStart
		return
	}
	g.loadErr = nil
	g.logger.Info("level started", "level", g.opts.Levels.Current(), "name", l.Name)
	g.session = loop.NewSession(l, g.logger)
	g.screen = screenGame
}

func (g *Game) updateGame() {
	s := g.session
	switch s.State() {
	case loop.StatePlaying:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			s.TogglePause()
			return
		}
		s.Rotate(rotateInput())
		g.handleEvents(s.Tick(controls()))

	case loop.StatePaused:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || confirmed() {
			s.TogglePause()
		}

	case loop.StateComplete:
		if confirmed() {
			g.totalScore += s.Score()
			if g.opts.Levels.HasNext() {
				g.opts.Levels.Advance()
				g.startLevel()
			} else {
				g.logger.Info("all levels complete", "score", g.totalScore)
				g.screen = screenFinished
			}
		}

	case loop.StateEliminated:
		if confirmed() {
			g.screen = screenStart
		}
	}
}

// controls samples the held movement keys.
func controls() physics.Controls {
	return physics.Controls{
		Left:  ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right: ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Duck:  ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Jump: ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) ||
			ebiten.IsKeyPressed(ebiten.KeySpace),
	}
}

// rotateInput returns the rotation steps from the i/o keys and the wheel.
func rotateInput() int {
	_, dy := ebiten.Wheel()
	return input.RotateSteps(inpututil.IsKeyJustPressed(ebiten.KeyI), inpututil.IsKeyJustPressed(ebiten.KeyO), dy)
}

func (g *Game) handleEvents(events []loop.Event) {
	d := g.session.Settings().Display
	for _, e := range events {
		g.play(e.Kind)
		switch e.Kind {
		case loop.EventDeath:
			g.particles = object.SpawnExplosion(g.particles, 0, 0, burstCount, burstSpeed, burstLifetime, d.User)
		case loop.EventLevelComplete:
			g.particles = object.SpawnExplosion(g.particles, 0, 0, burstCount*2, burstSpeed, burstLifetime*2, d.Target)
		}
	}
}

// play starts the tone for kind, if it has one.
func (g *Game) play(kind loop.EventKind) {
	if g.audio == nil {
		return
	}
	pcm, ok := g.tones[kind]
	if !ok {
		return
	}
	g.audio.NewPlayerFromBytes(pcm).Play()
}

// Layout keeps the logical window size from the settings.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	d := g.settings().Display
	return d.WindowWidth, d.WindowHeight
}
