package loop

import (
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/rotander/internal/config"
	"github.com/tomz197/rotander/internal/geometry"
	"github.com/tomz197/rotander/internal/level"
	"github.com/tomz197/rotander/internal/object"
	"github.com/tomz197/rotander/internal/physics"
)

// State is the phase of one level attempt.
type State int

const (
	StatePlaying    State = iota // Simulation runs every tick
	StatePaused                  // No ticks are processed
	StateComplete                // A target was reached
	StateEliminated              // Score ran out
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateComplete:
		return "complete"
	case StateEliminated:
		return "eliminated"
	default:
		return "unknown"
	}
}

// EventKind names something frontends map to a sound or an effect.
type EventKind int

const (
	EventJump EventKind = iota
	EventDeath
	EventElimination
	EventLevelComplete
	EventTargetPulse
	EventAlarmOn
	EventAlarmOff
)

func (k EventKind) String() string {
	switch k {
	case EventJump:
		return "jump"
	case EventDeath:
		return "death"
	case EventElimination:
		return "elimination"
	case EventLevelComplete:
		return "level-complete"
	case EventTargetPulse:
		return "target-pulse"
	case EventAlarmOn:
		return "alarm-on"
	case EventAlarmOff:
		return "alarm-off"
	default:
		return "unknown"
	}
}

// Respawn blink timing: the sprite toggles respawnBlinkRate times per
// second for respawnBlinkDuration seconds.
const (
	respawnBlinkDuration = 1.0
	respawnBlinkRate     = 10.0
)

// Event is emitted by Session.Tick. Cause is set for deaths.
type Event struct {
	Kind  EventKind
	Cause physics.Cause
}

// Session is one attempt at one level. It owns the world exclusively and
// is driven by a single goroutine.
type Session struct {
	level    *level.Level
	settings config.Settings
	world    *physics.World
	logger   *log.Logger
	targets  []int

	// respawnBlink is the remaining time the player sprite blinks after
	// an incident put it back at spawn.
	respawnBlink float64

	state State
	score int
	ticks int

	pulseTime   float64
	pulseFactor float64
	pulseCycle  int
	alarm       bool
}

// NewSession builds a fresh world for l. A nil logger discards output.
func NewSession(l *level.Level, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Session{
		level:    l,
		settings: l.Settings,
		logger:   logger,
		score:    l.Settings.Gameplay.StartScore,
		state:    StatePlaying,
		targets:  l.Targets(),
	}
	s.world = physics.NewWorld(l.Shapes, l.NewEnemies(), l.Settings.Gameplay.Spawn, l.Settings)
	s.pulseFactor = pulseFactor(0, l.Settings.Gameplay.TargetPulseRate)
	return s
}

// Tick runs one simulation tick. It does nothing unless the session is
// playing.
func (s *Session) Tick(c physics.Controls) []Event {
	if s.state != StatePlaying {
		return nil
	}
	s.ticks++
	g := s.settings.Gameplay
	s.respawnBlink = max(0, s.respawnBlink-s.settings.TickSeconds())

	var events []Event
	complete := false
	for _, e := range physics.Step(s.world, c, s.settings) {
		switch e.Kind {
		case physics.EventJump:
			s.score -= g.JumpPenalty
			events = append(events, Event{Kind: EventJump})
		case physics.EventIncident:
			s.score -= g.DeathPenalty
			s.respawnBlink = respawnBlinkDuration
			events = append(events, Event{Kind: EventDeath, Cause: e.Cause})
			s.logger.Debug("player incident", "cause", e.Cause, "tick", s.ticks, "score", s.score)
		case physics.EventTargetReached:
			complete = true
		}
	}

	if s.advancePulse() {
		events = append(events, Event{Kind: EventTargetPulse})
	}
	if e, changed := s.updateAlarm(); changed {
		events = append(events, e)
	}

	if complete {
		s.state = StateComplete
		s.logger.Info("level complete", "level", s.level.Name, "score", s.score, "ticks", s.ticks)
		return append(events, Event{Kind: EventLevelComplete})
	}

	s.score -= g.ScoreDecay
	if s.score <= 0 {
		s.score = 0
		s.state = StateEliminated
		s.logger.Info("eliminated", "level", s.level.Name, "ticks", s.ticks)
		events = append(events, Event{Kind: EventElimination})
	}
	return events
}

// advancePulse moves the target pulse one tick forward and reports whether
// a new pulse cycle started.
func (s *Session) advancePulse() bool {
	rate := s.settings.Gameplay.TargetPulseRate
	s.pulseTime += s.settings.TickSeconds()
	s.pulseFactor = pulseFactor(s.pulseTime, rate)

	cycle := int(s.pulseTime * rate)
	if cycle > s.pulseCycle {
		s.pulseCycle = cycle
		return true
	}
	return false
}

// pulseFactor maps time to [0, 1]: (sin(2π·rate·t) + 1) / 2.
func pulseFactor(t, rate float64) float64 {
	return (math.Sin(t*2*math.Pi*rate) + 1) / 2
}

// updateAlarm tracks whether an enemy is within the alarm distance.
func (s *Session) updateAlarm() (Event, bool) {
	dist, ok := s.world.NearestEnemy()
	near := ok && dist <= s.settings.Gameplay.AlarmDistance
	if near == s.alarm {
		return Event{}, false
	}
	s.alarm = near
	if near {
		return Event{Kind: EventAlarmOn}, true
	}
	return Event{Kind: EventAlarmOff}, true
}

// Rotate turns the plane by dir steps while playing.
func (s *Session) Rotate(dir int) {
	if s.state != StatePlaying || dir == 0 {
		return
	}
	if lifted := physics.Rotate(s.world, dir, s.settings); lifted > 0 {
		s.logger.Debug("lifted out of shape after rotation", "height", lifted)
	}
}

// TogglePause switches between playing and paused. Terminal states are
// left alone.
func (s *Session) TogglePause() {
	switch s.state {
	case StatePlaying:
		s.state = StatePaused
	case StatePaused:
		s.state = StatePlaying
	}
}

// State returns the current phase.
func (s *Session) State() State { return s.state }

// Score returns the remaining points.
func (s *Session) Score() int { return s.score }

// Ticks returns how many ticks have been simulated.
func (s *Session) Ticks() int { return s.ticks }

// Level returns the level being played.
func (s *Session) Level() *level.Level { return s.level }

// Settings returns the settings in effect for this level.
func (s *Session) Settings() config.Settings { return s.settings }

// Snapshot is a read-only view of the session for renderers.
type Snapshot struct {
	State    State
	Score    int
	Ticks    int
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Angle    float64
	Grounded bool
	Jump     object.JumpDirection

	Shapes        []object.Shape
	Targets       []int // Indices into Shapes
	Sections      []geometry.Section
	Enemies       []*object.Enemy
	EnemySections []geometry.Section
	Footprint     geometry.Hull

	PulseFactor  float64
	RespawnBlink float64 // Seconds the player sprite keeps blinking
	NearestEnemy float64
	HasEnemies   bool
	Alarm        bool
}

// Snapshot captures the current frame. Slices are shared with the world and
// are only valid until the next Tick or Rotate.
func (s *Session) Snapshot() Snapshot {
	w := s.world
	p := w.Player
	dist, ok := w.NearestEnemy()
	return Snapshot{
		State:         s.state,
		Score:         s.score,
		Ticks:         s.ticks,
		Position:      p.Position,
		Velocity:      p.Velocity,
		Angle:         p.Angle,
		Grounded:      p.Grounded,
		Jump:          p.JumpDirection(),
		Shapes:        w.Shapes,
		Targets:       s.targets,
		Sections:      w.Sections,
		Enemies:       w.Enemies,
		EnemySections: w.EnemySections,
		Footprint:     w.Footprint(),
		PulseFactor:   s.pulseFactor,
		RespawnBlink:  s.respawnBlink,
		NearestEnemy:  dist,
		HasEnemies:    ok,
		Alarm:         s.alarm,
	}
}
