// Package config holds the game settings snapshot and environment helpers.
package config

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/tomz197/rotander/internal/object"
)

// Settings holds every tunable parameter of a run. It is built once, before
// the game starts, and treated as read-only afterwards.
type Settings struct {
	Display  Display
	Movement Movement
	Gameplay Gameplay
}

// Display controls how the plane is mapped to the screen.
type Display struct {
	PixelsPerUnit float64 // Screen pixels per world unit
	WindowWidth   int
	WindowHeight  int

	Background   object.Color
	Origin       object.Color // Player anchor marker
	User         object.Color // Player sprite
	DefaultShape object.Color // Shapes without their own color
	Target       object.Color // Pulse color of target shapes
	Enemy        object.Color
}

// Movement holds the per-tick physics constants.
type Movement struct {
	Acceleration float64 // Added to in-plane velocity per tick while moving
	MaxVelocity  float64 // Speed clamp
	Friction     float64 // Horizontal velocity multiplier per tick
	RotateStep   float64 // Radians per rotate command
	Gravity      float64 // Subtracted from vz per tick
	JumpVelocity float64
	JumpCooldown float64 // Seconds
	Bounce       float64 // Restitution applied to reflected velocity

	UserWidthPixels  float64
	UserHeightPixels float64

	SpeedEpsilon      float64 // Below this speed the player does not move
	DepenetrationStep float64 // Lift per attempt after a blocked rotation
	DepenetrationMax  float64 // Total lift before giving up
}

// Gameplay holds scoring and level-flow constants.
type Gameplay struct {
	FallThreshold   float64 // World z below which the player has fallen out
	Spawn           mgl64.Vec3
	StartScore      int
	ScoreDecay      int // Points lost per tick
	JumpPenalty     int
	DeathPenalty    int
	TargetPulseRate float64 // Hz
	AlarmDistance   float64 // Enemy proximity that raises the alarm
	TickRate        int     // Ticks per second
}

// Default returns the stock settings.
func Default() Settings {
	return Settings{
		Display: Display{
			PixelsPerUnit: 100,
			WindowWidth:   800,
			WindowHeight:  600,
			Background:    object.Color{R: 30, G: 30, B: 30},
			Origin:        object.Color{R: 255, G: 0, B: 0},
			User:          object.Color{R: 255, G: 255, B: 255},
			DefaultShape:  object.Color{R: 100, G: 200, B: 255},
			Target:        object.Color{R: 0, G: 255, B: 0},
			Enemy:         object.Color{R: 255, G: 80, B: 80},
		},
		Movement: Movement{
			Acceleration:      0.02,
			MaxVelocity:       5.0,
			Friction:          0.95,
			RotateStep:        math.Pi / 48,
			Gravity:           0.01,
			JumpVelocity:      0.3,
			JumpCooldown:      0.5,
			Bounce:            0.5,
			UserWidthPixels:   20,
			UserHeightPixels:  30,
			SpeedEpsilon:      0.01,
			DepenetrationStep: 0.1,
			DepenetrationMax:  10.0,
		},
		Gameplay: Gameplay{
			FallThreshold:   -10,
			StartScore:      10000,
			ScoreDecay:      1,
			JumpPenalty:     100,
			DeathPenalty:    1500,
			TargetPulseRate: 0.1,
			AlarmDistance:   2.0,
			TickRate:        60,
		},
	}
}

// Validate reports the first setting that would make the simulation
// misbehave.
func (s Settings) Validate() error {
	d, m, g := s.Display, s.Movement, s.Gameplay
	switch {
	case d.PixelsPerUnit <= 0:
		return errors.Errorf("pixels per unit must be positive, got %v", d.PixelsPerUnit)
	case d.WindowWidth <= 0 || d.WindowHeight <= 0:
		return errors.Errorf("window size must be positive, got %dx%d", d.WindowWidth, d.WindowHeight)
	case m.MaxVelocity <= 0:
		return errors.Errorf("max velocity must be positive, got %v", m.MaxVelocity)
	case m.Friction < 0 || m.Friction > 1:
		return errors.Errorf("friction must be in [0, 1], got %v", m.Friction)
	case m.Bounce < 0 || m.Bounce > 1:
		return errors.Errorf("bounce must be in [0, 1], got %v", m.Bounce)
	case m.UserWidthPixels <= 0 || m.UserHeightPixels <= 0:
		return errors.Errorf("player hitbox must be positive, got %vx%v", m.UserWidthPixels, m.UserHeightPixels)
	case m.DepenetrationStep <= 0 || m.DepenetrationMax < m.DepenetrationStep:
		return errors.Errorf("depenetration step %v and max %v are inconsistent", m.DepenetrationStep, m.DepenetrationMax)
	case g.StartScore <= 0:
		return errors.Errorf("start score must be positive, got %d", g.StartScore)
	case g.TickRate <= 0:
		return errors.Errorf("tick rate must be positive, got %d", g.TickRate)
	case g.TargetPulseRate < 0:
		return errors.Errorf("target pulse rate must not be negative, got %v", g.TargetPulseRate)
	}
	return nil
}

// CollisionDimensions returns the player hitbox in world units.
func (m Movement) CollisionDimensions(pixelsPerUnit float64) (width, height float64) {
	return m.UserWidthPixels / pixelsPerUnit, m.UserHeightPixels / pixelsPerUnit
}

// CollisionDimensions returns the player hitbox in world units.
func (s Settings) CollisionDimensions() (width, height float64) {
	return s.Movement.CollisionDimensions(s.Display.PixelsPerUnit)
}

// TickSeconds is the simulated duration of one tick.
func (s Settings) TickSeconds() float64 {
	return 1 / float64(s.Gameplay.TickRate)
}

// TickDuration is TickSeconds as a time.Duration.
func (s Settings) TickDuration() time.Duration {
	return time.Second / time.Duration(s.Gameplay.TickRate)
}
