package loop

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/rotander/internal/config"
	"github.com/tomz197/rotander/internal/level"
	"github.com/tomz197/rotander/internal/object"
	"github.com/tomz197/rotander/internal/physics"
)

// floorShape is a 2x2x2 cube whose top face sits at z = -0.2, under the
// default spawn.
func floorShape(target bool) object.Shape {
	return object.Shape{
		Name:     "floor",
		Polytope: object.NewCube(mgl64.Vec3{0, 0, -1.2}, 1),
		Target:   target,
	}
}

func testLevel(shapes ...object.Shape) *level.Level {
	return &level.Level{
		Name:     "test",
		Shapes:   shapes,
		Settings: config.Default(),
	}
}

func countEvents(events []Event, kind EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func TestSessionScoreDecaysToElimination(t *testing.T) {
	s := NewSession(testLevel(floorShape(false)), nil)
	start := s.Score()

	for i := 1; i < start; i++ {
		if events := s.Tick(physics.Controls{}); countEvents(events, EventElimination) != 0 {
			t.Fatalf("eliminated early at tick %d", i)
		}
	}
	if s.State() != StatePlaying || s.Score() != 1 {
		t.Fatalf("after %d ticks: state %v, score %d", start-1, s.State(), s.Score())
	}

	events := s.Tick(physics.Controls{})
	if countEvents(events, EventElimination) != 1 {
		t.Errorf("last tick events = %v, want an elimination", events)
	}
	if s.State() != StateEliminated || s.Score() != 0 {
		t.Errorf("state %v, score %d, want eliminated with 0", s.State(), s.Score())
	}
	if s.Ticks() != start {
		t.Errorf("Ticks() = %d, want %d", s.Ticks(), start)
	}

	if events := s.Tick(physics.Controls{}); events != nil || s.Ticks() != start {
		t.Errorf("eliminated session still ticks: %v", events)
	}
	s.TogglePause()
	if s.State() != StateEliminated {
		t.Errorf("TogglePause changed a finished session to %v", s.State())
	}
}

func TestSessionPause(t *testing.T) {
	s := NewSession(testLevel(floorShape(false)), nil)
	s.Tick(physics.Controls{})

	s.TogglePause()
	if s.State() != StatePaused {
		t.Fatalf("state = %v, want paused", s.State())
	}
	score, angle := s.Score(), s.Snapshot().Angle
	for i := 0; i < 10; i++ {
		s.Tick(physics.Controls{Jump: true})
		s.Rotate(1)
	}
	if s.Score() != score || s.Ticks() != 1 || s.Snapshot().Angle != angle {
		t.Errorf("paused session changed: score %d ticks %d angle %v", s.Score(), s.Ticks(), s.Snapshot().Angle)
	}

	s.TogglePause()
	if s.State() != StatePlaying {
		t.Errorf("state = %v, want playing", s.State())
	}
}

func TestSessionFallPenalty(t *testing.T) {
	l := testLevel(floorShape(false))
	l.Settings.Gameplay.Spawn = mgl64.Vec3{5, 0, 0}
	s := NewSession(l, nil)
	g := l.Settings.Gameplay

	for i := 0; i < 1000; i++ {
		events := s.Tick(physics.Controls{})
		if countEvents(events, EventDeath) == 0 {
			continue
		}
		for _, e := range events {
			if e.Kind == EventDeath && e.Cause != physics.CauseFall {
				t.Errorf("death cause = %v, want fall", e.Cause)
			}
		}
		want := g.StartScore - g.DeathPenalty - s.Ticks()*g.ScoreDecay
		if s.Score() != want {
			t.Errorf("score = %d, want %d", s.Score(), want)
		}
		if pos := s.Snapshot().Position; pos != g.Spawn {
			t.Errorf("player at %v after falling, want spawn %v", pos, g.Spawn)
		}
		return
	}
	t.Fatal("player never fell out of the level")
}

func TestSessionJumpPenalty(t *testing.T) {
	s := NewSession(testLevel(floorShape(false)), nil)
	g := s.Settings().Gameplay
	for i := 0; i < 60; i++ {
		s.Tick(physics.Controls{})
	}

	events := s.Tick(physics.Controls{Jump: true})
	if countEvents(events, EventJump) != 1 {
		t.Fatalf("events = %v, want one jump", events)
	}
	if want := g.StartScore - g.JumpPenalty - 61*g.ScoreDecay; s.Score() != want {
		t.Errorf("score = %d, want %d", s.Score(), want)
	}
}

func TestSessionLevelComplete(t *testing.T) {
	s := NewSession(testLevel(floorShape(true)), nil)

	for i := 0; i < 200 && s.State() == StatePlaying; i++ {
		events := s.Tick(physics.Controls{})
		if s.State() == StateComplete && countEvents(events, EventLevelComplete) != 1 {
			t.Errorf("completing tick events = %v", events)
		}
	}
	if s.State() != StateComplete {
		t.Fatalf("state = %v, want complete", s.State())
	}

	score := s.Score()
	if s.Tick(physics.Controls{}) != nil || s.Score() != score {
		t.Error("completed session kept ticking")
	}
}

func TestSessionAlarm(t *testing.T) {
	l := testLevel(floorShape(false))
	l.Enemies = []level.EnemySpec{{Position: mgl64.Vec3{1.5, 0, 0}, Size: 1, Speed: 0}}
	s := NewSession(l, nil)

	events := s.Tick(physics.Controls{})
	if countEvents(events, EventAlarmOn) != 1 || !s.Snapshot().Alarm {
		t.Fatalf("events = %v, want the alarm to go off", events)
	}
	if events := s.Tick(physics.Controls{}); countEvents(events, EventAlarmOn) != 0 {
		t.Errorf("alarm fired again while it was already on: %v", events)
	}

	s.world.Enemies[0].Position = mgl64.Vec3{10, 0, 0}
	events = s.Tick(physics.Controls{})
	if countEvents(events, EventAlarmOff) != 1 || s.Snapshot().Alarm {
		t.Errorf("events = %v, want the alarm to clear", events)
	}
}

func TestSessionTargetPulse(t *testing.T) {
	s := NewSession(testLevel(floorShape(false)), nil)

	// One pulse cycle lasts 1/rate seconds: 600 ticks at the defaults.
	pulses := 0
	for i := 1; i <= 610; i++ {
		n := countEvents(s.Tick(physics.Controls{}), EventTargetPulse)
		if n > 0 && i < 590 {
			t.Fatalf("pulse at tick %d", i)
		}
		pulses += n
	}
	if pulses != 1 {
		t.Errorf("got %d pulses in 610 ticks, want 1", pulses)
	}

	f := s.Snapshot().PulseFactor
	if f < 0 || f > 1 {
		t.Errorf("pulse factor %v out of [0, 1]", f)
	}
}

func TestPulseFactor(t *testing.T) {
	tests := []struct {
		t, want float64
	}{
		{0, 0.5},
		{2.5, 1},
		{5, 0.5},
		{7.5, 0},
	}
	for _, tt := range tests {
		if got := pulseFactor(tt.t, 0.1); got < tt.want-1e-9 || got > tt.want+1e-9 {
			t.Errorf("pulseFactor(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{
		StatePlaying:    "playing",
		StatePaused:     "paused",
		StateComplete:   "complete",
		StateEliminated: "eliminated",
		State(42):       "unknown",
	} {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}
