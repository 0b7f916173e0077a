package loop

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/tomz197/rotander/internal/config"
	"github.com/tomz197/rotander/internal/draw"
	"github.com/tomz197/rotander/internal/input"
	"github.com/tomz197/rotander/internal/level"
)

func newTestTerminal(s *Session) *terminal {
	return &terminal{
		opts: Options{
			Levels:   level.NewManager(level.Builtin(), 1),
			Settings: config.Default(),
		},
		logger:      log.New(io.Discard),
		chunkWriter: draw.NewChunkWriter(io.Discard, 0, 0),
		screen:      screenGame,
		session:     s,
	}
}

func TestHeldJumpDoesNotSkipCompleteScreen(t *testing.T) {
	s := NewSession(testLevel(floorShape(true)), nil)
	term := newTestTerminal(s)

	term.input = input.Input{Space: true}
	for i := 0; i < 200 && s.State() == StatePlaying; i++ {
		term.updateGame()
	}
	if s.State() != StateComplete {
		t.Fatalf("state = %v, want complete", s.State())
	}

	// Key repeat keeps Space down for a few more frames.
	for i := 0; i < 5; i++ {
		term.updateGame()
	}
	if term.session != s || term.opts.Levels.Current() != 1 {
		t.Fatal("held jump key confirmed the complete screen")
	}

	term.input = input.Input{}
	term.updateGame()
	term.input = input.Input{Space: true}
	term.updateGame()
	if term.opts.Levels.Current() != 2 || term.session == s {
		t.Errorf("fresh press did not advance: level %d", term.opts.Levels.Current())
	}
}

func TestConfirmedWaitsForRelease(t *testing.T) {
	term := &terminal{holdConfirm: true}

	term.input = input.Input{Enter: true}
	if term.confirmed() {
		t.Error("held Enter confirmed")
	}
	term.input = input.Input{}
	if term.confirmed() {
		t.Error("no key confirmed")
	}
	term.input = input.Input{Enter: true}
	if !term.confirmed() {
		t.Error("fresh Enter did not confirm")
	}
}
