// Package input turns a raw terminal byte stream into per-frame key state.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
const keyHoldDuration = 30 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Quit   bool
	Left   bool
	Right  bool
	Up     bool // Jump
	Down   bool // Duck
	Space  bool
	Enter  bool
	Escape bool // Escape pressed this frame (not held)

	// Rotate is the net number of rotate presses this frame: positive for
	// 'i', negative for 'o'.
	Rotate int

	Pressed []byte
	Closed  bool // The underlying reader is gone
}

// Jump reports whether any jump key is held.
func (in Input) Jump() bool {
	return in.Up || in.Space
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit  time.Time
	left  time.Time
	right time.Time
	up    time.Time
	down  time.Time
	space time.Time
	enter time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	ch := s.ch
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(ch)
				return
			}
			ch <- b
		}
	}()
	return s
}

// drain collects all bytes currently buffered in the stream.
func (s *Stream) drain() []byte {
	var buf []byte
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				s.ch = nil
				return buf
			}
			buf = append(buf, b)
		default:
			return buf
		}
	}
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and accumulates all pressed keys.
// Uses key state persistence to allow detecting simultaneous key combinations.
func ReadInput(s *Stream) Input {
	now := time.Now()
	var buf []byte
	if s.ch != nil {
		buf = s.drain()
	}

	input := parse(&s.state, buf, now)
	input.Closed = s.closed
	return input
}

// parse updates state from buf and builds the frame's input.
func parse(state *keyState, buf []byte, now time.Time) Input {
	var input Input

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				state.up = now
				i += 2
				continue
			case 'B':
				state.down = now
				i += 2
				continue
			case 'C':
				state.right = now
				i += 2
				continue
			case 'D':
				state.left = now
				i += 2
				continue
			}
		}

		switch b {
		case '\x1b':
			input.Escape = true
		case 'i', 'I':
			input.Rotate++
		case 'o', 'O':
			input.Rotate--
		default:
			applyByteToState(state, b, now)
		}
	}

	// Keys are "pressed" if seen within hold duration
	input.Quit = now.Sub(state.quit) < keyHoldDuration
	input.Left = now.Sub(state.left) < keyHoldDuration
	input.Right = now.Sub(state.right) < keyHoldDuration
	input.Up = now.Sub(state.up) < keyHoldDuration
	input.Down = now.Sub(state.down) < keyHoldDuration
	input.Space = now.Sub(state.space) < keyHoldDuration
	input.Enter = now.Sub(state.enter) < keyHoldDuration
	input.Pressed = buf
	return input
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		state.quit = now
	case 'a', 'A':
		state.left = now
	case 'd', 'D':
		state.right = now
	case 'w', 'W':
		state.up = now
	case 's', 'S':
		state.down = now
	case ' ':
		state.space = now
	case '\n', '\r':
		state.enter = now
	}
}

// RotateSteps turns one frame of rotate controls into plane steps: 'i' and
// wheel-up turn one way, 'o' and wheel-down the other.
func RotateSteps(i, o bool, wheel float64) int {
	dir := 0
	if i {
		dir++
	}
	if o {
		dir--
	}
	switch {
	case wheel > 0:
		dir++
	case wheel < 0:
		dir--
	}
	return dir
}

// ResetKeyInput forgets every held key, so a key used to leave a screen
// does not also act on the next one.
func ResetKeyInput(s *Stream) {
	if s == nil {
		return
	}
	s.state = keyState{}
}
