// Package input decodes raw terminal bytes into per-frame key state.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals report no key releases, so movement keys stay down until their
// auto-repeat stops arriving.
const keyHoldDuration = 60 * time.Millisecond

// Input represents the current frame's input state.
// Movement keys are level-triggered (held); the counters are
// edge-triggered and count presses seen since the previous frame.
type Input struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
	Boost bool // Shift held with a movement key

	Fire    int // Space presses
	Spread  int // Spread-fire presses
	Shield  int
	Gravity int // Enter presses
	EMP     int

	Quit    bool
	Pressed []byte // Raw bytes read this frame
}

// keyState tracks the last time each held key was pressed.
type keyState struct {
	up    time.Time
	down  time.Time
	left  time.Time
	right time.Time
	shift time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch    chan byte
	state keyState
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The goroutine exits when r returns an error (e.g. the session closes).
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ResetKeyInput forgets all held keys, e.g. when switching screens.
func ResetKeyInput(s *Stream) {
	s.state = keyState{}
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and accumulates all pressed keys.
// Uses key state persistence to allow detecting simultaneous key combinations.
func ReadInput(s *Stream) Input {
	return readInputAt(s, time.Now())
}

func readInputAt(s *Stream, now time.Time) Input {
	var buf []byte
	closed := false

	// Drain all available bytes
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	inp := parse(&s.state, buf, now)
	// A closed stream means the terminal went away
	if closed {
		inp.Quit = true
	}
	return inp
}

// parse applies buf to the key state and builds the frame's Input.
func parse(state *keyState, buf []byte, now time.Time) Input {
	var inp Input

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' {
			if n, ok := parseEscape(state, buf[i:], now); ok {
				i += n - 1
				continue
			}
		}

		applyByte(&inp, b)
	}

	inp.Up = now.Sub(state.up) < keyHoldDuration
	inp.Down = now.Sub(state.down) < keyHoldDuration
	inp.Left = now.Sub(state.left) < keyHoldDuration
	inp.Right = now.Sub(state.right) < keyHoldDuration
	inp.Boost = now.Sub(state.shift) < keyHoldDuration
	inp.Pressed = buf

	return inp
}

// parseEscape decodes an arrow-key sequence at the start of seq:
// ESC [ A-D, ESC O A-D (application mode) and ESC [ 1 ; m A-D (modifiers).
// Returns the sequence length.
func parseEscape(state *keyState, seq []byte, now time.Time) (int, bool) {
	if len(seq) < 3 || (seq[1] != '[' && seq[1] != 'O') {
		return 0, false
	}

	n := 3
	final := seq[2]
	shifted := false
	if seq[1] == '[' && seq[2] == '1' {
		// CSI 1 ; <modifier> <final>
		if len(seq) < 6 || seq[3] != ';' {
			return 0, false
		}
		mod := seq[4] - '1' // xterm encodes modifiers as 1 + bitmask
		shifted = mod&1 != 0
		final = seq[5]
		n = 6
	}

	var held *time.Time
	switch final {
	case 'A':
		held = &state.up
	case 'B':
		held = &state.down
	case 'C':
		held = &state.right
	case 'D':
		held = &state.left
	default:
		return 0, false
	}

	*held = now
	if shifted {
		state.shift = now
	}
	return n, true
}

// applyByte updates the press counters for a single byte.
func applyByte(inp *Input, b byte) {
	switch b {
	case 'q', 'Q', 0x03: // Ctrl-C arrives as a byte in raw mode
		inp.Quit = true
	case ' ':
		inp.Fire++
	case 'f', 'F':
		inp.Spread++
	case 's', 'S':
		inp.Shield++
	case 'e', 'E':
		inp.EMP++
	case '\r', '\n':
		inp.Gravity++
	}
}
