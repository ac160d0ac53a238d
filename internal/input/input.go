// Package input unifies terminal mouse reports and keyboard bytes into a
// single polled pointer state: a continuous target column and a fire/hold
// flag. The game loop reads one snapshot per tick.
package input

import (
	"fmt"
	"io"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last
// byte arrived. Long enough to bridge the terminal key-repeat gap.
const keyHoldDuration = 200 * time.Millisecond

// State is one frame's input snapshot.
type State struct {
	PointerX   float64 // Last known pointer column, 0-based canvas pixels
	HasPointer bool    // A mouse report has been seen this session
	Held       bool    // Fire held (mouse button down or space held)

	Left  bool // Keyboard fallback: nudge target left
	Right bool // Keyboard fallback: nudge target right

	// One-shot keys, latched since the previous Read.
	Start bool // Space or Enter pressed (menu confirm)
	Reset bool // R pressed
	Pause bool // P pressed
	Quit  bool // Q, Esc or Ctrl-C pressed
}

// keyState tracks the last time each held-style key was seen.
type keyState struct {
	left  time.Time
	right time.Time
	space time.Time
}

// Stream delivers input bytes via a channel and decodes them incrementally.
// Mouse reports may arrive split across reads, so undecoded bytes are kept
// between ticks.
type Stream struct {
	ch      chan byte
	pending []byte
	keys    keyState

	mouseX    int // 0-based column of last mouse report
	mouseHeld bool
	sawMouse  bool

	// One-shot latches, cleared by Read.
	start bool
	reset bool
	pause bool
	quit  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the
// stream. The goroutine exits when r returns an error (e.g. closed session).
func StartStream(r io.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 256),
	}
	go func() {
		buf := make([]byte, 64)
		for {
			n, err := r.Read(buf)
			for i := 0; i < n; i++ {
				s.ch <- buf[i]
			}
			if err != nil {
				close(s.ch)
				return
			}
		}
	}()
	return s
}

// EnableMouse asks the terminal for button-event tracking with SGR encoding.
// This is the terminal analog of pointer capture: drag reports keep arriving
// while the button is held. Failure to write is non-fatal for the caller.
func EnableMouse(w io.Writer) error {
	_, err := fmt.Fprint(w, "\033[?1002h\033[?1006h")
	return err
}

// DisableMouse restores normal terminal mouse handling.
func DisableMouse(w io.Writer) error {
	_, err := fmt.Fprint(w, "\033[?1002l\033[?1006l")
	return err
}

// Read drains all available bytes from the stream (non-blocking), decodes
// them and returns the current snapshot.
func (s *Stream) Read() State {
	now := time.Now()

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.quit = true
				break drain
			}
			s.pending = append(s.pending, b)
		default:
			break drain
		}
	}

	s.pending = s.consume(s.pending, now)

	st := State{
		PointerX:   float64(s.mouseX),
		HasPointer: s.sawMouse,
		Held:       s.mouseHeld || now.Sub(s.keys.space) < keyHoldDuration,
		Left:       now.Sub(s.keys.left) < keyHoldDuration,
		Right:      now.Sub(s.keys.right) < keyHoldDuration,
		Start:      s.start,
		Reset:      s.reset,
		Pause:      s.pause,
		Quit:       s.quit,
	}
	s.start = false
	s.reset = false
	s.pause = false

	return st
}

// ResetKeys clears held-key state, e.g. when entering a new screen so a
// held space does not immediately fire.
func (s *Stream) ResetKeys() {
	s.keys = keyState{}
	s.mouseHeld = false
}

// consume decodes complete sequences from buf and returns undecoded
// trailing bytes (at most one partial escape sequence).
func (s *Stream) consume(buf []byte, now time.Time) []byte {
	i := 0
	for i < len(buf) {
		b := buf[i]

		if b != 0x1b {
			s.applyByte(b, now)
			i++
			continue
		}

		// Escape sequence. Decide whether it is complete.
		n := s.consumeEscape(buf[i:], now)
		if n == 0 {
			// Incomplete sequence, keep the tail for the next tick
			break
		}
		i += n
	}

	if i == 0 && len(buf) > 0 {
		// Avoid growing forever on garbage that never completes
		if len(buf) > 64 {
			return nil
		}
		return buf
	}
	rest := buf[i:]
	if len(rest) == 0 {
		return buf[:0]
	}
	out := make([]byte, len(rest))
	copy(out, rest)
	return out
}

// consumeEscape decodes one escape sequence at the start of buf.
// Returns the number of bytes consumed, or 0 if the sequence is incomplete.
func (s *Stream) consumeEscape(buf []byte, now time.Time) int {
	if len(buf) < 2 {
		return 0
	}
	if buf[1] != '[' {
		// Alt-modified key, ignore both bytes
		return 2
	}
	if len(buf) < 3 {
		return 0
	}

	// Arrow keys: CSI A/B/C/D
	switch buf[2] {
	case 'A', 'B':
		return 3
	case 'C':
		s.keys.right = now
		return 3
	case 'D':
		s.keys.left = now
		return 3
	}

	// SGR mouse report: CSI < btn ; col ; row (M|m)
	if buf[2] == '<' {
		return s.consumeMouse(buf, now)
	}

	// Unknown CSI: skip to the final byte (0x40-0x7e)
	for j := 2; j < len(buf); j++ {
		if buf[j] >= 0x40 && buf[j] <= 0x7e {
			return j + 1
		}
		if j-2 > 24 {
			return j + 1
		}
	}
	return 0
}

// consumeMouse decodes one SGR mouse report (CSI < btn ; col ; row M/m).
func (s *Stream) consumeMouse(buf []byte, now time.Time) int {
	var btn, col, row int
	field := 0
	for j := 3; j < len(buf); j++ {
		b := buf[j]
		switch {
		case b >= '0' && b <= '9':
			v := int(b - '0')
			switch field {
			case 0:
				btn = btn*10 + v
			case 1:
				col = col*10 + v
			case 2:
				row = row*10 + v
			}
		case b == ';':
			field++
			if field > 2 {
				return j + 1
			}
		case b == 'M' || b == 'm':
			s.applyMouse(btn, col, b == 'M', now)
			return j + 1
		default:
			return j + 1
		}
		if j-3 > 24 {
			return j + 1
		}
	}
	return 0
}

// applyMouse updates pointer state from a decoded report. col is 1-based.
func (s *Stream) applyMouse(btn, col int, press bool, now time.Time) {
	if col > 0 {
		s.mouseX = col - 1
		s.sawMouse = true
	}

	const motionBit = 32
	button := btn &^ motionBit

	switch {
	case !press:
		s.mouseHeld = false
	case button == 0:
		// Left button press or drag
		s.mouseHeld = true
		if btn&motionBit == 0 {
			s.start = true
		}
	}
}

// applyByte updates key state from a plain byte.
func (s *Stream) applyByte(b byte, now time.Time) {
	switch b {
	case 'a', 'A', 'h', 'H':
		s.keys.left = now
	case 'd', 'D', 'l', 'L':
		s.keys.right = now
	case ' ':
		s.keys.space = now
		s.start = true
	case '\n', '\r':
		s.start = true
	case 'r', 'R':
		s.reset = true
	case 'p', 'P':
		s.pause = true
	case 'q', 'Q', 0x03:
		s.quit = true
	}
}
