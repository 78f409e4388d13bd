// Package input turns raw terminal bytes and pointer gestures into wheel
// rotations and game actions.
package input

import (
	"bufio"

	"github.com/tomz197/braindots/internal/object"
)

// Input represents the input that arrived since the previous frame.
// Key flags are edge triggered: a key is reported once per press.
type Input struct {
	Quit   bool
	Space  bool
	Enter  bool
	Escape bool
	Nudges []Nudge      // Keyboard wheel steps in arrival order
	Mouse  []MouseEvent // SGR mouse reports in arrival order
	Closed bool         // The underlying reader has ended
	Active bool         // Any byte arrived, recognised or not
}

// Nudge is a single keyboard rotation step for one wheel. Down mirrors a
// downward drag on that wheel's half of the screen.
type Nudge struct {
	Side object.Side
	Down bool
}

// maxPending bounds the unfinished escape sequence carried between reads.
const maxPending = 32

// Stream delivers input bytes via a channel. An escape sequence cut off at
// the end of one read is held back and completed by the next.
type Stream struct {
	ch      chan byte
	pending []byte
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 256)}
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

// ReadInput drains all available bytes from the stream (non-blocking) and parses them.
// A held-back sequence that gets no new bytes by the next read is parsed as
// it stands, so a bare ESC still reaches the game as the Escape key.
func ReadInput(s *Stream) Input {
	buf := append([]byte(nil), s.pending...)
	fresh := 0
	closed := false

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			buf = append(buf, b)
			fresh++
		default:
			break drain
		}
	}

	in, rest := parse(buf, fresh == 0 || closed)
	s.pending = nil
	if len(rest) <= maxPending {
		s.pending = append(s.pending, rest...)
	}
	in.Active = fresh > 0
	in.Closed = closed
	return in
}

// Parse decodes a complete chunk of terminal input: SGR mouse reports, arrow
// keys and single-byte keys. A trailing bare ESC is the Escape key; an
// unfinished mouse report is dropped.
func Parse(buf []byte) Input {
	in, _ := parse(buf, true)
	return in
}

// parse decodes buf. Unless final is set, an escape sequence that may still
// be incomplete at the end of buf is returned as rest instead of decoded.
func parse(buf []byte, final bool) (in Input, rest []byte) {
	in.Active = len(buf) > 0

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && !final && (i+1 == len(buf) || (buf[i+1] == '[' && i+2 == len(buf))) {
			return in, buf[i:]
		}

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			if buf[i+2] == '<' {
				ev, n, ok := parseSGRMouse(buf[i:])
				if n == 0 {
					if final {
						return in, nil // Unfinished report
					}
					return in, buf[i:]
				}
				if ok {
					in.Mouse = append(in.Mouse, ev)
				}
				i += n - 1
				continue
			}
			// CSI sequence: ESC [ <code>
			switch buf[i+2] {
			case 'A': // Up arrow
				in.Nudges = append(in.Nudges, Nudge{Side: object.SideRight})
				i += 2
				continue
			case 'B': // Down arrow
				in.Nudges = append(in.Nudges, Nudge{Side: object.SideRight, Down: true})
				i += 2
				continue
			case 'C', 'D': // Horizontal arrows do nothing
				i += 2
				continue
			}
		}

		applyByte(&in, b)
	}

	return in, nil
}

// applyByte handles a single-byte key.
func applyByte(in *Input, b byte) {
	switch b {
	case 'q', 'Q', '\x03': // q or Ctrl+C
		in.Quit = true
	case 'w', 'W':
		in.Nudges = append(in.Nudges, Nudge{Side: object.SideLeft})
	case 's', 'S':
		in.Nudges = append(in.Nudges, Nudge{Side: object.SideLeft, Down: true})
	case 'i', 'I':
		in.Nudges = append(in.Nudges, Nudge{Side: object.SideRight})
	case 'k', 'K':
		in.Nudges = append(in.Nudges, Nudge{Side: object.SideRight, Down: true})
	case ' ':
		in.Space = true
	case '\n', '\r':
		in.Enter = true
	case '\x1b':
		in.Escape = true
	}
}
