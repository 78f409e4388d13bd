package input

import "strconv"

// MouseAction is what a mouse report describes.
type MouseAction int

const (
	MousePress MouseAction = iota
	MouseDrag
	MouseRelease
	MouseScrollUp
	MouseScrollDown
	MouseOther // Other buttons, plain motion
)

// MouseEvent is one SGR mouse report. Col and Row are 1-based terminal cells.
type MouseEvent struct {
	Action MouseAction
	Col    int
	Row    int
}

const (
	mouseMotionFlag = 32
	mouseWheelFlag  = 64
)

// parseSGRMouse decodes "ESC [ < b ; x ; y (M|m)" at the start of buf.
// n is the number of bytes consumed (0 if the sequence is incomplete);
// ok is false if the sequence is malformed or does not concern us.
func parseSGRMouse(buf []byte) (ev MouseEvent, n int, ok bool) {
	if len(buf) < 3 || buf[0] != '\x1b' || buf[1] != '[' || buf[2] != '<' {
		return MouseEvent{}, 0, false
	}

	var fields [3]int
	field := 0
	start := 3
	for i := 3; i < len(buf); i++ {
		c := buf[i]
		switch {
		case c >= '0' && c <= '9':
			continue
		case c == ';':
			if field >= 2 {
				return MouseEvent{}, i + 1, false
			}
			v, err := strconv.Atoi(string(buf[start:i]))
			if err != nil {
				return MouseEvent{}, i + 1, false
			}
			fields[field] = v
			field++
			start = i + 1
		case c == 'M' || c == 'm':
			if field != 2 {
				return MouseEvent{}, i + 1, false
			}
			v, err := strconv.Atoi(string(buf[start:i]))
			if err != nil {
				return MouseEvent{}, i + 1, false
			}
			fields[2] = v
			ev = MouseEvent{
				Action: mouseAction(fields[0], c == 'm'),
				Col:    fields[1],
				Row:    fields[2],
			}
			return ev, i + 1, true
		default:
			return MouseEvent{}, i + 1, false
		}
	}
	return MouseEvent{}, 0, false
}

func mouseAction(button int, release bool) MouseAction {
	if button&mouseWheelFlag != 0 {
		if button&1 == 0 {
			return MouseScrollUp
		}
		return MouseScrollDown
	}
	if button&3 != 0 { // Only the primary button drives wheels
		return MouseOther
	}
	switch {
	case release:
		return MouseRelease
	case button&mouseMotionFlag != 0:
		return MouseDrag
	default:
		return MousePress
	}
}
