package input

import (
	"math"

	"github.com/tomz197/braindots/internal/object"
)

// RotationStep is the wheel rotation applied per accepted move.
const RotationStep = math.Pi / 24

// Target is the game state the mapper drives.
type Target interface {
	Playing() bool
	TutorialVisible() bool
	DismissTutorial()
	Over() bool
	Width() float64
	Wheel(side object.Side) *object.Wheel
}

// Point is a position in canvas buffer coordinates.
type Point struct {
	X, Y float64
}

// Rect is the on-screen rectangle the canvas buffer is displayed in.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// ToCanvas maps an on-screen position to canvas buffer coordinates, scaling
// each axis by buffer size over displayed size.
func ToCanvas(p Point, rect Rect, bufWidth, bufHeight float64) Point {
	sx, sy := 1.0, 1.0
	if rect.Width > 0 {
		sx = bufWidth / rect.Width
	}
	if rect.Height > 0 {
		sy = bufHeight / rect.Height
	}
	return Point{X: (p.X - rect.X) * sx, Y: (p.Y - rect.Y) * sy}
}

type touch struct {
	side object.Side // Half the touch started on
	last Point
}

// Mapper converts gestures into wheel rotations, one channel per screen half.
// Touches are tracked by identifier; the single mouse pointer uses one
// last-Y value per side.
type Mapper struct {
	target    Target
	touches   map[int]*touch
	active    [2]bool    // Indexed by object.Side
	lastY     [2]float64 // Indexed by object.Side
	mouseDown bool
}

// NewMapper creates a mapper driving target.
func NewMapper(target Target) *Mapper {
	return &Mapper{
		target:  target,
		touches: make(map[int]*touch),
	}
}

// Reset forgets all tracked pointers.
func (m *Mapper) Reset() {
	clear(m.touches)
	m.active = [2]bool{}
	m.lastY = [2]float64{}
	m.mouseDown = false
}

// Active reports whether a gesture is in progress on side.
func (m *Mapper) Active(side object.Side) bool {
	return m.active[side]
}

func (m *Mapper) sideAt(x float64) object.Side {
	return object.Screen{Width: m.target.Width()}.SideAt(x)
}

// start handles the beginning of any gesture. Returns false if it was
// swallowed by the tutorial or ignored.
func (m *Mapper) start(p Point) (object.Side, bool) {
	if !m.target.Playing() {
		return 0, false
	}
	if m.target.TutorialVisible() {
		m.target.DismissTutorial()
		return 0, false
	}
	if m.target.Over() {
		return 0, false
	}
	side := m.sideAt(p.X)
	m.active[side] = true
	m.lastY[side] = p.Y
	return side, true
}

// canRotate reports whether moves may turn wheels right now.
func (m *Mapper) canRotate() bool {
	return m.target.Playing() && !m.target.TutorialVisible() && !m.target.Over()
}

// rotate applies one step to side's wheel for a vertical move of deltaY.
// Dragging down turns the left wheel positive and the right wheel negative.
func (m *Mapper) rotate(side object.Side, deltaY float64) {
	var step float64
	switch {
	case deltaY > 0:
		step = RotationStep
	case deltaY < 0:
		step = -RotationStep
	default:
		return
	}
	if side == object.SideRight {
		step = -step
	}
	m.target.Wheel(side).Rotate(step)
}

// TouchStart begins tracking touch id at p.
func (m *Mapper) TouchStart(id int, p Point) {
	m.touches[id] = &touch{side: m.sideAt(p.X), last: p}
	m.start(p)
}

// TouchMove rotates the wheel of the half the touch started on.
func (m *Mapper) TouchMove(id int, p Point) {
	t, ok := m.touches[id]
	if !ok {
		return
	}
	last := t.last
	t.last = p

	if !m.canRotate() || !m.active[t.side] {
		return
	}
	m.rotate(t.side, p.Y-last.Y)
	m.lastY[t.side] = p.Y
}

// TouchEnd stops tracking touch id. Both halves go idle once no touches remain.
func (m *Mapper) TouchEnd(id int) {
	delete(m.touches, id)
	if len(m.touches) == 0 {
		m.active = [2]bool{}
	}
}

// Touches returns the number of tracked touches.
func (m *Mapper) Touches() int {
	return len(m.touches)
}

// MouseDown begins a mouse drag at p.
func (m *Mapper) MouseDown(p Point) {
	m.mouseDown = true
	m.start(p)
}

// MouseMove continues a mouse drag. The side is taken from the current
// position; positions exactly on the midline are ignored.
func (m *Mapper) MouseMove(p Point) {
	if !m.mouseDown || !m.canRotate() {
		return
	}
	mid := m.target.Width() / 2
	if p.X == mid {
		return
	}
	side := m.sideAt(p.X)
	if !m.active[side] {
		return
	}
	m.rotate(side, p.Y-m.lastY[side])
	m.lastY[side] = p.Y
}

// MouseUp ends the mouse drag on the half under p.
func (m *Mapper) MouseUp(p Point) {
	m.mouseDown = false
	m.active[m.sideAt(p.X)] = false
}

// Nudge applies a single keyboard or scroll step to side's wheel. Like a
// gesture start, it dismisses a visible tutorial instead of rotating.
func (m *Mapper) Nudge(side object.Side, down bool) {
	if !m.target.Playing() {
		return
	}
	if m.target.TutorialVisible() {
		m.target.DismissTutorial()
		return
	}
	if m.target.Over() {
		return
	}
	if down {
		m.rotate(side, 1)
	} else {
		m.rotate(side, -1)
	}
}
