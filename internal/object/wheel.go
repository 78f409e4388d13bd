package object

import (
	"math"

	"github.com/tomz197/braindots/internal/draw"
)

// Initial wheel orientations.
const (
	LeftWheelRotation  = -3 * math.Pi / 4
	RightWheelRotation = -math.Pi / 4
)

// Wheel is a player-controlled colour disk anchored on the left or right edge.
// Rotation is unbounded; it is only normalised when a colour is derived.
type Wheel struct {
	X, Y     float64
	Radius   float64
	Rotation float64
	Side     Side
}

// Sector is an arc of a wheel drawn in one colour.
// Angles are in canvas space (y grows downward, positive is clockwise).
type Sector struct {
	Start, End float64
	Color      Color
}

// NewWheel creates a wheel for side with its initial rotation, placed on screen.
func NewWheel(side Side, screen Screen) *Wheel {
	w := &Wheel{Side: side}
	w.Reset(screen)
	return w
}

// Reset restores the initial rotation and recomputes geometry.
func (w *Wheel) Reset(screen Screen) {
	if w.Side == SideLeft {
		w.Rotation = LeftWheelRotation
	} else {
		w.Rotation = RightWheelRotation
	}
	w.Place(screen)
}

// Place recomputes position and radius from the screen, keeping rotation.
func (w *Wheel) Place(screen Screen) {
	if w.Side == SideLeft {
		w.X = 0
	} else {
		w.X = screen.Width
	}
	w.Y = screen.CenterY()
	w.Radius = screen.Min() / 8
}

// Rotate turns the wheel by delta radians.
func (w *Wheel) Rotate(delta float64) {
	w.Rotation += delta
}

// Facing returns the colour the wheel currently presents toward the hub.
func (w *Wheel) Facing() Color {
	return ColorForWheel(w, w.Side)
}

// facingAngle is the canvas direction from the wheel centre toward the hub.
func (w *Wheel) facingAngle() float64 {
	if w.Side == SideLeft {
		return 0
	}
	return math.Pi
}

// quadrantBounds are the rotation intervals ColorAt distinguishes.
var quadrantBounds = [4][2]float64{
	{-math.Pi, -math.Pi / 2},
	{-math.Pi / 2, 0},
	{0, math.Pi / 2},
	{math.Pi / 2, math.Pi},
}

// Sectors returns the four coloured arcs of the wheel in canvas space.
// The arc drawn at the facing direction always carries Facing().
func (w *Wheel) Sectors() [4]Sector {
	var out [4]Sector
	base := w.Rotation + w.facingAngle()
	for i, q := range quadrantBounds {
		mid := (q[0] + q[1]) / 2
		out[i] = Sector{
			Start: base - q[1],
			End:   base - q[0],
			Color: ColorAt(mid, w.Side),
		}
	}
	return out
}

// Update is a no-op; wheels only move through input.
func (w *Wheel) Update(_ UpdateContext) (bool, error) {
	return false, nil
}

// Draw renders the four colour sectors and a rim.
func (w *Wheel) Draw(ctx DrawContext) error {
	for _, s := range w.Sectors() {
		ctx.Canvas.FillSector(w.X, w.Y, w.Radius, s.Start, s.End, draw.Hex(s.Color.Display))
	}
	ctx.Canvas.StrokeCircle(w.X, w.Y, w.Radius, w.Radius/12, draw.Hex("#888888"))
	return nil
}
