package object

import "github.com/tomz197/braindots/internal/draw"

// ObstacleSpeed is the distance an obstacle travels per tick.
const ObstacleSpeed = 5.0

// Obstacle is a coloured disk travelling from the hub toward one wheel.
type Obstacle struct {
	X, Y     float64
	Color    Color
	Size     float64 // Radius
	Side     Side    // Wheel it travels toward
	Alpha    float64
	Resolved bool // Scored or failed; never collision-checked again
}

// NewObstacle creates a fully opaque obstacle at (x, y).
func NewObstacle(x, y float64, color Color, size float64, side Side) *Obstacle {
	return &Obstacle{
		X:     x,
		Y:     y,
		Color: color,
		Size:  size,
		Side:  side,
		Alpha: 1,
	}
}

// Offscreen reports whether the obstacle has fully left the screen on its side.
func (o *Obstacle) Offscreen(screen Screen) bool {
	if o.Side == SideLeft {
		return o.X < -o.Size
	}
	return o.X > screen.Width+o.Size
}

// Resolve marks the obstacle as consumed by a collision and hides it.
func (o *Obstacle) Resolve() {
	o.Resolved = true
	o.Alpha = 0
}

// Update moves the obstacle toward its wheel. Returns true once it is offscreen.
func (o *Obstacle) Update(ctx UpdateContext) (bool, error) {
	if o.Side == SideLeft {
		o.X -= ObstacleSpeed
	} else {
		o.X += ObstacleSpeed
	}
	return o.Offscreen(ctx.Screen), nil
}

// Draw renders the obstacle with a darker rim. Invisible obstacles are skipped.
func (o *Obstacle) Draw(ctx DrawContext) error {
	if o.Alpha <= 0 {
		return nil
	}
	base := draw.Hex(o.Color.Display)
	ctx.Canvas.FillCircle(o.X, o.Y, o.Size, draw.Shade(base, 0.8))
	ctx.Canvas.FillCircle(o.X, o.Y, o.Size*0.7, base)
	return nil
}
