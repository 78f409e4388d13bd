// Package object defines the game entities: the centre hub, the two colour
// wheels and the obstacles travelling between them.
package object

import (
	"math"

	"github.com/tomz197/braindots/internal/draw"
)

// Side identifies one half of the playfield and the wheel that guards it.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// String returns "left" or "right".
func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Screen Screen
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas
}

// Screen is the canvas buffer size in logical units.
type Screen struct {
	Width  float64
	Height float64
}

// NewScreen returns a screen with both dimensions clamped to at least 1.
func NewScreen(width, height float64) Screen {
	return Screen{Width: math.Max(width, 1), Height: math.Max(height, 1)}
}

// Min returns the smaller of the two dimensions. All entity sizes derive from it.
func (s Screen) Min() float64 {
	return math.Min(s.Width, s.Height)
}

// CenterX returns the horizontal midline.
func (s Screen) CenterX() float64 {
	return s.Width / 2
}

// CenterY returns the vertical midline.
func (s Screen) CenterY() float64 {
	return s.Height / 2
}

// SideAt returns the half of the screen containing x.
// The midline itself belongs to the right half.
func (s Screen) SideAt(x float64) Side {
	if x < s.CenterX() {
		return SideLeft
	}
	return SideRight
}

// Object is a drawable and updatable game entity.
type Object interface {
	// Update advances the object one tick. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool, err error)

	// Draw draws the object onto ctx.Canvas.
	Draw(ctx DrawContext) error
}
