package object

import (
	"math"

	"github.com/tomz197/braindots/internal/draw"
)

// HubSpin is the hub rotation per tick (about 6 degrees).
const HubSpin = 0.1047

// Hub is the decorative rotating circle obstacles spawn from.
type Hub struct {
	X, Y     float64
	Radius   float64
	Rotation float64
}

// NewHub creates a hub centred on screen.
func NewHub(screen Screen) *Hub {
	h := &Hub{}
	h.Place(screen)
	return h
}

// Place recomputes position and radius from the screen, keeping rotation.
func (h *Hub) Place(screen Screen) {
	h.X = screen.CenterX()
	h.Y = screen.CenterY()
	h.Radius = screen.Min() / 16
}

// Advance spins the hub by one tick, wrapping to 0 at a full turn.
func (h *Hub) Advance() {
	h.Rotation += HubSpin
	if h.Rotation >= 2*math.Pi {
		h.Rotation = 0
	}
}

// Update advances the hub rotation.
func (h *Hub) Update(_ UpdateContext) (bool, error) {
	h.Advance()
	return false, nil
}

// Draw renders the hub with a spoke showing its rotation.
func (h *Hub) Draw(ctx DrawContext) error {
	ctx.Canvas.FillCircle(h.X, h.Y, h.Radius, draw.Hex("#666666"))
	tip := draw.Point{
		X: h.X + math.Cos(h.Rotation)*h.Radius,
		Y: h.Y + math.Sin(h.Rotation)*h.Radius,
	}
	ctx.Canvas.DrawLine(draw.Point{X: h.X, Y: h.Y}, tip, draw.Hex("#BBBBBB"))
	return nil
}
