package main

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tomz197/braindots/internal/draw"
	"github.com/tomz197/braindots/internal/loop"
	"github.com/tomz197/braindots/internal/object"
)

var (
	background = draw.Hex("#111111")
	hubColor   = draw.Hex("#666666")
	spokeColor = draw.Hex("#BBBBBB")
	rimColor   = draw.Hex("#888888")
)

// whiteSubImage is the source texture for DrawTriangles fills.
var whiteSubImage = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}()

// Draw renders the current snapshot.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	snap := g.game.Snapshot()

	if snap.State != loop.GameStateStart {
		drawHub(screen, snap.Hub)
		for i := range snap.Obstacles {
			drawObstacle(screen, &snap.Obstacles[i])
		}
		drawWheel(screen, &snap.Left)
		drawWheel(screen, &snap.Right)
	}
	drawText(screen, &snap)
}

func drawHub(dst *ebiten.Image, h object.Hub) {
	vector.DrawFilledCircle(dst, float32(h.X), float32(h.Y), float32(h.Radius), hubColor, true)
	tipX := h.X + math.Cos(h.Rotation)*h.Radius
	tipY := h.Y + math.Sin(h.Rotation)*h.Radius
	vector.StrokeLine(dst, float32(h.X), float32(h.Y), float32(tipX), float32(tipY), 2, spokeColor, true)
}

func drawObstacle(dst *ebiten.Image, o *object.Obstacle) {
	if o.Alpha <= 0 {
		return
	}
	base := draw.Hex(o.Color.Display)
	vector.DrawFilledCircle(dst, float32(o.X), float32(o.Y), float32(o.Size), draw.Shade(base, 0.8), true)
	vector.DrawFilledCircle(dst, float32(o.X), float32(o.Y), float32(o.Size*0.7), base, true)
}

func drawWheel(dst *ebiten.Image, w *object.Wheel) {
	for _, s := range w.Sectors() {
		fillSector(dst, w.X, w.Y, w.Radius, s.Start, s.End, draw.Hex(s.Color.Display))
	}
	vector.StrokeCircle(dst, float32(w.X), float32(w.Y), float32(w.Radius), float32(w.Radius/12), rimColor, true)
}

// fillSector fills the pie slice from start to end (clockwise in screen space).
func fillSector(dst *ebiten.Image, cx, cy, r, start, end float64, col draw.RGB) {
	var path vector.Path
	path.MoveTo(float32(cx), float32(cy))
	path.Arc(float32(cx), float32(cy), float32(r), float32(start), float32(end), vector.Clockwise)
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(col.R) / 0xff
		vs[i].ColorG = float32(col.G) / 0xff
		vs[i].ColorB = float32(col.B) / 0xff
		vs[i].ColorA = 1
	}
	dst.DrawTriangles(vs, is, whiteSubImage, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// drawText writes the overlay with the debug font, centred on the window.
func drawText(dst *ebiten.Image, snap *loop.Snapshot) {
	w, h := int(snap.Screen.Width), int(snap.Screen.Height)
	var lines []string

	switch snap.State {
	case loop.GameStateStart:
		lines = []string{"BRAIN DOTS - COLORS", "", fmt.Sprintf("Best: %d", snap.Best)}
		if snap.Played {
			lines = append(lines, fmt.Sprintf("Last: %d", snap.LastScore))
		}
		lines = append(lines, "", "Click or press SPACE to play")
	case loop.GameStatePlaying:
		printCentered(dst, fmt.Sprintf("%d", snap.Score), w/2, h/4)
		if snap.Tutorial {
			lines = []string{
				"Spin each wheel so the dot hits the quarter of its colour",
				"Drag up or down on a half of the screen, or use W/S and I/K",
				"",
				"Tap anywhere to begin",
			}
		}
	case loop.GameStateOver:
		lines = []string{"GAME OVER", "", fmt.Sprintf("Score: %d", snap.LastScore), fmt.Sprintf("Best: %d", snap.Best), "", "Click or press SPACE to continue"}
	}

	const lineHeight = 16
	top := h/2 - len(lines)*lineHeight/2
	for i, line := range lines {
		printCentered(dst, line, w/2, top+i*lineHeight)
	}
}

// printCentered uses the 6px wide debug font.
func printCentered(dst *ebiten.Image, s string, x, y int) {
	ebitenutil.DebugPrintAt(dst, s, x-len(s)*6/2, y)
}
