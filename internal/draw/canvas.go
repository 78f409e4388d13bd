package draw

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Block characters used by the renderer.
const (
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Point represents a 2D coordinate in logical space.
type Point struct {
	X, Y float64
}

// Canvas is a colour drawing buffer with 2x vertical resolution using half-block characters.
// Game objects draw in logical coordinates which are scaled to terminal pixels.
type Canvas struct {
	termWidth      int      // Actual terminal columns
	termHeight     int      // Actual terminal rows
	subPixelHeight int      // termHeight * 2
	pixels         []uint32 // Flat slice: [y * termWidth + x], 0 if unset, else packed RGB

	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// 0-based terminal offsets for centering when the terminal exceeds the max resolution.
	offsetCol int
	offsetRow int

	renderBuf []byte
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{}
	c.logicalWidth = logicalWidth
	c.logicalHeight = logicalHeight
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the terminal dimensions while keeping the logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]uint32, subPixelHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}
	c.rescale()
}

// SetLogicalSize changes the logical coordinate space.
func (c *Canvas) SetLogicalSize(width, height float64) {
	c.logicalWidth = math.Max(width, 1)
	c.logicalHeight = math.Max(height, 1)
	c.rescale()
}

func (c *Canvas) rescale() {
	c.scaleX = float64(c.termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// setPixel sets a pixel at actual terminal sub-pixel coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, p uint32) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = p
	}
}

// At returns the colour of the sub-pixel at (x, y) and whether it is set.
func (c *Canvas) At(x, y int) (RGB, bool) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return RGB{}, false
	}
	p := c.pixels[y*c.termWidth+x]
	return unpack(p), p != 0
}

// ToPixel converts logical coordinates to sub-pixel coordinates.
func (c *Canvas) ToPixel(x, y float64) (px, py int) {
	return int(math.Floor(x * c.scaleX)), int(math.Floor(y * c.scaleY))
}

// fillWhere sets every sub-pixel in the logical bounding box around (cx, cy)
// whose centre satisfies inside. inside receives logical offsets from the centre.
func (c *Canvas) fillWhere(cx, cy, r float64, col RGB, inside func(dx, dy float64) bool) {
	p := col.packed()
	x0 := max(int(math.Floor((cx-r)*c.scaleX)), 0)
	x1 := min(int(math.Ceil((cx+r)*c.scaleX)), c.termWidth-1)
	y0 := max(int(math.Floor((cy-r)*c.scaleY)), 0)
	y1 := min(int(math.Ceil((cy+r)*c.scaleY)), c.subPixelHeight-1)

	for py := y0; py <= y1; py++ {
		ly := (float64(py)+0.5)/c.scaleY - cy
		row := py * c.termWidth
		for px := x0; px <= x1; px++ {
			lx := (float64(px)+0.5)/c.scaleX - cx
			if inside(lx, ly) {
				c.pixels[row+px] = p
			}
		}
	}
}

// FillCircle draws a filled disk. Disks smaller than a sub-pixel still mark
// the pixel under their centre.
func (c *Canvas) FillCircle(cx, cy, r float64, col RGB) {
	r2 := r * r
	c.fillWhere(cx, cy, r, col, func(dx, dy float64) bool {
		return dx*dx+dy*dy <= r2
	})
	px, py := c.ToPixel(cx, cy)
	c.setPixel(px, py, col.packed())
}

// FillSector draws the pie slice of a disk between angles start and end
// (radians, canvas orientation, end > start).
func (c *Canvas) FillSector(cx, cy, r, start, end float64, col RGB) {
	r2 := r * r
	span := end - start
	c.fillWhere(cx, cy, r, col, func(dx, dy float64) bool {
		if dx*dx+dy*dy > r2 {
			return false
		}
		d := math.Mod(math.Atan2(dy, dx)-start, 2*math.Pi)
		if d < 0 {
			d += 2 * math.Pi
		}
		return d <= span
	})
}

// StrokeCircle draws a ring of the given width just inside radius r.
func (c *Canvas) StrokeCircle(cx, cy, r, width float64, col RGB) {
	outer := r * r
	in := math.Max(r-width, 0)
	inner := in * in
	c.fillWhere(cx, cy, r, col, func(dx, dy float64) bool {
		d := dx*dx + dy*dy
		return d <= outer && d >= inner
	})
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 Point, col RGB) {
	p := col.packed()
	x1, y1 := c.ToPixel(p1.X, p1.Y)
	x2, y2 := c.ToPixel(p2.X, p2.Y)

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, p)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render outputs the whole canvas using coloured half-block characters.
// Every cell is written since colours change under moving objects; SGR
// sequences are only emitted when the colour pair changes.
func (c *Canvas) Render(w io.Writer) {
	buf := c.renderBuf[:0]

	for row := 0; row < c.termHeight; row++ {
		buf = append(buf, "\033["...)
		buf = strconv.AppendInt(buf, int64(row+1+c.offsetRow), 10)
		buf = append(buf, ';')
		buf = strconv.AppendInt(buf, int64(1+c.offsetCol), 10)
		buf = append(buf, 'H')

		top := c.pixels[row*2*c.termWidth : (row*2+1)*c.termWidth]
		bottom := c.pixels[(row*2+1)*c.termWidth : (row*2+2)*c.termWidth]

		// lastFg/lastBg track the active SGR state within the row; 0 is the default colour.
		var lastFg, lastBg uint32
		buf = append(buf, ColorReset...)

		for col := 0; col < c.termWidth; col++ {
			t, b := top[col], bottom[col]

			var fg, bg uint32
			ch := ' '
			switch {
			case t != 0:
				fg, bg, ch = t, b, BlockUpperHalf
			case b != 0:
				fg, ch = b, BlockLowerHalf
			}

			if fg != lastFg || bg != lastBg {
				buf = appendStyle(buf, fg, bg)
				lastFg, lastBg = fg, bg
			}
			buf = appendRune(buf, ch)
		}
	}
	buf = append(buf, ColorReset...)
	c.renderBuf = buf

	// Write output in chunks for optimal network flow
	for data := buf; len(data) > 0; {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		w.Write(chunk)
		data = data[len(chunk):]
	}
}

func appendStyle(buf []byte, fg, bg uint32) []byte {
	buf = append(buf, "\033[0"...)
	if fg != 0 {
		buf = append(buf, ';')
		buf = unpack(fg).appendSGR(buf, false)
	}
	if bg != 0 {
		buf = append(buf, ';')
		buf = unpack(bg).appendSGR(buf, true)
	}
	return append(buf, 'm')
}

func appendRune(buf []byte, r rune) []byte {
	if r < 0x80 {
		return append(buf, byte(r))
	}
	return append(buf, string(r)...)
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	line := strings.Repeat("─", c.termWidth)

	if hasV {
		if hasH {
			fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐", top, left, line)
			fmt.Fprintf(&buf, "\033[%d;%dH└%s┘", bottom, left, line)
		} else {
			fmt.Fprintf(&buf, "\033[%d;%dH%s", top, c.offsetCol+1, line)
			fmt.Fprintf(&buf, "\033[%d;%dH%s", bottom, c.offsetCol+1, line)
		}
	}

	if hasH {
		startRow, endRow := top+1, bottom
		if !hasV {
			startRow = c.offsetRow + 1
			endRow = c.offsetRow + c.termHeight + 1
		}
		for row := startRow; row < endRow; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}

	io.WriteString(w, buf.String())
}

// LogicalWidth returns the logical width.
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height.
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to a 1-based canvas cell (col, row).
// Useful for placing text overlays at positions matching canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px, py := c.ToPixel(x, y)
	return px + 1, py/2 + 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
