package draw

import (
	"strconv"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an opaque 24-bit colour. It satisfies image/color.Color so the same
// value can feed both the terminal canvas and image-based renderers.
type RGB struct {
	R, G, B uint8
}

// RGBA implements color.Color.
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// packed encodes the colour for the pixel buffer. Zero is reserved for "unset",
// so the high byte is always 1.
func (c RGB) packed() uint32 {
	return 1<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func unpack(p uint32) RGB {
	return RGB{R: uint8(p >> 16), G: uint8(p >> 8), B: uint8(p)}
}

// appendSGR appends the truecolor parameters "38;2;r;g;b" (or 48 for background).
func (c RGB) appendSGR(buf []byte, background bool) []byte {
	if background {
		buf = append(buf, "48;2;"...)
	} else {
		buf = append(buf, "38;2;"...)
	}
	buf = strconv.AppendUint(buf, uint64(c.R), 10)
	buf = append(buf, ';')
	buf = strconv.AppendUint(buf, uint64(c.G), 10)
	buf = append(buf, ';')
	buf = strconv.AppendUint(buf, uint64(c.B), 10)
	return buf
}

// Foreground returns the SGR sequence selecting c as text colour.
func (c RGB) Foreground() string {
	buf := c.appendSGR([]byte("\033["), false)
	return string(append(buf, 'm'))
}

// ColorReset restores the terminal's default colours.
const ColorReset = "\033[0m"

var hexCache sync.Map // string -> RGB

// Hex parses a "#RRGGBB" colour. Invalid input yields white.
// Results are cached since the game only ever uses a handful of colours.
func Hex(s string) RGB {
	if v, ok := hexCache.Load(s); ok {
		return v.(RGB)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		c = colorful.Color{R: 1, G: 1, B: 1}
	}
	r, g, b := c.Clamped().RGB255()
	rgb := RGB{R: r, G: g, B: b}
	hexCache.Store(s, rgb)
	return rgb
}

// Shade scales c toward black. factor 1 returns c unchanged, 0 returns black.
func Shade(c RGB, factor float64) RGB {
	if factor >= 1 {
		return c
	}
	if factor < 0 {
		factor = 0
	}
	base := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	r, g, b := base.BlendRgb(colorful.Color{}, 1-factor).Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}
