package object

import "math"

// Color is one of the four obstacle/wheel colours.
// Name is the equality key; Display is the hex colour used for rendering.
type Color struct {
	Name    string
	Value   int
	Display string
}

var (
	Red    = Color{Name: "red", Value: 1, Display: "#FF4444"}
	Blue   = Color{Name: "blue", Value: 2, Display: "#4444FF"}
	Yellow = Color{Name: "yellow", Value: 3, Display: "#FFFF44"}
	Green  = Color{Name: "green", Value: 4, Display: "#44FF44"}
)

// Colors lists every colour in spawn order.
var Colors = [4]Color{Red, Blue, Yellow, Green}

// Matches reports whether two colours are the same by name.
func (c Color) Matches(other Color) bool {
	return c.Name == other.Name
}

// NormalizeAngle folds an angle into (-π, π]. Infinities and NaN give NaN.
func NormalizeAngle(a float64) float64 {
	a = math.Remainder(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// ColorAt returns the colour a wheel on the given side presents toward the
// hub when rotated by rotation radians.
//
// Quadrant boundaries sit at -π/2, 0 and π/2. Left and right wheels see
// swapped colours for the same angle.
func ColorAt(rotation float64, side Side) Color {
	r := NormalizeAngle(rotation)
	left := side == SideLeft

	switch {
	case r >= -math.Pi/2 && r < 0:
		if left {
			return Blue
		}
		return Green
	case r >= -math.Pi && r < -math.Pi/2:
		if left {
			return Red
		}
		return Yellow
	case r >= 0 && r <= math.Pi/2:
		if left {
			return Yellow
		}
		return Red
	default:
		if left {
			return Green
		}
		return Blue
	}
}

// ColorForWheel returns the colour wheel currently faces toward the hub,
// as seen from side.
func ColorForWheel(w *Wheel, side Side) Color {
	return ColorAt(w.Rotation, side)
}
