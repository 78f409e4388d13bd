package input

import (
	"math"
	"testing"

	"github.com/tomz197/braindots/internal/object"
)

type fakeTarget struct {
	playing  bool
	tutorial bool
	over     bool
	width    float64
	left     *object.Wheel
	right    *object.Wheel
}

func newFakeTarget() *fakeTarget {
	screen := object.NewScreen(800, 600)
	return &fakeTarget{
		playing: true,
		width:   800,
		left:    object.NewWheel(object.SideLeft, screen),
		right:   object.NewWheel(object.SideRight, screen),
	}
}

func (f *fakeTarget) Playing() bool         { return f.playing }
func (f *fakeTarget) TutorialVisible() bool { return f.tutorial }
func (f *fakeTarget) DismissTutorial()      { f.tutorial = false }
func (f *fakeTarget) Over() bool            { return f.over }
func (f *fakeTarget) Width() float64        { return f.width }
func (f *fakeTarget) Wheel(side object.Side) *object.Wheel {
	if side == object.SideLeft {
		return f.left
	}
	return f.right
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-12 }

func TestMouseDragRotatesOppositeDirections(t *testing.T) {
	target := newFakeTarget()
	m := NewMapper(target)
	left0, right0 := target.left.Rotation, target.right.Rotation

	m.MouseDown(Point{X: 100, Y: 300})
	m.MouseMove(Point{X: 100, Y: 310})
	if !near(target.left.Rotation, left0+RotationStep) {
		t.Errorf("left after drag down = %f, want %f", target.left.Rotation, left0+RotationStep)
	}
	m.MouseMove(Point{X: 100, Y: 305})
	if !near(target.left.Rotation, left0) {
		t.Errorf("left after drag up = %f, want %f", target.left.Rotation, left0)
	}
	m.MouseUp(Point{X: 100, Y: 305})

	m.MouseDown(Point{X: 700, Y: 300})
	m.MouseMove(Point{X: 700, Y: 320})
	if !near(target.right.Rotation, right0-RotationStep) {
		t.Errorf("right after drag down = %f, want %f", target.right.Rotation, right0-RotationStep)
	}
	m.MouseMove(Point{X: 700, Y: 280})
	if !near(target.right.Rotation, right0) {
		t.Errorf("right after drag up = %f, want %f", target.right.Rotation, right0)
	}
	if !near(target.left.Rotation, left0) {
		t.Error("right-half drag moved the left wheel")
	}
}

func TestMouseZeroDeltaAndMidline(t *testing.T) {
	target := newFakeTarget()
	m := NewMapper(target)
	left0 := target.left.Rotation

	m.MouseDown(Point{X: 100, Y: 300})
	m.MouseMove(Point{X: 120, Y: 300})
	m.MouseMove(Point{X: 400, Y: 500})
	if target.left.Rotation != left0 {
		t.Errorf("rotation changed to %f without vertical motion off the midline", target.left.Rotation)
	}
}

func TestMouseMoveNeedsButton(t *testing.T) {
	target := newFakeTarget()
	m := NewMapper(target)
	left0 := target.left.Rotation

	m.MouseDown(Point{X: 100, Y: 300})
	m.MouseUp(Point{X: 100, Y: 300})
	m.MouseMove(Point{X: 100, Y: 400})
	if target.left.Rotation != left0 {
		t.Error("move after release rotated the wheel")
	}
	if m.Active(object.SideLeft) {
		t.Error("left still active after release")
	}
}

func TestTutorialSwallowsGestureStart(t *testing.T) {
	target := newFakeTarget()
	target.tutorial = true
	m := NewMapper(target)
	left0 := target.left.Rotation

	m.MouseDown(Point{X: 100, Y: 300})
	if target.tutorial {
		t.Fatal("tutorial not dismissed")
	}
	if m.Active(object.SideLeft) {
		t.Error("swallowed gesture activated the left channel")
	}
	m.MouseMove(Point{X: 100, Y: 350})
	if target.left.Rotation != left0 {
		t.Error("swallowed gesture rotated the wheel")
	}
}

func TestGameOverIgnoresInput(t *testing.T) {
	target := newFakeTarget()
	m := NewMapper(target)
	m.MouseDown(Point{X: 100, Y: 300})
	target.over = true
	left0 := target.left.Rotation

	m.MouseMove(Point{X: 100, Y: 350})
	m.Nudge(object.SideLeft, true)
	m.TouchStart(1, Point{X: 100, Y: 300})
	m.TouchMove(1, Point{X: 100, Y: 320})

	if target.left.Rotation != left0 {
		t.Error("input rotated a wheel after game over")
	}
}

func TestNotPlayingIgnoresInput(t *testing.T) {
	target := newFakeTarget()
	target.playing = false
	target.tutorial = true
	m := NewMapper(target)

	m.MouseDown(Point{X: 100, Y: 300})
	if !target.tutorial {
		t.Error("tutorial dismissed outside a run")
	}
}

func TestMultiTouchChannelsAreIndependent(t *testing.T) {
	target := newFakeTarget()
	m := NewMapper(target)
	left0, right0 := target.left.Rotation, target.right.Rotation

	m.TouchStart(1, Point{X: 100, Y: 300})
	m.TouchStart(2, Point{X: 700, Y: 300})

	m.TouchMove(1, Point{X: 100, Y: 320}) // left down
	m.TouchMove(2, Point{X: 700, Y: 280}) // right up
	m.TouchMove(1, Point{X: 100, Y: 340}) // left down again

	if !near(target.left.Rotation, left0+2*RotationStep) {
		t.Errorf("left = %f, want %f", target.left.Rotation, left0+2*RotationStep)
	}
	if !near(target.right.Rotation, right0+RotationStep) {
		t.Errorf("right = %f, want %f", target.right.Rotation, right0+RotationStep)
	}

	// A touch that wanders across the midline keeps driving the wheel it started on.
	m.TouchMove(1, Point{X: 600, Y: 360})
	if !near(target.left.Rotation, left0+3*RotationStep) || !near(target.right.Rotation, right0+RotationStep) {
		t.Error("touch switched wheels after crossing the midline")
	}
}

func TestTouchEndClearsOnlyWhenAllLifted(t *testing.T) {
	target := newFakeTarget()
	m := NewMapper(target)

	m.TouchStart(1, Point{X: 100, Y: 300})
	m.TouchStart(2, Point{X: 700, Y: 300})

	m.TouchEnd(1)
	if !m.Active(object.SideLeft) || !m.Active(object.SideRight) {
		t.Error("channels cleared while a touch remains")
	}
	m.TouchEnd(2)
	if m.Active(object.SideLeft) || m.Active(object.SideRight) || m.Touches() != 0 {
		t.Error("channels still active after all touches ended")
	}

	left0 := target.left.Rotation
	m.TouchMove(1, Point{X: 100, Y: 400})
	if target.left.Rotation != left0 {
		t.Error("ended touch still rotates")
	}
}

func TestNudge(t *testing.T) {
	target := newFakeTarget()
	target.tutorial = true
	m := NewMapper(target)
	right0 := target.right.Rotation

	m.Nudge(object.SideRight, true)
	if target.tutorial || target.right.Rotation != right0 {
		t.Fatal("first nudge should only dismiss the tutorial")
	}

	m.Nudge(object.SideRight, true)
	if !near(target.right.Rotation, right0-RotationStep) {
		t.Errorf("right = %f, want %f", target.right.Rotation, right0-RotationStep)
	}
}

func TestToCanvas(t *testing.T) {
	rect := Rect{X: 10, Y: 20, Width: 400, Height: 300}
	got := ToCanvas(Point{X: 210, Y: 170}, rect, 800, 900)
	if got.X != 400 || got.Y != 450 {
		t.Errorf("ToCanvas = %+v, want {400 450}", got)
	}

	// Degenerate rectangles fall back to an unscaled offset.
	got = ToCanvas(Point{X: 15, Y: 25}, Rect{X: 10, Y: 20}, 800, 900)
	if got.X != 5 || got.Y != 5 {
		t.Errorf("degenerate ToCanvas = %+v, want {5 5}", got)
	}
}
