package object

import (
	"math"
	"testing"
)

func TestHubAdvanceWraps(t *testing.T) {
	h := NewHub(NewScreen(100, 100))
	h.Advance()
	if h.Rotation != HubSpin {
		t.Fatalf("rotation after one tick = %f, want %f", h.Rotation, HubSpin)
	}

	h.Rotation = 2*math.Pi - HubSpin/2
	h.Advance()
	if h.Rotation != 0 {
		t.Errorf("rotation past 2π = %f, want 0", h.Rotation)
	}
}

func TestGeometryFromScreen(t *testing.T) {
	screen := NewScreen(1600, 800)
	hub := NewHub(screen)
	left := NewWheel(SideLeft, screen)
	right := NewWheel(SideRight, screen)

	if hub.X != 800 || hub.Y != 400 || hub.Radius != 50 {
		t.Errorf("hub = %+v", hub)
	}
	if left.X != 0 || left.Y != 400 || left.Radius != 100 || left.Rotation != LeftWheelRotation {
		t.Errorf("left wheel = %+v", left)
	}
	if right.X != 1600 || right.Y != 400 || right.Radius != 100 || right.Rotation != RightWheelRotation {
		t.Errorf("right wheel = %+v", right)
	}

	right.Rotate(1)
	right.Place(NewScreen(800, 400))
	if right.X != 800 || right.Radius != 50 || right.Rotation != RightWheelRotation+1 {
		t.Errorf("placed right wheel = %+v", right)
	}
}

func TestNewScreenClampsZero(t *testing.T) {
	s := NewScreen(0, -5)
	if s.Width != 1 || s.Height != 1 {
		t.Errorf("NewScreen(0,-5) = %+v, want 1x1", s)
	}
}

func TestObstacleMovesAndLeaves(t *testing.T) {
	ctx := UpdateContext{Screen: NewScreen(100, 100)}

	left := NewObstacle(10, 50, Red, 4, SideLeft)
	remove, _ := left.Update(ctx)
	if left.X != 5 || remove {
		t.Fatalf("left obstacle x=%f remove=%v", left.X, remove)
	}
	left.X = -3
	if remove, _ = left.Update(ctx); !remove {
		t.Errorf("left obstacle at x=%f not removed", left.X)
	}

	right := NewObstacle(98, 50, Red, 4, SideRight)
	if remove, _ = right.Update(ctx); remove {
		t.Errorf("right obstacle at x=%f removed early", right.X)
	}
	right.X = 100
	if remove, _ = right.Update(ctx); !remove {
		t.Errorf("right obstacle at x=%f not removed", right.X)
	}
}

func sectorContains(s Sector, angle float64) bool {
	d := math.Mod(angle-s.Start, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	return d < s.End-s.Start
}

func TestSectorsShowFacingColor(t *testing.T) {
	for _, side := range []Side{SideLeft, SideRight} {
		w := NewWheel(side, NewScreen(400, 300))
		for i := 0; i < 96; i++ {
			w.Rotation = float64(i)*math.Pi/24 + 0.013
			facing := w.facingAngle()
			found := false
			for _, s := range w.Sectors() {
				if sectorContains(s, facing) {
					found = true
					if s.Color != w.Facing() {
						t.Fatalf("%s rotation %f: facing sector %s, Facing() %s",
							side, w.Rotation, s.Color.Name, w.Facing().Name)
					}
				}
			}
			if !found {
				t.Fatalf("%s rotation %f: no sector covers the facing direction", side, w.Rotation)
			}
		}
	}
}
