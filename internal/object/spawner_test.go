package object

import (
	"math/rand"
	"testing"
)

// fixedRandom replays a fixed sequence of values.
type fixedRandom struct {
	values []float64
	i      int
}

func (f *fixedRandom) Float64() float64 {
	v := f.values[f.i%len(f.values)]
	f.i++
	return v
}

func TestSpawnUsesRandomDraws(t *testing.T) {
	screen := NewScreen(800, 440)
	hub := NewHub(screen)
	// colour index 2 (yellow), size index 1 (/33), side left (> 0.5)
	sp := NewObstacleSpawner(&fixedRandom{values: []float64{0.6, 0.5, 0.9}})

	ob := sp.Spawn(0, screen, hub)

	if ob.Color != Yellow {
		t.Errorf("color = %s, want yellow", ob.Color.Name)
	}
	if want := 440.0 / 33; ob.Size != want {
		t.Errorf("size = %f, want %f", ob.Size, want)
	}
	if ob.Side != SideLeft {
		t.Errorf("side = %s, want left", ob.Side)
	}
	if ob.X != hub.X || ob.Y != hub.Y {
		t.Errorf("spawned at (%f,%f), want hub centre (%f,%f)", ob.X, ob.Y, hub.X, hub.Y)
	}
	if ob.Alpha != 1 || ob.Resolved {
		t.Errorf("new obstacle alpha=%f resolved=%v", ob.Alpha, ob.Resolved)
	}
}

func TestSpawnFlipsSideAboveTen(t *testing.T) {
	screen := NewScreen(800, 600)
	hub := NewHub(screen)

	tests := []struct {
		score int
		draw  float64
		want  Side
	}{
		{score: 10, draw: 0.9, want: SideLeft},
		{score: 10, draw: 0.1, want: SideRight},
		{score: 11, draw: 0.9, want: SideRight},
		{score: 11, draw: 0.1, want: SideLeft},
		{score: 80, draw: 0.9, want: SideRight},
	}

	for _, tt := range tests {
		sp := NewObstacleSpawner(&fixedRandom{values: []float64{0, 0, tt.draw}})
		ob := sp.Spawn(tt.score, screen, hub)
		if ob.Side != tt.want {
			t.Errorf("score %d draw %f: side = %s, want %s", tt.score, tt.draw, ob.Side, tt.want)
		}
	}
}

func TestSpawnCoversAllColorsAndSizes(t *testing.T) {
	screen := NewScreen(660, 880)
	hub := NewHub(screen)
	sp := NewObstacleSpawner(rand.New(rand.NewSource(7)))

	colors := map[string]bool{}
	sizes := map[float64]bool{}
	for i := 0; i < 500; i++ {
		ob := sp.Spawn(0, screen, hub)
		colors[ob.Color.Name] = true
		sizes[ob.Size] = true
	}

	if len(colors) != 4 {
		t.Errorf("saw %d colours, want 4", len(colors))
	}
	for _, d := range sizeDivisors {
		if !sizes[660/d] {
			t.Errorf("size tier 660/%v never spawned", d)
		}
	}
}

func TestPickClampsTopOfRange(t *testing.T) {
	sp := NewObstacleSpawner(&fixedRandom{values: []float64{1}})
	if got := sp.pick(4); got != 3 {
		t.Errorf("pick(4) with 1.0 = %d, want 3", got)
	}
}
