package object

import "math/rand"

// sideFlipScore is the score above which spawned obstacles travel to the
// opposite side of the one drawn.
const sideFlipScore = 10

// Size tiers as divisors of the smaller screen dimension.
var sizeDivisors = [3]float64{22, 33, 40}

// Random is a source of uniform values in [0, 1). *rand.Rand satisfies it.
type Random interface {
	Float64() float64
}

type globalRandom struct{}

func (globalRandom) Float64() float64 { return rand.Float64() }

// ObstacleSpawner creates obstacles at the hub with random colour, size and side.
type ObstacleSpawner struct {
	rng Random
}

// NewObstacleSpawner creates a spawner. A nil rng uses the math/rand global source.
func NewObstacleSpawner(rng Random) *ObstacleSpawner {
	if rng == nil {
		rng = globalRandom{}
	}
	return &ObstacleSpawner{rng: rng}
}

// Spawn creates an obstacle at the hub centre for the given score.
// Draws colour, then size, then side from the random source.
func (s *ObstacleSpawner) Spawn(score int, screen Screen, hub *Hub) *Obstacle {
	color := Colors[s.pick(len(Colors))]
	size := screen.Min() / sizeDivisors[s.pick(len(sizeDivisors))]

	side := SideRight
	if s.rng.Float64() > 0.5 {
		side = SideLeft
	}
	if score > sideFlipScore {
		side = side.Opposite()
	}

	return NewObstacle(hub.X, hub.Y, color, size, side)
}

// pick returns an index in [0, n).
func (s *ObstacleSpawner) pick(n int) int {
	i := int(s.rng.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
