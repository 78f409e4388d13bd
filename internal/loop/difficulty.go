package loop

import "github.com/tomz197/braindots/internal/loop/config"

// levelTable holds the difficulty for each band of 10 points above 10:
// 11-20, 21-30, ... The 81-90 and 91-100 bands share 1.95.
var levelTable = [...]float64{1.6, 1.65, 1.7, 1.75, 1.8, 1.85, 1.9, 1.95, 1.95, 2.0, 2.05, 2.1, 2.15}

// maxLevel applies to every score beyond the table.
const maxLevel = 2.2

// LevelForScore returns the difficulty multiplier for score.
func LevelForScore(score int) float64 {
	if score <= 10 {
		return config.InitialLevel
	}
	band := (score - 11) / 10
	if band >= len(levelTable) {
		return maxLevel
	}
	return levelTable[band]
}

// shouldSpawn reports whether the spawn interval has elapsed. The interval
// shrinks with the square of the level.
func shouldSpawn(frames int, level float64) bool {
	return float64(frames)*level >= config.SpawnBase/level
}
