package experience

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequiredForLevel(t *testing.T) {
	curve := DefaultCurve()

	tests := []struct {
		name       string
		level      int
		multiplier float64
		expected   int64
	}{
		{"level 1 is free", 1, 1.0, 0},
		{"level 0 is free", 0, 1.0, 0},
		{"level 2", 2, 1.0, 100},
		{"level 3", 3, 1.0, 382},          // 100 + floor(100 * 2^1.5)
		{"level 2 doubled", 2, 2.0, 200},
		{"level 2 half rate", 2, 0.5, 50},
		{"zero multiplier treated as 1", 2, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, curve.RequiredForLevel(tt.level, tt.multiplier))
		})
	}
}

func TestLevelForExperienceInvertsRequiredForLevel(t *testing.T) {
	curve := DefaultCurve()

	for _, mult := range []float64{0.5, 1.0, 1.5, 3.0} {
		for level := 1; level <= 30; level++ {
			threshold := curve.RequiredForLevel(level, mult)
			assert.Equal(t, level, curve.LevelForExperience(threshold, mult, 99),
				"exact threshold should reach level %d at mult %v", level, mult)

			if level > 1 {
				assert.Equal(t, level-1, curve.LevelForExperience(threshold-1, mult, 99),
					"one XP short should stay at level %d at mult %v", level-1, mult)
			}
		}
	}
}

func TestLevelForExperienceClampsAtMaxLevel(t *testing.T) {
	curve := DefaultCurve()

	huge := curve.RequiredForLevel(50, 1.0) * 10
	assert.Equal(t, 10, curve.LevelForExperience(huge, 1.0, 10))
	assert.Equal(t, 1, curve.LevelForExperience(-5, 1.0, 10))
	assert.Equal(t, 1, curve.LevelForExperience(0, 1.0, 10))
}

func TestProgress(t *testing.T) {
	curve := DefaultCurve()

	assert.Equal(t, 0.0, Progress(curve, 0, 1.0, 1, 99))
	assert.InDelta(t, 0.5, Progress(curve, 50, 1.0, 1, 99), 0.001)
	assert.Equal(t, 1.0, Progress(curve, 12345, 1.0, 10, 10), "max level pins progress to 1")

	// Stale level input below the true threshold clamps instead of going negative.
	assert.Equal(t, 0.0, Progress(curve, 0, 1.0, 2, 99))
}
