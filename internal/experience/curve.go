package experience

import (
	"math"
)

// Curve maps between accumulated experience and levels. The required-XP
// shape is a tuning parameter, so it is pluggable; every implementation is
// scaled by the job class experience_multiplier.
type Curve interface {
	// RequiredForLevel returns the cumulative experience required to reach
	// the given level from level 1. Level 1 requires 0.
	RequiredForLevel(level int, multiplier float64) int64

	// LevelForExperience inverts RequiredForLevel, clamped to
	// [1, maxLevel].
	LevelForExperience(exp int64, multiplier float64, maxLevel int) int
}

// PowerCurve requires BaseXP * level^Exponent experience to advance from a
// level to the next, before the job class multiplier.
type PowerCurve struct {
	BaseXP   float64
	Exponent float64
}

// DefaultCurve returns the standard levelling curve.
func DefaultCurve() PowerCurve {
	return PowerCurve{BaseXP: DefaultBaseXP, Exponent: DefaultLevelExponent}
}

// RequiredForLevel returns cumulative XP required to reach level from level 1.
func (c PowerCurve) RequiredForLevel(level int, multiplier float64) int64 {
	if level <= 1 {
		return 0
	}

	cumulative := int64(0)
	for i := 1; i < level; i++ {
		cumulative += c.stepCost(i, multiplier)
	}
	return cumulative
}

// LevelForExperience returns the level implied by total experience, clamped
// to [1, maxLevel]. Experience keeps accumulating past the max-level
// threshold, but the reported level does not.
func (c PowerCurve) LevelForExperience(exp int64, multiplier float64, maxLevel int) int {
	if exp <= 0 {
		return 1
	}

	level := 1
	cumulative := int64(0)
	for level < maxLevel {
		next := cumulative + c.stepCost(level, multiplier)
		if next > exp {
			break
		}
		cumulative = next
		level++
	}
	return level
}

// stepCost is the XP needed to advance from level to level+1.
func (c PowerCurve) stepCost(level int, multiplier float64) int64 {
	if multiplier <= 0 {
		multiplier = 1
	}
	return int64(math.Floor(c.BaseXP * math.Pow(float64(level), c.Exponent) * multiplier))
}

// Progress returns the fraction of the way from the current level threshold
// to the next, clamped to [0,1]. At maxLevel progress is pinned to 1.
func Progress(curve Curve, exp int64, multiplier float64, level, maxLevel int) float64 {
	if level >= maxLevel {
		return 1.0
	}

	at := curve.RequiredForLevel(level, multiplier)
	next := curve.RequiredForLevel(level+1, multiplier)
	if next <= at {
		return 1.0
	}

	progress := float64(exp-at) / float64(next-at)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}
