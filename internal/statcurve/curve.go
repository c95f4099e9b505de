// Package statcurve derives character stat blocks from job class templates.
// The derivation is pure: any level can be computed on demand, both for
// "preview at level N" screens and for current character state.
package statcurve

import (
	"math"

	"github.com/harukigames/gamecore/internal/domain"
)

// DeriveStat computes a single stat at the given level:
// floor(base + multiplier*(level-1)). Levels below 1 are treated as level 1.
func DeriveStat(base int, multiplier float64, level int) int {
	if level < 1 {
		level = 1
	}
	return int(math.Floor(float64(base) + multiplier*float64(level-1)))
}

// DeriveStats computes the full eight-stat block at the given level.
// For non-negative multipliers the result is componentwise non-decreasing in
// level.
func DeriveStats(base domain.StatBlock, multipliers domain.GrowthRates, level int) domain.StatBlock {
	return domain.StatBlock{
		HP:           DeriveStat(base.HP, multipliers.HP, level),
		MP:           DeriveStat(base.MP, multipliers.MP, level),
		Attack:       DeriveStat(base.Attack, multipliers.Attack, level),
		Defense:      DeriveStat(base.Defense, multipliers.Defense, level),
		MagicAttack:  DeriveStat(base.MagicAttack, multipliers.MagicAttack, level),
		MagicDefense: DeriveStat(base.MagicDefense, multipliers.MagicDefense, level),
		Agility:      DeriveStat(base.Agility, multipliers.Agility, level),
		Luck:         DeriveStat(base.Luck, multipliers.Luck, level),
	}
}

// DeriveForJobClass computes the stat block for a job class at a level,
// clamping the level into [1, MaxLevel].
func DeriveForJobClass(jc *domain.JobClass, level int) domain.StatBlock {
	if level > jc.MaxLevel {
		level = jc.MaxLevel
	}
	return DeriveStats(jc.BaseStats, jc.Multipliers, level)
}

// LevelRow pairs a level with its derived stats, one row per requested level
// on the stats preview endpoint.
type LevelRow struct {
	Level int              `json:"level"`
	Stats domain.StatBlock `json:"stats"`
}

// DeriveRows computes stat rows for a set of levels. Levels outside
// [1, MaxLevel] are clamped, duplicates are preserved in request order.
func DeriveRows(jc *domain.JobClass, levels []int) []LevelRow {
	rows := make([]LevelRow, 0, len(levels))
	for _, lvl := range levels {
		if lvl < 1 {
			lvl = 1
		}
		if lvl > jc.MaxLevel {
			lvl = jc.MaxLevel
		}
		rows = append(rows, LevelRow{Level: lvl, Stats: DeriveStats(jc.BaseStats, jc.Multipliers, lvl)})
	}
	return rows
}
