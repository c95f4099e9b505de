package domain

// StatBlock holds the eight core stats shared by job class templates and
// derived character state. For templates the values are level-1 bases or
// per-level growth rates; for characters they are derived values at the
// current level.
type StatBlock struct {
	HP           int `json:"hp"`
	MP           int `json:"mp"`
	Attack       int `json:"attack"`
	Defense      int `json:"defense"`
	MagicAttack  int `json:"magic_attack"`
	MagicDefense int `json:"magic_defense"`
	Agility      int `json:"agility"`
	Luck         int `json:"luck"`
}

// GrowthRates mirrors StatBlock with decimal per-level growth factors.
type GrowthRates struct {
	HP           float64 `json:"hp"`
	MP           float64 `json:"mp"`
	Attack       float64 `json:"attack"`
	Defense      float64 `json:"defense"`
	MagicAttack  float64 `json:"magic_attack"`
	MagicDefense float64 `json:"magic_defense"`
	Agility      float64 `json:"agility"`
	Luck         float64 `json:"luck"`
}

// StatName identifies a single stat, used by stat-boost skill effects.
type StatName string

const (
	StatHP           StatName = "hp"
	StatMP           StatName = "mp"
	StatAttack       StatName = "attack"
	StatDefense      StatName = "defense"
	StatMagicAttack  StatName = "magic_attack"
	StatMagicDefense StatName = "magic_defense"
	StatAgility      StatName = "agility"
	StatLuck         StatName = "luck"
)

// ValidStatNames is the set of stat names accepted in skill effects.
var ValidStatNames = map[StatName]bool{
	StatHP:           true,
	StatMP:           true,
	StatAttack:       true,
	StatDefense:      true,
	StatMagicAttack:  true,
	StatMagicDefense: true,
	StatAgility:      true,
	StatLuck:         true,
}
