package domain

import "time"

// Character is a player character. Current HP/MP are mutable gameplay state
// bounded by the derived maxima; all other stats are derived on demand.
type Character struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CurrentHP int       `json:"current_hp"`
	CurrentMP int       `json:"current_mp"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CharacterDetail is the character read model returned by the API: the
// character row plus its current job class and the stats derived at the
// current level.
type CharacterDetail struct {
	Character    Character         `json:"character"`
	CurrentJob   *JobClassProgress `json:"current_job,omitempty"`
	DerivedStats *StatBlock        `json:"derived_stats,omitempty"`
}
