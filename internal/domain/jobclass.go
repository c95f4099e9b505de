package domain

import "time"

// JobType categorizes job classes by their place in the class progression.
type JobType string

const (
	JobTypeBasic    JobType = "basic"
	JobTypeAdvanced JobType = "advanced"
	JobTypeSpecial  JobType = "special"
)

// ValidJobTypes is the set of accepted job_type values.
var ValidJobTypes = map[JobType]bool{
	JobTypeBasic:    true,
	JobTypeAdvanced: true,
	JobTypeSpecial:  true,
}

// JobClass is a designer-authored class template. It defines level-1 base
// stats and per-level growth rates; derived stats for any level come from the
// stat curve, never from persisted history. Templates are never deleted while
// characters reference them.
type JobClass struct {
	ID                   int         `json:"id"`
	Name                 string      `json:"name"`
	JobType              JobType     `json:"job_type"`
	MaxLevel             int         `json:"max_level"`
	ExperienceMultiplier float64     `json:"experience_multiplier"`
	BaseStats            StatBlock   `json:"base_stats"`
	Multipliers          GrowthRates `json:"multipliers"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

// CharacterJobClass tracks one character's progress in one job class.
// Invariants: Level == level derived from Experience for the owning job
// class, and skill points spent never exceed skill points granted.
type CharacterJobClass struct {
	ID          int       `json:"id"`
	CharacterID string    `json:"character_id"`
	JobClassID  int       `json:"job_class_id"`
	Level       int       `json:"level"`
	Experience  int64     `json:"experience"`
	SkillPoints int       `json:"skill_points"`
	IsCurrent   bool      `json:"is_current"`
	UnlockedAt  time.Time `json:"unlocked_at"`
}

// JobClassProgress combines template and progress fields for API responses.
type JobClassProgress struct {
	JobClassID    int     `json:"job_class_id"`
	Name          string  `json:"name"`
	JobType       JobType `json:"job_type"`
	Level         int     `json:"level"`
	MaxLevel      int     `json:"max_level"`
	Experience    int64   `json:"experience"`
	ExpToNext     int64   `json:"exp_to_next_level"`
	LevelProgress float64 `json:"level_progress"`
	SkillPoints   int     `json:"skill_points"`
	IsCurrent     bool    `json:"is_current"`
}

// ExperienceGrantResult is the outcome of an administrative experience grant.
type ExperienceGrantResult struct {
	JobClassID        int     `json:"job_class_id"`
	ExperienceGained  int64   `json:"experience_gained"`
	NewExperience     int64   `json:"new_experience"`
	NewLevel          int     `json:"new_level"`
	LeveledUp         bool    `json:"leveled_up"`
	SkillPointsGained int     `json:"skill_points_gained"`
	ExpToNextLevel    int64   `json:"exp_to_next_level"`
	LevelProgress     float64 `json:"level_progress"`
}

// JobClassUsage reports how many characters reference a job class, used to
// warn designers before destructive template edits.
type JobClassUsage struct {
	JobClassID     int `json:"job_class_id"`
	CharacterCount int `json:"character_count"`
	CurrentCount   int `json:"current_count"`
}
