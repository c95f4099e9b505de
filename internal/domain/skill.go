package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// SkillLineType distinguishes weapon mastery lines from job-specific lines.
type SkillLineType string

const (
	SkillLineWeapon      SkillLineType = "weapon"
	SkillLineJobSpecific SkillLineType = "job_specific"
)

// NodeType discriminates the effect payload carried by a skill node.
type NodeType string

const (
	NodeStatBoost NodeType = "stat_boost"
	NodeTechnique NodeType = "technique"
	NodePassive   NodeType = "passive"
)

// SkillLine is a named group of skill nodes, attached to one or more job
// classes. UnlockLevel is the job level at which the line becomes visible.
type SkillLine struct {
	ID            int           `json:"id"`
	Name          string        `json:"name"`
	SkillLineType SkillLineType `json:"skill_line_type"`
	UnlockLevel   int           `json:"unlock_level"`
	JobClassIDs   []int         `json:"job_class_ids"`
	Nodes         []SkillNode   `json:"nodes,omitempty"`
}

// NodePosition is tree-layout metadata. It is stored and echoed for the
// editor but never interpreted by game logic.
type NodePosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// SkillNode is an individually unlockable perk costing skill points.
type SkillNode struct {
	ID             int          `json:"id"`
	SkillLineID    int          `json:"skill_line_id"`
	Name           string       `json:"name"`
	NodeType       NodeType     `json:"node_type"`
	PointsRequired int          `json:"points_required"`
	Effect         NodeEffect   `json:"effects"`
	Position       NodePosition `json:"position"`
	Active         bool         `json:"active"`
}

// StatBoostEffect raises one stat by a flat value.
type StatBoostEffect struct {
	Stat  StatName `json:"stat"`
	Value int      `json:"value"`
}

// TechniqueEffect grants a named active technique.
type TechniqueEffect struct {
	Name             string  `json:"name"`
	DamageMultiplier float64 `json:"damage_multiplier"`
}

// PassiveEffect grants a named passive modifier.
type PassiveEffect struct {
	Effect string  `json:"effect"`
	Value  float64 `json:"value"`
}

// NodeEffect is the tagged union of skill node effects. Exactly one variant
// is non-nil, matching the node's NodeType.
type NodeEffect struct {
	Type      NodeType         `json:"type"`
	StatBoost *StatBoostEffect `json:"-"`
	Technique *TechniqueEffect `json:"-"`
	Passive   *PassiveEffect   `json:"-"`
}

// Describe renders the effect as a human-readable line for API responses.
func (e NodeEffect) Describe() string {
	switch e.Type {
	case NodeStatBoost:
		if e.StatBoost != nil {
			return fmt.Sprintf("%s +%d", e.StatBoost.Stat, e.StatBoost.Value)
		}
	case NodeTechnique:
		if e.Technique != nil {
			return fmt.Sprintf("technique %s (x%.2f)", e.Technique.Name, e.Technique.DamageMultiplier)
		}
	case NodePassive:
		if e.Passive != nil {
			return fmt.Sprintf("passive %s (%.2f)", e.Passive.Effect, e.Passive.Value)
		}
	}
	return string(e.Type)
}

// Equal reports whether two effects have the same variant and payload.
func (e NodeEffect) Equal(other NodeEffect) bool {
	if e.Type != other.Type {
		return false
	}
	switch e.Type {
	case NodeStatBoost:
		return effectPayloadEqual(e.StatBoost, other.StatBoost)
	case NodeTechnique:
		return effectPayloadEqual(e.Technique, other.Technique)
	case NodePassive:
		return effectPayloadEqual(e.Passive, other.Passive)
	}
	return true
}

func effectPayloadEqual[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Validate checks that the populated variant matches the discriminant.
func (e NodeEffect) Validate() error {
	switch e.Type {
	case NodeStatBoost:
		if e.StatBoost == nil {
			return fmt.Errorf("%w: stat_boost effect missing payload", ErrInvalidInput)
		}
		if !ValidStatNames[e.StatBoost.Stat] {
			return fmt.Errorf("%w: unknown stat %q", ErrInvalidInput, e.StatBoost.Stat)
		}
	case NodeTechnique:
		if e.Technique == nil {
			return fmt.Errorf("%w: technique effect missing payload", ErrInvalidInput)
		}
	case NodePassive:
		if e.Passive == nil {
			return fmt.Errorf("%w: passive effect missing payload", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unknown node type %q", ErrInvalidInput, e.Type)
	}
	return nil
}

type nodeEffectJSON struct {
	Type             NodeType `json:"type"`
	Stat             StatName `json:"stat,omitempty"`
	Value            *float64 `json:"value,omitempty"`
	Name             string   `json:"name,omitempty"`
	DamageMultiplier *float64 `json:"damage_multiplier,omitempty"`
	Effect           string   `json:"effect,omitempty"`
}

// MarshalJSON flattens the active variant into a single object keyed by the
// "type" discriminant, the shape the admin frontend consumes.
func (e NodeEffect) MarshalJSON() ([]byte, error) {
	out := nodeEffectJSON{Type: e.Type}
	switch e.Type {
	case NodeStatBoost:
		if e.StatBoost != nil {
			v := float64(e.StatBoost.Value)
			out.Stat = e.StatBoost.Stat
			out.Value = &v
		}
	case NodeTechnique:
		if e.Technique != nil {
			out.Name = e.Technique.Name
			out.DamageMultiplier = &e.Technique.DamageMultiplier
		}
	case NodePassive:
		if e.Passive != nil {
			out.Effect = e.Passive.Effect
			out.Value = &e.Passive.Value
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON rebuilds the variant from the discriminant field.
func (e *NodeEffect) UnmarshalJSON(data []byte) error {
	var in nodeEffectJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*e = NodeEffect{Type: in.Type}
	switch in.Type {
	case NodeStatBoost:
		boost := &StatBoostEffect{Stat: in.Stat}
		if in.Value != nil {
			boost.Value = int(*in.Value)
		}
		e.StatBoost = boost
	case NodeTechnique:
		tech := &TechniqueEffect{Name: in.Name}
		if in.DamageMultiplier != nil {
			tech.DamageMultiplier = *in.DamageMultiplier
		}
		e.Technique = tech
	case NodePassive:
		passive := &PassiveEffect{Effect: in.Effect}
		if in.Value != nil {
			passive.Value = *in.Value
		}
		e.Passive = passive
	default:
		return fmt.Errorf("%w: unknown node type %q", ErrInvalidInput, in.Type)
	}
	return nil
}

// CharacterSkillInvestment marks a node as unlocked for a character.
type CharacterSkillInvestment struct {
	CharacterID string    `json:"character_id"`
	SkillNodeID int       `json:"skill_node_id"`
	UnlockedAt  time.Time `json:"unlocked_at"`
}

// NodeUnlockResult is the outcome of a successful node unlock.
type NodeUnlockResult struct {
	SkillNodeID     int    `json:"skill_node_id"`
	PointsSpent     int    `json:"points_spent"`
	PointsRemaining int    `json:"points_remaining"`
	Effect          string `json:"effect"`
}

// LineInvestment is one character's unlock of one node in a skill line,
// joined with the node cost. Raw input for investment summaries.
type LineInvestment struct {
	CharacterID   string    `json:"character_id"`
	CharacterName string    `json:"character_name"`
	SkillNodeID   int       `json:"skill_node_id"`
	PointsSpent   int       `json:"points_spent"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}

// InvestorRank is one row of a skill line's top-investor ranking.
type InvestorRank struct {
	CharacterID   string    `json:"character_id"`
	CharacterName string    `json:"character_name"`
	PointsSpent   int       `json:"points_spent"`
	FirstUnlockAt time.Time `json:"first_unlock_at"`
}

// InvestmentSummary aggregates all characters' investments in one skill line.
type InvestmentSummary struct {
	SkillLineID    int            `json:"skill_line_id"`
	TotalPoints    int            `json:"total_points"`
	CharacterCount int            `json:"character_count"`
	AveragePoints  float64        `json:"average_points"`
	TopInvestors   []InvestorRank `json:"top_investors"`
}
