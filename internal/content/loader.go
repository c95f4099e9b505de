package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/harukigames/gamecore/internal/domain"
	"github.com/harukigames/gamecore/internal/validation"
)

// Sentinel errors for content loading
var (
	ErrDuplicateName = errors.New("duplicate name")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Schema paths, relative to the project root
const (
	JobClassesSchemaPath = "configs/schemas/job_classes.schema.json"
	ItemsSchemaPath      = "configs/schemas/items.schema.json"
	SkillLinesSchemaPath = "configs/schemas/skill_lines.schema.json"
)

// JobClassConfig is the designer JSON file for job class templates.
type JobClassConfig struct {
	Version     string        `json:"version"`
	Description string        `json:"description"`
	JobClasses  []JobClassDef `json:"job_classes"`
}

// JobClassDef is a single job class definition in the JSON.
type JobClassDef struct {
	Name                 string             `json:"name"`
	JobType              domain.JobType     `json:"job_type"`
	MaxLevel             int                `json:"max_level"`
	ExperienceMultiplier float64            `json:"experience_multiplier"`
	BaseStats            domain.StatBlock   `json:"base_stats"`
	Multipliers          domain.GrowthRates `json:"multipliers"`
}

// ItemConfig is the designer JSON file for item templates.
type ItemConfig struct {
	Version     string    `json:"version"`
	Description string    `json:"description"`
	Items       []ItemDef `json:"items"`
}

// ItemDef is a single item definition in the JSON.
type ItemDef struct {
	Name             string              `json:"name"`
	ItemType         domain.ItemType     `json:"item_type"`
	Rarity           domain.Rarity       `json:"rarity"`
	Description      string              `json:"description,omitempty"`
	LevelRequirement int                 `json:"level_requirement"`
	JobRequirement   []string            `json:"job_requirement"`
	MaxStack         int                 `json:"max_stack"`
	BuyPrice         int                 `json:"buy_price"`
	SellPrice        int                 `json:"sell_price"`
	SaleType         domain.SaleType     `json:"sale_type"`
	Effects          []domain.ItemEffect `json:"effects"`
	Active           bool                `json:"active"`
}

// SkillLineConfig is the designer JSON file for skill lines and their nodes.
type SkillLineConfig struct {
	Version     string         `json:"version"`
	Description string         `json:"description"`
	SkillLines  []SkillLineDef `json:"skill_lines"`
}

// SkillLineDef is a single skill line with nested nodes. Job classes are
// referenced by name and resolved against the database during sync.
type SkillLineDef struct {
	Name          string               `json:"name"`
	SkillLineType domain.SkillLineType `json:"skill_line_type"`
	UnlockLevel   int                  `json:"unlock_level"`
	JobClasses    []string             `json:"job_classes"`
	Nodes         []SkillNodeDef       `json:"nodes"`
}

// SkillNodeDef is a single node definition in the JSON.
type SkillNodeDef struct {
	Name           string              `json:"name"`
	NodeType       domain.NodeType     `json:"node_type"`
	PointsRequired int                 `json:"points_required"`
	Effect         domain.NodeEffect   `json:"effects"`
	Position       domain.NodePosition `json:"position"`
	Active         bool                `json:"active"`
}

// Loader reads and validates designer content files.
type Loader interface {
	LoadJobClasses(path string) (*JobClassConfig, error)
	LoadItems(path string) (*ItemConfig, error)
	LoadSkillLines(path string) (*SkillLineConfig, error)
}

type loader struct {
	schemaValidator validation.SchemaValidator
}

// NewLoader creates a new Loader instance
func NewLoader() Loader {
	return &loader{
		schemaValidator: validation.NewSchemaValidator(),
	}
}

// LoadJobClasses reads and parses a job classes JSON file
func (l *loader) LoadJobClasses(path string) (*JobClassConfig, error) {
	var config JobClassConfig
	if err := l.loadFile(path, JobClassesSchemaPath, &config); err != nil {
		return nil, err
	}

	if len(config.JobClasses) == 0 {
		return nil, fmt.Errorf("%w: no job classes defined in %s", ErrInvalidConfig, path)
	}

	names := make(map[string]bool, len(config.JobClasses))
	for i := range config.JobClasses {
		def := &config.JobClasses[i]
		if def.Name == "" {
			return nil, fmt.Errorf("%w: job class at index %d has empty name", ErrInvalidConfig, i)
		}
		if names[def.Name] {
			return nil, fmt.Errorf("%w: job class '%s'", ErrDuplicateName, def.Name)
		}
		names[def.Name] = true

		if !domain.ValidJobTypes[def.JobType] {
			return nil, fmt.Errorf("%w: job class '%s' has unknown job_type %q", ErrInvalidConfig, def.Name, def.JobType)
		}
		if def.MaxLevel < 1 {
			return nil, fmt.Errorf("%w: job class '%s' has max_level < 1", ErrInvalidConfig, def.Name)
		}
		if def.ExperienceMultiplier <= 0 {
			return nil, fmt.Errorf("%w: job class '%s' has non-positive experience_multiplier", ErrInvalidConfig, def.Name)
		}
	}

	return &config, nil
}

// LoadItems reads and parses an items JSON file
func (l *loader) LoadItems(path string) (*ItemConfig, error) {
	var config ItemConfig
	if err := l.loadFile(path, ItemsSchemaPath, &config); err != nil {
		return nil, err
	}

	if len(config.Items) == 0 {
		return nil, fmt.Errorf("%w: no items defined in %s", ErrInvalidConfig, path)
	}

	names := make(map[string]bool, len(config.Items))
	for i := range config.Items {
		def := &config.Items[i]
		if def.Name == "" {
			return nil, fmt.Errorf("%w: item at index %d has empty name", ErrInvalidConfig, i)
		}
		if names[def.Name] {
			return nil, fmt.Errorf("%w: item '%s'", ErrDuplicateName, def.Name)
		}
		names[def.Name] = true

		if !domain.ValidItemTypes[def.ItemType] {
			return nil, fmt.Errorf("%w: item '%s' has unknown item_type %q", ErrInvalidConfig, def.Name, def.ItemType)
		}
		if !domain.ValidRarities[def.Rarity] {
			return nil, fmt.Errorf("%w: item '%s' has unknown rarity %q", ErrInvalidConfig, def.Name, def.Rarity)
		}
		if def.MaxStack < 1 {
			return nil, fmt.Errorf("%w: item '%s' has max_stack < 1", ErrInvalidConfig, def.Name)
		}
		for _, effect := range def.Effects {
			if err := effect.Validate(); err != nil {
				return nil, fmt.Errorf("item '%s': %w", def.Name, err)
			}
		}
	}

	return &config, nil
}

// LoadSkillLines reads and parses a skill lines JSON file
func (l *loader) LoadSkillLines(path string) (*SkillLineConfig, error) {
	var config SkillLineConfig
	if err := l.loadFile(path, SkillLinesSchemaPath, &config); err != nil {
		return nil, err
	}

	if len(config.SkillLines) == 0 {
		return nil, fmt.Errorf("%w: no skill lines defined in %s", ErrInvalidConfig, path)
	}

	lineNames := make(map[string]bool, len(config.SkillLines))
	for i := range config.SkillLines {
		line := &config.SkillLines[i]
		if line.Name == "" {
			return nil, fmt.Errorf("%w: skill line at index %d has empty name", ErrInvalidConfig, i)
		}
		if lineNames[line.Name] {
			return nil, fmt.Errorf("%w: skill line '%s'", ErrDuplicateName, line.Name)
		}
		lineNames[line.Name] = true

		nodeNames := make(map[string]bool, len(line.Nodes))
		for _, node := range line.Nodes {
			if node.Name == "" {
				return nil, fmt.Errorf("%w: skill line '%s' has a node with empty name", ErrInvalidConfig, line.Name)
			}
			if nodeNames[node.Name] {
				return nil, fmt.Errorf("%w: node '%s' in line '%s'", ErrDuplicateName, node.Name, line.Name)
			}
			nodeNames[node.Name] = true

			if node.PointsRequired < 1 {
				return nil, fmt.Errorf("%w: node '%s' has points_required < 1", ErrInvalidConfig, node.Name)
			}
			if err := node.Effect.Validate(); err != nil {
				return nil, fmt.Errorf("node '%s': %w", node.Name, err)
			}
		}
	}

	return &config, nil
}

// loadFile reads a config file, validates it against its schema and
// unmarshals it into dst.
func (l *loader) loadFile(path, schemaPath string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := l.schemaValidator.ValidateBytes(data, schemaPath); err != nil {
		return fmt.Errorf("schema validation failed for %s: %w", path, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}
