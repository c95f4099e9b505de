package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	jobClassSchemaPath  = "configs/schemas/job_classes.schema.json"
	itemSchemaPath      = "configs/schemas/items.schema.json"
	skillLineSchemaPath = "configs/schemas/skill_lines.schema.json"
)

const statBlock = `{"hp": 100, "mp": 20, "attack": 10, "defense": 8, "magic_attack": 4, "magic_defense": 4, "agility": 6, "luck": 3}`

func TestValidateBytes_JobClassSchema(t *testing.T) {
	v := NewSchemaValidator()

	tests := []struct {
		name      string
		data      string
		wantError string
	}{
		{
			name: "valid document",
			data: `{"version": "1.0", "job_classes": [{
				"name": "Warrior", "job_type": "basic", "max_level": 50,
				"experience_multiplier": 1.0,
				"base_stats": ` + statBlock + `, "multipliers": ` + statBlock + `}]}`,
		},
		{
			name:      "unknown job type",
			data:      `{"version": "1.0", "job_classes": [{"name": "Warrior", "job_type": "legendary", "max_level": 50, "experience_multiplier": 1.0, "base_stats": ` + statBlock + `, "multipliers": ` + statBlock + `}]}`,
			wantError: "schema validation failed",
		},
		{
			name:      "missing base stats",
			data:      `{"version": "1.0", "job_classes": [{"name": "Warrior", "job_type": "basic", "max_level": 50, "experience_multiplier": 1.0, "multipliers": ` + statBlock + `}]}`,
			wantError: "schema validation failed",
		},
		{
			name:      "zero experience multiplier",
			data:      `{"version": "1.0", "job_classes": [{"name": "Warrior", "job_type": "basic", "max_level": 50, "experience_multiplier": 0, "base_stats": ` + statBlock + `, "multipliers": ` + statBlock + `}]}`,
			wantError: "schema validation failed",
		},
		{
			name:      "empty job class list",
			data:      `{"version": "1.0", "job_classes": []}`,
			wantError: "schema validation failed",
		},
		{
			name:      "malformed JSON",
			data:      `{"version": "1.0", "job_classes": }`,
			wantError: "failed to parse JSON data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateBytes([]byte(tt.data), jobClassSchemaPath)
			if tt.wantError == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
			}
		})
	}
}

func TestValidateBytes_ItemSchema(t *testing.T) {
	v := NewSchemaValidator()

	tests := []struct {
		name      string
		data      string
		wantError bool
	}{
		{
			name: "valid consumable",
			data: `{"version": "1.0", "items": [{"name": "Potion", "item_type": "consumable", "rarity": "common", "max_stack": 99, "effects": [{"type": "heal", "amount": 50}]}]}`,
		},
		{
			name:      "unknown rarity",
			data:      `{"version": "1.0", "items": [{"name": "Potion", "item_type": "consumable", "rarity": "mythic", "max_stack": 99}]}`,
			wantError: true,
		},
		{
			name:      "zero max stack",
			data:      `{"version": "1.0", "items": [{"name": "Potion", "item_type": "consumable", "rarity": "common", "max_stack": 0}]}`,
			wantError: true,
		},
		{
			name:      "effect with unknown field",
			data:      `{"version": "1.0", "items": [{"name": "Potion", "item_type": "consumable", "rarity": "common", "max_stack": 99, "effects": [{"type": "heal", "power": 50}]}]}`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateBytes([]byte(tt.data), itemSchemaPath)
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateBytes_SkillLineSchema(t *testing.T) {
	v := NewSchemaValidator()

	valid := `{"version": "1.0", "skill_lines": [{
		"name": "Sword Mastery", "skill_line_type": "weapon", "unlock_level": 1,
		"nodes": [{"name": "Keen Edge", "node_type": "stat_boost", "points_required": 1,
		"effects": {"type": "stat_boost", "stat": "attack", "value": 5}}]}]}`
	assert.NoError(t, v.ValidateBytes([]byte(valid), skillLineSchemaPath))

	missingPoints := `{"version": "1.0", "skill_lines": [{
		"name": "Sword Mastery", "skill_line_type": "weapon", "unlock_level": 1,
		"nodes": [{"name": "Keen Edge", "node_type": "stat_boost",
		"effects": {"type": "stat_boost", "stat": "attack", "value": 5}}]}]}`
	err := v.ValidateBytes([]byte(missingPoints), skillLineSchemaPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")
}

func TestValidateFile(t *testing.T) {
	v := NewSchemaValidator()

	dataPath := filepath.Join(t.TempDir(), "items.json")
	data := `{"version": "1.0", "items": [{"name": "Ether", "item_type": "consumable", "rarity": "uncommon", "max_stack": 99}]}`
	require.NoError(t, os.WriteFile(dataPath, []byte(data), 0o644))

	assert.NoError(t, v.ValidateFile(dataPath, itemSchemaPath))

	err := v.ValidateFile(filepath.Join(t.TempDir(), "missing.json"), itemSchemaPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read data file")
}

func TestValidateBytes_MissingSchema(t *testing.T) {
	v := NewSchemaValidator()

	err := v.ValidateBytes([]byte(`{}`), "configs/schemas/nonexistent.schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load schema")
}

func TestValidateBytes_CachesCompiledSchemas(t *testing.T) {
	v := NewSchemaValidator().(*validator)

	data := []byte(`{"version": "1.0", "items": [{"name": "Potion", "item_type": "consumable", "rarity": "common", "max_stack": 99}]}`)

	require.NoError(t, v.ValidateBytes(data, itemSchemaPath))
	assert.Len(t, v.schemas, 1)

	require.NoError(t, v.ValidateBytes(data, itemSchemaPath))
	assert.Len(t, v.schemas, 1)
}

func TestValidationErrorReportsLocation(t *testing.T) {
	v := NewSchemaValidator()

	data := `{"version": "1.0", "items": [{"name": "Potion", "item_type": "consumable", "rarity": "common", "max_stack": 99}, {"name": "Bad", "item_type": "consumable", "rarity": "mythic", "max_stack": 1}]}`
	err := v.ValidateBytes([]byte(data), itemSchemaPath)
	require.Error(t, err)
	// The failing instance path should point at the second item's rarity.
	assert.Contains(t, err.Error(), "items/1")
}
