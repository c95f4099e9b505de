package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harukigames/gamecore/internal/domain"
)

func createTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadJobClasses(t *testing.T) {
	loader := NewLoader()

	t.Run("valid file", func(t *testing.T) {
		content := `{
			"version": "1.0",
			"description": "Test classes",
			"job_classes": [
				{
					"name": "Warrior",
					"job_type": "basic",
					"max_level": 50,
					"experience_multiplier": 1.0,
					"base_stats": {"hp": 120, "mp": 20, "attack": 15, "defense": 12, "magic_attack": 4, "magic_defense": 6, "agility": 8, "luck": 5},
					"multipliers": {"hp": 12.0, "mp": 2.0, "attack": 2.5, "defense": 2.0, "magic_attack": 0.5, "magic_defense": 1.0, "agility": 1.2, "luck": 0.8}
				}
			]
		}`

		config, err := loader.LoadJobClasses(createTempFile(t, content))
		require.NoError(t, err)
		assert.Equal(t, "1.0", config.Version)
		require.Len(t, config.JobClasses, 1)
		assert.Equal(t, "Warrior", config.JobClasses[0].Name)
		assert.Equal(t, domain.JobTypeBasic, config.JobClasses[0].JobType)
		assert.Equal(t, 120, config.JobClasses[0].BaseStats.HP)
		assert.Equal(t, 12.0, config.JobClasses[0].Multipliers.HP)
	})

	t.Run("file not found", func(t *testing.T) {
		_, err := loader.LoadJobClasses("/nonexistent/path.json")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("unknown job type rejected by schema", func(t *testing.T) {
		content := `{
			"version": "1.0",
			"job_classes": [
				{
					"name": "Warrior",
					"job_type": "legendary",
					"max_level": 50,
					"experience_multiplier": 1.0,
					"base_stats": {"hp": 1, "mp": 1, "attack": 1, "defense": 1, "magic_attack": 1, "magic_defense": 1, "agility": 1, "luck": 1},
					"multipliers": {"hp": 1, "mp": 1, "attack": 1, "defense": 1, "magic_attack": 1, "magic_defense": 1, "agility": 1, "luck": 1}
				}
			]
		}`

		_, err := loader.LoadJobClasses(createTempFile(t, content))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "schema validation failed")
	})

	t.Run("duplicate names rejected", func(t *testing.T) {
		def := `{
			"name": "Warrior",
			"job_type": "basic",
			"max_level": 50,
			"experience_multiplier": 1.0,
			"base_stats": {"hp": 1, "mp": 1, "attack": 1, "defense": 1, "magic_attack": 1, "magic_defense": 1, "agility": 1, "luck": 1},
			"multipliers": {"hp": 1, "mp": 1, "attack": 1, "defense": 1, "magic_attack": 1, "magic_defense": 1, "agility": 1, "luck": 1}
		}`
		content := `{"version": "1.0", "job_classes": [` + def + `,` + def + `]}`

		_, err := loader.LoadJobClasses(createTempFile(t, content))
		assert.ErrorIs(t, err, ErrDuplicateName)
	})
}

func TestLoadItems(t *testing.T) {
	loader := NewLoader()

	t.Run("valid file", func(t *testing.T) {
		content := `{
			"version": "1.0",
			"items": [
				{
					"name": "Potion",
					"item_type": "consumable",
					"rarity": "common",
					"max_stack": 99,
					"effects": [{"type": "heal", "amount": 50}],
					"active": true
				}
			]
		}`

		config, err := loader.LoadItems(createTempFile(t, content))
		require.NoError(t, err)
		require.Len(t, config.Items, 1)
		assert.Equal(t, "Potion", config.Items[0].Name)
		assert.Equal(t, domain.ItemTypeConsumable, config.Items[0].ItemType)
		require.Len(t, config.Items[0].Effects, 1)
		assert.Equal(t, domain.ItemEffectHeal, config.Items[0].Effects[0].Type)
	})

	t.Run("invalid effect payload", func(t *testing.T) {
		content := `{
			"version": "1.0",
			"items": [
				{
					"name": "Broken",
					"item_type": "consumable",
					"rarity": "common",
					"max_stack": 1,
					"effects": [{"type": "cure"}]
				}
			]
		}`

		_, err := loader.LoadItems(createTempFile(t, content))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cure effect requires status")
	})
}

func TestLoadSkillLines(t *testing.T) {
	loader := NewLoader()

	t.Run("valid file", func(t *testing.T) {
		content := `{
			"version": "1.0",
			"skill_lines": [
				{
					"name": "Sword Mastery",
					"skill_line_type": "weapon",
					"unlock_level": 1,
					"job_classes": ["Warrior"],
					"nodes": [
						{
							"name": "Keen Edge",
							"node_type": "stat_boost",
							"points_required": 1,
							"effects": {"type": "stat_boost", "stat": "attack", "value": 5},
							"position": {"x": 0, "y": 0},
							"active": true
						}
					]
				}
			]
		}`

		config, err := loader.LoadSkillLines(createTempFile(t, content))
		require.NoError(t, err)
		require.Len(t, config.SkillLines, 1)
		line := config.SkillLines[0]
		assert.Equal(t, domain.SkillLineWeapon, line.SkillLineType)
		require.Len(t, line.Nodes, 1)
		require.NotNil(t, line.Nodes[0].Effect.StatBoost)
		assert.Equal(t, domain.StatAttack, line.Nodes[0].Effect.StatBoost.Stat)
		assert.Equal(t, 5, line.Nodes[0].Effect.StatBoost.Value)
	})

	t.Run("duplicate node names rejected", func(t *testing.T) {
		node := `{
			"name": "Keen Edge",
			"node_type": "stat_boost",
			"points_required": 1,
			"effects": {"type": "stat_boost", "stat": "attack", "value": 5}
		}`
		content := `{
			"version": "1.0",
			"skill_lines": [
				{
					"name": "Sword Mastery",
					"skill_line_type": "weapon",
					"unlock_level": 1,
					"nodes": [` + node + `,` + node + `]
				}
			]
		}`

		_, err := loader.LoadSkillLines(createTempFile(t, content))
		assert.ErrorIs(t, err, ErrDuplicateName)
	})
}

func TestLoadShippedConfigs(t *testing.T) {
	loader := NewLoader()

	jobs, err := loader.LoadJobClasses(filepath.Join("..", "..", "configs", JobClassesFileName))
	require.NoError(t, err)
	assert.NotEmpty(t, jobs.JobClasses)

	items, err := loader.LoadItems(filepath.Join("..", "..", "configs", ItemsFileName))
	require.NoError(t, err)
	assert.NotEmpty(t, items.Items)

	lines, err := loader.LoadSkillLines(filepath.Join("..", "..", "configs", SkillLinesFileName))
	require.NoError(t, err)
	assert.NotEmpty(t, lines.SkillLines)
}
