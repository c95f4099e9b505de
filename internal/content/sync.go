package content

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/harukigames/gamecore/internal/domain"
	"github.com/harukigames/gamecore/internal/logger"
	"github.com/harukigames/gamecore/internal/repository"
)

// Config file names under the content directory
const (
	JobClassesFileName = "job_classes.json"
	ItemsFileName      = "items.json"
	SkillLinesFileName = "skill_lines.json"
)

// SyncResult counts what a sync pass did per content kind.
type SyncResult struct {
	Inserted int
	Updated  int
	Skipped  int
}

// Syncer loads designer content files and reconciles them with the database.
// Sync is idempotent; unchanged files are detected by hash and skipped.
type Syncer struct {
	loader     Loader
	jobClasses repository.JobClass
	items      repository.Item
	skills     repository.Skill
}

// NewSyncer creates a new content Syncer
func NewSyncer(loader Loader, jobClasses repository.JobClass, items repository.Item, skills repository.Skill) *Syncer {
	return &Syncer{
		loader:     loader,
		jobClasses: jobClasses,
		items:      items,
		skills:     skills,
	}
}

// SyncAll syncs all content files in dir. Job classes sync first because
// skill lines reference them by name.
func (s *Syncer) SyncAll(ctx context.Context, dir string) error {
	if err := s.SyncJobClasses(ctx, filepath.Join(dir, JobClassesFileName)); err != nil {
		return fmt.Errorf("job class sync failed: %w", err)
	}
	if err := s.SyncItems(ctx, filepath.Join(dir, ItemsFileName)); err != nil {
		return fmt.Errorf("item sync failed: %w", err)
	}
	if err := s.SyncSkillLines(ctx, filepath.Join(dir, SkillLinesFileName)); err != nil {
		return fmt.Errorf("skill line sync failed: %w", err)
	}
	return nil
}

// SyncJobClasses syncs job class templates from path to the database
func (s *Syncer) SyncJobClasses(ctx context.Context, path string) error {
	log := logger.FromContext(ctx)

	changed, err := s.hasFileChanged(ctx, path, JobClassesFileName)
	if err != nil {
		return err
	}
	if !changed {
		log.Info("Content file unchanged, skipping sync", "path", path)
		return nil
	}

	config, err := s.loader.LoadJobClasses(path)
	if err != nil {
		return err
	}

	existing, err := s.jobClasses.GetAllJobClasses(ctx)
	if err != nil {
		return fmt.Errorf("failed to list existing job classes: %w", err)
	}
	byName := make(map[string]*domain.JobClass, len(existing))
	for i := range existing {
		byName[existing[i].Name] = &existing[i]
	}

	result := &SyncResult{}
	for _, def := range config.JobClasses {
		jc := &domain.JobClass{
			Name:                 def.Name,
			JobType:              def.JobType,
			MaxLevel:             def.MaxLevel,
			ExperienceMultiplier: def.ExperienceMultiplier,
			BaseStats:            def.BaseStats,
			Multipliers:          def.Multipliers,
		}

		if current, ok := byName[def.Name]; ok {
			if jobClassEqual(current, jc) {
				result.Skipped++
				continue
			}
			if err := s.jobClasses.UpdateJobClass(ctx, current.ID, jc); err != nil {
				return fmt.Errorf("failed to update job class '%s': %w", def.Name, err)
			}
			result.Updated++
			log.Info("Updated job class", "name", def.Name)
		} else {
			id, err := s.jobClasses.InsertJobClass(ctx, jc)
			if err != nil {
				return fmt.Errorf("failed to insert job class '%s': %w", def.Name, err)
			}
			result.Inserted++
			log.Info("Inserted job class", "name", def.Name, "id", id)
		}
	}

	s.finishSync(ctx, path, JobClassesFileName, result)
	return nil
}

// SyncItems syncs item templates from path to the database
func (s *Syncer) SyncItems(ctx context.Context, path string) error {
	log := logger.FromContext(ctx)

	changed, err := s.hasFileChanged(ctx, path, ItemsFileName)
	if err != nil {
		return err
	}
	if !changed {
		log.Info("Content file unchanged, skipping sync", "path", path)
		return nil
	}

	config, err := s.loader.LoadItems(path)
	if err != nil {
		return err
	}

	existing, err := s.items.GetAllItems(ctx)
	if err != nil {
		return fmt.Errorf("failed to list existing items: %w", err)
	}
	byName := make(map[string]*domain.Item, len(existing))
	for i := range existing {
		byName[existing[i].Name] = &existing[i]
	}

	result := &SyncResult{}
	for _, def := range config.Items {
		item := &domain.Item{
			Name:             def.Name,
			ItemType:         def.ItemType,
			Rarity:           def.Rarity,
			Description:      def.Description,
			LevelRequirement: def.LevelRequirement,
			JobRequirement:   def.JobRequirement,
			MaxStack:         def.MaxStack,
			BuyPrice:         def.BuyPrice,
			SellPrice:        def.SellPrice,
			SaleType:         def.SaleType,
			Effects:          def.Effects,
			Active:           def.Active,
		}

		if current, ok := byName[def.Name]; ok {
			if itemEqual(current, item) {
				result.Skipped++
				continue
			}
			if err := s.items.UpdateItem(ctx, current.ID, item); err != nil {
				return fmt.Errorf("failed to update item '%s': %w", def.Name, err)
			}
			result.Updated++
			log.Info("Updated item", "name", def.Name)
		} else {
			id, err := s.items.InsertItem(ctx, item)
			if err != nil {
				return fmt.Errorf("failed to insert item '%s': %w", def.Name, err)
			}
			result.Inserted++
			log.Info("Inserted item", "name", def.Name, "id", id)
		}
	}

	s.finishSync(ctx, path, ItemsFileName, result)
	return nil
}

// SyncSkillLines syncs skill lines and their nodes from path to the database
func (s *Syncer) SyncSkillLines(ctx context.Context, path string) error {
	log := logger.FromContext(ctx)

	changed, err := s.hasFileChanged(ctx, path, SkillLinesFileName)
	if err != nil {
		return err
	}
	if !changed {
		log.Info("Content file unchanged, skipping sync", "path", path)
		return nil
	}

	config, err := s.loader.LoadSkillLines(path)
	if err != nil {
		return err
	}

	result := &SyncResult{}
	for _, def := range config.SkillLines {
		if err := s.syncOneSkillLine(ctx, def, result); err != nil {
			return err
		}
	}

	s.finishSync(ctx, path, SkillLinesFileName, result)
	return nil
}

func (s *Syncer) syncOneSkillLine(ctx context.Context, def SkillLineDef, result *SyncResult) error {
	log := logger.FromContext(ctx)

	// Resolve job class names to IDs
	jobClassIDs := make([]int, 0, len(def.JobClasses))
	for _, name := range def.JobClasses {
		jc, err := s.jobClasses.GetJobClassByName(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to resolve job class '%s': %w", name, err)
		}
		if jc == nil {
			return fmt.Errorf("%w: skill line '%s' references unknown job class '%s'", ErrInvalidConfig, def.Name, name)
		}
		jobClassIDs = append(jobClassIDs, jc.ID)
	}

	line := &domain.SkillLine{
		Name:          def.Name,
		SkillLineType: def.SkillLineType,
		UnlockLevel:   def.UnlockLevel,
	}

	current, err := s.skills.GetSkillLineByName(ctx, def.Name)
	if err != nil {
		return fmt.Errorf("failed to look up skill line '%s': %w", def.Name, err)
	}

	var lineID int
	if current != nil {
		lineID = current.ID
		if current.SkillLineType != line.SkillLineType || current.UnlockLevel != line.UnlockLevel {
			if err := s.skills.UpdateSkillLine(ctx, lineID, line); err != nil {
				return fmt.Errorf("failed to update skill line '%s': %w", def.Name, err)
			}
			result.Updated++
			log.Info("Updated skill line", "name", def.Name)
		} else {
			result.Skipped++
		}
	} else {
		lineID, err = s.skills.InsertSkillLine(ctx, line)
		if err != nil {
			return fmt.Errorf("failed to insert skill line '%s': %w", def.Name, err)
		}
		result.Inserted++
		log.Info("Inserted skill line", "name", def.Name, "id", lineID)
	}

	if err := s.skills.SetSkillLineJobClasses(ctx, lineID, jobClassIDs); err != nil {
		return fmt.Errorf("failed to set job classes for skill line '%s': %w", def.Name, err)
	}

	return s.syncLineNodes(ctx, lineID, def, result)
}

func (s *Syncer) syncLineNodes(ctx context.Context, lineID int, def SkillLineDef, result *SyncResult) error {
	log := logger.FromContext(ctx)

	existing, err := s.skills.GetNodesForLine(ctx, lineID)
	if err != nil {
		return fmt.Errorf("failed to list nodes for skill line '%s': %w", def.Name, err)
	}
	byName := make(map[string]*domain.SkillNode, len(existing))
	for i := range existing {
		byName[existing[i].Name] = &existing[i]
	}

	for _, nodeDef := range def.Nodes {
		node := &domain.SkillNode{
			SkillLineID:    lineID,
			Name:           nodeDef.Name,
			NodeType:       nodeDef.NodeType,
			PointsRequired: nodeDef.PointsRequired,
			Effect:         nodeDef.Effect,
			Position:       nodeDef.Position,
			Active:         nodeDef.Active,
		}

		if current, ok := byName[nodeDef.Name]; ok {
			if skillNodeEqual(current, node) {
				result.Skipped++
				continue
			}
			if err := s.skills.UpdateSkillNode(ctx, current.ID, node); err != nil {
				return fmt.Errorf("failed to update skill node '%s': %w", nodeDef.Name, err)
			}
			result.Updated++
			log.Info("Updated skill node", "name", nodeDef.Name, "line", def.Name)
		} else {
			id, err := s.skills.InsertSkillNode(ctx, node)
			if err != nil {
				return fmt.Errorf("failed to insert skill node '%s': %w", nodeDef.Name, err)
			}
			result.Inserted++
			log.Info("Inserted skill node", "name", nodeDef.Name, "line", def.Name, "id", id)
		}
	}
	return nil
}

// hasFileChanged compares the file's hash and mod time against the last sync.
func (s *Syncer) hasFileChanged(ctx context.Context, path, configName string) (bool, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("failed to stat content file: %w", err)
	}

	fileHash, err := hashFile(path)
	if err != nil {
		return false, err
	}

	meta, err := s.jobClasses.GetSyncMetadata(ctx, configName)
	if err != nil {
		return false, fmt.Errorf("failed to get sync metadata: %w", err)
	}
	if meta == nil {
		// First sync
		return true, nil
	}

	if meta.FileHash != fileHash || !meta.FileModTime.Equal(fileInfo.ModTime()) {
		return true, nil
	}
	return false, nil
}

// finishSync records sync metadata and logs the result. Metadata failures are
// logged, not fatal; the next startup just re-syncs.
func (s *Syncer) finishSync(ctx context.Context, path, configName string, result *SyncResult) {
	log := logger.FromContext(ctx)

	if err := s.updateSyncMetadata(ctx, path, configName); err != nil {
		log.Warn("Failed to update sync metadata", "config", configName, "error", err)
	}

	log.Info("Content sync completed",
		"config", configName,
		"inserted", result.Inserted,
		"updated", result.Updated,
		"skipped", result.Skipped)
}

func (s *Syncer) updateSyncMetadata(ctx context.Context, path, configName string) error {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat content file: %w", err)
	}

	fileHash, err := hashFile(path)
	if err != nil {
		return err
	}

	return s.jobClasses.UpsertSyncMetadata(ctx, &domain.SyncMetadata{
		ConfigName:   configName,
		LastSyncTime: time.Now(),
		FileHash:     fileHash,
		FileModTime:  fileInfo.ModTime(),
	})
}

func hashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read content file for hashing: %w", err)
	}
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}

func jobClassEqual(a, b *domain.JobClass) bool {
	return a.JobType == b.JobType &&
		a.MaxLevel == b.MaxLevel &&
		a.ExperienceMultiplier == b.ExperienceMultiplier &&
		a.BaseStats == b.BaseStats &&
		a.Multipliers == b.Multipliers
}

func itemEqual(a, b *domain.Item) bool {
	if a.ItemType != b.ItemType ||
		a.Rarity != b.Rarity ||
		a.Description != b.Description ||
		a.LevelRequirement != b.LevelRequirement ||
		a.MaxStack != b.MaxStack ||
		a.BuyPrice != b.BuyPrice ||
		a.SellPrice != b.SellPrice ||
		a.SaleType != b.SaleType ||
		a.Active != b.Active {
		return false
	}
	if !stringSlicesEqual(a.JobRequirement, b.JobRequirement) {
		return false
	}
	if len(a.Effects) != len(b.Effects) {
		return false
	}
	for i := range a.Effects {
		if a.Effects[i] != b.Effects[i] {
			return false
		}
	}
	return true
}

func skillNodeEqual(a, b *domain.SkillNode) bool {
	return a.NodeType == b.NodeType &&
		a.PointsRequired == b.PointsRequired &&
		a.Position == b.Position &&
		a.Active == b.Active &&
		a.Effect.Equal(b.Effect)
}

func stringSlicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
