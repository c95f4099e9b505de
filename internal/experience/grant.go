package experience

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/harukigames/gamecore/internal/domain"
	"github.com/harukigames/gamecore/internal/event"
	"github.com/harukigames/gamecore/internal/logger"
)

// GrantExperience applies an administrative grant to the character's current
// job class. Level is re-derived from the new total (clamped at the job
// class max level), skill points accrue for each level gained, and the audit
// row is written in the same transaction as the progress update.
func (s *service) GrantExperience(ctx context.Context, characterID string, amount int64, reason, actor string) (*domain.ExperienceGrantResult, error) {
	log := logger.FromContext(ctx)

	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if reason == "" || actor == "" {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.characterRepo.GetCharacter(ctx, characterID); err != nil {
		return nil, err
	}

	current, err := s.characterRepo.GetCurrentJobClass(ctx, characterID)
	if err != nil {
		return nil, err
	}

	jc, err := s.jobClassRepo.GetJobClassByID(ctx, current.JobClassID)
	if err != nil {
		return nil, fmt.Errorf("failed to get job class %d: %w", current.JobClassID, err)
	}

	lock := s.locks.GetLock(characterID)
	lock.Lock()
	defer lock.Unlock()

	tx, err := s.txBeginner.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	cjc, err := tx.GetCharacterJobClassForUpdate(ctx, characterID, jc.ID)
	if err != nil {
		return nil, err
	}

	oldLevel := cjc.Level
	cjc.Experience += amount
	cjc.Level = s.curve.LevelForExperience(cjc.Experience, jc.ExperienceMultiplier, jc.MaxLevel)

	pointsGained := 0
	if cjc.Level > oldLevel {
		pointsGained = (cjc.Level - oldLevel) * s.skillPointsPerLevel
		cjc.SkillPoints += pointsGained
	}

	if err := tx.UpdateCharacterJobClassProgress(ctx, cjc); err != nil {
		return nil, fmt.Errorf("failed to update job class progress: %w", err)
	}

	audit := &domain.ExperienceAudit{
		ID:          uuid.New(),
		CharacterID: characterID,
		JobClassID:  jc.ID,
		Amount:      amount,
		Reason:      reason,
		Actor:       actor,
		RecordedAt:  time.Now().UTC(),
	}
	if err := tx.InsertExperienceAudit(ctx, audit); err != nil {
		return nil, fmt.Errorf("failed to record experience audit: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit experience grant: %w", err)
	}

	log.Info("Experience granted",
		"characterId", characterID,
		"jobClassId", jc.ID,
		"amount", amount,
		"oldLevel", oldLevel,
		"newLevel", cjc.Level,
		"actor", actor)

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, event.NewExperienceGrantedEvent(characterID, jc.ID, amount, reason, actor)); err != nil {
			log.Warn("Failed to publish experience granted event", "error", err)
		}
		if cjc.Level > oldLevel {
			if err := s.publisher.Publish(ctx, event.NewLevelUpEvent(characterID, jc.ID, oldLevel, cjc.Level, pointsGained)); err != nil {
				log.Warn("Failed to publish level up event", "error", err)
			}
		}
	}

	expToNext := int64(0)
	if cjc.Level < jc.MaxLevel {
		expToNext = s.curve.RequiredForLevel(cjc.Level+1, jc.ExperienceMultiplier) - cjc.Experience
		if expToNext < 0 {
			expToNext = 0
		}
	}

	return &domain.ExperienceGrantResult{
		JobClassID:        jc.ID,
		ExperienceGained:  amount,
		NewExperience:     cjc.Experience,
		NewLevel:          cjc.Level,
		LeveledUp:         cjc.Level > oldLevel,
		SkillPointsGained: pointsGained,
		ExpToNextLevel:    expToNext,
		LevelProgress:     Progress(s.curve, cjc.Experience, jc.ExperienceMultiplier, cjc.Level, jc.MaxLevel),
	}, nil
}
