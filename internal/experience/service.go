package experience

import (
	"context"
	"fmt"

	"github.com/harukigames/gamecore/internal/concurrency"
	"github.com/harukigames/gamecore/internal/domain"
	"github.com/harukigames/gamecore/internal/event"
	"github.com/harukigames/gamecore/internal/repository"
)

// Service is the experience ledger: it owns experience accumulation, level
// inversion and skill point accrual for (character, job class) pairs.
type Service interface {
	// GrantExperience applies an administrative experience grant to the
	// character's current job class. The audit record is written in the
	// same transaction as the progress update.
	GrantExperience(ctx context.Context, characterID string, amount int64, reason, actor string) (*domain.ExperienceGrantResult, error)

	// GetProgress returns progress rows for every job class the character
	// has unlocked.
	GetProgress(ctx context.Context, characterID string) ([]domain.JobClassProgress, error)

	// GetAuditTrail returns recent experience grants for a character.
	GetAuditTrail(ctx context.Context, characterID string, limit int) ([]domain.ExperienceAudit, error)

	// Pure curve queries, exposed for preview screens.
	RequiredForLevel(level int, multiplier float64) int64
	LevelForExperience(exp int64, multiplier float64, maxLevel int) int
}

type service struct {
	characterRepo       repository.Character
	jobClassRepo        repository.JobClass
	txBeginner          repository.TxBeginner
	locks               *concurrency.LockManager
	publisher           event.Bus
	curve               Curve
	skillPointsPerLevel int
}

// NewService creates a new experience ledger service.
func NewService(
	characterRepo repository.Character,
	jobClassRepo repository.JobClass,
	txBeginner repository.TxBeginner,
	locks *concurrency.LockManager,
	publisher event.Bus,
	curve Curve,
	skillPointsPerLevel int,
) Service {
	return &service{
		characterRepo:       characterRepo,
		jobClassRepo:        jobClassRepo,
		txBeginner:          txBeginner,
		locks:               locks,
		publisher:           publisher,
		curve:               curve,
		skillPointsPerLevel: skillPointsPerLevel,
	}
}

func (s *service) RequiredForLevel(level int, multiplier float64) int64 {
	return s.curve.RequiredForLevel(level, multiplier)
}

func (s *service) LevelForExperience(exp int64, multiplier float64, maxLevel int) int {
	return s.curve.LevelForExperience(exp, multiplier, maxLevel)
}

// progressRow builds the API progress row for one character job class.
func (s *service) progressRow(jc *domain.JobClass, cjc *domain.CharacterJobClass) domain.JobClassProgress {
	mult := jc.ExperienceMultiplier
	expToNext := int64(0)
	if cjc.Level < jc.MaxLevel {
		expToNext = s.curve.RequiredForLevel(cjc.Level+1, mult) - cjc.Experience
		if expToNext < 0 {
			expToNext = 0
		}
	}

	return domain.JobClassProgress{
		JobClassID:    jc.ID,
		Name:          jc.Name,
		JobType:       jc.JobType,
		Level:         cjc.Level,
		MaxLevel:      jc.MaxLevel,
		Experience:    cjc.Experience,
		ExpToNext:     expToNext,
		LevelProgress: Progress(s.curve, cjc.Experience, mult, cjc.Level, jc.MaxLevel),
		SkillPoints:   cjc.SkillPoints,
		IsCurrent:     cjc.IsCurrent,
	}
}

// GetProgress returns progress rows for every job class of the character.
func (s *service) GetProgress(ctx context.Context, characterID string) ([]domain.JobClassProgress, error) {
	if _, err := s.characterRepo.GetCharacter(ctx, characterID); err != nil {
		return nil, err
	}

	cjcs, err := s.characterRepo.GetCharacterJobClasses(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get character job classes: %w", err)
	}

	rows := make([]domain.JobClassProgress, 0, len(cjcs))
	for i := range cjcs {
		jc, err := s.jobClassRepo.GetJobClassByID(ctx, cjcs[i].JobClassID)
		if err != nil {
			return nil, fmt.Errorf("failed to get job class %d: %w", cjcs[i].JobClassID, err)
		}
		rows = append(rows, s.progressRow(jc, &cjcs[i]))
	}
	return rows, nil
}

// GetAuditTrail returns recent experience grants for a character.
func (s *service) GetAuditTrail(ctx context.Context, characterID string, limit int) ([]domain.ExperienceAudit, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.characterRepo.GetExperienceAudits(ctx, characterID, limit)
}
