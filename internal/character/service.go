package character

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/harukigames/gamecore/internal/concurrency"
	"github.com/harukigames/gamecore/internal/domain"
	"github.com/harukigames/gamecore/internal/event"
	"github.com/harukigames/gamecore/internal/experience"
	"github.com/harukigames/gamecore/internal/logger"
	"github.com/harukigames/gamecore/internal/repository"
	"github.com/harukigames/gamecore/internal/statcurve"
)

// Service manages character records and their job class assignments. Every
// character has exactly one current job class at all times.
type Service interface {
	// CreateCharacter creates a character starting in the given job class
	// at level 1 with full vitals.
	CreateCharacter(ctx context.Context, name string, jobClassID int) (*domain.CharacterDetail, error)

	// GetCharacter returns the character with its current job and derived
	// stats.
	GetCharacter(ctx context.Context, id string) (*domain.CharacterDetail, error)

	// UnlockJobClass adds a job class to the character at level 1 without
	// switching to it.
	UnlockJobClass(ctx context.Context, characterID string, jobClassID int) (*domain.CharacterJobClass, error)

	// SwitchJob atomically moves the is_current flag to another unlocked
	// job class.
	SwitchJob(ctx context.Context, characterID string, jobClassID int) (*domain.CharacterDetail, error)
}

type service struct {
	characterRepo repository.Character
	jobClassRepo  repository.JobClass
	txBeginner    repository.TxBeginner
	locks         *concurrency.LockManager
	publisher     event.Bus
	curve         experience.Curve
}

// NewService creates a new character service.
func NewService(
	characterRepo repository.Character,
	jobClassRepo repository.JobClass,
	txBeginner repository.TxBeginner,
	locks *concurrency.LockManager,
	publisher event.Bus,
	curve experience.Curve,
) Service {
	return &service{
		characterRepo: characterRepo,
		jobClassRepo:  jobClassRepo,
		txBeginner:    txBeginner,
		locks:         locks,
		publisher:     publisher,
		curve:         curve,
	}
}

// CreateCharacter creates a character in the given job class. Vitals start
// at the level-1 derived maxima.
func (s *service) CreateCharacter(ctx context.Context, name string, jobClassID int) (*domain.CharacterDetail, error) {
	log := logger.FromContext(ctx)

	if name == "" {
		return nil, domain.ErrInvalidInput
	}

	jc, err := s.jobClassRepo.GetJobClassByID(ctx, jobClassID)
	if err != nil {
		return nil, err
	}

	stats := statcurve.DeriveForJobClass(jc, 1)
	now := time.Now().UTC()
	c := &domain.Character{
		ID:        uuid.NewString(),
		Name:      name,
		CurrentHP: stats.HP,
		CurrentMP: stats.MP,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.characterRepo.InsertCharacter(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create character: %w", err)
	}

	cjc := &domain.CharacterJobClass{
		CharacterID: c.ID,
		JobClassID:  jc.ID,
		Level:       1,
		IsCurrent:   true,
		UnlockedAt:  now,
	}
	if _, err := s.characterRepo.InsertCharacterJobClass(ctx, cjc); err != nil {
		return nil, fmt.Errorf("failed to assign starting job class: %w", err)
	}

	log.Info("Character created", "characterId", c.ID, "name", name, "jobClassId", jc.ID)

	return s.detail(c, jc, cjc), nil
}

// GetCharacter returns the character detail read model.
func (s *service) GetCharacter(ctx context.Context, id string) (*domain.CharacterDetail, error) {
	c, err := s.characterRepo.GetCharacter(ctx, id)
	if err != nil {
		return nil, err
	}

	current, err := s.characterRepo.GetCurrentJobClass(ctx, id)
	if err != nil {
		return nil, err
	}

	jc, err := s.jobClassRepo.GetJobClassByID(ctx, current.JobClassID)
	if err != nil {
		return nil, fmt.Errorf("failed to get job class %d: %w", current.JobClassID, err)
	}

	return s.detail(c, jc, current), nil
}

// UnlockJobClass adds a job class to the character at level 1.
func (s *service) UnlockJobClass(ctx context.Context, characterID string, jobClassID int) (*domain.CharacterJobClass, error) {
	if _, err := s.characterRepo.GetCharacter(ctx, characterID); err != nil {
		return nil, err
	}
	jc, err := s.jobClassRepo.GetJobClassByID(ctx, jobClassID)
	if err != nil {
		return nil, err
	}

	if existing, err := s.characterRepo.GetCharacterJobClass(ctx, characterID, jobClassID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrConflict
	}

	cjc := &domain.CharacterJobClass{
		CharacterID: characterID,
		JobClassID:  jc.ID,
		Level:       1,
		UnlockedAt:  time.Now().UTC(),
	}
	id, err := s.characterRepo.InsertCharacterJobClass(ctx, cjc)
	if err != nil {
		return nil, fmt.Errorf("failed to unlock job class: %w", err)
	}
	cjc.ID = id
	return cjc, nil
}

// SwitchJob atomically moves is_current to the target job class. The target
// must already be unlocked for the character.
func (s *service) SwitchJob(ctx context.Context, characterID string, jobClassID int) (*domain.CharacterDetail, error) {
	log := logger.FromContext(ctx)

	c, err := s.characterRepo.GetCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}

	current, err := s.characterRepo.GetCurrentJobClass(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if current.JobClassID == jobClassID {
		jc, err := s.jobClassRepo.GetJobClassByID(ctx, jobClassID)
		if err != nil {
			return nil, err
		}
		return s.detail(c, jc, current), nil
	}

	target, err := s.characterRepo.GetCharacterJobClass(ctx, characterID, jobClassID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domain.ErrJobClassNotFound
	}

	jc, err := s.jobClassRepo.GetJobClassByID(ctx, jobClassID)
	if err != nil {
		return nil, fmt.Errorf("failed to get job class %d: %w", jobClassID, err)
	}

	lock := s.locks.GetLock(characterID)
	lock.Lock()
	defer lock.Unlock()

	tx, err := s.txBeginner.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := tx.SetCurrentJobClass(ctx, characterID, jobClassID); err != nil {
		return nil, fmt.Errorf("failed to switch job class: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit job switch: %w", err)
	}

	log.Info("Job class switched",
		"characterId", characterID,
		"oldJobClassId", current.JobClassID,
		"newJobClassId", jobClassID)

	if s.publisher != nil {
		switched := event.NewJobSwitchedEvent(characterID, current.JobClassID, jobClassID)
		if err := s.publisher.Publish(ctx, switched); err != nil {
			log.Warn("Failed to publish job switched event", "error", err)
		}
	}

	target.IsCurrent = true
	return s.detail(c, jc, target), nil
}

// detail assembles the read model, clamping vitals to the derived maxima.
func (s *service) detail(c *domain.Character, jc *domain.JobClass, cjc *domain.CharacterJobClass) *domain.CharacterDetail {
	stats := statcurve.DeriveForJobClass(jc, cjc.Level)

	expToNext := int64(0)
	if cjc.Level < jc.MaxLevel {
		expToNext = s.curve.RequiredForLevel(cjc.Level+1, jc.ExperienceMultiplier) - cjc.Experience
		if expToNext < 0 {
			expToNext = 0
		}
	}

	detail := &domain.CharacterDetail{
		Character: *c,
		CurrentJob: &domain.JobClassProgress{
			JobClassID:    jc.ID,
			Name:          jc.Name,
			JobType:       jc.JobType,
			Level:         cjc.Level,
			MaxLevel:      jc.MaxLevel,
			Experience:    cjc.Experience,
			ExpToNext:     expToNext,
			LevelProgress: experience.Progress(s.curve, cjc.Experience, jc.ExperienceMultiplier, cjc.Level, jc.MaxLevel),
			SkillPoints:   cjc.SkillPoints,
			IsCurrent:     true,
		},
		DerivedStats: &stats,
	}

	if detail.Character.CurrentHP > stats.HP {
		detail.Character.CurrentHP = stats.HP
	}
	if detail.Character.CurrentMP > stats.MP {
		detail.Character.CurrentMP = stats.MP
	}
	return detail
}
