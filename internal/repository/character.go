package repository

import (
	"context"

	"github.com/harukigames/gamecore/internal/domain"
)

// Character defines the interface for character persistence.
type Character interface {
	GetCharacter(ctx context.Context, id string) (*domain.Character, error)
	InsertCharacter(ctx context.Context, c *domain.Character) error
	GetCharacterJobClasses(ctx context.Context, characterID string) ([]domain.CharacterJobClass, error)
	// GetCharacterJobClass returns (nil, nil) when the character has not
	// unlocked the job class.
	GetCharacterJobClass(ctx context.Context, characterID string, jobClassID int) (*domain.CharacterJobClass, error)
	GetCurrentJobClass(ctx context.Context, characterID string) (*domain.CharacterJobClass, error)
	InsertCharacterJobClass(ctx context.Context, cjc *domain.CharacterJobClass) (int, error)
	GetExperienceAudits(ctx context.Context, characterID string, limit int) ([]domain.ExperienceAudit, error)
}
