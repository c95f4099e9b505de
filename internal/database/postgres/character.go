package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harukigames/gamecore/internal/domain"
	"github.com/harukigames/gamecore/internal/repository"
)

type characterRepository struct {
	db *pgxpool.Pool
}

// NewCharacterRepository creates a new PostgreSQL character repository.
func NewCharacterRepository(db *pgxpool.Pool) repository.Character {
	return &characterRepository{db: db}
}

const characterJobClassColumns = `character_job_class_id, character_id, job_class_id,
	level, experience, skill_points, is_current, unlocked_at`

func scanCharacterJobClass(row pgx.Row) (*domain.CharacterJobClass, error) {
	var cjc domain.CharacterJobClass
	err := row.Scan(&cjc.ID, &cjc.CharacterID, &cjc.JobClassID,
		&cjc.Level, &cjc.Experience, &cjc.SkillPoints, &cjc.IsCurrent, &cjc.UnlockedAt)
	if err != nil {
		return nil, err
	}
	return &cjc, nil
}

func (r *characterRepository) GetCharacter(ctx context.Context, id string) (*domain.Character, error) {
	characterUUID, err := parseCharacterUUID(id)
	if err != nil {
		return nil, domain.ErrCharacterNotFound
	}

	query := `
		SELECT character_id, name, current_hp, current_mp, created_at, updated_at
		FROM characters
		WHERE character_id = $1
	`

	var c domain.Character
	err = r.db.QueryRow(ctx, query, characterUUID).Scan(&c.ID, &c.Name, &c.CurrentHP, &c.CurrentMP, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCharacterNotFound
		}
		return nil, fmt.Errorf("failed to get character: %w", err)
	}
	return &c, nil
}

func (r *characterRepository) InsertCharacter(ctx context.Context, c *domain.Character) error {
	characterUUID, err := parseCharacterUUID(c.ID)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO characters (character_id, name, current_hp, current_mp)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	err = r.db.QueryRow(ctx, query, characterUUID, c.Name, c.CurrentHP, c.CurrentMP).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert character: %w", err)
	}
	return nil
}

func (r *characterRepository) GetCharacterJobClasses(ctx context.Context, characterID string) ([]domain.CharacterJobClass, error) {
	characterUUID, err := parseCharacterUUID(characterID)
	if err != nil {
		return nil, domain.ErrCharacterNotFound
	}

	query := `SELECT ` + characterJobClassColumns + `
		FROM character_job_classes
		WHERE character_id = $1
		ORDER BY unlocked_at`

	rows, err := r.db.Query(ctx, query, characterUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to list character job classes: %w", err)
	}
	defer rows.Close()

	var classes []domain.CharacterJobClass
	for rows.Next() {
		cjc, err := scanCharacterJobClass(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan character job class: %w", err)
		}
		classes = append(classes, *cjc)
	}
	return classes, rows.Err()
}

func (r *characterRepository) GetCharacterJobClass(ctx context.Context, characterID string, jobClassID int) (*domain.CharacterJobClass, error) {
	characterUUID, err := parseCharacterUUID(characterID)
	if err != nil {
		return nil, domain.ErrCharacterNotFound
	}

	query := `SELECT ` + characterJobClassColumns + `
		FROM character_job_classes
		WHERE character_id = $1 AND job_class_id = $2`

	cjc, err := scanCharacterJobClass(r.db.QueryRow(ctx, query, characterUUID, jobClassID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get character job class: %w", err)
	}
	return cjc, nil
}

func (r *characterRepository) GetCurrentJobClass(ctx context.Context, characterID string) (*domain.CharacterJobClass, error) {
	characterUUID, err := parseCharacterUUID(characterID)
	if err != nil {
		return nil, domain.ErrCharacterNotFound
	}

	query := `SELECT ` + characterJobClassColumns + `
		FROM character_job_classes
		WHERE character_id = $1 AND is_current`

	cjc, err := scanCharacterJobClass(r.db.QueryRow(ctx, query, characterUUID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoCurrentJob
		}
		return nil, fmt.Errorf("failed to get current job class: %w", err)
	}
	return cjc, nil
}

func (r *characterRepository) InsertCharacterJobClass(ctx context.Context, cjc *domain.CharacterJobClass) (int, error) {
	characterUUID, err := parseCharacterUUID(cjc.CharacterID)
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO character_job_classes (character_id, job_class_id, level, experience, skill_points, is_current)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING character_job_class_id, unlocked_at
	`

	err = r.db.QueryRow(ctx, query, characterUUID, cjc.JobClassID, cjc.Level, cjc.Experience, cjc.SkillPoints, cjc.IsCurrent).
		Scan(&cjc.ID, &cjc.UnlockedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert character job class: %w", err)
	}
	return cjc.ID, nil
}

func (r *characterRepository) GetExperienceAudits(ctx context.Context, characterID string, limit int) ([]domain.ExperienceAudit, error) {
	characterUUID, err := parseCharacterUUID(characterID)
	if err != nil {
		return nil, domain.ErrCharacterNotFound
	}

	query := `
		SELECT audit_id, character_id, job_class_id, amount, reason, actor, recorded_at
		FROM experience_audits
		WHERE character_id = $1
		ORDER BY recorded_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, characterUUID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list experience audits: %w", err)
	}
	defer rows.Close()

	var audits []domain.ExperienceAudit
	for rows.Next() {
		var a domain.ExperienceAudit
		if err := rows.Scan(&a.ID, &a.CharacterID, &a.JobClassID, &a.Amount, &a.Reason, &a.Actor, &a.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan experience audit: %w", err)
		}
		audits = append(audits, a)
	}
	return audits, rows.Err()
}
