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

type jobClassRepository struct {
	db *pgxpool.Pool
}

// NewJobClassRepository creates a new PostgreSQL job class repository.
func NewJobClassRepository(db *pgxpool.Pool) repository.JobClass {
	return &jobClassRepository{db: db}
}

const jobClassColumns = `job_class_id, name, job_type, max_level, experience_multiplier,
	base_stats, multipliers, created_at, updated_at`

func scanJobClass(row pgx.Row) (*domain.JobClass, error) {
	var jc domain.JobClass
	var baseStats, multipliers []byte

	err := row.Scan(&jc.ID, &jc.Name, &jc.JobType, &jc.MaxLevel, &jc.ExperienceMultiplier,
		&baseStats, &multipliers, &jc.CreatedAt, &jc.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := unmarshalJSONB(baseStats, &jc.BaseStats); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(multipliers, &jc.Multipliers); err != nil {
		return nil, err
	}
	return &jc, nil
}

func (r *jobClassRepository) GetAllJobClasses(ctx context.Context) ([]domain.JobClass, error) {
	query := `SELECT ` + jobClassColumns + ` FROM job_classes ORDER BY job_class_id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list job classes: %w", err)
	}
	defer rows.Close()

	var classes []domain.JobClass
	for rows.Next() {
		jc, err := scanJobClass(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job class: %w", err)
		}
		classes = append(classes, *jc)
	}
	return classes, rows.Err()
}

func (r *jobClassRepository) GetJobClassByID(ctx context.Context, id int) (*domain.JobClass, error) {
	query := `SELECT ` + jobClassColumns + ` FROM job_classes WHERE job_class_id = $1`

	jc, err := scanJobClass(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrJobClassNotFound
		}
		return nil, fmt.Errorf("failed to get job class: %w", err)
	}
	return jc, nil
}

func (r *jobClassRepository) GetJobClassByName(ctx context.Context, name string) (*domain.JobClass, error) {
	query := `SELECT ` + jobClassColumns + ` FROM job_classes WHERE name = $1`

	jc, err := scanJobClass(r.db.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job class by name: %w", err)
	}
	return jc, nil
}

func (r *jobClassRepository) InsertJobClass(ctx context.Context, jc *domain.JobClass) (int, error) {
	baseStats, err := marshalJSONB(jc.BaseStats)
	if err != nil {
		return 0, err
	}
	multipliers, err := marshalJSONB(jc.Multipliers)
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO job_classes (name, job_type, max_level, experience_multiplier, base_stats, multipliers)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING job_class_id
	`

	var id int
	err = r.db.QueryRow(ctx, query, jc.Name, jc.JobType, jc.MaxLevel, jc.ExperienceMultiplier, baseStats, multipliers).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert job class: %w", err)
	}
	return id, nil
}

func (r *jobClassRepository) UpdateJobClass(ctx context.Context, id int, jc *domain.JobClass) error {
	baseStats, err := marshalJSONB(jc.BaseStats)
	if err != nil {
		return err
	}
	multipliers, err := marshalJSONB(jc.Multipliers)
	if err != nil {
		return err
	}

	query := `
		UPDATE job_classes
		SET name = $2, job_type = $3, max_level = $4, experience_multiplier = $5,
		    base_stats = $6, multipliers = $7, updated_at = NOW()
		WHERE job_class_id = $1
	`

	tag, err := r.db.Exec(ctx, query, id, jc.Name, jc.JobType, jc.MaxLevel, jc.ExperienceMultiplier, baseStats, multipliers)
	if err != nil {
		return fmt.Errorf("failed to update job class: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrJobClassNotFound
	}
	return nil
}

func (r *jobClassRepository) GetJobClassUsage(ctx context.Context, id int) (*domain.JobClassUsage, error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_current)
		FROM character_job_classes
		WHERE job_class_id = $1
	`

	usage := domain.JobClassUsage{JobClassID: id}
	if err := r.db.QueryRow(ctx, query, id).Scan(&usage.CharacterCount, &usage.CurrentCount); err != nil {
		return nil, fmt.Errorf("failed to get job class usage: %w", err)
	}
	return &usage, nil
}

func (r *jobClassRepository) GetSyncMetadata(ctx context.Context, configName string) (*domain.SyncMetadata, error) {
	query := `
		SELECT config_name, last_sync_time, file_hash, file_mod_time
		FROM sync_metadata
		WHERE config_name = $1
	`

	var meta domain.SyncMetadata
	err := r.db.QueryRow(ctx, query, configName).Scan(&meta.ConfigName, &meta.LastSyncTime, &meta.FileHash, &meta.FileModTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get sync metadata: %w", err)
	}
	return &meta, nil
}

func (r *jobClassRepository) UpsertSyncMetadata(ctx context.Context, metadata *domain.SyncMetadata) error {
	query := `
		INSERT INTO sync_metadata (config_name, last_sync_time, file_hash, file_mod_time)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (config_name) DO UPDATE
		SET last_sync_time = EXCLUDED.last_sync_time,
		    file_hash = EXCLUDED.file_hash,
		    file_mod_time = EXCLUDED.file_mod_time
	`

	if _, err := r.db.Exec(ctx, query, metadata.ConfigName, metadata.LastSyncTime, metadata.FileHash, metadata.FileModTime); err != nil {
		return fmt.Errorf("failed to upsert sync metadata: %w", err)
	}
	return nil
}
