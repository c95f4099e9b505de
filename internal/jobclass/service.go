package jobclass

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/harukigames/gamecore/internal/domain"
	"github.com/harukigames/gamecore/internal/logger"
	"github.com/harukigames/gamecore/internal/repository"
	"github.com/harukigames/gamecore/internal/statcurve"
)

const (
	templateCacheSize = 128
	templateCacheTTL  = 5 * time.Minute
)

// Service manages job class templates: designer CRUD, stat previews and the
// usage statistics shown before destructive edits.
type Service interface {
	ListJobClasses(ctx context.Context) ([]domain.JobClass, error)
	GetJobClass(ctx context.Context, id int) (*domain.JobClass, error)
	CreateJobClass(ctx context.Context, jc *domain.JobClass) (*domain.JobClass, error)
	UpdateJobClass(ctx context.Context, id int, jc *domain.JobClass) (*domain.JobClass, error)

	// GetUsage reports how many characters reference the template.
	GetUsage(ctx context.Context, id int) (*domain.JobClassUsage, error)

	// StatsPreview derives stat rows for the requested levels.
	StatsPreview(ctx context.Context, id int, levels []int) ([]statcurve.LevelRow, error)
}

type service struct {
	jobClassRepo repository.JobClass
	templates    *expirable.LRU[int, *domain.JobClass]
}

// NewService creates a new job class service.
func NewService(jobClassRepo repository.JobClass) Service {
	return &service{
		jobClassRepo: jobClassRepo,
		templates:    expirable.NewLRU[int, *domain.JobClass](templateCacheSize, nil, templateCacheTTL),
	}
}

func validate(jc *domain.JobClass) error {
	if jc.Name == "" {
		return fmt.Errorf("%w: job class name required", domain.ErrInvalidInput)
	}
	if !domain.ValidJobTypes[jc.JobType] {
		return fmt.Errorf("%w: unknown job type %q", domain.ErrInvalidInput, jc.JobType)
	}
	if jc.MaxLevel < 1 {
		return fmt.Errorf("%w: max_level must be at least 1", domain.ErrInvalidInput)
	}
	if jc.ExperienceMultiplier <= 0 {
		return fmt.Errorf("%w: experience_multiplier must be positive", domain.ErrInvalidInput)
	}
	return nil
}

// ListJobClasses returns all templates.
func (s *service) ListJobClasses(ctx context.Context) ([]domain.JobClass, error) {
	return s.jobClassRepo.GetAllJobClasses(ctx)
}

// GetJobClass returns one template, served from the cache when warm.
func (s *service) GetJobClass(ctx context.Context, id int) (*domain.JobClass, error) {
	if cached, ok := s.templates.Get(id); ok {
		return cached, nil
	}

	jc, err := s.jobClassRepo.GetJobClassByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.templates.Add(id, jc)
	return jc, nil
}

// CreateJobClass validates and persists a new template.
func (s *service) CreateJobClass(ctx context.Context, jc *domain.JobClass) (*domain.JobClass, error) {
	if err := validate(jc); err != nil {
		return nil, err
	}

	if existing, err := s.jobClassRepo.GetJobClassByName(ctx, jc.Name); err == nil && existing != nil {
		return nil, domain.ErrConflict
	}

	id, err := s.jobClassRepo.InsertJobClass(ctx, jc)
	if err != nil {
		return nil, fmt.Errorf("failed to create job class: %w", err)
	}
	jc.ID = id

	logger.FromContext(ctx).Info("Job class created", "jobClassId", id, "name", jc.Name)
	return jc, nil
}

// UpdateJobClass validates and persists template changes, invalidating the
// cache entry.
func (s *service) UpdateJobClass(ctx context.Context, id int, jc *domain.JobClass) (*domain.JobClass, error) {
	if err := validate(jc); err != nil {
		return nil, err
	}
	if _, err := s.jobClassRepo.GetJobClassByID(ctx, id); err != nil {
		return nil, err
	}

	if err := s.jobClassRepo.UpdateJobClass(ctx, id, jc); err != nil {
		return nil, fmt.Errorf("failed to update job class %d: %w", id, err)
	}
	s.templates.Remove(id)
	jc.ID = id

	logger.FromContext(ctx).Info("Job class updated", "jobClassId", id, "name", jc.Name)
	return jc, nil
}

// GetUsage returns reference counts for a template.
func (s *service) GetUsage(ctx context.Context, id int) (*domain.JobClassUsage, error) {
	if _, err := s.jobClassRepo.GetJobClassByID(ctx, id); err != nil {
		return nil, err
	}
	return s.jobClassRepo.GetJobClassUsage(ctx, id)
}

// StatsPreview derives stat rows for the requested levels. An empty level
// list previews level 1 and the max level.
func (s *service) StatsPreview(ctx context.Context, id int, levels []int) ([]statcurve.LevelRow, error) {
	jc, err := s.GetJobClass(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(levels) == 0 {
		levels = []int{1, jc.MaxLevel}
	}
	return statcurve.DeriveRows(jc, levels), nil
}
