package repository

import (
	"context"

	"github.com/harukigames/gamecore/internal/domain"
)

// JobClass defines the interface for job class template persistence.
type JobClass interface {
	GetAllJobClasses(ctx context.Context) ([]domain.JobClass, error)
	GetJobClassByID(ctx context.Context, id int) (*domain.JobClass, error)
	// GetJobClassByName returns (nil, nil) when no template has the name.
	GetJobClassByName(ctx context.Context, name string) (*domain.JobClass, error)
	InsertJobClass(ctx context.Context, jc *domain.JobClass) (int, error)
	UpdateJobClass(ctx context.Context, id int, jc *domain.JobClass) error
	GetJobClassUsage(ctx context.Context, id int) (*domain.JobClassUsage, error)

	// Sync metadata for designer content change detection
	GetSyncMetadata(ctx context.Context, configName string) (*domain.SyncMetadata, error)
	UpsertSyncMetadata(ctx context.Context, metadata *domain.SyncMetadata) error
}
