package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harukigames/gamecore/internal/database/postgres"
	"github.com/harukigames/gamecore/internal/eventlog"
	"github.com/harukigames/gamecore/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	JobClass  repository.JobClass
	Character repository.Character
	Skill     repository.Skill
	Item      repository.Item
	Inventory repository.Inventory
	Warehouse repository.Warehouse
	Tx        repository.TxBeginner
	EventLog  eventlog.Repository
}

// InitializeRepositories creates all repository implementations over the
// shared connection pool.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		JobClass:  postgres.NewJobClassRepository(dbPool),
		Character: postgres.NewCharacterRepository(dbPool),
		Skill:     postgres.NewSkillRepository(dbPool),
		Item:      postgres.NewItemRepository(dbPool),
		Inventory: postgres.NewInventoryRepository(dbPool),
		Warehouse: postgres.NewWarehouseRepository(dbPool),
		Tx:        postgres.NewTxBeginner(dbPool),
		EventLog:  postgres.NewEventLogRepository(dbPool),
	}
}
