package experience

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/harukigames/gamecore/internal/concurrency"
	"github.com/harukigames/gamecore/internal/domain"
	"github.com/harukigames/gamecore/internal/event"
	"github.com/harukigames/gamecore/internal/repository"
)

// MockCharacterRepository
type MockCharacterRepository struct {
	mock.Mock
}

func (m *MockCharacterRepository) GetCharacter(ctx context.Context, id string) (*domain.Character, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockCharacterRepository) InsertCharacter(ctx context.Context, c *domain.Character) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCharacterRepository) GetCharacterJobClasses(ctx context.Context, characterID string) ([]domain.CharacterJobClass, error) {
	args := m.Called(ctx, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CharacterJobClass), args.Error(1)
}

func (m *MockCharacterRepository) GetCharacterJobClass(ctx context.Context, characterID string, jobClassID int) (*domain.CharacterJobClass, error) {
	args := m.Called(ctx, characterID, jobClassID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CharacterJobClass), args.Error(1)
}

func (m *MockCharacterRepository) GetCurrentJobClass(ctx context.Context, characterID string) (*domain.CharacterJobClass, error) {
	args := m.Called(ctx, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CharacterJobClass), args.Error(1)
}

func (m *MockCharacterRepository) InsertCharacterJobClass(ctx context.Context, cjc *domain.CharacterJobClass) (int, error) {
	args := m.Called(ctx, cjc)
	return args.Int(0), args.Error(1)
}

func (m *MockCharacterRepository) GetExperienceAudits(ctx context.Context, characterID string, limit int) ([]domain.ExperienceAudit, error) {
	args := m.Called(ctx, characterID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExperienceAudit), args.Error(1)
}

// MockJobClassRepository
type MockJobClassRepository struct {
	mock.Mock
}

func (m *MockJobClassRepository) GetAllJobClasses(ctx context.Context) ([]domain.JobClass, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JobClass), args.Error(1)
}

func (m *MockJobClassRepository) GetJobClassByID(ctx context.Context, id int) (*domain.JobClass, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobClass), args.Error(1)
}

func (m *MockJobClassRepository) GetJobClassByName(ctx context.Context, name string) (*domain.JobClass, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobClass), args.Error(1)
}

func (m *MockJobClassRepository) InsertJobClass(ctx context.Context, jc *domain.JobClass) (int, error) {
	args := m.Called(ctx, jc)
	return args.Int(0), args.Error(1)
}

func (m *MockJobClassRepository) UpdateJobClass(ctx context.Context, id int, jc *domain.JobClass) error {
	args := m.Called(ctx, id, jc)
	return args.Error(0)
}

func (m *MockJobClassRepository) GetJobClassUsage(ctx context.Context, id int) (*domain.JobClassUsage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobClassUsage), args.Error(1)
}

func (m *MockJobClassRepository) GetSyncMetadata(ctx context.Context, configName string) (*domain.SyncMetadata, error) {
	args := m.Called(ctx, configName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncMetadata), args.Error(1)
}

func (m *MockJobClassRepository) UpsertSyncMetadata(ctx context.Context, metadata *domain.SyncMetadata) error {
	args := m.Called(ctx, metadata)
	return args.Error(0)
}

// MockTx
type MockTx struct {
	mock.Mock
}

func (m *MockTx) GetCharacterJobClassForUpdate(ctx context.Context, characterID string, jobClassID int) (*domain.CharacterJobClass, error) {
	args := m.Called(ctx, characterID, jobClassID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CharacterJobClass), args.Error(1)
}

func (m *MockTx) UpdateCharacterJobClassProgress(ctx context.Context, cjc *domain.CharacterJobClass) error {
	args := m.Called(ctx, cjc)
	return args.Error(0)
}

func (m *MockTx) InsertExperienceAudit(ctx context.Context, audit *domain.ExperienceAudit) error {
	args := m.Called(ctx, audit)
	return args.Error(0)
}

func (m *MockTx) SetCurrentJobClass(ctx context.Context, characterID string, jobClassID int) error {
	args := m.Called(ctx, characterID, jobClassID)
	return args.Error(0)
}

func (m *MockTx) InsertSkillInvestment(ctx context.Context, inv *domain.CharacterSkillInvestment) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockTx) GetCharacterItemForUpdate(ctx context.Context, id string) (*domain.CharacterItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CharacterItem), args.Error(1)
}

func (m *MockTx) GetEquippedItemInSlot(ctx context.Context, characterID string, slot domain.EquipmentSlot) (*domain.CharacterItem, error) {
	args := m.Called(ctx, characterID, slot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CharacterItem), args.Error(1)
}

func (m *MockTx) UpdateCharacterItem(ctx context.Context, item *domain.CharacterItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockTx) DeleteCharacterItem(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTx) GetWarehouseForUpdate(ctx context.Context, id int) (*domain.Warehouse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Warehouse), args.Error(1)
}

func (m *MockTx) AdjustWarehouseUsedSlots(ctx context.Context, id int, delta int) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *MockTx) UpdateCharacterVitals(ctx context.Context, characterID string, currentHP, currentMP int) error {
	args := m.Called(ctx, characterID, currentHP, currentMP)
	return args.Error(0)
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockTxBeginner
type MockTxBeginner struct {
	mock.Mock
}

func (m *MockTxBeginner) BeginTx(ctx context.Context) (repository.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.Tx), args.Error(1)
}

func warriorClass() *domain.JobClass {
	return &domain.JobClass{
		ID:                   1,
		Name:                 "Warrior",
		JobType:              domain.JobTypeBasic,
		MaxLevel:             50,
		ExperienceMultiplier: 1.0,
	}
}

func newTestService(chars *MockCharacterRepository, jobs *MockJobClassRepository, txb *MockTxBeginner, bus event.Bus) Service {
	return NewService(chars, jobs, txb, concurrency.NewLockManager(), bus, DefaultCurve(), 3)
}

func TestGrantExperienceLevelsUpAndGrantsSkillPoints(t *testing.T) {
	chars := new(MockCharacterRepository)
	jobs := new(MockJobClassRepository)
	txb := new(MockTxBeginner)
	tx := new(MockTx)
	bus := event.NewMemoryBus()

	var published []event.Event
	bus.Subscribe(event.ExperienceGranted, func(ctx context.Context, e event.Event) error {
		published = append(published, e)
		return nil
	})
	bus.Subscribe(event.CharacterLeveledUp, func(ctx context.Context, e event.Event) error {
		published = append(published, e)
		return nil
	})

	chars.On("GetCharacter", mock.Anything, "char-1").Return(&domain.Character{ID: "char-1"}, nil)
	chars.On("GetCurrentJobClass", mock.Anything, "char-1").Return(&domain.CharacterJobClass{
		CharacterID: "char-1", JobClassID: 1, Level: 1, IsCurrent: true,
	}, nil)
	jobs.On("GetJobClassByID", mock.Anything, 1).Return(warriorClass(), nil)
	txb.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("GetCharacterJobClassForUpdate", mock.Anything, "char-1", 1).Return(&domain.CharacterJobClass{
		CharacterID: "char-1", JobClassID: 1, Level: 1, Experience: 0, SkillPoints: 0,
	}, nil)
	tx.On("UpdateCharacterJobClassProgress", mock.Anything, mock.MatchedBy(func(cjc *domain.CharacterJobClass) bool {
		return cjc.Level == 2 && cjc.Experience == 150 && cjc.SkillPoints == 3
	})).Return(nil)
	tx.On("InsertExperienceAudit", mock.Anything, mock.MatchedBy(func(a *domain.ExperienceAudit) bool {
		return a.CharacterID == "char-1" && a.Amount == 150 && a.Reason == "event reward" && a.Actor == "gm-aoi"
	})).Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)
	tx.On("Rollback", mock.Anything).Return(nil)

	svc := newTestService(chars, jobs, txb, bus)
	result, err := svc.GrantExperience(context.Background(), "char-1", 150, "event reward", "gm-aoi")
	require.NoError(t, err)

	assert.Equal(t, 1, result.JobClassID)
	assert.Equal(t, int64(150), result.ExperienceGained)
	assert.Equal(t, int64(150), result.NewExperience)
	assert.Equal(t, 2, result.NewLevel)
	assert.True(t, result.LeveledUp)
	assert.Equal(t, 3, result.SkillPointsGained)
	assert.Equal(t, int64(232), result.ExpToNextLevel)
	assert.Len(t, published, 2)

	tx.AssertExpectations(t)
	chars.AssertExpectations(t)
}

func TestGrantExperienceWithoutLevelUp(t *testing.T) {
	chars := new(MockCharacterRepository)
	jobs := new(MockJobClassRepository)
	txb := new(MockTxBeginner)
	tx := new(MockTx)

	chars.On("GetCharacter", mock.Anything, "char-1").Return(&domain.Character{ID: "char-1"}, nil)
	chars.On("GetCurrentJobClass", mock.Anything, "char-1").Return(&domain.CharacterJobClass{
		CharacterID: "char-1", JobClassID: 1, Level: 1, IsCurrent: true,
	}, nil)
	jobs.On("GetJobClassByID", mock.Anything, 1).Return(warriorClass(), nil)
	txb.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("GetCharacterJobClassForUpdate", mock.Anything, "char-1", 1).Return(&domain.CharacterJobClass{
		CharacterID: "char-1", JobClassID: 1, Level: 1, Experience: 0, SkillPoints: 5,
	}, nil)
	tx.On("UpdateCharacterJobClassProgress", mock.Anything, mock.MatchedBy(func(cjc *domain.CharacterJobClass) bool {
		return cjc.Level == 1 && cjc.Experience == 40 && cjc.SkillPoints == 5
	})).Return(nil)
	tx.On("InsertExperienceAudit", mock.Anything, mock.Anything).Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)
	tx.On("Rollback", mock.Anything).Return(nil)

	svc := newTestService(chars, jobs, txb, nil)
	result, err := svc.GrantExperience(context.Background(), "char-1", 40, "quest", "gm-aoi")
	require.NoError(t, err)

	assert.False(t, result.LeveledUp)
	assert.Equal(t, 0, result.SkillPointsGained)
	assert.Equal(t, int64(60), result.ExpToNextLevel)
	assert.InDelta(t, 0.4, result.LevelProgress, 0.001)
}

func TestGrantExperienceClampsLevelAtMax(t *testing.T) {
	chars := new(MockCharacterRepository)
	jobs := new(MockJobClassRepository)
	txb := new(MockTxBeginner)
	tx := new(MockTx)

	jc := warriorClass()
	jc.MaxLevel = 2

	chars.On("GetCharacter", mock.Anything, "char-1").Return(&domain.Character{ID: "char-1"}, nil)
	chars.On("GetCurrentJobClass", mock.Anything, "char-1").Return(&domain.CharacterJobClass{
		CharacterID: "char-1", JobClassID: 1, Level: 2, IsCurrent: true,
	}, nil)
	jobs.On("GetJobClassByID", mock.Anything, 1).Return(jc, nil)
	txb.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("GetCharacterJobClassForUpdate", mock.Anything, "char-1", 1).Return(&domain.CharacterJobClass{
		CharacterID: "char-1", JobClassID: 1, Level: 2, Experience: 100, SkillPoints: 3,
	}, nil)
	tx.On("UpdateCharacterJobClassProgress", mock.Anything, mock.MatchedBy(func(cjc *domain.CharacterJobClass) bool {
		// Experience keeps accumulating past the cap; level and points do not.
		return cjc.Level == 2 && cjc.Experience == 100100 && cjc.SkillPoints == 3
	})).Return(nil)
	tx.On("InsertExperienceAudit", mock.Anything, mock.Anything).Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)
	tx.On("Rollback", mock.Anything).Return(nil)

	svc := newTestService(chars, jobs, txb, nil)
	result, err := svc.GrantExperience(context.Background(), "char-1", 100000, "stress", "gm-aoi")
	require.NoError(t, err)

	assert.Equal(t, 2, result.NewLevel)
	assert.False(t, result.LeveledUp)
	assert.Equal(t, 0, result.SkillPointsGained)
	assert.Equal(t, int64(0), result.ExpToNextLevel)
	assert.Equal(t, 1.0, result.LevelProgress)
}

func TestGrantExperienceRejectsBadInput(t *testing.T) {
	svc := newTestService(new(MockCharacterRepository), new(MockJobClassRepository), new(MockTxBeginner), nil)

	_, err := svc.GrantExperience(context.Background(), "char-1", 0, "r", "a")
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = svc.GrantExperience(context.Background(), "char-1", -10, "r", "a")
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = svc.GrantExperience(context.Background(), "char-1", 10, "", "a")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.GrantExperience(context.Background(), "char-1", 10, "r", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGrantExperienceRollsBackWhenAuditFails(t *testing.T) {
	chars := new(MockCharacterRepository)
	jobs := new(MockJobClassRepository)
	txb := new(MockTxBeginner)
	tx := new(MockTx)

	chars.On("GetCharacter", mock.Anything, "char-1").Return(&domain.Character{ID: "char-1"}, nil)
	chars.On("GetCurrentJobClass", mock.Anything, "char-1").Return(&domain.CharacterJobClass{
		CharacterID: "char-1", JobClassID: 1, Level: 1, IsCurrent: true,
	}, nil)
	jobs.On("GetJobClassByID", mock.Anything, 1).Return(warriorClass(), nil)
	txb.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("GetCharacterJobClassForUpdate", mock.Anything, "char-1", 1).Return(&domain.CharacterJobClass{
		CharacterID: "char-1", JobClassID: 1, Level: 1,
	}, nil)
	tx.On("UpdateCharacterJobClassProgress", mock.Anything, mock.Anything).Return(nil)
	tx.On("InsertExperienceAudit", mock.Anything, mock.Anything).Return(errors.New("audit table unavailable"))
	tx.On("Rollback", mock.Anything).Return(nil)

	svc := newTestService(chars, jobs, txb, nil)
	_, err := svc.GrantExperience(context.Background(), "char-1", 10, "r", "a")
	require.Error(t, err)

	tx.AssertNotCalled(t, "Commit", mock.Anything)
	tx.AssertCalled(t, "Rollback", mock.Anything)
}

func TestGrantExperienceCharacterNotFound(t *testing.T) {
	chars := new(MockCharacterRepository)
	chars.On("GetCharacter", mock.Anything, "missing").Return(nil, domain.ErrCharacterNotFound)

	svc := newTestService(chars, new(MockJobClassRepository), new(MockTxBeginner), nil)
	_, err := svc.GrantExperience(context.Background(), "missing", 10, "r", "a")
	assert.ErrorIs(t, err, domain.ErrCharacterNotFound)
}

func TestGetProgress(t *testing.T) {
	chars := new(MockCharacterRepository)
	jobs := new(MockJobClassRepository)

	chars.On("GetCharacter", mock.Anything, "char-1").Return(&domain.Character{ID: "char-1"}, nil)
	chars.On("GetCharacterJobClasses", mock.Anything, "char-1").Return([]domain.CharacterJobClass{
		{CharacterID: "char-1", JobClassID: 1, Level: 2, Experience: 150, SkillPoints: 3, IsCurrent: true},
	}, nil)
	jobs.On("GetJobClassByID", mock.Anything, 1).Return(warriorClass(), nil)

	svc := newTestService(chars, jobs, new(MockTxBeginner), nil)
	rows, err := svc.GetProgress(context.Background(), "char-1")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "Warrior", rows[0].Name)
	assert.Equal(t, 2, rows[0].Level)
	assert.Equal(t, int64(232), rows[0].ExpToNext)
	assert.True(t, rows[0].IsCurrent)
}
