package eventlog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/harukigames/gamecore/internal/event"
)

// MockRepository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) LogEvent(ctx context.Context, eventType string, characterID *string, payload interface{}) error {
	args := m.Called(ctx, eventType, characterID, payload)
	return args.Error(0)
}

func (m *MockRepository) CleanupOldEvents(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func TestSubscribeLogsLevelUpEvents(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	bus := event.NewMemoryBus()
	svc.Subscribe(bus)

	charID := "char-1"
	repo.On("LogEvent", mock.Anything, string(event.CharacterLeveledUp), &charID, mock.Anything).Return(nil)

	err := bus.Publish(context.Background(), event.NewLevelUpEvent(charID, 2, 1, 2, 3))
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestHandleEventWithoutCharacterID(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo).(*service)

	repo.On("LogEvent", mock.Anything, "custom", (*string)(nil), mock.Anything).Return(nil)

	err := svc.handleEvent(context.Background(), event.Event{Type: "custom", Payload: map[string]int{"x": 1}})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCleanupOldEvents(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("CleanupOldEvents", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(42), nil)

	count, err := svc.CleanupOldEvents(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, int64(42), count)
}
