package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/harukigames/gamecore/internal/domain"
	"github.com/harukigames/gamecore/internal/statcurve"
)

// MockJobClassService
type MockJobClassService struct {
	mock.Mock
}

func (m *MockJobClassService) ListJobClasses(ctx context.Context) ([]domain.JobClass, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JobClass), args.Error(1)
}

func (m *MockJobClassService) GetJobClass(ctx context.Context, id int) (*domain.JobClass, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobClass), args.Error(1)
}

func (m *MockJobClassService) CreateJobClass(ctx context.Context, jc *domain.JobClass) (*domain.JobClass, error) {
	args := m.Called(ctx, jc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobClass), args.Error(1)
}

func (m *MockJobClassService) UpdateJobClass(ctx context.Context, id int, jc *domain.JobClass) (*domain.JobClass, error) {
	args := m.Called(ctx, id, jc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobClass), args.Error(1)
}

func (m *MockJobClassService) GetUsage(ctx context.Context, id int) (*domain.JobClassUsage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobClassUsage), args.Error(1)
}

func (m *MockJobClassService) StatsPreview(ctx context.Context, id int, levels []int) ([]statcurve.LevelRow, error) {
	args := m.Called(ctx, id, levels)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]statcurve.LevelRow), args.Error(1)
}

func jobClassRouter(svc *MockJobClassService) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/api/v1/job-classes", HandleListJobClasses(svc))
	r.Post("/api/v1/job-classes", HandleCreateJobClass(svc))
	r.Get("/api/v1/job-classes/{id}", HandleGetJobClass(svc))
	r.Put("/api/v1/job-classes/{id}", HandleUpdateJobClass(svc))
	r.Get("/api/v1/job-classes/{id}/stats", HandleJobClassStats(svc))
	r.Get("/api/v1/job-classes/{id}/usage", HandleJobClassUsage(svc))
	return r
}

func TestHandleListJobClasses(t *testing.T) {
	svc := new(MockJobClassService)
	svc.On("ListJobClasses", mock.Anything).Return([]domain.JobClass{
		{ID: 1, Name: "Warrior"},
		{ID: 2, Name: "Mage"},
	}, nil)

	req := httptest.NewRequest("GET", "/api/v1/job-classes", nil)
	w := httptest.NewRecorder()
	jobClassRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []domain.JobClass `json:"data"`
	}
	json.NewDecoder(w.Body).Decode(&resp)
	assert.Len(t, resp.Data, 2)
}

func TestHandleCreateJobClass(t *testing.T) {
	svc := new(MockJobClassService)
	created := &domain.JobClass{ID: 7, Name: "Paladin", JobType: domain.JobTypeAdvanced, MaxLevel: 50, ExperienceMultiplier: 1.5}
	svc.On("CreateJobClass", mock.Anything, mock.MatchedBy(func(jc *domain.JobClass) bool {
		return jc.Name == "Paladin" && jc.JobType == domain.JobTypeAdvanced
	})).Return(created, nil)

	body, _ := json.Marshal(JobClassRequest{
		Name:                 "Paladin",
		JobType:              "advanced",
		MaxLevel:             50,
		ExperienceMultiplier: 1.5,
		BaseStats:            domain.StatBlock{HP: 120},
	})
	req := httptest.NewRequest("POST", "/api/v1/job-classes", bytes.NewReader(body))
	w := httptest.NewRecorder()
	jobClassRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestHandleCreateJobClass_InvalidBody(t *testing.T) {
	svc := new(MockJobClassService)

	body, _ := json.Marshal(JobClassRequest{Name: "", MaxLevel: 50, ExperienceMultiplier: 1})
	req := httptest.NewRequest("POST", "/api/v1/job-classes", bytes.NewReader(body))
	w := httptest.NewRecorder()
	jobClassRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "CreateJobClass", mock.Anything, mock.Anything)
}

func TestHandleGetJobClass_BadID(t *testing.T) {
	svc := new(MockJobClassService)

	req := httptest.NewRequest("GET", "/api/v1/job-classes/abc", nil)
	w := httptest.NewRecorder()
	jobClassRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleJobClassStats(t *testing.T) {
	svc := new(MockJobClassService)
	rows := []statcurve.LevelRow{
		{Level: 1, Stats: domain.StatBlock{HP: 100}},
		{Level: 10, Stats: domain.StatBlock{HP: 190}},
	}
	svc.On("StatsPreview", mock.Anything, 1, []int{1, 10}).Return(rows, nil)

	req := httptest.NewRequest("GET", "/api/v1/job-classes/1/stats?levels=1,10", nil)
	w := httptest.NewRecorder()
	jobClassRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestHandleJobClassStats_DefaultLevels(t *testing.T) {
	svc := new(MockJobClassService)
	svc.On("StatsPreview", mock.Anything, 1, []int(nil)).Return([]statcurve.LevelRow{}, nil)

	req := httptest.NewRequest("GET", "/api/v1/job-classes/1/stats", nil)
	w := httptest.NewRecorder()
	jobClassRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestHandleJobClassStats_MalformedLevels(t *testing.T) {
	svc := new(MockJobClassService)

	req := httptest.NewRequest("GET", "/api/v1/job-classes/1/stats?levels=1,x", nil)
	w := httptest.NewRecorder()
	jobClassRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "StatsPreview", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleJobClassUsage(t *testing.T) {
	svc := new(MockJobClassService)
	svc.On("GetUsage", mock.Anything, 3).Return(&domain.JobClassUsage{JobClassID: 3, CharacterCount: 12, CurrentCount: 4}, nil)

	req := httptest.NewRequest("GET", "/api/v1/job-classes/3/usage", nil)
	w := httptest.NewRecorder()
	jobClassRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data domain.JobClassUsage `json:"data"`
	}
	json.NewDecoder(w.Body).Decode(&resp)
	assert.Equal(t, 12, resp.Data.CharacterCount)
}
