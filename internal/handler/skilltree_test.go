package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/harukigames/gamecore/internal/domain"
)

// MockSkillTreeService
type MockSkillTreeService struct {
	mock.Mock
}

func (m *MockSkillTreeService) GetSkillLines(ctx context.Context) ([]domain.SkillLine, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SkillLine), args.Error(1)
}

func (m *MockSkillTreeService) GetSkillLine(ctx context.Context, id int) (*domain.SkillLine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SkillLine), args.Error(1)
}

func (m *MockSkillTreeService) UnlockNode(ctx context.Context, characterID string, nodeID int) (*domain.NodeUnlockResult, error) {
	args := m.Called(ctx, characterID, nodeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NodeUnlockResult), args.Error(1)
}

func (m *MockSkillTreeService) GetInvestments(ctx context.Context, characterID string) ([]domain.CharacterSkillInvestment, error) {
	args := m.Called(ctx, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CharacterSkillInvestment), args.Error(1)
}

func (m *MockSkillTreeService) GetInvestmentSummary(ctx context.Context, skillLineID int) (*domain.InvestmentSummary, error) {
	args := m.Called(ctx, skillLineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvestmentSummary), args.Error(1)
}

func skillTreeRouter(svc *MockSkillTreeService) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/api/v1/skill-lines", HandleListSkillLines(svc))
	r.Get("/api/v1/skill-lines/{id}", HandleGetSkillLine(svc))
	r.Get("/api/v1/skill-lines/{id}/summary", HandleGetInvestmentSummary(svc))
	r.Post("/api/v1/characters/{id}/skill-nodes/{nodeID}/unlock", HandleUnlockSkillNode(svc))
	r.Get("/api/v1/characters/{id}/skill-investments", HandleGetSkillInvestments(svc))
	return r
}

func TestHandleListSkillLines(t *testing.T) {
	svc := new(MockSkillTreeService)
	svc.On("GetSkillLines", mock.Anything).Return([]domain.SkillLine{
		{ID: 1, Name: "Swordsmanship", SkillLineType: domain.SkillLineWeapon},
	}, nil)

	req := httptest.NewRequest("GET", "/api/v1/skill-lines", nil)
	w := httptest.NewRecorder()
	skillTreeRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleUnlockSkillNode(t *testing.T) {
	svc := new(MockSkillTreeService)
	result := &domain.NodeUnlockResult{
		SkillNodeID:     4,
		PointsSpent:     2,
		PointsRemaining: 1,
		Effect:          "attack +5",
	}
	svc.On("UnlockNode", mock.Anything, "c1", 4).Return(result, nil)

	req := httptest.NewRequest("POST", "/api/v1/characters/c1/skill-nodes/4/unlock", nil)
	w := httptest.NewRecorder()
	skillTreeRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data domain.NodeUnlockResult `json:"data"`
	}
	json.NewDecoder(w.Body).Decode(&resp)
	assert.Equal(t, 1, resp.Data.PointsRemaining)
}

func TestHandleUnlockSkillNode_InsufficientPoints(t *testing.T) {
	svc := new(MockSkillTreeService)
	svc.On("UnlockNode", mock.Anything, "c1", 4).Return(nil, domain.ErrInsufficientPoints)

	req := httptest.NewRequest("POST", "/api/v1/characters/c1/skill-nodes/4/unlock", nil)
	w := httptest.NewRecorder()
	skillTreeRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	json.NewDecoder(w.Body).Decode(&resp)
	assert.Equal(t, ErrMsgInsufficientPointsError, resp.Error)
}

func TestHandleUnlockSkillNode_AlreadyUnlocked(t *testing.T) {
	svc := new(MockSkillTreeService)
	svc.On("UnlockNode", mock.Anything, "c1", 4).Return(nil, domain.ErrAlreadyUnlocked)

	req := httptest.NewRequest("POST", "/api/v1/characters/c1/skill-nodes/4/unlock", nil)
	w := httptest.NewRecorder()
	skillTreeRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandleUnlockSkillNode_BadNodeID(t *testing.T) {
	svc := new(MockSkillTreeService)

	req := httptest.NewRequest("POST", "/api/v1/characters/c1/skill-nodes/zzz/unlock", nil)
	w := httptest.NewRecorder()
	skillTreeRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "UnlockNode", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleGetInvestmentSummary(t *testing.T) {
	svc := new(MockSkillTreeService)
	summary := &domain.InvestmentSummary{
		SkillLineID:    2,
		TotalPoints:    30,
		CharacterCount: 3,
		AveragePoints:  10,
	}
	svc.On("GetInvestmentSummary", mock.Anything, 2).Return(summary, nil)

	req := httptest.NewRequest("GET", "/api/v1/skill-lines/2/summary", nil)
	w := httptest.NewRecorder()
	skillTreeRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data domain.InvestmentSummary `json:"data"`
	}
	json.NewDecoder(w.Body).Decode(&resp)
	assert.Equal(t, 30, resp.Data.TotalPoints)
}

func TestHandleGetInvestmentSummary_LineNotFound(t *testing.T) {
	svc := new(MockSkillTreeService)
	svc.On("GetInvestmentSummary", mock.Anything, 99).Return(nil, domain.ErrSkillLineNotFound)

	req := httptest.NewRequest("GET", "/api/v1/skill-lines/99/summary", nil)
	w := httptest.NewRecorder()
	skillTreeRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
