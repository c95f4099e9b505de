package skilltree

import (
	"context"
	"fmt"
	"time"

	"github.com/harukigames/gamecore/internal/concurrency"
	"github.com/harukigames/gamecore/internal/domain"
	"github.com/harukigames/gamecore/internal/event"
	"github.com/harukigames/gamecore/internal/logger"
	"github.com/harukigames/gamecore/internal/repository"
)

const (
	summaryCacheSize = 256
	summaryCacheTTL  = 30 * time.Second
)

// Service is the skill investment tree: node unlocks against available skill
// points, plus per-line investment summaries.
type Service interface {
	GetSkillLines(ctx context.Context) ([]domain.SkillLine, error)
	GetSkillLine(ctx context.Context, id int) (*domain.SkillLine, error)

	// UnlockNode spends points from the character's current job class pool.
	UnlockNode(ctx context.Context, characterID string, nodeID int) (*domain.NodeUnlockResult, error)

	GetInvestments(ctx context.Context, characterID string) ([]domain.CharacterSkillInvestment, error)
	GetInvestmentSummary(ctx context.Context, skillLineID int) (*domain.InvestmentSummary, error)
}

type service struct {
	skillRepo     repository.Skill
	characterRepo repository.Character
	txBeginner    repository.TxBeginner
	locks         *concurrency.LockManager
	publisher     event.Bus
	summaries     *summaryCache
}

// NewService creates a new skill tree service.
func NewService(
	skillRepo repository.Skill,
	characterRepo repository.Character,
	txBeginner repository.TxBeginner,
	locks *concurrency.LockManager,
	publisher event.Bus,
) Service {
	return &service{
		skillRepo:     skillRepo,
		characterRepo: characterRepo,
		txBeginner:    txBeginner,
		locks:         locks,
		publisher:     publisher,
		summaries:     newSummaryCache(summaryCacheSize, summaryCacheTTL),
	}
}

// GetSkillLines returns all skill lines without node details.
func (s *service) GetSkillLines(ctx context.Context) ([]domain.SkillLine, error) {
	return s.skillRepo.GetSkillLines(ctx)
}

// GetSkillLine returns one skill line with its nodes populated.
func (s *service) GetSkillLine(ctx context.Context, id int) (*domain.SkillLine, error) {
	line, err := s.skillRepo.GetSkillLineByID(ctx, id)
	if err != nil {
		return nil, err
	}

	nodes, err := s.skillRepo.GetNodesForLine(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get nodes for skill line %d: %w", id, err)
	}
	line.Nodes = nodes
	return line, nil
}

// UnlockNode unlocks a skill node for a character, spending skill points from
// the current job class. The point spend and the investment row are written
// in one transaction.
func (s *service) UnlockNode(ctx context.Context, characterID string, nodeID int) (*domain.NodeUnlockResult, error) {
	log := logger.FromContext(ctx)

	node, err := s.skillRepo.GetSkillNodeByID(ctx, nodeID)
	if err != nil {
		return nil, err
	}
	if !node.Active {
		return nil, domain.ErrNodeInactive
	}

	if _, err := s.characterRepo.GetCharacter(ctx, characterID); err != nil {
		return nil, err
	}

	current, err := s.characterRepo.GetCurrentJobClass(ctx, characterID)
	if err != nil {
		return nil, err
	}

	if existing, err := s.skillRepo.GetInvestment(ctx, characterID, nodeID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrAlreadyUnlocked
	}

	lock := s.locks.GetLock(characterID)
	lock.Lock()
	defer lock.Unlock()

	tx, err := s.txBeginner.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	cjc, err := tx.GetCharacterJobClassForUpdate(ctx, characterID, current.JobClassID)
	if err != nil {
		return nil, err
	}

	if cjc.SkillPoints < node.PointsRequired {
		return nil, domain.ErrInsufficientPoints
	}
	cjc.SkillPoints -= node.PointsRequired

	if err := tx.UpdateCharacterJobClassProgress(ctx, cjc); err != nil {
		return nil, fmt.Errorf("failed to spend skill points: %w", err)
	}

	investment := &domain.CharacterSkillInvestment{
		CharacterID: characterID,
		SkillNodeID: nodeID,
		UnlockedAt:  time.Now().UTC(),
	}
	if err := tx.InsertSkillInvestment(ctx, investment); err != nil {
		return nil, fmt.Errorf("failed to record skill investment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit node unlock: %w", err)
	}

	s.summaries.Invalidate(node.SkillLineID)

	log.Info("Skill node unlocked",
		"characterId", characterID,
		"nodeId", nodeID,
		"skillLineId", node.SkillLineID,
		"pointsSpent", node.PointsRequired,
		"pointsRemaining", cjc.SkillPoints)

	if s.publisher != nil {
		unlocked := event.NewNodeUnlockedEvent(characterID, nodeID, node.SkillLineID, node.PointsRequired, cjc.SkillPoints)
		if err := s.publisher.Publish(ctx, unlocked); err != nil {
			log.Warn("Failed to publish node unlocked event", "error", err)
		}
	}

	return &domain.NodeUnlockResult{
		SkillNodeID:     nodeID,
		PointsSpent:     node.PointsRequired,
		PointsRemaining: cjc.SkillPoints,
		Effect:          node.Effect.Describe(),
	}, nil
}

// GetInvestments returns every node a character has unlocked.
func (s *service) GetInvestments(ctx context.Context, characterID string) ([]domain.CharacterSkillInvestment, error) {
	if _, err := s.characterRepo.GetCharacter(ctx, characterID); err != nil {
		return nil, err
	}
	return s.skillRepo.GetInvestmentsForCharacter(ctx, characterID)
}

// GetInvestmentSummary aggregates all investments in a skill line. Summaries
// are cached briefly, so a just-committed unlock may take up to the cache TTL
// to appear for other lines' readers.
func (s *service) GetInvestmentSummary(ctx context.Context, skillLineID int) (*domain.InvestmentSummary, error) {
	if cached, ok := s.summaries.Get(skillLineID); ok {
		return cached, nil
	}

	if _, err := s.skillRepo.GetSkillLineByID(ctx, skillLineID); err != nil {
		return nil, err
	}

	investments, err := s.skillRepo.GetLineInvestments(ctx, skillLineID)
	if err != nil {
		return nil, fmt.Errorf("failed to get investments for skill line %d: %w", skillLineID, err)
	}

	summary := buildSummary(skillLineID, investments)
	s.summaries.Set(skillLineID, summary)
	return summary, nil
}
