package repository

import (
	"context"

	"github.com/harukigames/gamecore/internal/domain"
)

// Skill defines the interface for skill line and investment persistence.
type Skill interface {
	GetSkillLines(ctx context.Context) ([]domain.SkillLine, error)
	GetSkillLineByID(ctx context.Context, id int) (*domain.SkillLine, error)
	GetSkillNodeByID(ctx context.Context, id int) (*domain.SkillNode, error)
	GetNodesForLine(ctx context.Context, skillLineID int) ([]domain.SkillNode, error)
	// GetInvestment returns (nil, nil) when the character has not unlocked
	// the node.
	GetInvestment(ctx context.Context, characterID string, skillNodeID int) (*domain.CharacterSkillInvestment, error)
	GetInvestmentsForCharacter(ctx context.Context, characterID string) ([]domain.CharacterSkillInvestment, error)

	// GetLineInvestments returns every investment in nodes belonging to the
	// line, joined with node cost and character name, for summary aggregation.
	GetLineInvestments(ctx context.Context, skillLineID int) ([]domain.LineInvestment, error)

	// Designer content sync writes.
	// GetSkillLineByName returns (nil, nil) when no line has the name.
	GetSkillLineByName(ctx context.Context, name string) (*domain.SkillLine, error)
	InsertSkillLine(ctx context.Context, line *domain.SkillLine) (int, error)
	UpdateSkillLine(ctx context.Context, id int, line *domain.SkillLine) error
	SetSkillLineJobClasses(ctx context.Context, skillLineID int, jobClassIDs []int) error
	InsertSkillNode(ctx context.Context, node *domain.SkillNode) (int, error)
	UpdateSkillNode(ctx context.Context, id int, node *domain.SkillNode) error
}
