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

type skillRepository struct {
	db *pgxpool.Pool
}

// NewSkillRepository creates a new PostgreSQL skill line repository.
func NewSkillRepository(db *pgxpool.Pool) repository.Skill {
	return &skillRepository{db: db}
}

const skillNodeColumns = `skill_node_id, skill_line_id, name, node_type,
	points_required, effect, position_x, position_y, active`

func scanSkillNode(row pgx.Row) (*domain.SkillNode, error) {
	var n domain.SkillNode
	var effect []byte

	err := row.Scan(&n.ID, &n.SkillLineID, &n.Name, &n.NodeType,
		&n.PointsRequired, &effect, &n.Position.X, &n.Position.Y, &n.Active)
	if err != nil {
		return nil, err
	}

	if err := unmarshalJSONB(effect, &n.Effect); err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *skillRepository) GetSkillLines(ctx context.Context) ([]domain.SkillLine, error) {
	query := `
		SELECT sl.skill_line_id, sl.name, sl.skill_line_type, sl.unlock_level,
		       COALESCE(array_agg(sljc.job_class_id) FILTER (WHERE sljc.job_class_id IS NOT NULL), '{}')
		FROM skill_lines sl
		LEFT JOIN skill_line_job_classes sljc ON sljc.skill_line_id = sl.skill_line_id
		GROUP BY sl.skill_line_id
		ORDER BY sl.skill_line_id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list skill lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.SkillLine
	for rows.Next() {
		var line domain.SkillLine
		if err := rows.Scan(&line.ID, &line.Name, &line.SkillLineType, &line.UnlockLevel, &line.JobClassIDs); err != nil {
			return nil, fmt.Errorf("failed to scan skill line: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (r *skillRepository) GetSkillLineByID(ctx context.Context, id int) (*domain.SkillLine, error) {
	query := `
		SELECT sl.skill_line_id, sl.name, sl.skill_line_type, sl.unlock_level,
		       COALESCE(array_agg(sljc.job_class_id) FILTER (WHERE sljc.job_class_id IS NOT NULL), '{}')
		FROM skill_lines sl
		LEFT JOIN skill_line_job_classes sljc ON sljc.skill_line_id = sl.skill_line_id
		WHERE sl.skill_line_id = $1
		GROUP BY sl.skill_line_id
	`

	var line domain.SkillLine
	err := r.db.QueryRow(ctx, query, id).Scan(&line.ID, &line.Name, &line.SkillLineType, &line.UnlockLevel, &line.JobClassIDs)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSkillLineNotFound
		}
		return nil, fmt.Errorf("failed to get skill line: %w", err)
	}
	return &line, nil
}

func (r *skillRepository) GetSkillNodeByID(ctx context.Context, id int) (*domain.SkillNode, error) {
	query := `SELECT ` + skillNodeColumns + ` FROM skill_nodes WHERE skill_node_id = $1`

	node, err := scanSkillNode(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSkillNodeNotFound
		}
		return nil, fmt.Errorf("failed to get skill node: %w", err)
	}
	return node, nil
}

func (r *skillRepository) GetNodesForLine(ctx context.Context, skillLineID int) ([]domain.SkillNode, error) {
	query := `SELECT ` + skillNodeColumns + `
		FROM skill_nodes
		WHERE skill_line_id = $1
		ORDER BY skill_node_id`

	rows, err := r.db.Query(ctx, query, skillLineID)
	if err != nil {
		return nil, fmt.Errorf("failed to list skill nodes: %w", err)
	}
	defer rows.Close()

	var nodes []domain.SkillNode
	for rows.Next() {
		node, err := scanSkillNode(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan skill node: %w", err)
		}
		nodes = append(nodes, *node)
	}
	return nodes, rows.Err()
}

func (r *skillRepository) GetInvestment(ctx context.Context, characterID string, skillNodeID int) (*domain.CharacterSkillInvestment, error) {
	characterUUID, err := parseCharacterUUID(characterID)
	if err != nil {
		return nil, domain.ErrCharacterNotFound
	}

	query := `
		SELECT character_id, skill_node_id, unlocked_at
		FROM character_skill_investments
		WHERE character_id = $1 AND skill_node_id = $2
	`

	var inv domain.CharacterSkillInvestment
	err = r.db.QueryRow(ctx, query, characterUUID, skillNodeID).Scan(&inv.CharacterID, &inv.SkillNodeID, &inv.UnlockedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get skill investment: %w", err)
	}
	return &inv, nil
}

func (r *skillRepository) GetInvestmentsForCharacter(ctx context.Context, characterID string) ([]domain.CharacterSkillInvestment, error) {
	characterUUID, err := parseCharacterUUID(characterID)
	if err != nil {
		return nil, domain.ErrCharacterNotFound
	}

	query := `
		SELECT character_id, skill_node_id, unlocked_at
		FROM character_skill_investments
		WHERE character_id = $1
		ORDER BY unlocked_at
	`

	rows, err := r.db.Query(ctx, query, characterUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to list skill investments: %w", err)
	}
	defer rows.Close()

	var investments []domain.CharacterSkillInvestment
	for rows.Next() {
		var inv domain.CharacterSkillInvestment
		if err := rows.Scan(&inv.CharacterID, &inv.SkillNodeID, &inv.UnlockedAt); err != nil {
			return nil, fmt.Errorf("failed to scan skill investment: %w", err)
		}
		investments = append(investments, inv)
	}
	return investments, rows.Err()
}

func (r *skillRepository) GetSkillLineByName(ctx context.Context, name string) (*domain.SkillLine, error) {
	query := `
		SELECT sl.skill_line_id, sl.name, sl.skill_line_type, sl.unlock_level,
		       COALESCE(array_agg(sljc.job_class_id) FILTER (WHERE sljc.job_class_id IS NOT NULL), '{}')
		FROM skill_lines sl
		LEFT JOIN skill_line_job_classes sljc ON sljc.skill_line_id = sl.skill_line_id
		WHERE sl.name = $1
		GROUP BY sl.skill_line_id
	`

	var line domain.SkillLine
	err := r.db.QueryRow(ctx, query, name).Scan(&line.ID, &line.Name, &line.SkillLineType, &line.UnlockLevel, &line.JobClassIDs)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get skill line by name: %w", err)
	}
	return &line, nil
}

func (r *skillRepository) InsertSkillLine(ctx context.Context, line *domain.SkillLine) (int, error) {
	query := `
		INSERT INTO skill_lines (name, skill_line_type, unlock_level)
		VALUES ($1, $2, $3)
		RETURNING skill_line_id
	`

	var id int
	err := r.db.QueryRow(ctx, query, line.Name, line.SkillLineType, line.UnlockLevel).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert skill line: %w", err)
	}
	return id, nil
}

func (r *skillRepository) UpdateSkillLine(ctx context.Context, id int, line *domain.SkillLine) error {
	query := `
		UPDATE skill_lines
		SET name = $2, skill_line_type = $3, unlock_level = $4
		WHERE skill_line_id = $1
	`

	tag, err := r.db.Exec(ctx, query, id, line.Name, line.SkillLineType, line.UnlockLevel)
	if err != nil {
		return fmt.Errorf("failed to update skill line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSkillLineNotFound
	}
	return nil
}

func (r *skillRepository) SetSkillLineJobClasses(ctx context.Context, skillLineID int, jobClassIDs []int) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM skill_line_job_classes WHERE skill_line_id = $1`, skillLineID); err != nil {
		return fmt.Errorf("failed to clear skill line job classes: %w", err)
	}

	for _, jobClassID := range jobClassIDs {
		_, err := r.db.Exec(ctx,
			`INSERT INTO skill_line_job_classes (skill_line_id, job_class_id) VALUES ($1, $2)`,
			skillLineID, jobClassID)
		if err != nil {
			return fmt.Errorf("failed to attach job class %d to skill line %d: %w", jobClassID, skillLineID, err)
		}
	}
	return nil
}

func (r *skillRepository) InsertSkillNode(ctx context.Context, node *domain.SkillNode) (int, error) {
	effect, err := marshalJSONB(node.Effect)
	if err != nil {
		return 0, fmt.Errorf("failed to encode node effect: %w", err)
	}

	query := `
		INSERT INTO skill_nodes (skill_line_id, name, node_type, points_required, effect, position_x, position_y, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING skill_node_id
	`

	var id int
	err = r.db.QueryRow(ctx, query, node.SkillLineID, node.Name, node.NodeType,
		node.PointsRequired, effect, node.Position.X, node.Position.Y, node.Active).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert skill node: %w", err)
	}
	return id, nil
}

func (r *skillRepository) UpdateSkillNode(ctx context.Context, id int, node *domain.SkillNode) error {
	effect, err := marshalJSONB(node.Effect)
	if err != nil {
		return fmt.Errorf("failed to encode node effect: %w", err)
	}

	query := `
		UPDATE skill_nodes
		SET name = $2, node_type = $3, points_required = $4, effect = $5,
		    position_x = $6, position_y = $7, active = $8
		WHERE skill_node_id = $1
	`

	tag, err := r.db.Exec(ctx, query, id, node.Name, node.NodeType, node.PointsRequired,
		effect, node.Position.X, node.Position.Y, node.Active)
	if err != nil {
		return fmt.Errorf("failed to update skill node: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSkillNodeNotFound
	}
	return nil
}

func (r *skillRepository) GetLineInvestments(ctx context.Context, skillLineID int) ([]domain.LineInvestment, error) {
	query := `
		SELECT csi.character_id, c.name, csi.skill_node_id, sn.points_required, csi.unlocked_at
		FROM character_skill_investments csi
		JOIN skill_nodes sn ON sn.skill_node_id = csi.skill_node_id
		JOIN characters c ON c.character_id = csi.character_id
		WHERE sn.skill_line_id = $1
		ORDER BY csi.unlocked_at
	`

	rows, err := r.db.Query(ctx, query, skillLineID)
	if err != nil {
		return nil, fmt.Errorf("failed to list line investments: %w", err)
	}
	defer rows.Close()

	var investments []domain.LineInvestment
	for rows.Next() {
		var inv domain.LineInvestment
		if err := rows.Scan(&inv.CharacterID, &inv.CharacterName, &inv.SkillNodeID, &inv.PointsSpent, &inv.UnlockedAt); err != nil {
			return nil, fmt.Errorf("failed to scan line investment: %w", err)
		}
		investments = append(investments, inv)
	}
	return investments, rows.Err()
}
