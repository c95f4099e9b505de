package domain

import (
	"time"

	"github.com/google/uuid"
)

// ExperienceAudit records one administrative experience grant. The grant is
// not considered committed unless its audit row is written in the same
// transaction.
type ExperienceAudit struct {
	ID          uuid.UUID `json:"id"`
	CharacterID string    `json:"character_id"`
	JobClassID  int       `json:"job_class_id"`
	Amount      int64     `json:"amount"`
	Reason      string    `json:"reason"`
	Actor       string    `json:"actor"`
	RecordedAt  time.Time `json:"recorded_at"`
}
