package handler

import (
	"net/http"
	"strconv"

	"github.com/harukigames/gamecore/internal/character"
	"github.com/harukigames/gamecore/internal/experience"
	"github.com/harukigames/gamecore/internal/logger"
)

// CreateCharacterRequest is the body for character creation.
type CreateCharacterRequest struct {
	Name       string `json:"name" validate:"required,max=50,excludesall=\x00\n\r\t"`
	JobClassID int    `json:"job_class_id" validate:"min=1"`
}

// HandleCreateCharacter creates a character starting in the given job class.
func HandleCreateCharacter(svc character.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CreateCharacterRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create character"); err != nil {
			return
		}

		detail, err := svc.CreateCharacter(r.Context(), req.Name, req.JobClassID)
		if err != nil {
			respondServiceError(w, r, "Create character", err)
			return
		}

		log.Info("Character created", "character_id", detail.Character.ID, "name", detail.Character.Name)
		respondJSON(w, http.StatusCreated, DataResponse{Data: detail})
	}
}

// HandleGetCharacter returns a character with its current job and derived
// stats.
func HandleGetCharacter(svc character.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetPathParam(r, w, "id")
		if !ok {
			return
		}

		detail, err := svc.GetCharacter(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, "Get character", err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: detail})
	}
}

// AddExperienceRequest is the body for administrative experience grants.
// Actor is recorded in the audit trail; grants without one are attributed
// to the admin panel.
type AddExperienceRequest struct {
	Experience int64  `json:"experience" validate:"min=1"`
	Reason     string `json:"reason" validate:"required,max=500"`
	Actor      string `json:"actor" validate:"omitempty,max=100"`
}

// HandleAddExperience grants experience to the character's current job class.
func HandleAddExperience(svc experience.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		id, ok := GetPathParam(r, w, "id")
		if !ok {
			return
		}

		var req AddExperienceRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Add experience"); err != nil {
			return
		}

		actor := req.Actor
		if actor == "" {
			actor = experience.SourceAdmin
		}

		result, err := svc.GrantExperience(r.Context(), id, req.Experience, req.Reason, actor)
		if err != nil {
			respondServiceError(w, r, "Add experience", err)
			return
		}

		log.Info("Experience granted",
			"character_id", id,
			"amount", req.Experience,
			"new_level", result.NewLevel,
			"leveled_up", result.LeveledUp)
		respondJSON(w, http.StatusOK, DataResponse{Data: result})
	}
}

// SwitchJobRequest is the body for switching the current job class.
type SwitchJobRequest struct {
	JobClassID int `json:"job_class_id" validate:"min=1"`
}

// HandleSwitchJob moves the is_current flag to another unlocked job class.
func HandleSwitchJob(svc character.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		id, ok := GetPathParam(r, w, "id")
		if !ok {
			return
		}

		var req SwitchJobRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Switch job"); err != nil {
			return
		}

		detail, err := svc.SwitchJob(r.Context(), id, req.JobClassID)
		if err != nil {
			respondServiceError(w, r, "Switch job", err)
			return
		}

		log.Info("Job switched", "character_id", id, "job_class_id", req.JobClassID)
		respondJSON(w, http.StatusOK, DataResponse{Data: detail})
	}
}

// UnlockJobClassRequest is the body for unlocking a new job class.
type UnlockJobClassRequest struct {
	JobClassID int `json:"job_class_id" validate:"min=1"`
}

// HandleUnlockJobClass adds a job class to a character without switching.
func HandleUnlockJobClass(svc character.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		id, ok := GetPathParam(r, w, "id")
		if !ok {
			return
		}

		var req UnlockJobClassRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Unlock job class"); err != nil {
			return
		}

		cjc, err := svc.UnlockJobClass(r.Context(), id, req.JobClassID)
		if err != nil {
			respondServiceError(w, r, "Unlock job class", err)
			return
		}

		log.Info("Job class unlocked", "character_id", id, "job_class_id", req.JobClassID)
		respondJSON(w, http.StatusCreated, DataResponse{Data: cjc})
	}
}

// HandleGetJobClassProgress returns progress rows for every job class the
// character has unlocked.
func HandleGetJobClassProgress(svc experience.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetPathParam(r, w, "id")
		if !ok {
			return
		}

		progress, err := svc.GetProgress(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, "Get job class progress", err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: progress})
	}
}

// HandleGetExperienceAudits returns recent experience grants for a character.
func HandleGetExperienceAudits(svc experience.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetPathParam(r, w, "id")
		if !ok {
			return
		}

		limit, err := strconv.Atoi(GetOptionalQueryParam(r, "limit", "50"))
		if err != nil || limit < 1 || limit > 500 {
			respondError(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}

		audits, err := svc.GetAuditTrail(r.Context(), id, limit)
		if err != nil {
			respondServiceError(w, r, "Get experience audits", err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: audits})
	}
}
