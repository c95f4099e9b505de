package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/harukigames/gamecore/internal/domain"
	"github.com/harukigames/gamecore/internal/jobclass"
	"github.com/harukigames/gamecore/internal/logger"
)

// JobClassRequest is the create/update body for job class templates.
type JobClassRequest struct {
	Name                 string             `json:"name" validate:"required,max=100,excludesall=\x00\n\r\t"`
	JobType              string             `json:"job_type" validate:"required"`
	MaxLevel             int                `json:"max_level" validate:"min=1,max=1000"`
	ExperienceMultiplier float64            `json:"experience_multiplier" validate:"gt=0"`
	BaseStats            domain.StatBlock   `json:"base_stats"`
	Multipliers          domain.GrowthRates `json:"multipliers"`
}

func (req *JobClassRequest) toDomain() *domain.JobClass {
	return &domain.JobClass{
		Name:                 req.Name,
		JobType:              domain.JobType(req.JobType),
		MaxLevel:             req.MaxLevel,
		ExperienceMultiplier: req.ExperienceMultiplier,
		BaseStats:            req.BaseStats,
		Multipliers:          req.Multipliers,
	}
}

// HandleListJobClasses returns every job class template.
func HandleListJobClasses(svc jobclass.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		classes, err := svc.ListJobClasses(r.Context())
		if err != nil {
			respondServiceError(w, r, "List job classes", err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: classes})
	}
}

// HandleGetJobClass returns one template with base stats and multipliers.
func HandleGetJobClass(svc jobclass.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetIntPathParam(r, w, "id")
		if !ok {
			return
		}

		jc, err := svc.GetJobClass(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, "Get job class", err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: jc})
	}
}

// HandleCreateJobClass creates a designer-authored job class template.
func HandleCreateJobClass(svc jobclass.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req JobClassRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create job class"); err != nil {
			return
		}

		created, err := svc.CreateJobClass(r.Context(), req.toDomain())
		if err != nil {
			respondServiceError(w, r, "Create job class", err)
			return
		}

		log.Info("Job class created", "id", created.ID, "name", created.Name)
		respondJSON(w, http.StatusCreated, DataResponse{Data: created})
	}
}

// HandleUpdateJobClass updates a template in place.
func HandleUpdateJobClass(svc jobclass.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		id, ok := GetIntPathParam(r, w, "id")
		if !ok {
			return
		}

		var req JobClassRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update job class"); err != nil {
			return
		}

		updated, err := svc.UpdateJobClass(r.Context(), id, req.toDomain())
		if err != nil {
			respondServiceError(w, r, "Update job class", err)
			return
		}

		log.Info("Job class updated", "id", id, "name", updated.Name)
		respondJSON(w, http.StatusOK, DataResponse{Data: updated})
	}
}

// HandleJobClassStats returns derived stat rows for the requested levels.
// levels is a comma-separated list; when omitted the service previews level 1
// and max level.
func HandleJobClassStats(svc jobclass.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetIntPathParam(r, w, "id")
		if !ok {
			return
		}

		var levels []int
		if raw := GetOptionalQueryParam(r, "levels", ""); raw != "" {
			for _, part := range strings.Split(raw, ",") {
				lvl, err := strconv.Atoi(strings.TrimSpace(part))
				if err != nil {
					respondError(w, http.StatusBadRequest, "Invalid levels parameter")
					return
				}
				levels = append(levels, lvl)
			}
		}

		rows, err := svc.StatsPreview(r.Context(), id, levels)
		if err != nil {
			respondServiceError(w, r, "Job class stats preview", err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: rows})
	}
}

// HandleJobClassUsage reports how many characters reference a template.
func HandleJobClassUsage(svc jobclass.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetIntPathParam(r, w, "id")
		if !ok {
			return
		}

		usage, err := svc.GetUsage(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, "Job class usage", err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: usage})
	}
}
