package handler

import (
	"net/http"

	"github.com/harukigames/gamecore/internal/logger"
	"github.com/harukigames/gamecore/internal/skilltree"
)

// HandleListSkillLines returns all skill lines with their nodes.
func HandleListSkillLines(svc skilltree.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lines, err := svc.GetSkillLines(r.Context())
		if err != nil {
			respondServiceError(w, r, "List skill lines", err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: lines})
	}
}

// HandleGetSkillLine returns one skill line with its nodes.
func HandleGetSkillLine(svc skilltree.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetIntPathParam(r, w, "id")
		if !ok {
			return
		}

		line, err := svc.GetSkillLine(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, "Get skill line", err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: line})
	}
}

// HandleGetInvestmentSummary returns the aggregated investment summary for a
// skill line.
func HandleGetInvestmentSummary(svc skilltree.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetIntPathParam(r, w, "id")
		if !ok {
			return
		}

		summary, err := svc.GetInvestmentSummary(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, "Get investment summary", err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: summary})
	}
}

// HandleUnlockSkillNode spends skill points from the character's current job
// class to unlock a node.
func HandleUnlockSkillNode(svc skilltree.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		characterID, ok := GetPathParam(r, w, "id")
		if !ok {
			return
		}
		nodeID, ok := GetIntPathParam(r, w, "nodeID")
		if !ok {
			return
		}

		result, err := svc.UnlockNode(r.Context(), characterID, nodeID)
		if err != nil {
			respondServiceError(w, r, "Unlock skill node", err)
			return
		}

		log.Info("Skill node unlocked",
			"character_id", characterID,
			"skill_node_id", nodeID,
			"points_remaining", result.PointsRemaining)
		respondJSON(w, http.StatusOK, DataResponse{Data: result})
	}
}

// HandleGetSkillInvestments returns every node a character has unlocked.
func HandleGetSkillInvestments(svc skilltree.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		characterID, ok := GetPathParam(r, w, "id")
		if !ok {
			return
		}

		investments, err := svc.GetInvestments(r.Context(), characterID)
		if err != nil {
			respondServiceError(w, r, "Get skill investments", err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: investments})
	}
}
