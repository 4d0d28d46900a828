package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/nfl-dfs-helper/internal/domain/lineup"
	"github.com/riskibarqy/nfl-dfs-helper/internal/usecase"
)

type validateLineupRequest struct {
	Target  string `json:"target" validate:"required"`
	Payload string `json:"payload" validate:"required"`
}

type violatorDTO struct {
	PlayerID  string `json:"playerId,omitempty"`
	Name      string `json:"name"`
	Team      string `json:"team"`
	GameDate  string `json:"gameDate"`
	StartTime string `json:"startTime"`
}

type lineupDecisionDTO struct {
	Allowed   bool          `json:"allowed"`
	Week      int           `json:"week,omitempty"`
	PlayerIDs []string      `json:"playerIds,omitempty"`
	Violators []violatorDTO `json:"violators,omitempty"`
}

type lineupDTO struct {
	Target    string   `json:"target"`
	Week      int      `json:"week"`
	Payload   string   `json:"payload"`
	PlayerIDs []string `json:"playerIds"`
	UpdatedAt string   `json:"updatedAt"`
}

// ValidateLineup runs the admission check for a submitted lineup and,
// on acceptance, stores it for the share target. Lock violations come
// back as a structured rejection rather than an opaque error.
func (h *Handler) ValidateLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ValidateLineup")
	defer span.End()

	var req validateLineupRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validator.StructCtx(ctx, req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	decision, err := h.admissionService.SubmitLineup(ctx, req.Target, req.Payload)
	if err != nil {
		if errors.Is(err, usecase.ErrLockViolation) {
			writeJSON(ctx, w, http.StatusConflict, googleResponseEnvelope{
				APIVersion: googleAPIVersion,
				Data:       decisionToDTO(decision),
			})
			return
		}
		h.logger.WarnContext(ctx, "lineup validation failed", "target", req.Target, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, decisionToDTO(decision))
}

func (h *Handler) GetLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLineup")
	defer span.End()

	target := r.PathValue("target")
	week, err := strconv.Atoi(r.URL.Query().Get("week"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: week query parameter is required", usecase.ErrInvalidInput))
		return
	}

	stored, err := h.admissionService.GetLineup(ctx, target, week)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupDTO{
		Target:    stored.Target,
		Week:      stored.Week,
		Payload:   stored.Payload,
		PlayerIDs: stored.PlayerIDs,
		UpdatedAt: stored.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	})
}

func decisionToDTO(decision lineup.Decision) lineupDecisionDTO {
	dto := lineupDecisionDTO{
		Allowed:   decision.Allowed,
		Week:      decision.Week,
		PlayerIDs: decision.PlayerIDs,
	}
	for _, v := range decision.Violators {
		dto.Violators = append(dto.Violators, violatorDTO{
			PlayerID:  v.PlayerID,
			Name:      v.Name,
			Team:      v.Team,
			GameDate:  v.GameDate,
			StartTime: v.StartTime,
		})
	}
	return dto
}
