package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/riskibarqy/nfl-dfs-helper/internal/domain/salary"
	"github.com/riskibarqy/nfl-dfs-helper/internal/usecase"
)

type salaryEntryDTO struct {
	PlayerID         string  `json:"playerId,omitempty"`
	Name             string  `json:"name"`
	Team             string  `json:"team"`
	Position         string  `json:"position"`
	Opponent         string  `json:"opponent,omitempty"`
	Salary           int     `json:"salary"`
	ProjectedPoints  float64 `json:"projectedPoints"`
	ValueProjection  float64 `json:"valueProjection"`
	SeasonAverage    float64 `json:"seasonAverage,omitempty"`
	LastFiveAverage  float64 `json:"lastFiveAverage,omitempty"`
	LastTenAverage   float64 `json:"lastTenAverage,omitempty"`
	Week             int     `json:"week"`
	Spread           float64 `json:"spread,omitempty"`
	OverUnder        float64 `json:"overUnder,omitempty"`
	ImpliedTeamScore float64 `json:"impliedTeamScore,omitempty"`
	OpponentRank     int     `json:"opponentRank,omitempty"`
	InjuryStatus     string  `json:"injuryStatus,omitempty"`
	GameDate         string  `json:"gameDate"`
	StartTime        string  `json:"startTime"`
	Weekday          string  `json:"weekday"`
	SlateID          string  `json:"slateId"`
	SlateType        string  `json:"slateType,omitempty"`
}

type salaryWeekDTO struct {
	Week    int              `json:"week"`
	Entries []salaryEntryDTO `json:"entries"`
}

// GetPlayerSalary returns the resolved salary and game-time record for
// one canonical id and week.
func (h *Handler) GetPlayerSalary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerSalary")
	defer span.End()

	playerID := r.PathValue("playerID")
	week, err := strconv.Atoi(r.URL.Query().Get("week"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: week query parameter is required", usecase.ErrInvalidInput))
		return
	}

	entry, err := h.salaryService.GetByPlayer(ctx, playerID, week)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, salaryEntryToDTO(entry))
}

// ListSalaries returns every entry for a week, defaulting to the
// current gameweek when no week is given.
func (h *Handler) ListSalaries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSalaries")
	defer span.End()

	week := 0
	if raw := r.URL.Query().Get("week"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(ctx, w, fmt.Errorf("%w: week must be a positive integer", usecase.ErrInvalidInput))
			return
		}
		week = parsed
	}

	entries, resolvedWeek, err := h.salaryService.ListByWeek(ctx, week)
	if err != nil {
		h.logger.WarnContext(ctx, "list salaries failed", "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]salaryEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, salaryEntryToDTO(entry))
	}

	writeSuccess(ctx, w, http.StatusOK, salaryWeekDTO{Week: resolvedWeek, Entries: items})
}

func salaryEntryToDTO(entry salary.Entry) salaryEntryDTO {
	return salaryEntryDTO{
		PlayerID:         entry.PlayerID,
		Name:             entry.Name,
		Team:             entry.Team,
		Position:         entry.Position,
		Opponent:         entry.Opponent,
		Salary:           entry.Salary,
		ProjectedPoints:  entry.ProjectedPoints,
		ValueProjection:  entry.ValueProjection,
		SeasonAverage:    entry.SeasonAverage,
		LastFiveAverage:  entry.LastFiveAverage,
		LastTenAverage:   entry.LastTenAverage,
		Week:             entry.Week,
		Spread:           entry.Spread,
		OverUnder:        entry.OverUnder,
		ImpliedTeamScore: entry.ImpliedTeamScore,
		OpponentRank:     entry.OpponentRank,
		InjuryStatus:     entry.InjuryStatus,
		GameDate:         entry.GameDate,
		StartTime:        entry.StartTime,
		Weekday:          entry.Weekday,
		SlateID:          entry.SlateID,
		SlateType:        entry.SlateType,
	}
}
