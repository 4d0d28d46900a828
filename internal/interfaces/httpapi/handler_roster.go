package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/nfl-dfs-helper/internal/domain/roster"
	"github.com/riskibarqy/nfl-dfs-helper/internal/usecase"
)

type lookupPlayersRequest struct {
	Username string              `json:"username"`
	Leagues  []lookupLeagueQuery `json:"leagues" validate:"required,min=1,dive"`
}

type lookupLeagueQuery struct {
	LeagueID  string   `json:"leagueId" validate:"required"`
	PlayerIDs []string `json:"playerlist" validate:"required,min=1,dive,required"`
}

type rosterPlayerDTO struct {
	ID               string   `json:"id"`
	FirstName        string   `json:"firstName"`
	LastName         string   `json:"lastName"`
	Team             string   `json:"team"`
	Position         string   `json:"position"`
	FantasyPositions []string `json:"fantasyPositions,omitempty"`
	Status           string   `json:"status"`
	InjuryStatus     string   `json:"injuryStatus,omitempty"`
	ByeWeek          int      `json:"byeWeek,omitempty"`
}

type injuryReportDTO struct {
	PlayerID     string `json:"playerId"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Position     string `json:"position"`
	InjuryStatus string `json:"injuryStatus"`
}

func (h *Handler) GetRosterPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRosterPlayer")
	defer span.End()

	p, err := h.rosterService.GetPlayer(ctx, r.PathValue("playerID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterPlayerToDTO(p))
}

// LookupPlayers resolves each league's player list against the roster
// snapshot and groups the results by league id. Unknown ids are omitted
// rather than erroring.
func (h *Handler) LookupPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LookupPlayers")
	defer span.End()

	var req lookupPlayersRequest
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

	out := make(map[string][]rosterPlayerDTO, len(req.Leagues))
	for _, league := range req.Leagues {
		players, err := h.rosterService.LookupPlayers(ctx, league.PlayerIDs)
		if err != nil {
			h.logger.WarnContext(ctx, "lookup players failed",
				"username", req.Username, "league", league.LeagueID, "count", len(league.PlayerIDs), "error", err)
			writeError(ctx, w, err)
			return
		}

		items := make([]rosterPlayerDTO, 0, len(players))
		for _, p := range players {
			items = append(items, rosterPlayerToDTO(p))
		}
		out[league.LeagueID] = items
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListTeamInjuries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamInjuries")
	defer span.End()

	injuries, err := h.rosterService.TeamInjuries(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list team injuries failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make(map[string][]injuryReportDTO, len(injuries))
	for team, reports := range injuries {
		items := make([]injuryReportDTO, 0, len(reports))
		for _, report := range reports {
			items = append(items, injuryReportDTO{
				PlayerID:     report.PlayerID,
				FirstName:    report.FirstName,
				LastName:     report.LastName,
				Position:     string(report.Position),
				InjuryStatus: report.InjuryStatus,
			})
		}
		out[team] = items
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func rosterPlayerToDTO(p roster.Player) rosterPlayerDTO {
	dto := rosterPlayerDTO{
		ID:           p.ID,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Team:         p.Team,
		Position:     string(p.Position),
		Status:       p.Status,
		InjuryStatus: p.InjuryStatus,
		ByeWeek:      p.ByeWeek,
	}
	for _, pos := range p.FantasyPositions {
		dto.FantasyPositions = append(dto.FantasyPositions, string(pos))
	}
	return dto
}
