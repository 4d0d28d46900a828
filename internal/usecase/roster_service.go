package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/nfl-dfs-helper/internal/domain/roster"
	"github.com/riskibarqy/nfl-dfs-helper/internal/platform/logging"
)

// defaultByeWeeks is the season bye-week table keyed by team code,
// overridable through configuration each season.
var defaultByeWeeks = map[string]int{
	"ARI": 8, "ATL": 5, "BAL": 7, "BUF": 7, "CAR": 14, "CHI": 5,
	"CIN": 10, "CLE": 9, "DAL": 10, "DEN": 12, "DET": 8, "GB": 5,
	"HOU": 6, "IND": 11, "JAX": 8, "KC": 10, "LV": 8, "LAC": 12,
	"LAR": 8, "MIA": 12, "MIN": 6, "NE": 14, "NO": 11, "NYG": 14,
	"NYJ": 9, "PHI": 9, "PIT": 5, "SEA": 8, "SF": 14, "TB": 9,
	"TEN": 10, "WAS": 12,
}

// byeDesignation marks injury-free players whose team sits out the
// current gameweek.
const byeDesignation = "Bye"

type RosterServiceConfig struct {
	// ByeWeeks maps team codes to their bye gameweek; empty falls back
	// to the built-in season table.
	ByeWeeks map[string]int
	// SeasonStart anchors gameweek numbering for bye annotation; by
	// convention the Tuesday before the opening Thursday game.
	SeasonStart time.Time
}

// RosterService maintains the canonical player snapshot from the
// upstream directory and serves roster lookups.
type RosterService struct {
	provider RosterProvider
	repo     roster.Repository
	cfg      RosterServiceConfig
	logger   *logging.Logger
	now      func() time.Time
}

func NewRosterService(provider RosterProvider, repo roster.Repository, cfg RosterServiceConfig, logger *logging.Logger) *RosterService {
	if len(cfg.ByeWeeks) == 0 {
		cfg.ByeWeeks = defaultByeWeeks
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &RosterService{
		provider: provider,
		repo:     repo,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Refresh replaces the roster snapshot with the current directory
// contents. Unrostered entries and inactive players without an injury
// designation are dropped; injured non-active players stay so lineups
// referencing them still resolve. Injury-free players whose team is on
// bye this gameweek are annotated with the bye designation.
func (s *RosterService) Refresh(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.Refresh")
	defer span.End()

	fetched, err := s.provider.FetchPlayers(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: roster fetch: %v", ErrDependencyUnavailable, err)
	}

	week := gameweekFor(s.now(), s.cfg.SeasonStart)

	players := make([]roster.Player, 0, len(fetched))
	for _, ext := range fetched {
		if ext.ID == "" || ext.Team == "" {
			continue
		}
		if ext.Status == "Inactive" && ext.InjuryStatus == "" {
			continue
		}

		team := strings.ToUpper(ext.Team)
		p := roster.Player{
			ID:           ext.ID,
			FirstName:    ext.FirstName,
			LastName:     ext.LastName,
			Team:         team,
			Position:     roster.Position(strings.ToUpper(ext.Position)),
			Status:       ext.Status,
			InjuryStatus: ext.InjuryStatus,
			ByeWeek:      s.cfg.ByeWeeks[team],
		}
		for _, pos := range ext.FantasyPositions {
			p.FantasyPositions = append(p.FantasyPositions, roster.Position(strings.ToUpper(pos)))
		}
		if p.InjuryStatus == "" && p.ByeWeek == week {
			p.InjuryStatus = byeDesignation
		}
		players = append(players, p)
	}

	if len(players) == 0 {
		return 0, fmt.Errorf("%w: roster fetch returned no rostered players", ErrDependencyUnavailable)
	}

	if err := s.repo.Replace(ctx, players); err != nil {
		return 0, fmt.Errorf("replace roster snapshot: %w", err)
	}

	s.logger.InfoContext(ctx, "roster refresh complete", "players", len(players))
	return len(players), nil
}

// GetPlayer returns one roster entry by canonical id.
func (s *RosterService) GetPlayer(ctx context.Context, playerID string) (roster.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.GetPlayer")
	defer span.End()

	if strings.TrimSpace(playerID) == "" {
		return roster.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	p, found, err := s.repo.GetByID(ctx, playerID)
	if err != nil {
		return roster.Player{}, fmt.Errorf("lookup player: %w", err)
	}
	if !found {
		return roster.Player{}, fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}

	return p, nil
}

// LookupPlayers returns the roster entries for a batch of ids. Unknown
// ids are silently omitted from the result.
func (s *RosterService) LookupPlayers(ctx context.Context, playerIDs []string) ([]roster.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.LookupPlayers")
	defer span.End()

	if len(playerIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one player id is required", ErrInvalidInput)
	}

	players, err := s.repo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return nil, fmt.Errorf("lookup players: %w", err)
	}

	return players, nil
}

// TeamInjuries summarizes the fantasy-position players carrying an
// injury designation, grouped by team code. Injured reserves outside
// the active roster are included; bye annotations are not injuries and
// stay out of the report.
func (s *RosterService) TeamInjuries(ctx context.Context) (map[string][]roster.InjuryReport, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.TeamInjuries")
	defer span.End()

	players, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}

	out := make(map[string][]roster.InjuryReport)
	for _, p := range players {
		if p.InjuryStatus == "" || p.InjuryStatus == byeDesignation || !p.FantasyEligible() {
			continue
		}
		out[p.Team] = append(out[p.Team], roster.InjuryReport{
			PlayerID:     p.ID,
			FirstName:    p.FirstName,
			LastName:     p.LastName,
			Position:     p.Position,
			InjuryStatus: p.InjuryStatus,
		})
	}
	for team := range out {
		sort.Slice(out[team], func(i, j int) bool {
			return out[team][i].LastName < out[team][j].LastName
		})
	}

	return out, nil
}
