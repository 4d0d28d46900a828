package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/nfl-dfs-helper/internal/domain/lineup"
	"github.com/riskibarqy/nfl-dfs-helper/internal/domain/salary"
	"github.com/riskibarqy/nfl-dfs-helper/internal/platform/logging"
)

const gameSlotLayout = "2006-01-02 15:04"

// lockLocation is the reference time zone for all lock decisions. Game
// start labels are published in US Eastern; a static offset stands in
// when the zone database is unavailable.
var lockLocation = sync.OnceValue(func() *time.Location {
	if loc, err := time.LoadLocation("America/New_York"); err == nil {
		return loc
	}
	return time.FixedZone("ET", -5*60*60)
})

// AdmissionService decides whether a lineup submission may proceed. A
// submission is rejected when any referenced player's game has already
// started. The check runs against the caller's stored lineup (no
// overwriting a locked lineup) and against the incoming one (no
// introducing a locked player), reading only the in-memory salary
// store with no network I/O.
type AdmissionService struct {
	salaries salary.Repository
	lineups  lineup.Repository
	logger   *logging.Logger
	now      func() time.Time
}

func NewAdmissionService(salaries salary.Repository, lineups lineup.Repository, logger *logging.Logger) *AdmissionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AdmissionService{
		salaries: salaries,
		lineups:  lineups,
		logger:   logger,
		now:      time.Now,
	}
}

// SubmitLineup decodes, validates, and on acceptance stores the lineup
// for the share target. An undecodable payload fails open: there is
// nothing to validate, so the submission is admitted without being
// stored, with a distinguishable warning in the log.
func (s *AdmissionService) SubmitLineup(ctx context.Context, target, payload string) (lineup.Decision, error) {
	ctx, span := startUsecaseSpan(ctx, "AdmissionService.SubmitLineup")
	defer span.End()

	target = strings.TrimSpace(target)
	if target == "" {
		return lineup.Decision{}, fmt.Errorf("%w: target is required", ErrInvalidInput)
	}

	decoded, err := DecodeLineupPayload(payload)
	if err != nil {
		if errors.Is(err, ErrUndecodable) {
			s.logger.WarnContext(ctx, "lineup payload undecodable, admitting without validation",
				"target", target, "error", err)
			return lineup.Decision{Allowed: true}, nil
		}
		return lineup.Decision{}, err
	}

	decision := lineup.Decision{
		Allowed:   true,
		Week:      decoded.Week,
		PlayerIDs: decoded.PlayerIDs(),
	}

	stored, found, err := s.lineups.GetByTargetAndWeek(ctx, target, decoded.Week)
	if err != nil {
		return lineup.Decision{}, fmt.Errorf("load stored lineup: %w", err)
	}
	if found {
		violators, err := s.startedPlayers(ctx, decoded.Week, stored.PlayerIDs)
		if err != nil {
			return lineup.Decision{}, err
		}
		if len(violators) > 0 {
			decision.Allowed = false
			decision.Violators = violators
			return decision, fmt.Errorf("%w: stored lineup contains started players", ErrLockViolation)
		}
	}

	violators, err := s.startedPlayers(ctx, decoded.Week, decision.PlayerIDs)
	if err != nil {
		return lineup.Decision{}, err
	}
	if len(violators) > 0 {
		decision.Allowed = false
		decision.Violators = violators
		return decision, fmt.Errorf("%w: submission contains started players", ErrLockViolation)
	}

	err = s.lineups.Upsert(ctx, lineup.Lineup{
		Target:    target,
		Week:      decoded.Week,
		Payload:   payload,
		PlayerIDs: decision.PlayerIDs,
		UpdatedAt: s.now(),
	})
	if err != nil {
		return lineup.Decision{}, fmt.Errorf("save lineup: %w", err)
	}

	s.logger.InfoContext(ctx, "lineup accepted",
		"target", target, "week", decoded.Week, "players", len(decision.PlayerIDs), "decoder", decoded.Decoder)
	return decision, nil
}

// GetLineup returns the stored lineup for a target and week.
func (s *AdmissionService) GetLineup(ctx context.Context, target string, week int) (lineup.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "AdmissionService.GetLineup")
	defer span.End()

	if strings.TrimSpace(target) == "" || week < 1 {
		return lineup.Lineup{}, fmt.Errorf("%w: target and week are required", ErrInvalidInput)
	}

	stored, found, err := s.lineups.GetByTargetAndWeek(ctx, target, week)
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("load lineup: %w", err)
	}
	if !found {
		return lineup.Lineup{}, fmt.Errorf("%w: no lineup for %s week %d", ErrNotFound, target, week)
	}

	return stored, nil
}

// startedPlayers resolves each id against the salary store for the week
// and reports the players whose attributed game start is not in the
// future. Ids without a store entry are skipped, never blocking.
func (s *AdmissionService) startedPlayers(ctx context.Context, week int, playerIDs []string) ([]lineup.Violator, error) {
	now := s.now().In(lockLocation())

	var violators []lineup.Violator
	for _, id := range playerIDs {
		entry, found, err := s.salaries.GetByPlayer(ctx, id, week)
		if err != nil {
			return nil, fmt.Errorf("lookup salary entry: %w", err)
		}
		if !found {
			continue
		}

		start, err := time.ParseInLocation(gameSlotLayout, entry.GameDate+" "+entry.StartTime, lockLocation())
		if err != nil {
			s.logger.WarnContext(ctx, "salary entry has unparseable game slot, skipping lock check",
				"player_id", id, "game_date", entry.GameDate, "start_time", entry.StartTime)
			continue
		}

		if !now.Before(start) {
			violators = append(violators, lineup.Violator{
				PlayerID:  entry.PlayerID,
				Name:      entry.Name,
				Team:      entry.Team,
				GameDate:  entry.GameDate,
				StartTime: entry.StartTime,
			})
		}
	}

	return violators, nil
}
