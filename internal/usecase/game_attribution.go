package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/nfl-dfs-helper/internal/platform/logging"
)

// KickoffDefaults maps a weekday to the start time assumed for a game
// when no per-game descriptor provides one. Calibrated to scheduling
// convention; configurable because conventions drift across seasons.
type KickoffDefaults struct {
	ByWeekday map[time.Weekday]string
	Fallback  string
}

func DefaultKickoffTimes() KickoffDefaults {
	return KickoffDefaults{
		ByWeekday: map[time.Weekday]string{
			time.Thursday: "20:15",
			time.Monday:   "20:15",
			time.Saturday: "13:00",
			time.Sunday:   "13:00",
		},
		Fallback: "17:00",
	}
}

func (k KickoffDefaults) For(day time.Weekday) string {
	if t, ok := k.ByWeekday[day]; ok && t != "" {
		return t
	}
	if k.Fallback != "" {
		return k.Fallback
	}
	return "17:00"
}

// GameSlot is the attributed real-world game slot for one player row.
type GameSlot struct {
	Date      string
	StartTime string
	Weekday   string
}

// GameAttributor assigns each scraped row its true game date and start
// time. Showdown descriptors carry per-game times; when none matches,
// the attributor falls back to the slate date plus a weekday default.
// When two overlapping slates share a date without a per-game time, the
// slate-level fallback can misattribute split kickoff windows; that
// ambiguity is accepted rather than guessed around.
type GameAttributor struct {
	slates   *SlateService
	kickoffs KickoffDefaults
	logger   *logging.Logger
}

func NewGameAttributor(slates *SlateService, kickoffs KickoffDefaults, logger *logging.Logger) *GameAttributor {
	if logger == nil {
		logger = logging.Default()
	}
	return &GameAttributor{
		slates:   slates,
		kickoffs: kickoffs,
		logger:   logger,
	}
}

// NewCycle starts an attribution pass. Showdown lookups memoize per
// date inside the cycle, so attributing a whole scrape window costs one
// catalog query per covered date even when the shared slate cache is
// disabled.
func (a *GameAttributor) NewCycle() *AttributionCycle {
	return &AttributionCycle{
		attributor: a,
		showdowns:  make(map[string][]ExternalSlate),
	}
}

// AttributionCycle scopes showdown lookups to a single refresh pass.
// Safe for concurrent use by the scrape workers.
type AttributionCycle struct {
	attributor *GameAttributor
	mu         sync.Mutex
	showdowns  map[string][]ExternalSlate
}

// Attribute resolves the game slot for one row scraped from the given
// coverage day. A literal game date on the row wins over the slate
// date; a matching showdown descriptor wins over weekday defaults.
func (c *AttributionCycle) Attribute(ctx context.Context, row ExternalSalaryRow, day SlateDay) GameSlot {
	a := c.attributor

	slot := GameSlot{Date: day.Date, Weekday: day.LongDayName}
	if row.GameDate != "" {
		slot.Date = row.GameDate
		slot.Weekday = ""
	}

	if parsed, err := time.Parse(slateDateLayout, slot.Date); err == nil {
		if slot.Weekday == "" {
			slot.Weekday = parsed.Weekday().String()
		}
		slot.StartTime = a.kickoffs.For(parsed.Weekday())
	} else {
		a.logger.WarnContext(ctx, "row has unparseable game date", "date", slot.Date, "player", row.Name)
		slot.StartTime = a.kickoffs.Fallback
	}

	if sd, ok := c.showdownFor(ctx, slot.Date, row.Team, row.Opponent); ok {
		if sd.StartTime != "" {
			slot.StartTime = sd.StartTime
		}
		if sd.Weekday != "" {
			slot.Weekday = sd.Weekday
		}
	}

	return slot
}

func (c *AttributionCycle) showdownFor(ctx context.Context, date, team, opponent string) (ExternalSlate, bool) {
	opponent = normalizeOpponentCode(opponent)
	if team == "" || opponent == "" {
		return ExternalSlate{}, false
	}

	for _, sd := range c.showdownsFor(ctx, date) {
		if slateTypeMentionsTeams(sd.SlateType, team, opponent) {
			return sd, true
		}
	}
	return ExternalSlate{}, false
}

// showdownsFor returns the memoized showdown descriptors for a date.
// Failed lookups memoize an empty list so one bad date warns once per
// cycle instead of once per row.
func (c *AttributionCycle) showdownsFor(ctx context.Context, date string) []ExternalSlate {
	c.mu.Lock()
	cached, ok := c.showdowns[date]
	c.mu.Unlock()
	if ok {
		return cached
	}

	list, err := c.attributor.slates.ShowdownSlates(ctx, date)
	if err != nil {
		c.attributor.logger.WarnContext(ctx, "showdown lookup failed", "date", date, "error", err)
		list = nil
	}

	c.mu.Lock()
	c.showdowns[date] = list
	c.mu.Unlock()
	return list
}

// normalizeOpponentCode strips the home/away markers feeds prepend to
// opponent codes ("@DAL", "vs PHI").
func normalizeOpponentCode(code string) string {
	code = strings.TrimSpace(code)
	code = strings.TrimPrefix(code, "@")
	code = strings.TrimPrefix(code, "vs ")
	code = strings.TrimPrefix(code, "vs")
	return strings.ToUpper(strings.TrimSpace(code))
}
