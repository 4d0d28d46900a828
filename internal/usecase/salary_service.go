package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/nfl-dfs-helper/internal/domain/roster"
	"github.com/riskibarqy/nfl-dfs-helper/internal/domain/salary"
	"github.com/riskibarqy/nfl-dfs-helper/internal/platform/logging"
)

type SalaryServiceConfig struct {
	// ScrapeWorkers bounds concurrent (date, slate) row scrapes.
	ScrapeWorkers int
	// SeasonStart anchors gameweek numbering; by convention the
	// Tuesday before the opening Thursday game.
	SeasonStart time.Time
}

type RefreshSummary struct {
	Week          int    `json:"week"`
	SelectedSlate string `json:"selected_slate"`
	SlateDate     string `json:"slate_date"`
	Days          int    `json:"days"`
	Slates        int    `json:"slates"`
	Rows          int    `json:"rows"`
	Resolved      int    `json:"resolved"`
	Unresolved    int    `json:"unresolved"`
	Entries       int    `json:"entries"`
}

// SalaryService rebuilds the enriched salary store from upstream slate
// scrapes and serves lookups against the current snapshot. A refresh
// cycle that fails upstream leaves the previous snapshot untouched.
type SalaryService struct {
	feed       SlateFeedProvider
	slates     *SlateService
	attributor *GameAttributor
	resolver   *IdentityResolver
	rosterRepo roster.Repository
	salaryRepo salary.Repository
	logger     *logging.Logger
	cfg        SalaryServiceConfig
	now        func() time.Time
}

func NewSalaryService(
	feed SlateFeedProvider,
	slates *SlateService,
	attributor *GameAttributor,
	resolver *IdentityResolver,
	rosterRepo roster.Repository,
	salaryRepo salary.Repository,
	cfg SalaryServiceConfig,
	logger *logging.Logger,
) *SalaryService {
	if cfg.ScrapeWorkers < 1 {
		cfg.ScrapeWorkers = 4
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &SalaryService{
		feed:       feed,
		slates:     slates,
		attributor: attributor,
		resolver:   resolver,
		rosterRepo: rosterRepo,
		salaryRepo: salaryRepo,
		logger:     logger,
		cfg:        cfg,
		now:        time.Now,
	}
}

type scrapeTask struct {
	day     SlateDay
	slateID string
}

// Refresh runs one full salary cycle: select the main slate for today,
// expand its coverage window, scrape every (date, slate) pair, resolve
// identities, attribute game slots, and swap the store snapshot.
func (s *SalaryService) Refresh(ctx context.Context) (RefreshSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "SalaryService.Refresh")
	defer span.End()

	today := s.now().In(lockLocation()).Format(slateDateLayout)
	week := s.currentWeek()
	summary := RefreshSummary{Week: week}

	selected, err := s.slates.SelectMainSlate(ctx, today)
	if err != nil {
		s.logger.ErrorContext(ctx, "salary refresh found no usable slate", "date", today, "error", err)
		return summary, err
	}
	summary.SelectedSlate = selected.ID
	summary.SlateDate = selected.Date

	days, err := s.slates.ExpandDateWindow(ctx, selected)
	if err != nil {
		s.logger.ErrorContext(ctx, "salary refresh could not expand coverage", "slate", selected.ID, "error", err)
		return summary, err
	}
	summary.Days = len(days)

	// Warm the cycle's showdown memo so attribution costs one catalog
	// query per covered date.
	cycle := s.attributor.NewCycle()
	prefetch := pool.New().WithMaxGoroutines(s.cfg.ScrapeWorkers)
	for _, day := range days {
		date := day.Date
		prefetch.Go(func() {
			cycle.showdownsFor(ctx, date)
		})
	}
	prefetch.Wait()

	relevant, err := s.rosterRepo.ListRelevant(ctx)
	if err != nil {
		return summary, fmt.Errorf("load roster: %w", err)
	}
	full, err := s.rosterRepo.ListAll(ctx)
	if err != nil {
		return summary, fmt.Errorf("load roster: %w", err)
	}

	var tasks []scrapeTask
	for _, day := range days {
		for _, id := range day.SlateIDs {
			tasks = append(tasks, scrapeTask{day: day, slateID: id})
		}
	}
	summary.Slates = len(tasks)

	entries, rows, resolved := s.scrapeAll(ctx, cycle, tasks, week, relevant, full)
	summary.Rows = rows
	summary.Resolved = resolved
	summary.Unresolved = rows - resolved
	summary.Entries = len(entries)

	if len(entries) == 0 {
		s.logger.ErrorContext(ctx, "salary refresh produced no entries, keeping previous snapshot",
			"slate", selected.ID, "days", len(days))
		return summary, fmt.Errorf("%w: refresh produced no entries", ErrNoCoverage)
	}

	if err := s.salaryRepo.ReplaceWeek(ctx, week, entries); err != nil {
		return summary, fmt.Errorf("replace salary snapshot: %w", err)
	}

	s.logger.InfoContext(ctx, "salary refresh complete",
		"week", week, "slate", selected.ID, "entries", len(entries),
		"resolved", resolved, "unresolved", rows-resolved)
	return summary, nil
}

// scrapeAll fans the (date, slate) tasks across a bounded worker pool
// and merges the results deterministically: entries sort by date then
// slate id, and the first occurrence of a composite key wins.
func (s *SalaryService) scrapeAll(ctx context.Context, cycle *AttributionCycle, tasks []scrapeTask, week int, relevant, full []roster.Player) ([]salary.Entry, int, int) {
	workers, err := ants.NewPool(s.cfg.ScrapeWorkers)
	if err != nil {
		s.logger.ErrorContext(ctx, "create scrape pool failed, scraping serially", "error", err)
		workers = nil
	} else {
		defer workers.Release()
	}

	var mu sync.Mutex
	var collected []salary.Entry
	rows, resolvedCount := 0, 0

	var wg sync.WaitGroup
	for _, task := range tasks {
		task := task
		run := func() {
			defer wg.Done()

			entries, scraped, matched := s.scrapeOne(ctx, cycle, task, week, relevant, full)
			mu.Lock()
			collected = append(collected, entries...)
			rows += scraped
			resolvedCount += matched
			mu.Unlock()
		}

		wg.Add(1)
		if workers != nil {
			if err := workers.Submit(run); err == nil {
				continue
			}
		}
		run()
	}
	wg.Wait()

	sort.Slice(collected, func(i, j int) bool {
		if collected[i].GameDate != collected[j].GameDate {
			return collected[i].GameDate < collected[j].GameDate
		}
		return collected[i].SlateID < collected[j].SlateID
	})

	seen := make(map[string]struct{}, len(collected))
	out := collected[:0]
	for _, entry := range collected {
		key := entry.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, entry)
	}

	return out, rows, resolvedCount
}

func (s *SalaryService) scrapeOne(ctx context.Context, cycle *AttributionCycle, task scrapeTask, week int, relevant, full []roster.Player) ([]salary.Entry, int, int) {
	scraped, err := s.feed.FetchSalaryRows(ctx, task.day.Date, task.slateID)
	if err != nil {
		s.logger.WarnContext(ctx, "slate scrape failed, skipping",
			"date", task.day.Date, "slate", task.slateID, "error", err)
		return nil, 0, 0
	}

	slateType := ""
	if book, err := s.slates.bookForDate(ctx, task.day.Date, task.slateID); err == nil {
		for _, sl := range book.Slates {
			if sl.ID == task.slateID {
				slateType = sl.SlateType
				break
			}
		}
	}

	entries := make([]salary.Entry, 0, len(scraped))
	resolved := 0
	for _, row := range scraped {
		entryWeek := row.Week
		if entryWeek < 1 {
			entryWeek = week
		}

		id, ok := s.resolver.Resolve(row.Name, row.Team, relevant, full)
		if ok {
			resolved++
		}

		slot := cycle.Attribute(ctx, row, task.day)
		entries = append(entries, salary.Entry{
			PlayerID:         id,
			Name:             row.Name,
			Team:             strings.ToUpper(row.Team),
			Position:         normalizeRowPosition(row.Position),
			Opponent:         normalizeOpponentCode(row.Opponent),
			Salary:           row.Salary,
			ProjectedPoints:  row.ProjectedPoints,
			ValueProjection:  row.ValueProjection,
			SeasonAverage:    row.SeasonAverage,
			LastFiveAverage:  row.LastFiveAverage,
			LastTenAverage:   row.LastTenAverage,
			Week:             entryWeek,
			Spread:           row.Spread,
			OverUnder:        row.OverUnder,
			ImpliedTeamScore: row.ImpliedTeamScore,
			OpponentRank:     row.OpponentRank,
			InjuryStatus:     row.InjuryStatus,
			GameDate:         slot.Date,
			StartTime:        slot.StartTime,
			Weekday:          slot.Weekday,
			SlateID:          task.slateID,
			SlateType:        slateType,
			SlateDate:        task.day.Date,
		})
	}

	return entries, len(scraped), resolved
}

// GetByPlayer returns the enriched entry for a canonical id and week.
func (s *SalaryService) GetByPlayer(ctx context.Context, playerID string, week int) (salary.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "SalaryService.GetByPlayer")
	defer span.End()

	if strings.TrimSpace(playerID) == "" || week < 1 {
		return salary.Entry{}, fmt.Errorf("%w: player id and week are required", ErrInvalidInput)
	}

	entry, found, err := s.salaryRepo.GetByPlayer(ctx, playerID, week)
	if err != nil {
		return salary.Entry{}, fmt.Errorf("lookup salary: %w", err)
	}
	if !found {
		return salary.Entry{}, fmt.Errorf("%w: no week %d entry for player %s", ErrNotFound, week, playerID)
	}

	return entry, nil
}

// ListByWeek returns every entry stored for a week, highest salary
// first. A zero week means the current gameweek.
func (s *SalaryService) ListByWeek(ctx context.Context, week int) ([]salary.Entry, int, error) {
	ctx, span := startUsecaseSpan(ctx, "SalaryService.ListByWeek")
	defer span.End()

	if week < 1 {
		week = s.currentWeek()
	}

	entries, err := s.salaryRepo.ListByWeek(ctx, week)
	if err != nil {
		return nil, 0, fmt.Errorf("list salaries: %w", err)
	}

	return entries, week, nil
}

func (s *SalaryService) currentWeek() int {
	return gameweekFor(s.now(), s.cfg.SeasonStart)
}

// gameweekFor derives the gameweek from the season anchor: week 1 runs
// from the anchor through the following Monday night. A zero anchor
// pins everything to week 1.
func gameweekFor(now, seasonStart time.Time) int {
	if seasonStart.IsZero() {
		return 1
	}

	elapsed := now.In(lockLocation()).Sub(seasonStart.In(lockLocation()))
	week := int(elapsed.Hours()/(24*7)) + 1
	if week < 1 {
		week = 1
	}
	return week
}

// normalizeRowPosition maps feed position labels onto roster codes; the
// feed publishes defenses as DST.
func normalizeRowPosition(pos string) string {
	pos = strings.ToUpper(strings.TrimSpace(pos))
	if pos == "DST" {
		return string(roster.PositionDefense)
	}
	return pos
}
