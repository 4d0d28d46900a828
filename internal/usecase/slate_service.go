package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/nfl-dfs-helper/internal/platform/cache"
	"github.com/riskibarqy/nfl-dfs-helper/internal/platform/logging"
)

const slateDateLayout = "2006-01-02"

// slateSearchOffsets is the candidate-date order for main-slate
// selection: the requested date, the next three days, then the previous
// three days.
var slateSearchOffsets = []int{0, 1, 2, 3, -1, -2, -3}

// SlateDay is one calendar date of a selected slate's coverage window
// together with every slate id that prices games on that date.
type SlateDay struct {
	Date         string
	LongDayName  string
	ShortDayName string
	MonthDay     string
	SlateIDs     []string
}

// SlateService resolves which contest slate is authoritative for a date
// and expands a selection into its full multi-day coverage window.
// Catalog responses are cached per date so the attribution pass reuses
// one query per date instead of one per row.
type SlateService struct {
	feed   SlateFeedProvider
	books  *cache.Store
	logger *logging.Logger
}

func NewSlateService(feed SlateFeedProvider, books *cache.Store, logger *logging.Logger) *SlateService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SlateService{
		feed:   feed,
		books:  books,
		logger: logger,
	}
}

// SelectMainSlate walks the candidate dates around the requested date
// and returns the first authoritative non-showdown slate it finds.
// Within one date the winner maximizes game count, then team count; a
// slate spanning more distinct games prices the main pool better than
// one packing more teams into fewer games.
func (s *SlateService) SelectMainSlate(ctx context.Context, date string) (ExternalSlate, error) {
	ctx, span := startUsecaseSpan(ctx, "SlateService.SelectMainSlate")
	defer span.End()

	anchor, err := time.Parse(slateDateLayout, date)
	if err != nil {
		return ExternalSlate{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	for _, offset := range slateSearchOffsets {
		candidate := anchor.AddDate(0, 0, offset).Format(slateDateLayout)

		book, err := s.bookForDate(ctx, candidate, "")
		if err != nil {
			s.logger.WarnContext(ctx, "slate catalog query failed, skipping date", "date", candidate, "error", err)
			continue
		}

		selected, ok := pickMainSlate(book.Slates)
		if !ok {
			continue
		}

		selected.Date = candidate
		return selected, nil
	}

	return ExternalSlate{}, fmt.Errorf("%w: no non-showdown slate near %s", ErrNoCoverage, date)
}

// ExpandDateWindow turns a selection into the ordered list of dates it
// covers, each with its relevant slate ids. Dates before the selection's
// own reference date belong to the prior cycle and are excluded.
func (s *SlateService) ExpandDateWindow(ctx context.Context, selected ExternalSlate) ([]SlateDay, error) {
	ctx, span := startUsecaseSpan(ctx, "SlateService.ExpandDateWindow")
	defer span.End()

	refDate, err := time.Parse(slateDateLayout, selected.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: selection has no reference date", ErrInvalidInput)
	}

	book, err := s.bookForDate(ctx, selected.Date, selected.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: coverage query for %s: %v", ErrDependencyUnavailable, selected.Date, err)
	}

	coverage := coverageDates(book, selected)
	days := make([]SlateDay, 0, len(coverage))
	for _, cd := range coverage {
		dayDate, err := time.Parse(slateDateLayout, cd.StartDate)
		if err != nil || dayDate.Before(refDate) {
			continue
		}

		day := SlateDay{
			Date:         cd.StartDate,
			LongDayName:  cd.LongDayName,
			ShortDayName: cd.ShortDayName,
			MonthDay:     cd.MonthDay,
		}
		day.SlateIDs = s.slatesForDay(ctx, day, selected)
		if len(day.SlateIDs) == 0 {
			s.logger.WarnContext(ctx, "coverage date yielded no slates, skipping", "date", day.Date)
			continue
		}
		days = append(days, day)
	}

	if len(days) == 0 {
		return nil, fmt.Errorf("%w: slate %s covers no usable dates", ErrNoCoverage, selected.ID)
	}

	return days, nil
}

// ShowdownSlates returns the showdown-flagged descriptors published for
// a date. Used for per-game attribution only, never as a pricing source.
func (s *SlateService) ShowdownSlates(ctx context.Context, date string) ([]ExternalSlate, error) {
	book, err := s.bookForDate(ctx, date, "")
	if err != nil {
		return nil, err
	}

	out := make([]ExternalSlate, 0, len(book.Slates))
	for _, sl := range book.Slates {
		if sl.Showdown {
			out = append(out, sl)
		}
	}

	return out, nil
}

func (s *SlateService) bookForDate(ctx context.Context, date, slateID string) (ExternalSlateBook, error) {
	key := "slates:" + date + ":" + slateID
	if s.books == nil {
		return s.feed.FetchSlateBook(ctx, date, slateID)
	}

	value, err := s.books.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return s.feed.FetchSlateBook(ctx, date, slateID)
	})
	if err != nil {
		return ExternalSlateBook{}, err
	}

	book, ok := value.(ExternalSlateBook)
	if !ok {
		return ExternalSlateBook{}, fmt.Errorf("unexpected cache entry for %s", key)
	}
	return book, nil
}

// slatesForDay finds every non-showdown descriptor whose month-day
// label matches the coverage date, falling back to the date's own best
// descriptor when the labels match nothing.
func (s *SlateService) slatesForDay(ctx context.Context, day SlateDay, selected ExternalSlate) []string {
	book, err := s.bookForDate(ctx, day.Date, selected.ID)
	if err != nil {
		s.logger.WarnContext(ctx, "slate query failed for coverage date", "date", day.Date, "error", err)
		return nil
	}

	var ids []string
	for _, sl := range book.Slates {
		if sl.Showdown {
			continue
		}
		if day.MonthDay != "" && sl.MonthDay == day.MonthDay {
			ids = append(ids, sl.ID)
		}
	}
	if len(ids) > 0 {
		return ids
	}

	if best, ok := pickMainSlate(book.Slates); ok {
		return []string{best.ID}
	}
	return nil
}

func pickMainSlate(slates []ExternalSlate) (ExternalSlate, bool) {
	var best ExternalSlate
	found := false
	for _, sl := range slates {
		if sl.Showdown {
			continue
		}
		if !found || sl.GameCount > best.GameCount ||
			(sl.GameCount == best.GameCount && sl.TeamCount > best.TeamCount) {
			best = sl
			found = true
		}
	}
	return best, found
}

// coverageDates prefers the coverage list attached to the selected
// descriptor in the fresh book, falling back to the one captured at
// selection time.
func coverageDates(book ExternalSlateBook, selected ExternalSlate) []ExternalSlateDate {
	for _, sl := range book.Slates {
		if sl.ID == selected.ID && len(sl.Dates) > 0 {
			return sl.Dates
		}
	}
	return selected.Dates
}

// slateTypeMentionsTeams reports whether a slate-type label names both
// team codes, in either order. Showdown labels embed the matchup as
// text ("SD: PHI @ DAL"), so a textual containment check identifies the
// per-game descriptor.
func slateTypeMentionsTeams(slateType, team, opponent string) bool {
	if team == "" || opponent == "" {
		return false
	}
	label := strings.ToUpper(slateType)
	return strings.Contains(label, strings.ToUpper(team)) &&
		strings.Contains(label, strings.ToUpper(opponent))
}
