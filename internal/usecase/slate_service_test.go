package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
)

// stubFeed serves canned slate books and salary rows keyed by date and
// (date, slate id) respectively.
type stubFeed struct {
	mu        sync.Mutex
	books     map[string]ExternalSlateBook
	rows      map[string][]ExternalSalaryRow
	bookErr   error
	rowsErr   error
	bookCalls int
}

func rowsKey(date, slateID string) string {
	return date + "/" + slateID
}

func (f *stubFeed) FetchSlateBook(_ context.Context, date, _ string) (ExternalSlateBook, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.bookCalls++
	if f.bookErr != nil {
		return ExternalSlateBook{}, f.bookErr
	}
	book, ok := f.books[date]
	if !ok {
		return ExternalSlateBook{Date: date}, nil
	}
	return book, nil
}

func (f *stubFeed) FetchSalaryRows(_ context.Context, date, slateID string) ([]ExternalSalaryRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.rowsErr != nil {
		return nil, f.rowsErr
	}
	return f.rows[rowsKey(date, slateID)], nil
}

func TestSlateService_SelectMainSlate_PrefersRequestedDate(t *testing.T) {
	feed := &stubFeed{books: map[string]ExternalSlateBook{
		"2025-11-06": {Date: "2025-11-06", Slates: []ExternalSlate{
			{ID: "901", SlateType: "Main", GameCount: 12, TeamCount: 24},
			{ID: "902", SlateType: "Thu-Mon", GameCount: 14, TeamCount: 28},
			{ID: "903", SlateType: "SD: PHI @ DAL", GameCount: 1, TeamCount: 2, Showdown: true},
		}},
	}}
	svc := NewSlateService(feed, nil, nil)

	selected, err := svc.SelectMainSlate(t.Context(), "2025-11-06")
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if selected.ID != "902" {
		t.Fatalf("expected slate 902 (most games), got %s", selected.ID)
	}
	if selected.Date != "2025-11-06" {
		t.Fatalf("unexpected reference date: %s", selected.Date)
	}
}

func TestSlateService_SelectMainSlate_TeamCountBreaksTies(t *testing.T) {
	feed := &stubFeed{books: map[string]ExternalSlateBook{
		"2025-11-06": {Date: "2025-11-06", Slates: []ExternalSlate{
			{ID: "901", GameCount: 12, TeamCount: 22},
			{ID: "902", GameCount: 12, TeamCount: 24},
		}},
	}}
	svc := NewSlateService(feed, nil, nil)

	selected, err := svc.SelectMainSlate(t.Context(), "2025-11-06")
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if selected.ID != "902" {
		t.Fatalf("expected slate 902, got %s", selected.ID)
	}
}

func TestSlateService_SelectMainSlate_SearchesForwardBeforeBackward(t *testing.T) {
	feed := &stubFeed{books: map[string]ExternalSlateBook{
		"2025-11-05": {Date: "2025-11-05", Slates: []ExternalSlate{
			{ID: "800", GameCount: 10, TeamCount: 20},
		}},
		"2025-11-08": {Date: "2025-11-08", Slates: []ExternalSlate{
			{ID: "801", GameCount: 2, TeamCount: 4},
		}},
	}}
	svc := NewSlateService(feed, nil, nil)

	selected, err := svc.SelectMainSlate(t.Context(), "2025-11-06")
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if selected.ID != "801" {
		t.Fatalf("expected forward date to win, got %s", selected.ID)
	}
	if selected.Date != "2025-11-08" {
		t.Fatalf("unexpected reference date: %s", selected.Date)
	}
}

func TestSlateService_SelectMainSlate_ShowdownOnlyIsNoCoverage(t *testing.T) {
	feed := &stubFeed{books: map[string]ExternalSlateBook{
		"2025-11-06": {Date: "2025-11-06", Slates: []ExternalSlate{
			{ID: "903", SlateType: "SD: PHI @ DAL", GameCount: 1, Showdown: true},
		}},
	}}
	svc := NewSlateService(feed, nil, nil)

	_, err := svc.SelectMainSlate(t.Context(), "2025-11-06")
	if !errors.Is(err, ErrNoCoverage) {
		t.Fatalf("expected ErrNoCoverage, got %v", err)
	}
}

func TestSlateService_SelectMainSlate_RejectsBadDate(t *testing.T) {
	svc := NewSlateService(&stubFeed{}, nil, nil)

	_, err := svc.SelectMainSlate(t.Context(), "11/06/2025")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSlateService_ExpandDateWindow(t *testing.T) {
	selected := ExternalSlate{
		ID:   "902",
		Date: "2025-11-06",
		Dates: []ExternalSlateDate{
			{StartDate: "2025-11-03", LongDayName: "Monday", ShortDayName: "Mon", MonthDay: "Nov 3"},
			{StartDate: "2025-11-06", LongDayName: "Thursday", ShortDayName: "Thu", MonthDay: "Nov 6"},
			{StartDate: "2025-11-09", LongDayName: "Sunday", ShortDayName: "Sun", MonthDay: "Nov 9"},
			{StartDate: "2025-11-10", LongDayName: "Monday", ShortDayName: "Mon", MonthDay: "Nov 10"},
		},
	}
	feed := &stubFeed{books: map[string]ExternalSlateBook{
		"2025-11-06": {Date: "2025-11-06", Slates: []ExternalSlate{
			selected,
			{ID: "910", MonthDay: "Nov 6", GameCount: 1},
		}},
		"2025-11-09": {Date: "2025-11-09", Slates: []ExternalSlate{
			{ID: "920", MonthDay: "Nov 9", GameCount: 11},
			{ID: "921", MonthDay: "Nov 9", GameCount: 4},
			{ID: "922", MonthDay: "Nov 16", GameCount: 9},
		}},
		"2025-11-10": {Date: "2025-11-10", Slates: []ExternalSlate{
			{ID: "930", MonthDay: "stale label", GameCount: 2, TeamCount: 4},
		}},
	}}
	svc := NewSlateService(feed, nil, nil)

	days, err := svc.ExpandDateWindow(t.Context(), selected)
	if err != nil {
		t.Fatalf("expand failed: %v", err)
	}

	if len(days) != 3 {
		t.Fatalf("expected 3 days (prior-cycle date excluded), got %d", len(days))
	}
	if days[0].Date != "2025-11-06" || days[1].Date != "2025-11-09" || days[2].Date != "2025-11-10" {
		t.Fatalf("unexpected day order: %+v", days)
	}

	// Month-day labels select matching descriptors.
	if len(days[1].SlateIDs) != 2 {
		t.Fatalf("expected 2 slates for Nov 9, got %v", days[1].SlateIDs)
	}

	// No label match falls back to the date's best descriptor.
	if len(days[2].SlateIDs) != 1 || days[2].SlateIDs[0] != "930" {
		t.Fatalf("expected fallback descriptor 930, got %v", days[2].SlateIDs)
	}
}

func TestSlateService_ExpandDateWindow_NoUsableDates(t *testing.T) {
	selected := ExternalSlate{
		ID:   "902",
		Date: "2025-11-06",
		Dates: []ExternalSlateDate{
			{StartDate: "2025-11-01", MonthDay: "Nov 1"},
		},
	}
	feed := &stubFeed{books: map[string]ExternalSlateBook{}}
	svc := NewSlateService(feed, nil, nil)

	_, err := svc.ExpandDateWindow(t.Context(), selected)
	if !errors.Is(err, ErrNoCoverage) {
		t.Fatalf("expected ErrNoCoverage, got %v", err)
	}
}

func TestSlateService_ShowdownSlates(t *testing.T) {
	feed := &stubFeed{books: map[string]ExternalSlateBook{
		"2025-11-06": {Date: "2025-11-06", Slates: []ExternalSlate{
			{ID: "901", GameCount: 12},
			{ID: "903", SlateType: "SD: PHI @ DAL", Showdown: true},
			{ID: "904", SlateType: "SD: KC @ BUF", Showdown: true},
		}},
	}}
	svc := NewSlateService(feed, nil, nil)

	showdowns, err := svc.ShowdownSlates(t.Context(), "2025-11-06")
	if err != nil {
		t.Fatalf("showdown lookup failed: %v", err)
	}
	if len(showdowns) != 2 {
		t.Fatalf("expected 2 showdowns, got %d", len(showdowns))
	}
}

func TestSlateService_SelectMainSlate_SkipsFailedDates(t *testing.T) {
	feed := &stubFeed{bookErr: fmt.Errorf("upstream down")}
	svc := NewSlateService(feed, nil, nil)

	_, err := svc.SelectMainSlate(t.Context(), "2025-11-06")
	if !errors.Is(err, ErrNoCoverage) {
		t.Fatalf("expected ErrNoCoverage when every date fails, got %v", err)
	}
}
