package usecase

import "context"

// SlateFeedProvider is the upstream daily-contest catalog. A failed or
// malformed query degrades to an empty book; callers decide which
// neighboring dates to try.
type SlateFeedProvider interface {
	// FetchSlateBook returns every descriptor published for date.
	// slateID optionally disambiguates multi-day coverage queries and
	// may be empty.
	FetchSlateBook(ctx context.Context, date string, slateID string) (ExternalSlateBook, error)
	// FetchSalaryRows returns the scraped pricing rows for one
	// (date, slate) pair.
	FetchSalaryRows(ctx context.Context, date string, slateID string) ([]ExternalSalaryRow, error)
}

// RosterProvider is the upstream player directory.
type RosterProvider interface {
	FetchPlayers(ctx context.Context) ([]ExternalRosterPlayer, error)
}

type ExternalSlateBook struct {
	Date   string
	Slates []ExternalSlate
}

// ExternalSlate is one raw slate descriptor, scoped to the query date.
// Descriptors are fetch-and-discard and never persisted.
type ExternalSlate struct {
	ID        string
	URL       string
	SlateType string
	TeamCount int
	GameCount int
	StartTime string // hh:mm label as published
	Weekday   string // long weekday label
	MonthDay  string // e.g. "Nov 2"
	Showdown  bool
	Date      string // query date the descriptor answered for
	Dates     []ExternalSlateDate
}

// ExternalSlateDate is one entry of a multi-day coverage list.
type ExternalSlateDate struct {
	StartDate    string // 2006-01-02
	ShortDayName string
	LongDayName  string
	MonthDay     string
}

// ExternalSalaryRow is one scraped pricing row before identity
// resolution and game attribution.
type ExternalSalaryRow struct {
	Name             string
	Position         string
	Team             string
	Opponent         string
	Salary           int
	ProjectedPoints  float64
	ValueProjection  float64
	SeasonAverage    float64
	LastFiveAverage  float64
	LastTenAverage   float64
	Week             int
	Spread           float64
	OverUnder        float64
	ImpliedTeamScore float64
	OpponentRank     int
	InjuryStatus     string
	GameDate         string // literal game date when the source provides one
}

type ExternalRosterPlayer struct {
	ID               string
	FirstName        string
	LastName         string
	Team             string
	Position         string
	FantasyPositions []string
	Status           string
	InjuryStatus     string
}
