package salary

import (
	"strconv"
	"strings"
)

// Entry is one enriched salary record for a single player and week.
// PlayerID is the canonical directory id when identity resolution
// succeeded, empty otherwise.
type Entry struct {
	PlayerID         string
	Name             string
	Team             string
	Position         string
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

	// Game attribution.
	GameDate  string // 2006-01-02
	StartTime string // 15:04, US Eastern
	Weekday   string // long weekday name

	// Provenance.
	SlateID   string
	SlateType string
	SlateDate string
}

// Key returns the storage key for the entry: the canonical id when
// known, otherwise a name+team fallback, always scoped by week.
func (e Entry) Key() string {
	return KeyFor(e.PlayerID, e.Name, e.Team, e.Week)
}

// KeyFor builds the composite storage key. Unresolved players key on a
// normalized name and team so repeated refreshes stay stable.
func KeyFor(playerID, name, team string, week int) string {
	ref := playerID
	if ref == "" {
		ref = strings.ToLower(strings.TrimSpace(name)) + "/" + strings.ToUpper(strings.TrimSpace(team))
	}
	return ref + "_W" + strconv.Itoa(week)
}

// Resolved reports whether the entry carries a canonical player id.
func (e Entry) Resolved() bool {
	return e.PlayerID != ""
}
