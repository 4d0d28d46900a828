package roster

// Position is an NFL roster position code as published by the player
// directory feed ("QB", "RB", "DEF", ...).
type Position string

const (
	PositionQuarterback  Position = "QB"
	PositionRunningBack  Position = "RB"
	PositionWideReceiver Position = "WR"
	PositionTightEnd     Position = "TE"
	PositionKicker       Position = "K"
	PositionDefense      Position = "DEF"
)

// FantasyPositions is the set of positions that participate in salary
// matching and lineup validation. Offensive linemen and IDP positions
// stay in the full roster but never enter the fantasy-relevant subset.
var FantasyPositions = map[Position]struct{}{
	PositionQuarterback:  {},
	PositionRunningBack:  {},
	PositionWideReceiver: {},
	PositionTightEnd:     {},
	PositionKicker:       {},
	PositionDefense:      {},
}

// Player is one directory entry. ID is the upstream directory id and is
// the canonical player identifier everywhere in this service.
type Player struct {
	ID               string
	FirstName        string
	LastName         string
	Team             string
	Position         Position
	FantasyPositions []Position
	Status           string
	InjuryStatus     string
	ByeWeek          int
}

// FullName joins first and last name with a single space.
func (p Player) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// FantasyRelevant reports whether the player belongs to the subset used
// for salary matching: active, rostered to a team, and carrying at least
// one fantasy position.
func (p Player) FantasyRelevant() bool {
	if p.Status != "Active" || p.Team == "" {
		return false
	}
	return p.FantasyEligible()
}

// FantasyEligible reports whether the player carries at least one
// fantasy position, regardless of roster status. Injured reserves are
// eligible even though they fall outside the fantasy-relevant subset.
func (p Player) FantasyEligible() bool {
	if _, ok := FantasyPositions[p.Position]; ok {
		return true
	}
	for _, pos := range p.FantasyPositions {
		if _, ok := FantasyPositions[pos]; ok {
			return true
		}
	}
	return false
}

// InjuryReport is one row of the per-team injury summary.
type InjuryReport struct {
	PlayerID     string
	FirstName    string
	LastName     string
	Position     Position
	InjuryStatus string
}
