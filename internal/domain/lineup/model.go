package lineup

import "time"

// Lineup stores one accepted lineup for a share target and week. Payload
// keeps the encoded form so the same link can be replayed; PlayerIDs is
// the decoded canonical id list.
type Lineup struct {
	Target    string
	Week      int
	Payload   string
	PlayerIDs []string
	UpdatedAt time.Time
}

// Violator names one player that blocked a lineup change because their
// game already started.
type Violator struct {
	PlayerID  string
	Name      string
	Team      string
	GameDate  string
	StartTime string
}

// Decision is the outcome of a lock validation pass.
type Decision struct {
	Allowed   bool
	Week      int
	PlayerIDs []string
	Violators []Violator
}
