package usecase

import (
	"strings"

	"github.com/riskibarqy/nfl-dfs-helper/internal/domain/roster"
)

// nameAliases maps normalized nickname or rebrand variants to the
// normalized name the roster directory actually carries.
var nameAliases = map[string]string{
	"hollywood brown":   "marquise brown",
	"josh palmer":       "joshua palmer",
	"gabe davis":        "gabriel davis",
	"mitch trubisky":    "mitchell trubisky",
	"jeff wilson":       "jeffery wilson",
	"chig okonkwo":      "chigoziem okonkwo",
	"scotty miller":     "scott miller",
	"cam ward":          "cameron ward",
	"ken walker":        "kenneth walker",
	"will fuller":       "william fuller",
}

// franchiseTeamCodes maps normalized defense/special-teams franchise
// labels to roster team codes.
var franchiseTeamCodes = map[string]string{
	"cardinals": "ARI", "falcons": "ATL", "ravens": "BAL", "bills": "BUF",
	"panthers": "CAR", "bears": "CHI", "bengals": "CIN", "browns": "CLE",
	"cowboys": "DAL", "broncos": "DEN", "lions": "DET", "packers": "GB",
	"texans": "HOU", "colts": "IND", "jaguars": "JAX", "chiefs": "KC",
	"raiders": "LV", "chargers": "LAC", "rams": "LAR", "dolphins": "MIA",
	"vikings": "MIN", "patriots": "NE", "saints": "NO", "giants": "NYG",
	"jets": "NYJ", "eagles": "PHI", "steelers": "PIT", "49ers": "SF",
	"seahawks": "SEA", "buccaneers": "TB", "titans": "TEN", "commanders": "WAS",
}

var nameSuffixes = map[string]struct{}{
	"jr": {}, "sr": {}, "ii": {}, "iii": {}, "iv": {}, "v": {},
}

// NormalizeName lowercases, trims, drops periods and apostrophes,
// strips trailing generational suffixes, and applies the alias table.
// Normalizing an already-normalized name is a no-op.
func NormalizeName(raw string) string {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, "'", "")

	tokens := strings.Fields(cleaned)
	for len(tokens) > 1 {
		if _, ok := nameSuffixes[tokens[len(tokens)-1]]; !ok {
			break
		}
		tokens = tokens[:len(tokens)-1]
	}
	normalized := strings.Join(tokens, " ")

	if alias, ok := nameAliases[normalized]; ok {
		return alias
	}
	return normalized
}

// IdentityResolver maps a free-text player name (plus an optional team
// code) onto a canonical roster id. Resolution is a fixed ordered list
// of match tiers; the first tier that produces a hit wins and no
// cross-tier scoring is applied. Resolution never fails hard: an
// unmatched name simply reports ok=false and the caller keeps the row
// under its raw name.
type IdentityResolver struct {
	tiers []matchTier
}

type matchTier func(name, team string, players []roster.Player) (string, bool)

func NewIdentityResolver() *IdentityResolver {
	return &IdentityResolver{
		tiers: []matchTier{
			matchExactName,
			matchFranchiseDefense,
			matchNameTokens,
			matchLooseTokens,
		},
	}
}

// Resolve runs the tier list against the fantasy-relevant subset first,
// then repeats the whole list against the full roster so positions
// outside the subset still resolve.
func (r *IdentityResolver) Resolve(rawName, team string, relevant, full []roster.Player) (string, bool) {
	name := NormalizeName(rawName)
	if name == "" {
		return "", false
	}
	team = strings.ToUpper(strings.TrimSpace(team))

	for _, pool := range [][]roster.Player{relevant, full} {
		for _, tier := range r.tiers {
			if id, ok := tier(name, team, pool); ok {
				return id, true
			}
		}
	}

	return "", false
}

func matchExactName(name, _ string, players []roster.Player) (string, bool) {
	for _, p := range players {
		if NormalizeName(p.FullName()) == name {
			return p.ID, true
		}
	}
	return "", false
}

func matchFranchiseDefense(name, team string, players []roster.Player) (string, bool) {
	code, ok := franchiseTeamCodes[name]
	if !ok {
		// Feeds sometimes publish the full franchise label
		// ("san francisco 49ers"); the nickname is the last token.
		tokens := strings.Fields(name)
		if len(tokens) > 1 {
			code, ok = franchiseTeamCodes[tokens[len(tokens)-1]]
		}
	}
	if !ok {
		return "", false
	}
	if team != "" && team != code {
		return "", false
	}

	for _, p := range players {
		if p.Position == roster.PositionDefense && p.Team == code {
			return p.ID, true
		}
	}
	return "", false
}

func matchNameTokens(name, _ string, players []roster.Player) (string, bool) {
	first, last, ok := splitNameTokens(name)
	if !ok {
		return "", false
	}

	for _, p := range players {
		if NormalizeName(p.FirstName) == first && NormalizeName(p.LastName) == last {
			return p.ID, true
		}
	}
	return "", false
}

func matchLooseTokens(name, _ string, players []roster.Player) (string, bool) {
	first, last, ok := splitNameTokens(name)
	if !ok {
		return "", false
	}

	for _, p := range players {
		if NormalizeName(p.LastName) != last {
			continue
		}
		if strings.Contains(NormalizeName(p.FirstName), first) {
			return p.ID, true
		}
	}
	return "", false
}

func splitNameTokens(name string) (first, last string, ok bool) {
	tokens := strings.Fields(name)
	if len(tokens) < 2 {
		return "", "", false
	}
	return tokens[0], strings.Join(tokens[1:], " "), true
}
