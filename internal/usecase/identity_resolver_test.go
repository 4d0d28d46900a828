package usecase

import (
	"testing"

	"github.com/riskibarqy/nfl-dfs-helper/internal/domain/roster"
)

func testRoster() []roster.Player {
	return []roster.Player{
		{ID: "500", FirstName: "A.J.", LastName: "Brown", Team: "PHI", Position: roster.PositionWideReceiver, Status: "Active"},
		{ID: "501", FirstName: "Marquise", LastName: "Brown", Team: "KC", Position: roster.PositionWideReceiver, Status: "Active"},
		{ID: "502", FirstName: "Benjamin", LastName: "Smith", Team: "DAL", Position: roster.PositionTightEnd, Status: "Active"},
		{ID: "503", FirstName: "Odell", LastName: "Beckham", Team: "MIA", Position: roster.PositionWideReceiver, Status: "Active"},
		{ID: "SF", FirstName: "San Francisco", LastName: "49ers", Team: "SF", Position: roster.PositionDefense, Status: "Active"},
		{ID: "PHI", FirstName: "Philadelphia", LastName: "Eagles", Team: "PHI", Position: roster.PositionDefense, Status: "Active"},
	}
}

func TestNormalizeName_Idempotent(t *testing.T) {
	cases := []string{"A.J. Brown", "Odell Beckham Jr.", "D'Andre Swift", "  Hollywood Brown "}
	for _, raw := range cases {
		once := NormalizeName(raw)
		twice := NormalizeName(once)
		if once != twice {
			t.Fatalf("normalization not idempotent for %q: %q vs %q", raw, once, twice)
		}
	}
}

func TestNormalizeName_StripsSuffixesAndPunctuation(t *testing.T) {
	if got := NormalizeName("Odell Beckham Jr."); got != "odell beckham" {
		t.Fatalf("unexpected normalization: %q", got)
	}
	if got := NormalizeName("Kenneth Walker III"); got != "kenneth walker" {
		t.Fatalf("unexpected normalization: %q", got)
	}
	if got := NormalizeName("D'Andre Swift"); got != "dandre swift" {
		t.Fatalf("unexpected normalization: %q", got)
	}
}

func TestNormalizeName_AppliesAliases(t *testing.T) {
	if got := NormalizeName("Hollywood Brown"); got != "marquise brown" {
		t.Fatalf("alias not applied: %q", got)
	}
}

func TestIdentityResolver_ExactName(t *testing.T) {
	resolver := NewIdentityResolver()
	players := testRoster()

	id, ok := resolver.Resolve("AJ Brown", "PHI", players, players)
	if !ok || id != "500" {
		t.Fatalf("expected id 500, got %q ok=%v", id, ok)
	}
}

func TestIdentityResolver_AliasedNickname(t *testing.T) {
	resolver := NewIdentityResolver()
	players := testRoster()

	id, ok := resolver.Resolve("Hollywood Brown", "KC", players, players)
	if !ok || id != "501" {
		t.Fatalf("expected id 501, got %q ok=%v", id, ok)
	}
}

func TestIdentityResolver_SuffixVariant(t *testing.T) {
	resolver := NewIdentityResolver()
	players := testRoster()

	id, ok := resolver.Resolve("Odell Beckham Jr.", "MIA", players, players)
	if !ok || id != "503" {
		t.Fatalf("expected id 503, got %q ok=%v", id, ok)
	}
}

func TestIdentityResolver_FranchiseDefense(t *testing.T) {
	resolver := NewIdentityResolver()
	players := testRoster()

	id, ok := resolver.Resolve("49ers", "SF", players, players)
	if !ok || id != "SF" {
		t.Fatalf("expected id SF, got %q ok=%v", id, ok)
	}

	id, ok = resolver.Resolve("San Francisco 49ers", "", players, players)
	if !ok || id != "SF" {
		t.Fatalf("full label: expected id SF, got %q ok=%v", id, ok)
	}
}

func TestIdentityResolver_FranchiseDefenseTeamMismatch(t *testing.T) {
	resolver := NewIdentityResolver()
	players := testRoster()

	if id, ok := resolver.Resolve("49ers", "PHI", players, players); ok {
		t.Fatalf("expected no match for team mismatch, got %q", id)
	}
}

func TestIdentityResolver_LooseFirstNameMatch(t *testing.T) {
	resolver := NewIdentityResolver()
	players := testRoster()

	id, ok := resolver.Resolve("Ben Smith", "DAL", players, players)
	if !ok || id != "502" {
		t.Fatalf("expected id 502, got %q ok=%v", id, ok)
	}
}

func TestIdentityResolver_UnmatchedName(t *testing.T) {
	resolver := NewIdentityResolver()
	players := testRoster()

	if id, ok := resolver.Resolve("Totally Unknown", "PHI", players, players); ok {
		t.Fatalf("expected no match, got %q", id)
	}
	if _, ok := resolver.Resolve("", "PHI", players, players); ok {
		t.Fatalf("expected no match for empty name")
	}
}

func TestIdentityResolver_FallsBackToFullRoster(t *testing.T) {
	resolver := NewIdentityResolver()
	full := testRoster()
	relevant := full[:1]

	id, ok := resolver.Resolve("Benjamin Smith", "DAL", relevant, full)
	if !ok || id != "502" {
		t.Fatalf("expected id 502 from full pool, got %q ok=%v", id, ok)
	}
}
