package memory

import (
	"testing"

	"github.com/riskibarqy/nfl-dfs-helper/internal/domain/roster"
)

func testPlayers() []roster.Player {
	return []roster.Player{
		{ID: "500", FirstName: "A.J.", LastName: "Brown", Team: "PHI", Position: roster.PositionWideReceiver, Status: "Active"},
		{ID: "501", FirstName: "Marquise", LastName: "Brown", Team: "KC", Position: roster.PositionWideReceiver, Status: "Active"},
		{ID: "700", FirstName: "Jordan", LastName: "Mailata", Team: "PHI", Position: "OT", Status: "Active"},
		{ID: "701", FirstName: "Retired", LastName: "Guy", Team: "", Position: roster.PositionQuarterback, Status: "Inactive"},
		{ID: "702", FirstName: "Flex", LastName: "Lineman", Team: "DAL", Position: "OG", FantasyPositions: []roster.Position{roster.PositionTightEnd}, Status: "Active"},
	}
}

func TestRosterRepository_ReplaceAndLookup(t *testing.T) {
	ctx := t.Context()
	repo := NewRosterRepository()

	if err := repo.Replace(ctx, testPlayers()); err != nil {
		t.Fatalf("replace: %v", err)
	}

	p, ok, err := repo.GetByID(ctx, "500")
	if err != nil || !ok {
		t.Fatalf("GetByID: ok=%v err=%v", ok, err)
	}
	if p.FullName() != "A.J. Brown" || p.Team != "PHI" {
		t.Fatalf("player = %s/%s", p.FullName(), p.Team)
	}

	if _, ok, _ := repo.GetByID(ctx, "999"); ok {
		t.Fatalf("unknown id should miss")
	}
}

func TestRosterRepository_GetByIDsSkipsUnknown(t *testing.T) {
	ctx := t.Context()
	repo := NewRosterRepository()

	if err := repo.Replace(ctx, testPlayers()); err != nil {
		t.Fatalf("replace: %v", err)
	}

	players, err := repo.GetByIDs(ctx, []string{"501", "999", "500"})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(players) != 2 {
		t.Fatalf("players = %d, want 2", len(players))
	}
	if players[0].ID != "501" || players[1].ID != "500" {
		t.Fatalf("order = %s, %s; want request order 501, 500", players[0].ID, players[1].ID)
	}
}

func TestRosterRepository_ListRelevantFilters(t *testing.T) {
	ctx := t.Context()
	repo := NewRosterRepository()

	if err := repo.Replace(ctx, testPlayers()); err != nil {
		t.Fatalf("replace: %v", err)
	}

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("all = %d, want 5", len(all))
	}

	relevant, err := repo.ListRelevant(ctx)
	if err != nil {
		t.Fatalf("list relevant: %v", err)
	}
	// Offensive linemen and inactive players stay out; 702 qualifies
	// through its secondary TE eligibility.
	want := map[string]bool{"500": true, "501": true, "702": true}
	if len(relevant) != len(want) {
		t.Fatalf("relevant = %d, want %d", len(relevant), len(want))
	}
	for _, p := range relevant {
		if !want[p.ID] {
			t.Fatalf("unexpected relevant player %s", p.ID)
		}
	}
}

func TestRosterRepository_ReplaceSwapsSnapshot(t *testing.T) {
	ctx := t.Context()
	repo := NewRosterRepository()

	if err := repo.Replace(ctx, testPlayers()); err != nil {
		t.Fatalf("first replace: %v", err)
	}
	if err := repo.Replace(ctx, testPlayers()[:1]); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	if _, ok, _ := repo.GetByID(ctx, "501"); ok {
		t.Fatalf("501 should be gone after snapshot swap")
	}
	all, err := repo.ListAll(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("all = %d err=%v, want 1", len(all), err)
	}
}
