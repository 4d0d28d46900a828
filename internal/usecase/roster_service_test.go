package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/riskibarqy/nfl-dfs-helper/internal/infrastructure/repository/memory"
)

type stubRosterProvider struct {
	players []ExternalRosterPlayer
	err     error
}

func (p *stubRosterProvider) FetchPlayers(context.Context) ([]ExternalRosterPlayer, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.players, nil
}

func TestRosterService_Refresh(t *testing.T) {
	provider := &stubRosterProvider{players: []ExternalRosterPlayer{
		{ID: "500", FirstName: "A.J.", LastName: "Brown", Team: "phi", Position: "wr", FantasyPositions: []string{"wr"}, Status: "Active"},
		{ID: "600", FirstName: "Practice", LastName: "Squad", Team: "DAL", Position: "QB", Status: "Inactive"},
		{ID: "601", FirstName: "Free", LastName: "Agent", Team: "", Position: "RB", Status: "Active"},
		{ID: "", FirstName: "No", LastName: "ID", Team: "KC", Position: "TE", Status: "Active"},
	}}
	repo := memory.NewRosterRepository()
	svc := NewRosterService(provider, repo, RosterServiceConfig{}, nil)

	count, err := svc.Refresh(t.Context())
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 rostered player, got %d", count)
	}

	p, err := svc.GetPlayer(t.Context(), "500")
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if p.Team != "PHI" {
		t.Fatalf("team code not uppercased: %s", p.Team)
	}
	if p.Position != "WR" {
		t.Fatalf("position not uppercased: %s", p.Position)
	}
	if p.ByeWeek != defaultByeWeeks["PHI"] {
		t.Fatalf("bye week not annotated: %d", p.ByeWeek)
	}
}

func TestRosterService_Refresh_KeepsInjuredReserves(t *testing.T) {
	provider := &stubRosterProvider{players: []ExternalRosterPlayer{
		{ID: "500", FirstName: "A.J.", LastName: "Brown", Team: "PHI", Position: "WR", Status: "Active"},
		{ID: "601", FirstName: "Rashee", LastName: "Rice", Team: "KC", Position: "WR", Status: "Inactive", InjuryStatus: "IR"},
		{ID: "602", FirstName: "Healthy", LastName: "Scratch", Team: "KC", Position: "RB", Status: "Inactive"},
	}}
	svc := NewRosterService(provider, memory.NewRosterRepository(), RosterServiceConfig{}, nil)

	count, err := svc.Refresh(t.Context())
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected the injured reserve to survive the refresh, got %d players", count)
	}

	p, err := svc.GetPlayer(t.Context(), "601")
	if err != nil {
		t.Fatalf("injured reserve missing from snapshot: %v", err)
	}
	if p.InjuryStatus != "IR" {
		t.Fatalf("unexpected injury status: %s", p.InjuryStatus)
	}

	if _, err := svc.GetPlayer(t.Context(), "602"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected injury-free inactive player to be dropped, got %v", err)
	}

	injuries, err := svc.TeamInjuries(t.Context())
	if err != nil {
		t.Fatalf("injuries failed: %v", err)
	}
	kc := injuries["KC"]
	if len(kc) != 1 || kc[0].PlayerID != "601" {
		t.Fatalf("injured reserve missing from team report: %+v", kc)
	}
}

func TestRosterService_Refresh_AnnotatesByeWeek(t *testing.T) {
	provider := &stubRosterProvider{players: []ExternalRosterPlayer{
		{ID: "500", FirstName: "A.J.", LastName: "Brown", Team: "PHI", Position: "WR", Status: "Active"},
		{ID: "502", FirstName: "DeVonta", LastName: "Smith", Team: "PHI", Position: "WR", Status: "Active", InjuryStatus: "Questionable"},
		{ID: "504", FirstName: "Patrick", LastName: "Mahomes", Team: "KC", Position: "QB", Status: "Active"},
	}}
	svc := NewRosterService(provider, memory.NewRosterRepository(), RosterServiceConfig{
		ByeWeeks:    map[string]int{"PHI": 3, "KC": 7},
		SeasonStart: time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC),
	}, nil)
	// Wednesday of gameweek 3.
	svc.now = func() time.Time { return time.Date(2025, 9, 17, 12, 0, 0, 0, time.UTC) }

	if _, err := svc.Refresh(t.Context()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	onBye, err := svc.GetPlayer(t.Context(), "500")
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if onBye.InjuryStatus != "Bye" {
		t.Fatalf("expected bye annotation, got %q", onBye.InjuryStatus)
	}

	// A real injury designation is never overwritten by the bye label.
	injured, err := svc.GetPlayer(t.Context(), "502")
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if injured.InjuryStatus != "Questionable" {
		t.Fatalf("injury status clobbered: %q", injured.InjuryStatus)
	}

	offBye, err := svc.GetPlayer(t.Context(), "504")
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if offBye.InjuryStatus != "" {
		t.Fatalf("expected no annotation off the bye week, got %q", offBye.InjuryStatus)
	}

	injuries, err := svc.TeamInjuries(t.Context())
	if err != nil {
		t.Fatalf("injuries failed: %v", err)
	}
	for _, report := range injuries["PHI"] {
		if report.InjuryStatus == "Bye" {
			t.Fatalf("bye annotation leaked into the injury report: %+v", report)
		}
	}
}

func TestRosterService_Refresh_EmptyDirectoryFails(t *testing.T) {
	provider := &stubRosterProvider{players: []ExternalRosterPlayer{
		{ID: "600", FirstName: "Practice", LastName: "Squad", Team: "DAL", Position: "QB", Status: "Inactive"},
	}}
	svc := NewRosterService(provider, memory.NewRosterRepository(), RosterServiceConfig{}, nil)

	if _, err := svc.Refresh(t.Context()); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestRosterService_Refresh_FetchError(t *testing.T) {
	provider := &stubRosterProvider{err: fmt.Errorf("directory down")}
	svc := NewRosterService(provider, memory.NewRosterRepository(), RosterServiceConfig{}, nil)

	if _, err := svc.Refresh(t.Context()); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestRosterService_LookupPlayers(t *testing.T) {
	provider := &stubRosterProvider{players: []ExternalRosterPlayer{
		{ID: "500", FirstName: "A.J.", LastName: "Brown", Team: "PHI", Position: "WR", Status: "Active"},
		{ID: "501", FirstName: "Marquise", LastName: "Brown", Team: "KC", Position: "WR", Status: "Active"},
	}}
	svc := NewRosterService(provider, memory.NewRosterRepository(), RosterServiceConfig{}, nil)
	if _, err := svc.Refresh(t.Context()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	players, err := svc.LookupPlayers(t.Context(), []string{"500", "unknown", "501"})
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if len(players) != 2 {
		t.Fatalf("expected unknown ids to be omitted, got %d players", len(players))
	}

	if _, err := svc.LookupPlayers(t.Context(), nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty batch, got %v", err)
	}
}

func TestRosterService_TeamInjuries(t *testing.T) {
	provider := &stubRosterProvider{players: []ExternalRosterPlayer{
		{ID: "500", FirstName: "A.J.", LastName: "Brown", Team: "PHI", Position: "WR", Status: "Active", InjuryStatus: "Questionable"},
		{ID: "502", FirstName: "DeVonta", LastName: "Smith", Team: "PHI", Position: "WR", Status: "Active", InjuryStatus: "Out"},
		{ID: "503", FirstName: "Jalen", LastName: "Hurts", Team: "PHI", Position: "QB", Status: "Active"},
		{ID: "504", FirstName: "Patrick", LastName: "Mahomes", Team: "KC", Position: "QB", Status: "Active", InjuryStatus: "Doubtful"},
		{ID: "700", FirstName: "Jordan", LastName: "Mailata", Team: "PHI", Position: "OT", Status: "Active", InjuryStatus: "Questionable"},
	}}
	svc := NewRosterService(provider, memory.NewRosterRepository(), RosterServiceConfig{}, nil)
	if _, err := svc.Refresh(t.Context()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	injuries, err := svc.TeamInjuries(t.Context())
	if err != nil {
		t.Fatalf("injuries failed: %v", err)
	}
	if len(injuries) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(injuries))
	}
	phi := injuries["PHI"]
	if len(phi) != 2 {
		t.Fatalf("expected 2 PHI reports, offensive linemen excluded, got %d", len(phi))
	}
	if phi[0].LastName != "Brown" || phi[1].LastName != "Smith" {
		t.Fatalf("reports not sorted by last name: %+v", phi)
	}
}
