package memory

import (
	"testing"
	"time"

	"github.com/riskibarqy/nfl-dfs-helper/internal/domain/lineup"
)

func TestLineupRepository_UpsertAndGet(t *testing.T) {
	ctx := t.Context()
	repo := NewLineupRepository()

	stored := lineup.Lineup{
		Target:    "league-42/entry-7",
		Week:      10,
		Payload:   "MTA7NTAwOjc2MDA=",
		PlayerIDs: []string{"500", "501"},
		UpdatedAt: time.Date(2025, time.November, 6, 12, 0, 0, 0, time.UTC),
	}
	if err := repo.Upsert(ctx, stored); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, ok, err := repo.GetByTargetAndWeek(ctx, "league-42/entry-7", 10)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.Payload != stored.Payload || len(got.PlayerIDs) != 2 {
		t.Fatalf("got = %+v", got)
	}

	if _, ok, _ := repo.GetByTargetAndWeek(ctx, "league-42/entry-7", 11); ok {
		t.Fatalf("other week should miss")
	}
	if _, ok, _ := repo.GetByTargetAndWeek(ctx, "league-42/entry-8", 10); ok {
		t.Fatalf("other target should miss")
	}
}

func TestLineupRepository_UpsertOverwrites(t *testing.T) {
	ctx := t.Context()
	repo := NewLineupRepository()

	first := lineup.Lineup{Target: "t", Week: 10, PlayerIDs: []string{"500"}}
	second := lineup.Lineup{Target: "t", Week: 10, PlayerIDs: []string{"501", "502"}}
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, ok, err := repo.GetByTargetAndWeek(ctx, "t", 10)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if len(got.PlayerIDs) != 2 || got.PlayerIDs[0] != "501" {
		t.Fatalf("PlayerIDs = %v, want overwrite", got.PlayerIDs)
	}
}

func TestLineupRepository_CloneIsolation(t *testing.T) {
	ctx := t.Context()
	repo := NewLineupRepository()

	original := lineup.Lineup{Target: "t", Week: 10, PlayerIDs: []string{"500", "501"}}
	if err := repo.Upsert(ctx, original); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	// Mutating the caller's slice after storing must not leak in.
	original.PlayerIDs[0] = "mutated"

	got, ok, err := repo.GetByTargetAndWeek(ctx, "t", 10)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.PlayerIDs[0] != "500" {
		t.Fatalf("stored lineup shares caller slice: %v", got.PlayerIDs)
	}

	// Mutating a returned copy must not corrupt the stored value.
	got.PlayerIDs[1] = "mutated"
	again, _, err := repo.GetByTargetAndWeek(ctx, "t", 10)
	if err != nil {
		t.Fatalf("reread: %v", err)
	}
	if again.PlayerIDs[1] != "501" {
		t.Fatalf("stored lineup shares returned slice: %v", again.PlayerIDs)
	}
}
