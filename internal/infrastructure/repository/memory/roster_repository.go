package memory

import (
	"context"
	"sync/atomic"

	"github.com/riskibarqy/nfl-dfs-helper/internal/domain/roster"
)

type rosterSnapshot struct {
	players  []roster.Player
	relevant []roster.Player
	index    map[string]roster.Player
}

// RosterRepository keeps the whole roster in an immutable snapshot that
// is swapped atomically on refresh, so readers never block a refresh.
type RosterRepository struct {
	snapshot atomic.Pointer[rosterSnapshot]
}

func NewRosterRepository() *RosterRepository {
	r := &RosterRepository{}
	r.snapshot.Store(buildRosterSnapshot(nil))
	return r
}

func (r *RosterRepository) Replace(_ context.Context, players []roster.Player) error {
	r.snapshot.Store(buildRosterSnapshot(players))
	return nil
}

func (r *RosterRepository) GetByID(_ context.Context, playerID string) (roster.Player, bool, error) {
	p, ok := r.snapshot.Load().index[playerID]
	return p, ok, nil
}

func (r *RosterRepository) GetByIDs(_ context.Context, playerIDs []string) ([]roster.Player, error) {
	index := r.snapshot.Load().index
	out := make([]roster.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		p, ok := index[id]
		if !ok {
			continue
		}
		out = append(out, p)
	}

	return out, nil
}

func (r *RosterRepository) ListRelevant(_ context.Context) ([]roster.Player, error) {
	players := r.snapshot.Load().relevant
	out := make([]roster.Player, 0, len(players))
	out = append(out, players...)

	return out, nil
}

func (r *RosterRepository) ListAll(_ context.Context) ([]roster.Player, error) {
	players := r.snapshot.Load().players
	out := make([]roster.Player, 0, len(players))
	out = append(out, players...)

	return out, nil
}

func buildRosterSnapshot(players []roster.Player) *rosterSnapshot {
	snap := &rosterSnapshot{
		players: append([]roster.Player(nil), players...),
		index:   make(map[string]roster.Player, len(players)),
	}
	for _, p := range snap.players {
		snap.index[p.ID] = p
		if p.FantasyRelevant() {
			snap.relevant = append(snap.relevant, p)
		}
	}

	return snap
}
