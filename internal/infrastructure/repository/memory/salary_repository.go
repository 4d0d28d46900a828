package memory

import (
	"context"
	"sort"
	"sync/atomic"

	"github.com/riskibarqy/nfl-dfs-helper/internal/domain/salary"
)

type salarySnapshot struct {
	entries  map[string]salary.Entry
	byWeek   map[int][]salary.Entry
	byPlayer map[string]map[int]salary.Entry
}

// SalaryRepository holds enriched salary entries keyed by player and
// week. ReplaceWeek installs the new week and keeps only the week
// immediately before it; readers see either the old snapshot or the new
// one, never a mix.
type SalaryRepository struct {
	snapshot atomic.Pointer[salarySnapshot]
}

func NewSalaryRepository() *SalaryRepository {
	r := &SalaryRepository{}
	r.snapshot.Store(buildSalarySnapshot(nil))
	return r
}

func (r *SalaryRepository) ReplaceWeek(_ context.Context, week int, entries []salary.Entry) error {
	current := r.snapshot.Load()

	merged := make([]salary.Entry, 0, len(entries)+len(current.byWeek[week-1]))
	merged = append(merged, current.byWeek[week-1]...)
	merged = append(merged, entries...)

	r.snapshot.Store(buildSalarySnapshot(merged))
	return nil
}

func (r *SalaryRepository) GetByPlayer(_ context.Context, playerID string, week int) (salary.Entry, bool, error) {
	weeks, ok := r.snapshot.Load().byPlayer[playerID]
	if !ok {
		return salary.Entry{}, false, nil
	}

	entry, ok := weeks[week]
	return entry, ok, nil
}

func (r *SalaryRepository) ListByWeek(_ context.Context, week int) ([]salary.Entry, error) {
	entries := r.snapshot.Load().byWeek[week]
	out := make([]salary.Entry, 0, len(entries))
	out = append(out, entries...)

	return out, nil
}

func (r *SalaryRepository) Weeks(_ context.Context) ([]int, error) {
	byWeek := r.snapshot.Load().byWeek
	out := make([]int, 0, len(byWeek))
	for week := range byWeek {
		out = append(out, week)
	}
	sort.Ints(out)

	return out, nil
}

func buildSalarySnapshot(entries []salary.Entry) *salarySnapshot {
	snap := &salarySnapshot{
		entries:  make(map[string]salary.Entry, len(entries)),
		byWeek:   make(map[int][]salary.Entry),
		byPlayer: make(map[string]map[int]salary.Entry),
	}
	for _, e := range entries {
		snap.entries[e.Key()] = e
	}
	for _, e := range snap.entries {
		snap.byWeek[e.Week] = append(snap.byWeek[e.Week], e)
		if e.PlayerID == "" {
			continue
		}
		if _, ok := snap.byPlayer[e.PlayerID]; !ok {
			snap.byPlayer[e.PlayerID] = make(map[int]salary.Entry)
		}
		snap.byPlayer[e.PlayerID][e.Week] = e
	}
	for week := range snap.byWeek {
		sort.Slice(snap.byWeek[week], func(i, j int) bool {
			return snap.byWeek[week][i].Salary > snap.byWeek[week][j].Salary
		})
	}

	return snap
}
